package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/selfstudy/internal/config"
	"github.com/limaJavier/selfstudy/internal/logger"
	"github.com/limaJavier/selfstudy/internal/store"
	"github.com/limaJavier/selfstudy/pkg/ilp"
	"github.com/limaJavier/selfstudy/pkg/model"
)

// environment is what every command shares once flags and configuration are resolved
type environment struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    store.Store
	instance *model.Instance
}

type environmentKey struct{}

// NewRootCommand builds the selfstudy command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "selfstudy",
		Short:         "Self-study slot scheduler",
		Long:          "selfstudy fills the morning, midday and evening study sessions of a weekly timetable while honoring quotas, teacher caps and continuity.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), environmentKey{}, env))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			env := environmentOf(cmd)
			_ = env.logger.Sync()
			return env.store.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Path to an env file with the configuration; .env is used when present")
	flags.String("solver", "", fmt.Sprintf("Solver backend, one of %v (overrides SOLVER_BACKEND)", ilp.SolverNames()))
	flags.Duration("time-limit", 0, "Solver time budget (overrides SOLVER_TIME_LIMIT)")
	flags.String("cbc-path", "", "Path to the cbc executable (overrides SOLVER_CBC_PATH)")
	flags.String("store", "", `Where solved runs are archived: "none", "file" or "sqlite" (overrides STORE_KIND)`)
	flags.String("store-path", "", "Directory or database file of the run archive (overrides STORE_PATH)")
	flags.String("log-level", "", "Log level (overrides LOG_LEVEL)")

	root.AddCommand(newSolveCommand())
	root.AddCommand(newValidateCommand())
	root.AddCommand(newReportCommand())
	return root
}

// Execute runs the command tree against the process arguments
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

func newEnvironment(cmd *cobra.Command) (*environment, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	overrides := map[string]*string{
		"solver":     &cfg.Solver.Backend,
		"cbc-path":   &cfg.Solver.CbcPath,
		"store":      &cfg.Store.Kind,
		"store-path": &cfg.Store.Path,
		"log-level":  &cfg.Log.Level,
	}
	for flag, target := range overrides {
		if cmd.Flags().Changed(flag) {
			*target, _ = cmd.Flags().GetString(flag)
		}
	}
	if cmd.Flags().Changed("time-limit") {
		cfg.Solver.TimeLimit, _ = cmd.Flags().GetDuration("time-limit")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot build logger: %w", err)
	}

	archive, err := store.New(cfg.Store, log)
	if err != nil {
		return nil, err
	}

	return &environment{cfg: cfg, logger: log, store: archive, instance: model.DefaultInstance()}, nil
}

func environmentOf(cmd *cobra.Command) *environment {
	return cmd.Context().Value(environmentKey{}).(*environment)
}

// writeOutput writes bytes to the file, or to the command's output when file is empty
func writeOutput(cmd *cobra.Command, file string, bytes []byte) error {
	if file == "" {
		_, err := cmd.OutOrStdout().Write(bytes)
		return err
	}
	if err := os.WriteFile(file, bytes, 0o644); err != nil {
		return fmt.Errorf("an error occurred while writing to the output file: %w", err)
	}
	return nil
}

func solverTimeout(ctx context.Context, limit time.Duration) (context.Context, context.CancelFunc) {
	if limit <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, limit)
}

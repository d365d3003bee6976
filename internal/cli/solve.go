package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/selfstudy/internal/store"
	"github.com/limaJavier/selfstudy/pkg/ilp"
	"github.com/limaJavier/selfstudy/pkg/model"
)

func newSolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Build the study schedule of a fixed-lesson plan",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}
	cmd.Flags().StringP("file", "f", "", "Path to the fixed-lesson JSON file")
	cmd.Flags().StringP("out", "o", "", "Path to the file where the complete schedule will be written; if empty, it'll be written into the Standard Output")
	cmd.Flags().String("study-out", "", "Path to the file where the study schedule will be written")
	cmd.Flags().Bool("no-precheck", false, "Skip the quota placement pre-check")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runSolve(cmd *cobra.Command, _ []string) error {
	env := environmentOf(cmd)
	file, _ := cmd.Flags().GetString("file")
	out, _ := cmd.Flags().GetString("out")
	studyOut, _ := cmd.Flags().GetString("study-out")
	noPrecheck, _ := cmd.Flags().GetBool("no-precheck")

	plan, err := model.PlanFromJson(env.instance, file)
	if err != nil {
		return fmt.Errorf("cannot parse input file: %w", err)
	}

	solver, err := ilp.NewSolver(env.cfg.Solver.Backend, ilp.Options{CbcPath: env.cfg.Solver.CbcPath})
	if err != nil {
		return err
	}
	options := []model.Option{model.WithLogger(env.logger)}
	if noPrecheck {
		options = append(options, model.WithoutPrecheck())
	}
	scheduler := model.NewScheduler(env.instance, solver, options...)

	ctx, cancel := solverTimeout(cmd.Context(), env.cfg.Solver.TimeLimit)
	defer cancel()
	result, err := scheduler.Build(ctx, plan)
	if err != nil {
		var infeasible *model.InfeasibleError
		if errors.As(err, &infeasible) {
			env.logger.Warn("no schedule", zap.Stringer("status", infeasible.Status), zap.String("reason", infeasible.Reason))
		}
		return err
	}

	schedule, err := json.Marshal(result.Schedule)
	if err != nil {
		return fmt.Errorf("an error occurred while building output json: %w", err)
	}
	if err := writeOutput(cmd, out, schedule); err != nil {
		return err
	}
	if studyOut != "" {
		study, err := json.Marshal(result.Study)
		if err != nil {
			return fmt.Errorf("an error occurred while building output json: %w", err)
		}
		if err := writeOutput(cmd, studyOut, study); err != nil {
			return err
		}
	}

	artifact := store.NewArtifact(env.cfg.Solver.Backend, result)
	if err := env.store.Save(cmd.Context(), artifact); err != nil {
		return fmt.Errorf("cannot archive run: %w", err)
	}

	if out == "" {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Run: %v\n", artifact.RunID)
	fmt.Fprintf(cmd.OutOrStdout(), "Variables: %v\n", result.Variables)
	fmt.Fprintf(cmd.OutOrStdout(), "Constraints: %v\n", result.Constraints)
	fmt.Fprintf(cmd.OutOrStdout(), "Objective: %v\n", result.Objective)
	fmt.Fprintf(cmd.OutOrStdout(), "Continuity: %v (%v protected)\n", result.Report.Continuity.Total, result.Report.Continuity.Protected)
	return nil
}

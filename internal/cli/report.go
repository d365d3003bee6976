package cli

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/limaJavier/selfstudy/pkg/model"
	"github.com/limaJavier/selfstudy/pkg/report"
)

var reportFormats = []string{"table", "pdf", "csv"}

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render an archived run or a schedule file as tables, PDF or CSV",
		Args:  cobra.NoArgs,
		RunE:  runReport,
	}
	cmd.Flags().String("run", "", "Id of an archived run")
	cmd.Flags().String("schedule", "", "Path to a complete schedule JSON file")
	cmd.Flags().String("format", "table", fmt.Sprintf("Output format, one of %v", reportFormats))
	cmd.Flags().StringP("out", "o", "", "Path to the output file; if empty, it'll be written into the Standard Output")
	cmd.MarkFlagsMutuallyExclusive("run", "schedule")
	cmd.MarkFlagsOneRequired("run", "schedule")
	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	env := environmentOf(cmd)
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	if !slices.Contains(reportFormats, format) {
		return fmt.Errorf("%v is not a valid format", format)
	}

	title, schedule, err := loadSchedule(cmd, env)
	if err != nil {
		return err
	}
	instance := env.instance
	workloads := model.Workload(instance, schedule)

	datasets := []report.Dataset{report.StudyDataset(instance, model.StudyOf(instance, schedule))}
	datasets = append(datasets, report.ScheduleDatasets(instance, schedule)...)
	datasets = append(datasets,
		report.WorkloadDataset(instance, workloads),
		report.DutiesDataset(instance, workloads),
		report.ValidationDataset(model.Validate(instance, schedule)),
	)

	switch format {
	case "pdf":
		document, err := report.PDF(title, datasets...)
		if err != nil {
			return err
		}
		return writeOutput(cmd, out, document)
	case "csv":
		buffer := &bytes.Buffer{}
		for i, data := range datasets {
			document, err := report.CSV(data)
			if err != nil {
				return err
			}
			if i > 0 {
				buffer.WriteByte('\n')
			}
			fmt.Fprintf(buffer, "# %v\n", data.Title)
			buffer.Write(document)
		}
		return writeOutput(cmd, out, buffer.Bytes())
	default:
		buffer := &bytes.Buffer{}
		if err := report.Print(buffer, datasets...); err != nil {
			return err
		}
		return writeOutput(cmd, out, buffer.Bytes())
	}
}

func loadSchedule(cmd *cobra.Command, env *environment) (string, model.Schedule, error) {
	if file, _ := cmd.Flags().GetString("schedule"); file != "" {
		schedule, err := model.ScheduleFromJson(file)
		if err != nil {
			return "", nil, fmt.Errorf("cannot parse schedule file: %w", err)
		}
		return "Self-study schedule", schedule, nil
	}

	run, _ := cmd.Flags().GetString("run")
	id, err := uuid.Parse(run)
	if err != nil {
		return "", nil, fmt.Errorf("invalid run id %q: %w", run, err)
	}
	artifact, err := env.store.Get(cmd.Context(), id)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("Self-study schedule, run %v (%v)", artifact.RunID, artifact.Backend), artifact.Schedule, nil
}

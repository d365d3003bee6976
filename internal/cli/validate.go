package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/limaJavier/selfstudy/pkg/model"
	"github.com/limaJavier/selfstudy/pkg/report"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a schedule against every rule and count its continuity windows",
		Long:  "validate checks either a complete schedule (--schedule) or a study schedule laid over a fixed-lesson plan (--study and --file).",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}
	cmd.Flags().String("schedule", "", "Path to a complete schedule JSON file")
	cmd.Flags().String("study", "", "Path to a study schedule JSON file")
	cmd.Flags().StringP("file", "f", "", "Path to the fixed-lesson JSON file the study schedule is laid over")
	cmd.Flags().Bool("json", false, "Print the report as JSON instead of a table")
	cmd.MarkFlagsMutuallyExclusive("schedule", "study")
	cmd.MarkFlagsOneRequired("schedule", "study")
	cmd.MarkFlagsRequiredTogether("study", "file")
	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	env := environmentOf(cmd)
	validation, err := loadReport(cmd, env.instance)
	if err != nil {
		return err
	}

	if asJson, _ := cmd.Flags().GetBool("json"); asJson {
		bytes, err := json.MarshalIndent(validation, "", "  ")
		if err != nil {
			return fmt.Errorf("an error occurred while building output json: %w", err)
		}
		if err := writeOutput(cmd, "", append(bytes, '\n')); err != nil {
			return err
		}
	} else if err := report.Print(cmd.OutOrStdout(), report.ValidationDataset(validation)); err != nil {
		return err
	}

	if !validation.Valid() {
		return &model.ValidationFailureError{Violations: validation.Violations}
	}
	return nil
}

func loadReport(cmd *cobra.Command, instance *model.Instance) (model.Report, error) {
	if file, _ := cmd.Flags().GetString("schedule"); file != "" {
		schedule, err := model.ScheduleFromJson(file)
		if err != nil {
			return model.Report{}, fmt.Errorf("cannot parse schedule file: %w", err)
		}
		return model.Validate(instance, schedule), nil
	}

	studyFile, _ := cmd.Flags().GetString("study")
	planFile, _ := cmd.Flags().GetString("file")
	if studyFile == "" || planFile == "" {
		return model.Report{}, errors.New("a study schedule needs its fixed-lesson plan")
	}
	study, err := model.StudyFromJson(instance, studyFile)
	if err != nil {
		return model.Report{}, fmt.Errorf("cannot parse study file: %w", err)
	}
	plan, err := model.PlanFromJson(instance, planFile)
	if err != nil {
		return model.Report{}, fmt.Errorf("cannot parse input file: %w", err)
	}
	return model.ValidateStudy(instance, study, plan)
}

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/selfstudy/pkg/model"
)

const testDirectory = "../../pkg/model/testdata/"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	output := &bytes.Buffer{}
	root.SetOut(output)
	root.SetErr(output)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return output.String(), err
}

func TestSolveAndReport(t *testing.T) {
	//** Arrange
	directory := t.TempDir()
	out := filepath.Join(directory, "schedule.json")
	storeArgs := []string{"--store", "file", "--store-path", filepath.Join(directory, "runs")}

	//** Act
	output, err := execute(t, append([]string{"solve", "--file", testDirectory + "fixed_lessons_continuity.json", "--out", out}, storeArgs...)...)

	//** Assert
	require.NoError(t, err)
	assert.Contains(t, output, "Objective: 2")
	assert.Contains(t, output, "Continuity: 2 (0 protected)")
	assert.Equal(t, 10, model.ExitCode(err))

	schedule, err := model.ScheduleFromJson(out)
	require.NoError(t, err)
	assert.True(t, model.Validate(model.DefaultInstance(), schedule).Valid())

	match := regexp.MustCompile(`Run: ([0-9a-f-]{36})`).FindStringSubmatch(output)
	require.Len(t, match, 2)

	t.Run("Table report of the archived run", func(t *testing.T) {
		output, err := execute(t, append([]string{"report", "--run", match[1]}, storeArgs...)...)

		require.NoError(t, err)
		assert.Contains(t, output, "Teacher workload")
		assert.Contains(t, output, "Schedule of class8")
	})

	t.Run("CSV report of the schedule file", func(t *testing.T) {
		output, err := execute(t, "report", "--schedule", out, "--format", "csv")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(output, "# Study schedule\nclass,day,morning,midday,evening\n"))
	})

	t.Run("PDF report", func(t *testing.T) {
		pdf := filepath.Join(directory, "schedule.pdf")

		_, err := execute(t, "report", "--schedule", out, "--format", "pdf", "--out", pdf)

		require.NoError(t, err)
		bytes, err := os.ReadFile(pdf)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(bytes), "%PDF"))
	})
}

func TestSolveErrors(t *testing.T) {
	t.Run("Unknown solver", func(t *testing.T) {
		_, err := execute(t, "solve", "--file", testDirectory+"fixed_lessons.json", "--solver", "kissat")

		assert.ErrorContains(t, err, "unknown solver")
		assert.Equal(t, 1, model.ExitCode(err))
	})

	t.Run("Malformed plan", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "plan.json")
		require.NoError(t, os.WriteFile(file, []byte(`{"class7": {}}`), 0o644))

		_, err := execute(t, "solve", "--file", file)

		var malformed *model.MalformedInputError
		assert.ErrorAs(t, err, &malformed)
		assert.Equal(t, 1, model.ExitCode(err))
	})

	t.Run("Infeasible plan", func(t *testing.T) {
		//** Arrange
		instance := model.DefaultInstance()
		plan, err := model.PlanFromJson(instance, testDirectory+"fixed_lessons.json")
		require.NoError(t, err)
		for _, day := range []string{"tue", "thu"} {
			plan["class8"][day] = []string{"english", "english", "english", "english", "social", "math", "music", "science"}
		}
		lessons := make(map[string]map[string][]map[string]string)
		for class, days := range plan {
			lessons[class] = make(map[string][]map[string]string)
			for day, subjects := range days {
				for _, subject := range subjects {
					lessons[class][day] = append(lessons[class][day], map[string]string{"subject": subject})
				}
			}
		}
		document, err := json.Marshal(lessons)
		require.NoError(t, err)
		file := filepath.Join(t.TempDir(), "plan.json")
		require.NoError(t, os.WriteFile(file, document, 0o644))

		//** Act
		_, err = execute(t, "solve", "--file", file)

		//** Assert
		assert.ErrorIs(t, err, model.ErrInfeasible)
		assert.Equal(t, 20, model.ExitCode(err))
	})
}

func TestValidate(t *testing.T) {
	t.Run("Valid study schedule", func(t *testing.T) {
		output, err := execute(t, "validate", "--study", testDirectory+"study.json", "--file", testDirectory+"fixed_lessons_continuity.json")

		require.NoError(t, err)
		assert.Contains(t, output, "0 violations, 2 continuity windows")
	})

	t.Run("Shared subject", func(t *testing.T) {
		//** Arrange
		instance := model.DefaultInstance()
		study, err := model.StudyFromJson(instance, testDirectory+"study.json")
		require.NoError(t, err)
		assignment := study["class7"]["mon"]
		assignment.Morning = study["class8"]["mon"].Morning
		study["class7"]["mon"] = assignment
		document, err := json.Marshal(study)
		require.NoError(t, err)
		file := filepath.Join(t.TempDir(), "study.json")
		require.NoError(t, os.WriteFile(file, document, 0o644))

		//** Act
		output, err := execute(t, "validate", "--study", file, "--file", testDirectory+"fixed_lessons.json", "--json")

		//** Assert
		var failure *model.ValidationFailureError
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, 15, model.ExitCode(err))
		var validation model.Report
		require.NoError(t, json.Unmarshal([]byte(output), &validation))
		assert.NotEmpty(t, validation.Violations)
	})

	t.Run("Missing plan", func(t *testing.T) {
		_, err := execute(t, "validate", "--study", testDirectory+"study.json")

		assert.Error(t, err)
	})
}

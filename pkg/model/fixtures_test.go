package model

import (
	"context"
	"testing"

	"github.com/limaJavier/selfstudy/pkg/ilp"
	"github.com/stretchr/testify/require"
)

const testDirectory = "testdata/"

func loadPlan(t *testing.T, instance *Instance, file string) FixedLessonPlan {
	t.Helper()
	plan, err := PlanFromJson(instance, testDirectory+file)
	require.NoError(t, err)
	return plan
}

func loadStudy(t *testing.T, instance *Instance) StudySchedule {
	t.Helper()
	study, err := StudyFromJson(instance, testDirectory+"study.json")
	require.NoError(t, err)
	return study
}

// uniformPlan repeats the same lessons every day
func uniformPlan(instance *Instance, lessons map[string][]string) FixedLessonPlan {
	plan := make(FixedLessonPlan)
	for class, subjects := range lessons {
		plan[class] = make(map[string][]string)
		for _, day := range instance.Days {
			plan[class][day] = append([]string(nil), subjects...)
		}
	}
	return plan
}

// basePlan never lets a subject fill three consecutive positions
func basePlan(instance *Instance) FixedLessonPlan {
	return uniformPlan(instance, map[string][]string{
		"class7": {"chinese", "math", "pe", "english", "science", "art", "social", "music"},
		"class8": {"english", "pe", "chinese", "art", "social", "math", "music", "science"},
	})
}

// continuityPlan places math at positions 8 and 9, so both evening math units complete a window
func continuityPlan(instance *Instance) FixedLessonPlan {
	return uniformPlan(instance, map[string][]string{
		"class7": {"chinese", "social", "pe", "english", "science", "art", "math", "music"},
		"class8": {"english", "pe", "chinese", "art", "social", "music", "science", "math"},
	})
}

// recordingSolver counts its calls and delegates to another solver when one is given
type recordingSolver struct {
	calls    int
	delegate ilp.Solver
}

func (solver *recordingSolver) Solve(ctx context.Context, model *ilp.Model) (ilp.Solution, error) {
	solver.calls++
	if solver.delegate == nil {
		return ilp.Solution{Status: ilp.StatusUnknown}, nil
	}
	return solver.delegate.Solve(ctx, model)
}

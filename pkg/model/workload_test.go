package model

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkload(t *testing.T) {
	//** Arrange
	instance := DefaultInstance()
	schedule := Assemble(instance, loadStudy(t, instance), continuityPlan(instance))

	//** Act
	workloads := Workload(instance, schedule)

	//** Assert
	require.Len(t, workloads, len(instance.Subjects))
	math, ok := lo.Find(workloads, func(workload SubjectWorkload) bool { return workload.Subject == "math" })
	require.True(t, ok)

	// Two fixed lessons every day plus four study units in the week
	assert.Equal(t, 2*5+4, math.Weekly)
	assert.Equal(t, 4, math.Study)
	assert.Equal(t, 2, math.Windows)
	assert.Equal(t, 4, math.Daily["mon"])
	assert.Equal(t, []Duty{
		{Position: 5, Class: "class8", Kind: KindStudy, Session: "midday"},
		{Position: 8, Class: "class7", Kind: KindFixed},
		{Position: 9, Class: "class8", Kind: KindFixed},
		{Position: 10, Class: "class8", Kind: KindStudy, Session: "evening"},
	}, math.Duties["mon"])

	for _, workload := range workloads {
		total := 0
		for _, day := range instance.Days {
			assert.LessOrEqual(t, workload.Daily[day], instance.TeacherDailyCap)
			total += workload.Daily[day]
		}
		assert.Equal(t, total, workload.Weekly)
	}
}

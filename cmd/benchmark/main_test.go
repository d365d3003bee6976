package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/selfstudy/pkg/model"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, int64(60*1000+1000+120), parseDuration("00:01:01.12"))
	assert.Equal(t, int64(60*60*1000+60*1000+1000+120), parseDuration("01:01:01.12"))
	assert.Equal(t, int64(60*1000+1000+120), parseDuration("1:01.12"))
	assert.Equal(t, int64(120), parseDuration("0:00.12"))
	assert.Equal(t, int64(120), parseDuration("00:00:00.12"))
}

func TestParseObjective(t *testing.T) {
	output := "{}\nRun: 00000000-0000-0000-0000-000000000000\nVariables: 375\nConstraints: 687\nObjective: 2\n"

	assert.Equal(t, 2, parseObjective(output))
}

func TestDescribe(t *testing.T) {
	//** Arrange
	instance := model.DefaultInstance()
	plan, err := model.PlanFromJson(instance, "../../pkg/model/testdata/fixed_lessons_continuity.json")
	require.NoError(t, err)

	//** Act
	managed, pairs := describe(instance, plan)

	//** Assert
	// Five managed lessons per class and day, math at positions 8 and 9 every day
	assert.Equal(t, 2*5*5, managed)
	assert.Equal(t, 5, pairs)
}

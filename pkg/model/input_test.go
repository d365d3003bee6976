package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanFromJson(t *testing.T) {
	instance := DefaultInstance()

	t.Run("Valid file", func(t *testing.T) {
		plan, err := PlanFromJson(instance, testDirectory+"fixed_lessons.json")

		require.NoError(t, err)
		assert.Equal(t, basePlan(instance), plan)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := PlanFromJson(instance, testDirectory+"missing.json")

		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Malformed documents", func(t *testing.T) {
		base := map[string]any{}
		for class, days := range basePlan(instance) {
			base[class] = map[string]any{}
			for day, subjects := range days {
				lessons := make([]any, len(subjects))
				for i, subject := range subjects {
					lessons[i] = map[string]any{"subject": subject}
				}
				base[class].(map[string]any)[day] = lessons
			}
		}
		clone := func() map[string]any {
			bytes, _ := json.Marshal(base)
			var copied map[string]any
			_ = json.Unmarshal(bytes, &copied)
			return copied
		}

		scenarios := map[string]func(document map[string]any){
			"missing day": func(document map[string]any) {
				delete(document["class8"].(map[string]any), "thu")
			},
			"short day": func(document map[string]any) {
				days := document["class7"].(map[string]any)
				days["mon"] = days["mon"].([]any)[:6]
			},
			"missing class": func(document map[string]any) {
				delete(document, "class7")
			},
			"subject is not a string": func(document map[string]any) {
				lessons := document["class7"].(map[string]any)["tue"].([]any)
				lessons[2] = map[string]any{"subject": 3}
			},
			"lesson without subject": func(document map[string]any) {
				lessons := document["class8"].(map[string]any)["fri"].([]any)
				lessons[0] = map[string]any{"course": "math"}
			},
		}

		for name, mutate := range scenarios {
			//** Arrange
			document := clone()
			mutate(document)
			bytes, err := json.Marshal(document)
			require.NoError(t, err)

			//** Act
			plan, err := PlanFromBytes(instance, bytes)

			//** Assert
			assert.Nil(t, plan, name)
			var malformed *MalformedInputError
			assert.ErrorAs(t, err, &malformed, name)
		}
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		_, err := PlanFromBytes(instance, []byte("{"))

		var malformed *MalformedInputError
		assert.ErrorAs(t, err, &malformed)
	})
}

func TestStudyFromJson(t *testing.T) {
	instance := DefaultInstance()

	t.Run("Valid file", func(t *testing.T) {
		study := loadStudy(t, instance)

		assert.Equal(t, StudyAssignment{Morning: "chinese", Midday: "math", Evening: "english"}, study["class7"]["tue"])
		assert.Equal(t, StudyAssignment{Morning: "english", Midday: "chinese", Evening: "science"}, study["class8"]["fri"])
	})

	t.Run("Empty slots", func(t *testing.T) {
		document := `{"class7": {"mon": {"morning": ""}, "tue": {}, "wed": {}, "thu": {}, "fri": {}},
			"class8": {"mon": {}, "tue": {}, "wed": {}, "thu": {}, "fri": {"evening": "math"}}}`

		study, err := StudyFromBytes(instance, []byte(document))

		require.NoError(t, err)
		assert.Equal(t, StudyAssignment{}, study["class7"]["mon"])
		assert.Equal(t, StudyAssignment{Evening: "math"}, study["class8"]["fri"])
	})

	t.Run("Unknown subject", func(t *testing.T) {
		document := `{"class7": {"mon": {"morning": "latin"}, "tue": {}, "wed": {}, "thu": {}, "fri": {}},
			"class8": {"mon": {}, "tue": {}, "wed": {}, "thu": {}, "fri": {}}}`

		_, err := StudyFromBytes(instance, []byte(document))

		var malformed *MalformedInputError
		assert.ErrorAs(t, err, &malformed)
	})
}

func TestScheduleFromJson(t *testing.T) {
	//** Arrange
	instance := DefaultInstance()
	schedule := Assemble(instance, loadStudy(t, instance), basePlan(instance))
	bytes, err := json.Marshal(schedule)
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "schedule.json")
	require.NoError(t, os.WriteFile(file, bytes, 0o644))

	//** Act
	loaded, err := ScheduleFromJson(file)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, schedule, loaded)
	assert.True(t, Validate(instance, loaded).Valid())
}

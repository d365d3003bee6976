package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

type rawLesson struct {
	Subject string `mapstructure:"subject"`
}

// PlanFromJson reads a fixed lesson plan shaped as {class: {day: [{"subject": ...} x8]}}
func PlanFromJson(instance *Instance, file string) (FixedLessonPlan, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return PlanFromBytes(instance, bytes)
}

func PlanFromBytes(instance *Instance, bytes []byte) (FixedLessonPlan, error) {
	var inputJson any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return nil, &MalformedInputError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	var rawPlan map[string]map[string][]rawLesson
	if err := mapstructure.Decode(inputJson, &rawPlan); err != nil {
		return nil, &MalformedInputError{Reason: err.Error()}
	}

	plan := make(FixedLessonPlan, len(rawPlan))
	for class, days := range rawPlan {
		plan[class] = make(map[string][]string, len(days))
		for day, lessons := range days {
			plan[class][day] = make([]string, len(lessons))
			for i, lesson := range lessons {
				plan[class][day][i] = lesson.Subject
			}
		}
	}

	// Report missing classes, days and lessons precisely before the schema catches anything else
	if err := plan.Validate(instance); err != nil {
		return nil, err
	}
	if err := validateAgainst("fixed-lessons", planSchema(instance), inputJson); err != nil {
		return nil, err
	}
	return plan, nil
}

// StudyFromJson reads a study schedule shaped as {class: {day: {"morning": s, "midday": s, "evening": s}}}
func StudyFromJson(instance *Instance, file string) (StudySchedule, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return StudyFromBytes(instance, bytes)
}

func StudyFromBytes(instance *Instance, bytes []byte) (StudySchedule, error) {
	var inputJson any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return nil, &MalformedInputError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if err := validateAgainst("study-schedule", studySchema(instance), inputJson); err != nil {
		return nil, err
	}

	var rawStudy map[string]map[string]StudyAssignment
	if err := mapstructure.Decode(inputJson, &rawStudy); err != nil {
		return nil, &MalformedInputError{Reason: err.Error()}
	}

	study := NewStudySchedule(instance)
	for class, days := range rawStudy {
		for day, assignment := range days {
			study[class][day] = assignment
		}
	}
	return study, nil
}

// ScheduleFromJson reads a complete schedule in the format produced by the solve command
func ScheduleFromJson(file string) (Schedule, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return nil, &MalformedInputError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	var schedule Schedule
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: &schedule})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return nil, &MalformedInputError{Reason: err.Error()}
	}
	return schedule, nil
}

package model

import (
	"fmt"
	"slices"
)

const (
	// PositionsPerDay is the length of a class's daily sequence: three study sessions around eight fixed lessons
	PositionsPerDay = 11
	// FixedLessonsPerDay is the number of fixed lessons per class and day
	FixedLessonsPerDay = 8
)

type Session int

const (
	Morning Session = iota
	Midday
	Evening
)

// Sessions lists the session types in daily order
var Sessions = []Session{Morning, Midday, Evening}

func (session Session) String() string {
	switch session {
	case Morning:
		return "morning"
	case Midday:
		return "midday"
	case Evening:
		return "evening"
	}
	return fmt.Sprintf("Session(%d)", int(session))
}

// Position returns the session's nominal position in the daily sequence
func (session Session) Position() int {
	switch session {
	case Morning:
		return 0
	case Midday:
		return 5
	default:
		return 10
	}
}

func ParseSession(name string) (Session, error) {
	for _, session := range Sessions {
		if session.String() == name {
			return session, nil
		}
	}
	return 0, fmt.Errorf("unknown session %q", name)
}

// FixedPosition maps a fixed lesson ordinal (0..7) to its position in the daily sequence
func FixedPosition(ordinal int) int {
	if ordinal < 4 {
		return ordinal + 1
	}
	return ordinal + 2
}

// PositionSession returns the study session placed at position, ok is false for fixed positions
func PositionSession(position int) (session Session, ok bool) {
	for _, session := range Sessions {
		if session.Position() == position {
			return session, true
		}
	}
	return 0, false
}

// PositionOrdinal is the inverse of FixedPosition, ok is false for study positions
func PositionOrdinal(position int) (ordinal int, ok bool) {
	if _, study := PositionSession(position); study || position < 0 || position >= PositionsPerDay {
		return 0, false
	}
	if position < 5 {
		return position - 1, true
	}
	return position - 2, true
}

type Kind string

const (
	KindFixed Kind = "fixed"
	KindStudy Kind = "study"
)

// FixedLessonSlot is one lesson of the externally supplied timetable
type FixedLessonSlot struct {
	Class   string
	Day     string
	Ordinal int
	Subject string
}

// FixedLessonPlan maps class -> day -> the subjects of the day's eight fixed lessons
type FixedLessonPlan map[string]map[string][]string

// Slots flattens the plan in instance order (class, day, ordinal)
func (plan FixedLessonPlan) Slots(instance *Instance) []FixedLessonSlot {
	slots := make([]FixedLessonSlot, 0, len(instance.Classes)*len(instance.Days)*FixedLessonsPerDay)
	for _, class := range instance.Classes {
		for _, day := range instance.Days {
			for ordinal, subject := range plan[class][day] {
				slots = append(slots, FixedLessonSlot{Class: class, Day: day, Ordinal: ordinal, Subject: subject})
			}
		}
	}
	return slots
}

// Validate checks that every class and day of the instance is present with exactly eight lessons
func (plan FixedLessonPlan) Validate(instance *Instance) error {
	for _, class := range instance.Classes {
		days, ok := plan[class]
		if !ok {
			return &MalformedInputError{Class: class, Reason: "class is missing"}
		}
		for _, day := range instance.Days {
			lessons, ok := days[day]
			if !ok {
				return &MalformedInputError{Class: class, Day: day, Reason: "day is missing"}
			} else if len(lessons) != FixedLessonsPerDay {
				return &MalformedInputError{Class: class, Day: day, Reason: fmt.Sprintf("expected %d lessons, found %d", FixedLessonsPerDay, len(lessons))}
			}
		}
		for day := range days {
			if !slices.Contains(instance.Days, day) {
				return &MalformedInputError{Class: class, Day: day, Reason: "unknown day"}
			}
		}
	}
	for class := range plan {
		if !slices.Contains(instance.Classes, class) {
			return &MalformedInputError{Class: class, Reason: "unknown class"}
		}
	}
	return nil
}

// StudyAssignment holds the subjects of a class's three study sessions on one day, an empty string is an empty slot
type StudyAssignment struct {
	Morning string `json:"morning" mapstructure:"morning"`
	Midday  string `json:"midday" mapstructure:"midday"`
	Evening string `json:"evening" mapstructure:"evening"`
}

func (assignment StudyAssignment) Get(session Session) string {
	switch session {
	case Morning:
		return assignment.Morning
	case Midday:
		return assignment.Midday
	default:
		return assignment.Evening
	}
}

func (assignment *StudyAssignment) Set(session Session, subject string) {
	switch session {
	case Morning:
		assignment.Morning = subject
	case Midday:
		assignment.Midday = subject
	default:
		assignment.Evening = subject
	}
}

// StudySchedule maps class -> day -> study assignment
type StudySchedule map[string]map[string]StudyAssignment

// NewStudySchedule returns an all-empty study schedule covering the instance
func NewStudySchedule(instance *Instance) StudySchedule {
	study := make(StudySchedule, len(instance.Classes))
	for _, class := range instance.Classes {
		study[class] = make(map[string]StudyAssignment, len(instance.Days))
		for _, day := range instance.Days {
			study[class][day] = StudyAssignment{}
		}
	}
	return study
}

type ScheduleEntry struct {
	Position int    `json:"position"`
	Subject  string `json:"subject"`
	Kind     Kind   `json:"kind"`
	Session  string `json:"session,omitempty"`
}

// Schedule maps class -> day -> the eleven entries of the day
type Schedule map[string]map[string][]ScheduleEntry

package model

import (
	"errors"
	"fmt"
	"slices"
)

// SubjectDay names a subject on a given day
type SubjectDay struct {
	Subject string
	Day     string
}

// Instance holds every constant of a scheduling problem. Components receive it explicitly so several instances can coexist
type Instance struct {
	Name     string
	Classes  []string
	Days     []string
	Subjects []string

	// Quotas holds, per session and subject, the number of study units across all classes. Missing entries mean 0
	Quotas map[Session]map[string]int
	// EveningDays restricts a subject's evening study to the listed days
	EveningDays map[string][]string
	// EveningBlackouts can never hold evening study
	EveningBlackouts []SubjectDay
	// EveningExclusions can never hold evening study either, they are reported under a separate rule
	EveningExclusions []SubjectDay

	ClassDailyCap   int
	TeacherDailyCap int

	ContinuityWidth  int
	ProtectedSubject string
	ProtectedWeight  int
	DefaultWeight    int
}

// DefaultInstance returns the school's two-section instance
func DefaultInstance() *Instance {
	subjects := []string{"chinese", "math", "english", "science", "social"}
	perSession := func() map[string]int {
		quotas := make(map[string]int, len(subjects))
		for _, subject := range subjects {
			quotas[subject] = 2
		}
		return quotas
	}

	return &Instance{
		Name:     "default",
		Classes:  []string{"class7", "class8"},
		Days:     []string{"mon", "tue", "wed", "thu", "fri"},
		Subjects: subjects,
		Quotas: map[Session]map[string]int{
			Morning: {"chinese": 4, "math": 0, "english": 4, "science": 0, "social": 2},
			Midday:  perSession(),
			Evening: perSession(),
		},
		EveningDays:       map[string][]string{"english": {"tue", "thu"}},
		EveningBlackouts:  []SubjectDay{{Subject: "science", Day: "tue"}, {Subject: "math", Day: "thu"}},
		EveningExclusions: []SubjectDay{{Subject: "social", Day: "wed"}},
		ClassDailyCap:     4,
		TeacherDailyCap:   4,
		ContinuityWidth:   3,
		ProtectedSubject:  "science",
		ProtectedWeight:   10,
		DefaultWeight:     1,
	}
}

// Validate checks the instance's internal consistency
func (instance *Instance) Validate() error {
	var errs []error
	if hasDuplicates(instance.Classes) || hasDuplicates(instance.Days) || hasDuplicates(instance.Subjects) {
		errs = append(errs, errors.New("classes, days and subjects must be unique"))
	}
	if instance.ContinuityWidth < 1 || instance.ContinuityWidth > PositionsPerDay {
		errs = append(errs, fmt.Errorf("continuity width must be within 1 and %d", PositionsPerDay))
	}
	for session, quotas := range instance.Quotas {
		for subject, quota := range quotas {
			if !instance.Manages(subject) {
				errs = append(errs, fmt.Errorf("%v quota refers to unknown subject %q", session, subject))
			} else if quota < 0 || (len(instance.Classes) > 0 && quota%len(instance.Classes) != 0) {
				errs = append(errs, fmt.Errorf("%v quota of %v (%d) does not split evenly across %d classes", session, subject, quota, len(instance.Classes)))
			}
		}
	}
	for subject, days := range instance.EveningDays {
		if !instance.Manages(subject) {
			errs = append(errs, fmt.Errorf("evening days refer to unknown subject %q", subject))
		}
		for _, day := range days {
			if !slices.Contains(instance.Days, day) {
				errs = append(errs, fmt.Errorf("evening days of %v refer to unknown day %q", subject, day))
			}
		}
	}
	for _, pair := range slices.Concat(instance.EveningBlackouts, instance.EveningExclusions) {
		if !instance.Manages(pair.Subject) || !slices.Contains(instance.Days, pair.Day) {
			errs = append(errs, fmt.Errorf("evening restriction refers to unknown pair (%v, %v)", pair.Subject, pair.Day))
		}
	}
	return errors.Join(errs...)
}

// Manages checks whether subject belongs to the instance's scheduled subjects
func (instance *Instance) Manages(subject string) bool {
	return slices.Contains(instance.Subjects, subject)
}

// Quota returns the number of study units of subject in session across all classes
func (instance *Instance) Quota(session Session, subject string) int {
	return instance.Quotas[session][subject]
}

// ClassQuota returns the share of Quota each class must receive
func (instance *Instance) ClassQuota(session Session, subject string) int {
	if len(instance.Classes) == 0 {
		return 0
	}
	return instance.Quota(session, subject) / len(instance.Classes)
}

// EveningRule returns the number of the rule forbidding subject in the evening of day, 0 if it is allowed
func (instance *Instance) EveningRule(subject, day string) int {
	if days, ok := instance.EveningDays[subject]; ok && !slices.Contains(days, day) {
		return ruleEveningDays
	}
	pair := SubjectDay{Subject: subject, Day: day}
	if slices.Contains(instance.EveningBlackouts, pair) {
		return ruleEveningBlackout
	} else if slices.Contains(instance.EveningExclusions, pair) {
		return ruleEveningExclusion
	}
	return 0
}

func (instance *Instance) Weight(subject string) int {
	if subject == instance.ProtectedSubject {
		return instance.ProtectedWeight
	}
	return instance.DefaultWeight
}

// Windows returns the number of continuity windows of a day
func (instance *Instance) Windows() int {
	return max(PositionsPerDay-instance.ContinuityWidth+1, 0)
}

func hasDuplicates(values []string) bool {
	seen := make(map[string]bool, len(values))
	for _, value := range values {
		if seen[value] {
			return true
		}
		seen[value] = true
	}
	return false
}

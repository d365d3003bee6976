package model

import (
	"fmt"
	"slices"
)

// ForbiddenEveningSlot prefixes the violations of rules 2, 3 and 7
const ForbiddenEveningSlot = "forbidden evening slot"

type Violation struct {
	Rule    int    `json:"rule"`
	Message string `json:"message"`
}

func (violation Violation) String() string {
	return fmt.Sprintf("rule %d: %v", violation.Rule, violation.Message)
}

// Window is a continuity window whose load reached the window's width
type Window struct {
	Day       string `json:"day"`
	Subject   string `json:"subject"`
	Start     int    `json:"start"`
	Protected bool   `json:"protected"`
}

type Continuity struct {
	Total     int      `json:"total"`
	Protected int      `json:"protected"`
	Windows   []Window `json:"windows"`
}

type Report struct {
	Violations []Violation `json:"violations"`
	Continuity Continuity  `json:"continuity"`
}

func (report Report) Valid() bool {
	return len(report.Violations) == 0
}

func (report Report) Messages() []string {
	messages := make([]string, len(report.Violations))
	for i, violation := range report.Violations {
		messages[i] = violation.String()
	}
	return messages
}

// ValidateStudy assembles study with plan and validates the result
func ValidateStudy(instance *Instance, study StudySchedule, plan FixedLessonPlan) (Report, error) {
	if err := plan.Validate(instance); err != nil {
		return Report{}, err
	}
	return Validate(instance, Assemble(instance, study, plan)), nil
}

// Validate recomputes every rule from the schedule alone. It never looks at solver state, so hand-built schedules are checked the same way
func Validate(instance *Instance, schedule Schedule) Report {
	violations := make([]Violation, 0)
	report := func(rule int, format string, args ...any) {
		violations = append(violations, Violation{Rule: rule, Message: fmt.Sprintf(format, args...)})
	}

	//** Structure: every class and day holds eleven positions with study sessions in place
	for _, class := range instance.Classes {
		for _, day := range instance.Days {
			entries, ok := schedule[class][day]
			if !ok {
				report(ruleSingleSubject, "%v has no schedule on %v", class, day)
				continue
			} else if len(entries) != PositionsPerDay {
				report(ruleSingleSubject, "%v on %v has %d positions, expected %d", class, day, len(entries), PositionsPerDay)
			}
			for i, entry := range entries {
				session, study := PositionSession(i)
				switch {
				case entry.Position != i:
					report(ruleSingleSubject, "%v on %v: entry %d is labelled position %d", class, day, i, entry.Position)
				case study && (entry.Kind != KindStudy || entry.Session != session.String()):
					report(ruleSingleSubject, "%v on %v: position %d must be the %v study slot", class, day, i, session)
				case !study && entry.Kind != KindFixed:
					report(ruleSingleSubject, "%v on %v: position %d must be a fixed lesson", class, day, i)
				case study && entry.Subject != "" && !instance.Manages(entry.Subject):
					report(ruleSingleSubject, "%v on %v: %v study slot holds unknown subject %q", class, day, session, entry.Subject)
				}
			}
		}
	}

	study := StudyOf(instance, schedule)

	//** Rules 1 and 4: quotas per session, in total and per class
	for _, session := range Sessions {
		rule := ruleSessionQuota
		if session == Morning {
			rule = ruleMorningQuota
		}
		for _, subject := range instance.Subjects {
			total := 0
			for _, class := range instance.Classes {
				count := 0
				for _, day := range instance.Days {
					if study[class][day].Get(session) == subject {
						count++
					}
				}
				total += count
				if expected := instance.ClassQuota(session, subject); count != expected {
					report(rule, "%v has %d %v units of %v, expected %d", class, count, session, subject, expected)
				}
			}
			if expected := instance.Quota(session, subject); total != expected {
				report(rule, "%d %v units of %v in total, expected %d", total, session, subject, expected)
			}
		}
	}

	//** Rules 2, 3 and 7: forbidden evening slots
	for _, class := range instance.Classes {
		for _, day := range instance.Days {
			subject := study[class][day].Evening
			if subject == "" {
				continue
			}
			if rule := instance.EveningRule(subject, day); rule != 0 {
				report(rule, "%v: %v has %v in the evening on %v", ForbiddenEveningSlot, class, subject, day)
			}
		}
	}

	//** Rule 5: class daily cap
	for _, class := range instance.Classes {
		for _, day := range instance.Days {
			for _, subject := range instance.Subjects {
				if load := classDailyLoadCount(schedule, class, day, subject); load > instance.ClassDailyCap {
					report(ruleClassDailyCap, "%v has %d units of %v on %v, cap is %d", class, load, subject, day, instance.ClassDailyCap)
				}
			}
		}
	}

	//** Rule 6: teacher daily cap
	for _, day := range instance.Days {
		for _, subject := range instance.Subjects {
			if load := teacherDailyLoadCount(schedule, instance, day, subject); load > instance.TeacherDailyCap {
				report(ruleTeacherDailyCap, "%v teacher has %d units on %v, cap is %d", subject, load, day, instance.TeacherDailyCap)
			}
		}
	}

	//** Rule 8: classes never share a subject in a study slot
	for _, day := range instance.Days {
		for _, session := range Sessions {
			owners := make(map[string]string)
			for _, class := range instance.Classes {
				subject := study[class][day].Get(session)
				if subject == "" {
					continue
				}
				if owner, ok := owners[subject]; ok {
					report(ruleDistinctSubjects, "%v and %v both study %v on %v %v", owner, class, subject, day, session)
					continue
				}
				owners[subject] = class
			}
		}
	}

	slices.SortStableFunc(violations, func(a, b Violation) int {
		return a.Rule - b.Rule
	})

	return Report{Violations: violations, Continuity: continuity(instance, schedule)}
}

func continuity(instance *Instance, schedule Schedule) Continuity {
	result := Continuity{Windows: make([]Window, 0)}
	for _, day := range instance.Days {
		for _, subject := range instance.Subjects {
			for window := range instance.Windows() {
				if windowLoadCount(schedule, instance, day, subject, window) < instance.ContinuityWidth {
					continue
				}
				protected := subject == instance.ProtectedSubject
				result.Windows = append(result.Windows, Window{Day: day, Subject: subject, Start: window, Protected: protected})
				result.Total++
				if protected {
					result.Protected++
				}
			}
		}
	}
	return result
}

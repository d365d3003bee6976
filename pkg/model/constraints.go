package model

import (
	"fmt"
	"math"

	"github.com/limaJavier/selfstudy/pkg/ilp"
)

// Rule numbers as reported by the validator
const (
	ruleMorningQuota     = 1
	ruleEveningDays      = 2
	ruleEveningBlackout  = 3
	ruleSessionQuota     = 4
	ruleClassDailyCap    = 5
	ruleTeacherDailyCap  = 6
	ruleEveningExclusion = 7
	ruleDistinctSubjects = 8
	ruleSingleSubject    = 9
)

type constraintState struct {
	instance  *Instance
	evaluator predicateEvaluator
	indexer   indexer
	generator permutationGenerator

	classes,
	days,
	sessions,
	subjects,
	windows uint64
}

func (state constraintState) variable(class, day, session, subject uint64) ilp.Var {
	return ilp.Var(state.indexer.Index(class, day, session, subject))
}

func (state constraintState) indicator(day, subject, window uint64) ilp.Var {
	return ilp.Var(state.indexer.WindowIndex(day, subject, window))
}

func (state constraintState) name(rule string, parts ...uint64) string {
	return fmt.Sprintf("%v%v", rule, parts)
}

// Rule 1: morning study quotas, in total and split evenly per class
func morningQuotaConstraints(state constraintState) []ilp.Constraint {
	return quotaConstraints(state, Morning)
}

// Rule 4: midday and evening study quotas, in total and split evenly per class
func sessionQuotaConstraints(state constraintState) []ilp.Constraint {
	return append(quotaConstraints(state, Midday), quotaConstraints(state, Evening)...)
}

func quotaConstraints(state constraintState, session Session) []ilp.Constraint {
	constraints := make([]ilp.Constraint, 0)
	for subject := range state.subjects {
		name := state.instance.Subjects[subject]

		total := ilp.Expr{}
		for class := range state.classes {
			perClass := ilp.Expr{}
			for day := range state.days {
				perClass = perClass.Add(state.variable(class, day, uint64(session), subject), 1)
			}
			total = total.Plus(perClass)
			constraints = append(constraints, perClass.Equal(state.name("quota-class", uint64(session), subject, class), state.instance.ClassQuota(session, name)))
		}
		constraints = append(constraints, total.Equal(state.name("quota", uint64(session), subject), state.instance.Quota(session, name)))
	}
	return constraints
}

// Rule 2: a subject's evening study only on its allowed days
func eveningDaysConstraints(state constraintState) []ilp.Constraint {
	return forbiddenEveningConstraints(state, ruleEveningDays)
}

// Rule 3: blacked out (subject, day) pairs never hold evening study
func eveningBlackoutConstraints(state constraintState) []ilp.Constraint {
	return forbiddenEveningConstraints(state, ruleEveningBlackout)
}

// Rule 7: excluded (subject, day) pairs never hold evening study
func eveningExclusionConstraints(state constraintState) []ilp.Constraint {
	return forbiddenEveningConstraints(state, ruleEveningExclusion)
}

func forbiddenEveningConstraints(state constraintState, rule int) []ilp.Constraint {
	permutations := state.generator.ConstrainedPermutations([]func(permutation []uint64) bool{
		// Session = Evening
		func(permutation []uint64) bool {
			session := permutation[2]

			return session == math.MaxUint64 ||

				// Actual predicate
				Session(session) == Evening
		},
		// EveningRule(subject, day) = rule
		func(permutation []uint64) bool {
			day, subject := permutation[1], permutation[3]

			return day == math.MaxUint64 ||
				subject == math.MaxUint64 ||

				// Actual predicate
				state.evaluator.EveningRule(subject, day) == rule
		},
	})

	constraints := make([]ilp.Constraint, 0, len(permutations))
	for _, permutation := range permutations {
		class, day, session, subject := permutation[0], permutation[1], permutation[2], permutation[3]
		constraints = append(constraints, ilp.Sum(state.variable(class, day, session, subject)).Equal(state.name(fmt.Sprintf("evening-rule%d", rule), class, day, subject), 0))
	}
	return constraints
}

// Rule 5: per class, day and subject, fixed lessons plus study units stay within the class cap
func classDailyCapConstraints(state constraintState) []ilp.Constraint {
	constraints := make([]ilp.Constraint, 0, state.classes*state.days*state.subjects)
	for class := range state.classes {
		for day := range state.days {
			for subject := range state.subjects {
				constraints = append(constraints, classDailyLoadExpr(state, class, day, subject).LessEqual(state.name("class-cap", class, day, subject), state.instance.ClassDailyCap))
			}
		}
	}
	return constraints
}

// Rule 6: per day and subject, the teacher's load over all classes stays within the teacher cap
func teacherDailyCapConstraints(state constraintState) []ilp.Constraint {
	constraints := make([]ilp.Constraint, 0, state.days*state.subjects)
	for day := range state.days {
		for subject := range state.subjects {
			constraints = append(constraints, teacherDailyLoadExpr(state, day, subject).LessEqual(state.name("teacher-cap", day, subject), state.instance.TeacherDailyCap))
		}
	}
	return constraints
}

// Rule 8: classes never share a subject in the same study slot
func distinctSubjectsConstraints(state constraintState) []ilp.Constraint {
	constraints := make([]ilp.Constraint, 0, state.days*state.sessions*state.subjects)
	for day := range state.days {
		for session := range state.sessions {
			for subject := range state.subjects {
				expr := ilp.Expr{}
				for class := range state.classes {
					expr = expr.Add(state.variable(class, day, session, subject), 1)
				}
				constraints = append(constraints, expr.LessEqual(state.name("distinct", day, session, subject), 1))
			}
		}
	}
	return constraints
}

// Rule 9: a study slot holds at most one subject
func singleSubjectConstraints(state constraintState) []ilp.Constraint {
	constraints := make([]ilp.Constraint, 0, state.classes*state.days*state.sessions)
	for class := range state.classes {
		for day := range state.days {
			for session := range state.sessions {
				expr := ilp.Expr{}
				for subject := range state.subjects {
					expr = expr.Add(state.variable(class, day, session, subject), 1)
				}
				constraints = append(constraints, expr.LessEqual(state.name("single", class, day, session), 1))
			}
		}
	}
	return constraints
}

// Continuity reification: indicator = 1 iff the window's load reaches the window's width
func continuityConstraints(state constraintState) []ilp.Constraint {
	width := state.instance.ContinuityWidth
	constraints := make([]ilp.Constraint, 0, 2*state.days*state.subjects*state.windows)
	for day := range state.days {
		for subject := range state.subjects {
			for window := range state.windows {
				indicator := ilp.Sum(state.indicator(day, subject, window))
				load := windowLoadExpr(state, day, subject, window)

				// indicator >= load - (width - 1)
				constraints = append(constraints, indicator.Plus(load.Scale(-1)).GreaterEqual(state.name("continuity-lower", day, subject, window), 1-width))
				// width * indicator <= load
				constraints = append(constraints, indicator.Scale(width).Plus(load.Scale(-1)).LessEqual(state.name("continuity-upper", day, subject, window), 0))
			}
		}
	}
	return constraints
}

package model

import (
	"fmt"
	"strings"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// studyUnit is one study unit a class must receive in a session
type studyUnit struct {
	subject uint64
	k       int
}

// precheck looks for a (class, session) whose required study units cannot be matched to distinct days.
// Every day offers one slot per class and session, a unit fits a day if its subject is allowed there and both
// daily caps leave room for one more unit. It is a relaxation of the model, so a failure proves infeasibility
func precheck(instance *Instance, plan FixedLessonPlan) error {
	totalClasses, totalDays, _, totalSubjects, _ := getAttributes(instance)
	evaluator := newPredicateEvaluator(instance, plan)

	problems := make([]string, 0)
	for _, session := range Sessions {
		for class := range totalClasses {
			units := make([]studyUnit, 0)
			for subject := range totalSubjects {
				for k := range instance.ClassQuota(session, instance.Subjects[subject]) {
					units = append(units, studyUnit{subject: subject, k: k})
				}
			}
			if len(units) == 0 {
				continue
			}

			days := make([]uint64, totalDays)
			for day := range totalDays {
				days[day] = day
			}

			neighbors := func(unitAny, dayAny any) (bool, error) {
				unit, day := unitAny.(studyUnit), dayAny.(uint64)
				return evaluator.Allowed(uint64(session), unit.subject, day) &&
					evaluator.FixedCount(class, day, unit.subject)+1 <= instance.ClassDailyCap &&
					evaluator.FixedLoad(day, unit.subject)+1 <= instance.TeacherDailyCap, nil
			}

			// Transform units and days to slices of any
			unitsAny, daysAny := lo.Map(units, func(unit studyUnit, _ int) any { return unit }), lo.Map(days, func(day uint64, _ int) any { return day })

			graph, err := bipartitegraph.NewBipartiteGraph(unitsAny, daysAny, neighbors)
			if err != nil {
				return err
			}

			matching := graph.LargestMatching()

			// Check the matching covers every unit
			if len(matching) < len(units) {
				matched := make(map[int]bool, len(matching))
				for _, edge := range matching {
					matched[edge.Node1] = true
				}
				unplaced := make([]string, 0)
				for i, unit := range units {
					if !matched[i] {
						unplaced = append(unplaced, instance.Subjects[unit.subject])
					}
				}
				problems = append(problems, fmt.Sprintf("%v %v cannot place %v", instance.Classes[class], session, strings.Join(lo.Uniq(unplaced), ", ")))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("quota placement impossible: %v", strings.Join(problems, "; "))
	}
	return nil
}

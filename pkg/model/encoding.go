package model

import (
	"fmt"
	"slices"

	"github.com/limaJavier/selfstudy/pkg/ilp"
)

// Encoding is the linear model of an instance together with the lookup of its decision variables
type Encoding struct {
	Model *ilp.Model

	instance *Instance
	state    constraintState
}

// BuildModel validates the plan and encodes every rule, the continuity reification and the objective
func BuildModel(instance *Instance, plan FixedLessonPlan) (*Encoding, error) {
	if err := instance.Validate(); err != nil {
		return nil, fmt.Errorf("invalid instance %q: %w", instance.Name, err)
	}
	if err := plan.Validate(instance); err != nil {
		return nil, err
	}
	return buildModel(instance, plan), nil
}

func buildModel(instance *Instance, plan FixedLessonPlan) *Encoding {
	//** Extract attributes's domains
	totalClasses, totalDays, totalSessions, totalSubjects, totalWindows := getAttributes(instance)

	//** Initialize dependencies
	state := constraintState{
		instance:  instance,
		evaluator: newPredicateEvaluator(instance, plan),
		indexer:   newIndexer(totalClasses, totalDays, totalSessions, totalSubjects, totalWindows),
		generator: newPermutationGenerator(totalClasses, totalDays, totalSessions, totalSubjects),
		classes:   totalClasses,
		days:      totalDays,
		sessions:  totalSessions,
		subjects:  totalSubjects,
		windows:   totalWindows,
	}

	//** Declare variables in index order so that ilp.Var and indexer agree
	model := ilp.NewModel(instance.Name)
	for index := uint64(1); index <= state.indexer.Variables(); index++ {
		model.AddVariable(variableName(state, index))
	}

	//** Encode rules
	constraints := []func(state constraintState) []ilp.Constraint{
		morningQuotaConstraints,
		eveningDaysConstraints,
		eveningBlackoutConstraints,
		sessionQuotaConstraints,
		classDailyCapConstraints,
		teacherDailyCapConstraints,
		eveningExclusionConstraints,
		distinctSubjectsConstraints,
		singleSubjectConstraints,
		continuityConstraints,
	}
	for _, constraint := range constraints {
		model.AddConstraints(constraint(state)...)
	}

	model.Minimize(objective(state))

	return &Encoding{Model: model, instance: instance, state: state}
}

func getAttributes(instance *Instance) (classes, days, sessions, subjects, windows uint64) {
	return uint64(len(instance.Classes)),
		uint64(len(instance.Days)),
		uint64(len(Sessions)),
		uint64(len(instance.Subjects)),
		uint64(instance.Windows())
}

func variableName(state constraintState, index uint64) string {
	instance := state.instance
	if state.indexer.IsAssignment(index) {
		class, day, session, subject := state.indexer.Attributes(index)
		return fmt.Sprintf("x_%v_%v_%v_%v", instance.Classes[class], instance.Days[day], Session(session), instance.Subjects[subject])
	}
	day, subject, window := state.indexer.WindowAttributes(index)
	return fmt.Sprintf("z_%v_%v_%d", instance.Days[day], instance.Subjects[subject], window)
}

// Assignment returns the variable stating that subject is studied by class during session on day
func (encoding *Encoding) Assignment(class, day string, session Session, subject string) (ilp.Var, bool) {
	classIndex, dayIndex, subjectIndex := slices.Index(encoding.instance.Classes, class), slices.Index(encoding.instance.Days, day), slices.Index(encoding.instance.Subjects, subject)
	if classIndex < 0 || dayIndex < 0 || subjectIndex < 0 || session < Morning || session > Evening {
		return 0, false
	}
	return encoding.state.variable(uint64(classIndex), uint64(dayIndex), uint64(session), uint64(subjectIndex)), true
}

// Indicator returns the continuity indicator of subject's window on day
func (encoding *Encoding) Indicator(day, subject string, window int) (ilp.Var, bool) {
	dayIndex, subjectIndex := slices.Index(encoding.instance.Days, day), slices.Index(encoding.instance.Subjects, subject)
	if dayIndex < 0 || subjectIndex < 0 || window < 0 || window >= encoding.instance.Windows() {
		return 0, false
	}
	return encoding.state.indicator(uint64(dayIndex), uint64(subjectIndex), uint64(window)), true
}

// Study extracts the study schedule from an optimal solution
func (encoding *Encoding) Study(solution ilp.Solution) StudySchedule {
	instance := encoding.instance
	study := NewStudySchedule(instance)
	for index := uint64(1); index <= encoding.state.indexer.Variables(); index++ {
		// Acknowledge only assignment variables set to true
		if !encoding.state.indexer.IsAssignment(index) || !solution.Value(ilp.Var(index)) {
			continue
		}
		class, day, session, subject := encoding.state.indexer.Attributes(index)
		assignment := study[instance.Classes[class]][instance.Days[day]]
		assignment.Set(Session(session), instance.Subjects[subject])
		study[instance.Classes[class]][instance.Days[day]] = assignment
	}
	return study
}

// Continuity returns the number of continuity indicators set in solution
func (encoding *Encoding) Continuity(solution ilp.Solution) int {
	total := 0
	for index := uint64(1); index <= encoding.state.indexer.Variables(); index++ {
		if !encoding.state.indexer.IsAssignment(index) && solution.Value(ilp.Var(index)) {
			total++
		}
	}
	return total
}

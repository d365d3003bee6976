package model

type predicateEvaluatorStandard struct {
	instance    *Instance
	fixedCounts [][][]int  // Fixed lessons per class, day and subject
	presence    [][][]bool // Fixed presence per day, subject and position (any class)
}

func newStandardPredicateEvaluator(instance *Instance, plan FixedLessonPlan) *predicateEvaluatorStandard {
	subjectIndex := make(map[string]int, len(instance.Subjects))
	for i, subject := range instance.Subjects {
		subjectIndex[subject] = i
	}
	dayIndex := make(map[string]int, len(instance.Days))
	for i, day := range instance.Days {
		dayIndex[day] = i
	}

	evaluator := predicateEvaluatorStandard{instance: instance}

	evaluator.fixedCounts = make([][][]int, len(instance.Classes)) // Initialize counts per class
	for class := range instance.Classes {
		evaluator.fixedCounts[class] = make([][]int, len(instance.Days))
		for day := range instance.Days {
			evaluator.fixedCounts[class][day] = make([]int, len(instance.Subjects))
		}
	}
	evaluator.presence = make([][][]bool, len(instance.Days)) // Initialize presence per day
	for day := range instance.Days {
		evaluator.presence[day] = make([][]bool, len(instance.Subjects))
		for subject := range instance.Subjects {
			evaluator.presence[day][subject] = make([]bool, PositionsPerDay)
		}
	}

	classIndex := make(map[string]int, len(instance.Classes))
	for i, class := range instance.Classes {
		classIndex[class] = i
	}
	for _, slot := range plan.Slots(instance) {
		subject, managed := subjectIndex[slot.Subject]
		if !managed { // Lessons out of the managed subjects never constrain study
			continue
		}
		day := dayIndex[slot.Day]
		evaluator.fixedCounts[classIndex[slot.Class]][day][subject]++
		evaluator.presence[day][subject][FixedPosition(slot.Ordinal)] = true
	}

	return &evaluator
}

func (evaluator *predicateEvaluatorStandard) Allowed(session, subject, day uint64) bool {
	name := evaluator.instance.Subjects[subject]
	if evaluator.instance.Quota(Session(session), name) <= 0 {
		return false
	}
	return Session(session) != Evening || evaluator.EveningRule(subject, day) == 0
}

func (evaluator *predicateEvaluatorStandard) EveningRule(subject, day uint64) int {
	return evaluator.instance.EveningRule(evaluator.instance.Subjects[subject], evaluator.instance.Days[day])
}

func (evaluator *predicateEvaluatorStandard) FixedCount(class, day, subject uint64) int {
	return evaluator.fixedCounts[class][day][subject]
}

func (evaluator *predicateEvaluatorStandard) FixedLoad(day, subject uint64) int {
	load := 0
	for class := range evaluator.fixedCounts {
		load += evaluator.fixedCounts[class][day][subject]
	}
	return load
}

func (evaluator *predicateEvaluatorStandard) FixedPresent(day, subject uint64, position int) bool {
	if position < 0 || position >= PositionsPerDay {
		return false
	}
	return evaluator.presence[day][subject][position]
}

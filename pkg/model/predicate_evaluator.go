package model

type predicateEvaluator interface {
	// Checks whether subject may be studied during session on day, i.e. the session's quota for subject is positive and no evening rule forbids it
	Allowed(session, subject, day uint64) bool

	// Returns the rule that forbids subject's evening study on day, 0 if none does
	EveningRule(subject, day uint64) int

	// Returns the number of fixed lessons of subject the class has on day
	FixedCount(class, day, subject uint64) int

	// Returns the number of fixed lessons of subject on day summed over all classes (the teacher's fixed load)
	FixedLoad(day, subject uint64) int

	// Checks whether some class has a fixed lesson of subject at position on day
	FixedPresent(day, subject uint64, position int) bool
}

func newPredicateEvaluator(instance *Instance, plan FixedLessonPlan) predicateEvaluator {
	return newStandardPredicateEvaluator(instance, plan)
}

package model

import "github.com/limaJavier/selfstudy/pkg/ilp"

// Teacher load is read in two places: the encoder turns it into linear expressions over the assignment variables
// and the validator counts it on a finished schedule. Both sides share the same definitions:
//   - presence at a position is 1 when some class has the subject there (fixed or study), 0 otherwise
//   - a window's load is the sum of the presence over its positions
//   - a class's daily load counts its fixed lessons and study units of the subject
//   - the teacher's daily load sums the daily load over classes

// windowPositions returns the positions covered by window
func windowPositions(instance *Instance, window int) []int {
	positions := make([]int, instance.ContinuityWidth)
	for i := range positions {
		positions[i] = window + i
	}
	return positions
}

// presenceExpr is the subject's presence at position of day: a constant for fixed positions, the sum of the classes' variables for study positions
func presenceExpr(state constraintState, day, subject uint64, position int) ilp.Expr {
	session, study := PositionSession(position)
	if !study {
		if state.evaluator.FixedPresent(day, subject, position) {
			return ilp.Expr{Constant: 1}
		}
		return ilp.Expr{}
	}

	expr := ilp.Expr{}
	for class := range state.classes {
		expr = expr.Add(state.variable(class, day, uint64(session), subject), 1)
	}
	return expr
}

func windowLoadExpr(state constraintState, day, subject, window uint64) ilp.Expr {
	expr := ilp.Expr{}
	for _, position := range windowPositions(state.instance, int(window)) {
		expr = expr.Plus(presenceExpr(state, day, subject, position))
	}
	return expr
}

func classDailyLoadExpr(state constraintState, class, day, subject uint64) ilp.Expr {
	expr := ilp.Expr{Constant: state.evaluator.FixedCount(class, day, subject)}
	for session := range state.sessions {
		expr = expr.Add(state.variable(class, day, session, subject), 1)
	}
	return expr
}

func teacherDailyLoadExpr(state constraintState, day, subject uint64) ilp.Expr {
	expr := ilp.Expr{}
	for class := range state.classes {
		expr = expr.Plus(classDailyLoadExpr(state, class, day, subject))
	}
	return expr
}

// presenceCount is the validator's counterpart of presenceExpr
func presenceCount(schedule Schedule, instance *Instance, day, subject string, position int) int {
	for _, class := range instance.Classes {
		entries := schedule[class][day]
		if position < len(entries) && entries[position].Subject == subject {
			return 1
		}
	}
	return 0
}

func windowLoadCount(schedule Schedule, instance *Instance, day, subject string, window int) int {
	load := 0
	for _, position := range windowPositions(instance, window) {
		load += presenceCount(schedule, instance, day, subject, position)
	}
	return load
}

func classDailyLoadCount(schedule Schedule, class, day, subject string) int {
	load := 0
	for _, entry := range schedule[class][day] {
		if entry.Subject == subject {
			load++
		}
	}
	return load
}

func teacherDailyLoadCount(schedule Schedule, instance *Instance, day, subject string) int {
	load := 0
	for _, class := range instance.Classes {
		load += classDailyLoadCount(schedule, class, day, subject)
	}
	return load
}

package model

import "github.com/limaJavier/selfstudy/pkg/ilp"

// objective weighs every continuity indicator by its subject's weight. It never references anything else
func objective(state constraintState) []ilp.Term {
	terms := make([]ilp.Term, 0, state.days*state.subjects*state.windows)
	for day := range state.days {
		for subject := range state.subjects {
			weight := state.instance.Weight(state.instance.Subjects[subject])
			for window := range state.windows {
				terms = append(terms, ilp.Term{Var: state.indicator(day, subject, window), Coef: weight})
			}
		}
	}
	return terms
}

package ilp

import (
	"fmt"
	"math/rand/v2"
)

// generateModel builds a random model small enough to be solved by enumeration
func generateModel(random *rand.Rand, variables, constraints int) *Model {
	model := NewModel("random")
	vars := make([]Var, variables)
	for i := range vars {
		vars[i] = model.AddVariable(fmt.Sprintf("v%d", i))
	}

	for i := range constraints {
		expr := Expr{}
		for _, variable := range vars {
			if random.IntN(2) == 0 {
				continue
			}
			expr = expr.Add(variable, random.IntN(7)-3)
		}
		rhs := random.IntN(5) - 2
		switch random.IntN(3) {
		case 0:
			model.AddConstraints(expr.LessEqual(fmt.Sprintf("le%d", i), rhs))
		case 1:
			model.AddConstraints(expr.GreaterEqual(fmt.Sprintf("ge%d", i), rhs))
		default:
			model.AddConstraints(expr.Equal(fmt.Sprintf("eq%d", i), rhs))
		}
	}

	objective := make([]Term, 0, variables)
	for _, variable := range vars {
		objective = append(objective, Term{Var: variable, Coef: random.IntN(11) - 3})
	}
	model.Minimize(objective)
	return model
}

// bruteForce enumerates every assignment and returns the optimal objective, feasible is false when no assignment satisfies the model
func bruteForce(model *Model) (best int, feasible bool) {
	variables := int(model.Variables())
	values := make([]bool, variables+1)
	for mask := range 1 << variables {
		for i := range variables {
			values[i+1] = mask&(1<<i) != 0
		}
		if len(model.Violated(values)) > 0 {
			continue
		}
		if objective := model.ObjectiveValue(values); !feasible || objective < best {
			best, feasible = objective, true
		}
	}
	return best, feasible
}

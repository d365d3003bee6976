package ilp

import (
	"context"

	gophersat "github.com/crillab/gophersat/solver"
)

type gophersatSolver struct{}

// NewGophersatSolver returns an in-process pseudo-boolean solver. The search itself cannot be interrupted: on context expiration the call returns StatusTimeLimit and the search goroutine is abandoned
func NewGophersatSolver() Solver {
	return &gophersatSolver{}
}

func (solver *gophersatSolver) Solve(ctx context.Context, model *Model) (Solution, error) {
	if err := ctx.Err(); err != nil {
		return Solution{Status: StatusTimeLimit}, nil
	}
	if trivialStatus(model) == StatusInfeasible {
		return Solution{Status: StatusInfeasible}, nil
	} else if model.Variables() == 0 {
		return Solution{Status: StatusOptimal, Values: []bool{false}}, nil
	}

	constraints, feasible := pbConstraints(model)
	if !feasible {
		return Solution{Status: StatusInfeasible}, nil
	}

	problem := gophersat.ParsePBConstrs(constraints)
	costLits, costWeights := pbCost(model.Objective)
	if len(costLits) > 0 {
		problem.SetCostFunc(costLits, costWeights)
	}

	results := make(chan Solution, 1) // Buffered so an abandoned search does not leak a blocked sender
	go func() {
		search := gophersat.New(problem)
		if len(costLits) > 0 {
			if search.Minimize() < 0 {
				results <- Solution{Status: StatusInfeasible}
				return
			}
		} else if search.Solve() != gophersat.Sat {
			results <- Solution{Status: StatusInfeasible}
			return
		}

		values := make([]bool, model.Variables()+1)
		for i, value := range search.Model() {
			if i+1 < len(values) {
				values[i+1] = value
			}
		}
		results <- Solution{Status: StatusOptimal, Values: values, Objective: model.ObjectiveValue(values)}
	}()

	select {
	case solution := <-results:
		return solution, nil
	case <-ctx.Done():
		return Solution{Status: StatusTimeLimit}, nil
	}
}

func pbConstraints(model *Model) (constraints []gophersat.PBConstr, feasible bool) {
	constraints = make([]gophersat.PBConstr, 0, len(model.Constraints)*2)
	constrained := make([]bool, model.Variables()+1)

	add := func(terms []Term, rhs int) bool {
		constraint, trivial, possible := pbAtLeast(terms, rhs)
		if !possible {
			return false
		} else if !trivial {
			constraints = append(constraints, constraint)
			for _, term := range terms {
				constrained[term.Var] = true
			}
		}
		return true
	}

	for _, constraint := range model.Constraints {
		constraint = constraint.normalize()
		if constraint.Sense == GreaterEqual || constraint.Sense == Equal {
			if !add(constraint.Terms, constraint.RHS) {
				return nil, false
			}
		}
		if constraint.Sense == LessEqual || constraint.Sense == Equal {
			if !add(negate(constraint.Terms), -constraint.RHS) {
				return nil, false
			}
		}
	}

	// Fix variables outside every constraint to their best objective value
	objective := make(map[Var]int)
	for _, term := range model.Objective {
		objective[term.Var] += term.Coef
	}
	for variable := 1; variable < len(constrained); variable++ {
		if constrained[variable] {
			continue
		}
		if objective[Var(variable)] < 0 {
			constraints = append(constraints, gophersat.GtEq([]int{variable}, []int{1}, 1))
		} else {
			constraints = append(constraints, gophersat.LtEq([]int{variable}, []int{1}, 0))
		}
	}

	return constraints, true
}

// pbAtLeast rewrites sum(terms) >= rhs with positive weights only, using c*x = c + |c|*(not x) for negative coefficients
func pbAtLeast(terms []Term, rhs int) (constraint gophersat.PBConstr, trivial bool, possible bool) {
	lits := make([]int, 0, len(terms))
	weights := make([]int, 0, len(terms))
	total := 0
	for _, term := range terms {
		lit, weight := int(term.Var), term.Coef
		if weight < 0 {
			lit, weight = -lit, -weight
			rhs += weight
		}
		lits = append(lits, lit)
		weights = append(weights, weight)
		total += weight
	}

	if rhs <= 0 {
		return constraint, true, true
	} else if rhs > total {
		return constraint, false, false
	}
	return gophersat.GtEq(lits, weights, rhs), false, true
}

func pbCost(objective []Term) ([]gophersat.Lit, []int) {
	terms := Constraint{Terms: objective}.normalize().Terms
	lits := make([]gophersat.Lit, 0, len(terms))
	weights := make([]int, 0, len(terms))
	for _, term := range terms {
		lit, weight := int32(term.Var), term.Coef
		if weight < 0 { // The constant part does not change the minimizer
			lit, weight = -lit, -weight
		}
		lits = append(lits, gophersat.IntToLit(lit))
		weights = append(weights, weight)
	}
	return lits, weights
}

func negate(terms []Term) []Term {
	negated := make([]Term, len(terms))
	for i, term := range terms {
		negated[i] = Term{Var: term.Var, Coef: -term.Coef}
	}
	return negated
}

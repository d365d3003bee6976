package ilp

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
	StatusTimeLimit
)

func (status Status) String() string {
	switch status {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusTimeLimit:
		return "time-limit"
	}
	return "unknown"
}

// Solution holds the outcome of a Solve call. Values is indexed by Var (position 0 is unused) and is only meaningful when Status is StatusOptimal
type Solution struct {
	Status    Status
	Values    []bool
	Objective int
}

func (solution Solution) Value(variable Var) bool {
	return int(variable) < len(solution.Values) && solution.Values[variable]
}

type Solver interface {
	// Solve minimizes the model's objective. Reaching the context's deadline yields StatusTimeLimit, never a silent non-optimal solution
	Solve(ctx context.Context, model *Model) (Solution, error)
}

// Options carries backend specific settings
type Options struct {
	CbcPath string
}

var solvers = map[string]func(Options) Solver{
	"gophersat": func(Options) Solver { return NewGophersatSolver() },
	"cbc":       func(options Options) Solver { return NewCbcSolver(options.CbcPath) },
}

func NewSolver(name string, options Options) (Solver, error) {
	constructor, ok := solvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver %q, allowed values are %v", name, SolverNames())
	}
	return constructor(options), nil
}

func SolverNames() []string {
	names := lo.Keys(solvers)
	slices.Sort(names)
	return names
}

// trivialStatus inspects the constraints without variables. It returns StatusInfeasible if any of them cannot hold
func trivialStatus(model *Model) Status {
	for _, constraint := range model.Constraints {
		constraint = constraint.normalize()
		if len(constraint.Terms) == 0 && !constraint.SatisfiedBy(nil) {
			return StatusInfeasible
		}
	}
	return StatusUnknown
}

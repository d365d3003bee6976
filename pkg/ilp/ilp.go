package ilp

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Var identifies a binary variable of a Model. Variables are 1-based, 0 is never a valid variable
type Var uint64

type Term struct {
	Var  Var
	Coef int
}

type Sense int

const (
	LessEqual Sense = iota
	GreaterEqual
	Equal
)

func (sense Sense) String() string {
	switch sense {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Equal:
		return "="
	}
	return fmt.Sprintf("Sense(%d)", int(sense))
}

// Constraint represents the linear (in)equality: sum(Terms) Sense RHS
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   int
}

// Expr is a linear expression over binary variables plus an integer constant
type Expr struct {
	Terms    []Term
	Constant int
}

func (expr Expr) Add(variable Var, coef int) Expr {
	expr.Terms = append(slices.Clip(expr.Terms), Term{Var: variable, Coef: coef})
	return expr
}

func (expr Expr) AddConstant(constant int) Expr {
	expr.Constant += constant
	return expr
}

func (expr Expr) Plus(other Expr) Expr {
	expr.Terms = append(slices.Clip(expr.Terms), other.Terms...)
	expr.Constant += other.Constant
	return expr
}

// Scale multiplies every coefficient and the constant by factor
func (expr Expr) Scale(factor int) Expr {
	terms := make([]Term, len(expr.Terms))
	for i, term := range expr.Terms {
		terms[i] = Term{Var: term.Var, Coef: term.Coef * factor}
	}
	return Expr{Terms: terms, Constant: expr.Constant * factor}
}

// Constant moves to the right-hand side, i.e. (terms + c <= rhs) becomes (terms <= rhs - c)
func (expr Expr) LessEqual(name string, rhs int) Constraint {
	return Constraint{Name: name, Terms: expr.Terms, Sense: LessEqual, RHS: rhs - expr.Constant}
}

func (expr Expr) GreaterEqual(name string, rhs int) Constraint {
	return Constraint{Name: name, Terms: expr.Terms, Sense: GreaterEqual, RHS: rhs - expr.Constant}
}

func (expr Expr) Equal(name string, rhs int) Constraint {
	return Constraint{Name: name, Terms: expr.Terms, Sense: Equal, RHS: rhs - expr.Constant}
}

// Evaluate returns the value of the expression under the assignment values (indexed by Var)
func (expr Expr) Evaluate(values []bool) int {
	total := expr.Constant
	for _, term := range expr.Terms {
		if int(term.Var) < len(values) && values[term.Var] {
			total += term.Coef
		}
	}
	return total
}

// Sum builds an expression where every variable has coefficient 1
func Sum(variables ...Var) Expr {
	terms := make([]Term, len(variables))
	for i, variable := range variables {
		terms[i] = Term{Var: variable, Coef: 1}
	}
	return Expr{Terms: terms}
}

// Model is a minimization problem over binary variables
type Model struct {
	Name        string
	names       []string
	Constraints []Constraint
	Objective   []Term
}

func NewModel(name string) *Model {
	return &Model{Name: name}
}

// AddVariable registers a fresh binary variable and returns its (1-based) index
func (model *Model) AddVariable(name string) Var {
	model.names = append(model.names, name)
	return Var(len(model.names))
}

func (model *Model) Variables() uint64 {
	return uint64(len(model.names))
}

func (model *Model) VariableName(variable Var) string {
	if variable == 0 || uint64(variable) > model.Variables() {
		return ""
	}
	return model.names[variable-1]
}

func (model *Model) AddConstraints(constraints ...Constraint) {
	model.Constraints = append(model.Constraints, constraints...)
}

func (model *Model) Minimize(objective []Term) {
	model.Objective = objective
}

// ObjectiveValue evaluates the objective under values (indexed by Var)
func (model *Model) ObjectiveValue(values []bool) int {
	return Expr{Terms: model.Objective}.Evaluate(values)
}

// Violated returns the names of the constraints that values (indexed by Var) does not satisfy
func (model *Model) Violated(values []bool) []string {
	violated := make([]string, 0)
	for i, constraint := range model.Constraints {
		if !constraint.SatisfiedBy(values) {
			name := constraint.Name
			if name == "" {
				name = fmt.Sprintf("c%d", i+1)
			}
			violated = append(violated, name)
		}
	}
	return violated
}

func (constraint Constraint) SatisfiedBy(values []bool) bool {
	lhs := Expr{Terms: constraint.Terms}.Evaluate(values)
	switch constraint.Sense {
	case LessEqual:
		return lhs <= constraint.RHS
	case GreaterEqual:
		return lhs >= constraint.RHS
	default:
		return lhs == constraint.RHS
	}
}

// normalize merges repeated variables and drops zero coefficients
func (constraint Constraint) normalize() Constraint {
	coefficients := make(map[Var]int, len(constraint.Terms))
	for _, term := range constraint.Terms {
		coefficients[term.Var] += term.Coef
	}

	terms := make([]Term, 0, len(coefficients))
	for _, variable := range slices.Sorted(maps.Keys(coefficients)) {
		if coef := coefficients[variable]; coef != 0 {
			terms = append(terms, Term{Var: variable, Coef: coef})
		}
	}

	constraint.Terms = terms
	return constraint
}

// ToLP renders the model in CPLEX-LP format
func (model *Model) ToLP() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "\\ Problem: %s\n", model.Name)
	fmt.Fprintf(&builder, "\\ Variables: %d, Constraints: %d\n", model.Variables(), len(model.Constraints))

	builder.WriteString("Minimize\n obj:")
	objective := Constraint{Terms: model.Objective}.normalize().Terms
	if len(objective) == 0 && model.Variables() > 0 {
		objective = []Term{{Var: 1, Coef: 0}} // LP files require at least one objective term
	}
	writeTerms(&builder, objective)
	builder.WriteString("\nSubject To\n")

	for i, constraint := range model.Constraints {
		constraint = constraint.normalize()
		if len(constraint.Terms) == 0 { // Constant constraints are checked by the solvers before export
			continue
		}
		fmt.Fprintf(&builder, " c%d:", i+1)
		writeTerms(&builder, constraint.Terms)
		fmt.Fprintf(&builder, " %s %d\n", constraint.Sense, constraint.RHS)
	}

	builder.WriteString("Binary\n")
	for variable := range model.Variables() {
		fmt.Fprintf(&builder, " x%d\n", variable+1)
	}
	builder.WriteString("End\n")
	return builder.String()
}

func writeTerms(builder *strings.Builder, terms []Term) {
	for i, term := range terms {
		sign := "+"
		coef := term.Coef
		if coef < 0 {
			sign, coef = "-", -coef
		}
		if i == 0 && sign == "+" {
			sign = ""
		}
		if sign != "" {
			builder.WriteString(" " + sign)
		}
		if coef == 1 {
			fmt.Fprintf(builder, " x%d", term.Var)
		} else {
			fmt.Fprintf(builder, " %d x%d", coef, term.Var)
		}
	}
}

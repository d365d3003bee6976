package ilp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpr(t *testing.T) {
	t.Run("Constant moves to the right-hand side", func(t *testing.T) {
		//** Arrange
		model := NewModel("expr")
		x, y := model.AddVariable("x"), model.AddVariable("y")
		expr := Sum(x, y).AddConstant(1)

		//** Act
		lessEqual := expr.LessEqual("le", 3)
		greaterEqual := expr.Scale(3).GreaterEqual("ge", 2)

		//** Assert
		assert.Equal(t, 2, lessEqual.RHS)
		assert.Equal(t, LessEqual, lessEqual.Sense)
		assert.Equal(t, -1, greaterEqual.RHS)
		assert.Equal(t, []Term{{Var: x, Coef: 3}, {Var: y, Coef: 3}}, greaterEqual.Terms)
	})

	t.Run("Evaluate", func(t *testing.T) {
		//** Arrange
		model := NewModel("expr")
		x, y, z := model.AddVariable("x"), model.AddVariable("y"), model.AddVariable("z")
		expr := Sum(x, y).Add(z, -2).AddConstant(4)

		//** Act & Assert
		assert.Equal(t, 4, expr.Evaluate([]bool{false, false, false, false}))
		assert.Equal(t, 3, expr.Evaluate([]bool{false, true, false, true}))
		assert.Equal(t, 4, expr.Evaluate([]bool{false, true, true, true}))
	})

	t.Run("Plus does not alias its receiver", func(t *testing.T) {
		//** Arrange
		model := NewModel("expr")
		x, y, z := model.AddVariable("x"), model.AddVariable("y"), model.AddVariable("z")
		base := Sum(x)

		//** Act
		first := base.Plus(Sum(y))
		second := base.Plus(Sum(z))

		//** Assert
		assert.Equal(t, y, first.Terms[1].Var)
		assert.Equal(t, z, second.Terms[1].Var)
	})
}

func TestModel(t *testing.T) {
	t.Run("Variables are 1-based", func(t *testing.T) {
		model := NewModel("vars")
		first := model.AddVariable("first")
		second := model.AddVariable("second")

		assert.Equal(t, Var(1), first)
		assert.Equal(t, Var(2), second)
		assert.Equal(t, uint64(2), model.Variables())
		assert.Equal(t, "second", model.VariableName(second))
		assert.Equal(t, "", model.VariableName(0))
		assert.Equal(t, "", model.VariableName(3))
	})

	t.Run("Violated reports constraint names", func(t *testing.T) {
		//** Arrange
		model := NewModel("violated")
		x, y := model.AddVariable("x"), model.AddVariable("y")
		model.AddConstraints(
			Sum(x, y).LessEqual("at-most-one", 1),
			Sum(x).Equal("", 1),
		)

		//** Act
		violated := model.Violated([]bool{false, true, true})

		//** Assert
		assert.Equal(t, []string{"at-most-one", "c2"}, violated)
		assert.Empty(t, model.Violated([]bool{false, true, false}))
	})

	t.Run("Normalize merges and drops zero coefficients", func(t *testing.T) {
		constraint := Constraint{Terms: []Term{{Var: 2, Coef: 1}, {Var: 1, Coef: 3}, {Var: 2, Coef: -1}, {Var: 1, Coef: 1}}}

		assert.Equal(t, []Term{{Var: 1, Coef: 4}}, constraint.normalize().Terms)
	})

	t.Run("LP export", func(t *testing.T) {
		//** Arrange
		model := NewModel("lp")
		x, y := model.AddVariable("x"), model.AddVariable("y")
		model.AddConstraints(Sum(x).Add(y, -2).GreaterEqual("ge", -1))
		model.Minimize([]Term{{Var: x, Coef: 10}, {Var: y, Coef: 1}})

		//** Act
		lp := model.ToLP()

		//** Assert
		assert.Contains(t, lp, "Minimize\n obj: 10 x1 + x2\n")
		assert.Contains(t, lp, " c1: x1 - 2 x2 >= -1\n")
		assert.Contains(t, lp, "Binary\n x1\n x2\nEnd\n")
	})

	t.Run("LP export with empty objective", func(t *testing.T) {
		model := NewModel("lp")
		model.AddVariable("x")

		lp := model.ToLP()

		assert.True(t, strings.Contains(lp, " obj: 0 x1\n"))
	})
}

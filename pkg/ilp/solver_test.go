package ilp

import (
	"context"
	"math/rand/v2"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGophersat(t *testing.T) {
	solver := NewGophersatSolver()
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
	t.Run("Edge instances", func(t *testing.T) {
		edgeExecution(t, solver)
	})
}

func TestCbc(t *testing.T) {
	if _, err := exec.LookPath("cbc"); err != nil {
		t.Skip("cbc executable not found")
	}
	solver := NewCbcSolver("")
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
	t.Run("Edge instances", func(t *testing.T) {
		edgeExecution(t, solver)
	})
}

func TestNewSolver(t *testing.T) {
	solver, err := NewSolver("gophersat", Options{})
	assert.Nil(t, err)
	assert.NotNil(t, solver)

	_, err = NewSolver("glpk", Options{})
	assert.ErrorContains(t, err, "unknown solver")
	assert.Equal(t, []string{"cbc", "gophersat"}, SolverNames())
}

func TestParseCbcSolution(t *testing.T) {
	t.Run("Optimal", func(t *testing.T) {
		//** Arrange
		output := "Optimal - objective value 11.00000000\n" +
			"      0 x1                     1                      10\n" +
			"      2 x3                     1                       1\n" +
			"**    3 x4                     0.9999999               0\n"

		//** Act
		solution, err := parseCbcSolution(output, 4)

		//** Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, solution.Status)
		assert.Equal(t, []bool{false, true, false, true, true}, solution.Values)
	})

	t.Run("Statuses", func(t *testing.T) {
		cases := map[string]Status{
			"Infeasible - objective value 0.00000000":          StatusInfeasible,
			"Integer infeasible - objective value 0.00000000":  StatusInfeasible,
			"Unbounded - objective value 0.00000000":           StatusUnbounded,
			"Stopped on time - objective value 3.00000000":     StatusTimeLimit,
			"Stopped on iterations - objective value 3.0000000": StatusTimeLimit,
		}
		for line, expected := range cases {
			solution, err := parseCbcSolution(line+"\n", 2)
			assert.Nil(t, err)
			assert.Equal(t, expected, solution.Status, line)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := parseCbcSolution("", 2)
		assert.Error(t, err)

		_, err = parseCbcSolution("Segmentation fault\n", 2)
		assert.Error(t, err)

		_, err = parseCbcSolution("Optimal - objective value 1\n 0 y1 1 0\n", 2)
		assert.Error(t, err)

		_, err = parseCbcSolution("Optimal - objective value 1\n 0 x9 1 0\n", 2)
		assert.Error(t, err)
	})
}

func randomExecution(t *testing.T, solver Solver) {
	random := rand.New(rand.NewPCG(7, 11))
	for range 60 {
		//** Arrange
		model := generateModel(random, 1+random.IntN(8), random.IntN(6))
		expected, feasible := bruteForce(model)

		//** Act
		solution, err := solver.Solve(context.Background(), model)

		//** Assert
		assert.Nil(t, err)
		if !feasible {
			assert.Equal(t, StatusInfeasible, solution.Status, model.ToLP())
			continue
		}
		assert.Equal(t, StatusOptimal, solution.Status, model.ToLP())
		assert.Empty(t, model.Violated(solution.Values), model.ToLP())
		assert.Equal(t, expected, solution.Objective, model.ToLP())
	}
}

func edgeExecution(t *testing.T, solver Solver) {
	t.Run("Constant infeasible constraint", func(t *testing.T) {
		model := NewModel("constant")
		model.AddVariable("x")
		model.AddConstraints(Expr{Constant: 2}.LessEqual("impossible", 1))

		solution, err := solver.Solve(context.Background(), model)

		assert.Nil(t, err)
		assert.Equal(t, StatusInfeasible, solution.Status)
	})

	t.Run("Exactly one of three with weights", func(t *testing.T) {
		//** Arrange
		model := NewModel("exactly-one")
		x, y, z := model.AddVariable("x"), model.AddVariable("y"), model.AddVariable("z")
		model.AddConstraints(Sum(x, y, z).Equal("one", 1))
		model.Minimize([]Term{{Var: x, Coef: 10}, {Var: y, Coef: 3}, {Var: z, Coef: 5}})

		//** Act
		solution, err := solver.Solve(context.Background(), model)

		//** Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, solution.Status)
		assert.Equal(t, 3, solution.Objective)
		assert.True(t, solution.Value(y))
		assert.False(t, solution.Value(x))
		assert.False(t, solution.Value(z))
	})

	t.Run("Reified window", func(t *testing.T) {
		//** Arrange
		model := NewModel("window")
		a, b, w := model.AddVariable("a"), model.AddVariable("b"), model.AddVariable("w")
		load := Sum(a, b).AddConstant(1)
		model.AddConstraints(
			Sum(a, b).GreaterEqual("demand", 2),
			Sum(w).Plus(load.Scale(-1)).GreaterEqual("lower", -2),
			Sum(w).Scale(3).Plus(load.Scale(-1)).LessEqual("upper", 0),
		)
		model.Minimize([]Term{{Var: w, Coef: 10}})

		//** Act
		solution, err := solver.Solve(context.Background(), model)

		//** Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, solution.Status)
		assert.Equal(t, 10, solution.Objective)
		assert.True(t, solution.Value(w))
	})

	t.Run("Expired context", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		time.Sleep(time.Millisecond)

		model := NewModel("expired")
		model.AddVariable("x")

		solution, err := solver.Solve(ctx, model)

		assert.Nil(t, err)
		assert.Equal(t, StatusTimeLimit, solution.Status)
	})
}

package ilp

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"time"
)

type cbcSolver struct {
	path string
}

// NewCbcSolver returns a solver backed by the COIN-OR cbc executable found at path (or on PATH when empty)
func NewCbcSolver(path string) Solver {
	if path == "" {
		path = "cbc"
	}
	return &cbcSolver{path: path}
}

func (solver *cbcSolver) Solve(ctx context.Context, model *Model) (Solution, error) {
	if err := ctx.Err(); err != nil {
		return Solution{Status: StatusTimeLimit}, nil
	}
	if trivialStatus(model) == StatusInfeasible {
		return Solution{Status: StatusInfeasible}, nil
	}

	lpFile, err := writeTempFile("model-*.lp", model.ToLP())
	if err != nil {
		return Solution{}, err
	}
	defer os.Remove(lpFile)

	solutionFile, err := writeTempFile("solution-*.txt", "")
	if err != nil {
		return Solution{}, err
	}
	defer os.Remove(solutionFile)

	args := []string{lpFile}
	if deadline, ok := ctx.Deadline(); ok {
		seconds := int(math.Ceil(time.Until(deadline).Seconds()))
		args = append(args, "sec", strconv.Itoa(max(seconds, 1)))
	}
	args = append(args, "solve", "solu", solutionFile)

	cmd := exec.CommandContext(ctx, solver.path, args...)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	if ctx.Err() != nil {
		return Solution{Status: StatusTimeLimit}, nil
	} else if err != nil {
		return Solution{}, fmt.Errorf("an error occurred during cbc execution: %v : %v", err.Error(), stderr.String())
	}

	output, err := os.ReadFile(solutionFile)
	if err != nil {
		return Solution{}, fmt.Errorf("cannot read cbc solution file: %w", err)
	}

	solution, err := parseCbcSolution(string(output), model.Variables())
	if err != nil {
		return Solution{}, fmt.Errorf("%w (cbc output: %v)", err, stdOut.String())
	}
	if solution.Status == StatusOptimal {
		solution.Objective = model.ObjectiveValue(solution.Values)
	}
	return solution, nil
}

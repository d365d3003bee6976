package ilp

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// TempDirectory is where backends place their exchange files
var TempDirectory = os.TempDir()

func writeTempFile(pattern, content string) (string, error) {
	file, err := os.CreateTemp(TempDirectory, pattern)
	if err != nil {
		return "", fmt.Errorf("cannot create temporary file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(content); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("cannot write temporary file: %w", err)
	}
	return file.Name(), nil
}

// parseCbcSolution reads a cbc "solu" file: a status line followed by "index name value reducedCost" rows
func parseCbcSolution(output string, variables uint64) (Solution, error) {
	lines := lo.Filter(strings.Split(output, "\n"), func(line string, _ int) bool {
		return strings.TrimSpace(line) != ""
	})
	if len(lines) == 0 {
		return Solution{}, fmt.Errorf("empty cbc solution file")
	}

	status := cbcStatus(lines[0])
	if status == StatusUnknown {
		return Solution{}, fmt.Errorf("unrecognized cbc status line: %q", lines[0])
	} else if status != StatusOptimal {
		return Solution{Status: status}, nil
	}

	values := make([]bool, variables+1)
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == "**" { // cbc flags values outside their bounds this way
			fields = fields[1:]
		}
		if len(fields) < 3 || !strings.HasPrefix(fields[1], "x") {
			return Solution{}, fmt.Errorf("invalid cbc solution line: %q", line)
		}

		index, err := strconv.ParseUint(fields[1][1:], 10, 64)
		if err != nil || index == 0 || index > variables {
			return Solution{}, fmt.Errorf("invalid variable in cbc solution line: %q", line)
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return Solution{}, fmt.Errorf("invalid value in cbc solution line: %q", line)
		}
		values[index] = value > 0.5
	}

	return Solution{Status: StatusOptimal, Values: values}, nil
}

func cbcStatus(line string) Status {
	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "Optimal"):
		return StatusOptimal
	case strings.HasPrefix(line, "Infeasible"), strings.HasPrefix(line, "Integer infeasible"):
		return StatusInfeasible
	case strings.HasPrefix(line, "Unbounded"):
		return StatusUnbounded
	case strings.HasPrefix(line, "Stopped"):
		return StatusTimeLimit
	}
	return StatusUnknown
}

package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/limaJavier/selfstudy/pkg/ilp"
)

// ErrInfeasible is matched by every InfeasibleError
var ErrInfeasible = errors.New("no schedule")

// MalformedInputError reports fixed lesson data that cannot be modelled
type MalformedInputError struct {
	Class  string
	Day    string
	Reason string
}

func (err *MalformedInputError) Error() string {
	switch {
	case err.Class != "" && err.Day != "":
		return fmt.Sprintf("malformed input for %v on %v: %v", err.Class, err.Day, err.Reason)
	case err.Class != "":
		return fmt.Sprintf("malformed input for %v: %v", err.Class, err.Reason)
	}
	return fmt.Sprintf("malformed input: %v", err.Reason)
}

// InfeasibleError reports that no schedule exists (or none was proven optimal in time)
type InfeasibleError struct {
	Status ilp.Status
	Reason string
}

func (err *InfeasibleError) Error() string {
	if err.Reason != "" {
		return fmt.Sprintf("no schedule: solver status %v: %v", err.Status, err.Reason)
	}
	return fmt.Sprintf("no schedule: solver status %v", err.Status)
}

func (err *InfeasibleError) Is(target error) bool {
	return target == ErrInfeasible
}

// ValidationFailureError signals that a solved schedule does not pass validation, which means the encoding is wrong
type ValidationFailureError struct {
	Violations []Violation
}

func (err *ValidationFailureError) Error() string {
	messages := make([]string, len(err.Violations))
	for i, violation := range err.Violations {
		messages[i] = violation.String()
	}
	return fmt.Sprintf("solved schedule failed validation (%d violations): %v", len(err.Violations), strings.Join(messages, "; "))
}

package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/limaJavier/selfstudy/pkg/ilp"
	"go.uber.org/zap"
)

type Scheduler interface {
	// Build solves the study assignment of plan and returns the verified schedule
	Build(ctx context.Context, plan FixedLessonPlan) (*Result, error)

	// Verify validates a schedule against the scheduler's instance
	Verify(schedule Schedule) Report
}

type Result struct {
	Study       StudySchedule
	Schedule    Schedule
	Report      Report
	Status      ilp.Status
	Objective   int
	Continuity  int // Sum of the continuity indicators of the solution
	Variables   uint64
	Constraints int
	Elapsed     time.Duration
}

type Option func(*scheduler)

func WithLogger(logger *zap.Logger) Option {
	return func(scheduler *scheduler) {
		scheduler.logger = logger
	}
}

// WithoutPrecheck skips the matching based feasibility check and always calls the solver
func WithoutPrecheck() Option {
	return func(scheduler *scheduler) {
		scheduler.precheck = false
	}
}

type scheduler struct {
	instance *Instance
	solver   ilp.Solver
	logger   *zap.Logger
	precheck bool
}

func NewScheduler(instance *Instance, solver ilp.Solver, options ...Option) Scheduler {
	scheduler := &scheduler{
		instance: instance,
		solver:   solver,
		logger:   zap.NewNop(),
		precheck: true,
	}
	for _, option := range options {
		option(scheduler)
	}
	return scheduler
}

func (scheduler *scheduler) Build(ctx context.Context, plan FixedLessonPlan) (*Result, error) {
	start := time.Now()

	//** Validate input
	if err := scheduler.instance.Validate(); err != nil {
		return nil, fmt.Errorf("invalid instance %q: %w", scheduler.instance.Name, err)
	}
	if err := plan.Validate(scheduler.instance); err != nil {
		return nil, err
	}

	//** Reject quota placements no schedule can satisfy
	if scheduler.precheck {
		if err := precheck(scheduler.instance, plan); err != nil {
			scheduler.logger.Info("precheck rejected the instance", zap.Error(err))
			return nil, &InfeasibleError{Status: ilp.StatusInfeasible, Reason: err.Error()}
		}
	}

	//** Build model
	encoding := buildModel(scheduler.instance, plan)
	scheduler.logger.Debug("model built",
		zap.String("instance", scheduler.instance.Name),
		zap.Uint64("variables", encoding.Model.Variables()),
		zap.Int("constraints", len(encoding.Model.Constraints)),
	)

	//** Solve model
	solution, err := scheduler.solver.Solve(ctx, encoding.Model)
	if err != nil {
		return nil, fmt.Errorf("solver failed: %w", err)
	}
	scheduler.logger.Info("model solved",
		zap.Stringer("status", solution.Status),
		zap.Int("objective", solution.Objective),
		zap.Duration("elapsed", time.Since(start)),
	)
	if solution.Status != ilp.StatusOptimal {
		return nil, &InfeasibleError{Status: solution.Status}
	}
	if violated := encoding.Model.Violated(solution.Values); len(violated) > 0 {
		return nil, fmt.Errorf("solver returned an assignment violating %d constraints, first %v", len(violated), violated[0])
	}

	//** Extract and assemble
	study := encoding.Study(solution)
	schedule := Assemble(scheduler.instance, study, plan)
	result := &Result{
		Study:       study,
		Schedule:    schedule,
		Status:      solution.Status,
		Objective:   solution.Objective,
		Continuity:  encoding.Continuity(solution),
		Variables:   encoding.Model.Variables(),
		Constraints: len(encoding.Model.Constraints),
	}

	//** Verify
	result.Report = scheduler.Verify(schedule)
	violations := result.Report.Violations
	if result.Report.Continuity.Total != result.Continuity {
		violations = append(violations, Violation{Message: fmt.Sprintf("validator counts %d continuity windows, solver indicators sum to %d", result.Report.Continuity.Total, result.Continuity)})
	}
	if len(violations) > 0 {
		return nil, &ValidationFailureError{Violations: violations}
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

func (scheduler *scheduler) Verify(schedule Schedule) Report {
	return Validate(scheduler.instance, schedule)
}

// ExitCode maps a Build outcome to the process exit codes used by the command line tools
func ExitCode(err error) int {
	var validationFailure *ValidationFailureError
	switch {
	case err == nil:
		return 10
	case errors.Is(err, ErrInfeasible):
		return 20
	case errors.As(err, &validationFailure):
		return 15
	}
	return 1
}

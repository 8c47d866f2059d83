package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
	"github.com/jsamuelsen/quote-roulette/internal/platform/logging"
)

// Step names a stage of a guarded write.
type Step string

// Guarded writes run validate, persist, then verify. Nothing is stored when
// validation fails, and a write is only reported once it reads back.
const (
	StepValidate Step = "validate"
	StepPersist  Step = "persist"
	StepVerify   Step = "verify"
)

// StepError records which step of an operation failed.
type StepError struct {
	Op   string
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// StepOf returns the step an error from Execute failed in.
func StepOf(err error) (Step, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step, true
	}

	return "", false
}

// Write describes a guarded write. Persist is required.
type Write[I, O any] struct {
	Name     string
	Validate func(ctx context.Context, input I) error
	Persist  func(ctx context.Context, input I) (O, error)
	Verify   func(ctx context.Context, persisted O) (O, error)
}

// Executor runs guarded writes with step-level logging.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates an executor. A nil logger uses slog.Default.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Execute runs w on input. Step failures are wrapped in *StepError and keep
// their cause for errors.Is and errors.As.
func Execute[I, O any](ctx context.Context, exec *Executor, w Write[I, O], input I) (O, error) {
	var zero O

	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", w.Name))
	start := time.Now()

	fail := func(step Step, err error) (O, error) {
		level := slog.LevelError
		if domain.IsValidation(err) {
			level = slog.LevelWarn
		}

		logger.Log(ctx, level, "operation step failed",
			slog.String("step", string(step)),
			slog.Any("error", err),
		)

		return zero, &StepError{Op: w.Name, Step: step, Err: err}
	}

	if w.Validate != nil {
		if err := w.Validate(ctx, input); err != nil {
			return fail(StepValidate, err)
		}
	}

	out, err := w.Persist(ctx, input)
	if err != nil {
		return fail(StepPersist, err)
	}

	if w.Verify != nil {
		if out, err = w.Verify(ctx, out); err != nil {
			return fail(StepVerify, err)
		}
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return out, nil
}

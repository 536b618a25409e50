// Package fallback runs an ordered list of strategies until one succeeds.
//
// It backs every "try A, else B, else C" decision in dnaspec: clone mirrors,
// pip invocation variants, query entry points and interpreter detection.
// Strategies run strictly one at a time.
package fallback

import (
	"context"
	"fmt"
	"strings"
)

// Strategy is one way of achieving a step.
type Strategy struct {
	Name string
	Run  func(ctx context.Context) error
}

// Attempt records the outcome of one strategy.
type Attempt struct {
	Name string
	Err  error
}

// ExhaustedError is returned when every strategy failed.
type ExhaustedError struct {
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	if len(e.Attempts) == 0 {
		return "no strategies to try"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Name, a.Err))
	}
	return fmt.Sprintf("all %d attempts failed (%s)", len(e.Attempts), strings.Join(parts, "; "))
}

// Unwrap exposes every attempt error to errors.Is and errors.As.
func (e *ExhaustedError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	return errs
}

// Last returns the error of the final attempt.
func (e *ExhaustedError) Last() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1].Err
}

// Hooks observe a chain as it runs. Both fields are optional.
type Hooks struct {
	OnAttempt func(name string)
	OnFailure func(a Attempt)
}

// Chain is an ordered list of strategies.
type Chain struct {
	Strategies []Strategy
	Hooks      Hooks
}

// New creates a chain from strategies.
func New(strategies ...Strategy) *Chain {
	return &Chain{Strategies: strategies}
}

// WithHooks sets the observation hooks and returns the chain.
func (c *Chain) WithHooks(h Hooks) *Chain {
	c.Hooks = h
	return c
}

// Run executes strategies in order and returns the name of the first one
// that succeeded. A cancelled context stops the chain before the next
// strategy starts.
func (c *Chain) Run(ctx context.Context) (string, error) {
	var attempts []Attempt
	for _, s := range c.Strategies {
		if err := ctx.Err(); err != nil {
			attempts = append(attempts, Attempt{Name: s.Name, Err: err})
			return "", &ExhaustedError{Attempts: attempts}
		}
		if c.Hooks.OnAttempt != nil {
			c.Hooks.OnAttempt(s.Name)
		}
		err := s.Run(ctx)
		if err == nil {
			return s.Name, nil
		}
		a := Attempt{Name: s.Name, Err: err}
		attempts = append(attempts, a)
		if c.Hooks.OnFailure != nil {
			c.Hooks.OnFailure(a)
		}
	}
	return "", &ExhaustedError{Attempts: attempts}
}

// First is shorthand for New(strategies...).Run(ctx).
func First(ctx context.Context, strategies ...Strategy) (string, error) {
	return New(strategies...).Run(ctx)
}

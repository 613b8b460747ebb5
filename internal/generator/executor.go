package generator

import (
	"context"
	"fmt"
)

// Result reports what a batch execution accomplished. Executed holds the
// descriptions of operations that ran; Warnings holds one message per
// operation that failed validation or execution.
type Result struct {
	Executed []string
	Warnings []string
}

// Failed reports whether any operation in the batch did not complete.
func (r *Result) Failed() bool {
	return len(r.Warnings) > 0
}

// Executor runs batches of operations. A failed operation is recorded as a
// warning and the batch continues, so one bad file never aborts a whole
// project.
type Executor struct {
	force bool
}

// NewExecutor creates an executor. force=true overwrites existing files
// instead of treating them as conflicts.
func NewExecutor(force bool) *Executor {
	return &Executor{force: force}
}

// Execute validates and runs each operation in order. Unlike all-or-nothing
// execution, every operation gets its chance: failures are collected into
// the result rather than returned. The error return is reserved for context
// cancellation.
func (e *Executor) Execute(ctx context.Context, ops []Operation) (*Result, error) {
	result := &Result{}

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := op.Validate(ctx, e.force); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", op.Description(), err))
			continue
		}

		if err := op.Execute(ctx); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", op.Description(), err))
			continue
		}

		result.Executed = append(result.Executed, op.Description())
	}

	return result, nil
}

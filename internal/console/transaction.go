package console

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Transaction runs a list of operations in order. When one fails, the
// compensations of the operations that already ran are executed in reverse
// order.
type Transaction struct {
	name       string
	operations []Operation
	next       int
	logger     *zap.Logger
}

type Operation struct {
	Name       string
	Fn         func(context.Context) error
	Compensate func(context.Context) error
}

// OperationError identifies the step that failed.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation '%s' failed: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func NewTransaction(name string, logger *zap.Logger) *Transaction {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transaction{name: name, logger: logger}
}

// AddOperation appends a step. compensate may be nil.
func (t *Transaction) AddOperation(name string, fn, compensate func(context.Context) error) {
	t.operations = append(t.operations, Operation{Name: name, Fn: fn, Compensate: compensate})
}

// Step runs the next pending operation. It returns false when none is left.
func (t *Transaction) Step(ctx context.Context) (bool, error) {
	if t.next >= len(t.operations) {
		return false, nil
	}

	op := t.operations[t.next]
	if err := op.Fn(ctx); err != nil {
		t.rollback(ctx, t.next)
		t.next = len(t.operations)
		return false, &OperationError{Op: op.Name, Err: err}
	}
	t.next++
	return t.next < len(t.operations), nil
}

// Execute runs every pending operation.
func (t *Transaction) Execute(ctx context.Context) error {
	for {
		more, err := t.Step(ctx)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (t *Transaction) rollback(ctx context.Context, failedAt int) {
	for i := failedAt - 1; i >= 0; i-- {
		comp := t.operations[i].Compensate
		if comp == nil {
			continue
		}
		if err := comp(ctx); err != nil {
			t.logger.Warn("compensation failed",
				zap.String("transaction", t.name),
				zap.String("operation", t.operations[i].Name),
				zap.Error(err),
			)
		}
	}
}

// Reason extracts the underlying failure message for display.
func Reason(err error) string {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Err.Error()
	}
	return err.Error()
}

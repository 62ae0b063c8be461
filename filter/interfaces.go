package filter

import (
	"context"

	"github.com/s0up4200/petpy/table"
)

// Filter decides whether a row is kept
type Filter interface {
	// Evaluate reports whether the row matches. Rows the expression fails on
	// do not match.
	Evaluate(row table.Row) bool
}

// CompiledFilter is a filter compiled from an expression
type CompiledFilter interface {
	Filter

	// Match evaluates the row and returns any runtime error
	Match(row table.Row) (bool, error)

	// Expression returns the source expression
	Expression() string
}

// Compiler compiles filter expressions
type Compiler interface {
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler is a Compiler that keeps compiled filters around
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Evaluator applies a filter to a whole table
type Evaluator interface {
	Evaluate(ctx context.Context, filter CompiledFilter, t *table.Table) (*table.Table, error)
}

// WorkerPool runs work with bounded concurrency
type WorkerPool interface {
	// Submit queues work for execution
	Submit(ctx context.Context, work func()) error

	// Stop waits for queued work and shuts the pool down
	Stop(ctx context.Context) error
}

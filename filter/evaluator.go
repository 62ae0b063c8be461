package filter

import (
	"context"
	"runtime"
	"sync"

	"github.com/s0up4200/petpy/table"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		e.workerCount = workers
	}
}

// WithBatchSize sets the row count below which evaluation stays sequential,
// and the smallest chunk handed to a worker
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// WithStrict makes a runtime error on any row fail the whole evaluation
// with an *EvaluationError instead of dropping the row
func WithStrict() EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		e.strict = true
	}
}

// ConcurrentEvaluator filters tables, splitting large ones into chunks that
// are evaluated on a worker pool
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
	strict      bool
	pool        WorkerPool
}

var _ Evaluator = (*ConcurrentEvaluator)(nil)

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.workerCount = max(e.workerCount, 1)
	e.pool = NewWorkerPool(e.workerCount)

	return e
}

// Evaluate returns a table holding the rows of t that match filter, in their
// original order
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, t *table.Table) (*table.Table, error) {
	if t.Len() == 0 {
		return table.New(t.Columns...), nil
	}

	keep := make([]bool, t.Len())

	if t.Len() < e.batchSize {
		for i, row := range t.Rows {
			ok, err := e.match(filter, i, row)
			if err != nil {
				return nil, err
			}
			keep[i] = ok
		}
		return t.Filter(keep), nil
	}

	if err := e.evaluateChunks(ctx, filter, t.Rows, keep); err != nil {
		return nil, err
	}
	return t.Filter(keep), nil
}

// evaluateChunks fills keep chunk by chunk on the pool. Each chunk writes a
// disjoint range of keep, so order needs no extra bookkeeping.
func (e *ConcurrentEvaluator) evaluateChunks(ctx context.Context, filter CompiledFilter, rows []table.Row, keep []bool) error {
	chunkSize := max(len(rows)/e.workerCount, e.batchSize)
	errs := make([]error, (len(rows)+chunkSize-1)/chunkSize)

	var wg sync.WaitGroup
	for start := 0; start < len(rows); start += chunkSize {
		end := min(start+chunkSize, len(rows))
		chunk := start / chunkSize

		wg.Add(1)
		err := e.pool.Submit(ctx, func() {
			defer wg.Done()

			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					return
				}
				ok, err := e.match(filter, i, rows[i])
				if err != nil {
					errs[chunk] = err
					return
				}
				keep[i] = ok
			}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return err
		}
	}

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *ConcurrentEvaluator) match(filter CompiledFilter, i int, row table.Row) (bool, error) {
	if !e.strict {
		return filter.Evaluate(row), nil
	}
	ok, err := filter.Match(row)
	if err != nil {
		return false, &EvaluationError{Expression: filter.Expression(), Row: i, Err: err}
	}
	return ok, nil
}

// Stop gracefully stops the evaluator's worker pool
func (e *ConcurrentEvaluator) Stop(ctx context.Context) error {
	return e.pool.Stop(ctx)
}

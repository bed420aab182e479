package testutil

import (
	"sync"
	"sync/atomic"

	dErrors "haven/pkg/domain-errors"
)

// ConcurrentResult tracks outcomes of concurrent test operations.
type ConcurrentResult struct {
	Successes int32
	Errors    int32
	Conflicts int32
	Capacity  int32
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Errors + r.Conflicts + r.Capacity
}

// RunConcurrent executes fn in parallel goroutines and collects results,
// categorized into success, conflict, capacity, or generic error. It replaces
// the common WaitGroup + atomic counters pattern in tests.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, errs, conflicts, capacity atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := fn(idx)
			switch {
			case err == nil:
				successes.Add(1)
			case dErrors.HasCode(err, dErrors.CodeAlreadyExists), dErrors.HasCode(err, dErrors.CodeInvalidState):
				conflicts.Add(1)
			case dErrors.HasCode(err, dErrors.CodeCapacityExceeded):
				capacity.Add(1)
			default:
				errs.Add(1)
			}
		}(i)
	}

	wg.Wait()

	return &ConcurrentResult{
		Successes: successes.Load(),
		Errors:    errs.Load(),
		Conflicts: conflicts.Load(),
		Capacity:  capacity.Load(),
	}
}

package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// BatchResult summarizes one batch recomputation run.
type BatchResult struct {
	RunID     string
	Processed int
	Failed    map[string]error
}

// Err returns a BatchError naming every failed user, or nil when the run
// completed cleanly.
func (r BatchResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return &BatchError{Failed: r.Failed}
}

// BatchError attributes batch failures to the users they occurred for.
type BatchError struct {
	Failed map[string]error
}

func (e *BatchError) Error() string {
	ids := make([]string, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	fmt.Fprintf(&b, "recomputation failed for %d user(s):", len(ids))
	for _, id := range ids {
		fmt.Fprintf(&b, " %s: %v;", id, e.Failed[id])
	}
	return b.String()
}

// runBatch fans the user ids out over a bounded worker pool. Each worker
// records its own failures; one user's error never stops the others. Feeding
// stops when the context is cancelled.
func runBatch(ctx context.Context, ids []string, workers int, fn func(userID string) error) BatchResult {
	if workers <= 0 {
		workers = 4
	}
	if len(ids) == 0 {
		return BatchResult{Failed: map[string]error{}}
	}

	idCh := make(chan string)
	var wg sync.WaitGroup

	var mu sync.Mutex
	processed := 0
	failed := make(map[string]error)

	worker := func() {
		defer wg.Done()
		for id := range idCh {
			err := fn(id)
			mu.Lock()
			if err != nil {
				failed[id] = err
			} else {
				processed++
			}
			mu.Unlock()
		}
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for _, id := range ids {
		select {
		case idCh <- id:
		case <-ctx.Done():
			break Loop
		}
	}
	close(idCh)
	wg.Wait()

	return BatchResult{Processed: processed, Failed: failed}
}

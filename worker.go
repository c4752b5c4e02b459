package dijkstra

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Pair is one start/goal request.
type Pair struct {
	Start Cell `json:"start"`
	Goal  Cell `json:"goal"`
}

// SearchTask represents a request from SearchBatch to the workers.
type SearchTask struct {
	Index int
	Pair  Pair
}

// Outcome is a worker's answer for one Pair.
type Outcome struct {
	ID     uuid.UUID
	Index  int
	Pair   Pair
	Result Result
	Err    error
}

// SearchBatch runs independent searches over a shared read-only grid using a
// worker pool sized by WithWorkers. Outcomes are returned in input order.
// Pairs not started before ctx is cancelled report ctx.Err().
func SearchBatch(ctx context.Context, grid *Grid, pairs []Pair, options ...Option) []Outcome {
	searchOptions := applyOptions(options)
	outcomes := make([]Outcome, len(pairs))
	for i, pair := range pairs {
		outcomes[i] = Outcome{ID: uuid.New(), Index: i, Pair: pair}
	}

	taskChannel := make(chan SearchTask)
	var wg sync.WaitGroup
	workers := min(searchOptions.NumberOfWorkers, max(len(pairs), 1))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChannel {
				result, err := Search(ctx, grid, task.Pair.Start, task.Pair.Goal, options...)
				// each index is written by exactly one worker
				outcomes[task.Index].Result = result
				outcomes[task.Index].Err = err
			}
		}()
	}

	next := 0
dispatch:
	for ; next < len(pairs); next++ {
		select {
		case <-ctx.Done():
			break dispatch
		case taskChannel <- SearchTask{Index: next, Pair: pairs[next]}:
		}
	}
	close(taskChannel)
	wg.Wait()

	for ; next < len(pairs); next++ {
		outcomes[next].Err = ctx.Err()
	}
	searchOptions.Logger.Debug("batch finished", "pairs", len(pairs), "workers", workers)
	return outcomes
}

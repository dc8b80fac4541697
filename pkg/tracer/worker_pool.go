package tracer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-optical-raytracer/pkg/core"
	"github.com/df07/go-optical-raytracer/pkg/optics"
)

// TraceTask is a chunk of rays for one worker. The rays belong to the
// worker until its result is delivered.
type TraceTask struct {
	TaskID int
	Offset int // index of the first ray in the full batch
	Rays   []*core.Ray
}

// TraceResult contains the result from tracing a chunk
type TraceResult struct {
	TaskID   int
	Offset   int
	Outcomes []optics.Outcome
	Stats    TraceStats
}

// WorkerPool traces ray chunks through a shared system in parallel
type WorkerPool struct {
	system      *optics.System
	taskQueue   chan TraceTask
	resultQueue chan TraceResult
	numWorkers  int
	group       *errgroup.Group
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// queueSize must cover every task submitted before Stop is called.
func NewWorkerPool(system *optics.System, numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if queueSize < 1 {
		queueSize = 1
	}

	return &WorkerPool{
		system:      system,
		taskQueue:   make(chan TraceTask, queueSize),
		resultQueue: make(chan TraceResult, queueSize),
		numWorkers:  numWorkers,
	}
}

// Start begins all workers. Cancelling ctx makes workers stop picking up tasks.
func (wp *WorkerPool) Start(ctx context.Context) {
	group, ctx := errgroup.WithContext(ctx)
	wp.group = group
	for i := 0; i < wp.numWorkers; i++ {
		group.Go(func() error {
			return wp.run(ctx)
		})
	}
}

// Stop closes the task queue, waits for the workers to drain it and closes
// the result queue. It returns the first worker error.
func (wp *WorkerPool) Stop() error {
	close(wp.taskQueue)
	err := wp.group.Wait()
	close(wp.resultQueue)
	return err
}

// SubmitTask submits a chunk to the worker pool
func (wp *WorkerPool) SubmitTask(task TraceTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed chunk result
func (wp *WorkerPool) GetResult() (TraceResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run(ctx context.Context) error {
	for task := range wp.taskQueue {
		if err := ctx.Err(); err != nil {
			return err
		}

		result := TraceResult{
			TaskID:   task.TaskID,
			Offset:   task.Offset,
			Outcomes: make([]optics.Outcome, len(task.Rays)),
		}
		for i, ray := range task.Rays {
			outcome := wp.system.Trace(ray)
			result.Outcomes[i] = outcome
			result.Stats.Add(outcome)
		}

		wp.resultQueue <- result
	}
	return nil
}

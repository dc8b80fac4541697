package tracer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-optical-raytracer/pkg/core"
	"github.com/df07/go-optical-raytracer/pkg/optics"
)

// BatchConfig contains configuration for parallel batch tracing
type BatchConfig struct {
	NumWorkers int // Number of parallel workers (0 = use CPU count)
	ChunkSize  int // Rays per task
}

// DefaultBatchConfig returns sensible default values
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		NumWorkers: 0,
		ChunkSize:  256,
	}
}

// BatchTracer traces many independent rays through one system
type BatchTracer struct {
	system *optics.System
	config BatchConfig
	logger core.Logger
}

// NewBatchTracer creates a batch tracer
func NewBatchTracer(system *optics.System, config BatchConfig, logger core.Logger) *BatchTracer {
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultBatchConfig().ChunkSize
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &BatchTracer{system: system, config: config, logger: logger}
}

// TraceAll propagates every ray through the system and returns one outcome
// per ray, in input order. Terminated rays never abort the batch; only
// cancellation of ctx does.
func (bt *BatchTracer) TraceAll(ctx context.Context, rays []*core.Ray) ([]optics.Outcome, TraceStats, error) {
	outcomes := make([]optics.Outcome, len(rays))
	var stats TraceStats
	if len(rays) == 0 {
		return outcomes, stats, nil
	}

	numTasks := (len(rays) + bt.config.ChunkSize - 1) / bt.config.ChunkSize
	pool := NewWorkerPool(bt.system, bt.config.NumWorkers, numTasks)

	bt.logger.Printf("Tracing %d rays through %d elements (using %d workers)...\n",
		len(rays), bt.system.Len(), pool.GetNumWorkers())
	start := time.Now()

	pool.Start(ctx)
	for taskID := 0; taskID < numTasks; taskID++ {
		offset := taskID * bt.config.ChunkSize
		end := min(offset+bt.config.ChunkSize, len(rays))
		pool.SubmitTask(TraceTask{TaskID: taskID, Offset: offset, Rays: rays[offset:end]})
	}
	if err := pool.Stop(); err != nil {
		return nil, TraceStats{}, fmt.Errorf("batch trace: %w", err)
	}

	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		copy(outcomes[result.Offset:], result.Outcomes)
		stats.Merge(result.Stats)
	}

	bt.logger.Printf("Traced %d rays in %v: %d reached the end, %d missed a surface, %d totally internally reflected\n",
		stats.TotalRays, time.Since(start), stats.Advanced, stats.NoIntercept, stats.TotalInternalReflection)

	return outcomes, stats, nil
}

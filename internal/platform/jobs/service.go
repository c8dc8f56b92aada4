package jobs

import (
	"context"
	"log/slog"
	"time"

	"timeclock/internal/platform/metrics"
)

const DefaultQueueSize = 128

type job struct {
	Name string
	Run  func(context.Context) error
}

// Queue runs work off the request path on a single background worker.
// Jobs enqueued before Start are held until the worker begins.
type Queue struct {
	Metrics *metrics.Collector
	queue   chan job
}

func New(size int, collector *metrics.Collector) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{Metrics: collector, queue: make(chan job, size)}
}

func (q *Queue) Start(ctx context.Context) {
	go q.worker(ctx)
}

// Enqueue drops the job with a warning when the queue is full.
func (q *Queue) Enqueue(name string, run func(context.Context) error) bool {
	select {
	case q.queue <- job{Name: name, Run: run}:
		return true
	default:
		slog.Warn("job queue full", "job", name)
		q.Metrics.Event("job_dropped")
		return false
	}
}

func (q *Queue) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-q.queue:
			if err := q.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "job", j.Name, "err", err)
			}
		}
	}
}

func (q *Queue) runJob(ctx context.Context, j job) error {
	started := time.Now()
	err := j.Run(ctx)
	if err != nil {
		q.Metrics.Event("job_failed")
		return err
	}
	q.Metrics.Event("job_completed")
	slog.Debug("job completed", "job", j.Name, "duration_ms", time.Since(started).Milliseconds())
	return nil
}

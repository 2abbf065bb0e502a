// internal/profile/worker.go
// Background rebuild worker. Feedback submits enqueue here through the
// feedback.Rebuilder interface so the write path never blocks on a
// profile rebuild.

package profile

import (
	"context"
	"log"
)

type RebuildWorker struct {
	service Service
	queue   chan int64
	workers int
}

func NewRebuildWorker(service Service, queueSize, workers int) *RebuildWorker {
	if queueSize <= 0 {
		queueSize = 256
	}
	if workers <= 0 {
		workers = 2
	}
	return &RebuildWorker{
		service: service,
		queue:   make(chan int64, queueSize),
		workers: workers,
	}
}

// Enqueue requests a rebuild without blocking. A full queue drops the
// request; the next feedback submit or an explicit rebuild catches up.
func (w *RebuildWorker) Enqueue(userID int64) bool {
	select {
	case w.queue <- userID:
		recordRebuildEnqueued()
		return true
	default:
		recordRebuildDropped()
		return false
	}
}

func (w *RebuildWorker) Start(ctx context.Context) {
	for i := 0; i < w.workers; i++ {
		go w.run(ctx)
	}
}

func (w *RebuildWorker) run(ctx context.Context) {
	for {
		select {
		case userID := <-w.queue:
			if _, err := w.service.BuildProfile(ctx, userID); err != nil {
				log.Printf("profile: background rebuild failed for user %d: %v", userID, err)
			}
		case <-ctx.Done():
			return
		}
	}
}

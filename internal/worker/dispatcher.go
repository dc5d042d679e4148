package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/adapter/webhook"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

const maxDeliveryAttempts = 3

// Dispatcher delivers marketplace events in the background. Publish never
// blocks: when the queue is full the event is dropped.
type Dispatcher struct {
	sender  webhook.Sender
	workers int
	logger  *slog.Logger

	queue  chan model.Event
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDispatcher constructs an event dispatcher worker pool.
func NewDispatcher(sender webhook.Sender, workers, queueSize int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Dispatcher{
		sender:  sender,
		workers: workers,
		logger:  logger,
		queue:   make(chan model.Event, queueSize),
	}
}

// Publish enqueues event for delivery.
func (d *Dispatcher) Publish(event model.Event) {
	select {
	case d.queue <- event:
	default:
		d.logger.Warn("event queue full, dropping event",
			slog.String("event_id", event.ID),
			slog.String("type", string(event.Type)),
		)
	}
}

// Start launches delivery workers.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop cancels in-flight deliveries and waits for all workers to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()

	if pending := len(d.queue); pending > 0 {
		d.logger.Warn("dispatcher stopped with undelivered events", slog.Int("pending", pending))
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.queue:
			d.deliver(ctx, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event model.Event) {
	for attempt := 1; attempt <= maxDeliveryAttempts; attempt++ {
		err := d.sender.Send(ctx, event)
		if err == nil {
			return
		}

		var tm webhook.TooManyRequestsError
		if !errors.As(err, &tm) {
			d.logger.Error("event delivery failed",
				slog.String("event_id", event.ID),
				slog.String("type", string(event.Type)),
				slog.String("error", err.Error()),
			)
			return
		}

		d.logger.Warn("event receiver rate limited", slog.Duration("retry_after", tm.RetryAfter), slog.Int("attempt", attempt))
		select {
		case <-ctx.Done():
			return
		case <-time.After(tm.RetryAfter):
		}
	}
	d.logger.Error("event dropped after retries", slog.String("event_id", event.ID))
}

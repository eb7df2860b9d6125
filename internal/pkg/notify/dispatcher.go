package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/messdesk/internal/pkg/metrics"
)

// Dispatcher accepts events. Dispatch never blocks and never reports delivery errors.
type Dispatcher interface {
	Dispatch(e Event)
}

// Sink delivers events to one destination
type Sink interface {
	Name() string
	Deliver(ctx context.Context, e Event) error
}

// Nop discards every event
type Nop struct{}

// Dispatch implements Dispatcher
func (Nop) Dispatch(Event) {}

// DefaultDeliveryTimeout bounds a single sink delivery
const DefaultDeliveryTimeout = 5 * time.Second

// AsyncDispatcher queues events in a bounded buffer and fans them out to its sinks
// from a single worker goroutine. When the buffer is full the event is dropped.
type AsyncDispatcher struct {
	queue   chan Event
	sinks   []Sink
	timeout time.Duration
	logger  zerolog.Logger
	metrics *metrics.Metrics

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
	start  sync.Once
}

// Option configures an AsyncDispatcher
type Option func(*AsyncDispatcher)

// WithMetrics records dispatched, dropped and failed deliveries
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *AsyncDispatcher) { d.metrics = m }
}

// WithDeliveryTimeout overrides DefaultDeliveryTimeout
func WithDeliveryTimeout(timeout time.Duration) Option {
	return func(d *AsyncDispatcher) { d.timeout = timeout }
}

// NewAsyncDispatcher creates a dispatcher with room for bufferSize pending events
func NewAsyncDispatcher(bufferSize int, logger zerolog.Logger, sinks []Sink, opts ...Option) *AsyncDispatcher {
	if bufferSize < 1 {
		bufferSize = 1
	}
	d := &AsyncDispatcher{
		queue:   make(chan Event, bufferSize),
		sinks:   sinks,
		timeout: DefaultDeliveryTimeout,
		logger:  logger.With().Str("component", "notify").Logger(),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start launches the worker. Calling it more than once has no effect.
func (d *AsyncDispatcher) Start() {
	d.start.Do(func() {
		go d.run()
	})
}

// Dispatch enqueues e, dropping it when the queue is full or the dispatcher is closed
func (d *AsyncDispatcher) Dispatch(e Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(e, "dispatcher closed")
		return
	}
	select {
	case d.queue <- e:
	default:
		d.drop(e, "queue full")
	}
}

func (d *AsyncDispatcher) drop(e Event, reason string) {
	d.metrics.EventDropped(string(e.Kind))
	d.logger.Warn().
		Str("kind", string(e.Kind)).
		Int64("subjectID", e.SubjectID).
		Str("reason", reason).
		Msg("Notification event dropped")
}

// Close stops accepting events and waits for queued ones to be delivered or for ctx to end
func (d *AsyncDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.Start()
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notify: pending events not drained: %w", ctx.Err())
	}
}

func (d *AsyncDispatcher) run() {
	defer close(d.done)
	for e := range d.queue {
		d.deliver(e)
	}
}

func (d *AsyncDispatcher) deliver(e Event) {
	for _, sink := range d.sinks {
		if err := d.deliverTo(sink, e); err != nil {
			d.metrics.SinkFailed(sink.Name())
			d.logger.Error().Err(err).
				Str("sink", sink.Name()).
				Str("kind", string(e.Kind)).
				Int64("subjectID", e.SubjectID).
				Msg("Notification delivery failed")
		}
	}
	d.metrics.EventDispatched(string(e.Kind))
}

func (d *AsyncDispatcher) deliverTo(sink Sink, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	return sink.Deliver(ctx, e)
}

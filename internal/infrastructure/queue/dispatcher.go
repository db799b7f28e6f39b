package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
	"github.com/hirelane/ats/internal/pkg/telemetry"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes notifications to a fixed set of workers using
// consistent hashing on the candidate id, so notices about one candidate
// are delivered in order. It implements ports.Notifier.
type Dispatcher struct {
	workers []chan domain.Notification
	sink    ports.NotificationSink
	log     zerolog.Logger
	wg      sync.WaitGroup
}

var _ ports.Notifier = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.NotificationSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Notification, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.runWorker(ctx, i, ch)
		}()
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Notify hands n to the worker responsible for its candidate. It never
// blocks: when that worker's buffer is full the notification is dropped.
func (d *Dispatcher) Notify(_ context.Context, n domain.Notification) {
	idx := d.shardIndex(n.CandidateID)
	select {
	case d.workers[idx] <- n:
		telemetry.QueueDepth(idx).Set(float64(len(d.workers[idx])))
	default:
		telemetry.Notification(string(n.Kind), telemetry.ResultDropped)
		d.log.Warn().
			Str("candidate_id", n.CandidateID).
			Int("worker_id", idx).
			Msg("notification queue full, dropping")
	}
}

// shardIndex maps a candidate id deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	depth := telemetry.QueueDepth(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			if err := d.sink.Deliver(ctx, n); err != nil {
				telemetry.Notification(string(n.Kind), telemetry.ResultFailed)
				d.log.Error().Err(err).
					Str("candidate_id", n.CandidateID).
					Int("worker_id", id).
					Msg("notification delivery failed")
				continue
			}
			telemetry.Notification(string(n.Kind), telemetry.ResultDelivered)
			d.log.Info().
				Str("candidate_id", n.CandidateID).
				Str("to", n.To).
				Str("kind", string(n.Kind)).
				Msg("notification delivered")
		}
	}
}

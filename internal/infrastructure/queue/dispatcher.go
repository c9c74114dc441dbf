// Package queue moves activity log writes off the request path.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
	"github.com/cinemind/studio-api/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// Options tunes the dispatcher. Zero values pick the defaults.
type Options struct {
	Workers int
	Buffer  int
}

// Dispatcher routes activity entries to a fixed set of workers using
// consistent hashing on the account id, so one account's entries are written
// in the order they were recorded. Record never blocks: when the target
// worker's buffer is full the entry is dropped and counted.
type Dispatcher struct {
	workers []chan domain.Activity
	repo    ports.ActivityRepository
	log     zerolog.Logger

	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Int64
}

// NewDispatcher creates a Dispatcher writing to repo.
func NewDispatcher(repo ports.ActivityRepository, opts Options, log zerolog.Logger) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Buffer <= 0 {
		opts.Buffer = channelBuffer
	}
	d := &Dispatcher{
		workers: make([]chan domain.Activity, opts.Workers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, opts.Buffer)
	}
	return d
}

var _ ports.ActivityRecorder = (*Dispatcher)(nil)

// Start launches all worker goroutines. Inserts inherit ctx values but not
// its cancellation so that Close can drain pending entries.
func (d *Dispatcher) Start(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(base, i, ch)
	}
}

// Record enqueues an entry for its account's worker.
func (d *Dispatcher) Record(activity domain.Activity) {
	if activity.OccurredAt.IsZero() {
		activity.OccurredAt = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.drop(activity, "dispatcher closed")
		return
	}

	idx := d.shardIndex(activity.AccountID)
	select {
	case d.workers[idx] <- activity:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.drop(activity, "queue full")
	}
}

// Dropped returns how many entries were discarded so far.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Close stops accepting entries and waits for the workers to flush what is
// already queued, or for ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) drop(activity domain.Activity, reason string) {
	d.dropped.Add(1)
	metrics.ActivityDroppedTotal.Inc()
	d.log.Warn().
		Str("kind", string(activity.Kind)).
		Int64("account_id", activity.AccountID).
		Str("reason", reason).
		Msg("activity entry dropped")
}

// shardIndex maps an account id deterministically to a worker index.
func (d *Dispatcher) shardIndex(accountID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(accountID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for activity := range ch {
		metrics.ActivityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

		insertCtx, cancel := context.WithTimeout(ctx, insertTimeout)
		err := d.repo.Insert(insertCtx, activity)
		cancel()
		if err != nil {
			metrics.ActivityErrorsTotal.Inc()
			d.log.Error().Err(err).
				Str("kind", string(activity.Kind)).
				Int64("account_id", activity.AccountID).
				Int("worker_id", id).
				Msg("activity insert failed")
		}
	}
}

package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
	"github.com/stockroom/inventory-api/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// Journal routes inventory changes to a fixed set of workers using consistent
// hashing on the record ID, preserving per-record ordering, and persists them
// off the request path.
//
// Cancelling the context given to Start closes the journal: later Record
// calls are dropped, and workers persist everything already queued before
// Wait returns.
type Journal struct {
	workers []chan domain.InventoryChange
	repo    ports.ChangeRepository
	log     zerolog.Logger
	wg      sync.WaitGroup

	// mu guards closed and the channel sends against close.
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// NewJournal creates a Journal with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewJournal(numWorkers int, repo ports.ChangeRepository, log zerolog.Logger) *Journal {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	j := &Journal{
		workers: make([]chan domain.InventoryChange, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range j.workers {
		j.workers[i] = make(chan domain.InventoryChange, channelBuffer)
	}
	return j
}

// Start launches all worker goroutines. When ctx is cancelled the journal
// closes and the workers drain their queues.
func (j *Journal) Start(ctx context.Context) {
	for i, ch := range j.workers {
		j.wg.Add(1)
		go j.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		j.Close()
	}()
}

// Close stops accepting changes and lets workers finish the queued ones.
// It is safe to call more than once.
func (j *Journal) Close() {
	j.closeOnce.Do(func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		j.closed = true
		for _, ch := range j.workers {
			close(ch)
		}
	})
}

// Wait blocks until every worker started by Start has drained and returned.
func (j *Journal) Wait() {
	j.wg.Wait()
}

// Record hands change to the worker responsible for its record. It blocks
// only while that worker's buffer is full, and gives up when ctx is done or
// the journal is closed.
func (j *Journal) Record(ctx context.Context, change domain.InventoryChange) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.closed {
		j.drop(change, "closed")
		return
	}

	idx := j.shardIndex(change.RecordID)
	select {
	case j.workers[idx] <- change:
		metrics.JournalQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(j.workers[idx])))
	case <-ctx.Done():
		j.drop(change, "dropped")
	}
}

func (j *Journal) drop(change domain.InventoryChange, reason string) {
	metrics.JournalErrorsTotal.WithLabelValues(reason).Inc()
	j.log.Warn().
		Str("record_id", change.RecordID).
		Str("action", string(change.Action)).
		Str("reason", reason).
		Msg("change dropped before it was queued")
}

// shardIndex maps a record ID deterministically to a worker index.
func (j *Journal) shardIndex(recordID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recordID))
	return int(h.Sum32() % uint32(len(j.workers)))
}

// runWorker persists changes until its channel is closed and empty. Inserts
// run on a context detached from ctx so a shutdown does not abort them.
func (j *Journal) runWorker(ctx context.Context, id int, ch <-chan domain.InventoryChange) {
	defer j.wg.Done()
	workerID := strconv.Itoa(id)
	base := context.WithoutCancel(ctx)

	for change := range ch {
		metrics.JournalQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
		j.persist(base, id, change)
	}
}

func (j *Journal) persist(ctx context.Context, worker int, change domain.InventoryChange) {
	ctx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()

	start := time.Now()
	err := j.repo.InsertChange(ctx, &change)
	metrics.JournalWriteDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.JournalErrorsTotal.WithLabelValues("insert_failed").Inc()
		j.log.Error().Err(err).
			Str("record_id", change.RecordID).
			Str("action", string(change.Action)).
			Int("worker_id", worker).
			Msg("change journaling failed")
	}
}

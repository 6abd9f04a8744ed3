package audit

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/PredicateSystems/secureclaw/internal/core"
)

const DefaultQueueSize = 1024

var _ core.Auditor = (*AsyncAuditor)(nil)

// AsyncAuditor wraps another auditor behind a bounded queue drained by
// a background goroutine. Log never blocks the decision path: when the
// queue is full the record is dropped, counted and logged. A slow or
// broken sink therefore cannot affect evaluation latency.
type AsyncAuditor struct {
	sink    core.Auditor
	queue   chan core.AuditRecord
	dropped atomic.Uint64

	mu     sync.RWMutex
	closed bool

	closeOnce sync.Once
	done      chan struct{}
}

// NewAsyncAuditor starts the drain goroutine. queueSize <= 0 selects
// DefaultQueueSize.
func NewAsyncAuditor(sink core.Auditor, queueSize int) *AsyncAuditor {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	a := &AsyncAuditor{
		sink:  sink,
		queue: make(chan core.AuditRecord, queueSize),
		done:  make(chan struct{}),
	}
	go a.drain()
	return a
}

func (a *AsyncAuditor) Log(record core.AuditRecord) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		dropped := a.dropped.Add(1)
		log.Warn().
			Str("correlation_id", record.ID).
			Uint64("dropped_total", dropped).
			Msg("audit sink already closed, dropping record")
		return nil
	}

	select {
	case a.queue <- record:
	default:
		dropped := a.dropped.Add(1)
		log.Warn().
			Str("correlation_id", record.ID).
			Uint64("dropped_total", dropped).
			Msg("audit queue full, dropping record")
	}
	return nil
}

// Dropped returns how many records were discarded due to a full queue.
func (a *AsyncAuditor) Dropped() uint64 {
	return a.dropped.Load()
}

// Close stops accepting records, flushes the queue into the sink and
// closes the sink.
func (a *AsyncAuditor) Close() error {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		a.closed = true
		a.mu.Unlock()

		close(a.queue)
		<-a.done
	})
	return a.sink.Close()
}

func (a *AsyncAuditor) drain() {
	defer close(a.done)
	for record := range a.queue {
		if err := a.sink.Log(record); err != nil {
			// emission failures are logged locally, never surfaced to
			// the decision path
			log.Error().Err(err).Str("correlation_id", record.ID).Msg("failed to write audit record")
		}
	}
}

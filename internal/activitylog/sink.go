// Package activitylog records user actions best-effort. Submission never
// blocks the request path and offers no delivery guarantee: when the queue
// is full the entry is dropped and counted.
package activitylog

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	logMeter      = otel.Meter("superfamily/activitylog")
	logDropped, _ = logMeter.Int64Counter("activitylog.dropped",
		metric.WithDescription("Activity log entries dropped due to full queue"))
	logWritten, _ = logMeter.Int64Counter("activitylog.written",
		metric.WithDescription("Activity log entries written by status"))
)

// Entry is one recorded user action.
type Entry struct {
	UserID   string
	FamilyID *string
	Details  map[string]any
}

// Writer persists entries; *database.LogRepository satisfies it.
type Writer interface {
	Insert(ctx context.Context, userID string, familyID *string, details map[string]any) error
}

// Sink drains a bounded queue of entries with a fixed set of workers.
type Sink struct {
	writer  Writer
	entries chan Entry
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewSink(writer Writer, workers, queueSize int) *Sink {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Sink{
		writer:  writer,
		entries: make(chan Entry, queueSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 1; i <= workers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	return s
}

// Record enqueues an entry. It never blocks: when the queue is full or the
// sink has shut down the entry is dropped and only a warning is logged.
// A request still in flight when shutdown times out must not panic here.
func (s *Sink) Record(entry Entry) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		logDropped.Add(context.Background(), 1)
		log.Printf("Warning: activity log sink closed, dropping entry for user %s", entry.UserID)
		return
	}

	select {
	case s.entries <- entry:
	default:
		logDropped.Add(context.Background(), 1)
		log.Printf("Warning: activity log queue full, dropping entry for user %s", entry.UserID)
	}
}

func (s *Sink) worker(id int) {
	defer s.wg.Done()

	for entry := range s.entries {
		s.write(entry)
	}
	log.Printf("Activity log worker %d stopped", id)
}

func (s *Sink) write(entry Entry) {
	ctx, cancel := context.WithTimeout(s.ctx, 10*time.Second)
	defer cancel()

	if err := s.writer.Insert(ctx, entry.UserID, entry.FamilyID, entry.Details); err != nil {
		logWritten.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "error")))
		log.Printf("Error writing activity log for user %s: %v", entry.UserID, err)
		return
	}
	logWritten.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "success")))
}

// Shutdown stops accepting entries, drains the queue, and waits up to
// timeout for workers to finish. Safe to call more than once.
func (s *Sink) Shutdown(timeout time.Duration) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.entries)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Activity log sink: drained")
	case <-time.After(timeout):
		log.Println("Activity log sink: timeout reached, forcing shutdown")
		s.cancel()
	}
}

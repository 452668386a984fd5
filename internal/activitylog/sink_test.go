package activitylog

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingWriter struct {
	mu      sync.Mutex
	entries []Entry
	block   chan struct{}
}

func (w *recordingWriter) Insert(ctx context.Context, userID string, familyID *string, details map[string]any) error {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = append(w.entries, Entry{UserID: userID, FamilyID: familyID, Details: details})
	return nil
}

func (w *recordingWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

func TestSink_RecordAndDrain(t *testing.T) {
	writer := &recordingWriter{}
	sink := NewSink(writer, 2, 16)

	for i := 0; i < 10; i++ {
		sink.Record(Entry{UserID: "user-1", Details: map[string]any{"action": "create_category"}})
	}

	sink.Shutdown(5 * time.Second)

	if got := writer.count(); got != 10 {
		t.Errorf("wrote %d entries, want 10", got)
	}
}

func TestSink_RecordNeverBlocks(t *testing.T) {
	// A writer that never completes keeps the queue full after workers pick
	// up their first entries.
	writer := &recordingWriter{block: make(chan struct{})}
	sink := NewSink(writer, 1, 2)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			sink.Record(Entry{UserID: "user-1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Record() blocked on a full queue")
	}

	close(writer.block)
	sink.Shutdown(time.Second)
}

func TestSink_RecordAfterShutdown(t *testing.T) {
	writer := &recordingWriter{}
	sink := NewSink(writer, 1, 4)
	sink.Shutdown(time.Second)

	// A straggling request after shutdown drops its entry instead of
	// panicking on the closed queue.
	sink.Record(Entry{UserID: "user-1", Details: map[string]any{"action": "create_category"}})

	if got := writer.count(); got != 0 {
		t.Errorf("wrote %d entries after shutdown, want 0", got)
	}
}

func TestSink_ShutdownTwice(t *testing.T) {
	writer := &recordingWriter{}
	sink := NewSink(writer, 1, 4)

	sink.Shutdown(time.Second)
	sink.Shutdown(time.Second)
}

func TestSink_ShutdownTimeout(t *testing.T) {
	writer := &recordingWriter{block: make(chan struct{})}
	sink := NewSink(writer, 1, 4)

	sink.Record(Entry{UserID: "user-1"})

	start := time.Now()
	sink.Shutdown(100 * time.Millisecond)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Shutdown took %v, should give up after the timeout", elapsed)
	}

	close(writer.block)
}

package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tabletools/tablepad/internal/testutil"
)

func TestFlusherWritesInBackground(t *testing.T) {
	kv := newMemKeyValue()
	adapter, store := newTestAdapter(kv)
	store.Subscribe(adapter.NotifyChanged)
	adapter.MarkLoaded()

	flusher := NewFlusher(adapter, 5*time.Millisecond, testutil.TestLogger())
	done := make(chan struct{})
	go func() {
		flusher.Start()
		close(done)
	}()

	store.AddColumn("Key")

	assert.Eventually(t, func() bool {
		return !adapter.Dirty()
	}, time.Second, 5*time.Millisecond)

	flusher.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("flusher did not stop")
	}
}

func TestFlusherStopBeforeStart(t *testing.T) {
	adapter, _ := newTestAdapter(newMemKeyValue())
	flusher := NewFlusher(adapter, time.Minute, testutil.TestLogger())

	flusher.Stop()

	done := make(chan struct{})
	go func() {
		flusher.Start()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("flusher kept running after cancellation")
	}
}

func TestFlusherDefaultInterval(t *testing.T) {
	adapter, _ := newTestAdapter(newMemKeyValue())

	flusher := NewFlusher(adapter, 0, testutil.TestLogger())
	assert.Equal(t, fallbackFlushInterval, flusher.interval)
}

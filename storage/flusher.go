package storage

import (
	"context"
	"time"

	"github.com/tabletools/tablepad/log"
)

const fallbackFlushInterval = 500 * time.Millisecond

// Flusher periodically writes pending adapter state in the background,
// coalescing bursts of edits into one save. The UI never waits on it.
type Flusher struct {
	ctx      context.Context
	cancel   context.CancelFunc
	interval time.Duration
	adapter  *Adapter
	logger   log.Logger
}

func NewFlusher(adapter *Adapter, interval time.Duration, logger log.Logger) *Flusher {
	if interval <= 0 {
		interval = fallbackFlushInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Flusher{
		ctx:      ctx,
		cancel:   cancel,
		interval: interval,
		adapter:  adapter,
		logger:   logger,
	}
}

// Start runs the flush loop until Stop cancels it. Callers run it on
// its own goroutine.
func (f *Flusher) Start() {
	f.logger.Debug("flush loop started", "interval", f.interval)
	for {
		f.adapter.Flush(f.ctx)
		if !f.sleep() {
			return
		}
	}
}

func (f *Flusher) Stop() {
	f.cancel()
}

func (f *Flusher) sleep() bool {
	select {
	case <-time.After(f.interval):
		return true
	case <-f.ctx.Done():
		return false
	}
}

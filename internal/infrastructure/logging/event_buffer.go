package logging

import (
	"context"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/colorterm/internal/ports"
)

const defaultBufferLimit = 1000

type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

type bufferedEntry struct {
	ctx    context.Context
	level  logLevel
	msg    string
	fields []interface{}
	at     time.Time
}

// EventBuffer holds log events emitted while the terminal UI owns stdout so they
// can be replayed once the screen is released. Oldest entries are dropped first.
type EventBuffer struct {
	mu     sync.Mutex
	limit  int
	events []bufferedEntry
}

// NewEventBuffer creates a buffer with the provided capacity (defaults to 1000).
func NewEventBuffer(limit int) *EventBuffer {
	if limit <= 0 {
		limit = defaultBufferLimit
	}
	return &EventBuffer{
		limit:  limit,
		events: make([]bufferedEntry, 0, limit),
	}
}

func (b *EventBuffer) add(entry bufferedEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.events) == b.limit {
		copy(b.events, b.events[1:])
		b.events[len(b.events)-1] = entry
		return
	}
	b.events = append(b.events, entry)
}

// Len reports how many events are currently buffered.
func (b *EventBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

// Flush replays buffered events through delegate in order. Entries gain
// logged_at (when they were recorded) and replayed=true.
func (b *EventBuffer) Flush(delegate ports.Logger) {
	if delegate == nil {
		return
	}
	b.mu.Lock()
	events := make([]bufferedEntry, len(b.events))
	copy(events, b.events)
	b.events = b.events[:0]
	b.mu.Unlock()

	for _, entry := range events {
		fields := append(entry.fields, "logged_at", entry.at.Format(time.RFC3339Nano), "replayed", true)
		switch entry.level {
		case levelDebug:
			delegate.Debug(entry.ctx, entry.msg, fields...)
		case levelWarn:
			delegate.Warn(entry.ctx, entry.msg, fields...)
		case levelError:
			delegate.Error(entry.ctx, entry.msg, fields...)
		default:
			delegate.Info(entry.ctx, entry.msg, fields...)
		}
	}
}

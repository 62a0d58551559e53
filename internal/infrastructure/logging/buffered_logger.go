package logging

import (
	"context"
	"time"

	"github.com/alexisbeaulieu97/colorterm/internal/ports"
)

// BufferedLogger records entries into an EventBuffer while the editor owns the
// terminal. Each entry keeps the time it was logged so the replay carries it
// as logged_at rather than the flush time.
type BufferedLogger struct {
	buffer *EventBuffer
	fields []interface{}
	now    func() time.Time
}

// NewBufferedLogger returns a logger writing into buffer.
func NewBufferedLogger(buffer *EventBuffer) *BufferedLogger {
	return &BufferedLogger{buffer: buffer, now: time.Now}
}

func (l *BufferedLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, levelDebug, msg, fields)
}

func (l *BufferedLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, levelInfo, msg, fields)
}

func (l *BufferedLogger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, levelWarn, msg, fields)
}

func (l *BufferedLogger) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, levelError, msg, fields)
}

// With returns a logger sharing the buffer with fields appended.
func (l *BufferedLogger) With(fields ...interface{}) ports.Logger {
	next := make([]interface{}, 0, len(l.fields)+len(fields))
	next = append(append(next, l.fields...), fields...)
	return &BufferedLogger{buffer: l.buffer, fields: next, now: l.now}
}

func (l *BufferedLogger) record(ctx context.Context, level logLevel, msg string, fields []interface{}) {
	if l == nil || l.buffer == nil {
		return
	}
	payload := make([]interface{}, 0, len(l.fields)+len(fields))
	payload = append(append(payload, l.fields...), fields...)

	at := time.Now()
	if l.now != nil {
		at = l.now()
	}
	l.buffer.add(bufferedEntry{ctx: ctx, level: level, msg: msg, fields: payload, at: at})
}

var _ ports.Logger = (*BufferedLogger)(nil)

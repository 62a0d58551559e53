package logging

import (
	"context"

	"github.com/alexisbeaulieu97/colorterm/internal/ports"
)

// NoOpLogger drops every entry. The zero value is ready to use and With
// returns the same value, so derived loggers stay free.
type NoOpLogger struct{}

func (NoOpLogger) Debug(context.Context, string, ...interface{}) {}
func (NoOpLogger) Info(context.Context, string, ...interface{})  {}
func (NoOpLogger) Warn(context.Context, string, ...interface{})  {}
func (NoOpLogger) Error(context.Context, string, ...interface{}) {}

func (n NoOpLogger) With(...interface{}) ports.Logger { return n }

// NewNoOpLogger is the default logger of components built without one.
func NewNoOpLogger() ports.Logger {
	return NoOpLogger{}
}

var _ ports.Logger = NoOpLogger{}

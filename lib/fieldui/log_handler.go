// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fieldui

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordFadeDelay is how long a log line replaces the key help in
// the status bar.
const logRecordFadeDelay = 5 * time.Second

// logRecordMsg carries one log record into the program for the status
// bar.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// logRecordFadeMsg clears the status bar log line if no newer record
// has replaced it.
type logRecordFadeMsg struct {
	sequence uint64
}

// Sender delivers messages into a running program. *tea.Program
// implements it.
type Sender interface {
	Send(message tea.Msg)
}

// logBuffer is how many records may wait for the program before new
// ones are dropped.
const logBuffer = 64

// logSink forwards records to the program from its own goroutine, so
// that logging from inside Update does not block on the event loop
// that is running it.
type logSink struct {
	once    sync.Once
	records chan logRecordMsg
}

func (sink *logSink) start(program Sender) {
	sink.once.Do(func() {
		go func() {
			for record := range sink.records {
				program.Send(record)
			}
		}()
	})
}

// LogHandler is a slog.Handler that shows records in the status bar.
// Records below the handler's level are dropped. Records logged before
// SetProgram wait in the buffer; once it is full, new ones are dropped.
//
// Handlers derived via WithAttrs and WithGroup share one sink, so
// SetProgram on the root reaches all of them.
type LogHandler struct {
	level  slog.Leveler
	sink   *logSink
	attrs  []slog.Attr
	groups []string
}

// NewLogHandler creates a handler for records at or above level.
func NewLogHandler(level slog.Leveler) *LogHandler {
	return &LogHandler{
		level: level,
		sink:  &logSink{records: make(chan logRecordMsg, logBuffer)},
	}
}

// SetProgram starts delivering log lines to program. Only the first
// call has an effect. Safe to call from any goroutine.
func (handler *LogHandler) SetProgram(program Sender) {
	handler.sink.start(program)
}

// Enabled implements slog.Handler.
func (handler *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level.Level()
}

// Handle implements slog.Handler. The record becomes a one-line
// summary: "message (key=value, ...)".
func (handler *LogHandler) Handle(_ context.Context, record slog.Record) error {
	var summary strings.Builder
	summary.WriteString(record.Message)
	separator := " ("
	write := func(prefix string, attr slog.Attr) {
		if attr.Equal(slog.Attr{}) {
			return
		}
		summary.WriteString(separator)
		separator = ", "
		summary.WriteString(prefix)
		summary.WriteString(attr.Key)
		summary.WriteByte('=')
		summary.WriteString(attr.Value.Resolve().String())
	}
	for _, attr := range handler.attrs {
		write("", attr)
	}
	prefix := handler.groupPrefix()
	record.Attrs(func(attr slog.Attr) bool {
		write(prefix, attr)
		return true
	})
	if separator == ", " {
		summary.WriteByte(')')
	}

	select {
	case handler.sink.records <- logRecordMsg{Summary: summary.String(), Level: record.Level}:
	default:
	}
	return nil
}

// WithAttrs implements slog.Handler. Keys are qualified with the
// groups open at the time, so later groups do not apply to them.
func (handler *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *handler
	derived.attrs = slices.Clone(handler.attrs)
	prefix := handler.groupPrefix()
	for _, attr := range attrs {
		derived.attrs = append(derived.attrs, slog.Attr{Key: prefix + attr.Key, Value: attr.Value})
	}
	return &derived
}

// WithGroup implements slog.Handler.
func (handler *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := *handler
	derived.groups = append(slices.Clone(handler.groups), name)
	return &derived
}

func (handler *LogHandler) groupPrefix() string {
	if len(handler.groups) == 0 {
		return ""
	}
	return strings.Join(handler.groups, ".") + "."
}

// FanoutHandler sends every record to each of its handlers that is
// enabled for the record's level.
type FanoutHandler []slog.Handler

// Enabled implements slog.Handler.
func (handlers FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle implements slog.Handler. Every handler sees the record even
// if an earlier one failed; the first error is returned.
func (handlers FanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var first error
	for _, handler := range handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// WithAttrs implements slog.Handler.
func (handlers FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(FanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

// WithGroup implements slog.Handler.
func (handlers FanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(FanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}

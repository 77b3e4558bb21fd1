// Package logginghelpers carries the server-side slog plumbing: a handler
// that fans each record out to several destinations so request logs can go
// to stdout for the operator and to the audit file at the same time.
package logginghelpers

import (
	"context"
	"errors"
	"log/slog"
)

type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{
		handlers: handlers,
	}
}

func (h *MultiHandler) AddHandler(handler slog.Handler) {
	h.handlers = append(h.handlers, handler)
}

// enabled when any destination wants the level
func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// always calls every handler; a failing destination must not starve the rest
func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			errs = errors.Join(errs, handler.Handle(ctx, r))
		}
	}
	return errs
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: newHandlers}
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &MultiHandler{handlers: newHandlers}
}

package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// MaskValue is the string used to replace redacted values.
const MaskValue = "***REDACTED***"

// defaultRedactedKeys are attribute keys masked by every RedactHandler.
var defaultRedactedKeys = []string{
	"user_name",
	"username",
	"password",
	"token",
	"secret",
	"api_key",
}

// RedactHandler wraps an slog.Handler and masks the values of sensitive
// attribute keys. Key matching is case-insensitive and applies inside groups.
type RedactHandler struct {
	handler slog.Handler
	keys    map[string]struct{}
}

// NewRedactHandler wraps handler, masking the default keys plus extraKeys.
// If handler is nil, slog.Default().Handler() is wrapped.
func NewRedactHandler(handler slog.Handler, extraKeys ...string) *RedactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}

	keys := make(map[string]struct{}, len(defaultRedactedKeys)+len(extraKeys))
	for _, k := range defaultRedactedKeys {
		keys[k] = struct{}{}
	}
	for _, k := range extraKeys {
		keys[strings.ToLower(k)] = struct{}{}
	}

	return &RedactHandler{handler: handler, keys: keys}
}

// Enabled delegates to the underlying handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it on.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	redacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		redacted.AddAttrs(h.redact(a))
		return true
	})
	return h.handler.Handle(ctx, redacted)
}

// WithAttrs returns a new handler with the given attributes, masked.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.redact(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(redacted), keys: h.keys}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name), keys: h.keys}
}

func (h *RedactHandler) redact(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		redacted := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			redacted[i] = h.redact(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	}

	if _, ok := h.keys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, MaskValue)
	}
	return a
}

// NewLogger creates a text logger with redaction.
// verbose selects the Debug level; otherwise only warnings and errors are logged.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewRedactHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a JSON logger with redaction, for log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewRedactHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}

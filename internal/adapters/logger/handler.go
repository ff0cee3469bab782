package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/zsb/internal/ui/output"
	"go.trai.ch/zsb/internal/ui/style"
)

// PrettyHandler is a slog.Handler producing colored, human-readable lines.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	// attrs are formatted when added, under the groups open at that time.
	attrs  []string
	groups []string
}

// NewPrettyHandler creates a new PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	msg := r.Message
	color := termenv.RGBColor(string(style.Slate))

	switch {
	case r.Level >= slog.LevelError:
		msg = style.Cross + " " + msg
		color = termenv.RGBColor(string(style.Red))
	case r.Level >= slog.LevelWarn:
		msg = style.Warning + " " + msg
		color = termenv.RGBColor(string(style.Yellow))
	}

	parts := slices.Clone(h.attrs)
	prefix := h.prefix()
	r.Attrs(func(attr slog.Attr) bool {
		parts = appendAttr(parts, prefix, attr)
		return true
	})
	if len(parts) > 0 {
		msg += " " + strings.Join(parts, " ")
	}

	_, err := h.out.WriteString(h.out.String(msg).Foreground(color).String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	merged := slices.Clone(h.attrs)
	prefix := h.prefix()
	for _, attr := range attrs {
		merged = appendAttr(merged, prefix, attr)
	}
	return &PrettyHandler{out: h.out, level: h.level, attrs: merged, groups: h.groups}
}

// WithGroup returns a new Handler qualifying later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	groups := append(slices.Clone(h.groups), name)
	return &PrettyHandler{out: h.out, level: h.level, attrs: h.attrs, groups: groups}
}

func (h *PrettyHandler) prefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

// appendAttr formats attr as key=value, flattening group values into dotted keys.
func appendAttr(parts []string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return parts
	}

	if attr.Value.Kind() == slog.KindGroup {
		inner := prefix
		if attr.Key != "" {
			inner = prefix + attr.Key + "."
		}
		for _, a := range attr.Value.Group() {
			parts = appendAttr(parts, inner, a)
		}
		return parts
	}
	return append(parts, prefix+attr.Key+"="+attr.Value.String())
}

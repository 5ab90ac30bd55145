package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/sci/internal/ui/output"
	"go.trai.ch/sci/internal/ui/style"
)

// chainKey is the attribute Logger.Error uses to hand an error chain to the handler.
const chainKey = "chain"

// metadataOrder lists the error metadata keys that describe an invocation.
// They are shown first, in this order; any other key follows alphabetically.
var metadataOrder = []string{"command", "path", "url", "exit_code"}

// PrettyHandler is a slog.Handler for terminals. A plain record takes one
// coloured line. A record carrying an error chain is laid out as a red header
// with its causes and their metadata dimmed underneath.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level.Level()
	}

	levelVar := &slog.LevelVar{}
	levelVar.Set(level)

	return &PrettyHandler{
		out:   output.New(w),
		level: levelVar,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var chain []ErrorEntry
	parts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	collect := func(attr slog.Attr) bool {
		if entries, ok := attr.Value.Any().([]ErrorEntry); ok && attr.Key == chainKey {
			chain = entries
			return true
		}
		parts = append(parts, formatAttr(h.group, attr))
		return true
	}
	for _, attr := range h.attrs {
		collect(attr)
	}
	r.Attrs(collect)

	if len(chain) > 0 {
		return h.writeLines(chainLines(chain))
	}

	msg, color := r.Message, style.Slate
	switch {
	case r.Level >= slog.LevelError:
		msg, color = style.Cross+" "+msg, style.Red
	case r.Level >= slog.LevelWarn:
		msg, color = style.Warning+" "+msg, style.Yellow
	}
	if len(parts) > 0 {
		msg += " " + strings.Join(parts, " ")
	}
	return h.writeLines([]chainLine{{text: msg, color: color}})
}

func (h *PrettyHandler) writeLines(lines []chainLine) error {
	var b strings.Builder
	for _, line := range lines {
		if line.text != "" {
			b.WriteString(h.out.String(line.text).Foreground(termenv.RGBColor(string(line.color))).String())
		}
		b.WriteString("\n")
	}
	_, err := h.out.WriteString(b.String())
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: newAttrs,
		group: h.group,
	}
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: name,
	}
}

func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}

// chainLine is one line of handler output with its colour.
type chainLine struct {
	text  string
	color lipgloss.Color
}

// chainLines lays out entries as an "Error:" header followed by "Caused by:" arrows.
// Continuation lines of a message and its metadata align under the message text.
func chainLines(entries []ErrorEntry) []chainLine {
	var lines []chainLine

	for i, entry := range entries {
		head, indent, color := style.Cross+" Error: ", "         ", style.Red
		if i > 0 {
			if i == 1 {
				lines = append(lines, chainLine{}, chainLine{text: "  Caused by:", color: style.Slate})
			}
			head, indent, color = "    → ", "      ", style.Slate
		}

		msgLines := strings.Split(entry.Message, "\n")
		lines = append(lines, chainLine{text: head + msgLines[0], color: color})
		for _, line := range msgLines[1:] {
			lines = append(lines, chainLine{text: indent + line, color: color})
		}
		for _, k := range metadataKeys(entry.Metadata) {
			lines = append(lines, chainLine{
				text:  indent + formatMetadata(k, entry.Metadata[k]),
				color: style.Slate,
			})
		}
	}

	return lines
}

func metadataKeys(meta map[string]any) []string {
	keys := make([]string, 0, len(meta))
	for _, k := range metadataOrder {
		if _, ok := meta[k]; ok {
			keys = append(keys, k)
		}
	}
	rest := make([]string, 0, len(meta)-len(keys))
	for k := range meta {
		if !slices.Contains(metadataOrder, k) {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// formatMetadata renders one metadata value. Commands are quoted so that
// leading or trailing blanks stay visible.
func formatMetadata(key string, value any) string {
	switch key {
	case "command":
		return fmt.Sprintf("%s: %q", key, fmt.Sprint(value))
	case "exit_code":
		return fmt.Sprintf("exit code: %v", value)
	default:
		return fmt.Sprintf("%s: %v", key, value)
	}
}

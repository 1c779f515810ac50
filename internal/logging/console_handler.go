package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const consoleTimeLayout = "15:04:05.000"

const (
	colorReset  = "\x1b[0m"
	colorGray   = "\x1b[90m"
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorCyan   = "\x1b[36m"
)

// consoleHandler writes one line per record:
//
//	15:04:05.000 INFO  report/export: message key=value ... (file.go:42)
//
// Component and stage form the scope prefix. session_id is only shown below info.
type consoleHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     *slog.LevelVar
	color     bool
	addSource bool
	attrs     []slog.Attr
	groups    []string
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, addSource, color bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: lvl, addSource: addSource, color: color}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if !h.Enabled(context.Background(), record.Level) {
		return nil
	}

	fields := newFieldList(record.NumAttrs() + len(h.attrs))
	fields.addAll(h.groups, h.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		fields.add(h.groups, attr)
		return true
	})
	component := fields.take(FieldComponent)
	stage := fields.take(FieldStage)
	if record.Level >= slog.LevelInfo {
		fields.take(FieldSessionID)
	}

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var buf bytes.Buffer
	h.paint(&buf, colorGray, ts.Local().Format(consoleTimeLayout))
	buf.WriteByte(' ')
	h.paint(&buf, levelColor(record.Level), fmt.Sprintf("%-5s", levelName(record.Level)))
	buf.WriteByte(' ')
	if scope := joinScope(component, stage); scope != "" {
		h.paint(&buf, colorCyan, scope+":")
		buf.WriteByte(' ')
	}
	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}
	buf.WriteString(msg)
	for _, f := range fields.items {
		buf.WriteByte(' ')
		h.paint(&buf, colorGray, f.key+"=")
		buf.WriteString(renderValue(f.value))
	}
	if h.addSource && record.PC != 0 {
		if src := record.Source(); src != nil {
			buf.WriteByte(' ')
			h.paint(&buf, colorGray, "("+filepath.Base(src.File)+":"+strconv.Itoa(src.Line)+")")
		}
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(append([]string(nil), h.groups...), name)
	return &next
}

func (h *consoleHandler) paint(buf *bytes.Buffer, color, text string) {
	if h.color && color != "" {
		buf.WriteString(color)
		buf.WriteString(text)
		buf.WriteString(colorReset)
		return
	}
	buf.WriteString(text)
}

func joinScope(component, stage string) string {
	switch {
	case component == "":
		return stage
	case stage == "":
		return component
	default:
		return component + "/" + stage
	}
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return ""
	default:
		return colorGray
	}
}

type field struct {
	key   string
	value slog.Value
}

// fieldList keeps the first position of each key and the last value written to it.
type fieldList struct {
	items []field
	index map[string]int
}

func newFieldList(capacity int) *fieldList {
	return &fieldList{items: make([]field, 0, capacity), index: make(map[string]int, capacity)}
}

func (l *fieldList) addAll(groups []string, attrs []slog.Attr) {
	for _, attr := range attrs {
		l.add(groups, attr)
	}
}

func (l *fieldList) add(groups []string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		if attr.Key != "" {
			groups = append(append([]string(nil), groups...), attr.Key)
		}
		l.addAll(groups, attr.Value.Group())
		return
	}
	key := attr.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	if key == "" {
		return
	}
	if pos, ok := l.index[key]; ok {
		l.items[pos].value = attr.Value
		return
	}
	l.index[key] = len(l.items)
	l.items = append(l.items, field{key: key, value: attr.Value})
}

// take removes key and returns its value as a string.
func (l *fieldList) take(key string) string {
	pos, ok := l.index[key]
	if !ok {
		return ""
	}
	value := l.items[pos].value
	l.items = append(l.items[:pos], l.items[pos+1:]...)
	delete(l.index, key)
	for k, p := range l.index {
		if p > pos {
			l.index[k] = p - 1
		}
	}
	if value.Kind() == slog.KindString {
		return value.String()
	}
	return renderValue(value)
}

func renderValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().Round(time.Microsecond).String()
	case slog.KindTime:
		return v.Time().Local().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsAny(s, " =\"\t\n\r") {
		return strconv.Quote(s)
	}
	return s
}

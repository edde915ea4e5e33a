package logger

import (
	"log/slog"
	"strconv"
	"unicode/utf8"
)

// truncateAttr clips long string values, including inside groups and
// LogValuer results.
func truncateAttr(a slog.Attr, maxLen int) slog.Attr {
	if maxLen < 0 {
		return a
	}
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		if s := v.String(); len(s) > maxLen {
			return slog.String(a.Key, Truncate(s, maxLen))
		}
	case slog.KindGroup:
		attrs := v.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = truncateAttr(attr, maxLen)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return slog.Attr{Key: a.Key, Value: v}
}

// Truncate shortens s to at most maxLen bytes on a rune boundary and notes
// how many bytes were dropped.
func Truncate(s string, maxLen int) string {
	if maxLen < 0 || len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "...(" + strconv.Itoa(len(s)-cut) + " more bytes)"
}

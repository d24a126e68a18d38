package exporter

import (
	"strconv"
	"strings"

	"github.com/neox5/metricbox/internal/metric"
)

// label is a decoded tag.
type label struct {
	Name    string
	Value   string
	Numeric bool
	Number  uint16
}

// decodeTag applies the tag sign rule: negative values are negated raw
// numbers, everything else is an enumerated code.
func decodeTag(t metric.Tag) label {
	l := label{Name: t.TagKey().String()}
	if t.IsNumeric() {
		l.Numeric = true
		l.Number = t.Number()
		l.Value = strconv.FormatUint(uint64(l.Number), 10)
		return l
	}
	l.Value = t.EnumValue().String()
	return l
}

// uniqueLabels decodes tags, keeping first-seen key order and the last value
// for duplicated keys.
func uniqueLabels(ts []metric.Tag) []label {
	if len(ts) == 0 {
		return nil
	}
	out := make([]label, 0, len(ts))
	index := make(map[string]int, len(ts))
	for _, t := range ts {
		l := decodeTag(t)
		if i, ok := index[l.Name]; ok {
			out[i] = l
			continue
		}
		index[l.Name] = len(out)
		out = append(out, l)
	}
	return out
}

// sanitizeName maps a metric or label name onto [a-zA-Z0-9_:], prefixing an
// underscore when the name would start with a digit.
func sanitizeName(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	b.Grow(len(name) + 1)
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == ':':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

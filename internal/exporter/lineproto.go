package exporter

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/neox5/metricbox/internal/metric"
)

var (
	measurementEscaper = strings.NewReplacer(`,`, `\,`, ` `, `\ `, "\n", `\n`)
	tagEscaper         = strings.NewReplacer(`,`, `\,`, `=`, `\=`, ` `, `\ `, "\n", `\n`)
	fieldStringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
)

// ErrNonFinite is returned for NaN and infinite doubles, which line protocol
// cannot represent.
var ErrNonFinite = errors.New("non-finite value")

// LineProtocolExporter writes metrics as InfluxDB line protocol, one line
// per metric, tags in insertion order.
type LineProtocolExporter struct {
	mu      sync.Mutex
	w       io.Writer
	buf     []byte
	errors  int64
	skipped int64
}

// NewLineProtocolExporter creates an exporter writing to w.
func NewLineProtocolExporter(w io.Writer) *LineProtocolExporter {
	return &LineProtocolExporter{w: w}
}

// Send writes m. Write errors and unrepresentable metrics are logged and
// counted, never returned.
func (e *LineProtocolExporter) Send(m *metric.Metric) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var err error
	e.buf, err = AppendLine(e.buf[:0], m)
	if err != nil {
		e.skipped++
		slog.Debug("line protocol skipped metric", "metric", m.Name(), "error", err)
		return
	}
	if _, err := e.w.Write(e.buf); err != nil {
		e.errors++
		slog.Warn("line protocol write failed", "metric", m.Name(), "error", err)
	}
}

// Errors returns the number of failed writes.
func (e *LineProtocolExporter) Errors() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errors
}

// Skipped returns the number of metrics that could not be encoded.
func (e *LineProtocolExporter) Skipped() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.skipped
}

// AppendLine appends the line protocol encoding of m, including the trailing
// newline, to b. For a NaN or infinite double it returns b unchanged and
// ErrNonFinite.
//
// Enumerated tags are written by name and numeric tags as decimal numbers.
// Values are written to the "value" field: int32 with an "i" suffix, uint64
// with "u", doubles as floats and strings quoted. Newlines are escaped.
func AppendLine(b []byte, m *metric.Metric) ([]byte, error) {
	if d, ok := m.Value().(metric.Double); ok && (math.IsNaN(float64(d)) || math.IsInf(float64(d), 0)) {
		return b, ErrNonFinite
	}

	b = append(b, measurementEscaper.Replace(m.Name())...)

	for _, t := range m.Tags() {
		l := decodeTag(t)
		b = append(b, ',')
		b = append(b, tagEscaper.Replace(l.Name)...)
		b = append(b, '=')
		b = append(b, tagEscaper.Replace(l.Value)...)
	}

	b = append(b, " value="...)
	switch v := m.Value().(type) {
	case metric.Int:
		b = strconv.AppendInt(b, int64(v), 10)
		b = append(b, 'i')
	case metric.Uint64:
		b = strconv.AppendUint(b, uint64(v), 10)
		b = append(b, 'u')
	case metric.Double:
		b = strconv.AppendFloat(b, float64(v), 'g', -1, 64)
	case metric.String:
		b = append(b, '"')
		b = append(b, fieldStringEscaper.Replace(string(v))...)
		b = append(b, '"')
	}

	b = append(b, ' ')
	b = strconv.AppendInt(b, m.Timestamp().UnixNano(), 10)
	return append(b, '\n'), nil
}

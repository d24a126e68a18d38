package metric

import "github.com/neox5/metricbox/internal/tags"

// Tag is a compact (key, value) tag pair.
//
// Value multiplexes two kinds: a non-negative Value is an enumerated
// tags.Value code, a negative Value is a raw number stored negated. Zero is
// both tags.Null and the number 0; consumers cannot tell them apart.
type Tag struct {
	Key   int32
	Value int32
}

// TagKey returns the key as a tags.Key.
func (t Tag) TagKey() tags.Key {
	return tags.Key(t.Key)
}

// IsNumeric reports whether the tag carries a raw number.
// A number tag of 0 is reported as enumerated.
func (t Tag) IsNumeric() bool {
	return t.Value < 0
}

// Number returns the raw number of a numeric tag.
func (t Tag) Number() uint16 {
	return uint16(-t.Value)
}

// EnumValue returns the enumerated value of a non-numeric tag.
func (t Tag) EnumValue() tags.Value {
	return tags.Value(t.Value)
}

// EnumTag encodes an enumerated tag.
func EnumTag(key tags.Key, value tags.Value) Tag {
	return Tag{Key: key.Code(), Value: value.Code()}
}

// NumericTag encodes a raw number tag as -number. Number 0 encodes the same
// pair as the enumerated tags.Null and reads back as it; producers numbering
// things from zero should start at 1 instead.
func NumericTag(key tags.Key, number uint16) Tag {
	return Tag{Key: key.Code(), Value: -int32(number)}
}

// AddTag appends an enumerated tag and returns m.
func (m *Metric) AddTag(key tags.Key, value tags.Value) *Metric {
	m.tags = append(m.tags, EnumTag(key, value))
	return m
}

// AddNumericTag appends a raw number tag and returns m.
//
// Callers converting a wider integer to uint16 wrap silently, and
// AddNumericTag(key, 0) stores the same pair as AddTag(key, tags.Null).
func (m *Metric) AddNumericTag(key tags.Key, number uint16) *Metric {
	m.tags = append(m.tags, NumericTag(key, number))
	return m
}

// SetTags replaces all tags and returns m. m takes ownership of t.
func (m *Metric) SetTags(t []Tag) *Metric {
	m.tags = t
	return m
}

// Tags returns the tags in insertion order. The slice is capacity-clipped,
// so appending to it never writes into m; elements must not be modified.
func (m *Metric) Tags() []Tag {
	return m.tags[:len(m.tags):len(m.tags)]
}

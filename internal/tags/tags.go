// Package tags defines the closed sets of tag keys and enumerated tag values
// shared by metric producers and exporters.
//
// Codes are part of the wire format: append new entries at the end, never
// reorder or remove existing ones.
package tags

import (
	"fmt"
	"strings"
)

// Key identifies a tag dimension.
type Key uint16

const (
	KeyHost Key = iota
	KeyRole
	KeyName
	KeyDetector
	KeySubsystem
	KeyCRU
	KeyFLP
	KeyEPN
	KeyUnit
	KeyRun
	KeyID
	KeyType
	KeyState
	KeyCPU
)

var keyNames = [...]string{
	KeyHost:      "host",
	KeyRole:      "role",
	KeyName:      "name",
	KeyDetector:  "detector",
	KeySubsystem: "subsystem",
	KeyCRU:       "cru",
	KeyFLP:       "flp",
	KeyEPN:       "epn",
	KeyUnit:      "unit",
	KeyRun:       "run",
	KeyID:        "id",
	KeyType:      "type",
	KeyState:     "state",
	KeyCPU:       "cpu",
}

// Value is an enumerated tag value.
type Value uint16

const (
	Null Value = iota
	Bytes
	Kilobytes
	Megabytes
	Percent
	Seconds
	Milliseconds
	Nanoseconds
	Readout
	QC
	DataDistribution
	Monitoring
	Running
	Stopped
	Error
	Process
	System
)

var valueNames = [...]string{
	Null:             "null",
	Bytes:            "B",
	Kilobytes:        "kB",
	Megabytes:        "MB",
	Percent:          "%",
	Seconds:          "s",
	Milliseconds:     "ms",
	Nanoseconds:      "ns",
	Readout:          "readout",
	QC:               "qc",
	DataDistribution: "datadistribution",
	Monitoring:       "monitoring",
	Running:          "running",
	Stopped:          "stopped",
	Error:            "error",
	Process:          "process",
	System:           "system",
}

// Code returns the integer code stored in metric tags.
func (k Key) Code() int32 { return int32(k) }

// Valid reports whether k is a member of the key set.
func (k Key) Valid() bool { return int(k) < len(keyNames) }

// String returns the key name used as label or attribute name.
func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("key(%d)", uint16(k))
	}
	return keyNames[k]
}

// Code returns the integer code stored in metric tags.
func (v Value) Code() int32 { return int32(v) }

// Valid reports whether v is a member of the value set.
func (v Value) Valid() bool { return int(v) < len(valueNames) }

// String returns the value name used as label or attribute value.
func (v Value) String() string {
	if !v.Valid() {
		return fmt.Sprintf("value(%d)", uint16(v))
	}
	return valueNames[v]
}

// Keys returns every key in code order.
func Keys() []Key {
	out := make([]Key, len(keyNames))
	for i := range keyNames {
		out[i] = Key(i)
	}
	return out
}

// Values returns every value in code order.
func Values() []Value {
	out := make([]Value, len(valueNames))
	for i := range valueNames {
		out[i] = Value(i)
	}
	return out
}

// ParseKey looks up a key by name, case-insensitively.
func ParseKey(name string) (Key, error) {
	for i, n := range keyNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Key(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tag key %q", name)
}

// ParseValue looks up an enumerated value by name. An exact match wins over
// a case-insensitive one.
func ParseValue(name string) (Value, error) {
	name = strings.TrimSpace(name)
	for i, n := range valueNames {
		if n == name {
			return Value(i), nil
		}
	}
	for i, n := range valueNames {
		if strings.EqualFold(n, name) {
			return Value(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tag value %q", name)
}

package config

import (
	"fmt"
	"strconv"

	"github.com/neox5/metricbox/internal/metric"
	"github.com/neox5/metricbox/internal/tags"
)

// resolveMonitor applies defaults and encodes static tags.
func resolveMonitor(raw *RawMonitorConfig) (MonitorConfig, error) {
	cfg := MonitorConfig{
		Interval: raw.Interval,
		PerCPU:   raw.PerCPU,
	}

	if cfg.Interval == 0 {
		cfg.Interval = DefaultMonitorInterval
	}
	if cfg.Interval < 0 {
		return MonitorConfig{}, fmt.Errorf("monitor: interval must be positive, got %s", cfg.Interval)
	}

	for _, rt := range raw.Tags {
		tag, err := resolveTag(rt)
		if err != nil {
			return MonitorConfig{}, fmt.Errorf("monitor: %w", err)
		}
		cfg.Tags = append(cfg.Tags, tag)
	}

	return cfg, nil
}

// resolveTag encodes a static tag. Values that parse as an unsigned 16-bit
// number become numeric tags; anything else must name an enumerated value.
func resolveTag(rt RawTag) (metric.Tag, error) {
	key, err := tags.ParseKey(rt.Key)
	if err != nil {
		return metric.Tag{}, err
	}

	if n, err := strconv.ParseUint(rt.Value, 10, 16); err == nil {
		return metric.NumericTag(key, uint16(n)), nil
	}
	if _, err := strconv.ParseUint(rt.Value, 10, 64); err == nil {
		return metric.Tag{}, fmt.Errorf("tag %q: number %s out of range [0, 65535]", rt.Key, rt.Value)
	}

	val, err := tags.ParseValue(rt.Value)
	if err != nil {
		return metric.Tag{}, fmt.Errorf("tag %q: %w", rt.Key, err)
	}
	return metric.EnumTag(key, val), nil
}

package config

// Resolve applies defaults, converts raw values and builds the final config
func Resolve(raw *RawConfig) (*Config, error) {
	// Phase 1: Resolve settings config
	settings, err := resolveSettings(&raw.Settings)
	if err != nil {
		return nil, err
	}

	// Phase 2: Resolve monitor config
	monitor, err := resolveMonitor(&raw.Monitor)
	if err != nil {
		return nil, err
	}

	// Phase 3: Resolve export config
	export, err := resolveExport(&raw.Export)
	if err != nil {
		return nil, err
	}

	return &Config{
		Settings: settings,
		Monitor:  monitor,
		Export:   export,
	}, nil
}

package config

// RawConfig represents unparsed YAML structure
type RawConfig struct {
	Settings RawSettingsConfig `yaml:"settings"`
	Monitor  RawMonitorConfig  `yaml:"monitor"`
	Export   RawExportConfig   `yaml:"export"`
}

package config

// GlobalConfig is the on-disk shape shared by the global and project files.
type GlobalConfig struct {
	Compress *bool  `yaml:"compress,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
	LogFile  string `yaml:"log_file,omitempty"`
}

// Config holds the resolved runtime configuration
type Config struct {
	Version  string
	Compress bool
	LogLevel string
	LogFile  string
}

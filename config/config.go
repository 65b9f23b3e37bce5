package config

import (
	"os"
	"strconv"
	"strings"
)

// Defaults
const (
	DefaultLogLevel = "warn"
)

// LoadConfig loads configuration with precedence: defaults < global config < project config < env vars
func LoadConfig(version string) *Config {
	globalCfg := loadConfigFile(GetGlobalConfigPath())
	projectCfg := loadConfigFile(GetProjectConfigPath())

	cfg := &Config{
		Version:  version,
		LogLevel: DefaultLogLevel,
	}

	// Compress: default -> global -> project -> env
	if globalCfg.Compress != nil {
		cfg.Compress = *globalCfg.Compress
	}
	if projectCfg.Compress != nil {
		cfg.Compress = *projectCfg.Compress
	}
	if v := os.Getenv("TYPEDPIPE_COMPRESS"); v != "" {
		cfg.Compress = parseBool(v, cfg.Compress)
	}

	// Log level: default -> global -> project -> env
	if globalCfg.LogLevel != "" {
		cfg.LogLevel = globalCfg.LogLevel
	}
	if projectCfg.LogLevel != "" {
		cfg.LogLevel = projectCfg.LogLevel
	}
	cfg.LogLevel = getEnvOrDefault("TYPEDPIPE_LOG_LEVEL", cfg.LogLevel)

	// Log file: default -> global -> project -> env
	if globalCfg.LogFile != "" {
		cfg.LogFile = globalCfg.LogFile
	}
	if projectCfg.LogFile != "" {
		cfg.LogFile = projectCfg.LogFile
	}
	cfg.LogFile = getEnvOrDefault("TYPEDPIPE_LOG_FILE", cfg.LogFile)

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// parseBool accepts the usual strconv forms plus yes/no and on/off.
func parseBool(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return b
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedi4ever/typedpipe/util"
	"gopkg.in/yaml.v3"
)

// GetGlobalConfigPath returns the path to the global config file
// Can be overridden with TYPEDPIPE_CONFIG_DIR (for config only) or TYPEDPIPE_HOME
func GetGlobalConfigPath() string {
	configDir := os.Getenv("TYPEDPIPE_CONFIG_DIR")
	if configDir == "" {
		configDir = util.GetTypedpipeHome()
	}
	if configDir == "" {
		return ""
	}
	return filepath.Join(util.ExpandTilde(configDir), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file
func GetProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".typedpipe.yaml")
}

// loadConfigFile reads path, returning an empty config when the file is
// missing or unreadable. A pipeline stage should not fail on a bad config.
func loadConfigFile(path string) *GlobalConfig {
	cfg, err := LoadConfigFile(path)
	if err != nil {
		util.Log("config").Warning("ignoring %s: %v", path, err)
		return &GlobalConfig{}
	}
	return cfg
}

// LoadConfigFile loads a config file with error handling. A missing file is
// not an error.
func LoadConfigFile(path string) (*GlobalConfig, error) {
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// SaveConfigFile writes cfg to path, creating the directory if needed
func SaveConfigFile(path string, cfg *GlobalConfig) error {
	if path == "" {
		return fmt.Errorf("could not determine config file path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

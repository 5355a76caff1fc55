package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"traind/internal/common/fsutil"
)

// Config holds runtime parameters for a training run.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr         string  `json:"addr" yaml:"addr" toml:"addr"`
	DatasetsDir  string  `json:"datasets_dir" yaml:"datasets_dir" toml:"datasets_dir"`
	Dataset      string  `json:"dataset" yaml:"dataset" toml:"dataset"`
	MaxEpochs    int     `json:"max_epochs" yaml:"max_epochs" toml:"max_epochs"`
	BatchSize    int     `json:"batch_size" yaml:"batch_size" toml:"batch_size"`
	LearningRate float64 `json:"learning_rate" yaml:"learning_rate" toml:"learning_rate"`
	Patience     int     `json:"patience" yaml:"patience" toml:"patience"`
	Tol          float64 `json:"tol" yaml:"tol" toml:"tol"`
	Metric       string  `json:"metric" yaml:"metric" toml:"metric"`
	Maximize     bool    `json:"maximize" yaml:"maximize" toml:"maximize"`
	Verbose      int     `json:"verbose" yaml:"verbose" toml:"verbose"`
	Seed         int64   `json:"seed" yaml:"seed" toml:"seed"`
	LogLevel     string  `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	if !fsutil.PathExists(path) {
		return cfg, fmt.Errorf("config file not found: %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

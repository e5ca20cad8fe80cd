package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Config represents the unitspec configuration.
type Config struct {
	Output        string `json:"output,omitempty" yaml:"output,omitempty"`
	NoColor       *bool  `json:"noColor,omitempty" yaml:"noColor,omitempty"`
	Quiet         *bool  `json:"quiet,omitempty" yaml:"quiet,omitempty"`
	Bail          *bool  `json:"bail,omitempty" yaml:"bail,omitempty"`
	Timings       *bool  `json:"timings,omitempty" yaml:"timings,omitempty"`
	HistoryFile   string `json:"historyFile,omitempty" yaml:"historyFile,omitempty"`
	AbortOnErrors *bool  `json:"abortOnErrors,omitempty" yaml:"abortOnErrors,omitempty"`
	AutoFlush     *bool  `json:"autoFlush,omitempty" yaml:"autoFlush,omitempty"`
	SkipSuccess   *bool  `json:"skipSuccess,omitempty" yaml:"skipSuccess,omitempty"`
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetOutput returns the output format, defaulting to console.
func (c *Config) GetOutput() string {
	if c.Output == "" {
		return "console"
	}
	return c.Output
}

// GetNoColor returns the no-color setting, defaulting to false.
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetQuiet returns the quiet setting, defaulting to false.
func (c *Config) GetQuiet() bool {
	return getBool(c.Quiet, false)
}

// GetBail returns the bail setting, defaulting to false.
func (c *Config) GetBail() bool {
	return getBool(c.Bail, false)
}

// GetTimings returns the timings setting, defaulting to false.
func (c *Config) GetTimings() bool {
	return getBool(c.Timings, false)
}

// ConfigFilenames contains the possible config file names, searched in
// order.
var ConfigFilenames = []string{
	".unitspec.config.json",
	"unitspec.config.json",
	".unitspec.yaml",
	"unitspec.yaml",
}

// Load loads configuration from the specified path, or searches the
// current directory when path is empty. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		return loadFile(path)
	}
	return FindAndLoad(".")
}

// FindAndLoad searches for a config file in the given directory.
func FindAndLoad(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadFile(configPath)
		}
	}
	return &Config{}, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Normalize to a generic document so YAML and JSON validate the
	// same way.
	var doc map[string]any
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	if err := validate(normalized); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	config := &Config{}
	if err := json.Unmarshal(normalized, config); err != nil {
		return nil, err
	}
	return config, nil
}

func validate(document []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return err
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

// Merge merges another config into this one, with other taking
// precedence.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c

	if other.Output != "" {
		result.Output = other.Output
	}
	if other.HistoryFile != "" {
		result.HistoryFile = other.HistoryFile
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}
	if other.Quiet != nil {
		result.Quiet = other.Quiet
	}
	if other.Bail != nil {
		result.Bail = other.Bail
	}
	if other.Timings != nil {
		result.Timings = other.Timings
	}
	if other.AbortOnErrors != nil {
		result.AbortOnErrors = other.AbortOnErrors
	}
	if other.AutoFlush != nil {
		result.AutoFlush = other.AutoFlush
	}
	if other.SkipSuccess != nil {
		result.SkipSuccess = other.SkipSuccess
	}

	return &result
}

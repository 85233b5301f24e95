package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelgen/modelgen/core/logger"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppName string  `yaml:"app_name"`
	Schema  string  `yaml:"schema"`
	Output  string  `yaml:"output"`
	Codegen Codegen `yaml:"codegen"`
	Watch   Watch   `yaml:"watch"`
}

type Codegen struct {
	BaseClass         string                            `yaml:"base_class"`
	AutoImport        *bool                             `yaml:"auto_import"`
	TemplateDir       string                            `yaml:"template_dir"`
	ExtraTemplateData map[string]map[string]interface{} `yaml:"extra_template_data"`
}

type Watch struct {
	Exclude    []string `yaml:"exclude"`
	DebounceMS int      `yaml:"debounce_ms"`
}

// AutoImportEnabled defaults to true when the config leaves it unset.
func (c Codegen) AutoImportEnabled() bool {
	if c.AutoImport == nil {
		return true
	}
	return *c.AutoImport
}

func (w Watch) Debounce() int {
	if w.DebounceMS <= 0 {
		return 300
	}
	return w.DebounceMS
}

func Default() *Config {
	return &Config{
		AppName: "modelgen",
		Schema:  "models.yaml",
		Output:  "generated/models.py",
	}
}

func Load() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cannot determine working dir: %w", err)
	}

	paths := []string{
		filepath.Join(wd, "modelgen.yaml"),
	}

	var filePath string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			filePath = p
			break
		}
	}

	if filePath == "" {
		logger.Debug("No config file found, using default config")
		return Default(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	logger.Debug("Config file found: %s", filePath)
	logger.Debug("Config: %+v", cfg)

	return cfg, nil
}

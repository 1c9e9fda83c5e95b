package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML run config. Keys present in the file override
// the matching fields of base; absent keys keep base's values.
// Unknown keys are rejected so typos cannot silently fall back to defaults.
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading run config: %w", err)
	}
	cfg, err := ParseConfig(data, base)
	if err != nil {
		return Config{}, fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML run config data over base with strict field checking.
// An empty document returns base unchanged.
func ParseConfig(data []byte, base Config) (Config, error) {
	cfg := base
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

// Package config reads the countryraster YAML configuration.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/rubenv/countryraster/raster"
	"github.com/rubenv/countryraster/source"
	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Parallel bool   `yaml:"parallel"`
	Workers  int    `yaml:"workers"`
	Index    string `yaml:"index"`
	Output   string `yaml:"output"`

	Exclude    []string `yaml:"exclude"`
	IDProperty string   `yaml:"id_property"`
	IDTags     []string `yaml:"id_tags"`
	Simplify   float64  `yaml:"simplify"`
}

func DefaultConfig() *Config {
	opts := source.DefaultOptions()
	return &Config{
		Width:      360,
		Height:     180,
		Index:      string(raster.RTreeIndex),
		Output:     "boundaries.ser",
		Exclude:    append([]string(nil), opts.Exclude...),
		IDProperty: opts.IDProperty,
		IDTags:     append([]string(nil), opts.IDTags...),
	}
}

func ReadConfig(configPath string) (*Config, error) {
	f, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseConfig(f)
}

// ParseConfig reads YAML on top of the defaults.
func ParseConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	err = config.Validate()
	if err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("Invalid raster size: %dx%d", c.Width, c.Height)
	}
	if c.Workers < 0 {
		return fmt.Errorf("Invalid worker count: %d", c.Workers)
	}
	switch raster.IndexKind(c.Index) {
	case "", raster.RTreeIndex, raster.IntervalIndex:
	default:
		return fmt.Errorf("Unknown index: %s", c.Index)
	}
	if c.Simplify < 0 {
		return fmt.Errorf("Invalid simplify threshold: %v", c.Simplify)
	}
	return nil
}

func (c *Config) SourceOptions() source.Options {
	return source.Options{
		IDProperty: c.IDProperty,
		IDTags:     c.IDTags,
		Exclude:    c.Exclude,
		Simplify:   c.Simplify,
	}
}

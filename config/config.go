// Package config provides configuration loading and access for the farm simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Pools     PoolsConfig     `yaml:"pools"`
	Run       RunConfig       `yaml:"run"`
	Crops     []SpeciesConfig `yaml:"crops"`
	Animals   []SpeciesConfig `yaml:"animals"`
	Schedule  []RuleConfig    `yaml:"schedule"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// PoolsConfig holds the starting stock of each shared resource pool.
type PoolsConfig struct {
	Water int `yaml:"water"`
	Food  int `yaml:"food"`
}

// RunConfig holds run length parameters.
type RunConfig struct {
	Days int `yaml:"days"`
}

// SpeciesConfig defines one crop or animal type and its standard growth parameters.
// Injection rules reuse these parameters when adding new entities of the type.
type SpeciesConfig struct {
	Name       string `yaml:"name"`
	Initial    int    `yaml:"initial"`      // Entities seeded before day 1
	DaysToGrow int    `yaml:"days_to_grow"` // Growth steps until mature
	Required   int    `yaml:"required"`     // Pool resource consumed per entity per day
	Yield      int    `yaml:"yield"`        // Food credited per entity on harvest
}

// RuleConfig schedules new entities of a species on every Nth day.
type RuleConfig struct {
	Kind      string `yaml:"kind"` // "crop" or "animal"
	Type      string `yaml:"type"`
	EveryDays int    `yaml:"every_days"`
	Count     int    `yaml:"count"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	HarvestBoomFactor   float64 `yaml:"harvest_boom_factor"` // Day yield must exceed rolling mean by this factor
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CropIndex   map[string]int // crop name -> index into Crops
	AnimalIndex map[string]int // animal name -> index into Animals
}

// Kind names accepted in schedule rules.
const (
	KindCrop   = "crop"
	KindAnimal = "animal"
)

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Merge(cfg, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Default returns the embedded defaults. Panics if the embedded file is broken.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	cfg.computeDerived()
	return cfg
}

// Merge overlays YAML data onto cfg. Scalars present in data overwrite the
// current values; a list present in data replaces the whole list.
func Merge(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	cfg.computeDerived()
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Crops = append([]SpeciesConfig(nil), c.Crops...)
	out.Animals = append([]SpeciesConfig(nil), c.Animals...)
	out.Schedule = append([]RuleConfig(nil), c.Schedule...)
	out.computeDerived()
	return &out
}

// Species looks up a species by kind and name.
func (c *Config) Species(kind, name string) (SpeciesConfig, bool) {
	switch kind {
	case KindCrop:
		if i, ok := c.Derived.CropIndex[name]; ok {
			return c.Crops[i], true
		}
	case KindAnimal:
		if i, ok := c.Derived.AnimalIndex[name]; ok {
			return c.Animals[i], true
		}
	}
	return SpeciesConfig{}, false
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.CropIndex = make(map[string]int, len(c.Crops))
	for i, s := range c.Crops {
		c.Derived.CropIndex[s.Name] = i
	}
	c.Derived.AnimalIndex = make(map[string]int, len(c.Animals))
	for i, s := range c.Animals {
		c.Derived.AnimalIndex[s.Name] = i
	}

	if c.Telemetry.BookmarkHistorySize == 0 {
		c.Telemetry.BookmarkHistorySize = 5
	}
	if c.Telemetry.HarvestBoomFactor == 0 {
		c.Telemetry.HarvestBoomFactor = 2.0
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/doppler/internal/broadening"
	"github.com/san-kum/doppler/internal/logx"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEnergyMeV       = 1.0
	DefaultBeta            = 0.05
	DefaultDThetaDeg       = 10.0
	DefaultResolutionConst = 0.03
	DefaultDBeta           = 0.001
	DefaultPlotHeight      = 15
	DefaultPlotWidth       = 80
	DefaultPlotSamples     = 181
	DefaultDataDir         = ".doppler"
	DefaultTheme           = "classic"
)

type Config struct {
	Params  broadening.Params `yaml:"params" toml:"params"`
	Plot    PlotConfig        `yaml:"plot" toml:"plot"`
	Log     logx.Config       `yaml:"log" toml:"log"`
	DataDir string            `yaml:"data_dir" toml:"data_dir"`
}

type PlotConfig struct {
	Height  int    `yaml:"height" toml:"height"`
	Width   int    `yaml:"width" toml:"width"`
	Samples int    `yaml:"samples" toml:"samples"`
	Theme   string `yaml:"theme" toml:"theme"`
}

func DefaultParams() broadening.Params {
	return broadening.Params{
		EnergyMeV:       DefaultEnergyMeV,
		Beta:            DefaultBeta,
		DThetaDeg:       DefaultDThetaDeg,
		ResolutionConst: DefaultResolutionConst,
		DBeta:           DefaultDBeta,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Params: DefaultParams(),
		Plot: PlotConfig{
			Height:  DefaultPlotHeight,
			Width:   DefaultPlotWidth,
			Samples: DefaultPlotSamples,
			Theme:   DefaultTheme,
		},
		Log:     logx.DefaultConfig(),
		DataDir: DefaultDataDir,
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a YAML or TOML config (chosen by extension) on top of the
// defaults and validates the physical parameters.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver is Load with base in place of the defaults: keys missing from
// the file keep base's values. base itself is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := *base
	cfg := &c
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if c.Plot.Height <= 0 || c.Plot.Width <= 0 {
		return fmt.Errorf("plot size must be positive, got %dx%d", c.Plot.Width, c.Plot.Height)
	}
	if c.Plot.Samples < 2 {
		return fmt.Errorf("plot needs at least 2 samples, got %d", c.Plot.Samples)
	}
	return nil
}

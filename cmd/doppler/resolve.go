package main

import (
	"fmt"
	"os"

	"github.com/san-kum/doppler/internal/config"
	"github.com/san-kum/doppler/internal/logx"
	"github.com/san-kum/doppler/internal/storage"
	"github.com/spf13/cobra"
)

// layers is the resolved startup configuration. base holds the defaults,
// preset and profile; cfg is the config file and explicit flags on top.
type layers struct {
	dataDir string
	base    *config.Config
	cfg     *config.Config
}

// resolveDataDir picks the profile directory: --data, then the config
// file's data_dir, then the default.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("data") {
		return dataDir, nil
	}
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return "", fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.DataDir != "" {
			return cfg.DataDir, nil
		}
	}
	return config.DefaultDataDir, nil
}

// resolveLayers layers defaults, preset, profile, config file and finally
// the flags the user set explicitly.
func resolveLayers(cmd *cobra.Command) (*layers, error) {
	dir, err := resolveDataDir(cmd)
	if err != nil {
		return nil, err
	}

	base := config.DefaultConfig()

	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			if hint, found := config.SuggestPreset(preset); found {
				return nil, fmt.Errorf("unknown preset: %s (did you mean %q?)", preset, hint)
			}
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		base.Params = p
		log.Debug().Str("preset", preset).Msg("applied preset")
	}

	if profile != "" {
		prof, err := storage.New(dir).Load(profile)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		base.Params = prof.Params
		log.Debug().Str("profile", prof.ID).Str("dir", dir).Msg("applied profile")
	}

	l := &layers{dataDir: dir, base: base}
	if configFile != "" {
		l.cfg, err = config.LoadOver(configFile, base)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		log.Debug().Str("path", configFile).Msg("loaded config")
	} else {
		c := *base
		l.cfg = &c
	}

	if err := l.overlay(cmd, l.cfg); err != nil {
		return nil, err
	}
	return l, nil
}

// overlay applies the explicitly set flags and the resolved data directory
// to cfg. It runs at startup and again on every config reload.
func (l *layers) overlay(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("energy") {
		cfg.Params.EnergyMeV = energyMeV
	}
	if flags.Changed("beta") {
		cfg.Params.Beta = beta
	}
	if flags.Changed("dtheta") {
		cfg.Params.DThetaDeg = dThetaDeg
	}
	if flags.Changed("res") {
		cfg.Params.ResolutionConst = resolutionConst
	}
	if flags.Changed("dbeta") {
		cfg.Params.DBeta = dBeta
	}
	if flags.Changed("height") {
		cfg.Plot.Height = height
	}
	if flags.Changed("width") {
		cfg.Plot.Width = width
	}
	if flags.Changed("samples") {
		cfg.Plot.Samples = samples
	}
	if flags.Changed("theme") {
		cfg.Plot.Theme = theme
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON = logJSON
	}
	cfg.DataDir = l.dataDir

	return cfg.Validate()
}

// resolveConfig resolves every layer and rebuilds the logger from the
// result.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	l, err := resolveLayers(cmd)
	if err != nil {
		return nil, err
	}
	log = logx.New(l.cfg.Log, os.Stderr)
	return l.cfg, nil
}

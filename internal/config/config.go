// SPDX-License-Identifier: MIT

// Package config resolves command settings from flags, LDBLOCKS_* environment
// variables, an optional YAML file and defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. LDBLOCKS_MIN_DET.
const EnvPrefix = "LDBLOCKS"

// Keys shared by flags, environment and config file.
const (
	KeyMinDet  = "min-det"
	KeyR2      = "r2"
	KeyBacking = "backing"
	KeyDataset = "dataset"
	KeyDebug   = "debug"
)

// Matrix backings accepted by KeyBacking.
const (
	BackingMmap  = "mmap"
	BackingDense = "dense"
)

// ErrInvalidBacking indicates a backing other than mmap or dense.
var ErrInvalidBacking = errors.New("config: backing must be mmap or dense")

// Config is the resolved command configuration.
type Config struct {
	MinDet  float64 `mapstructure:"min-det"`
	R2      float64 `mapstructure:"r2"`
	Backing string  `mapstructure:"backing"`
	Dataset string  `mapstructure:"dataset"`
	Debug   bool    `mapstructure:"debug"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyMinDet, 0.001)
	v.SetDefault(KeyR2, 0.7)
	v.SetDefault(KeyBacking, BackingMmap)
	v.SetDefault(KeyDataset, "r2")
	v.SetDefault(KeyDebug, false)
	return v
}

// BindFlags binds every known key that has a flag in fs.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{KeyMinDet, KeyR2, KeyBacking, KeyDataset, KeyDebug} {
		if f := fs.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Load reads the optional config file at path and resolves the settings.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load configuration file. %w", err)
		}
	}
	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("failed unmarshal configuration. %w", err)
	}
	if conf.Backing != BackingMmap && conf.Backing != BackingDense {
		return nil, fmt.Errorf("%q: %w", conf.Backing, ErrInvalidBacking)
	}
	return conf, nil
}

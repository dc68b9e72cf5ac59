// File: config/config.go
// Package config loads paging pool settings from files and environment.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Engine hosts embed pagebuf with settings coming from deployment config;
// this package turns a YAML/TOML/JSON file plus PAGEBUF_* environment
// overrides into pool options. Programmatic construction can skip this
// package entirely and use pool functional options directly.

package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/momentics/pagebuf/pool"
)

// Config mirrors the tunable pool settings.
type Config struct {
	PageSize      int  `mapstructure:"page_size"`
	PrefetchDepth int  `mapstructure:"prefetch_depth"`
	Compression   bool `mapstructure:"compression"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		PageSize:      1024 * 1024,
		PrefetchDepth: 256,
		Compression:   true,
	}
}

// Load reads settings from the file at path (optional; empty path skips the
// file) and applies PAGEBUF_* environment overrides, e.g. PAGEBUF_PAGE_SIZE.
func Load(path string) (Config, error) {
	v := viper.New()
	d := Default()
	v.SetDefault("page_size", d.PageSize)
	v.SetDefault("prefetch_depth", d.PrefetchDepth)
	v.SetDefault("compression", d.Compression)

	v.SetEnvPrefix("PAGEBUF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Options converts the config into pool construction options.
func (c Config) Options() []pool.Option {
	return []pool.Option{
		pool.WithPageSize(c.PageSize),
		pool.WithPrefetchDepth(c.PrefetchDepth),
		pool.WithCompression(c.Compression),
	}
}

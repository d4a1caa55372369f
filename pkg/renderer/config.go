// pkg/renderer/config.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mmp/glstate/pkg/caps"
	"github.com/mmp/glstate/pkg/log"
	"github.com/mmp/glstate/pkg/util"

	"github.com/BurntSushi/toml"
)

const (
	TierAuto   = ""
	TierLegacy = "gl21"
	TierModern = "gl33"
)

// Config holds the renderer's settings. The zero value is not useful;
// start from DefaultConfig.
type Config struct {
	// Tier selects the legacy (fixed-function) or modern (core profile)
	// code paths; if empty, it's chosen from the device's capabilities.
	Tier     string `json:"tier" toml:"tier"`
	LogLevel string `json:"log_level" toml:"log_level"`

	// MaxLights limits the fixed-function light registers used; 0 means
	// as many as the device has.
	MaxLights int `json:"max_lights" toml:"max_lights"`
	// DefaultAnisotropy is used for textures that don't specify an
	// anisotropy level. It is clamped to the device maximum.
	DefaultAnisotropy float32 `json:"default_anisotropy" toml:"default_anisotropy"`

	// AllowNPOTResize enables resizing non-power-of-two images up to the
	// next power of two on devices that don't support them.
	AllowNPOTResize bool `json:"allow_npot_resize" toml:"allow_npot_resize"`
	// AllowCPUMipmaps enables generating mipmaps on the CPU when the
	// device can't generate them.
	AllowCPUMipmaps    bool `json:"allow_cpu_mipmaps" toml:"allow_cpu_mipmaps"`
	MipCacheSize       int  `json:"mip_cache_size" toml:"mip_cache_size"`
	MipCacheTTLSeconds int  `json:"mip_cache_ttl_seconds" toml:"mip_cache_ttl_seconds"`

	// DisabledCaps names device capabilities to treat as missing.
	DisabledCaps []string `json:"disabled_caps,omitempty" toml:"disabled_caps"`

	// LinearPipeline enables sRGB textures and framebuffers.
	LinearPipeline bool `json:"linear_pipeline" toml:"linear_pipeline"`

	// StatsHistory is the number of frames of statistics that are kept.
	StatsHistory int `json:"stats_history" toml:"stats_history"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel:           "info",
		DefaultAnisotropy:  1,
		AllowNPOTResize:    true,
		AllowCPUMipmaps:    true,
		MipCacheSize:       64,
		MipCacheTTLSeconds: 300,
		StatsHistory:       60,
	}
}

// LoadConfig reads a configuration file; files with a .toml extension
// are parsed as TOML and anything else as JSON. Settings that aren't
// present in the file keep their default values; unknown JSON settings
// are an error.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, &c); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	} else {
		contents, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}

		var e util.ErrorLogger
		util.CheckJSON[Config](contents, &e)
		if err := e.Err(); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
		if err := util.UnmarshalJSON(contents, &c); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(c)
}

// Validate checks all of the settings and returns an error that describes
// each of the problems found.
func (c *Config) Validate() error {
	var e util.ErrorLogger
	e.Push("config")
	defer e.Pop()

	switch c.Tier {
	case TierAuto, TierLegacy, TierModern:
	default:
		e.ErrorString("tier %q: must be %q or %q", c.Tier, TierLegacy, TierModern)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		e.Error(err)
	}
	if _, err := c.disabledCaps(); err != nil {
		e.Error(err)
	}
	if c.MaxLights < 0 {
		e.ErrorString("max_lights %d: must not be negative", c.MaxLights)
	}
	if c.DefaultAnisotropy < 0 || c.DefaultAnisotropy > 16 {
		e.ErrorString("default_anisotropy %g: must be between 0 and 16", c.DefaultAnisotropy)
	}
	if c.MipCacheSize < 0 {
		e.ErrorString("mip_cache_size %d: must not be negative", c.MipCacheSize)
	}
	if c.MipCacheTTLSeconds < 0 {
		e.ErrorString("mip_cache_ttl_seconds %d: must not be negative", c.MipCacheTTLSeconds)
	}
	if c.StatsHistory < 0 {
		e.ErrorString("stats_history %d: must not be negative", c.StatsHistory)
	}

	return e.Err()
}

func (c *Config) disabledCaps() ([]caps.Cap, error) {
	var cs []caps.Cap
	for _, name := range c.DisabledCaps {
		cp, err := caps.ParseCap(name)
		if err != nil {
			return nil, err
		}
		cs = append(cs, cp)
	}
	return cs, nil
}

func (c *Config) mipCacheTTL() time.Duration {
	return time.Duration(c.MipCacheTTLSeconds) * time.Second
}

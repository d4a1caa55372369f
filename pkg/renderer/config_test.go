// pkg/renderer/config_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mmp/glstate/pkg/caps"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Errorf("default config: %v", err)
	}
	if c.mipCacheTTL() != 5*time.Minute {
		t.Errorf("got TTL %s; expected 5m", c.mipCacheTTL())
	}
}

func TestConfigRoundTrip(t *testing.T) {
	c := DefaultConfig()
	c.Tier = TierLegacy
	c.MaxLights = 4
	c.DisabledCaps = []string{"MeshInstancing", "Srgb"}

	path := filepath.Join(t.TempDir(), "renderer.json")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Encode(f); err != nil {
		t.Fatal(err)
	}
	f.Close()

	lc, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if lc.Tier != TierLegacy || lc.MaxLights != 4 || len(lc.DisabledCaps) != 2 || lc.StatsHistory != c.StatsHistory {
		t.Errorf("got %+v; expected %+v", lc, c)
	}
	dc, err := lc.disabledCaps()
	if err != nil || len(dc) != 2 || dc[0] != caps.MeshInstancing || dc[1] != caps.Srgb {
		t.Errorf("got %v, %v; expected MeshInstancing and Srgb", dc, err)
	}
}

func TestConfigTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renderer.toml")
	toml := `tier = "gl33"
log_level = "debug"
allow_cpu_mipmaps = false
mip_cache_ttl_seconds = 10
`
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Tier != TierModern || c.LogLevel != "debug" || c.AllowCPUMipmaps || c.mipCacheTTL() != 10*time.Second {
		t.Errorf("got %+v; expected the file's settings", c)
	}
	// Settings missing from the file keep their defaults.
	if !c.AllowNPOTResize || c.MipCacheSize != 64 {
		t.Errorf("got %+v; expected defaults for unset values", c)
	}
}

func TestConfigLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Errorf("expected an error for a missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"tier": `), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil || !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("got %v; expected a parse error naming the file", err)
	}

	misspelled := filepath.Join(dir, "misspelled.json")
	if err := os.WriteFile(misspelled, []byte(`{"max_light": 2}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(misspelled); err == nil || !strings.Contains(err.Error(), "max_light") {
		t.Errorf("got %v; expected the unknown setting to be reported", err)
	}

	invalid := filepath.Join(dir, "invalid.toml")
	if err := os.WriteFile(invalid, []byte("max_lights = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(invalid); err == nil || !strings.Contains(err.Error(), "max_lights") {
		t.Errorf("got %v; expected a validation error", err)
	}
}

func TestConfigValidate(t *testing.T) {
	c := DefaultConfig()
	c.Tier = "gl45"
	c.LogLevel = "loud"
	c.DisabledCaps = []string{"Teleportation"}
	c.DefaultAnisotropy = 32
	c.MipCacheSize = -1
	c.StatsHistory = -5

	err := c.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	for _, s := range []string{"gl45", "loud", "Teleportation", "default_anisotropy", "mip_cache_size", "stats_history"} {
		if !strings.Contains(msg, s) {
			t.Errorf("%q: not found in error %q", s, msg)
		}
	}
	if n := strings.Count(msg, "config: "); n != 6 {
		t.Errorf("got %d errors; expected 6", n)
	}
}

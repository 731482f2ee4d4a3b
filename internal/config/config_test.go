package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scene != "random" {
		t.Errorf("expected scene random, got %s", cfg.Scene)
	}
	if cfg.Spawn.Count != 10 || cfg.Spawn.MinRadius != 2 || cfg.Spawn.MaxRadius != 15 {
		t.Errorf("unexpected spawn defaults: %+v", cfg.Spawn)
	}
	if cfg.World.Width != 800 || cfg.World.Height != 600 {
		t.Errorf("unexpected world defaults: %+v", cfg.World)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gravsim.yaml")
	data := []byte("scene: binary\nworld:\n  width: 1024\ncompute:\n  parallel: true\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Scene != "binary" || cfg.World.Width != 1024 || !cfg.Compute.Parallel {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.World.Height != 600 || cfg.Spawn.Count != 10 || !cfg.Compute.ValidateState {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("crowd")
	cfg.Seed = 77

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"zero width", func(c *Config) { c.World.Width = 0 }},
		{"inverted radius range", func(c *Config) { c.Spawn.MinRadius = 20 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestSimConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 9
	sc := cfg.SimConfig()

	if sc.Seed != 9 || sc.Integrator != "hybrid" || sc.Spawn.Extent != 0.4 {
		t.Errorf("unexpected sim config: %+v", sc)
	}
	if _, err := sim.New(sc); err != nil {
		t.Errorf("sim.New rejected default config: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("binary")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Scene != "binary" {
		t.Errorf("expected scene binary, got %s", cfg.Scene)
	}

	cfg.Scene = "mutated"
	if GetPreset("binary").Scene != "binary" {
		t.Error("GetPreset returned shared storage")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
		found := false
		for _, s := range sim.SceneNames() {
			if s == cfg.Scene {
				found = true
			}
		}
		if !found {
			t.Errorf("preset %s names unknown scene %q", name, cfg.Scene)
		}
	}
}

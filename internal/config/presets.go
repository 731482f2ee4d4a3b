package config

import "sort"

var Presets = map[string]*Config{
	"default": preset(func(c *Config) {}),
	"binary": preset(func(c *Config) {
		c.Scene = "binary"
		c.Duration = 30.0
	}),
	"trio": preset(func(c *Config) {
		c.Scene = "trio"
		c.Duration = 30.0
	}),
	"sandbox": preset(func(c *Config) {
		c.Scene = "empty"
	}),
	"crowd": preset(func(c *Config) {
		c.Spawn.Count = 120
		c.Spawn.MaxRadius = 6.0
		c.Compute.Parallel = true
	}),
	"symplectic": preset(func(c *Config) {
		c.Integrator = "symplectic"
		c.Dt = 0.005
	}),
}

func preset(apply func(c *Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

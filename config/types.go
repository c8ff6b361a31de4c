// Copyright © 2026 Marquee contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed accessors over the JSON config maps.

package config

import "time"

// Section returns the named section, or the top level itself for the empty
// name. Producer configs keep their own settings at the top level.
func (c Config) Section(name string) Section {
	if c == nil {
		return nil
	}
	if name == "" {
		return Section(c)
	}
	switch v := c[name].(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults fills in missing keys without overwriting anything the
// user already set.
func (c Config) RegisterDefaults(name string, defaults Section) {
	if c == nil || defaults == nil {
		return
	}
	target := c.Section(name)
	if target == nil {
		target = make(Section)
		c[name] = target
	}
	for key, value := range defaults {
		if _, ok := target[key]; !ok {
			target[key] = value
		}
	}
}

func (c Config) lookup(section, key string) (interface{}, bool) {
	s := c.Section(section)
	if s == nil {
		return nil, false
	}
	v, ok := s[key]
	return v, ok
}

// GetFloat reads a numeric key. JSON unmarshals every number as float64;
// the int case covers values set in code, defaults included.
func (c Config) GetFloat(section, key string, fallback float64) float64 {
	v, ok := c.lookup(section, key)
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return fallback
}

func (c Config) GetInt(section, key string, fallback int) int {
	v, ok := c.lookup(section, key)
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return fallback
}

func (c Config) GetBool(section, key string, fallback bool) bool {
	if v, ok := c.lookup(section, key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

func (c Config) GetString(section, key, fallback string) string {
	if v, ok := c.lookup(section, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// GetSeconds reads a duration stored as fractional seconds, the unit every
// timing knob in marquee.json uses.
func (c Config) GetSeconds(section, key string, fallback float64) time.Duration {
	return time.Duration(c.GetFloat(section, key, fallback) * float64(time.Second))
}

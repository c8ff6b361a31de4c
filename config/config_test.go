// Copyright © 2026 Marquee contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"
)

func resetStore() {
	once = sync.Once{}
	system = nil
	producers = nil
	loadErr = nil
}

func TestSystemDefaultsWritten(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	cfg := System()
	if cfg.GetFloat("scroll", "speed", 0) <= 0 {
		t.Fatalf("expected scroll.speed default to be set")
	}

	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read system config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal system config: %v", err)
	}
	if disk.Section("snapshot") == nil {
		t.Fatalf("expected snapshot section to be present")
	}
}

func TestScrollTypedView(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	SetSystem(Config{
		"scroll": map[string]interface{}{
			"speed":              0.2,
			"delay":              0.01,
			"min_duration":       30,
			"max_duration":       300,
			"loop":               false,
			"inactivity_timeout": 0.5,
			"rewind_threshold":   2,
		},
	})

	scroll := Scroll(System())
	if scroll.Speed != 0.2 || scroll.Delay != 0.01 {
		t.Fatalf("unexpected scroll view %+v", scroll)
	}
	if scroll.Loop {
		t.Fatalf("expected loop=false to pass through")
	}
	if scroll.InactivityTimeout != 500*time.Millisecond {
		t.Fatalf("expected 500ms inactivity timeout, got %v", scroll.InactivityTimeout)
	}
	if scroll.RewindThreshold != 2*time.Second {
		t.Fatalf("expected 2s rewind threshold, got %v", scroll.RewindThreshold)
	}
}

func TestScrollNonPositiveSpeedPassesThrough(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	SetSystem(Config{"scroll": map[string]interface{}{"speed": -1}})
	// The engine degrades a bad speed to the minimum duration; config must
	// not mask it behind a default.
	if got := Scroll(System()).Speed; got != -1 {
		t.Fatalf("expected -1 to pass through, got %v", got)
	}
}

func TestProducerRetryDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	policy := Retry(Producer("news"))
	if policy.MaxAttempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", policy.MaxAttempts)
	}
	if policy.Backoff != 2*time.Second {
		t.Fatalf("expected 2s backoff, got %v", policy.Backoff)
	}
	if !policy.Retryable(503) {
		t.Fatalf("expected 503 to be retryable")
	}
	if policy.Retryable(404) {
		t.Fatalf("404 must not be retryable")
	}
}

func TestReloadPicksUpEdits(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	System() // write defaults
	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}

	edited := Config{"scroll": map[string]interface{}{"speed": 5.0}}
	data, _ := json.Marshal(edited)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write edited config: %v", err)
	}

	if err := Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := Scroll(System()).Speed; got != 5.0 {
		t.Fatalf("expected reloaded speed 5.0, got %v", got)
	}
}

func TestGetSeconds(t *testing.T) {
	cfg := Config{"scroll": map[string]interface{}{"inactivity_timeout": 0.75}}

	if got := cfg.GetSeconds("scroll", "inactivity_timeout", 2); got != 750*time.Millisecond {
		t.Fatalf("expected 750ms, got %v", got)
	}
	if got := cfg.GetSeconds("scroll", "missing", 2); got != 2*time.Second {
		t.Fatalf("expected 2s fallback, got %v", got)
	}
}

func TestAccessorsFallBackOnWrongType(t *testing.T) {
	cfg := Config{"scroll": map[string]interface{}{
		"speed": "fast",
		"loop":  "yes",
	}}

	if got := cfg.GetFloat("scroll", "speed", 2); got != 2 {
		t.Fatalf("expected fallback for non-numeric speed, got %v", got)
	}
	if !cfg.GetBool("scroll", "loop", true) {
		t.Fatalf("expected fallback for non-bool loop")
	}
	if got := cfg.GetString("scroll", "speed", ""); got != "fast" {
		t.Fatalf("expected raw string value, got %q", got)
	}
}

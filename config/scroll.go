// Copyright © 2026 Marquee contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/scroll.go
// Summary: Typed views over the scroll, snapshot and retry sections.

package config

import "time"

// ScrollConfig is the typed view of the "scroll" section.
type ScrollConfig struct {
	Speed             float64
	Delay             float64
	MinDuration       float64
	MaxDuration       float64
	DurationBuffer    float64
	Loop              bool
	InactivityTimeout time.Duration
	RewindThreshold   time.Duration
}

// Scroll extracts the scroll parameters from a config. A non-positive speed
// is passed through untouched; the engine degrades it to the minimum
// duration rather than treating it as fatal.
func Scroll(cfg Config) ScrollConfig {
	return ScrollConfig{
		Speed:             cfg.GetFloat("scroll", "speed", 2.0),
		Delay:             cfg.GetFloat("scroll", "delay", 0.02),
		MinDuration:       cfg.GetFloat("scroll", "min_duration", 30),
		MaxDuration:       cfg.GetFloat("scroll", "max_duration", 300),
		DurationBuffer:    cfg.GetFloat("scroll", "duration_buffer", 0.1),
		Loop:              cfg.GetBool("scroll", "loop", true),
		InactivityTimeout: cfg.GetSeconds("scroll", "inactivity_timeout", 0.75),
		RewindThreshold:   cfg.GetSeconds("scroll", "rewind_threshold", 2),
	}
}

// SnapshotConfig is the typed view of the "snapshot" section.
type SnapshotConfig struct {
	Path        string
	MinInterval time.Duration
}

func Snapshot(cfg Config) SnapshotConfig {
	return SnapshotConfig{
		Path:        cfg.GetString("snapshot", "path", "/tmp/marquee/frame.png"),
		MinInterval: cfg.GetSeconds("snapshot", "min_interval", 0.2),
	}
}

// RetryPolicy is the typed view of a producer's "retry" section. The HTTP
// fetchers themselves live outside this core; the policy is shared so every
// producer retries the same way instead of growing ad hoc loops.
type RetryPolicy struct {
	MaxAttempts          int
	Backoff              time.Duration
	RetryableStatusCodes []int
}

// Retry extracts the retry policy from a producer config.
func Retry(cfg Config) RetryPolicy {
	policy := RetryPolicy{
		MaxAttempts: cfg.GetInt("retry", "max_attempts", 3),
		Backoff:     cfg.GetSeconds("retry", "backoff", 2),
	}

	section := cfg.Section("retry")
	if section == nil {
		return policy
	}
	raw, ok := section["retryable_status_codes"].([]interface{})
	if !ok {
		return policy
	}
	for _, v := range raw {
		switch code := v.(type) {
		case int:
			policy.RetryableStatusCodes = append(policy.RetryableStatusCodes, code)
		case float64:
			policy.RetryableStatusCodes = append(policy.RetryableStatusCodes, int(code))
		}
	}
	return policy
}

// Retryable reports whether the policy covers the given HTTP status code.
func (p RetryPolicy) Retryable(status int) bool {
	for _, code := range p.RetryableStatusCodes {
		if code == status {
			return true
		}
	}
	return false
}

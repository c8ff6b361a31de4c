// Copyright © 2026 Marquee contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for system and producer configuration files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("scroll", Section{
		"speed":              2.0,  // px/tick
		"delay":              0.02, // s/tick
		"min_duration":       30.0,
		"max_duration":       300.0,
		"duration_buffer":    0.1,
		"loop":               true,
		"inactivity_timeout": 0.75, // s
		"rewind_threshold":   2.0,  // s
	})
	cfg.RegisterDefaults("snapshot", Section{
		"path":         "/tmp/marquee/frame.png",
		"min_interval": 0.2, // s
	})
	cfg.RegisterDefaults("journal", Section{
		"enabled": false,
		"path":    "",
	})
}

func applyProducerDefaults(producer string, cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("retry", Section{
		"max_attempts":           3,
		"backoff":                2.0, // s, doubled per attempt
		"retryable_status_codes": []interface{}{429, 500, 502, 503, 504},
	})
	switch producer {
	case "news", "stocks", "odds", "leaderboard":
		cfg.RegisterDefaults("", Section{
			"refresh_interval": 300, // s
			"priority":         5,
		})
	}
}

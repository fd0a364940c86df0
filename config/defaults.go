// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Built-in defaults applied beneath any loaded config file.

package config

func applyDefaults(cfg Config) {
	cfg.RegisterDefaults("", Section{
		"color": "auto",
	})

	cfg.RegisterDefaults("transformers", Section{
		"enabled": true,
		"pipeline": []interface{}{
			map[string]interface{}{"id": "tables", "enabled": true},
			map[string]interface{}{"id": "fencelang", "enabled": false},
		},
	})

	cfg.RegisterDefaults("termfmt", Section{
		"style":              "catppuccin-mocha",
		"number_threshold":   60,
		"datetime_threshold": 60,
		"path_threshold":     40,
	})

	cfg.RegisterDefaults("history", Section{
		"enabled":    true,
		"db_path":    "",
		"list_limit": 20,
	})
}

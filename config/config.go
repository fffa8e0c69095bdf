// Copyright 2026 The Geodash Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the application configuration, loaded from an
// optional YAML file with sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	// DataDir holds the credential store and downloaded samples.
	DataDir string `yaml:"data_dir"`

	// SessionTTLHours is the authenticated session lifetime.
	SessionTTLHours int `yaml:"session_ttl_hours"`

	// MaxFilterColumns caps how many numeric and categorical columns the
	// sidebar offers filters for.
	MaxFilterColumns int `yaml:"max_filter_columns"`

	// Debug switches the logger to development output.
	Debug bool `yaml:"debug"`
}

// Default returns the default configuration.
func Default() Config {
	dataDir := "data"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".geodash")
	}
	return Config{
		DataDir:          dataDir,
		SessionTTLHours:  24,
		MaxFilterColumns: 3,
	}
}

// Load reads configuration from path, falling back to defaults when the
// file does not exist. Fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.SessionTTLHours <= 0 {
		cfg.SessionTTLHours = 24
	}
	if cfg.MaxFilterColumns <= 0 {
		cfg.MaxFilterColumns = 3
	}
	return cfg, nil
}

// UsersDBPath returns the credential store location under DataDir.
func (c Config) UsersDBPath() string {
	return filepath.Join(c.DataDir, "users.db")
}

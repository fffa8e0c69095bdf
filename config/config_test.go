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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.SessionTTLHours)
	assert.Equal(t, 3, cfg.MaxFilterColumns)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geodash.yaml")
	content := "data_dir: /tmp/gd\nsession_ttl_hours: 2\ndebug: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/gd", cfg.DataDir)
	assert.Equal(t, 2, cfg.SessionTTLHours)
	assert.True(t, cfg.Debug)
	// Unset fields keep their defaults.
	assert.Equal(t, 3, cfg.MaxFilterColumns)

	assert.Equal(t, filepath.Join("/tmp/gd", "users.db"), cfg.UsersDBPath())
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadClampsNonPositive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geodash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session_ttl_hours: -1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.SessionTTLHours)
}

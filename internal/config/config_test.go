// Copyright 2025 Lokapal
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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromYaml(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "lit3-ledger.yaml")
	content := "dataDir: /var/lib/lit3\ncurator: \"0x0101010101010101010101010101010101010101\"\n"
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

	cfg, err := LoadConfig(configFile)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/lit3", cfg.DataDir)
	assert.Equal(
		t,
		"0x0101010101010101010101010101010101010101",
		cfg.Curator,
	)
	assert.Same(t, cfg, GetConfig())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("LIT3_DATA_DIR", "/tmp/lit3-env")
	t.Setenv("LIT3_CALLER", "0x0202020202020202020202020202020202020202")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/lit3-env", cfg.DataDir)
	assert.Equal(
		t,
		"0x0202020202020202020202020202020202020202",
		cfg.Caller,
	)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/lit3-ledger.yaml")
	assert.Error(t, err)
}

func TestConfigContext(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/ctx"}
	ctx := WithContext(context.Background(), cfg)
	assert.Equal(t, cfg, FromContext(ctx))
	assert.Nil(t, FromContext(context.Background()))
}

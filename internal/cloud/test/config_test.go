// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cloud_test contains unit tests for the configuration layer: the
// hierarchical TOML loader and the shape of the configuration files shipped
// in the repository.
package cloud_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/cloud"
	test "github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/testutil"
	"github.com/stretchr/testify/assert"
)

// writeConfigFile writes a TOML fixture into the temporary config directory.
func writeConfigFile(t *testing.T, dir string, name string, body string) {
	t.Helper()
	test.HandleErr(os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644), t)
}

// TestLoadConfigHierarchy verifies the two-layer loading scheme: the base
// file establishes values and the runtime-specific file overrides only the
// keys it names, leaving the rest intact.
func TestLoadConfigHierarchy(t *testing.T) {
	dir := t.TempDir()

	writeConfigFile(t, dir, ".env.toml", `
[application]
name = "base-name"
port = 8080

[ingest]
max_upload_bytes = 1024

[agent_models.creative-flash]
model = "gemini-2.5-flash"
temperature = 0.2
rate_limit = 1
`)
	writeConfigFile(t, dir, ".env.unit.toml", `
[application]
name = "unit-name"
`)

	t.Setenv(cloud.EnvConfigFilePrefix, dir)
	t.Setenv(cloud.EnvConfigRuntime, "unit")

	config := cloud.NewConfig()
	cloud.LoadConfig(config)

	// Overridden by the runtime file.
	assert.Equal(t, "unit-name", config.Application.Name)
	// Inherited from the base file.
	assert.Equal(t, 8080, config.Application.Port)
	assert.Equal(t, int64(1024), config.Ingest.MaxUploadBytes)

	// Tables the runtime file does not mention pass through untouched.
	agent, ok := config.AgentModels["creative-flash"]
	assert.True(t, ok)
	assert.Equal(t, "gemini-2.5-flash", agent.Model)
	assert.Equal(t, 1, agent.RateLimit)
}

// TestLoadConfigDefaultsToTestRuntime verifies that an unset runtime selects
// the ".env.test.toml" override file, which is what lets a bare `go test`
// run pick up test configuration without any environment preparation.
func TestLoadConfigDefaultsToTestRuntime(t *testing.T) {
	dir := t.TempDir()

	writeConfigFile(t, dir, ".env.toml", `
[application]
name = "base-name"
`)
	writeConfigFile(t, dir, ".env.test.toml", `
[application]
name = "test-name"
`)

	t.Setenv(cloud.EnvConfigFilePrefix, dir)
	t.Setenv(cloud.EnvConfigRuntime, "")

	config := cloud.NewConfig()
	cloud.LoadConfig(config)

	assert.Equal(t, "test-name", config.Application.Name)
}

// TestLoadConfigMissingFilesIsQuiet verifies that pointing the loader at a
// directory with no configuration files leaves the config untouched rather
// than failing. Absent files are a legitimate state for unit test binaries
// that construct their configuration in code.
func TestLoadConfigMissingFilesIsQuiet(t *testing.T) {
	t.Setenv(cloud.EnvConfigFilePrefix, t.TempDir())
	t.Setenv(cloud.EnvConfigRuntime, "test")

	config := cloud.NewConfig()
	config.Application.Name = "preset"
	cloud.LoadConfig(config)

	assert.Equal(t, "preset", config.Application.Name)
}

// TestShippedConfigurationShape verifies the repository's own configuration
// files: the agent model the server binds to must exist and the values the
// pipeline depends on must be present.
func TestShippedConfigurationShape(t *testing.T) {
	config := test.GetConfig()

	agent, ok := config.AgentModels["creative-flash"]
	assert.True(t, ok, "the creative-flash agent model must be configured")
	assert.Equal(t, "gemini-2.5-flash", agent.Model)
	assert.NotEmpty(t, agent.SystemInstructions)
	assert.Equal(t, "application/json", agent.OutputFormat)
	assert.Greater(t, agent.RateLimit, 0)

	// The ingestion ceiling ships at 9 MiB.
	assert.Equal(t, int64(9*1024*1024), config.Ingest.MaxUploadBytes)

	// The analyze template must exist and carry the few-shot placeholder.
	assert.Contains(t, config.PromptTemplates.AnalyzePrompt, "EXAMPLE_JSON")
}

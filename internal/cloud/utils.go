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

// Package cloud provides components for interacting with the Gemini API.
// This file contains general-purpose utility functions that support the cloud
// package: hierarchical configuration loading and the helper that executes a
// structured-output request against a model.
//
// Functions:
//   - fileExists: A simple helper to check if a file exists.
//   - LoadConfig: A hierarchical configuration loader. It reads a base TOML
//     file and then overwrites values with an environment-specific file
//     (e.g. .env.local.toml, .env.test.toml) selected by an env var.
//   - GenerateStructuredResponse: Executes exactly one multimodal request
//     against a model, records token usage metrics, and returns the raw
//     response text with any markdown code fences stripped.
package cloud

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"go.opentelemetry.io/otel/metric"

	"github.com/BurntSushi/toml"
	"google.golang.org/genai"
)

// Cloud constants define the key strings used for configuration loading and
// authentication.
const (
	ConfigFileBaseName  = ".env"               // The base name for configuration files (e.g. ".env.toml").
	ConfigFileExtension = ".toml"              // The file extension for configuration files.
	ConfigSeparator     = "."                  // The separator used in config file names (e.g. ".env.local.toml").
	EnvConfigFilePrefix = "RIPE_CONFIG_PREFIX" // The environment variable for specifying the config directory.
	EnvConfigRuntime    = "RIPE_RUNTIME"       // The environment variable for the runtime context (e.g. "local", "test").
	EnvGeminiAPIKey     = "GEMINI_API_KEY"     // The environment variable holding the Gemini API credential.
)

// fileExists checks if a file or directory exists at the given path.
func fileExists(in string) bool {
	_, err := os.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// LoadConfig provides a hierarchical configuration loading mechanism. It first
// loads a base configuration file and then overwrites its values with an
// environment-specific configuration file. The directory and environment are
// selected through environment variables, which lets tests point at their own
// override file without touching the base configuration.
//
// Inputs:
//   - baseConfig: A pointer to the target configuration struct that will be
//     populated from the TOML files.
func LoadConfig(baseConfig interface{}) {
	configurationFilePrefix := os.Getenv(EnvConfigFilePrefix)
	if len(configurationFilePrefix) > 0 && !strings.HasSuffix(configurationFilePrefix, string(os.PathSeparator)) {
		configurationFilePrefix = configurationFilePrefix + string(os.PathSeparator)
	}

	// Default to the "test" runtime when unset so a bare `go test` run picks
	// up the test overrides.
	runtimeEnvironment := os.Getenv(EnvConfigRuntime)
	if runtimeEnvironment == "" {
		runtimeEnvironment = "test"
	}

	baseConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigFileExtension
	envConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigSeparator + runtimeEnvironment + ConfigFileExtension

	if fileExists(baseConfigFileName) {
		_, err := toml.DecodeFile(baseConfigFileName, baseConfig)
		if err != nil {
			log.Fatalf("failed to decode base configuration file %s with error: %s", baseConfigFileName, err)
		}
	}

	// Values in the environment file overwrite the base values.
	if fileExists(envConfigFileName) {
		_, err := toml.DecodeFile(envConfigFileName, baseConfig)
		if err != nil {
			log.Fatalf("failed to decode environment configuration file: %s with error: %s", envConfigFileName, err)
		}
	}
}

// GenerateStructuredResponse executes a single multimodal request against a
// quota-aware model and returns the text of the response. Per the session
// contract there is exactly one request per analysis: a failed call is
// returned to the caller as-is, never retried here.
//
// Models in JSON mode occasionally wrap the body in markdown code fences even
// when a response schema is set; those are stripped before returning.
//
// Inputs:
//   - ctx: The context for the request, controlling cancellation and tracing.
//   - inputTokenCounter: An OpenTelemetry counter for prompt tokens used.
//   - outputTokenCounter: An OpenTelemetry counter for response tokens generated.
//   - model: The rate-limited, quota-aware generative model to use.
//   - content: The multimodal content (text part plus inline media blob).
//
// Outputs:
//   - string: The concatenated text content of the model's response.
//   - error: An error if the request fails.
func GenerateStructuredResponse(
	ctx context.Context,
	inputTokenCounter metric.Int64Counter,
	outputTokenCounter metric.Int64Counter,
	model *QuotaAwareGenerativeAIModel,
	content []*genai.Content) (value string, err error) {
	resp, err := model.GenerateContent(ctx, content)
	if err != nil {
		return "", err
	}

	if resp.UsageMetadata != nil {
		inputTokenCounter.Add(ctx, int64(resp.UsageMetadata.PromptTokenCount))
		outputTokenCounter.Add(ctx, int64(resp.UsageMetadata.CandidatesTokenCount))
	}

	value = ""
	for _, candidate := range resp.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				value += fmt.Sprint(part.Text)
			}
		}
	}
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "```json")
	value = strings.TrimSuffix(value, "```")
	return strings.TrimSpace(value), nil
}

// NewTextPart is a factory delegate for creating the text part of a
// multimodal request.
func NewTextPart(in string) *genai.Part {
	return &genai.Part{Text: in}
}

// NewInlineDataPart is a factory delegate for creating an inline binary part
// from raw media bytes and their MIME type.
func NewInlineDataPart(data []byte, mimeType string) *genai.Part {
	return &genai.Part{InlineData: &genai.Blob{Data: data, MIMEType: mimeType}}
}

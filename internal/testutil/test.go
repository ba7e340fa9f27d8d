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

// Package test provides utility functions and mock data to support the
// application's test suite. It helps in setting up a consistent test
// environment, loading test-specific configuration, and providing stand-ins
// for the one external dependency (the generative model) so tests run without
// credentials or network access.
package test

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/cloud"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/model"
)

// StateManager acts as a simple in-memory cache for the application
// configuration during test runs. This prevents the need to reload
// configuration files for every test, speeding up the test suite.
type StateManager struct {
	config *cloud.Config
}

// state holds the singleton StateManager, ensuring the configuration is
// loaded only once per test run.
var state = &StateManager{}

// HandleErr is a simple test helper function that checks if an error is not
// nil. If an error exists, it fails the test immediately by calling t.Errorf.
//
// Inputs:
//   - err: The error to check.
//   - t: The *testing.T object from the current test.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// findModuleRoot walks up from the working directory until it finds the
// directory containing go.mod. Test binaries run with their package directory
// as the working directory, so a relative "configs" path would only resolve
// for packages at the repository root.
//
// Outputs:
//   - The absolute path of the module root, or "." if it cannot be found.
func findModuleRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}

// SetupOS configures the environment variables that the configuration loader
// (`cloud.LoadConfig`) depends on. By setting these variables, we direct the
// loader to use the test-specific configuration files
// (`configs/.env.test.toml`) instead of the local development ones.
//
// Outputs:
//   - An error if setting any environment variable fails.
func SetupOS() (err error) {
	// Point the loader at the configs directory of the module root so tests
	// in nested packages resolve the same files.
	err = os.Setenv(cloud.EnvConfigFilePrefix, filepath.Join(findModuleRoot(), "configs"))
	if err != nil {
		return err
	}
	// Select the ".env.test.toml" override file.
	err = os.Setenv(cloud.EnvConfigRuntime, "test")
	return err
}

// GetConfig is a singleton accessor for the test configuration.
// It ensures that the configuration is loaded from TOML files only once and
// is cached in the package-level `state` variable for subsequent calls.
// This is the primary way tests should retrieve their configuration.
//
// Outputs:
//   - A pointer to the loaded and cached cloud.Config struct.
func GetConfig() *cloud.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(config)
		state.config = config
	}
	return state.config
}

// GetTestVeoPromptJSON returns a well-formed model response: a JSON object
// with every mandatory category populated plus the optional audio field. It
// mirrors what the model produces under the response schema.
//
// Outputs:
//   - A string containing the JSON payload of a complete analysis result.
func GetTestVeoPromptJSON() string {
	return `{
  "cinematography": "Medium close-up, eye-level static shot on a 50mm lens with shallow depth of field.",
  "subject": "A street musician in a worn tweed jacket, eyes closed in concentration.",
  "action": "Fingers moving deliberately across the fretboard of an acoustic guitar.",
  "context_setting": "A rain-slicked cobblestone alley at dusk, neon signage reflecting in puddles.",
  "style_ambiance": "Moody cinematic realism, warm tungsten key light against cool blue shadows, subtle film grain.",
  "audio": "Fingerpicked guitar melody over distant city traffic and light rainfall.",
  "negative_prompt": "text overlays, watermarks, motion blur, distorted hands"
}`
}

// GetTestIncompleteVeoPromptJSON returns a response that parses as JSON but
// violates the mandatory-field invariant: the subject category is missing.
// Used to exercise the malformed-response path.
//
// Outputs:
//   - A string containing a structurally valid but semantically incomplete payload.
func GetTestIncompleteVeoPromptJSON() string {
	return `{
  "cinematography": "Wide establishing shot, slow aerial push-in.",
  "action": "Waves breaking against a basalt cliff.",
  "context_setting": "A volcanic coastline under heavy storm clouds.",
  "style_ambiance": "Desaturated documentary realism.",
  "negative_prompt": "people, boats, text overlays"
}`
}

// GetTestImageBytes returns a minimal but structurally recognizable PNG
// payload. The leading magic bytes are enough for content sniffing to
// identify it as image/png; the remainder is filler so size-related tests
// have something to measure.
//
// Outputs:
//   - A byte slice beginning with the PNG signature.
func GetTestImageBytes() []byte {
	header := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	return append(header, make([]byte, 64)...)
}

// StubAnalyzer is a deterministic stand-in for the analysis workflow. It
// satisfies the services.Analyzer contract and returns whatever outcome the
// test configured, optionally blocking until released so tests can observe
// the in-flight state.
type StubAnalyzer struct {
	// Prompt is the result returned when Err is nil.
	Prompt *model.VeoPrompt
	// Err, when set, is returned instead of a prompt.
	Err error
	// Gate, when non-nil, blocks Analyze until the channel is closed. This
	// lets a test hold the session in its ANALYZING state.
	Gate chan struct{}

	mu          sync.Mutex
	calls       int
	lastPayload *model.MediaPayload
}

// Analyze records the invocation and returns the configured outcome.
//
// Inputs:
//   - ctx: The request context. Cancellation releases a blocked stub.
//   - payload: The validated payload handed over by the session.
//
// Outputs:
//   - *model.VeoPrompt: The configured prompt, when no error is configured.
//   - error: The configured error, or the context error on cancellation.
func (s *StubAnalyzer) Analyze(ctx context.Context, payload *model.MediaPayload) (*model.VeoPrompt, error) {
	s.mu.Lock()
	s.calls++
	s.lastPayload = payload
	s.mu.Unlock()

	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return nil, model.NewAnalysisError(model.AnalysisRequestFailed, ctx.Err())
		}
	}

	if s.Err != nil {
		return nil, s.Err
	}
	if s.Prompt != nil {
		return s.Prompt, nil
	}
	return nil, model.NewAnalysisError(model.AnalysisRequestFailed, errors.New("stub analyzer has no configured outcome"))
}

// Calls returns how many times Analyze has been invoked.
func (s *StubAnalyzer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// LastPayload returns the payload from the most recent Analyze call.
func (s *StubAnalyzer) LastPayload() *model.MediaPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPayload
}

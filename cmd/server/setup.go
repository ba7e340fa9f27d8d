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

// Package main contains the setup and initialization logic for the
// application's state: a centralized state manager holding the configuration,
// the Gemini service clients, and the session service the API routes operate
// against.
//
// Functions:
//   - SetupOS: Points the configuration loader at the right TOML files.
//   - GetConfig: A singleton loader for the application configuration.
//   - InitState: Creates the service clients, the analysis workflow, and the
//     session service, and wires them together.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/cloud"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/ingestion"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/services"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/workflow"
)

// agentModelKey is the logical name of the model the analysis workflow uses,
// as configured under [agent_models] in the TOML files.
const agentModelKey = "creative-flash"

// StateManager holds the shared dependencies for the application, avoiding
// globals scattered across handlers.
type StateManager struct {
	config  *cloud.Config
	cloud   *cloud.ServiceClients
	session *services.SessionService
}

// state is the package-level singleton instance of StateManager.
var state = &StateManager{}

// SetupOS sets the environment variables the configuration loader uses to
// find the TOML files. The runtime defaults to "local" for a normal server
// start; tests set their own runtime.
//
// Outputs:
//   - error: An error if setting any environment variable fails.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "local")
	return err
}

// GetConfig provides a singleton instance of the application configuration,
// loading it from the TOML files on first use.
//
// Outputs:
//   - *cloud.Config: A pointer to the loaded application configuration.
func GetConfig() *cloud.Config {
	if state.config == nil {
		// A .env file is a development convenience for GEMINI_API_KEY; a
		// missing file is not an error because production sets the variable
		// directly.
		_ = godotenv.Load()

		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup os environment: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(config)
		state.config = config
	}
	return state.config
}

// InitState initializes the application state: the Gemini client container,
// the analysis workflow bound to the configured agent model, and the session
// service the routes call into. The credential check happens inside the
// client constructor; a missing GEMINI_API_KEY is fatal here, at startup,
// rather than on the first upload.
//
// Inputs:
//   - ctx: The root context.Context for the application.
func InitState(ctx context.Context) {
	config := GetConfig()

	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		log.Fatalf("failed to initialize service clients: %v\n", err)
	}
	state.cloud = cloudClients

	agentModel, ok := cloudClients.AgentModels[agentModelKey]
	if !ok {
		log.Fatalf("agent model %q is not configured\n", agentModelKey)
	}

	analysisWorkflow, err := workflow.NewMediaAnalysisWorkflow(config, agentModel)
	if err != nil {
		log.Fatalf("failed to build analysis workflow: %v\n", err)
	}

	validator := ingestion.NewValidator(config.Ingest.MaxUploadBytes)
	state.session = services.NewSessionService(validator, analysisWorkflow)
}

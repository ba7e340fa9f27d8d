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
// This file initializes and holds the client objects needed to talk to the
// one external service the application depends on. It acts as a small
// dependency injection container: `NewCloudServiceClients` is called once at
// startup and the resulting `ServiceClients` struct is passed to the parts of
// the application that need a model.
//
// Logic Flow:
//  1. `NewCloudServiceClients` is called at application startup with the
//     loaded configuration.
//  2. The Gemini API key is read from the process environment. A missing key
//     is a fatal startup condition: without it no analysis can ever succeed,
//     so failing fast beats failing on the first upload.
//  3. A genai client is created against the Gemini API backend.
//  4. Each configured agent model is materialized as a generation config and
//     wrapped in the rate-limiting decorator.
//
// Structs:
//   - ServiceClients: A container holding the genai client and the configured,
//     quota-aware agent models.
//
// Functions:
//   - NewCloudServiceClients: A factory that creates and configures the clients.
package cloud

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// ServiceClients is the central container for external service clients. The
// analysis pipeline receives its model from here rather than constructing its
// own, which keeps credential handling in one place and lets tests swap the
// whole boundary for a stub.
type ServiceClients struct {
	GenAIClient *genai.Client                           // Client for the Gemini generative AI API.
	AgentModels map[string]*QuotaAwareGenerativeAIModel // Configured agent models, keyed by logical name from the config.
}

// NewCloudServiceClients initializes the Gemini client and the configured
// agent models.
//
// Inputs:
//   - ctx: The root context.Context for the application.
//   - config: A pointer to the loaded application configuration.
//
// Outputs:
//   - *ServiceClients: A pointer to the fully initialized container.
//   - error: An error if the credential is absent or the client fails to initialize.
func NewCloudServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	apiKey := os.Getenv(EnvGeminiAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("environment variable %s is not set; the analysis client cannot start without a credential", EnvGeminiAPIKey)
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating genai client: %w", err)
	}

	// Materialize each configured agent model: generation parameters from the
	// TOML config, default safety settings, and the rate-limiting wrapper.
	agentModels := make(map[string]*QuotaAwareGenerativeAIModel)
	for amKey, values := range config.AgentModels {
		generationConfig := &genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](values.Temperature),
			TopP:              genai.Ptr[float32](values.TopP),
			TopK:              genai.Ptr[float32](values.TopK),
			MaxOutputTokens:   values.MaxTokens,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: values.SystemInstructions}}},
			SafetySettings:    DefaultSafetySettings,
			ResponseMIMEType:  values.OutputFormat,
		}
		agentModels[amKey] = NewQuotaAwareModel(generationConfig, values.Model, gc.Models, values.RateLimit)
	}

	return &ServiceClients{
		GenAIClient: gc,
		AgentModels: agentModels,
	}, nil
}

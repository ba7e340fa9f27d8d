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

// Package cloud defines the data structures for application configuration,
// loaded from TOML files, along with the clients for the one external service
// this application talks to: the Gemini generative AI API.
//
// This file centralizes the configuration structs. Everything tunable about
// the pipeline lives here: upload limits for the ingestion validator, the
// prompt template for the analyze request, and the generation parameters of
// each named agent model.
//
// Structs:
//   - PromptTemplates: Text templates for prompts sent to the GenAI model.
//   - GenAiModel: Generation parameters for a named generative model.
//   - Ingest: Upload constraints enforced by the ingestion validator.
//   - Config: The top-level struct aggregating all of the above.
//
// Functions:
//   - NewConfig: A constructor that initializes a new Config object with empty maps.
package cloud

import "google.golang.org/genai"

// DefaultSafetySettings defines the default content safety thresholds for
// GenAI requests. They are non-restrictive: the user is describing their own
// media back to themselves, so category blocking only produces confusing
// analysis failures.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// PromptTemplates holds the templates for the prompts sent to the model.
type PromptTemplates struct {
	AnalyzePrompt string `toml:"analyze"` // The template for the media analysis request.
}

// GenAiModel represents the configuration for a named generative model.
type GenAiModel struct {
	Model              string  `toml:"model"`               // The model identifier, e.g. "gemini-2.5-flash".
	SystemInstructions string  `toml:"system_instructions"` // The system instruction establishing persona and task.
	Temperature        float32 `toml:"temperature"`         // The temperature parameter.
	TopP               float32 `toml:"top_p"`               // The top_p parameter.
	TopK               float32 `toml:"top_k"`               // The top_k parameter.
	MaxTokens          int32   `toml:"max_tokens"`          // The maximum number of output tokens.
	OutputFormat       string  `toml:"output_format"`       // The response MIME type, e.g. "application/json".
	RateLimit          int     `toml:"rate_limit"`          // Requests per second permitted against this model.
}

// Ingest represents the constraints the ingestion validator enforces on
// uploaded files.
type Ingest struct {
	// MaxUploadBytes is the size ceiling for a single file. The default of
	// 9 MiB leaves headroom for the ~33% inflation of base64 inline encoding
	// under the transport's practical request-size limit.
	MaxUploadBytes int64 `toml:"max_upload_bytes"`
}

// Config represents the overall application configuration, loaded from TOML
// files. It is the root container for all other configuration structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name            string `toml:"name"`              // The name of the application, used as the telemetry service name.
		GoogleProjectId string `toml:"google_project_id"` // The Google Cloud project used for telemetry export.
		Port            int    `toml:"port"`              // The HTTP listen port.
	} `toml:"application"`
	Ingest          Ingest                `toml:"ingest"`           // Upload constraint configuration.
	PromptTemplates PromptTemplates       `toml:"prompt_templates"` // Prompt template configuration.
	AgentModels     map[string]GenAiModel `toml:"agent_models"`     // Named generative models, keyed by a logical name (e.g. "creative-flash").
}

// NewConfig creates a new, initialized Config instance. The map field must be
// initialized before the TOML decoder populates it.
//
// Outputs:
//   - *Config: A pointer to a new Config struct with its map field initialized.
func NewConfig() *Config {
	return &Config{
		AgentModels: make(map[string]GenAiModel),
	}
}

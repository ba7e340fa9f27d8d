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

// Package commands provides the concrete Command implementations of the
// analysis pipeline. This file defines the command that issues the single
// generative request of an analysis cycle.
//
// Logic Flow:
//  1. It receives a validated `model.MediaPayload` from the context.
//  2. It renders the analyze prompt from a Go template. The template carries
//     the seven-category breakdown the model must produce, and is populated
//     with a complete example of the desired JSON output (few-shot prompting)
//     to anchor the structure and register of the response.
//  3. It assembles one multimodal request: the media bytes as an inline blob
//     plus the rendered prompt text. The persona-setting system instruction,
//     generation parameters, and the strict response schema are already bound
//     to the model wrapper.
//  4. It sends the request. Exactly one request is issued per execution; any
//     transport or service failure is recorded as a REQUEST_FAILED analysis
//     error and ends the chain.
//  5. On success it places the raw JSON response text into the context for
//     `VeoPromptJsonToStruct` to parse.
package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"go.opentelemetry.io/otel/metric"

	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/cloud"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/cor"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/model"
	"google.golang.org/genai"
)

// VeoPromptCreator is a command that asks a generative model to reverse-
// engineer a structured cinematic prompt from a media payload.
type VeoPromptCreator struct {
	cor.BaseCommand
	generativeAIModel        *cloud.QuotaAwareGenerativeAIModel // The rate-limited generative model wrapper.
	template                 *template.Template                 // The Go template for building the analyze prompt.
	geminiInputTokenCounter  metric.Int64Counter                // OTel counter for prompt tokens.
	geminiOutputTokenCounter metric.Int64Counter                // OTel counter for response tokens.
}

// NewVeoPromptCreator is the constructor for the VeoPromptCreator command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - generativeAIModel: The rate-limited wrapper for the generative model.
//   - template: A parsed Go template for the analyze prompt.
//
// Outputs:
//   - *VeoPromptCreator: A pointer to the newly instantiated command with
//     initialized telemetry counters.
func NewVeoPromptCreator(
	name string,
	generativeAIModel *cloud.QuotaAwareGenerativeAIModel,
	template *template.Template) *VeoPromptCreator {

	out := &VeoPromptCreator{
		BaseCommand:       *cor.NewBaseCommand(name),
		generativeAIModel: generativeAIModel,
		template:          template,
	}

	out.geminiInputTokenCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.input", out.GetName()))
	out.geminiOutputTokenCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.output", out.GetName()))

	return out
}

// GenerateParams creates the map of dynamic data injected into the prompt
// template.
//
// Outputs:
//   - map[string]interface{}: Keys and values for template substitution.
func (t *VeoPromptCreator) GenerateParams(_ cor.Context) map[string]interface{} {
	params := make(map[string]interface{})

	// A complete, well-formed JSON example keeps the model's output anchored
	// to the expected structure and cinematic vocabulary.
	examplePrompt, _ := json.Marshal(model.GetExamplePrompt())
	params["EXAMPLE_JSON"] = string(examplePrompt)
	return params
}

// Execute renders the prompt and issues the single multimodal request.
//
// Inputs:
//   - context: The shared `cor.Context` for this workflow execution.
func (t *VeoPromptCreator) Execute(context cor.Context) {
	payload := context.Get(t.GetInputParam()).(*model.MediaPayload)

	var buffer bytes.Buffer
	err := t.template.Execute(&buffer, t.GenerateParams(context))
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), model.NewAnalysisError(model.AnalysisRequestFailed,
			fmt.Errorf("failed to execute prompt template: %w", err)))
		return
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				cloud.NewInlineDataPart(payload.Bytes, payload.MimeType),
				cloud.NewTextPart(buffer.String()),
			},
		},
	}

	out, err := cloud.GenerateStructuredResponse(
		context.GetContext(),
		t.geminiInputTokenCounter,
		t.geminiOutputTokenCounter,
		t.generativeAIModel,
		contents)
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), model.NewAnalysisError(model.AnalysisRequestFailed,
			fmt.Errorf("gemini request failed: %w", err)))
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), out)
}

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

// Package workflow defines the high-level business logic orchestrations,
// combining pipeline commands into coherent chains. This file implements the
// analysis client: the one component that talks to the generative model.
//
// The workflow is the pure function boundary the session depends on:
// (payload) -> (*VeoPrompt, error). It holds no state between calls, issues
// exactly one inference request per call, and maps every chain failure onto
// the AnalysisError taxonomy so the session never sees a raw transport error.
package workflow

import (
	"context"
	"errors"
	"text/template"

	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/cloud"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/commands"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/cor"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/model"
)

// PromptOutputParamName is the context key under which the chain's final,
// validated VeoPrompt is stored.
const PromptOutputParamName = "__veo_prompt_output__"

// MediaAnalysisWorkflow orchestrates the analysis of one media payload. It is
// structured as a Chain of Responsibility executing two commands: the
// generative request and the parse/validate transformation.
type MediaAnalysisWorkflow struct {
	cor.BaseCommand
	genaiModel      *cloud.QuotaAwareGenerativeAIModel
	analyzeTemplate *template.Template
	chain           cor.Chain // The underlying chain of commands to be executed.
}

// NewMediaAnalysisWorkflow constructs the analysis workflow around a
// configured agent model.
//
// The strict response schema is attached to the model's generation config
// here, at the point where the model is bound to this particular task, rather
// than in the generic client container.
//
// Inputs:
//   - config: The loaded application configuration (provides the prompt template).
//   - genaiModel: The quota-aware model the workflow will prompt.
//
// Outputs:
//   - *MediaAnalysisWorkflow: The ready-to-use workflow.
//   - error: An error if the analyze prompt template fails to parse.
func NewMediaAnalysisWorkflow(config *cloud.Config, genaiModel *cloud.QuotaAwareGenerativeAIModel) (*MediaAnalysisWorkflow, error) {
	analyzeTemplate, err := template.New("analyze").Parse(config.PromptTemplates.AnalyzePrompt)
	if err != nil {
		return nil, err
	}

	genaiModel.GenerativeContentConfig.ResponseSchema = commands.VeoPromptResponseSchema()

	out := &MediaAnalysisWorkflow{
		BaseCommand:     *cor.NewBaseCommand("media-analysis-workflow"),
		genaiModel:      genaiModel,
		analyzeTemplate: analyzeTemplate,
	}
	out.initializeChain()
	return out, nil
}

// Execute runs the workflow chain against the supplied context.
//
// Inputs:
//   - context: The chain of responsibility context for this execution.
func (m *MediaAnalysisWorkflow) Execute(context cor.Context) {
	m.chain.Execute(context)
}

// initializeChain builds the two-step command sequence. Called by the
// constructor.
func (m *MediaAnalysisWorkflow) initializeChain() {
	out := cor.NewBaseChain(m.GetName())

	// Step 1: Render the analyze prompt and issue the single multimodal
	// generation request. Produces the raw JSON response text.
	out.AddCommand(commands.NewVeoPromptCreator("generate-veo-prompt", m.genaiModel, m.analyzeTemplate))

	// Step 2: Parse the JSON text into a model.VeoPrompt and enforce the
	// mandatory-field invariant.
	out.AddCommand(commands.NewVeoPromptJsonToStruct("convert-veo-prompt", PromptOutputParamName))

	m.chain = out
}

// Analyze is the analysis client's contract: one payload in, one structured
// prompt or one typed error out.
//
// Inputs:
//   - ctx: The request context. Cancellation aborts the in-flight call.
//   - payload: The validated media payload to analyze.
//
// Outputs:
//   - *model.VeoPrompt: The structured prompt on success.
//   - error: A *model.AnalysisError describing the failure.
func (m *MediaAnalysisWorkflow) Analyze(ctx context.Context, payload *model.MediaPayload) (*model.VeoPrompt, error) {
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(ctx)
	chainCtx.Add(cor.CtxIn, payload)

	m.Execute(chainCtx)

	if chainCtx.HasErrors() {
		// Commands always record *model.AnalysisError values; surface the
		// first one. Anything else would be a programming error in a command,
		// treated as a failed request.
		for _, err := range chainCtx.GetErrors() {
			var analysisErr *model.AnalysisError
			if errors.As(err, &analysisErr) {
				return nil, analysisErr
			}
			return nil, model.NewAnalysisError(model.AnalysisRequestFailed, err)
		}
	}

	prompt, ok := chainCtx.Get(PromptOutputParamName).(*model.VeoPrompt)
	if !ok {
		return nil, model.NewAnalysisError(model.AnalysisMalformedResponse,
			errors.New("workflow completed without producing a prompt"))
	}
	return prompt, nil
}

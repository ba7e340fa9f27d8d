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

// Package workflow_test contains tests for the media analysis workflow. This
// file tests the workflow's construction contract (template parsing, schema
// binding) and the error taxonomy of Analyze, driven up to the network
// boundary with a cancelled context so no request is ever issued.
package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/cloud"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/model"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/workflow"
	test "github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/testutil"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

// newOfflineModel builds a quota-aware wrapper with no underlying client. It
// is only safe to use with a context that fails the rate limiter wait before
// the model handle would be touched.
func newOfflineModel() *cloud.QuotaAwareGenerativeAIModel {
	return cloud.NewQuotaAwareModel(&genai.GenerateContentConfig{}, "gemini-2.5-flash", nil, 1)
}

// TestNewMediaAnalysisWorkflowBindsSchema verifies that constructing the
// workflow parses the configured analyze template and attaches the strict
// response schema to the model's generation config.
func TestNewMediaAnalysisWorkflowBindsSchema(t *testing.T) {
	genaiModel := newOfflineModel()
	assert.Nil(t, genaiModel.GenerativeContentConfig.ResponseSchema)

	analysisWorkflow, err := workflow.NewMediaAnalysisWorkflow(config, genaiModel)
	assert.NoError(t, err)
	assert.NotNil(t, analysisWorkflow)

	schema := genaiModel.GenerativeContentConfig.ResponseSchema
	assert.NotNil(t, schema)
	assert.Len(t, schema.Properties, 7)
}

// TestNewMediaAnalysisWorkflowRejectsBadTemplate verifies that a malformed
// analyze template is reported at construction time, not at first use.
func TestNewMediaAnalysisWorkflowRejectsBadTemplate(t *testing.T) {
	broken := cloud.NewConfig()
	broken.PromptTemplates.AnalyzePrompt = "{{.Unclosed"

	analysisWorkflow, err := workflow.NewMediaAnalysisWorkflow(broken, newOfflineModel())
	assert.Error(t, err)
	assert.Nil(t, analysisWorkflow)
}

// TestAnalyzeClassifiesTransportFailure verifies that a failure before or
// during the generation request surfaces as a REQUEST_FAILED analysis error.
// A cancelled context makes the rate limiter wait fail deterministically, so
// the chain takes the same error path a transport failure would without
// issuing a request.
func TestAnalyzeClassifiesTransportFailure(t *testing.T) {
	analysisWorkflow, err := workflow.NewMediaAnalysisWorkflow(config, newOfflineModel())
	assert.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	payload := model.NewMediaPayload("photo.png", "image/png", test.GetTestImageBytes())
	prompt, err := analysisWorkflow.Analyze(cancelled, payload)
	assert.Nil(t, prompt)

	var aerr *model.AnalysisError
	assert.True(t, errors.As(err, &aerr))
	assert.Equal(t, model.AnalysisRequestFailed, aerr.Code)
}

// TestAnalyzeConfiguredTemplateRendersExample verifies that the analyze
// template shipped in the configuration carries the few-shot example
// placeholder. Without it the model loses its structural anchor and the
// malformed-response rate climbs.
func TestAnalyzeConfiguredTemplateRendersExample(t *testing.T) {
	assert.Contains(t, config.PromptTemplates.AnalyzePrompt, "{{.EXAMPLE_JSON}}")
}

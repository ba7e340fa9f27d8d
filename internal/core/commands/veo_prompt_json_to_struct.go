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
// analysis pipeline. This file defines the transformation step that follows
// `VeoPromptCreator` in the chain: it turns the raw JSON response text into a
// strongly-typed `model.VeoPrompt` and enforces the mandatory-field invariant.
// An empty response, unparseable JSON, or a missing mandatory field all
// surface as a MALFORMED_RESPONSE analysis error; no attempt is made to
// salvage free text.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/cor"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/model"
)

// VeoPromptJsonToStruct is a command that parses a JSON string into a
// validated VeoPrompt struct.
type VeoPromptJsonToStruct struct {
	cor.BaseCommand
}

// NewVeoPromptJsonToStruct is the constructor for the VeoPromptJsonToStruct
// command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - outputParamName: The context key where the resulting struct is stored.
//
// Outputs:
//   - *VeoPromptJsonToStruct: A pointer to the newly instantiated command.
func NewVeoPromptJsonToStruct(name string, outputParamName string) *VeoPromptJsonToStruct {
	out := &VeoPromptJsonToStruct{BaseCommand: *cor.NewBaseCommand(name)}
	out.OutputParamName = outputParamName
	return out
}

// Execute parses and validates the model's response text.
//
// Inputs:
//   - context: The shared `cor.Context` for this workflow execution.
func (t *VeoPromptJsonToStruct) Execute(context cor.Context) {
	raw, ok := context.Get(t.GetInputParam()).(string)
	if !ok || len(raw) == 0 {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), model.NewAnalysisError(model.AnalysisMalformedResponse,
			errors.New("model returned an empty response")))
		return
	}

	prompt := &model.VeoPrompt{}
	if err := json.Unmarshal([]byte(raw), prompt); err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), model.NewAnalysisError(model.AnalysisMalformedResponse,
			fmt.Errorf("failed to parse model response: %w", err)))
		return
	}

	if err := prompt.Validate(); err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), model.NewAnalysisError(model.AnalysisMalformedResponse, err))
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), prompt)
}

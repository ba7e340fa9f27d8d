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

// Package commands_test contains unit tests for the pipeline commands. This
// file pins down the response schema contract: the seven prompt categories,
// their types, and which of them the model is required to populate.
package commands_test

import (
	"testing"

	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/commands"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

// TestVeoPromptResponseSchemaShape verifies that the schema declares exactly
// the seven categories as string properties and marks every one except audio
// as required. The property names must match the JSON tags on model.VeoPrompt
// or response parsing silently drops fields.
func TestVeoPromptResponseSchemaShape(t *testing.T) {
	schema := commands.VeoPromptResponseSchema()

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Len(t, schema.Properties, 7)

	expected := []string{
		"cinematography",
		"subject",
		"action",
		"context_setting",
		"style_ambiance",
		"audio",
		"negative_prompt",
	}
	for _, name := range expected {
		property, ok := schema.Properties[name]
		assert.True(t, ok, "schema is missing the %q property", name)
		assert.Equal(t, genai.TypeString, property.Type)
		assert.NotEmpty(t, property.Description)
	}

	// Audio is the single optional category.
	assert.ElementsMatch(t,
		[]string{"cinematography", "subject", "action", "context_setting", "style_ambiance", "negative_prompt"},
		schema.Required)
}

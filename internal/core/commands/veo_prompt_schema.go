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
// analysis pipeline. This file declares the strict output schema attached to
// every analysis request. The schema is the contract that lets the client skip
// free-text parsing entirely: the model is asked to return data conforming to
// this shape, and anything that does not is treated as malformed.
package commands

import "google.golang.org/genai"

// VeoPromptResponseSchema builds the response schema for the structured
// analysis request: an object with exactly the seven prompt categories as
// string properties. Every field except audio is required. The property names
// and descriptions mirror the JSON tags on model.VeoPrompt.
//
// Outputs:
//   - *genai.Schema: The schema to set on the generation config.
func VeoPromptResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"cinematography":  {Type: genai.TypeString, Description: "Shot type, camera angle, and camera movement."},
			"subject":         {Type: genai.TypeString, Description: "Main character details, attire, texture, expression."},
			"action":          {Type: genai.TypeString, Description: "Primary activity and movement."},
			"context_setting": {Type: genai.TypeString, Description: "Environment, background elements, time of day."},
			"style_ambiance":  {Type: genai.TypeString, Description: "Aesthetic, lighting, film grain, mood."},
			"audio":           {Type: genai.TypeString, Description: "Soundscape, dialogue, or music suggestions."},
			"negative_prompt": {Type: genai.TypeString, Description: "Elements to explicitly exclude."},
		},
		Required: []string{"cinematography", "subject", "action", "context_setting", "style_ambiance", "negative_prompt"},
	}
}

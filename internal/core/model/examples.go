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

// Package model defines the core data structures for the application.
// This file provides hardcoded example objects used for few-shot prompting.
// Showing the generative model a complete, well-formed instance of the output
// it is expected to produce measurably improves how reliably it fills every
// category with cinematic language instead of flat description.
package model

// GetExamplePrompt creates a sample VeoPrompt. It is serialized to JSON and
// embedded in the analyze prompt template so the model sees the expected
// structure and register before it sees the media.
//
// Outputs:
//   - *VeoPrompt: A pointer to a hardcoded VeoPrompt object.
func GetExamplePrompt() *VeoPrompt {
	return &VeoPrompt{
		Cinematography: "Slow dolly-in from a low angle, 35mm anamorphic lens, shallow depth of field with a rack focus from the rain-streaked window to the subject.",
		Subject:        "A woman in her early thirties wearing a worn olive field jacket, hair damp from rain, expression caught between resolve and exhaustion.",
		Action:         "She wipes condensation from the glass with her sleeve and leans closer, scanning the street below for someone who has not arrived.",
		ContextSetting: "A dim second-floor diner at blue hour, neon signage bleeding through the window, empty counter stools in the background.",
		StyleAmbiance:  "Neo-noir palette of teal and sodium orange, visible film grain, soft practical lighting, melancholic and tense mood.",
		Audio:          "Muffled rain on glass, a distant siren, the low hum of a refrigerator case, sparse piano score entering late.",
		NegativePrompt: "No on-screen text, no watermarks, no lens dirt overlays, no motion blur artifacts, no modern smartphones.",
	}
}

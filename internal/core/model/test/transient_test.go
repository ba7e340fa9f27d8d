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

// Package model_test contains unit tests for the data models defined in the
// model package. This file tests the transient pipeline objects: the payload
// constructor's kind derivation and preview handle, and the mandatory-field
// invariant enforced by VeoPrompt.Validate.
package model_test

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/model"
	"github.com/stretchr/testify/assert"
)

// TestNewMediaPayloadImage verifies that an image content type produces an
// image-kind payload and a renderable data URL over the same bytes.
func TestNewMediaPayloadImage(t *testing.T) {
	data := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	payload := model.NewMediaPayload("sunset.png", "image/png", data)

	assert.Equal(t, "sunset.png", payload.FileName)
	assert.Equal(t, "image/png", payload.MimeType)
	assert.Equal(t, model.MediaKindImage, payload.Kind)
	assert.Equal(t, data, payload.Bytes)

	// The preview is an RFC 2397 data URL: the MIME type followed by the
	// base64 encoding of the exact payload bytes.
	expected := fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(data))
	assert.Equal(t, expected, payload.PreviewURL)
}

// TestNewMediaPayloadVideo verifies that any non-image media type maps onto
// the video kind. The validator guarantees the prefix is one of the two, so
// the constructor only needs to distinguish image from everything else.
func TestNewMediaPayloadVideo(t *testing.T) {
	payload := model.NewMediaPayload("clip.mp4", "video/mp4", []byte{0x00, 0x01})
	assert.Equal(t, model.MediaKindVideo, payload.Kind)
	assert.True(t, strings.HasPrefix(payload.PreviewURL, "data:video/mp4;base64,"))
}

// TestMediaPayloadBytesNeverSerialized verifies that marshaling a payload for
// the session snapshot does not embed the raw file content. The preview data
// URL is the only encoded copy that should leave the process.
func TestMediaPayloadBytesNeverSerialized(t *testing.T) {
	payload := model.NewMediaPayload("clip.mp4", "video/mp4", []byte("raw-file-content"))
	serialized, err := json.Marshal(payload)
	assert.NoError(t, err)
	assert.NotContains(t, string(serialized), "raw-file-content")
	assert.Contains(t, string(serialized), "preview_url")
}

// TestVeoPromptValidate exercises the mandatory-field invariant: the six
// category fields other than audio must be present and non-empty, while a
// missing audio field is acceptable.
func TestVeoPromptValidate(t *testing.T) {
	complete := model.GetExamplePrompt()
	assert.NoError(t, complete.Validate())

	// Audio is the one optional category.
	noAudio := *complete
	noAudio.Audio = ""
	assert.NoError(t, noAudio.Validate())

	// Dropping any mandatory category must fail, and the error should name
	// the JSON field so the cause is actionable in logs.
	cases := []struct {
		field  string
		mutate func(p *model.VeoPrompt)
	}{
		{"cinematography", func(p *model.VeoPrompt) { p.Cinematography = "" }},
		{"subject", func(p *model.VeoPrompt) { p.Subject = "" }},
		{"action", func(p *model.VeoPrompt) { p.Action = "" }},
		{"context_setting", func(p *model.VeoPrompt) { p.ContextSetting = "" }},
		{"style_ambiance", func(p *model.VeoPrompt) { p.StyleAmbiance = "" }},
		{"negative_prompt", func(p *model.VeoPrompt) { p.NegativePrompt = "   " }},
	}
	for _, tc := range cases {
		broken := *complete
		tc.mutate(&broken)
		err := broken.Validate()
		assert.Error(t, err, "expected a validation error for %s", tc.field)
		assert.Contains(t, err.Error(), tc.field)
	}
}

// TestVeoPromptJSONFieldNames verifies the wire names of the two multi-word
// categories. These names are shared with the response schema sent to the
// model, so a drift here would silently break response parsing.
func TestVeoPromptJSONFieldNames(t *testing.T) {
	serialized, err := json.Marshal(model.GetExamplePrompt())
	assert.NoError(t, err)
	assert.Contains(t, string(serialized), `"context_setting"`)
	assert.Contains(t, string(serialized), `"style_ambiance"`)
	assert.Contains(t, string(serialized), `"negative_prompt"`)

	// Audio is omitted entirely when empty rather than serialized as "".
	silent := &model.VeoPrompt{}
	serialized, err = json.Marshal(silent)
	assert.NoError(t, err)
	assert.NotContains(t, string(serialized), `"audio"`)
}

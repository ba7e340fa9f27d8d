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
// This file, `transient.go`, contains the in-memory data models that flow
// through the analysis pipeline. These objects are "transient" because nothing
// in this application is persisted: a payload and its resulting prompt live
// exactly as long as the session cycle that produced them and are dropped on
// reset or on a superseding submission.
package model

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// MediaKind is a closed enum describing the primary type of an uploaded file.
// It is always derived from the MIME type prefix and never set independently,
// which keeps the two fields consistent by construction.
type MediaKind string

const (
	// MediaKindImage identifies payloads with an `image/*` content type.
	MediaKindImage MediaKind = "image"
	// MediaKindVideo identifies payloads with a `video/*` content type.
	MediaKindVideo MediaKind = "video"
)

// SessionStatus is a closed enum for the lifecycle of the single analysis
// session. The presentation layer renders exactly one branch per status, so
// the set is deliberately small and exhaustive: there is no state in which
// two branches could both apply.
type SessionStatus string

const (
	// StatusIdle is the initial state: no file, no result, ready for a submission.
	StatusIdle SessionStatus = "IDLE"
	// StatusAnalyzing means a payload has been accepted and the one in-flight
	// inference request has not yet resolved.
	StatusAnalyzing SessionStatus = "ANALYZING"
	// StatusComplete means the last analysis succeeded and a result is held.
	StatusComplete SessionStatus = "COMPLETE"
	// StatusError means the last analysis failed. The cause is logged, never
	// stored for display.
	StatusError SessionStatus = "ERROR"
)

// MediaPayload is the normalized result of a successful validation. It owns a
// private copy of the file bytes; the original upload handle is not retained.
// A MediaPayload is never constructed for a file that failed validation.
type MediaPayload struct {
	FileName   string    `json:"file_name"`   // The client-declared file name, informational only.
	Bytes      []byte    `json:"-"`           // The full file content, owned by this payload. Never serialized.
	MimeType   string    `json:"mime_type"`   // The declared (or sniffed) content type, e.g. "image/png".
	Kind       MediaKind `json:"kind"`        // image or video, derived from the MimeType prefix.
	PreviewURL string    `json:"preview_url"` // An RFC 2397 data URL a UI can render without re-reading the file.
}

// NewMediaPayload builds a payload from validated inputs. The preview handle is
// a base64 data URL over the same bytes; it carries no semantic weight for the
// analysis itself and exists purely so a presentation layer can show the file.
//
// Inputs:
//   - fileName: The declared name of the uploaded file.
//   - mimeType: The validated content type. Must have an "image/" or "video/" prefix.
//   - data: The full file content.
//
// Outputs:
//   - *MediaPayload: The normalized in-memory representation of the file.
func NewMediaPayload(fileName string, mimeType string, data []byte) *MediaPayload {
	kind := MediaKindVideo
	if strings.HasPrefix(mimeType, "image/") {
		kind = MediaKindImage
	}
	return &MediaPayload{
		FileName:   fileName,
		Bytes:      data,
		MimeType:   mimeType,
		Kind:       kind,
		PreviewURL: fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)),
	}
}

// VeoPrompt is the structured analysis result: a cinematic text prompt broken
// into the seven categories a video generation model consumes. The JSON field
// names are part of the response schema contract with the generative model and
// must not change independently of it.
//
// The six category fields other than Audio are mandatory after a successful
// analysis; Audio may be empty, in which case a renderer simply omits the
// audio section. A VeoPrompt is immutable once constructed and is owned by the
// session for the duration of one analysis cycle.
type VeoPrompt struct {
	Cinematography string `json:"cinematography"`  // Shot type, camera angle, and camera movement.
	Subject        string `json:"subject"`         // Main subject, attire or appearance, expression.
	Action         string `json:"action"`          // Primary activity and movement, implied or explicit.
	ContextSetting string `json:"context_setting"` // Environment, background elements, time of day.
	StyleAmbiance  string `json:"style_ambiance"`  // Aesthetic, lighting, film grain, mood.
	Audio          string `json:"audio,omitempty"` // Soundscape, ambient noise, suggested score. Optional.
	NegativePrompt string `json:"negative_prompt"` // Elements to explicitly exclude from generation.
}

// Validate checks the post-parse invariant: every mandatory category must be
// present and non-empty. The generative model is asked to enforce the schema
// server-side, but a malformed or truncated response can still slip through,
// so the client re-checks before the result is allowed to reach the session.
//
// Outputs:
//   - error: A descriptive error naming the first missing field, or nil.
func (v *VeoPrompt) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"cinematography", v.Cinematography},
		{"subject", v.Subject},
		{"action", v.Action},
		{"context_setting", v.ContextSetting},
		{"style_ambiance", v.StyleAmbiance},
		{"negative_prompt", v.NegativePrompt},
	}
	for _, f := range required {
		if len(strings.TrimSpace(f.value)) == 0 {
			return fmt.Errorf("mandatory prompt field %q is missing or empty", f.name)
		}
	}
	return nil
}

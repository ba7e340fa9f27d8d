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

// Package ingestion implements the validator that stands between a raw upload
// and the analysis pipeline. It enforces the two admission constraints (media
// type and size ceiling) in order, short-circuiting on the first failure, and
// on success produces the normalized MediaPayload the rest of the system
// operates on. A failed validation produces a typed ValidationError and
// nothing else: no payload is constructed and no session state is touched.
package ingestion

import (
	"fmt"
	"strings"

	"github.com/h2non/filetype"

	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/model"
)

// DefaultMaxUploadBytes is the fallback size ceiling (9 MiB) applied when the
// configuration does not set one. Inline base64 encoding inflates the payload
// by roughly a third, and the transport has a practical request-size limit the
// encoded form must stay under.
const DefaultMaxUploadBytes int64 = 9 * 1024 * 1024

// Validator enforces upload constraints and normalizes accepted files.
type Validator struct {
	maxUploadBytes int64
}

// NewValidator constructs a Validator with the given size ceiling. A
// non-positive ceiling selects the default.
func NewValidator(maxUploadBytes int64) *Validator {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Validator{maxUploadBytes: maxUploadBytes}
}

// MaxUploadBytes returns the size ceiling this validator enforces.
func (v *Validator) MaxUploadBytes() int64 {
	return v.maxUploadBytes
}

// Validate checks an uploaded file against the admission constraints and, on
// success, returns the normalized in-memory payload.
//
// The checks run in a fixed order and stop at the first failure:
//  1. The content type must begin with "image/" or "video/". A browser always
//     declares a type, but other clients may not, so an empty declared type is
//     first filled in by sniffing the magic bytes.
//  2. The content must not exceed the configured size ceiling.
//
// Inputs:
//   - fileName: The declared name of the file, informational only.
//   - contentType: The declared MIME type, possibly empty.
//   - data: The full file content.
//
// Outputs:
//   - *model.MediaPayload: The normalized payload, only when validation passed.
//   - error: A *model.ValidationError describing the first failed constraint.
func (v *Validator) Validate(fileName string, contentType string, data []byte) (*model.MediaPayload, error) {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
			contentType = kind.MIME.Value
		}
	}

	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		return nil, model.NewValidationError(
			model.ValidationUnsupportedType,
			"Please upload a valid image or video file.",
		)
	}

	if int64(len(data)) > v.maxUploadBytes {
		return nil, model.NewValidationError(
			model.ValidationFileTooLarge,
			fmt.Sprintf("File is too large. Please keep it under %dMB.", v.maxUploadBytes/(1024*1024)),
		)
	}

	return model.NewMediaPayload(fileName, contentType, data), nil
}

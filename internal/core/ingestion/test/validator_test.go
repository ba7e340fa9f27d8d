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

// Package ingestion_test contains unit tests for the upload validator. The
// validator is a pure function over (name, type, bytes), so these tests cover
// the full admission contract: the type gate, the size ceiling, the fixed
// check ordering, content sniffing for clients that omit the type, and the
// shape of the payload produced on success.
package ingestion_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/ingestion"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/model"
	test "github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/testutil"
	"github.com/stretchr/testify/assert"
)

// TestValidateAcceptsImage verifies the happy path for an image upload: the
// payload comes back normalized with the image kind and a preview handle.
func TestValidateAcceptsImage(t *testing.T) {
	validator := ingestion.NewValidator(0)

	payload, err := validator.Validate("photo.png", "image/png", test.GetTestImageBytes())
	assert.NoError(t, err)
	assert.NotNil(t, payload)
	assert.Equal(t, model.MediaKindImage, payload.Kind)
	assert.Equal(t, "image/png", payload.MimeType)
	assert.True(t, strings.HasPrefix(payload.PreviewURL, "data:image/png;base64,"))
}

// TestValidateAcceptsVideo verifies the happy path for a video upload.
func TestValidateAcceptsVideo(t *testing.T) {
	validator := ingestion.NewValidator(0)

	payload, err := validator.Validate("trailer.mp4", "video/mp4", []byte{0x00, 0x00, 0x00, 0x18})
	assert.NoError(t, err)
	assert.Equal(t, model.MediaKindVideo, payload.Kind)
}

// TestValidateRejectsUnsupportedType verifies that a non-media content type
// is rejected with the UNSUPPORTED_TYPE code and the user-facing message, and
// that no payload is constructed.
func TestValidateRejectsUnsupportedType(t *testing.T) {
	validator := ingestion.NewValidator(0)

	payload, err := validator.Validate("notes.txt", "text/plain", []byte("just some text"))
	assert.Nil(t, payload)

	var verr *model.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, model.ValidationUnsupportedType, verr.Code)
	assert.Equal(t, "Please upload a valid image or video file.", verr.Message)
}

// TestValidateRejectsOversizedFile verifies that a valid media type over the
// ceiling is rejected with FILE_TOO_LARGE and a message naming the limit.
func TestValidateRejectsOversizedFile(t *testing.T) {
	validator := ingestion.NewValidator(0)

	oversized := make([]byte, ingestion.DefaultMaxUploadBytes+1)
	payload, err := validator.Validate("huge.mp4", "video/mp4", oversized)
	assert.Nil(t, payload)

	var verr *model.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, model.ValidationFileTooLarge, verr.Code)
	assert.Equal(t, "File is too large. Please keep it under 9MB.", verr.Message)
}

// TestValidateSizeCeilingIsInclusive verifies the boundary: a file of exactly
// the ceiling passes, one byte more fails.
func TestValidateSizeCeilingIsInclusive(t *testing.T) {
	validator := ingestion.NewValidator(128)

	atLimit, err := validator.Validate("exact.mp4", "video/mp4", make([]byte, 128))
	assert.NoError(t, err)
	assert.NotNil(t, atLimit)

	overLimit, err := validator.Validate("over.mp4", "video/mp4", make([]byte, 129))
	assert.Nil(t, overLimit)
	assert.Error(t, err)
}

// TestValidateTypeCheckRunsFirst verifies the fixed check ordering: an
// oversized file with an unsupported type reports the type failure, because
// the type gate short-circuits before the size gate is consulted.
func TestValidateTypeCheckRunsFirst(t *testing.T) {
	validator := ingestion.NewValidator(64)

	_, err := validator.Validate("huge.pdf", "application/pdf", make([]byte, 1024))

	var verr *model.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, model.ValidationUnsupportedType, verr.Code)
}

// TestValidateSniffsMissingContentType verifies that when a client omits the
// content type, the validator falls back to sniffing the magic bytes. A PNG
// signature without any declared type should still be admitted as image/png.
func TestValidateSniffsMissingContentType(t *testing.T) {
	validator := ingestion.NewValidator(0)

	payload, err := validator.Validate("photo", "", test.GetTestImageBytes())
	assert.NoError(t, err)
	assert.Equal(t, "image/png", payload.MimeType)
	assert.Equal(t, model.MediaKindImage, payload.Kind)
}

// TestValidateUnsniffableContentRejected verifies that content with no
// declared type and no recognizable signature fails the type gate rather than
// slipping through as unknown.
func TestValidateUnsniffableContentRejected(t *testing.T) {
	validator := ingestion.NewValidator(0)

	payload, err := validator.Validate("mystery.bin", "", []byte("hello world, nothing binary here"))
	assert.Nil(t, payload)

	var verr *model.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, model.ValidationUnsupportedType, verr.Code)
}

// TestNewValidatorDefaultsCeiling verifies that a non-positive configuration
// value selects the 9 MiB default rather than disabling the check.
func TestNewValidatorDefaultsCeiling(t *testing.T) {
	assert.Equal(t, ingestion.DefaultMaxUploadBytes, ingestion.NewValidator(0).MaxUploadBytes())
	assert.Equal(t, ingestion.DefaultMaxUploadBytes, ingestion.NewValidator(-1).MaxUploadBytes())
	assert.Equal(t, int64(1024), ingestion.NewValidator(1024).MaxUploadBytes())
}

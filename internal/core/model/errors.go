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
// This file defines the error taxonomy shared by the ingestion validator and
// the analysis client. The two families have deliberately different blast
// radii: validation errors are local and recoverable, reported straight back
// to the submission surface without touching session state, while analysis
// errors always transition the session into its ERROR state.
package model

import "fmt"

// ValidationCode enumerates the ways an uploaded file can be rejected before
// any payload is constructed.
type ValidationCode string

const (
	// ValidationUnsupportedType is returned when the content type is neither
	// image/* nor video/*.
	ValidationUnsupportedType ValidationCode = "UNSUPPORTED_TYPE"
	// ValidationFileTooLarge is returned when the file exceeds the configured
	// size ceiling.
	ValidationFileTooLarge ValidationCode = "FILE_TOO_LARGE"
)

// ValidationError describes a rejected upload. The Message field is written
// for end users and is safe to return verbatim from the HTTP surface.
type ValidationError struct {
	Code    ValidationCode `json:"code"`
	Message string         `json:"error"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Code, e.Message)
}

// NewValidationError builds a typed validation failure.
func NewValidationError(code ValidationCode, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// AnalysisCode enumerates the ways a single analysis request can fail.
type AnalysisCode string

const (
	// AnalysisRequestFailed covers every transport and service level failure:
	// timeouts, quota rejections, network errors, safety blocks.
	AnalysisRequestFailed AnalysisCode = "REQUEST_FAILED"
	// AnalysisMalformedResponse covers an empty response body, unparseable
	// JSON, or a parsed object missing a mandatory field.
	AnalysisMalformedResponse AnalysisCode = "MALFORMED_RESPONSE"
)

// AnalysisError describes a failed analysis. The underlying cause is retained
// only for developer-facing diagnostics (log output); the HTTP surface shows
// end users a fixed generic message and never the cause.
type AnalysisError struct {
	Code  AnalysisCode
	cause error
}

// Error implements the error interface. The rendered string includes the
// cause, which is why it must only ever reach log sinks.
func (e *AnalysisError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("analysis failed (%s)", e.Code)
	}
	return fmt.Sprintf("analysis failed (%s): %v", e.Code, e.cause)
}

// Unwrap exposes the cause to errors.Is / errors.As chains.
func (e *AnalysisError) Unwrap() error {
	return e.cause
}

// NewAnalysisError wraps a low-level failure in the taxonomy the session
// state machine understands.
func NewAnalysisError(code AnalysisCode, cause error) *AnalysisError {
	return &AnalysisError{Code: code, cause: cause}
}

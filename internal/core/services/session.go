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

// Package services contains the application-level services that sit between
// the HTTP surface and the analysis pipeline. This file implements the session
// state machine: a single, process-local session that owns the current file,
// the current result, and the lifecycle status the presentation layer renders
// against.
//
// Lifecycle:
//
//	IDLE -> ANALYZING -> {COMPLETE, ERROR}
//
// plus a reset transition from any state back to IDLE. A submission from a
// terminal state implicitly resets first. A submission while ANALYZING is
// rejected: one in-flight analysis at a time is the whole concurrency model.
//
// Error propagation follows two different paths on purpose: validation
// failures are returned straight to the caller with session state untouched
// (the file was never accepted, so there is nothing to transition), while
// analysis failures always land the session in ERROR with the cause kept for
// logs only.
package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/ingestion"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/model"
)

// ErrAnalysisInFlight is returned by Submit while an analysis is running. The
// presentation layer is expected to disable submission during ANALYZING, so
// hitting this error means two surfaces raced; the in-flight analysis wins.
var ErrAnalysisInFlight = errors.New("an analysis is already in progress")

// Analyzer is the session's view of the analysis client. It isolates the one
// true external dependency behind a pure function boundary so tests can
// substitute a deterministic stub.
type Analyzer interface {
	Analyze(ctx context.Context, payload *model.MediaPayload) (*model.VeoPrompt, error)
}

// Snapshot is a read-only copy of the session state for the presentation
// layer. File and Prompt are only set in the states where they exist.
type Snapshot struct {
	Status     model.SessionStatus `json:"status"`
	AnalysisID string              `json:"analysis_id,omitempty"`
	File       *model.MediaPayload `json:"file,omitempty"`
	Prompt     *model.VeoPrompt    `json:"prompt,omitempty"`
}

// SessionService is the state machine for the single active session. All
// mutations go through Submit and Reset; reads go through Snapshot.
type SessionService struct {
	Validator *ingestion.Validator
	Analyzer  Analyzer

	mu            sync.Mutex
	status        model.SessionStatus
	analysisID    string
	currentFile   *model.MediaPayload
	currentResult *model.VeoPrompt
}

// NewSessionService constructs a session in its initial IDLE state.
func NewSessionService(validator *ingestion.Validator, analyzer Analyzer) *SessionService {
	return &SessionService{
		Validator: validator,
		Analyzer:  analyzer,
		status:    model.StatusIdle,
	}
}

// Submit runs one full analysis cycle: validate, transition to ANALYZING,
// invoke the analyzer, transition to the terminal state.
//
// Validation failures are returned as *model.ValidationError with the session
// left exactly as it was. Analysis failures are returned as
// *model.AnalysisError after the session has moved to ERROR. The analyzer is
// invoked in the calling goroutine; Submit returns when the cycle has reached
// a terminal state.
//
// Inputs:
//   - ctx: The request context. Cancellation aborts the in-flight inference call.
//   - fileName: The declared name of the uploaded file.
//   - contentType: The declared MIME type of the upload.
//   - data: The full file content.
//
// Outputs:
//   - *model.VeoPrompt: The structured prompt when the cycle completed.
//   - error: ErrAnalysisInFlight, a *model.ValidationError, or a *model.AnalysisError.
func (s *SessionService) Submit(ctx context.Context, fileName string, contentType string, data []byte) (*model.VeoPrompt, error) {
	s.mu.Lock()
	if s.status == model.StatusAnalyzing {
		s.mu.Unlock()
		return nil, ErrAnalysisInFlight
	}

	// Validation happens before any transition: a rejected file must leave
	// the session untouched, whatever state it was in.
	payload, err := s.Validator.Validate(fileName, contentType, data)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	// Accepting a new file implicitly resets a terminal state. The previous
	// payload and result are dropped here; nothing else references them.
	analysisID := uuid.NewString()
	s.analysisID = analysisID
	s.currentFile = payload
	s.currentResult = nil
	s.status = model.StatusAnalyzing
	s.mu.Unlock()

	slog.Info("analysis started",
		"analysis_id", analysisID,
		"file_name", payload.FileName,
		"mime_type", payload.MimeType,
		"kind", payload.Kind,
		"size_bytes", len(payload.Bytes))

	prompt, analyzeErr := s.Analyzer.Analyze(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Only apply the outcome if this cycle is still the current one. A Reset
	// issued while the request was in flight supersedes it.
	if s.analysisID != analysisID {
		slog.Info("analysis superseded; discarding outcome", "analysis_id", analysisID)
		if analyzeErr != nil {
			return nil, analyzeErr
		}
		return prompt, nil
	}

	if analyzeErr != nil {
		s.status = model.StatusError
		s.currentResult = nil
		// The cause stays in the logs; callers render a generic notice.
		slog.Error("analysis failed", "analysis_id", analysisID, "error", analyzeErr)
		return nil, analyzeErr
	}

	s.status = model.StatusComplete
	s.currentResult = prompt
	slog.Info("analysis complete", "analysis_id", analysisID)
	return prompt, nil
}

// Reset returns the session to IDLE from any state, dropping the current file
// and result. It always succeeds, is synchronous, and is idempotent under
// repeated calls.
func (s *SessionService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = model.StatusIdle
	s.analysisID = ""
	s.currentFile = nil
	s.currentResult = nil
}

// Snapshot returns a read-only copy of the current session state.
func (s *SessionService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Status:     s.status,
		AnalysisID: s.analysisID,
		File:       s.currentFile,
		Prompt:     s.currentResult,
	}
}

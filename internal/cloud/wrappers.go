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

// Package cloud provides components for interacting with the Gemini API.
// This file implements a decorator around the Generative AI model handle that
// adds rate limiting. The Gemini API enforces per-minute request quotas;
// waiting for a limiter token before each call keeps the application inside
// its quota instead of burning requests on quota rejections.
//
// The wrapper deliberately does NOT retry. Each analysis issues exactly one
// request, and a failure is surfaced to the session as-is.
//
// Structs:
//   - QuotaAwareGenerativeAIModel: Wraps a model name, its generation config,
//     and the shared model handle together with a rate limiter.
//
// Functions:
//   - NewQuotaAwareModel: Constructor for the wrapped model.
//   - GenerateContent: Issues one rate-limited generation request.
package cloud

import (
	"context"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// QuotaAwareGenerativeAIModel is a decorator that binds a generation config
// and model name to the client's model handle and gates every request behind
// a token-bucket rate limiter.
type QuotaAwareGenerativeAIModel struct {
	GenerativeContentConfig *genai.GenerateContentConfig // The generation parameters applied to every request.
	ModelName               string                       // The model identifier, e.g. "gemini-2.5-flash".
	ModelHandle             *genai.Models                // The underlying API surface for content generation.
	RateLimit               *rate.Limiter                // Token bucket controlling request frequency.
}

// NewQuotaAwareModel creates a new QuotaAwareGenerativeAIModel.
//
// Inputs:
//   - wrapped: The generation config to apply to every request through this wrapper.
//   - name: The model identifier.
//   - modelHandle: The genai client's Models surface.
//   - requestsPerSecond: The maximum number of API calls allowed per second.
//
// Outputs:
//   - *QuotaAwareGenerativeAIModel: A pointer to the newly created wrapper.
func NewQuotaAwareModel(wrapped *genai.GenerateContentConfig, name string, modelHandle *genai.Models, requestsPerSecond int) *QuotaAwareGenerativeAIModel {
	return &QuotaAwareGenerativeAIModel{
		GenerativeContentConfig: wrapped,
		ModelName:               name,
		ModelHandle:             modelHandle,
		RateLimit:               rate.NewLimiter(rate.Every(time.Second), requestsPerSecond),
	}
}

// GenerateContent blocks until the rate limiter grants a token, then issues a
// single generation request with the wrapper's config. Cancellation of the
// supplied context aborts the wait as well as the request itself.
//
// Inputs:
//   - ctx: The context for the request.
//   - content: The multimodal content of the request.
//
// Outputs:
//   - *genai.GenerateContentResponse: The model's response on success.
//   - error: Any limiter or transport error, returned without retrying.
func (q *QuotaAwareGenerativeAIModel) GenerateContent(ctx context.Context, content []*genai.Content) (*genai.GenerateContentResponse, error) {
	if err := q.RateLimit.Wait(ctx); err != nil {
		return nil, err
	}
	return q.ModelHandle.GenerateContent(ctx, q.ModelName, content, q.GenerativeContentConfig)
}

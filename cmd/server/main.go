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

// Package main is the entry point for the reverse prompt engineering server.
//
// The application runs a Gin web server exposing the single-session analysis
// API: submit one image or video, receive a structured cinematic prompt
// suitable for a text-to-video generation model. The server is instrumented
// with OpenTelemetry for logging, tracing, and metrics.
//
// The main function initializes configuration, logging, and telemetry, builds
// the application state (Gemini client, analysis workflow, session service),
// registers the API routes, and handles graceful shutdown.
//
// Functions:
//   - main: Sets up the server, configures routes, and handles shutdown.
//   - SessionRouter: Registers the session state and reset endpoints.
//   - AnalysisRouter: Registers the file submission endpoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/model"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/core/services"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/telemetry"
)

// genericAnalysisFailure is the only wording an end user ever sees for a
// failed analysis. The underlying cause goes to the logs and nowhere else.
const genericAnalysisFailure = "We couldn't process this file. It might be too large or the format is unsupported."

// main orchestrates setup of logging, telemetry, configuration, the Gemini
// client, the web server, and graceful shutdown on interrupt.
func main() {
	telemetry.SetupLogging()
	slog.Info("Logging initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := GetConfig()

	shutdownTelemetry, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	InitState(ctx)
	slog.Info("Initialized State")

	r := gin.Default()

	// Trace every incoming request.
	r.Use(otelgin.Middleware(config.Application.Name))

	// Permissive CORS: the browser frontend is served from a different origin
	// during development.
	r.Use(cors.Default())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	apiV1 := r.Group("/api/v1")
	{
		AnalysisRouter(apiV1)
		SessionRouter(apiV1)
	}

	port := config.Application.Port
	if port == 0 {
		port = 8080
	}
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      r,
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to listen", "error", err)
		}
	}()
	slog.Info("Server Ready", "port", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown Server ...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Telemetry Shutdown Failed", "error", err)
	}

	log.Println("Server exiting")
}

// AnalysisRouter registers the file submission endpoint.
//
// POST /analyses accepts multipart/form-data with a single "file" field and
// runs one full analysis cycle. Responses:
//   - 200 with the analysis ID and structured prompt on success.
//   - 400 with a typed code when validation rejects the file. Session state
//     is untouched in this case.
//   - 409 when an analysis is already in flight.
//   - 502 with a generic notice when the analysis itself fails; the session
//     is left in its ERROR state awaiting a reset or a new submission.
func AnalysisRouter(r *gin.RouterGroup) {
	analyses := r.Group("/analyses")
	{
		analyses.POST("", func(c *gin.Context) {
			fileHeader, err := c.FormFile("file")
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "expected a multipart form with a single 'file' field"})
				return
			}

			src, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unable to open uploaded file"})
				return
			}
			defer func() {
				if err := src.Close(); err != nil {
					slog.Warn("failed to close uploaded file", "error", err)
				}
			}()

			data, err := io.ReadAll(src)
			if err != nil {
				slog.Error("failed to read uploaded file", "error", err)
				c.Status(http.StatusInternalServerError)
				return
			}

			contentType := fileHeader.Header.Get("Content-Type")
			prompt, err := state.session.Submit(c.Request.Context(), fileHeader.Filename, contentType, data)
			if err != nil {
				var validationErr *model.ValidationError
				switch {
				case errors.Is(err, services.ErrAnalysisInFlight):
					c.JSON(http.StatusConflict, gin.H{"error": "an analysis is already in progress"})
				case errors.As(err, &validationErr):
					c.JSON(http.StatusBadRequest, validationErr)
				default:
					c.JSON(http.StatusBadGateway, gin.H{"error": genericAnalysisFailure})
				}
				return
			}

			snapshot := state.session.Snapshot()
			c.JSON(http.StatusOK, gin.H{
				"analysis_id": snapshot.AnalysisID,
				"prompt":      prompt,
			})
		})
	}
}

// SessionRouter registers the session state endpoints.
//
// GET /session returns the lifecycle snapshot a presentation layer renders
// against: the status plus the file preview and prompt in the states where
// they exist. POST /session/reset returns the session to IDLE from any state.
func SessionRouter(r *gin.RouterGroup) {
	session := r.Group("/session")
	{
		session.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, state.session.Snapshot())
		})

		session.POST("/reset", func(c *gin.Context) {
			state.session.Reset()
			c.Status(http.StatusNoContent)
		})
	}
}

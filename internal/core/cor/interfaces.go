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

// Package cor (Chain of Responsibility) provides the building blocks for the
// analysis pipeline. A workflow is a Chain of small, individually testable
// Commands that communicate through a shared Context. This file defines the
// interfaces the rest of the package implements; keeping them as interfaces
// lets tests substitute commands and contexts freely.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are the reserved keys used to pipe data between commands.
const (
	// CtxIn is the default key for a command's primary input. A BaseChain
	// populates it with the previous command's output.
	CtxIn = "__IN__"
	// CtxOut is the default key where a command places its primary output for
	// the chain to hand to the next command.
	CtxOut = "__OUT__"
)

// Context is the shared state object passed through a chain of commands. It
// carries data, errors, and the standard Go context for one workflow
// execution.
type Context interface {
	// SetContext sets the standard Go context, used for cancellation and
	// OpenTelemetry span propagation.
	SetContext(context context.Context)

	// GetContext retrieves the standard Go context.
	GetContext() context.Context

	// Add stores a key-value pair. Returns the Context for fluent chaining.
	Add(key string, value interface{}) Context

	// AddError records an error produced by a command, keyed by command name.
	AddError(key string, err error)

	// GetErrors returns every error collected during the workflow.
	GetErrors() map[string]error

	// Get retrieves a value by key, or nil.
	Get(key string) interface{}

	// Remove deletes a key-value pair.
	Remove(key string)

	// HasErrors reports whether any command has failed so far.
	HasErrors() bool
}

// Executable is implemented by anything with core execution logic.
type Executable interface {
	// Execute runs the business logic, reading inputs from and writing
	// outputs to the supplied Context.
	Execute(context Context)
}

// Command is an atomic unit of work within a chain.
type Command interface {
	Executable

	// GetName returns the command's unique name, used for logging, spans,
	// and metric names.
	GetName() string

	// GetInputParam returns the context key this command reads its primary
	// input from.
	GetInputParam() string

	// GetOutputParam returns the context key this command writes its primary
	// output to.
	GetOutputParam() string

	// IsExecutable is the precondition check run before Execute.
	IsExecutable(context Context) bool

	// GetTracer returns the OpenTelemetry tracer for this command.
	GetTracer() trace.Tracer

	// GetMeter returns the OpenTelemetry meter for this command.
	GetMeter() metric.Meter

	// GetSuccessCounter returns the counter incremented on success.
	GetSuccessCounter() metric.Int64Counter

	// GetErrorCounter returns the counter incremented on failure.
	GetErrorCounter() metric.Int64Counter
}

// Chain is a sequence of commands. A Chain is itself a Command, so chains can
// nest.
type Chain interface {
	Command

	// ContinueOnFailure configures whether the chain keeps executing after a
	// command records an error. The default is to stop.
	ContinueOnFailure(bool) Chain

	// AddCommand appends a command to the execution sequence.
	AddCommand(command Command) Chain
}

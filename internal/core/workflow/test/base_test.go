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

// Package workflow_test contains tests for the media analysis workflow. This
// file, `base_test.go`, provides the setup logic shared by all tests in the
// package through the special `TestMain` function: it initializes structured
// logging and loads the test configuration once for the whole suite.
//
// The suite deliberately does not construct real cloud clients: the workflow
// tests drive the chain up to, but never across, the network boundary, so
// they run without credentials.
package workflow_test

import (
	"context"
	"os"
	"testing"

	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/cloud"
	"github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/telemetry"
	test "github.com/Jorden-Coutinho/Reverse-Img-Prompt-Engineer-RIPE/internal/testutil"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// Shared resources, initialized once in TestMain and available to every test
// in the package.
var (
	ctx    context.Context
	config *cloud.Config
)

// tName scopes the suite's telemetry to a test-specific instrumentation name.
const tName = "ripe/tests/workflow"

var logger = otelslog.NewLogger(tName)

// TestMain runs before any test in this package. It sets up logging, loads
// the test configuration from `configs/.env.test.toml`, runs the suite, and
// exits with the suite's result code.
//
// Inputs:
//   - m: The test suite handle; m.Run() executes every TestXxx in the package.
func TestMain(m *testing.M) {
	var cancel context.CancelFunc
	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()

	telemetry.SetupLogging()
	config = test.GetConfig()

	logger.Info("completed test setup")

	os.Exit(m.Run())
}

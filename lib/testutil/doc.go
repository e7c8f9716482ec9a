// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for bootspec packages.
//
// [WriteFile] places a fixture in a per-test temporary directory that
// is removed when the test completes. [RequireError] and
// [RequireErrorContains] fail the test when an error is missing or
// does not mention the expected context.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no internal dependencies.
package testutil

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"strings"
	"testing"
)

// RequireError fails the test if err is nil.
//
//	testutil.RequireError(t, err, "decoding %s", path)
func RequireError(t testing.TB, err error, format string, args ...any) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error: "+format, args...)
	}
}

// RequireErrorContains fails the test unless err is non-nil and its
// message contains every one of substrings.
//
//	testutil.RequireErrorContains(t, err, "Bootspec", "v2")
func RequireErrorContains(t testing.TB, err error, substrings ...string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", substrings)
	}
	message := err.Error()
	for _, substring := range substrings {
		if !strings.Contains(message, substring) {
			t.Fatalf("error %q does not contain %q", message, substring)
		}
	}
}

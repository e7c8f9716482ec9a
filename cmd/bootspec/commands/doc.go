// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the bootspec command tree.
//
// Every document-reading command takes its input from an optional
// trailing file argument, or stdin when the argument is absent or "-".
// Documents are decoded into the generation envelope and resolved to
// the current schema before any command looks at them, so a document
// from a newer schema fails with an "unsupported Bootspec generation"
// error instead of being misread.
package commands

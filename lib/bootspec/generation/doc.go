// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package generation defines the version-erased bootspec envelope.
//
// [Generation] is a closed sum type with one variant per schema
// version this build knows ([V1]) plus [Unknown], which carries a
// document whose bootspec key names a version this build does not
// understand. Code that stores or passes bootspec documents around
// without committing to a schema version holds a Generation; code that
// needs concrete fields narrows it with bootspec.Resolve.
//
// The variant set is sealed by an unexported marker method. The
// interface is annotated for go-check-sumtype, which go.mod pins as a
// tool, so a type switch over a Generation that misses a variant fails
// the lint step:
//
//	go tool go-check-sumtype ./...
//
// Adding schema version N means adding a VN variant here, a vN
// package, and a Resolve arm.
//
// [Decode] and [DecodeCBOR] detect the version from the document's
// org.nixos.bootspec.v<N> key. JSON input may contain comments and
// trailing commas (JSONC), as hand-maintained fixtures often do.
package generation

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bootspec is the entry point for reading NixOS bootspec
// documents: the versioned, machine-readable description of how a
// system generation is presented to a bootloader.
//
// The package names the current schema for the rest of the codebase:
//
//   - [BootJSON] -- the current record type (a generic alias for
//     v1.GenerationV1)
//   - [SchemaVersion] -- the current schema version tag
//   - [JSONFilename] -- the canonical file name of a current document
//
// All three derive from the lib/bootspec/v1 package, so they cannot
// drift apart. Moving to a new schema version means repointing all
// three at the new version package in one edit.
//
// Consumers decode a document into a [generation.Generation] (so that
// documents from newer producers still decode) and narrow it with
// [Resolve]:
//
//	envelope, err := generation.ReadFile[v1.EmptyExtension](path)
//	...
//	record, err := bootspec.Resolve[v1.EmptyExtension](envelope)
//	if errors.Is(err, bootspec.ErrUnsupportedGeneration) {
//	    // written by a newer bootspec producer
//	}
//
// [Policy] and [CheckPolicy] apply deployment rules (store paths,
// allowed systems) on top of schema validation. [Digest] identifies a
// record by content, independent of JSON formatting.
package bootspec

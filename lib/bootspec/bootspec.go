// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bootspec

import (
	"errors"
	"fmt"

	"github.com/nikstur/bootspec-1/lib/bootspec/generation"
	v1 "github.com/nikstur/bootspec-1/lib/bootspec/v1"
)

// Keep BootJSON, SchemaVersion, JSONFilename, and the success arm of
// Resolve pointing at the same version package.

// BootJSON is the current bootspec schema.
type BootJSON[E any] = v1.GenerationV1[E]

const (
	// SchemaVersion is the current bootspec schema version.
	SchemaVersion = v1.SchemaVersion

	// JSONFilename is the current bootspec schema filename.
	JSONFilename = v1.JSONFilename

	// DocumentKey is the top-level key that marks a current document.
	DocumentKey = v1.BootspecKey
)

// The current envelope variant must wrap exactly BootJSON.
var _ generation.Generation[v1.EmptyExtension] = generation.V1[v1.EmptyExtension]{
	Generation: BootJSON[v1.EmptyExtension]{},
}

// ErrUnsupportedGeneration matches every error returned by Resolve.
var ErrUnsupportedGeneration = errors.New("unsupported Bootspec generation")

// UnsupportedGenerationError reports a generation whose schema version
// this build cannot treat as current.
type UnsupportedGenerationError struct {
	// Version is the schema version of the rejected generation, or 0
	// for a nil envelope.
	Version uint64

	// Generation is the debug representation of the rejected
	// envelope.
	Generation string
}

func (e *UnsupportedGenerationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsupportedGeneration, e.Generation)
}

// Is reports whether target is ErrUnsupportedGeneration.
func (e *UnsupportedGenerationError) Is(target error) bool {
	return target == ErrUnsupportedGeneration
}

// Resolve narrows a generation of any schema version to the current
// schema. A generation of the current version is returned unchanged;
// every other variant yields an *UnsupportedGenerationError. Resolve
// never converts between versions.
func Resolve[E any](g generation.Generation[E]) (BootJSON[E], error) {
	switch g := g.(type) {
	case generation.V1[E]:
		return g.Generation, nil
	case generation.Unknown[E]:
		return BootJSON[E]{}, unsupported(g.Version, g)
	case nil:
		return BootJSON[E]{}, unsupported(0, "<nil>")
	}
	return BootJSON[E]{}, unsupported(g.SchemaVersion(), g)
}

func unsupported(version uint64, envelope any) error {
	return &UnsupportedGenerationError{
		Version:    version,
		Generation: fmt.Sprintf("%v", envelope),
	}
}

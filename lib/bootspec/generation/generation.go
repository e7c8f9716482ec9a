// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package generation

import (
	"encoding/json"
	"fmt"

	v1 "github.com/nikstur/bootspec-1/lib/bootspec/v1"
	"github.com/nikstur/bootspec-1/lib/codec"
)

// Generation is a bootspec document of some schema version.
//
//sumtype:decl
type Generation[E any] interface {
	// SchemaVersion returns the schema version tag of the document.
	SchemaVersion() uint64

	isGeneration()
}

// V1 is a schema version 1 document.
type V1[E any] struct {
	Generation v1.GenerationV1[E]
}

// Unknown is a document declaring a schema version this build does not
// know. The document is kept in generic form so it can be re-encoded
// without loss of its keys.
type Unknown[E any] struct {
	// Version is the version number parsed from the document's
	// org.nixos.bootspec.v<N> key.
	Version uint64

	// Document is the whole decoded document.
	Document map[string]any
}

var (
	_ Generation[v1.EmptyExtension] = V1[v1.EmptyExtension]{}
	_ Generation[v1.EmptyExtension] = Unknown[v1.EmptyExtension]{}
)

func (V1[E]) isGeneration()      {}
func (Unknown[E]) isGeneration() {}

// SchemaVersion returns [v1.SchemaVersion].
func (V1[E]) SchemaVersion() uint64 { return v1.SchemaVersion }

// SchemaVersion returns the version declared by the document.
func (g Unknown[E]) SchemaVersion() uint64 { return g.Version }

// String returns a debug representation naming the variant.
func (g V1[E]) String() string {
	return fmt.Sprintf("V1(%+v)", g.Generation)
}

// String returns a debug representation including the raw document.
func (g Unknown[E]) String() string {
	data, err := json.Marshal(g.Document)
	if err != nil {
		return fmt.Sprintf("Unknown(v%d %v)", g.Version, g.Document)
	}
	return fmt.Sprintf("Unknown(v%d %s)", g.Version, data)
}

// MarshalJSON encodes the wrapped document. The envelope itself adds
// nothing to the wire form: the version is implied by the document's
// keys.
func (g V1[E]) MarshalJSON() ([]byte, error) {
	return g.Generation.MarshalJSON()
}

// MarshalCBOR encodes the wrapped document.
func (g V1[E]) MarshalCBOR() ([]byte, error) {
	return g.Generation.MarshalCBOR()
}

// MarshalJSON re-encodes the preserved document.
func (g Unknown[E]) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Document)
}

// MarshalCBOR re-encodes the preserved document.
func (g Unknown[E]) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(g.Document)
}

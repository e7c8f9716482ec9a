// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package v1

import (
	"encoding/json"
	"fmt"

	"github.com/nikstur/bootspec-1/lib/codec"
	"github.com/nikstur/bootspec-1/lib/ref"
)

// format is one of the two object encodings a generation document can
// take. R is the format's raw-message type, used to split a document
// into its top-level fields without decoding the values.
type format[R ~[]byte] struct {
	name      string
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

var (
	jsonFormat = format[json.RawMessage]{name: "JSON", marshal: json.Marshal, unmarshal: json.Unmarshal}
	cborFormat = format[codec.RawMessage]{name: "CBOR", marshal: codec.Marshal, unmarshal: codec.Unmarshal}
)

// MarshalJSON encodes the generation as a bootspec JSON document.
func (g GenerationV1[E]) MarshalJSON() ([]byte, error) {
	return encodeGeneration(g, jsonFormat)
}

// UnmarshalJSON decodes a bootspec JSON document.
func (g *GenerationV1[E]) UnmarshalJSON(data []byte) error {
	return decodeGeneration(g, data, jsonFormat)
}

// MarshalCBOR encodes the generation as a CBOR map with the same keys
// as the JSON document.
func (g GenerationV1[E]) MarshalCBOR() ([]byte, error) {
	return encodeGeneration(g, cborFormat)
}

// UnmarshalCBOR decodes a CBOR-encoded bootspec document.
func (g *GenerationV1[E]) UnmarshalCBOR(data []byte) error {
	return decodeGeneration(g, data, cborFormat)
}

// reserved reports whether key belongs to the schema rather than to an
// extension.
func reserved(key string) bool {
	return key == BootspecKey || key == SpecialisationKey
}

func encodeGeneration[E any, R ~[]byte](g GenerationV1[E], f format[R]) ([]byte, error) {
	extension, err := f.marshal(g.Extensions)
	if err != nil {
		return nil, fmt.Errorf("encoding extension: %w", err)
	}
	var fields map[string]R
	if err := f.unmarshal(extension, &fields); err != nil {
		return nil, fmt.Errorf("extension %T must encode as a %s object: %w", g.Extensions, f.name, err)
	}
	if fields == nil {
		fields = make(map[string]R, 2)
	}
	for key := range fields {
		if reserved(key) {
			return nil, fmt.Errorf("extension field %q collides with a reserved bootspec key", key)
		}
	}

	// kernelParams is a required array; consumers reject null.
	boot := g.Bootspec
	if boot.KernelParams == nil {
		boot.KernelParams = []string{}
	}
	bootspec, err := f.marshal(boot)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", BootspecKey, err)
	}
	fields[BootspecKey] = R(bootspec)

	specialisations := g.Specialisations
	if specialisations == nil {
		specialisations = map[ref.SpecialisationName]GenerationV1[E]{}
	}
	encoded, err := f.marshal(specialisations)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", SpecialisationKey, err)
	}
	fields[SpecialisationKey] = R(encoded)

	return f.marshal(fields)
}

func decodeGeneration[E any, R ~[]byte](g *GenerationV1[E], data []byte, f format[R]) error {
	var fields map[string]R
	if err := f.unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decoding bootspec document: %w", err)
	}
	if fields == nil {
		return fmt.Errorf("decoding bootspec document: expected an object")
	}

	raw, ok := fields[BootspecKey]
	if !ok {
		return fmt.Errorf("decoding bootspec document: missing %q", BootspecKey)
	}

	var decoded GenerationV1[E]
	if err := f.unmarshal(raw, &decoded.Bootspec); err != nil {
		return fmt.Errorf("decoding %s: %w", BootspecKey, err)
	}
	if len(decoded.Bootspec.KernelParams) == 0 {
		decoded.Bootspec.KernelParams = nil
	}

	if raw, ok := fields[SpecialisationKey]; ok {
		var specialisations map[ref.SpecialisationName]GenerationV1[E]
		if err := f.unmarshal(raw, &specialisations); err != nil {
			return fmt.Errorf("decoding %s: %w", SpecialisationKey, err)
		}
		if len(specialisations) > 0 {
			decoded.Specialisations = specialisations
		}
	}

	delete(fields, BootspecKey)
	delete(fields, SpecialisationKey)
	if len(fields) > 0 {
		remaining, err := f.marshal(fields)
		if err != nil {
			return fmt.Errorf("decoding extensions: %w", err)
		}
		if err := f.unmarshal(remaining, &decoded.Extensions); err != nil {
			return fmt.Errorf("decoding extensions into %T: %w", decoded.Extensions, err)
		}
	}

	*g = decoded
	return nil
}

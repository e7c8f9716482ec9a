// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package generation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"

	v1 "github.com/nikstur/bootspec-1/lib/bootspec/v1"
	"github.com/nikstur/bootspec-1/lib/codec"
)

// bootspecKeyPrefix precedes the version number in a document's
// bootspec key ("org.nixos.bootspec.v1").
const bootspecKeyPrefix = "org.nixos.bootspec.v"

// ErrNoBootspec is returned when a document has no
// org.nixos.bootspec.v<N> key at all.
var ErrNoBootspec = errors.New(`no "` + bootspecKeyPrefix + `<N>" key`)

// Known reports whether this build has a variant for the given schema
// version.
func Known(version uint64) bool {
	switch version {
	case v1.SchemaVersion:
		return true
	}
	return false
}

// Decode parses a JSON or JSONC bootspec document. A document whose
// highest known version key is v1 decodes as [V1]; a document with
// only unknown version keys decodes as [Unknown] carrying the highest
// version found.
func Decode[E any](data []byte) (Generation[E], error) {
	document := jsonc.ToJSON(data)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(document, &fields); err != nil {
		return nil, fmt.Errorf("parsing bootspec: %w", err)
	}
	version, err := detectVersion(fields)
	if err != nil {
		return nil, fmt.Errorf("parsing bootspec: %w", err)
	}

	switch version {
	case v1.SchemaVersion:
		var generation v1.GenerationV1[E]
		if err := json.Unmarshal(document, &generation); err != nil {
			return nil, fmt.Errorf("parsing bootspec: %w", err)
		}
		return V1[E]{Generation: generation}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(document))
	decoder.UseNumber()
	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing bootspec: %w", err)
	}
	return Unknown[E]{Version: version, Document: raw}, nil
}

// DecodeCBOR parses a CBOR-encoded bootspec document, with the same
// version detection as [Decode].
func DecodeCBOR[E any](data []byte) (Generation[E], error) {
	var fields map[string]codec.RawMessage
	if err := codec.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parsing CBOR bootspec: %w", err)
	}
	version, err := detectVersion(fields)
	if err != nil {
		return nil, fmt.Errorf("parsing CBOR bootspec: %w", err)
	}

	switch version {
	case v1.SchemaVersion:
		var generation v1.GenerationV1[E]
		if err := codec.Unmarshal(data, &generation); err != nil {
			return nil, fmt.Errorf("parsing CBOR bootspec: %w", err)
		}
		return V1[E]{Generation: generation}, nil
	}

	var raw map[string]any
	if err := codec.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing CBOR bootspec: %w", err)
	}
	return Unknown[E]{Version: version, Document: raw}, nil
}

// ReadFile reads and decodes a JSON or JSONC bootspec document from
// path.
func ReadFile[E any](path string) (Generation[E], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	generation, err := Decode[E](data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return generation, nil
}

// Encode serializes any variant as JSON.
func Encode[E any](generation Generation[E]) ([]byte, error) {
	if generation == nil {
		return nil, errors.New("encoding bootspec: nil generation")
	}
	return json.Marshal(generation)
}

// EncodeCBOR serializes any variant as Core Deterministic CBOR.
func EncodeCBOR[E any](generation Generation[E]) ([]byte, error) {
	if generation == nil {
		return nil, errors.New("encoding bootspec: nil generation")
	}
	return codec.Marshal(generation)
}

// detectVersion picks the schema version a document should decode as:
// the highest version this build knows if any, otherwise the highest
// version declared.
func detectVersion[R any](fields map[string]R) (uint64, error) {
	var highestKnown, highest uint64
	for key := range fields {
		version, ok := parseBootspecKey(key)
		if !ok {
			continue
		}
		if Known(version) && version > highestKnown {
			highestKnown = version
		}
		if version > highest {
			highest = version
		}
	}
	if highestKnown != 0 {
		return highestKnown, nil
	}
	if highest != 0 {
		return highest, nil
	}
	return 0, ErrNoBootspec
}

// parseBootspecKey extracts N from "org.nixos.bootspec.v<N>". Zero and
// non-canonical numbers ("v01") are rejected.
func parseBootspecKey(key string) (uint64, bool) {
	digits, ok := strings.CutPrefix(key, bootspecKeyPrefix)
	if !ok || digits == "" || digits[0] == '0' {
		return 0, false
	}
	version, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return version, true
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the standard CBOR encoding configuration for
// bootspec documents.
//
// Bootspec uses two serialization formats with a clear boundary:
//
//   - JSON for the external contract: the boot.json file that
//     bootloader tooling reads, and CLI output.
//   - CBOR for the compact internal form: cached generation records
//     and the canonical bytes that content digests are computed over.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same logical document always produces identical bytes, which is what
// makes digests independent of JSON key order and whitespace.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// [Compress] wraps encoded documents in a zstd or LZ4 frame for storage;
// [Decompress] accepts both compressed and plain input.
//
// # Struct Tag Rules
//
// Bootspec record types carry only `json` tags. fxamacker/cbor v2 reads
// `json` tags as a fallback when `cbor` tags are absent, so a single
// tag controls field naming and omitempty for both formats. Never add
// `cbor` tags alongside them.
package codec

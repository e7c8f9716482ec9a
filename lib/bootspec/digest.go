// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bootspec

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/nikstur/bootspec-1/lib/codec"
)

// Hash is a 32-byte BLAKE3 digest of a bootspec record.
type Hash [32]byte

// digestDomainKey separates generation digests from any other BLAKE3
// use of the same bytes. Changing it invalidates every stored digest.
// The value is the ASCII domain name, zero-padded to 32 bytes.
var digestDomainKey = [32]byte{
	'b', 'o', 'o', 't', 's', 'p', 'e', 'c', '.', 'g', 'e', 'n', 'e', 'r', 'a', 't',
	'i', 'o', 'n', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Digest computes the BLAKE3 keyed hash of the record's Core
// Deterministic CBOR encoding. Two records with equal content,
// including extensions and specialisations, have equal digests however
// their JSON was formatted.
func Digest[E any](record BootJSON[E]) (Hash, error) {
	data, err := codec.Marshal(record)
	if err != nil {
		return Hash{}, fmt.Errorf("encoding bootspec for digest: %w", err)
	}

	// NewKeyed only fails for a key that is not 32 bytes.
	hasher, err := blake3.NewKeyed(digestDomainKey[:])
	if err != nil {
		panic("bootspec: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)

	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash, nil
}

// String returns the lowercase hex encoding of the digest.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// ParseHash parses a 64-character hex digest.
func ParseHash(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing bootspec digest: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("bootspec digest is %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package nix provides lexical helpers for Nix store paths. Bootspec
// documents point at kernels, initrds, and system closures inside the
// store; these helpers decide which store entry a path belongs to
// without touching the filesystem.
//
// A store entry is the first path component after the store directory,
// named "<hash>-<name>" where hash is 32 characters of Nix's base-32
// alphabet:
//
//	/nix/store/0c3x...-linux-6.6.30/bzImage
//	           └── entry ─────────┘
package nix

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultStoreDir is the standard Nix store root directory.
const DefaultStoreDir = "/nix/store"

// hashLength is the length of the base-32 hash prefix of a store entry.
const hashLength = 32

// base32Alphabet is Nix's base-32 alphabet: digits and lowercase
// letters without e, o, u, and t.
const base32Alphabet = "0123456789abcdfghijklmnpqrsvwxyz"

// StoreDirectory extracts the store entry directory from a path within
// the default store:
//
//	"/nix/store/abc-linux-6.6.30/bzImage" → "/nix/store/abc-linux-6.6.30"
//	"/nix/store/abc-linux-6.6.30"         → "/nix/store/abc-linux-6.6.30"
//
// Returns an error for paths not under /nix/store/ or paths that are
// exactly /nix/store/ with no entry name.
func StoreDirectory(path string) (string, error) {
	return StoreDirectoryIn(DefaultStoreDir, path)
}

// StoreDirectoryIn is StoreDirectory for an arbitrary store root, such
// as a chroot store used while installing onto another disk. The path
// is cleaned first, so "/nix/store/abc/../../etc" is rejected rather
// than attributed to entry "abc".
func StoreDirectoryIn(storeDir, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path is not under %s", storeDir)
	}
	prefix := filepath.Clean(storeDir) + "/"
	cleaned := filepath.Clean(path)
	if !strings.HasPrefix(cleaned, prefix) {
		return "", fmt.Errorf("path %q is not under %s", path, prefix)
	}

	// Everything after the prefix is the store entry name, potentially
	// followed by subdirectory components.
	remainder := cleaned[len(prefix):]
	if remainder == "" {
		return "", fmt.Errorf("path %q has no store entry name", path)
	}

	slashIndex := strings.IndexByte(remainder, '/')
	if slashIndex == -1 {
		return cleaned, nil
	}
	return cleaned[:len(prefix)+slashIndex], nil
}

// ParseStoreEntry splits a store entry directory (or its base name)
// into its hash and name parts.
func ParseStoreEntry(entry string) (string, string, error) {
	base := filepath.Base(entry)
	hash, name, found := strings.Cut(base, "-")
	if !found || name == "" {
		return "", "", fmt.Errorf("store entry %q is not of the form <hash>-<name>", base)
	}
	if len(hash) != hashLength {
		return "", "", fmt.Errorf("store entry %q: hash has %d characters, want %d", base, len(hash), hashLength)
	}
	for _, character := range hash {
		if !strings.ContainsRune(base32Alphabet, character) {
			return "", "", fmt.Errorf("store entry %q: hash contains %q, which is not in the Nix base-32 alphabet", base, character)
		}
	}
	return hash, name, nil
}

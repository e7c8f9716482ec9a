// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import "path/filepath"

// SystemConfigurationRoot is the root directory of a NixOS system
// configuration, usually a store path such as
// "/nix/store/<hash>-nixos-system-<host>-<version>". It is the
// "toplevel" of a bootspec document.
//
// The type carries no filesystem access: comparing, joining, and
// printing are purely lexical.
type SystemConfigurationRoot string

// String returns the root path.
func (r SystemConfigurationRoot) String() string { return string(r) }

// IsZero reports whether the root is empty.
func (r SystemConfigurationRoot) IsZero() bool { return r == "" }

// IsAbsolute reports whether the root is an absolute path.
func (r SystemConfigurationRoot) IsAbsolute() bool { return filepath.IsAbs(string(r)) }

// Join returns the lexical join of the root and the given path
// elements, for example Join("kernel") for the generation's kernel
// symlink.
func (r SystemConfigurationRoot) Join(elements ...string) string {
	return filepath.Join(append([]string{string(r)}, elements...)...)
}

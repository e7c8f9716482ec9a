// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

// SpecialisationName names a NixOS specialisation: an alternate boot
// variant derived from the same generation (for example "no-gpu" or
// "rescue"). Bootspec documents key their specialisation maps by this
// name, and boot menus display it as a sub-entry label.
//
// SpecialisationName is a named string type, not a struct wrapper.
// Names are opaque identifiers that need no parsing or validation, and
// a string kind keeps them usable as map keys in both JSON and CBOR.
type SpecialisationName string

// String returns the specialisation name.
func (n SpecialisationName) String() string { return string(n) }

// IsZero reports whether the name is empty.
func (n SpecialisationName) IsZero() bool { return n == "" }

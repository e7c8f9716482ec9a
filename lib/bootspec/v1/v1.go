// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package v1

import (
	"slices"

	"github.com/nikstur/bootspec-1/lib/ref"
)

const (
	// SchemaVersion is the bootspec schema version tag declared by
	// this package.
	SchemaVersion = 1

	// JSONFilename is the canonical name of the file holding a
	// version 1 document, relative to the generation's toplevel.
	JSONFilename = "boot.json"

	// BootspecKey is the top-level document key holding the
	// [BootSpecV1] object. The trailing "v1" is SchemaVersion.
	BootspecKey = "org.nixos.bootspec.v1"

	// SpecialisationKey is the top-level document key holding the
	// specialisation map.
	SpecialisationKey = "org.nixos.specialisation.v1"
)

// BootSpecV1 is the set of boot-relevant facts about one generation.
type BootSpecV1 struct {
	// Label is the human-readable boot menu label, conventionally
	// "NixOS <version> (Linux <kernel version>)".
	Label string `json:"label"`

	// Kernel is the path to the kernel image.
	Kernel string `json:"kernel"`

	// KernelParams are the kernel command line arguments, in order.
	// Nil and empty are equivalent: encoding always emits an array,
	// never null, and decoding yields nil for an empty array.
	KernelParams []string `json:"kernelParams"`

	// Init is the path to the stage-2 init executable.
	Init string `json:"init"`

	// Initrd is the path to the initrd. Empty for systems that boot
	// without one.
	Initrd string `json:"initrd,omitempty"`

	// InitrdSecrets is the path to an executable that appends secrets
	// to the initrd at install time. Empty when unused.
	InitrdSecrets string `json:"initrdSecrets,omitempty"`

	// System is the Nix system double (e.g., "x86_64-linux").
	System string `json:"system"`

	// Toplevel is the root of the system configuration this
	// generation boots.
	Toplevel ref.SystemConfigurationRoot `json:"toplevel"`
}

// GenerationV1 is a complete version 1 bootspec document: the
// generation's own boot facts, its specialisations, and any extension
// data carried alongside.
type GenerationV1[E any] struct {
	// Bootspec is the generation's boot facts.
	Bootspec BootSpecV1

	// Specialisations maps each specialisation name to its own
	// document. Nil and empty are equivalent: decoding yields nil for
	// an empty map and encoding always emits the key.
	Specialisations map[ref.SpecialisationName]GenerationV1[E]

	// Extensions is schema-external data, flattened into the
	// document's top level.
	Extensions E
}

// EmptyExtension is the default extension type. It encodes as an
// empty object and ignores every extension key when decoding.
type EmptyExtension struct{}

// Extensions captures every extension key of a document, decoded
// generically. JSON numbers decode as float64; CBOR integers decode as
// int64 or uint64.
type Extensions map[string]any

// SpecialisationNames returns the specialisation names in sorted
// order.
func (g GenerationV1[E]) SpecialisationNames() []ref.SpecialisationName {
	names := make([]ref.SpecialisationName, 0, len(g.Specialisations))
	for name := range g.Specialisations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package v1

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Validate checks that all required fields are present and well-formed.
// Returns an error describing the first invalid field found, or nil if
// the bootspec is valid.
func (b *BootSpecV1) Validate() error {
	if b.Label == "" {
		return errors.New("bootspec: label is required")
	}
	if b.Kernel == "" {
		return errors.New("bootspec: kernel is required")
	}
	if b.Init == "" {
		return errors.New("bootspec: init is required")
	}
	if b.System == "" {
		return errors.New("bootspec: system is required")
	}
	if b.Toplevel.IsZero() {
		return errors.New("bootspec: toplevel is required")
	}
	for _, field := range b.PathFields() {
		if field.Value != "" && !filepath.IsAbs(field.Value) {
			return fmt.Errorf("bootspec: %s must be an absolute path, got %q", field.Name, field.Value)
		}
	}
	return nil
}

// PathField is a named path-valued field of a bootspec.
type PathField struct {
	Name  string
	Value string
}

// PathFields returns the bootspec's path-valued fields in document
// order, including empty optional ones.
func (b *BootSpecV1) PathFields() []PathField {
	return []PathField{
		{Name: "kernel", Value: b.Kernel},
		{Name: "init", Value: b.Init},
		{Name: "initrd", Value: b.Initrd},
		{Name: "initrdSecrets", Value: b.InitrdSecrets},
		{Name: "toplevel", Value: string(b.Toplevel)},
	}
}

// Validate checks the generation's bootspec and then every
// specialisation, in sorted name order. Specialisation errors are
// prefixed with the specialisation name.
func (g *GenerationV1[E]) Validate() error {
	if err := g.Bootspec.Validate(); err != nil {
		return err
	}
	for _, name := range g.SpecialisationNames() {
		if name.IsZero() {
			return errors.New("bootspec: specialisation name must not be empty")
		}
		specialisation := g.Specialisations[name]
		if err := specialisation.Validate(); err != nil {
			return fmt.Errorf("specialisation %q: %w", name, err)
		}
	}
	return nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bootspec

import (
	"fmt"
	"slices"
	"strings"

	v1 "github.com/nikstur/bootspec-1/lib/bootspec/v1"
	"github.com/nikstur/bootspec-1/lib/nix"
)

// Policy is a set of deployment rules a bootspec must satisfy beyond
// schema validity. The zero Policy accepts everything.
type Policy struct {
	// StoreDir is the Nix store root that path fields must lie in
	// when RequireStorePaths is set. Empty means nix.DefaultStoreDir.
	StoreDir string

	// RequireStorePaths requires every non-empty path field (kernel,
	// init, initrd, initrdSecrets, toplevel) to lie inside a
	// well-formed store entry under StoreDir.
	RequireStorePaths bool

	// Systems, when non-empty, lists the accepted Nix system doubles.
	Systems []string
}

// CheckPolicy applies policy to the record and then to every
// specialisation in sorted name order. Returns the first violation.
func CheckPolicy[E any](record BootJSON[E], policy Policy) error {
	if err := policy.check(record.Bootspec); err != nil {
		return err
	}
	for _, name := range record.SpecialisationNames() {
		if err := CheckPolicy(record.Specialisations[name], policy); err != nil {
			return fmt.Errorf("specialisation %q: %w", name, err)
		}
	}
	return nil
}

func (p Policy) check(bootspec v1.BootSpecV1) error {
	if len(p.Systems) > 0 && !slices.Contains(p.Systems, bootspec.System) {
		return fmt.Errorf("policy: system %q is not one of %s", bootspec.System, strings.Join(p.Systems, ", "))
	}
	if !p.RequireStorePaths {
		return nil
	}

	storeDir := p.StoreDir
	if storeDir == "" {
		storeDir = nix.DefaultStoreDir
	}
	for _, field := range bootspec.PathFields() {
		if field.Value == "" {
			continue
		}
		entry, err := nix.StoreDirectoryIn(storeDir, field.Value)
		if err != nil {
			return fmt.Errorf("policy: %s: %w", field.Name, err)
		}
		if _, _, err := nix.ParseStoreEntry(entry); err != nil {
			return fmt.Errorf("policy: %s: %w", field.Name, err)
		}
	}
	return nil
}

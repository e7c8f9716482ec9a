// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"encoding/json"
	"testing"
)

func TestSpecialisationNameMapKey(t *testing.T) {
	t.Parallel()

	names := map[SpecialisationName]int{
		"rescue": 1,
		"no-gpu": 2,
	}
	if got := names[SpecialisationName("rescue")]; got != 1 {
		t.Errorf("names[rescue] = %d, want 1", got)
	}
	if _, ok := names[SpecialisationName("Rescue")]; ok {
		t.Error("lookup is case-sensitive, but Rescue matched rescue")
	}

	data, err := json.Marshal(names)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"no-gpu":2,"rescue":1}`; string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var decoded map[SpecialisationName]int
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded) != 2 || decoded["no-gpu"] != 2 {
		t.Errorf("Unmarshal = %v, want both entries", decoded)
	}
}

func TestSpecialisationNameString(t *testing.T) {
	t.Parallel()

	name := SpecialisationName("gaming")
	if name.String() != "gaming" {
		t.Errorf("String() = %q, want %q", name.String(), "gaming")
	}
	if name.IsZero() {
		t.Error("IsZero() = true for non-empty name")
	}
	if !SpecialisationName("").IsZero() {
		t.Error("IsZero() = false for empty name")
	}
}

func TestSystemConfigurationRoot(t *testing.T) {
	t.Parallel()

	const path = "/nix/store/0c3xkmb5wvsy1cqqz9ajq6zh1ssx1s5g-nixos-system-host-24.05"
	root := SystemConfigurationRoot(path)

	if root.String() != path {
		t.Errorf("String() = %q, want %q", root.String(), path)
	}
	if root != SystemConfigurationRoot(path) {
		t.Error("equal paths compare unequal")
	}
	if !root.IsAbsolute() {
		t.Error("IsAbsolute() = false for store path")
	}
	if SystemConfigurationRoot("result").IsAbsolute() {
		t.Error("IsAbsolute() = true for relative path")
	}
	if root.IsZero() || !SystemConfigurationRoot("").IsZero() {
		t.Error("IsZero() disagrees with emptiness")
	}
}

func TestSystemConfigurationRootJoin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		root     SystemConfigurationRoot
		elements []string
		want     string
	}{
		{
			name:     "single element",
			root:     "/nix/store/abc-system",
			elements: []string{"kernel"},
			want:     "/nix/store/abc-system/kernel",
		},
		{
			name:     "nested elements",
			root:     "/nix/store/abc-system",
			elements: []string{"specialisation", "rescue", "initrd"},
			want:     "/nix/store/abc-system/specialisation/rescue/initrd",
		},
		{
			name: "no elements",
			root: "/nix/store/abc-system/",
			want: "/nix/store/abc-system",
		},
		{
			name:     "parent reference stays lexical",
			root:     "/nix/store/abc-system",
			elements: []string{"..", "other"},
			want:     "/nix/store/other",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := test.root.Join(test.elements...); got != test.want {
				t.Errorf("Join(%v) = %q, want %q", test.elements, got, test.want)
			}
		})
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package v1

import (
	"strings"
	"testing"

	"github.com/nikstur/bootspec-1/lib/ref"
)

func TestBootSpecValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*BootSpecV1)
		wantErr string
	}{
		{name: "valid", modify: func(*BootSpecV1) {}},
		{name: "no initrd", modify: func(b *BootSpecV1) { b.Initrd = "" }},
		{name: "missing label", modify: func(b *BootSpecV1) { b.Label = "" }, wantErr: "label is required"},
		{name: "missing kernel", modify: func(b *BootSpecV1) { b.Kernel = "" }, wantErr: "kernel is required"},
		{name: "missing init", modify: func(b *BootSpecV1) { b.Init = "" }, wantErr: "init is required"},
		{name: "missing system", modify: func(b *BootSpecV1) { b.System = "" }, wantErr: "system is required"},
		{name: "missing toplevel", modify: func(b *BootSpecV1) { b.Toplevel = "" }, wantErr: "toplevel is required"},
		{name: "relative kernel", modify: func(b *BootSpecV1) { b.Kernel = "bzImage" }, wantErr: "kernel must be an absolute path"},
		{name: "relative initrd secrets", modify: func(b *BootSpecV1) { b.InitrdSecrets = "bin/append" }, wantErr: "initrdSecrets must be an absolute path"},
		{name: "relative toplevel", modify: func(b *BootSpecV1) { b.Toplevel = ref.SystemConfigurationRoot("result") }, wantErr: "toplevel must be an absolute path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			bootspec := sampleBootspec("validate")
			tt.modify(&bootspec)
			err := bootspec.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGenerationValidateSpecialisations(t *testing.T) {
	t.Parallel()

	broken := sampleBootspec("broken")
	broken.Init = ""
	generation := GenerationV1[EmptyExtension]{
		Bootspec: sampleBootspec("top"),
		Specialisations: map[ref.SpecialisationName]GenerationV1[EmptyExtension]{
			"fine":   {Bootspec: sampleBootspec("fine")},
			"rescue": {Bootspec: broken},
		},
	}

	err := generation.Validate()
	if err == nil {
		t.Fatal("expected error for invalid specialisation")
	}
	if !strings.Contains(err.Error(), `specialisation "rescue"`) {
		t.Errorf("error = %v, want specialisation name prefix", err)
	}
	if !strings.Contains(err.Error(), "init is required") {
		t.Errorf("error = %v, want underlying cause", err)
	}

	delete(generation.Specialisations, "rescue")
	if err := generation.Validate(); err != nil {
		t.Errorf("Validate() after removing broken specialisation = %v", err)
	}

	generation.Specialisations[""] = GenerationV1[EmptyExtension]{Bootspec: sampleBootspec("nameless")}
	if err := generation.Validate(); err == nil || !strings.Contains(err.Error(), "name must not be empty") {
		t.Errorf("Validate() with empty name = %v, want empty-name error", err)
	}
}

func TestPathFieldsOrder(t *testing.T) {
	t.Parallel()

	bootspec := sampleBootspec("paths")
	fields := bootspec.PathFields()
	var names []string
	for _, field := range fields {
		names = append(names, field.Name)
	}
	if got := strings.Join(names, ","); got != "kernel,init,initrd,initrdSecrets,toplevel" {
		t.Errorf("PathFields names = %s", got)
	}
	if fields[4].Value != string(bootspec.Toplevel) {
		t.Errorf("toplevel value = %q, want %q", fields[4].Value, bootspec.Toplevel)
	}
}

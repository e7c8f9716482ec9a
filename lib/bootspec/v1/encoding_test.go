// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package v1

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/nikstur/bootspec-1/lib/codec"
	"github.com/nikstur/bootspec-1/lib/ref"
)

type systemdBoot struct {
	SortKey string `json:"sortKey"`
}

// systemdBootExtension is a typed extension the way a bootloader
// installer would declare the keys it understands.
type systemdBootExtension struct {
	SystemdBoot *systemdBoot `json:"org.nixos.systemd-boot,omitempty"`
}

func sampleBootspec(label string) BootSpecV1 {
	return BootSpecV1{
		Label:        label,
		Kernel:       "/nix/store/aaaa-linux-6.6.30/bzImage",
		KernelParams: []string{"init=/nix/store/bbbb-nixos-system-host/init", "loglevel=4"},
		Init:         "/nix/store/bbbb-nixos-system-host/init",
		Initrd:       "/nix/store/cccc-initrd-linux-6.6.30/initrd",
		System:       "x86_64-linux",
		Toplevel:     ref.SystemConfigurationRoot("/nix/store/bbbb-nixos-system-host"),
	}
}

func sampleGeneration() GenerationV1[systemdBootExtension] {
	return GenerationV1[systemdBootExtension]{
		Bootspec: sampleBootspec("NixOS 24.05 (Linux 6.6.30)"),
		Specialisations: map[ref.SpecialisationName]GenerationV1[systemdBootExtension]{
			"rescue": {
				Bootspec:   sampleBootspec("NixOS 24.05 rescue (Linux 6.6.30)"),
				Extensions: systemdBootExtension{SystemdBoot: &systemdBoot{SortKey: "rescue"}},
			},
		},
		Extensions: systemdBootExtension{SystemdBoot: &systemdBoot{SortKey: "nixos"}},
	}
}

func TestJSONRoundtrip(t *testing.T) {
	t.Parallel()

	original := sampleGeneration()
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded GenerationV1[systemdBootExtension]
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("roundtrip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestCBORRoundtrip(t *testing.T) {
	t.Parallel()

	original := sampleGeneration()
	data, err := codec.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded GenerationV1[systemdBootExtension]
	if err := codec.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("roundtrip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestEmptyExtensionRoundtrip(t *testing.T) {
	t.Parallel()

	original := GenerationV1[EmptyExtension]{Bootspec: sampleBootspec("plain")}
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded GenerationV1[EmptyExtension]
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("roundtrip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestMarshalJSONDocumentShape(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(GenerationV1[systemdBootExtension]{
		Bootspec:   sampleBootspec("shape"),
		Extensions: systemdBootExtension{SystemdBoot: &systemdBoot{SortKey: "nixos"}},
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		t.Fatalf("decoding top level: %v", err)
	}
	for _, key := range []string{BootspecKey, SpecialisationKey, "org.nixos.systemd-boot"} {
		if _, ok := top[key]; !ok {
			t.Errorf("document %s is missing top-level key %q", data, key)
		}
	}
	if len(top) != 3 {
		t.Errorf("document has %d top-level keys, want 3: %s", len(top), data)
	}
	if got := string(top[SpecialisationKey]); got != "{}" {
		t.Errorf("%s = %s, want {}", SpecialisationKey, got)
	}

	var bootspec map[string]any
	if err := json.Unmarshal(top[BootspecKey], &bootspec); err != nil {
		t.Fatalf("decoding bootspec: %v", err)
	}
	if _, ok := bootspec["kernelParams"]; !ok {
		t.Errorf("bootspec is missing camelCase key kernelParams: %s", top[BootspecKey])
	}
	if _, ok := bootspec["initrdSecrets"]; ok {
		t.Errorf("empty initrdSecrets should be omitted: %s", top[BootspecKey])
	}
}

func TestMarshalEmptyKernelParams(t *testing.T) {
	t.Parallel()

	boot := sampleBootspec("no params")
	boot.KernelParams = nil
	generation := GenerationV1[EmptyExtension]{Bootspec: boot}

	data, err := json.Marshal(generation)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"kernelParams":[]`) {
		t.Errorf("nil kernelParams must encode as an empty array: %s", data)
	}

	cborData, err := codec.Marshal(generation)
	if err != nil {
		t.Fatalf("codec.Marshal: %v", err)
	}
	var document map[string]any
	if err := codec.Unmarshal(cborData, &document); err != nil {
		t.Fatalf("codec.Unmarshal: %v", err)
	}
	bootspec, ok := document[BootspecKey].(map[string]any)
	if !ok {
		t.Fatalf("%s is %T, want a map", BootspecKey, document[BootspecKey])
	}
	if params, ok := bootspec["kernelParams"].([]any); !ok || len(params) != 0 {
		t.Errorf("CBOR kernelParams = %#v, want an empty array", bootspec["kernelParams"])
	}

	var decoded GenerationV1[EmptyExtension]
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, generation) {
		t.Errorf("roundtrip changed the record:\n got %+v\nwant %+v", decoded, generation)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	t.Parallel()

	generation := sampleGeneration()
	generation.Specialisations["no-gpu"] = GenerationV1[systemdBootExtension]{Bootspec: sampleBootspec("no-gpu")}

	first, err := json.Marshal(generation)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for range 10 {
		again, err := json.Marshal(generation)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("JSON encoding is not deterministic:\n%s\n%s", first, again)
		}
	}
}

func TestExtensionsCaptureUnknownKeys(t *testing.T) {
	t.Parallel()

	document := `{
		"org.nixos.bootspec.v1": {"label": "x", "kernel": "/k", "kernelParams": [], "init": "/i", "system": "x86_64-linux", "toplevel": "/t"},
		"org.nixos.specialisation.v1": {},
		"org.nixos.systemd-boot": {"sortKey": "nixos"},
		"com.example.priority": 3
	}`

	var generation GenerationV1[Extensions]
	if err := json.Unmarshal([]byte(document), &generation); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := generation.Extensions["com.example.priority"]; got != float64(3) {
		t.Errorf("com.example.priority = %#v, want 3", got)
	}
	systemd, ok := generation.Extensions["org.nixos.systemd-boot"].(map[string]any)
	if !ok || systemd["sortKey"] != "nixos" {
		t.Errorf("org.nixos.systemd-boot = %#v", generation.Extensions["org.nixos.systemd-boot"])
	}
	if _, ok := generation.Extensions[BootspecKey]; ok {
		t.Error("reserved key leaked into extensions")
	}
	if generation.Specialisations != nil {
		t.Errorf("empty specialisation map should decode as nil, got %#v", generation.Specialisations)
	}

	reencoded, err := json.Marshal(generation)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(reencoded), `"com.example.priority":3`) {
		t.Errorf("re-encoded document lost extension: %s", reencoded)
	}
}

func TestEmptyExtensionDropsUnknownKeys(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(sampleGeneration())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var generation GenerationV1[EmptyExtension]
	if err := json.Unmarshal(data, &generation); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	reencoded, err := json.Marshal(generation)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(reencoded), "systemd-boot") {
		t.Errorf("EmptyExtension should drop extension keys: %s", reencoded)
	}
	if _, ok := generation.Specialisations["rescue"]; !ok {
		t.Error("specialisation lost while decoding with EmptyExtension")
	}
}

func TestMarshalRejectsReservedExtensionKey(t *testing.T) {
	t.Parallel()

	type collidingExtension struct {
		Shadow string `json:"org.nixos.bootspec.v1"`
	}
	generation := GenerationV1[collidingExtension]{
		Bootspec:   sampleBootspec("collision"),
		Extensions: collidingExtension{Shadow: "oops"},
	}

	_, err := generation.MarshalJSON()
	if err == nil {
		t.Fatal("expected error for extension field shadowing a reserved key")
	}
	if !strings.Contains(err.Error(), "collides") {
		t.Errorf("error = %v, want mention of collision", err)
	}
}

func TestMarshalRejectsNonObjectExtension(t *testing.T) {
	t.Parallel()

	generation := GenerationV1[int]{Bootspec: sampleBootspec("scalar"), Extensions: 7}

	if _, err := generation.MarshalJSON(); err == nil {
		t.Error("MarshalJSON: expected error for scalar extension")
	}
	if _, err := generation.MarshalCBOR(); err == nil {
		t.Error("MarshalCBOR: expected error for scalar extension")
	}
}

func TestUnmarshalErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		document string
		want     string
	}{
		{name: "not an object", document: `[1, 2]`, want: "decoding bootspec document"},
		{name: "null", document: `null`, want: "expected an object"},
		{name: "missing bootspec", document: `{"org.nixos.specialisation.v1": {}}`, want: `missing "org.nixos.bootspec.v1"`},
		{name: "bootspec wrong type", document: `{"org.nixos.bootspec.v1": "nope"}`, want: "decoding org.nixos.bootspec.v1"},
		{name: "specialisation wrong type", document: `{"org.nixos.bootspec.v1": {}, "org.nixos.specialisation.v1": []}`, want: "decoding org.nixos.specialisation.v1"},
		{name: "nested specialisation missing bootspec", document: `{"org.nixos.bootspec.v1": {}, "org.nixos.specialisation.v1": {"rescue": {}}}`, want: "missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var generation GenerationV1[EmptyExtension]
			err := json.Unmarshal([]byte(tt.document), &generation)
			if err == nil {
				t.Fatalf("expected error decoding %s", tt.document)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestSpecialisationNamesSorted(t *testing.T) {
	t.Parallel()

	generation := GenerationV1[EmptyExtension]{
		Specialisations: map[ref.SpecialisationName]GenerationV1[EmptyExtension]{
			"zram":   {},
			"no-gpu": {},
			"rescue": {},
		},
	}
	got := generation.SpecialisationNames()
	want := []ref.SpecialisationName{"no-gpu", "rescue", "zram"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SpecialisationNames() = %v, want %v", got, want)
	}
}

func TestVersionConstantsAgree(t *testing.T) {
	t.Parallel()

	if !strings.HasSuffix(BootspecKey, ".v1") || SchemaVersion != 1 {
		t.Errorf("BootspecKey %q does not carry SchemaVersion %d", BootspecKey, SchemaVersion)
	}
	if !strings.HasSuffix(SpecialisationKey, ".v1") {
		t.Errorf("SpecialisationKey %q does not carry SchemaVersion %d", SpecialisationKey, SchemaVersion)
	}
	if JSONFilename != "boot.json" {
		t.Errorf("JSONFilename = %q, want boot.json", JSONFilename)
	}
}

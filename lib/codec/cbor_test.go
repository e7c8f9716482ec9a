// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

// sampleEntry mirrors the shape of a bootspec record: json tags only,
// relying on fxamacker's fallback for CBOR field names.
type sampleEntry struct {
	Label        string   `json:"label"`
	Initrd       string   `json:"initrd,omitempty"`
	KernelParams []string `json:"kernelParams"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleEntry{
		Label:        "NixOS 24.05 (Linux 6.6.30)",
		Initrd:       "/nix/store/abc-initrd-linux-6.6.30/initrd",
		KernelParams: []string{"loglevel=4", "quiet"},
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded sampleEntry
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded.Label != original.Label || decoded.Initrd != original.Initrd {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
	if strings.Join(decoded.KernelParams, " ") != strings.Join(original.KernelParams, " ") {
		t.Errorf("kernel params: got %v, want %v", decoded.KernelParams, original.KernelParams)
	}
}

func TestMarshalDeterministicMapOrder(t *testing.T) {
	// Go map iteration order is random; deterministic encoding must
	// sort keys so repeated encodes of the same map are identical.
	value := map[string]any{
		"org.nixos.bootspec.v1":       map[string]any{"label": "a"},
		"org.nixos.specialisation.v1": map[string]any{},
		"org.nixos.systemd-boot":      map[string]any{"sortKey": "nixos"},
	}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	for range 20 {
		again, err := Marshal(value)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("deterministic encoding violated: %x != %x", first, again)
		}
	}
}

func TestOmitemptyRespected(t *testing.T) {
	withInitrd := sampleEntry{Label: "a", Initrd: "/nix/store/x-initrd/initrd"}
	withoutInitrd := sampleEntry{Label: "a"}

	dataWith, err := Marshal(withInitrd)
	if err != nil {
		t.Fatal(err)
	}
	dataWithout, err := Marshal(withoutInitrd)
	if err != nil {
		t.Fatal(err)
	}

	if len(dataWithout) >= len(dataWith) {
		t.Errorf("omitempty not effective: without=%d bytes, with=%d bytes",
			len(dataWithout), len(dataWith))
	}
}

func TestUnmarshalAnyProducesStringKeyedMaps(t *testing.T) {
	data, err := Marshal(map[string]any{"outer": map[string]any{"inner": "value"}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	outer, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded type = %T, want map[string]any", decoded)
	}
	if _, ok := outer["outer"].(map[string]any); !ok {
		t.Errorf("nested type = %T, want map[string]any", outer["outer"])
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var entry sampleEntry
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &entry); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestWellformed(t *testing.T) {
	data, err := Marshal(map[string]any{"label": "x"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := Wellformed(data); err != nil {
		t.Errorf("Wellformed(valid) = %v", err)
	}
	if err := Wellformed(append(data, 0x01)); err == nil {
		t.Error("Wellformed should reject trailing bytes")
	}
	if err := Wellformed(data[:len(data)-1]); err == nil {
		t.Error("Wellformed should reject truncated input")
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]any{"system": "x86_64-linux"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"system"`) {
		t.Errorf("notation %q does not contain \"system\"", notation)
	}
	if !strings.Contains(notation, `"x86_64-linux"`) {
		t.Errorf("notation %q does not contain \"x86_64-linux\"", notation)
	}
}

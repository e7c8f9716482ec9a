// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nix

import (
	"strings"
	"testing"
)

const testHash = "0123456789abcdfghijklmnpqrsvwxyz"

func TestStoreDirectory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{
			name: "file path within store entry",
			path: "/nix/store/abc-linux-6.6.30/bzImage",
			want: "/nix/store/abc-linux-6.6.30",
		},
		{
			name: "bare store directory",
			path: "/nix/store/abc-nixos-system-host",
			want: "/nix/store/abc-nixos-system-host",
		},
		{
			name: "deeply nested file",
			path: "/nix/store/xyz-initrd/lib/modules/6.6.30/modules.dep",
			want: "/nix/store/xyz-initrd",
		},
		{
			name: "trailing slash",
			path: "/nix/store/abc-linux/",
			want: "/nix/store/abc-linux",
		},
		{
			name:    "escapes the store",
			path:    "/nix/store/abc-linux/../../etc/shadow",
			wantErr: true,
		},
		{
			name:    "not under nix store",
			path:    "/boot/EFI/nixos/kernel.efi",
			wantErr: true,
		},
		{
			name:    "bare nix store root",
			path:    "/nix/store/",
			wantErr: true,
		},
		{
			name:    "nix store without trailing slash",
			path:    "/nix/store",
			wantErr: true,
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			got, err := StoreDirectory(testCase.path)
			if testCase.wantErr {
				if err == nil {
					t.Fatalf("expected error for path %q, got %q", testCase.path, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for path %q: %v", testCase.path, err)
			}
			if got != testCase.want {
				t.Errorf("StoreDirectory(%q) = %q, want %q", testCase.path, got, testCase.want)
			}
		})
	}
}

func TestStoreDirectoryIn_CustomRoot(t *testing.T) {
	t.Parallel()

	got, err := StoreDirectoryIn("/mnt/nix/store/", "/mnt/nix/store/abc-linux/bzImage")
	if err != nil {
		t.Fatalf("StoreDirectoryIn: %v", err)
	}
	if got != "/mnt/nix/store/abc-linux" {
		t.Errorf("StoreDirectoryIn = %q, want /mnt/nix/store/abc-linux", got)
	}

	_, err = StoreDirectoryIn("/mnt/nix/store", "/nix/store/abc-linux/bzImage")
	if err == nil {
		t.Fatal("expected error for path outside the custom store")
	}
	if !strings.Contains(err.Error(), "/mnt/nix/store/") {
		t.Errorf("error = %v, want it to name the store root", err)
	}
}

func TestParseStoreEntry(t *testing.T) {
	t.Parallel()

	hash, name, err := ParseStoreEntry("/nix/store/" + testHash + "-linux-6.6.30")
	if err != nil {
		t.Fatalf("ParseStoreEntry: %v", err)
	}
	if hash != testHash {
		t.Errorf("hash = %q, want %q", hash, testHash)
	}
	if name != "linux-6.6.30" {
		t.Errorf("name = %q, want linux-6.6.30", name)
	}

	failures := []struct {
		entry string
		want  string
	}{
		{entry: "nodash", want: "<hash>-<name>"},
		{entry: testHash + "-", want: "<hash>-<name>"},
		{entry: "abc-linux", want: "hash has 3 characters"},
		{entry: strings.Replace(testHash, "0", "e", 1) + "-linux", want: "base-32 alphabet"},
	}
	for _, failure := range failures {
		_, _, err := ParseStoreEntry(failure.entry)
		if err == nil {
			t.Errorf("ParseStoreEntry(%q): expected error", failure.entry)
			continue
		}
		if !strings.Contains(err.Error(), failure.want) {
			t.Errorf("ParseStoreEntry(%q) = %v, want error containing %q", failure.entry, err, failure.want)
		}
	}
}

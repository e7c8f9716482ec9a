// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package v1 declares version 1 of the bootspec schema: the record
// shape, its schema version tag, its document keys, and its canonical
// on-disk filename.
//
// A version 1 document is a JSON object:
//
//	{
//	  "org.nixos.bootspec.v1": {
//	    "label": "NixOS 24.05.20240501.abcdef0 (Linux 6.6.30)",
//	    "kernel": "/nix/store/...-linux-6.6.30/bzImage",
//	    "kernelParams": ["loglevel=4"],
//	    "init": "/nix/store/...-nixos-system-host/init",
//	    "initrd": "/nix/store/...-initrd-linux-6.6.30/initrd",
//	    "system": "x86_64-linux",
//	    "toplevel": "/nix/store/...-nixos-system-host"
//	  },
//	  "org.nixos.specialisation.v1": {
//	    "rescue": { "org.nixos.bootspec.v1": { ... } }
//	  },
//	  "org.nixos.systemd-boot": { "sortKey": "nixos" }
//	}
//
// Top-level keys other than the two reserved org.nixos.*.v1 keys are
// extensions. [GenerationV1] is generic over the extension type E:
// extension keys are decoded into E and E's fields are flattened back
// into the top-level object on encode. [EmptyExtension] discards
// extensions; [Extensions] keeps all of them.
//
// The record shape is frozen. New fields go into a new version package
// (v2, ...) with its own SchemaVersion, JSONFilename, and keys.
package v1

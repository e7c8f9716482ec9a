// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ref provides the named reference types that bootspec
// documents use to point at things outside themselves: specialisation
// names and the system configuration root.
//
// Both are plain string kinds. They compare by value, hash as map keys,
// and encode as bare strings in JSON and CBOR without custom
// marshalers. Nothing here touches the filesystem.
package ref

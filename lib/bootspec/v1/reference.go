// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package v1

import _ "embed"

// Reference is the Markdown reference for the version 1 document
// format.
//
//go:embed reference.md
var Reference string

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bootspec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/nikstur/bootspec-1/lib/ref"
)

// ErrNoSpecialisation is returned by SelectSpecialisation when no
// specialisation name matches the query.
var ErrNoSpecialisation = errors.New("no matching specialisation")

// SelectSpecialisation picks the specialisation of record that query
// names. An exact name always wins. Otherwise every name is scored
// against query with fzf's fuzzy matcher (case-insensitive, so "gpu"
// finds "no-GPU"), and the single best-scoring name is selected. Two
// names sharing the best score are ambiguous and produce an error
// listing both; nothing matching produces ErrNoSpecialisation.
//
// Only the record's own specialisations are searched, not nested ones.
func SelectSpecialisation[E any](record BootJSON[E], query string) (ref.SpecialisationName, BootJSON[E], error) {
	if query == "" {
		return "", BootJSON[E]{}, errors.New("empty specialisation query")
	}
	if selected, ok := record.Specialisations[ref.SpecialisationName(query)]; ok {
		return ref.SpecialisationName(query), selected, nil
	}

	names := record.SpecialisationNames()
	pattern := []rune(strings.ToLower(query))
	slab := util.MakeSlab(16*1024, 2048)

	var best []ref.SpecialisationName
	bestScore := 0
	for _, name := range names {
		chars := util.ToChars([]byte(name))
		result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, slab)
		if result.Start < 0 {
			continue
		}
		switch {
		case len(best) == 0 || result.Score > bestScore:
			best = []ref.SpecialisationName{name}
			bestScore = result.Score
		case result.Score == bestScore:
			best = append(best, name)
		}
	}

	switch len(best) {
	case 0:
		return "", BootJSON[E]{}, fmt.Errorf("%w for %q (available: %s)", ErrNoSpecialisation, query, joinNames(names))
	case 1:
		return best[0], record.Specialisations[best[0]], nil
	default:
		return "", BootJSON[E]{}, fmt.Errorf("specialisation %q is ambiguous: matches %s", query, joinNames(best))
	}
}

func joinNames(names []ref.SpecialisationName) string {
	if len(names) == 0 {
		return "none"
	}
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = string(name)
	}
	return strings.Join(parts, ", ")
}

package roster

import "strings"

// minContainmentLen guards tier-two containment against trivial substrings
// like single initials: both normalized names must be longer than this.
const minContainmentLen = 3

// minWordOverlap is the number of shared tokens tier three requires.
const minWordOverlap = 2

// Find matches a free-text display name against the roster and returns the
// best-matching entry, or false when nothing clears the thresholds.
//
// The tiers are applied in strict precedence order, first hit wins:
//
//  1. exact equality of normalized names
//  2. containment either way, when both names are longer than 3 runes
//  3. at least 2 whitespace-delimited tokens in common
func (r *Roster) Find(displayName string) (Entry, bool) {
	normDisplay := Normalize(displayName)
	if r == nil || normDisplay == "" {
		return Entry{}, false
	}

	for _, entry := range r.entries {
		if entry.Name == normDisplay {
			return entry, true
		}
	}

	if len(normDisplay) > minContainmentLen {
		for _, entry := range r.entries {
			if len(entry.Name) <= minContainmentLen {
				continue
			}
			if strings.Contains(normDisplay, entry.Name) || strings.Contains(entry.Name, normDisplay) {
				return entry, true
			}
		}
	}

	displayWords := tokenSet(normDisplay)
	for _, entry := range r.entries {
		overlap := 0
		for word := range tokenSet(entry.Name) {
			if _, ok := displayWords[word]; ok {
				overlap++
			}
		}
		if overlap >= minWordOverlap {
			return entry, true
		}
	}

	return Entry{}, false
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(s) {
		set[word] = struct{}{}
	}
	return set
}

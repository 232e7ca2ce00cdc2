// Package roster loads the student and tutor tables and matches Meet
// display names against them.
//
// Conference participant display names rarely match roster records
// verbatim (nicknames, reordering, middle names), so matching is layered:
// exact equality of normalized names, then substring containment with a
// minimum-length guard, then a two-token word overlap. Anything below
// those thresholds is reported as no match rather than guessed.
package roster

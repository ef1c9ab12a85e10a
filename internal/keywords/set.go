// Package keywords classifies raw text into hard-skill, soft-skill, entity,
// verb and noun keyword sets. The classifier is rule-based on purpose:
// matched and missing keywords are surfaced to the user as justification, so
// every rule has to stay inspectable.
package keywords

import "sort"

// StringSet is a deduplicated set of lowercase keywords.
type StringSet map[string]struct{}

// Add inserts the keyword if it survives the set invariants: lowercase input
// expected, length above one rune.
func (s StringSet) Add(keyword string) {
	if len([]rune(keyword)) <= 1 {
		return
	}
	s[keyword] = struct{}{}
}

// Contains reports membership.
func (s StringSet) Contains(keyword string) bool {
	_, ok := s[keyword]
	return ok
}

// Intersect returns the members present in both sets.
func (s StringSet) Intersect(other StringSet) StringSet {
	out := StringSet{}
	for k := range s {
		if other.Contains(k) {
			out[k] = struct{}{}
		}
	}
	return out
}

// Diff returns the members of s absent from other.
func (s StringSet) Diff(other StringSet) StringSet {
	out := StringSet{}
	for k := range s {
		if !other.Contains(k) {
			out[k] = struct{}{}
		}
	}
	return out
}

// Sorted returns the members in lexicographic order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Set holds the keyword categories extracted from one text. It is built
// fresh per input and not mutated after Extract returns it.
type Set struct {
	HardSkills StringSet `json:"hard_skills"`
	SoftSkills StringSet `json:"soft_skills"`
	Entities   StringSet `json:"entities"`
	Verbs      StringSet `json:"verbs"`
	Nouns      StringSet `json:"nouns"`
}

// NewSet returns a Set with all categories initialized to empty sets.
func NewSet() Set {
	return Set{
		HardSkills: StringSet{},
		SoftSkills: StringSet{},
		Entities:   StringSet{},
		Verbs:      StringSet{},
		Nouns:      StringSet{},
	}
}

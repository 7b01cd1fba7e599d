// Package classify derives a corrective action for each phone number of a
// contact. It is pure: the caller hands over the raw numbers in store order
// and receives one suggestion per number, nothing is mutated and no I/O runs
package classify

import (
	"strings"

	"numwash/internal/core/phone"
)

// Action is the per-number edit decision
type Action uint8

const (
	// ActionSkip leaves the number untouched
	ActionSkip Action = iota
	// ActionAddPrefix rewrites the number to its canonical international form
	ActionAddPrefix
	// ActionRemoveSpaces rewrites a prefixed number to its canonical form,
	// which carries no formatting whitespace by construction
	ActionRemoveSpaces
	// ActionDelete removes the number from the contact at apply time
	ActionDelete
)

var actionNames = [...]string{"skip", "add_prefix", "remove_spaces", "delete"}

// String returns the wire name of the action
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "skip"
}

// ParseAction maps a wire name back to an Action
func ParseAction(s string) (Action, bool) {
	for i, n := range actionNames {
		if n == s {
			return Action(i), true
		}
	}
	return ActionSkip, false
}

// Suggestion is the outcome for one number
type Suggestion struct {
	Action Action
	// NonActionable carries the canonicalization failure that forced Skip,
	// empty when the number needed no repair or the action stands
	NonActionable string
}

// Suggest classifies every number of one contact against plan.
//
// Stages, in precedence order:
//  1. numbers with identical digit strings form an exact-duplicate group;
//     the first prefixed member in store order is kept, the rest are deleted.
//     A group with no prefixed member deletes nobody
//  2. an unprefixed survivor is deleted when any other prefixed number's
//     digits sit in a suffix relation with its own, either direction. The
//     relation is knowingly permissive: distinct lines sharing a long
//     common suffix can collide
//  3. otherwise the number gets AddPrefix when it lacks a prefix and its
//     digits do not open with 1, RemoveSpaces when it contains whitespace,
//     Skip when nothing applies. Both repairs demand a canonical form, a
//     number that cannot canonicalize stays Skip and reports why
//
// Numbers with no digits at all take no part in stages 1 and 2.
// Suggest is deterministic, the same input always yields the same output
func Suggest(numbers []string, plan phone.Plan) []Suggestion {
	out := make([]Suggestion, len(numbers))
	if len(numbers) == 0 {
		return out
	}

	digits := make([]string, len(numbers))
	prefixed := make([]bool, len(numbers))
	for i, raw := range numbers {
		digits[i] = phone.Digits(raw)
		prefixed[i] = phone.HasCountryPrefix(raw)
	}

	deleted := make([]bool, len(numbers))

	// stage 1 exact duplicate groups
	groups := make(map[string][]int, len(numbers))
	for i, d := range digits {
		if d == "" {
			continue
		}
		groups[d] = append(groups[d], i)
	}
	for _, idxs := range groups {
		if len(idxs) < 2 {
			continue
		}
		keeper := -1
		for _, i := range idxs {
			if prefixed[i] {
				keeper = i
				break
			}
		}
		if keeper < 0 {
			continue
		}
		for _, i := range idxs {
			if i == keeper {
				continue
			}
			out[i].Action = ActionDelete
			deleted[i] = true
		}
	}

	// stage 2 suffix duplicates of prefixed numbers
	for i := range numbers {
		if deleted[i] || prefixed[i] || digits[i] == "" {
			continue
		}
		for j := range numbers {
			if j == i || !prefixed[j] || digits[j] == "" {
				continue
			}
			if strings.HasSuffix(digits[i], digits[j]) || strings.HasSuffix(digits[j], digits[i]) {
				out[i].Action = ActionDelete
				deleted[i] = true
				break
			}
		}
	}

	// stage 3 repairs
	for i, raw := range numbers {
		if deleted[i] {
			continue
		}
		if !prefixed[i] && !strings.HasPrefix(digits[i], "1") {
			if _, err := plan.Canonical(raw); err != nil {
				out[i].NonActionable = err.Error()
				continue
			}
			out[i].Action = ActionAddPrefix
			continue
		}
		if phone.HasWhitespace(raw) {
			if _, err := plan.Canonical(raw); err != nil {
				out[i].NonActionable = err.Error()
				continue
			}
			out[i].Action = ActionRemoveSpaces
		}
	}

	return out
}

// HasDuplicates reports whether any two numbers' digit strings sit in a
// suffix relation, equality included. Digitless numbers are ignored
func HasDuplicates(numbers []string) bool {
	ds := make([]string, 0, len(numbers))
	for _, raw := range numbers {
		if d := phone.Digits(raw); d != "" {
			ds = append(ds, d)
		}
	}
	for i := range ds {
		for j := i + 1; j < len(ds); j++ {
			if strings.HasSuffix(ds[i], ds[j]) || strings.HasSuffix(ds[j], ds[i]) {
				return true
			}
		}
	}
	return false
}

// NeedsAction reports whether any number lacks a country prefix or the
// contact holds duplicates
func NeedsAction(numbers []string) bool {
	for _, raw := range numbers {
		if !phone.HasCountryPrefix(raw) {
			return true
		}
	}
	return HasDuplicates(numbers)
}

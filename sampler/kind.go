// SPDX-License-Identifier: MIT

package sampler

import (
	"fmt"
	"strings"
)

// Kind selects the structural variant of a sampler.
type Kind int

// Supported kinds. The zero value is invalid so that an unset Kind is caught.
const (
	KindUniform Kind = iota + 1
	KindAdjacent
	KindMasked
	KindCycle
)

// LegacyName is the historical variant name; see Resolve.
const LegacyName = "random_transition_matrix"

// MaxAdjacentSize is the largest state count for which the |i−j| = 2
// adjacency heuristic is defined.
const MaxAdjacentSize = 4

var kindNames = map[Kind]string{
	KindUniform:  "uniform",
	KindAdjacent: "adjacent",
	KindMasked:   "masked",
	KindCycle:    "cycle",
}

// String returns the canonical lower-case name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]

	return ok
}

// ParseKind maps a canonical name (case-insensitive) to a Kind.
// LegacyName maps to KindAdjacent, the historical default.
func ParseKind(name string) (Kind, error) {
	return Resolve(name, true)
}

// Resolve maps a variant name to a Kind. For LegacyName the adjacency flag
// decides between KindAdjacent and KindUniform; for canonical names the
// flag is ignored.
func Resolve(name string, constrainAdjacent bool) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == LegacyName {
		if constrainAdjacent {
			return KindAdjacent, nil
		}

		return KindUniform, nil
	}
	for k, s := range kindNames {
		if s == n {
			return k, nil
		}
	}

	return 0, fmt.Errorf("Resolve: %q: %w", name, ErrUnknownKind)
}

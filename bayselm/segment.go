package bayselm

import (
	"fmt"
	"strings"
)

// keySep joins atoms inside a Segment key. ReadCorpus rejects input
// containing it, so keys of corpus segments never collide.
const keySep = "\x1f"

// Segment is an immutable, non-empty run of atoms.
type Segment struct {
	atoms []string
	key   string
}

// NewSegment returns the Segment made of a copy of atoms.
func NewSegment(atoms []string) Segment {
	if len(atoms) == 0 {
		panic(&InvariantViolation{Op: "NewSegment", Detail: "segment must contain at least one atom"})
	}
	cp := make([]string, len(atoms))
	copy(cp, atoms)
	return Segment{atoms: cp, key: strings.Join(cp, keySep)}
}

// span returns seq[start:end] as a Segment.
func span(seq []string, start, end int) Segment {
	if start < 0 || end > len(seq) || start >= end {
		errMsg := fmt.Sprintf("span error. [%v, %v) is not a valid range of a sequence of length %v", start, end, len(seq))
		panic(&InvariantViolation{Op: "span", Detail: errMsg})
	}
	return NewSegment(seq[start:end])
}

// Len returns the number of atoms.
func (s Segment) Len() int {
	return len(s.atoms)
}

// Atom returns the i-th atom.
func (s Segment) Atom(i int) string {
	return s.atoms[i]
}

// Atoms returns a copy of the atoms.
func (s Segment) Atoms() []string {
	cp := make([]string, len(s.atoms))
	copy(cp, s.atoms)
	return cp
}

// Key returns the hash key of s. Two segments are equal iff their keys are.
func (s Segment) Key() string {
	return s.key
}

// Equal reports whether s and other hold the same atoms in the same order.
func (s Segment) Equal(other Segment) bool {
	if len(s.atoms) != len(other.atoms) {
		return false
	}
	for i, a := range s.atoms {
		if a != other.atoms[i] {
			return false
		}
	}
	return true
}

// Compose returns the concatenation of s and other.
func (s Segment) Compose(other Segment) Segment {
	atoms := make([]string, 0, len(s.atoms)+len(other.atoms))
	atoms = append(atoms, s.atoms...)
	atoms = append(atoms, other.atoms...)
	return Segment{atoms: atoms, key: s.key + keySep + other.key}
}

// Join renders the atoms separated by sep.
func (s Segment) Join(sep string) string {
	return strings.Join(s.atoms, sep)
}

func (s Segment) String() string {
	return "[" + strings.Join(s.atoms, ", ") + "]"
}

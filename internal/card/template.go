package card

import (
	"fmt"
	"strings"
)

// SectionAllPairs is the section whose hands are scored by pair count alone.
const SectionAllPairs = "ALL PAIRS"

// HandSize is the tile count of every complete hand.
const HandSize = 14

type ConstraintType string

const (
	ConstraintSingle   ConstraintType = "single"
	ConstraintPair     ConstraintType = "pair"
	ConstraintPung     ConstraintType = "pung"
	ConstraintKong     ConstraintType = "kong"
	ConstraintQuint    ConstraintType = "quint"
	ConstraintSequence ConstraintType = "sequence"
)

var constraintSizes = map[ConstraintType]int{
	ConstraintSingle: 1,
	ConstraintPair:   2,
	ConstraintPung:   3,
	ConstraintKong:   4,
	ConstraintQuint:  5,
}

var constraintWeights = map[ConstraintType]int{
	ConstraintQuint:    5,
	ConstraintKong:     4,
	ConstraintPung:     3,
	ConstraintSequence: 3,
	ConstraintPair:     2,
	ConstraintSingle:   1,
}

// Size is the number of identical tiles the type requires. Sequences and
// unknown types report 0.
func (c ConstraintType) Size() int {
	return constraintSizes[c]
}

// Weight orders groups for scoring, larger first.
func (c ConstraintType) Weight() int {
	return constraintWeights[c]
}

func (c ConstraintType) IsKnown() bool {
	_, ok := constraintWeights[c]
	return ok
}

// SuitRole is a group's suit placeholder.
type SuitRole string

const (
	RoleNone   SuitRole = "none"
	RoleAny    SuitRole = "any"
	RoleSecond SuitRole = "second"
	RoleThird  SuitRole = "third"

	sameAsPrefix = "same_as:"
)

// CanonicalRoles is the order primary roles map onto a suit permutation.
var CanonicalRoles = [3]SuitRole{RoleAny, RoleSecond, RoleThird}

// SameAs returns the referenced group id of a same_as role.
func (r SuitRole) SameAs() (string, bool) {
	s := string(r)
	if !strings.HasPrefix(s, sameAsPrefix) {
		return "", false
	}
	return strings.TrimSpace(s[len(sameAsPrefix):]), true
}

// IsPrimary reports whether the role takes its own suit from the
// permutation. Unrecognised non-empty roles count as primary.
func (r SuitRole) IsPrimary() bool {
	if r == "" || r == RoleNone {
		return false
	}
	_, same := r.SameAs()
	return !same
}

type Group struct {
	ID            string
	Type          ConstraintType
	Values        Descriptor
	Role          SuitRole
	JokersAllowed bool
	MustMatch     string
}

// Template is one abstract winning-hand shape of the card.
type Template struct {
	Section        string
	Line           int
	PatternID      int
	Key            string
	DisplayPattern string
	Description    string
	Points         int
	Difficulty     string
	Concealed      bool
	Groups         []Group
}

// CompositeID is the "SECTION-LINE (pattern)" label used in rankings.
func (t Template) CompositeID() string {
	return fmt.Sprintf("%s-%d (%s)", t.Section, t.Line, t.DisplayPattern)
}

func (t Template) IsAllPairs() bool {
	return strings.EqualFold(strings.TrimSpace(t.Section), SectionAllPairs)
}

// BaseID is the hand id prefix for hands of t.
func (t Template) BaseID() string {
	if t.Key != "" {
		return t.Key
	}
	return fmt.Sprintf("pattern-%d", t.PatternID)
}

// Group looks up a group by id.
func (t Template) Group(id string) (Group, bool) {
	for _, g := range t.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

package expand

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat/combin"

	"nmjl-service/internal/card"
)

// SuitBinding assigns a suit to one group.
type SuitBinding struct {
	Group string
	Suit  card.Suit
}

// SuitAssignment maps role-bearing groups to suits, keeping the order the
// bindings were made in so hand ids stay deterministic.
type SuitAssignment struct {
	bindings []SuitBinding
	// TooMany is the number of distinct roles when it exceeded the suits
	// available; such an assignment carries no bindings.
	TooMany int
}

func (a SuitAssignment) Suit(group string) (card.Suit, bool) {
	for _, b := range a.bindings {
		if b.Group == group {
			return b.Suit, true
		}
	}
	return "", false
}

func (a SuitAssignment) Len() int {
	return len(a.bindings)
}

func (a SuitAssignment) IsEmpty() bool {
	return len(a.bindings) == 0 && a.TooMany == 0
}

// Map renders the assignment as the record's group→suit map.
func (a SuitAssignment) Map() map[string]string {
	res := make(map[string]string, len(a.bindings))
	if a.TooMany > 0 {
		res["ERROR"] = fmt.Sprintf("Too many suits needed: %d", a.TooMany)
		return res
	}
	for _, b := range a.bindings {
		res[b.Group] = string(b.Suit)
	}
	return res
}

// Key encodes the assignment for hand ids.
func (a SuitAssignment) Key() string {
	if a.TooMany > 0 {
		return fmt.Sprintf("toomanysuits%d", a.TooMany)
	}
	if a.IsEmpty() {
		return "nosuits"
	}
	parts := make([]string, len(a.bindings))
	for i, b := range a.bindings {
		parts[i] = string(b.Suit)
	}
	return strings.Join(parts, "-")
}

func (a *SuitAssignment) set(group string, s card.Suit) {
	for i := range a.bindings {
		if a.bindings[i].Group == group {
			a.bindings[i].Suit = s
			return
		}
	}
	a.bindings = append(a.bindings, SuitBinding{Group: group, Suit: s})
}

func (a SuitAssignment) concrete(group string) (card.Suit, bool) {
	s, ok := a.Suit(group)
	if !ok || !s.IsValid() {
		return "", false
	}
	return s, true
}

// distinctRoles returns the primary roles present, canonical roles first and
// any unrecognised roles after them in order of appearance.
func distinctRoles(groups []card.Group) []card.SuitRole {
	present := make(map[card.SuitRole]bool)
	var extra []card.SuitRole
	for _, g := range groups {
		if !g.Role.IsPrimary() || present[g.Role] {
			continue
		}
		present[g.Role] = true
		canonical := false
		for _, r := range card.CanonicalRoles {
			if r == g.Role {
				canonical = true
				break
			}
		}
		if !canonical {
			extra = append(extra, g.Role)
		}
	}

	roles := make([]card.SuitRole, 0, len(present))
	for _, r := range card.CanonicalRoles {
		if present[r] {
			roles = append(roles, r)
		}
	}
	return append(roles, extra...)
}

// ExpandSuits enumerates every suit assignment the groups admit. Distinct
// roles get pairwise distinct suits; same_as and must-match references are
// then propagated in one pass each.
func ExpandSuits(groups []card.Group) []SuitAssignment {
	roles := distinctRoles(groups)
	k := len(roles)
	if k == 0 {
		return []SuitAssignment{{}}
	}
	if k > len(card.Suits) {
		return []SuitAssignment{{TooMany: k}}
	}

	perms := combin.Permutations(len(card.Suits), k)
	res := make([]SuitAssignment, 0, len(perms))
	for _, perm := range perms {
		roleSuit := make(map[card.SuitRole]card.Suit, k)
		for i, r := range roles {
			roleSuit[r] = card.Suits[perm[i]]
		}

		var a SuitAssignment
		for _, g := range groups {
			if s, ok := roleSuit[g.Role]; ok {
				a.set(g.ID, s)
			}
		}
		propagateSameAs(&a, groups)
		propagateMustMatch(&a, groups)
		res = append(res, a)
	}
	return res
}

func propagateSameAs(a *SuitAssignment, groups []card.Group) {
	for _, g := range groups {
		ref, ok := g.Role.SameAs()
		if !ok {
			continue
		}
		if s, ok := a.concrete(ref); ok {
			a.set(g.ID, s)
		} else {
			a.set(g.ID, card.SuitUnresolved)
		}
	}
}

// propagateMustMatch copies a known suit across each must-match pair. It
// does not iterate to a fixed point.
func propagateMustMatch(a *SuitAssignment, groups []card.Group) {
	for _, g := range groups {
		if g.MustMatch == "" {
			continue
		}
		hasPartner := false
		for _, other := range groups {
			if other.ID == g.MustMatch {
				hasPartner = true
				break
			}
		}
		if !hasPartner {
			continue
		}
		own, ownOK := a.concrete(g.ID)
		other, otherOK := a.concrete(g.MustMatch)
		switch {
		case ownOK && !otherOK:
			a.set(g.MustMatch, own)
		case otherOK && !ownOK:
			a.set(g.ID, other)
		}
	}
}

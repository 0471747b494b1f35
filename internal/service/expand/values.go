package expand

import (
	"strings"

	"gonum.org/v1/gonum/stat/combin"

	"nmjl-service/internal/card"
)

// ValueBinding chooses one literal for a multi-valued descriptor.
type ValueBinding struct {
	Descriptor string
	Value      string
}

// ValueAssignment is one combination of literal choices, in the order the
// descriptors first appear in the template.
type ValueAssignment []ValueBinding

func (a ValueAssignment) Lookup(descriptor string) (string, bool) {
	for _, b := range a {
		if b.Descriptor == descriptor {
			return b.Value, true
		}
	}
	return "", false
}

func (a ValueAssignment) Map() map[string]string {
	res := make(map[string]string, len(a))
	for _, b := range a {
		res[b.Descriptor] = b.Value
	}
	return res
}

// Key encodes the assignment for hand ids; empty when nothing was chosen.
func (a ValueAssignment) Key() string {
	parts := make([]string, len(a))
	for i, b := range a {
		parts[i] = b.Descriptor + ":" + b.Value
	}
	return strings.Join(parts, "-")
}

// ExpandValues returns the Cartesian product of the literal choices of every
// multi-valued descriptor, sequence groups included. The choice is keyed by
// descriptor, so groups sharing a descriptor share one choice and count once
// in the product, unlike a per-group product.
func ExpandValues(groups []card.Group) []ValueAssignment {
	var descs []card.Descriptor
	seen := make(map[string]bool)
	for _, g := range groups {
		if !g.Values.IsMultiValued() || seen[g.Values.Raw] {
			continue
		}
		seen[g.Values.Raw] = true
		descs = append(descs, g.Values)
	}
	if len(descs) == 0 {
		return []ValueAssignment{nil}
	}

	lens := make([]int, len(descs))
	for i, d := range descs {
		lens[i] = len(d.Values)
	}
	product := combin.Cartesian(lens)
	res := make([]ValueAssignment, 0, len(product))
	for _, idx := range product {
		a := make(ValueAssignment, len(descs))
		for i, d := range descs {
			a[i] = ValueBinding{Descriptor: d.Raw, Value: d.Values[idx[i]]}
		}
		res = append(res, a)
	}
	return res
}

package card

import "strings"

// DescriptorKind tags the shape of a constraint-value descriptor.
type DescriptorKind int

const (
	DescriptorEmpty        DescriptorKind = iota // "" or "any": suit-only placeholder
	DescriptorSymbolic                           // flower / wind(s) / dragon(s)
	DescriptorLiteral                            // one literal
	DescriptorAlternatives                       // "2,5": comma separated literals
	DescriptorPacked                             // "2025": one literal per digit
)

func (k DescriptorKind) String() string {
	switch k {
	case DescriptorEmpty:
		return "empty"
	case DescriptorSymbolic:
		return "symbolic"
	case DescriptorLiteral:
		return "literal"
	case DescriptorAlternatives:
		return "alternatives"
	case DescriptorPacked:
		return "packed"
	default:
		return "unknown"
	}
}

// Category is a symbolic tile family.
type Category string

const (
	CategoryFlower Category = "flower"
	CategoryWind   Category = "wind"
	CategoryDragon Category = "dragon"
)

var categoryNames = map[string]Category{
	"flower":  CategoryFlower,
	"wind":    CategoryWind,
	"winds":   CategoryWind,
	"dragon":  CategoryDragon,
	"dragons": CategoryDragon,
}

// Tiles returns the full vocabulary of the category.
func (c Category) Tiles() []Tile {
	switch c {
	case CategoryFlower:
		return FlowerTiles()
	case CategoryWind:
		return WindTiles()
	case CategoryDragon:
		return DragonTiles()
	default:
		return nil
	}
}

// Descriptor is a parsed constraint-value descriptor. Raw keeps the
// original text, which is also the key of value assignments.
type Descriptor struct {
	Raw      string
	Kind     DescriptorKind
	Category Category
	Values   []string
}

// ParseDescriptor classifies raw once so callers switch on Kind instead of
// re-inspecting the string.
func ParseDescriptor(raw string) Descriptor {
	s := strings.TrimSpace(raw)
	if c, ok := categoryNames[s]; ok {
		return Descriptor{Raw: s, Kind: DescriptorSymbolic, Category: c}
	}
	if s == "" || s == "any" {
		return Descriptor{Raw: s, Kind: DescriptorEmpty}
	}
	if len(s) > 1 && isDigits(s) {
		values := make([]string, len(s))
		for i := range s {
			values[i] = s[i : i+1]
		}
		return Descriptor{Raw: s, Kind: DescriptorPacked, Values: values}
	}
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return Descriptor{Raw: s, Kind: DescriptorAlternatives, Values: parts}
	}
	return Descriptor{Raw: s, Kind: DescriptorLiteral, Values: []string{s}}
}

// IsMultiValued reports whether the descriptor offers a choice of literals.
func (d Descriptor) IsMultiValued() bool {
	return d.Kind == DescriptorAlternatives && len(d.Values) > 1
}

func (d Descriptor) String() string {
	return d.Raw
}

// LiteralTile maps one resolved literal to a tile. The digit 0 is the white
// dragon by card convention. A digit with no suit stays pending.
func LiteralTile(literal string, suit Suit) Tile {
	if literal == "0" {
		return TileWhite
	}
	if t, ok := honorNames[literal]; ok {
		return t
	}
	if len(literal) == 1 && literal[0] >= '1' && literal[0] <= '9' {
		switch {
		case suit == "":
			return Tile(literal)
		case suit == SuitUnresolved:
			return UnresolvedTile(literal)
		case suit.IsValid():
			return NumberTile(int(literal[0]-'0'), suit)
		}
	}
	return UnknownTile(literal)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

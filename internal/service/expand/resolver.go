package expand

import (
	"nmjl-service/internal/card"
)

// ResolveValues turns a descriptor into tiles for one suit and value choice.
// It never fails: literals it cannot map come back as sentinel tiles.
func ResolveValues(d card.Descriptor, suit card.Suit, values ValueAssignment) []card.Tile {
	switch d.Kind {
	case card.DescriptorSymbolic:
		return d.Category.Tiles()
	case card.DescriptorEmpty:
		return []card.Tile{}
	}

	if v, ok := values.Lookup(d.Raw); ok {
		d = card.ParseDescriptor(v)
		switch d.Kind {
		case card.DescriptorSymbolic:
			return d.Category.Tiles()
		case card.DescriptorEmpty:
			return []card.Tile{}
		}
	}

	tiles := make([]card.Tile, 0, len(d.Values))
	for _, lit := range d.Values {
		tiles = append(tiles, card.LiteralTile(lit, suit))
	}
	return tiles
}

// GroupTiles expands one group to the exact tiles it contributes and
// reports whether every tile resolved.
func GroupTiles(g card.Group, suits SuitAssignment, values ValueAssignment) ([]card.Tile, bool) {
	suit, _ := suits.Suit(g.ID)

	// A sequence descriptor is the run itself, never a list of choices.
	if g.Type == card.ConstraintSequence {
		values = nil
	}

	var tiles []card.Tile
	switch g.Type {
	case card.ConstraintSequence:
		tiles = ResolveValues(g.Values, suit, values)
	case card.ConstraintSingle:
		base := ResolveValues(g.Values, suit, values)
		if len(base) > 0 {
			tiles = base[:1]
		} else {
			tiles = card.PlaceholderTiles(g.Type, 1)
		}
	case card.ConstraintPair, card.ConstraintPung, card.ConstraintKong, card.ConstraintQuint:
		if g.Type == card.ConstraintKong && g.Values.Kind == card.DescriptorSymbolic && g.Values.Category == card.CategoryFlower {
			tiles = card.FlowerTiles()
			break
		}
		base := ResolveValues(g.Values, suit, values)
		if len(base) > 0 {
			tiles = card.Repeat(base[0], g.Type.Size())
		} else {
			tiles = card.PlaceholderTiles(g.Type, g.Type.Size())
		}
	default:
		return []card.Tile{card.Tile("UNKNOWN_CONSTRAINT:" + string(g.Type))}, false
	}

	return tiles, len(tiles) > 0 && !hasSentinel(tiles)
}

func hasSentinel(tiles []card.Tile) bool {
	for _, t := range tiles {
		if t.IsSentinel() {
			return true
		}
	}
	return false
}

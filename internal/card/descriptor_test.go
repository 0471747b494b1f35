package card_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nmjl-service/internal/card"
)

func TestParseDescriptor(t *testing.T) {
	tests := []struct {
		raw      string
		kind     card.DescriptorKind
		category card.Category
		values   []string
	}{
		{raw: "flower", kind: card.DescriptorSymbolic, category: card.CategoryFlower},
		{raw: "winds", kind: card.DescriptorSymbolic, category: card.CategoryWind},
		{raw: "dragon", kind: card.DescriptorSymbolic, category: card.CategoryDragon},
		{raw: "", kind: card.DescriptorEmpty},
		{raw: "any", kind: card.DescriptorEmpty},
		{raw: "2025", kind: card.DescriptorPacked, values: []string{"2", "0", "2", "5"}},
		{raw: "2, 5", kind: card.DescriptorAlternatives, values: []string{"2", "5"}},
		{raw: "1,2,3", kind: card.DescriptorAlternatives, values: []string{"1", "2", "3"}},
		{raw: "7", kind: card.DescriptorLiteral, values: []string{"7"}},
		{raw: "north", kind: card.DescriptorLiteral, values: []string{"north"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			d := card.ParseDescriptor(tt.raw)
			require.Equal(t, tt.kind, d.Kind)
			require.Equal(t, tt.category, d.Category)
			require.Equal(t, tt.values, d.Values)
		})
	}
}

func TestIsMultiValued(t *testing.T) {
	require.True(t, card.ParseDescriptor("2,5").IsMultiValued())
	require.False(t, card.ParseDescriptor("5").IsMultiValued())
	require.False(t, card.ParseDescriptor("2025").IsMultiValued())
}

func TestLiteralTile(t *testing.T) {
	require.Equal(t, card.TileWhite, card.LiteralTile("0", card.SuitBams))
	require.Equal(t, card.TileEast, card.LiteralTile("east", ""))
	require.Equal(t, card.TileRed, card.LiteralTile("red", card.SuitDots))
	require.Equal(t, card.Tile("3C"), card.LiteralTile("3", card.SuitCraks))
	require.Equal(t, card.Tile("3"), card.LiteralTile("3", ""))
	require.Equal(t, card.UnresolvedTile("3"), card.LiteralTile("3", card.SuitUnresolved))
	require.Equal(t, card.UnknownTile("news"), card.LiteralTile("news", card.SuitDots))
}

func TestSuitRole(t *testing.T) {
	ref, ok := card.SuitRole("same_as:g2").SameAs()
	require.True(t, ok)
	require.Equal(t, "g2", ref)
	require.False(t, card.SuitRole("same_as:g2").IsPrimary())
	require.True(t, card.RoleAny.IsPrimary())
	require.True(t, card.SuitRole("fourth").IsPrimary())
	require.False(t, card.RoleNone.IsPrimary())
	require.False(t, card.SuitRole("").IsPrimary())
}

func TestTemplateHelpers(t *testing.T) {
	tpl := card.Template{Section: "2025", Line: 1, DisplayPattern: "222 0000 222 5555", PatternID: 7}
	require.Equal(t, "2025-1 (222 0000 222 5555)", tpl.CompositeID())
	require.Equal(t, "pattern-7", tpl.BaseID())
	tpl.Key = "2025-1"
	require.Equal(t, "2025-1", tpl.BaseID())
	require.False(t, tpl.IsAllPairs())
	require.True(t, card.Template{Section: "all pairs"}.IsAllPairs())
}

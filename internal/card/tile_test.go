package card_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"nmjl-service/internal/card"
	appErr "nmjl-service/pkg/errors"
)

func TestParseTile(t *testing.T) {
	cases := map[string]card.Tile{
		"1D":    "1D",
		"9c":    "9C",
		" 5b ":  "5B",
		"East":  card.TileEast,
		"WHITE": card.TileWhite,
		"F3":    card.TileF3,
		"joker": card.TileJoker,
	}
	for in, want := range cases {
		got, err := card.ParseTile(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "0D", "10D", "4X", "dragon"} {
		_, err := card.ParseTile(bad)
		require.Error(t, err, bad)
		require.True(t, errors.Is(err, appErr.ErrInvalidTile), bad)
	}
}

func TestNumberTile(t *testing.T) {
	require.Equal(t, card.Tile("2D"), card.NumberTile(2, card.SuitDots))
	require.Equal(t, card.Tile("7B"), card.NumberTile(7, card.SuitBams))
	require.Equal(t, card.Tile("9C"), card.NumberTile(9, card.SuitCraks))
	require.True(t, card.NumberTile(0, card.SuitDots).IsSentinel())
	require.True(t, card.NumberTile(3, card.SuitUnresolved).IsSentinel())

	v, s, ok := card.Tile("4C").Number()
	require.True(t, ok)
	require.Equal(t, 4, v)
	require.Equal(t, card.SuitCraks, s)

	_, _, ok = card.TileEast.Number()
	require.False(t, ok)
}

func TestTileClasses(t *testing.T) {
	require.True(t, card.TileNorth.IsWind())
	require.True(t, card.TileGreen.IsDragon())
	require.True(t, card.TileF2.IsFlower())
	require.True(t, card.Tile("3").IsPending())
	require.False(t, card.Tile("3D").IsPending())
	require.True(t, card.UnknownTile("x").IsSentinel())
	require.True(t, card.UnresolvedTile("2").IsSentinel())
	require.True(t, card.PlaceholderTiles(card.ConstraintPung, 3)[0].IsSentinel())
}

func TestVocabulariesAreCopies(t *testing.T) {
	w := card.WindTiles()
	w[0] = "mutated"
	require.Equal(t, card.TileEast, card.WindTiles()[0])
	require.Len(t, card.DragonTiles(), 3)
	require.Len(t, card.FlowerTiles(), 4)
}

func TestCounts(t *testing.T) {
	c := card.CountTiles([]card.Tile{"1D", "1D", "east", "2B"})
	require.Equal(t, 2, c["1D"])
	require.Equal(t, 4, c.Total())
	require.Equal(t, "1D:2,2B:1,east:1", c.Canonical())

	clone := c.Clone()
	clone["1D"] = 0
	require.Equal(t, 2, c["1D"])
	require.Equal(t, "2B:1,east:1", clone.Canonical())
}

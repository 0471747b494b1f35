package card

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	appErr "nmjl-service/pkg/errors"
)

// Suit is one of the three number suits.
type Suit string

const (
	SuitDots  Suit = "dots"
	SuitBams  Suit = "bams"
	SuitCraks Suit = "craks"

	// SuitUnresolved marks a group whose same_as reference had no suit yet.
	SuitUnresolved Suit = "UNRESOLVED_REFERENCE"
)

// Suits lists the suits in enumeration order.
var Suits = [3]Suit{SuitDots, SuitBams, SuitCraks}

// ScoringSuits lists the suits in the order the scorer tries them.
var ScoringSuits = [3]Suit{SuitDots, SuitCraks, SuitBams}

var suitLetters = map[Suit]byte{
	SuitDots:  'D',
	SuitBams:  'B',
	SuitCraks: 'C',
}

var letterSuits = map[byte]Suit{
	'D': SuitDots,
	'B': SuitBams,
	'C': SuitCraks,
}

// Letter returns the single-letter tile suffix for s.
func (s Suit) Letter() (byte, bool) {
	l, ok := suitLetters[s]
	return l, ok
}

func (s Suit) IsValid() bool {
	_, ok := suitLetters[s]
	return ok
}

// Tile is a concrete tile identifier such as "2D", "east", "white", "f3"
// or "joker". Sentinel identifiers (see IsSentinel) are carried through
// expansion so that bad templates stay auditable.
type Tile string

const (
	TileEast  Tile = "east"
	TileSouth Tile = "south"
	TileWest  Tile = "west"
	TileNorth Tile = "north"

	TileRed   Tile = "red"
	TileGreen Tile = "green"
	TileWhite Tile = "white"

	TileF1 Tile = "f1"
	TileF2 Tile = "f2"
	TileF3 Tile = "f3"
	TileF4 Tile = "f4"

	TileJoker Tile = "joker"
)

const (
	unknownPrefix    = "UNKNOWN"
	unresolvedPrefix = "UNRESOLVED"
)

// Fixed vocabularies, never mutated.
var (
	windTiles   = [4]Tile{TileEast, TileSouth, TileWest, TileNorth}
	dragonTiles = [3]Tile{TileRed, TileGreen, TileWhite}
	flowerTiles = [4]Tile{TileF1, TileF2, TileF3, TileF4}
)

var honorNames = map[string]Tile{
	"east":  TileEast,
	"south": TileSouth,
	"west":  TileWest,
	"north": TileNorth,
	"red":   TileRed,
	"green": TileGreen,
	"white": TileWhite,
}

func WindTiles() []Tile   { return append([]Tile(nil), windTiles[:]...) }
func DragonTiles() []Tile { return append([]Tile(nil), dragonTiles[:]...) }
func FlowerTiles() []Tile { return append([]Tile(nil), flowerTiles[:]...) }

// NumberTile builds the identifier for value v of suit s.
func NumberTile(v int, s Suit) Tile {
	l, ok := s.Letter()
	if !ok || v < 1 || v > 9 {
		return UnknownTile(fmt.Sprintf("%d%s", v, s))
	}
	return Tile(strconv.Itoa(v) + string(l))
}

// UnknownTile tags a literal that could not be mapped to any tile.
func UnknownTile(literal string) Tile {
	return Tile(unknownPrefix + ":" + literal)
}

// UnresolvedTile tags a number literal whose suit reference never resolved.
func UnresolvedTile(literal string) Tile {
	return Tile(unresolvedPrefix + ":" + literal)
}

// PlaceholderTiles returns n copies of the UNKNOWN_<TYPE> sentinel.
func PlaceholderTiles(ct ConstraintType, n int) []Tile {
	t := Tile(unknownPrefix + "_" + strings.ToUpper(string(ct)))
	return Repeat(t, n)
}

// Repeat returns count copies of t.
func Repeat(t Tile, count int) []Tile {
	if count <= 0 {
		return []Tile{}
	}
	res := make([]Tile, count)
	for i := range res {
		res[i] = t
	}
	return res
}

func (t Tile) IsSentinel() bool {
	s := string(t)
	return strings.HasPrefix(s, unknownPrefix) || strings.HasPrefix(s, unresolvedPrefix)
}

// IsPending reports whether t is a bare digit still waiting for a suit.
func (t Tile) IsPending() bool {
	return len(t) == 1 && t[0] >= '1' && t[0] <= '9'
}

// Number returns the value and suit of a number tile.
func (t Tile) Number() (int, Suit, bool) {
	if len(t) != 2 || t[0] < '1' || t[0] > '9' {
		return 0, "", false
	}
	s, ok := letterSuits[t[1]]
	if !ok {
		return 0, "", false
	}
	return int(t[0] - '0'), s, true
}

func (t Tile) IsWind() bool {
	for _, w := range windTiles {
		if t == w {
			return true
		}
	}
	return false
}

func (t Tile) IsDragon() bool {
	for _, d := range dragonTiles {
		if t == d {
			return true
		}
	}
	return false
}

func (t Tile) IsFlower() bool {
	for _, f := range flowerTiles {
		if t == f {
			return true
		}
	}
	return false
}

func (t Tile) IsHonor() bool {
	return t.IsWind() || t.IsDragon()
}

// ParseTile parses an observed tile name. Honors and flowers are matched
// case-insensitively, number tiles accept either letter case ("1d", "1D").
func ParseTile(name string) (Tile, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return "", fmt.Errorf("%w: empty", appErr.ErrInvalidTile)
	}
	lower := strings.ToLower(s)
	if t, ok := honorNames[lower]; ok {
		return t, nil
	}
	if Tile(lower).IsFlower() || Tile(lower) == TileJoker {
		return Tile(lower), nil
	}
	upper := Tile(strings.ToUpper(s))
	if _, _, ok := upper.Number(); ok {
		return upper, nil
	}
	return "", fmt.Errorf("%w: %q", appErr.ErrInvalidTile, name)
}

// ParseTiles parses every name, failing on the first invalid one.
func ParseTiles(names []string) ([]Tile, error) {
	res := make([]Tile, 0, len(names))
	for _, n := range names {
		t, err := ParseTile(n)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, nil
}

// Counts is a tile multiset.
type Counts map[Tile]int

func CountTiles(tiles []Tile) Counts {
	c := make(Counts, len(tiles))
	for _, t := range tiles {
		c[t]++
	}
	return c
}

func (c Counts) Clone() Counts {
	res := make(Counts, len(c))
	for t, n := range c {
		res[t] = n
	}
	return res
}

func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Canonical renders the multiset as a stable "tile:n,..." string.
func (c Counts) Canonical() string {
	keys := make([]string, 0, len(c))
	for t, n := range c {
		if n > 0 {
			keys = append(keys, string(t))
		}
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(c[Tile(k)]))
	}
	return b.String()
}

// Strings converts tiles to their identifiers.
func Strings(tiles []Tile) []string {
	res := make([]string, len(tiles))
	for i, t := range tiles {
		res[i] = string(t)
	}
	return res
}

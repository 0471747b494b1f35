package card

const (
	NoteGenerated    = "Generated automatically"
	NoteManualReview = "Manual review needed"
)

// JokerGroup records which tiles of one group a joker may stand in for.
type JokerGroup struct {
	GroupID       string
	Type          ConstraintType
	JokersAllowed bool
	Tiles         []Tile
}

type JokerRules struct {
	Groups []JokerGroup
	// Substitutable counts tiles of joker-eligible groups that resolved cleanly.
	Substitutable int
	// SinglesPairsRestricted is set when some single or pair forbids jokers.
	SinglesPairsRestricted bool
}

// PlayableHand is one concrete hand derived from a template and one suit and
// value choice. Values are built once and never mutated.
type PlayableHand struct {
	ID       string
	Template Template
	Tiles    []Tile
	Counts   Counts
	Jokers   JokerRules
	Suits    map[string]string
	Values   map[string]string
	Success  bool
	Note     string
}

// Trusted reports whether downstream consumers may rely on the hand.
func (h PlayableHand) Trusted() bool {
	return h.Success && len(h.Tiles) == HandSize
}

// TotalTiles is the number of tiles in the expanded hand.
func (h PlayableHand) TotalTiles() int {
	return len(h.Tiles)
}

// SentinelTiles returns the sentinel identifiers the hand carries.
func (h PlayableHand) SentinelTiles() []Tile {
	var res []Tile
	for _, t := range h.Tiles {
		if t.IsSentinel() {
			res = append(res, t)
		}
	}
	return res
}

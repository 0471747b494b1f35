package cardfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"nmjl-service/internal/card"
	"nmjl-service/internal/service/expand"
	appErr "nmjl-service/pkg/errors"
)

const TileFormat = "standard_id"

type PatternInfo struct {
	Section        string `json:"section"`
	Line           int    `json:"line"`
	PatternID      int    `json:"pattern_id"`
	PatternKey     string `json:"pattern_key"`
	DisplayPattern string `json:"display_pattern"`
	Description    string `json:"description"`
	Points         int    `json:"points"`
	Difficulty     string `json:"difficulty"`
	Concealed      bool   `json:"concealed"`
}

type ExactTiles struct {
	RequiredTiles []string       `json:"required_tiles"`
	TileCounts    map[string]int `json:"tile_counts"`
	TotalTiles    int            `json:"total_tiles"`
}

type JokerGroupRecord struct {
	GroupName      string   `json:"group_name"`
	ConstraintType string   `json:"constraint_type,omitempty"`
	JokersAllowed  bool     `json:"jokers_allowed"`
	Tiles          []string `json:"tiles"`
}

type JokerRulesRecord struct {
	Groups                 []JokerGroupRecord `json:"groups"`
	Substitutable          int                `json:"total_joker_substitutable_tiles"`
	SinglesPairsRestricted bool               `json:"singles_and_pairs_restriction"`
}

// HandRecord is the catalog form of one playable hand.
type HandRecord struct {
	HandID           string            `json:"hand_id"`
	PatternInfo      PatternInfo       `json:"pattern_info"`
	ExactTiles       ExactTiles        `json:"exact_tiles"`
	JokerRules       JokerRulesRecord  `json:"joker_rules"`
	SuitAssignments  map[string]string `json:"suit_assignments"`
	ValueAssignments map[string]string `json:"value_assignments"`
	Success          bool              `json:"generation_success"`
	Notes            string            `json:"generation_notes"`
}

func NewPatternInfo(t card.Template) PatternInfo {
	return PatternInfo{
		Section:        t.Section,
		Line:           t.Line,
		PatternID:      t.PatternID,
		PatternKey:     t.Key,
		DisplayPattern: t.DisplayPattern,
		Description:    t.Description,
		Points:         t.Points,
		Difficulty:     t.Difficulty,
		Concealed:      t.Concealed,
	}
}

func NewJokerRules(j card.JokerRules) JokerRulesRecord {
	rec := JokerRulesRecord{
		Groups:                 make([]JokerGroupRecord, 0, len(j.Groups)),
		Substitutable:          j.Substitutable,
		SinglesPairsRestricted: j.SinglesPairsRestricted,
	}
	for _, g := range j.Groups {
		rec.Groups = append(rec.Groups, JokerGroupRecord{
			GroupName:      g.GroupID,
			ConstraintType: string(g.Type),
			JokersAllowed:  g.JokersAllowed,
			Tiles:          card.Strings(g.Tiles),
		})
	}
	return rec
}

// Rules converts the record back. Tile identifiers are kept verbatim,
// sentinels included.
func (r JokerRulesRecord) Rules() card.JokerRules {
	rules := card.JokerRules{
		Groups:                 make([]card.JokerGroup, 0, len(r.Groups)),
		Substitutable:          r.Substitutable,
		SinglesPairsRestricted: r.SinglesPairsRestricted,
	}
	for _, g := range r.Groups {
		rules.Groups = append(rules.Groups, card.JokerGroup{
			GroupID:       g.GroupName,
			Type:          card.ConstraintType(g.ConstraintType),
			JokersAllowed: g.JokersAllowed,
			Tiles:         tiles(g.Tiles),
		})
	}
	return rules
}

func tiles(ids []string) []card.Tile {
	res := make([]card.Tile, len(ids))
	for i, id := range ids {
		res[i] = card.Tile(id)
	}
	return res
}

func (p PatternInfo) Template() card.Template {
	return card.Template{
		Section:        p.Section,
		Line:           p.Line,
		PatternID:      p.PatternID,
		Key:            p.PatternKey,
		DisplayPattern: p.DisplayPattern,
		Description:    p.Description,
		Points:         p.Points,
		Difficulty:     p.Difficulty,
		Concealed:      p.Concealed,
	}
}

func CountMap(c card.Counts) map[string]int {
	m := make(map[string]int, len(c))
	for t, n := range c {
		m[string(t)] = n
	}
	return m
}

func NewHandRecord(h card.PlayableHand) HandRecord {
	suits := h.Suits
	if suits == nil {
		suits = map[string]string{}
	}
	values := h.Values
	if values == nil {
		values = map[string]string{}
	}
	return HandRecord{
		HandID:      h.ID,
		PatternInfo: NewPatternInfo(h.Template),
		ExactTiles: ExactTiles{
			RequiredTiles: card.Strings(h.Tiles),
			TileCounts:    CountMap(h.Counts),
			TotalTiles:    h.TotalTiles(),
		},
		JokerRules:       NewJokerRules(h.Jokers),
		SuitAssignments:  suits,
		ValueAssignments: values,
		Success:          h.Success,
		Notes:            h.Note,
	}
}

// Hand rebuilds the playable hand. The template carries pattern info only,
// without groups.
func (r HandRecord) Hand() card.PlayableHand {
	t := tiles(r.ExactTiles.RequiredTiles)
	return card.PlayableHand{
		ID:       r.HandID,
		Template: r.PatternInfo.Template(),
		Tiles:    t,
		Counts:   card.CountTiles(t),
		Jokers:   r.JokerRules.Rules(),
		Suits:    r.SuitAssignments,
		Values:   r.ValueAssignments,
		Success:  r.Success,
		Note:     r.Notes,
	}
}

type Metadata struct {
	Year               int           `json:"year"`
	TotalPatterns      int           `json:"total_patterns"`
	TotalCompleteHands int           `json:"total_complete_hands"`
	GeneratedDate      string        `json:"generated_date"`
	TileFormat         string        `json:"tile_format"`
	GenerationStats    expand.Report `json:"generation_stats"`
}

type Catalog struct {
	Metadata      Metadata     `json:"metadata"`
	CompleteHands []HandRecord `json:"complete_hands"`
}

// NewCatalog assembles the catalog document for one enumeration run.
func NewCatalog(year int, res expand.Result, report expand.Report, at time.Time) Catalog {
	hands := make([]HandRecord, 0, len(res.Hands))
	for _, h := range res.Hands {
		hands = append(hands, NewHandRecord(h))
	}
	return Catalog{
		Metadata: Metadata{
			Year:               year,
			TotalPatterns:      res.Templates,
			TotalCompleteHands: len(res.Hands),
			GeneratedDate:      at.Format(time.DateOnly),
			TileFormat:         TileFormat,
			GenerationStats:    report,
		},
		CompleteHands: hands,
	}
}

func WriteCatalog(w io.Writer, c Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

func ReadCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %w", appErr.ErrInvalidCatalog, err)
	}
	return &c, nil
}

func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCatalog(f)
}

// Verify checks that the metadata and every hand's tile total agree with
// the hands in the file.
func (c *Catalog) Verify() error {
	if n := len(c.CompleteHands); c.Metadata.TotalCompleteHands != n {
		return fmt.Errorf("%w: metadata lists %d hands, file has %d",
			appErr.ErrInvalidCatalog, c.Metadata.TotalCompleteHands, n)
	}
	for _, h := range c.CompleteHands {
		if h.ExactTiles.TotalTiles != len(h.ExactTiles.RequiredTiles) {
			return fmt.Errorf("%w: hand %s has %d tiles, total_tiles says %d",
				appErr.ErrInvalidCatalog, h.HandID, len(h.ExactTiles.RequiredTiles), h.ExactTiles.TotalTiles)
		}
	}
	return nil
}

// SaveCatalog writes the catalog to path, creating parent directories.
func SaveCatalog(path string, c Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCatalog(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

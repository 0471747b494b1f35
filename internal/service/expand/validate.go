package expand

import (
	"go.uber.org/zap"

	"nmjl-service/internal/card"
)

type TileCountError struct {
	HandID    string   `json:"hand_id"`
	TileCount int      `json:"tile_count"`
	Tiles     []string `json:"tiles"`
}

type UnknownTile struct {
	HandID string `json:"hand_id"`
	Tile   string `json:"unknown_tile"`
}

// Report summarises a generated catalog. Structural problems are only found
// here, after construction.
type Report struct {
	TotalHands          int               `json:"total_hands"`
	Successful          int               `json:"successful_generations"`
	Failed              int               `json:"failed_generations"`
	PatternsRepresented int               `json:"patterns_represented"`
	TileCountErrors     []TileCountError  `json:"tile_count_errors"`
	UnknownTiles        []UnknownTile     `json:"unknown_constraints"`
	DuplicateIDs        []string          `json:"duplicate_hand_ids"`
	Skipped             []SkippedTemplate `json:"skipped_templates"`
}

// Validate checks every hand's success flag, tile count, sentinels and id
// uniqueness.
func Validate(hands []card.PlayableHand) Report {
	r := Report{
		TotalHands:      len(hands),
		TileCountErrors: []TileCountError{},
		UnknownTiles:    []UnknownTile{},
		DuplicateIDs:    []string{},
		Skipped:         []SkippedTemplate{},
	}
	patterns := make(map[string]struct{})
	seen := make(map[string]struct{}, len(hands))

	for _, h := range hands {
		patterns[h.Template.Key] = struct{}{}

		if h.Success {
			r.Successful++
		} else {
			r.Failed++
		}
		if len(h.Tiles) != card.HandSize {
			r.TileCountErrors = append(r.TileCountErrors, TileCountError{
				HandID:    h.ID,
				TileCount: len(h.Tiles),
				Tiles:     card.Strings(h.Tiles),
			})
		}
		for _, t := range h.SentinelTiles() {
			r.UnknownTiles = append(r.UnknownTiles, UnknownTile{HandID: h.ID, Tile: string(t)})
		}
		if _, dup := seen[h.ID]; dup {
			r.DuplicateIDs = append(r.DuplicateIDs, h.ID)
		}
		seen[h.ID] = struct{}{}
	}
	r.PatternsRepresented = len(patterns)
	return r
}

// ValidateResult validates the hands of res and folds in its skipped templates.
func ValidateResult(res Result) Report {
	r := Validate(res.Hands)
	r.Skipped = append(r.Skipped, res.Skipped...)
	return r
}

// Log writes the counts and the first limit offenders of each class.
func (r Report) Log(log *zap.Logger, limit int) {
	log.Info("catalog validation",
		zap.Int("totalHands", r.TotalHands),
		zap.Int("successful", r.Successful),
		zap.Int("failed", r.Failed),
		zap.Int("patterns", r.PatternsRepresented),
		zap.Int("tileCountErrors", len(r.TileCountErrors)),
		zap.Int("unknownTiles", len(r.UnknownTiles)),
		zap.Int("duplicateIDs", len(r.DuplicateIDs)),
		zap.Int("skippedTemplates", len(r.Skipped)),
	)
	for i, e := range r.TileCountErrors {
		if i >= limit {
			break
		}
		log.Warn("tile count error", zap.String("handID", e.HandID), zap.Int("tiles", e.TileCount), zap.Strings("tileList", e.Tiles))
	}
	for i, u := range r.UnknownTiles {
		if i >= limit {
			break
		}
		log.Warn("unknown tile", zap.String("handID", u.HandID), zap.String("tile", u.Tile))
	}
	for i, id := range r.DuplicateIDs {
		if i >= limit {
			break
		}
		log.Warn("duplicate hand id", zap.String("handID", id))
	}
	for i, s := range r.Skipped {
		if i >= limit {
			break
		}
		log.Warn("skipped template", zap.String("pattern", s.Key), zap.String("display", s.DisplayPattern), zap.Int("combinations", s.Total))
	}
}

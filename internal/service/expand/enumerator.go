package expand

import (
	"strconv"

	"go.uber.org/zap"

	"nmjl-service/internal/card"
)

// Enumerator expands templates into playable hands.
type Enumerator struct {
	ceiling    int
	warnAt     int
	sequential bool
	log        *zap.Logger
}

func NewEnumerator(opts ...Option) *Enumerator {
	e := &Enumerator{
		ceiling: DefaultCeiling,
		warnAt:  DefaultWarnThreshold,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SkippedTemplate is a template left for manual enumeration because its
// combination count exceeded the ceiling.
type SkippedTemplate struct {
	Key            string `json:"pattern_key"`
	DisplayPattern string `json:"display_pattern"`
	SuitCombos     int    `json:"suit_combinations"`
	ValueCombos    int    `json:"value_combinations"`
	Total          int    `json:"total_combinations"`
}

type Result struct {
	Templates int
	Hands     []card.PlayableHand
	Skipped   []SkippedTemplate
}

// Enumerate expands every template in order. A template over the ceiling
// contributes no hands and is recorded in Skipped.
func (e *Enumerator) Enumerate(templates []card.Template) Result {
	res := Result{Templates: len(templates)}
	counters := make(map[string]int)
	for _, t := range templates {
		hands, skipped := e.expand(t, counters)
		if skipped != nil {
			res.Skipped = append(res.Skipped, *skipped)
			continue
		}
		res.Hands = append(res.Hands, hands...)
	}
	return res
}

// Expand expands a single template.
func (e *Enumerator) Expand(t card.Template) ([]card.PlayableHand, *SkippedTemplate) {
	return e.expand(t, make(map[string]int))
}

func (e *Enumerator) expand(t card.Template, counters map[string]int) ([]card.PlayableHand, *SkippedTemplate) {
	suits := ExpandSuits(t.Groups)
	values := ExpandValues(t.Groups)
	total := len(suits) * len(values)

	log := e.log.With(zap.String("pattern", t.BaseID()), zap.String("display", t.DisplayPattern))
	log.Debug("expanding template",
		zap.Int("suitCombinations", len(suits)),
		zap.Int("valueCombinations", len(values)),
	)

	if total > e.ceiling {
		log.Warn("skipping template, too many combinations",
			zap.Int("total", total), zap.Int("ceiling", e.ceiling))
		return nil, &SkippedTemplate{
			Key:            t.BaseID(),
			DisplayPattern: t.DisplayPattern,
			SuitCombos:     len(suits),
			ValueCombos:    len(values),
			Total:          total,
		}
	}
	if e.warnAt > 0 && total > e.warnAt {
		log.Warn("large number of combinations", zap.Int("total", total))
	}

	hands := make([]card.PlayableHand, 0, total)
	for _, va := range values {
		for _, sa := range suits {
			h := BuildHand(t, sa, va)
			if e.sequential {
				counters[t.BaseID()]++
				h.ID = t.BaseID() + "-" + strconv.Itoa(counters[t.BaseID()])
			}
			hands = append(hands, h)
		}
	}
	return hands, nil
}

// HandID encodes a template key with its suit and value choice.
func HandID(t card.Template, sa SuitAssignment, va ValueAssignment) string {
	id := t.BaseID() + "-" + sa.Key()
	if vk := va.Key(); vk != "" {
		id += "-" + vk
	}
	return id
}

// BuildHand synthesizes one playable hand. The template is not modified.
func BuildHand(t card.Template, sa SuitAssignment, va ValueAssignment) card.PlayableHand {
	tiles := make([]card.Tile, 0, card.HandSize)
	jokers := card.JokerRules{Groups: make([]card.JokerGroup, 0, len(t.Groups))}
	success := true

	for _, g := range t.Groups {
		groupTiles, ok := GroupTiles(g, sa, va)
		tiles = append(tiles, groupTiles...)
		success = success && ok

		jokers.Groups = append(jokers.Groups, card.JokerGroup{
			GroupID:       g.ID,
			Type:          g.Type,
			JokersAllowed: g.JokersAllowed,
			Tiles:         groupTiles,
		})
		if g.JokersAllowed && !hasSentinel(groupTiles) {
			jokers.Substitutable += len(groupTiles)
		}
		if (g.Type == card.ConstraintPair || g.Type == card.ConstraintSingle) && !g.JokersAllowed {
			jokers.SinglesPairsRestricted = true
		}
	}

	if sa.TooMany > 0 {
		success = false
	}
	if len(tiles) != card.HandSize {
		success = false
	}

	note := card.NoteGenerated
	if !success {
		note = card.NoteManualReview
	}

	return card.PlayableHand{
		ID:       HandID(t, sa, va),
		Template: t,
		Tiles:    tiles,
		Counts:   card.CountTiles(tiles),
		Jokers:   jokers,
		Suits:    sa.Map(),
		Values:   va.Map(),
		Success:  success,
		Note:     note,
	}
}

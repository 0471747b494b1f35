package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"nmjl-service/internal/card"
	appErr "nmjl-service/pkg/errors"
	"nmjl-service/pkg/logger"
)

// TemplateSource supplies the current card.
type TemplateSource interface {
	Templates() []card.Template
	Version() string
}

// HandSource looks up concrete catalog hands.
type HandSource interface {
	GetHand(ctx context.Context, handID string) (*card.PlayableHand, error)
}

type Service struct {
	templates TemplateSource
	hands     HandSource
	cache     Cache
	ttl       time.Duration
}

type Suggestion struct {
	Tiles        []string    `json:"tiles"`
	HighestScore int         `json:"highest_score"`
	Candidates   []Candidate `json:"candidates"`
	Cached       bool        `json:"cached"`
}

type HandScore struct {
	HandID  string   `json:"hand_id"`
	Score   int      `json:"score"`
	Missing []string `json:"missing_tiles"`
	Trusted bool     `json:"trusted"`
}

// NewService builds a scoring service. cache may be nil.
func NewService(templates TemplateSource, hands HandSource, cache Cache, ttl time.Duration) *Service {
	return &Service{templates: templates, hands: hands, cache: cache, ttl: ttl}
}

func parseObserved(names []string) ([]card.Tile, error) {
	if len(names) == 0 || len(names) > card.HandSize {
		return nil, fmt.Errorf("%w: expected 1-%d tiles, got %d", appErr.ErrInvalidHand, card.HandSize, len(names))
	}
	tiles, err := card.ParseTiles(names)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", appErr.ErrInvalidHand, err)
	}
	return tiles, nil
}

// Suggest ranks the observed hand against every template of the card.
func (s *Service) Suggest(ctx context.Context, names []string) (*Suggestion, error) {
	tiles, err := parseObserved(names)
	if err != nil {
		return nil, err
	}
	templates := s.templates.Templates()
	if len(templates) == 0 {
		return nil, appErr.ErrTemplatesNotLoaded
	}

	observed := card.CountTiles(tiles)
	key := cacheKey(s.templates.Version(), observed)
	if s.cache != nil {
		data, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var cached Suggestion
			if err := json.Unmarshal(data, &cached); err == nil {
				cached.Tiles = card.Strings(tiles)
				cached.Cached = true
				return &cached, nil
			}
			logger.Log.Warn("discarding corrupt cached suggestion", zap.String("key", key))
		case !errors.Is(err, appErr.ErrCacheMiss):
			logger.Log.Warn("suggestion cache read failed", zap.Error(err))
		}
	}

	candidates, highest := Rank(observed, templates)
	sug := &Suggestion{
		Tiles:        card.Strings(tiles),
		HighestScore: highest,
		Candidates:   candidates,
	}

	if s.cache != nil {
		if data, err := json.Marshal(sug); err == nil {
			if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
				logger.Log.Warn("suggestion cache write failed", zap.Error(err))
			}
		}
	}
	return sug, nil
}

// ScoreAgainstHand scores the observed hand against one catalog hand.
func (s *Service) ScoreAgainstHand(ctx context.Context, names []string, handID string) (*HandScore, error) {
	tiles, err := parseObserved(names)
	if err != nil {
		return nil, err
	}
	hand, err := s.hands.GetHand(ctx, handID)
	if err != nil {
		return nil, err
	}
	observed := card.CountTiles(tiles)
	return &HandScore{
		HandID:  hand.ID,
		Score:   ScoreHand(observed, *hand),
		Missing: card.Strings(MissingTiles(observed, *hand)),
		Trusted: hand.Trusted(),
	}, nil
}

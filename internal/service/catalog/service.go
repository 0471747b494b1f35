package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"nmjl-service/internal/card"
	"nmjl-service/internal/cardfile"
	"nmjl-service/internal/model"
	"nmjl-service/internal/service/expand"
	appErr "nmjl-service/pkg/errors"
	"nmjl-service/pkg/logger"
)

const saveBatchSize = 100

// Service owns the loaded card and its persisted hand catalogs.
type Service struct {
	db   *gorm.DB
	enum *expand.Enumerator
	year int

	mu        sync.RWMutex
	path      string
	templates []card.Template
	version   string
}

// Generation is the outcome of one enumeration before or after persisting.
type Generation struct {
	Run    model.GenerationRun
	Result expand.Result
	Report expand.Report
}

type ListParams struct {
	Page       int
	Size       int
	RunID      string
	Section    string
	PatternKey string
	Success    *bool
}

type ListResult struct {
	Items []cardfile.HandRecord
	Total int64
}

// NewService wires the catalog. db may be nil for generate-only use.
func NewService(db *gorm.DB, enum *expand.Enumerator, year int) *Service {
	if enum == nil {
		enum = expand.NewEnumerator()
	}
	return &Service{db: db, enum: enum, year: year}
}

// Version hashes a card file so caches and runs can tell cards apart.
func Version(raw []byte) string {
	return strconv.FormatUint(xxhash.Sum64(raw), 16)
}

func (s *Service) LoadTemplates(path string) error {
	templates, raw, err := cardfile.LoadTemplates(path)
	if err != nil {
		return err
	}
	s.SetTemplates(templates, Version(raw))
	s.mu.Lock()
	s.path = path
	s.mu.Unlock()
	logger.Log.Info("card loaded",
		zap.String("path", path),
		zap.Int("templates", len(templates)),
		zap.String("version", s.Version()))
	return nil
}

func (s *Service) SetTemplates(templates []card.Template, version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = templates
	s.version = version
}

// Templates returns the loaded card. Callers must not modify the templates.
func (s *Service) Templates() []card.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.templates
}

func (s *Service) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Reload re-reads the card file last passed to LoadTemplates. Cards set
// directly with SetTemplates are kept as they are.
func (s *Service) Reload() error {
	s.mu.RLock()
	path := s.path
	s.mu.RUnlock()
	if path == "" {
		return nil
	}
	return s.LoadTemplates(path)
}

// Build enumerates and validates the loaded card without touching the
// database.
func (s *Service) Build() (*Generation, error) {
	s.mu.RLock()
	templates, version := s.templates, s.version
	s.mu.RUnlock()
	if len(templates) == 0 {
		return nil, appErr.ErrTemplatesNotLoaded
	}

	res := s.enum.Enumerate(templates)
	report := expand.ValidateResult(res)
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}

	return &Generation{
		Run: model.GenerationRun{
			ID:            uuid.NewString(),
			CardVersion:   version,
			Year:          s.year,
			TotalPatterns: res.Templates,
			TotalHands:    report.TotalHands,
			Successful:    report.Successful,
			Failed:        report.Failed,
			SkippedCount:  len(res.Skipped),
			ReportJSON:    datatypes.JSON(reportJSON),
			CreatedAt:     time.Now(),
		},
		Result: res,
		Report: report,
	}, nil
}

// Catalog renders the generation as a catalog document.
func (g *Generation) Catalog() cardfile.Catalog {
	return cardfile.NewCatalog(g.Run.Year, g.Result, g.Report, g.Run.CreatedAt)
}

func handRow(runID string, h card.PlayableHand) (model.PlayableHand, error) {
	rec := cardfile.NewHandRecord(h)
	tiles, err := json.Marshal(rec.ExactTiles.RequiredTiles)
	if err != nil {
		return model.PlayableHand{}, err
	}
	counts, err := json.Marshal(rec.ExactTiles.TileCounts)
	if err != nil {
		return model.PlayableHand{}, err
	}
	jokers, err := json.Marshal(rec.JokerRules)
	if err != nil {
		return model.PlayableHand{}, err
	}
	suits, err := json.Marshal(rec.SuitAssignments)
	if err != nil {
		return model.PlayableHand{}, err
	}
	values, err := json.Marshal(rec.ValueAssignments)
	if err != nil {
		return model.PlayableHand{}, err
	}
	info := rec.PatternInfo
	return model.PlayableHand{
		RunID:          runID,
		HandID:         rec.HandID,
		Section:        info.Section,
		Line:           info.Line,
		PatternID:      info.PatternID,
		PatternKey:     info.PatternKey,
		DisplayPattern: info.DisplayPattern,
		Description:    info.Description,
		Points:         info.Points,
		Difficulty:     info.Difficulty,
		Concealed:      info.Concealed,
		TilesJSON:      datatypes.JSON(tiles),
		CountsJSON:     datatypes.JSON(counts),
		JokerJSON:      datatypes.JSON(jokers),
		SuitsJSON:      datatypes.JSON(suits),
		ValuesJSON:     datatypes.JSON(values),
		TotalTiles:     rec.ExactTiles.TotalTiles,
		Success:        rec.Success,
		Note:           rec.Notes,
	}, nil
}

func handRecord(row model.PlayableHand) (cardfile.HandRecord, error) {
	rec := cardfile.HandRecord{
		HandID: row.HandID,
		PatternInfo: cardfile.PatternInfo{
			Section:        row.Section,
			Line:           row.Line,
			PatternID:      row.PatternID,
			PatternKey:     row.PatternKey,
			DisplayPattern: row.DisplayPattern,
			Description:    row.Description,
			Points:         row.Points,
			Difficulty:     row.Difficulty,
			Concealed:      row.Concealed,
		},
		ExactTiles: cardfile.ExactTiles{TotalTiles: row.TotalTiles},
		Success:    row.Success,
		Notes:      row.Note,
	}
	columns := []struct {
		data datatypes.JSON
		dst  interface{}
	}{
		{row.TilesJSON, &rec.ExactTiles.RequiredTiles},
		{row.CountsJSON, &rec.ExactTiles.TileCounts},
		{row.JokerJSON, &rec.JokerRules},
		{row.SuitsJSON, &rec.SuitAssignments},
		{row.ValuesJSON, &rec.ValueAssignments},
	}
	for _, c := range columns {
		if len(c.data) == 0 {
			continue
		}
		if err := json.Unmarshal(c.data, c.dst); err != nil {
			return cardfile.HandRecord{}, err
		}
	}
	return rec, nil
}

// Save persists a generation in one transaction.
func (s *Service) Save(ctx context.Context, gen *Generation) error {
	rows := make([]model.PlayableHand, 0, len(gen.Result.Hands))
	for _, h := range gen.Result.Hands {
		row, err := handRow(gen.Run.ID, h)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	skipped := make([]model.SkippedTemplate, 0, len(gen.Result.Skipped))
	for _, sk := range gen.Result.Skipped {
		skipped = append(skipped, model.SkippedTemplate{
			RunID:          gen.Run.ID,
			PatternKey:     sk.Key,
			DisplayPattern: sk.DisplayPattern,
			SuitCombos:     sk.SuitCombos,
			ValueCombos:    sk.ValueCombos,
			Total:          sk.Total,
		})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&gen.Run).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, saveBatchSize).Error; err != nil {
				return err
			}
		}
		if len(skipped) > 0 {
			if err := tx.Create(&skipped).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Generate builds the loaded card and persists the run.
func (s *Service) Generate(ctx context.Context) (*Generation, error) {
	gen, err := s.Build()
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, gen); err != nil {
		return nil, err
	}
	logger.Log.Info("catalog generated",
		zap.String("runId", gen.Run.ID),
		zap.Int("hands", gen.Run.TotalHands),
		zap.Int("failed", gen.Run.Failed),
		zap.Int("skipped", gen.Run.SkippedCount))
	return gen, nil
}

func (s *Service) LatestRun(ctx context.Context) (*model.GenerationRun, error) {
	var run model.GenerationRun
	err := s.db.WithContext(ctx).Order("created_at DESC").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErr.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *Service) resolveRun(ctx context.Context, runID string) (string, error) {
	if runID != "" {
		return runID, nil
	}
	run, err := s.LatestRun(ctx)
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

// ListHands pages through one run's hands, the latest run by default.
func (s *Service) ListHands(ctx context.Context, params ListParams) (*ListResult, error) {
	page, size := params.Page, params.Size
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	runID, err := s.resolveRun(ctx, params.RunID)
	if err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Model(&model.PlayableHand{}).Where("run_id = ?", runID)
	if section := strings.TrimSpace(params.Section); section != "" {
		query = query.Where("section = ?", section)
	}
	if key := strings.TrimSpace(params.PatternKey); key != "" {
		query = query.Where("pattern_key = ?", key)
	}
	if params.Success != nil {
		query = query.Where("success = ?", *params.Success)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	items := []cardfile.HandRecord{}
	if total > 0 {
		var rows []model.PlayableHand
		offset := (page - 1) * size
		if err := query.
			Order("id ASC").
			Limit(size).
			Offset(offset).
			Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			rec, err := handRecord(row)
			if err != nil {
				return nil, err
			}
			items = append(items, rec)
		}
	}

	return &ListResult{Items: items, Total: total}, nil
}

// GetHandRecord finds a hand of the latest run by hand id.
func (s *Service) GetHandRecord(ctx context.Context, handID string) (*cardfile.HandRecord, error) {
	runID, err := s.resolveRun(ctx, "")
	if err != nil {
		return nil, err
	}
	var row model.PlayableHand
	err = s.db.WithContext(ctx).
		Where("run_id = ? AND hand_id = ?", runID, handID).
		Order("id ASC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErr.ErrHandNotFound
	}
	if err != nil {
		return nil, err
	}
	rec, err := handRecord(row)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetHand satisfies scoring.HandSource.
func (s *Service) GetHand(ctx context.Context, handID string) (*card.PlayableHand, error) {
	rec, err := s.GetHandRecord(ctx, handID)
	if err != nil {
		return nil, err
	}
	h := rec.Hand()
	return &h, nil
}

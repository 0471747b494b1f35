package service

import (
	"context"
	"errors"
	"time"

	"nmjl-service/internal/config"
	"nmjl-service/internal/service/admin"
	"nmjl-service/internal/service/catalog"
	"nmjl-service/internal/service/expand"
	"nmjl-service/internal/service/scoring"
	appErr "nmjl-service/pkg/errors"
	"nmjl-service/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Container struct {
	Admin   *admin.Service
	Catalog *catalog.Service
	Scoring *scoring.Service
}

// EnumeratorOptions maps the card config onto enumerator options.
func EnumeratorOptions(conf config.CardConfig) []expand.Option {
	opts := []expand.Option{expand.WithLogger(logger.Log.Named("expand"))}
	if conf.Ceiling > 0 {
		opts = append(opts, expand.WithCeiling(conf.Ceiling))
	}
	if conf.WarnThreshold > 0 {
		opts = append(opts, expand.WithWarnThreshold(conf.WarnThreshold))
	}
	if conf.SequentialIDs {
		opts = append(opts, expand.WithSequentialIDs())
	}
	return opts
}

func NewContainer(db *gorm.DB, rdb *redis.Client) *Container {
	conf := config.GlobalConfig
	cat := catalog.NewService(db, expand.NewEnumerator(EnumeratorOptions(conf.Card)...), conf.Card.Year)

	var cache scoring.Cache
	if rdb != nil {
		cache = scoring.NewRedisCache(rdb)
	}
	ttl := time.Duration(conf.Scoring.CacheTTLSeconds) * time.Second

	return &Container{
		Admin:   admin.NewService(db),
		Catalog: cat,
		Scoring: scoring.NewService(cat, cat, cache, ttl),
	}
}

// Start seeds the curator account, loads the card and generates a catalog
// when the latest run was built from a different card.
func (c *Container) Start(ctx context.Context) error {
	if err := c.Admin.EnsureDefaultAdmin(ctx); err != nil {
		return err
	}
	path := config.GlobalConfig.Card.TemplatesPath
	if path == "" {
		logger.Log.Warn("card.templatesPath not configured; scoring disabled until a card is loaded")
		return nil
	}
	if err := c.Catalog.LoadTemplates(path); err != nil {
		return err
	}

	run, err := c.Catalog.LatestRun(ctx)
	switch {
	case errors.Is(err, appErr.ErrRunNotFound):
	case err != nil:
		return err
	case run.CardVersion == c.Catalog.Version():
		logger.Log.Info("catalog up to date", zap.String("runId", run.ID))
		return nil
	}
	_, err = c.Catalog.Generate(ctx)
	return err
}

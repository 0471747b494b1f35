// Command cardgen expands a card file into its catalog of playable hands.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"nmjl-service/internal/cardfile"
	"nmjl-service/internal/config"
	"nmjl-service/internal/repo"
	"nmjl-service/internal/service"
	"nmjl-service/internal/service/catalog"
	"nmjl-service/internal/service/expand"
	"nmjl-service/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	var (
		configPath string
		in         string
		out        string
		persist    bool
		verify     bool
		sequential bool
		ceiling    int
	)
	flag.StringVar(&configPath, "config", "", "optional config file")
	flag.StringVar(&in, "in", "", "card template file (defaults to card.templatesPath)")
	flag.StringVar(&out, "out", "", "catalog output file (defaults to card.catalogPath)")
	flag.BoolVar(&persist, "persist", false, "also store the run in the configured database")
	flag.BoolVar(&verify, "verify", false, "read the written catalog back and check it")
	flag.BoolVar(&sequential, "sequential", false, "number hands per pattern instead of encoding choices")
	flag.IntVar(&ceiling, "ceiling", 0, "override the combination ceiling")
	flag.Parse()

	if configPath != "" {
		config.LoadConfig(configPath)
	} else {
		config.GlobalConfig = config.Default()
	}
	conf := config.GlobalConfig
	if in != "" {
		conf.Card.TemplatesPath = in
	}
	if out != "" {
		conf.Card.CatalogPath = out
	}
	if sequential {
		conf.Card.SequentialIDs = true
	}
	if ceiling > 0 {
		conf.Card.Ceiling = ceiling
	}

	logger.InitLogger(conf.Server.Mode)
	defer logger.Sync()

	if err := run(context.Background(), conf, persist, verify); err != nil {
		logger.Log.Error("cardgen failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, conf *config.Config, persist, verify bool) error {
	if conf.Card.TemplatesPath == "" {
		return fmt.Errorf("no card file: pass -in or set card.templatesPath")
	}

	enum := expand.NewEnumerator(service.EnumeratorOptions(conf.Card)...)
	var db *gorm.DB
	if persist {
		repo.InitDB()
		db = repo.DB
	}
	cat := catalog.NewService(db, enum, conf.Card.Year)
	if err := cat.LoadTemplates(conf.Card.TemplatesPath); err != nil {
		return err
	}

	gen, err := cat.Build()
	if err != nil {
		return err
	}
	gen.Report.Log(logger.Log, conf.Card.ReportLimit)

	if conf.Card.CatalogPath != "" {
		if err := cardfile.SaveCatalog(conf.Card.CatalogPath, gen.Catalog()); err != nil {
			return err
		}
		logger.Log.Info("catalog written", zap.String("path", conf.Card.CatalogPath))
		if verify {
			if err := verifyCatalog(conf.Card.CatalogPath, gen.Run.TotalHands); err != nil {
				return err
			}
		}
	}
	if persist {
		if err := cat.Save(ctx, gen); err != nil {
			return err
		}
		logger.Log.Info("run stored", zap.String("runId", gen.Run.ID))
	}
	return nil
}

func verifyCatalog(path string, want int) error {
	c, err := cardfile.LoadCatalog(path)
	if err != nil {
		return err
	}
	if err := c.Verify(); err != nil {
		return err
	}
	if got := len(c.CompleteHands); got != want {
		return fmt.Errorf("catalog %s has %d hands, generated %d", path, got, want)
	}
	logger.Log.Info("catalog verified", zap.String("path", path), zap.Int("hands", want))
	return nil
}

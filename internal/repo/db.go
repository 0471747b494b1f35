package repo

import (
	"fmt"
	"strings"

	"nmjl-service/internal/config"
	"nmjl-service/internal/model"
	"nmjl-service/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Models is every table the service migrates.
var Models = []interface{}{
	&model.Admin{},
	&model.GenerationRun{},
	&model.PlayableHand{},
	&model.SkippedTemplate{},
}

func dialector(conf config.DatabaseConfig) (gorm.Dialector, error) {
	switch strings.ToLower(conf.Driver) {
	case "", "postgres", "postgresql":
		return postgres.Open(conf.DSN), nil
	case "mysql":
		return mysql.Open(conf.DSN), nil
	case "sqlite", "sqlite3":
		return sqlite.Open(conf.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Driver)
	}
}

// Open connects with the configured driver and migrates Models.
func Open(conf config.DatabaseConfig) (*gorm.DB, error) {
	d, err := dialector(conf)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(d, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func InitDB() {
	var err error
	DB, err = Open(config.GlobalConfig.Database)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database",
			zap.String("driver", config.GlobalConfig.Database.Driver),
			zap.Error(err),
		)
	}
}

package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig    `mapstructure:"server"`
	Database DatabaseConfig  `mapstructure:"database"`
	Redis    RedisConfig     `mapstructure:"redis"`
	JWT      JWTConfig       `mapstructure:"jwt"`
	Admin    AdminSeedConfig `mapstructure:"admin"`
	Card     CardConfig      `mapstructure:"card"`
	Scoring  ScoringConfig   `mapstructure:"scoring"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres, mysql, sqlite
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Expire int    `mapstructure:"expire"` // hours
}

type AdminSeedConfig struct {
	DefaultUsername string `mapstructure:"defaultUsername"`
	DefaultPassword string `mapstructure:"defaultPassword"`
}

type CardConfig struct {
	TemplatesPath string `mapstructure:"templatesPath"`
	CatalogPath   string `mapstructure:"catalogPath"`
	Year          int    `mapstructure:"year"`
	Ceiling       int    `mapstructure:"ceiling"`
	WarnThreshold int    `mapstructure:"warnThreshold"`
	SequentialIDs bool   `mapstructure:"sequentialIds"`
	ReportLimit   int    `mapstructure:"reportLimit"` // issues printed per class
}

type ScoringConfig struct {
	CacheTTLSeconds int `mapstructure:"cacheTTLSeconds"`
}

var GlobalConfig *Config

var envReplacer = strings.NewReplacer(".", "_")

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("jwt.expire", 24)
	v.SetDefault("card.year", 2025)
	v.SetDefault("card.ceiling", 100)
	v.SetDefault("card.warnThreshold", 50)
	v.SetDefault("card.reportLimit", 5)
	v.SetDefault("scoring.cacheTTLSeconds", 600)
}

// Load reads a yaml config file. Environment variables such as
// NMJL_DATABASE_DSN override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("nmjl")
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in defaults without reading a file.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode defaults, %v", err)
	}
	return &cfg
}

func LoadConfig(path string) {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}
	GlobalConfig = cfg
}

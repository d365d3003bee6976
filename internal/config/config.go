package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	StoreNone   = "none"
	StoreFile   = "file"
	StoreSqlite = "sqlite"
)

type Config struct {
	Env    string `validate:"oneof=development production"`
	Log    LogConfig
	Solver SolverConfig
	Store  StoreConfig
}

type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json console"`
}

// SolverConfig selects the oracle backend and its time budget
type SolverConfig struct {
	Backend   string        `validate:"required"`
	TimeLimit time.Duration `validate:"gt=0"`
	CbcPath   string
}

// StoreConfig selects where solved runs are archived
type StoreConfig struct {
	Kind string `validate:"oneof=none file sqlite"`
	Path string `validate:"required_unless=Kind none"`
}

// Load reads the configuration from the given env file, or from .env when path is empty.
// Environment variables override file values and a missing default file is not an error
func Load(path string) (*Config, error) {
	file := path
	if file == "" {
		file = ".env"
	}
	values, err := godotenv.Read(file)
	if err != nil && (path != "" || !errors.Is(err, os.ErrNotExist)) {
		return nil, fmt.Errorf("cannot load %v: %w", file, err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	// File values sit between defaults and the environment
	for key, value := range values {
		v.SetDefault(key, value)
	}

	cfg := &Config{}
	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
		Format: strings.ToLower(v.GetString("LOG_FORMAT")),
	}

	timeLimit, err := time.ParseDuration(v.GetString("SOLVER_TIME_LIMIT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SOLVER_TIME_LIMIT: %w", err)
	}
	cfg.Solver = SolverConfig{
		Backend:   strings.ToLower(v.GetString("SOLVER_BACKEND")),
		TimeLimit: timeLimit,
		CbcPath:   v.GetString("SOLVER_CBC_PATH"),
	}

	cfg.Store = StoreConfig{
		Kind: strings.ToLower(v.GetString("STORE_KIND")),
		Path: v.GetString("STORE_PATH"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags of the configuration
func (cfg *Config) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SOLVER_BACKEND", "gophersat")
	v.SetDefault("SOLVER_TIME_LIMIT", "5m")
	v.SetDefault("SOLVER_CBC_PATH", "cbc")

	v.SetDefault("STORE_KIND", StoreNone)
	v.SetDefault("STORE_PATH", "")
}

package main

import (
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/plain"
)

// Environment variables override the config file. A .env file in the
// working directory is loaded first and never overrides the real
// environment.
const (
	envLogLevel  = "PLAINDUMP_LOG_LEVEL"
	envLogFormat = "PLAINDUMP_LOG_FORMAT"
	envFloats    = "PLAINDUMP_FLOATS"
)

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

type Config struct {
	Log    LogConfig `yaml:"log"`
	Floats string    `yaml:"floats"` // withheld or allowed

	floatPolicy plain.FloatPolicy
	level       zapcore.Level
}

func defaultConfig() Config {
	return Config{
		Log:    LogConfig{Level: "warn", Format: "console"},
		Floats: "withheld",
	}
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	if v, ok := os.LookupEnv(envLogLevel); ok {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv(envLogFormat); ok {
		cfg.Log.Format = v
	}
	if v, ok := os.LookupEnv(envFloats); ok {
		cfg.Floats = v
	}

	var err error
	if cfg.level, err = zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return nil, errors.Wrap(err, "log.level")
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "console", "json":
	default:
		return nil, errors.Errorf("log.format: unknown format %q", cfg.Log.Format)
	}
	if cfg.floatPolicy, err = plain.ParseFloatPolicy(cfg.Floats); err != nil {
		return nil, errors.Wrap(err, "floats")
	}
	return &cfg, nil
}

func newLogger(cfg *Config) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if strings.EqualFold(cfg.Log.Format, "json") {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(cfg.level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

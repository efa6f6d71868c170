package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port string
	// AdminToken guards the admin endpoints; empty disables them.
	AdminToken string
	Log     LogConfig
	Roster  RosterConfig
	Drill   DrillConfig
	Metrics MetricsConfig
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string
	Format string
}

// RosterConfig controls where season rosters come from and how they are cached.
type RosterConfig struct {
	Source          string
	DataDir         string
	DefaultYear     int
	RefreshInterval time.Duration
	CacheYears      int
}

// DrillConfig tunes the drill question generator.
type DrillConfig struct {
	MaxAttempts int
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port: defaultPort,
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Roster: RosterConfig{
			Source:          defaultRosterSource,
			DataDir:         defaultDataDir,
			DefaultYear:     defaultYear,
			RefreshInterval: defaultRefreshInterval,
			CacheYears:      defaultCacheYears,
		},
		Drill:   DrillConfig{MaxAttempts: defaultDrillAttempts},
		Metrics: defaultMetrics(),
	}
}

// Load builds the configuration: defaults, then the optional YAML file named by CONFIG_FILE,
// then environment variables. Only a broken config file is an error; bad env values fall back.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv(envConfigFile); path != "" {
		file, err := readFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := file.validate(); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		cfg = file.apply(cfg)
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	cfg.Port = envOrDefault(envPort, cfg.Port)
	cfg.AdminToken = envOrDefault(envAdminToken, cfg.AdminToken)
	cfg.Log.Level = envOrDefault(envLogLevel, cfg.Log.Level)
	cfg.Log.Format = envOrDefault(envLogFormat, cfg.Log.Format)
	cfg.Roster = loadRoster(cfg.Roster)
	cfg.Drill.MaxAttempts = intEnvOrDefault(envDrillAttempts, cfg.Drill.MaxAttempts)
	cfg.Metrics = loadMetrics(cfg.Metrics)
	return cfg
}

func loadRoster(base RosterConfig) RosterConfig {
	source := envOrDefault(envRosterSource, base.Source)
	if source != SourceFixture && source != SourceFS {
		source = base.Source
	}
	return RosterConfig{
		Source:          source,
		DataDir:         envOrDefault(envDataDir, base.DataDir),
		DefaultYear:     intEnvOrDefault(envDefaultYear, base.DefaultYear),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, base.RefreshInterval),
		CacheYears:      intEnvOrDefault(envCacheYears, base.CacheYears),
	}
}

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML config file. Pointer and empty fields mean "not set".
type fileConfig struct {
	Port       string `yaml:"port"`
	AdminToken string `yaml:"admin_token"`
	Log        struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Roster struct {
		Source          string `yaml:"source"`
		DataDir         string `yaml:"data_dir"`
		DefaultYear     *int   `yaml:"default_year"`
		RefreshInterval string `yaml:"refresh_interval"`
		CacheYears      *int   `yaml:"cache_years"`
	} `yaml:"roster"`
	Drill struct {
		MaxAttempts *int `yaml:"max_attempts"`
	} `yaml:"drill"`
	Metrics struct {
		Enabled      *bool  `yaml:"enabled"`
		Port         string `yaml:"port"`
		OtlpEndpoint string `yaml:"otlp_endpoint"`
		ServiceName  string `yaml:"service_name"`
		OtlpInsecure *bool  `yaml:"otlp_insecure"`
	} `yaml:"metrics"`
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// validate checks semantic constraints, collecting every problem.
func (fc fileConfig) validate() error {
	var errs []string

	if s := fc.Roster.Source; s != "" && s != SourceFixture && s != SourceFS {
		errs = append(errs, "roster.source must be one of: fixture, fs")
	}
	if fc.Roster.DefaultYear != nil && *fc.Roster.DefaultYear <= 0 {
		errs = append(errs, "roster.default_year must be > 0")
	}
	if fc.Roster.RefreshInterval != "" {
		if _, ok := parsePositiveDuration(fc.Roster.RefreshInterval); !ok {
			errs = append(errs, "roster.refresh_interval must be a positive duration")
		}
	}
	if fc.Roster.CacheYears != nil && *fc.Roster.CacheYears <= 0 {
		errs = append(errs, "roster.cache_years must be >= 1")
	}
	if fc.Drill.MaxAttempts != nil && *fc.Drill.MaxAttempts <= 0 {
		errs = append(errs, "drill.max_attempts must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// apply overlays the set fields of fc on cfg. Call validate first.
func (fc fileConfig) apply(cfg Config) Config {
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.AdminToken != "" {
		cfg.AdminToken = fc.AdminToken
	}
	if fc.Log.Level != "" {
		cfg.Log.Level = fc.Log.Level
	}
	if fc.Log.Format != "" {
		cfg.Log.Format = fc.Log.Format
	}

	if fc.Roster.Source != "" {
		cfg.Roster.Source = fc.Roster.Source
	}
	if fc.Roster.DataDir != "" {
		cfg.Roster.DataDir = fc.Roster.DataDir
	}
	if fc.Roster.DefaultYear != nil {
		cfg.Roster.DefaultYear = *fc.Roster.DefaultYear
	}
	if d, ok := parsePositiveDuration(fc.Roster.RefreshInterval); ok {
		cfg.Roster.RefreshInterval = d
	}
	if fc.Roster.CacheYears != nil {
		cfg.Roster.CacheYears = *fc.Roster.CacheYears
	}
	if fc.Drill.MaxAttempts != nil {
		cfg.Drill.MaxAttempts = *fc.Drill.MaxAttempts
	}

	if fc.Metrics.Enabled != nil {
		cfg.Metrics.Enabled = *fc.Metrics.Enabled
	}
	if fc.Metrics.Port != "" {
		cfg.Metrics.Port = fc.Metrics.Port
	}
	if fc.Metrics.OtlpEndpoint != "" {
		cfg.Metrics.OtlpEndpoint = fc.Metrics.OtlpEndpoint
	}
	if fc.Metrics.ServiceName != "" {
		cfg.Metrics.ServiceName = fc.Metrics.ServiceName
	}
	if fc.Metrics.OtlpInsecure != nil {
		cfg.Metrics.OtlpInsecure = *fc.Metrics.OtlpInsecure
	}
	return cfg
}

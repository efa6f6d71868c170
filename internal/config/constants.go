package config

import "time"

const (
	envConfigFile      = "CONFIG_FILE"
	envPort            = "PORT"
	envAdminToken      = "ADMIN_TOKEN"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envRosterSource    = "ROSTER_SOURCE"
	envDataDir         = "DATA_DIR"
	envDefaultYear     = "DEFAULT_YEAR"
	envRefreshInterval = "ROSTER_REFRESH_INTERVAL"
	envCacheYears      = "ROSTER_CACHE_YEARS"
	envDrillAttempts   = "DRILL_MAX_ATTEMPTS"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort         = "4000"
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultRosterSource = SourceFixture
	defaultDataDir      = "data"
	defaultYear         = 2025
	// Rosters change a few times a season; a slow refresh keeps the default year warm.
	defaultRefreshInterval = 5 * time.Minute
	defaultCacheYears      = 8
	defaultDrillAttempts   = 10
	defaultMetricsPort     = "9090"
	defaultServiceName     = "sebango-service"
)

// Roster source names.
const (
	SourceFixture = "fixture"
	SourceFS      = "fs"
)

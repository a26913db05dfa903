package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabaseMySQL    = "mysql"
	DatabaseMemory   = "memory"
)

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	SessionSalt      string
	ProbePolicy      string
	ConflictStrategy string
	MaxWriteRetries  int
	StoreTimeout     time.Duration
	SessionTTL       time.Duration
	Env              string
	ConfigFile       string
	AllowedOrigins   []string
}

// LoadDotEnv loads a .env file into the environment if one exists.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// ParseFlags reads flags, then falls back to the environment (and an
// optional config file), then to defaults.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var port, retries int
	var storeTimeout, sessionTTL, corsOrigins string

	fs := flag.NewFlagSet("party-vote", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres, mysql or memory)")
	fs.StringVar(&cfg.ConfigFile, "c", "", "Config file (yaml, json or toml)")

	// Sync behaviour
	fs.StringVar(&cfg.ProbePolicy, "probe", "", "Connectivity probe window (session or view)")
	fs.StringVar(&cfg.ConflictStrategy, "conflict", "", "Remote write strategy (replace or optimistic)")
	fs.IntVar(&retries, "retries", -1, "Max retries for a conflicted optimistic write")
	fs.StringVar(&storeTimeout, "store-timeout", "", "Timeout per record store call")
	fs.StringVar(&sessionTTL, "session-ttl", "", "Idle time before a session is dropped")
	fs.StringVar(&cfg.Env, "env", "", "Environment (development or production)")
	fs.StringVar(&corsOrigins, "cors-origins", "", "Comma-separated origins allowed to call the API from a browser")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSalt, "session-salt", "", "Session cookie salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3318)
	v.SetDefault("database_type", DatabaseSQLite)
	v.SetDefault("probe_policy", "session")
	v.SetDefault("conflict_strategy", "optimistic")
	v.SetDefault("max_write_retries", 3)
	v.SetDefault("store_timeout", "5s")
	v.SetDefault("session_ttl", "12h")
	v.SetDefault("app_env", "production")

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = v.GetString("config_file")
	}
	if cfg.ConfigFile != "" {
		v.SetConfigFile(cfg.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", cfg.ConfigFile, err)
		}
	}

	// Fall back to environment variables
	var err error
	if port == 0 {
		if port, err = strconv.Atoi(v.GetString("port")); err != nil {
			return Config{}, errors.New("invalid PORT env variable")
		}
	}
	cfg.Port = port

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = v.GetString("database_type")
	}
	switch cfg.DatabaseType {
	case DatabaseSQLite, DatabasePostgres, DatabaseMySQL, DatabaseMemory:
	default:
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = v.GetString("database_url")
	}
	if cfg.DatabaseURL == "" {
		switch cfg.DatabaseType {
		case DatabaseSQLite:
			cfg.DatabaseURL = "file:party.db"
		case DatabaseMemory:
		default:
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	}

	if cfg.ProbePolicy == "" {
		cfg.ProbePolicy = v.GetString("probe_policy")
	}
	if cfg.ProbePolicy != "session" && cfg.ProbePolicy != "view" {
		return Config{}, fmt.Errorf("invalid probe policy %q (session or view)", cfg.ProbePolicy)
	}

	if cfg.ConflictStrategy == "" {
		cfg.ConflictStrategy = v.GetString("conflict_strategy")
	}
	if cfg.ConflictStrategy != "replace" && cfg.ConflictStrategy != "optimistic" {
		return Config{}, fmt.Errorf("invalid conflict strategy %q (replace or optimistic)", cfg.ConflictStrategy)
	}

	if retries < 0 {
		if retries, err = strconv.Atoi(v.GetString("max_write_retries")); err != nil || retries < 0 {
			return Config{}, errors.New("invalid MAX_WRITE_RETRIES env variable")
		}
	}
	cfg.MaxWriteRetries = retries

	if storeTimeout == "" {
		storeTimeout = v.GetString("store_timeout")
	}
	if cfg.StoreTimeout, err = time.ParseDuration(storeTimeout); err != nil {
		return Config{}, fmt.Errorf("invalid store timeout %q: %w", storeTimeout, err)
	}

	if sessionTTL == "" {
		sessionTTL = v.GetString("session_ttl")
	}
	if cfg.SessionTTL, err = time.ParseDuration(sessionTTL); err != nil || cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("invalid session TTL %q", sessionTTL)
	}

	if cfg.Env == "" {
		cfg.Env = v.GetString("app_env")
	}

	if corsOrigins == "" {
		corsOrigins = v.GetString("cors_origins")
	}
	if cfg.AllowedOrigins, err = parseOrigins(corsOrigins); err != nil {
		return Config{}, err
	}

	// Secrets - MUST be provided
	if cfg.SessionSalt == "" {
		cfg.SessionSalt = v.GetString("session_salt")
	}
	if cfg.SessionSalt == "" {
		return Config{}, errors.New("SESSION_SALT required")
	}

	return cfg, nil
}

// parseOrigins splits a comma-separated origin list. A wildcard is refused
// because session cookies ride on cross-origin requests.
func parseOrigins(list string) ([]string, error) {
	var origins []string
	for _, o := range strings.Split(list, ",") {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if o == "*" {
			return nil, errors.New("CORS_ORIGINS must list explicit origins, not *")
		}
		origins = append(origins, strings.TrimSuffix(o, "/"))
	}
	return origins, nil
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "mealtrack/internal/platform/errors"
)

const (
	DefaultBaseURL  = "http://localhost:8800/api"
	DefaultTimeout  = 10 * time.Second
	DefaultLogLevel = "info"

	envPrefix = "MEALTRACK_"
)

type Config struct {
	Home            string
	BaseURL         string
	Timeout         time.Duration
	LogLevel        string
	ReconcileTotals bool

	// UserID and Token override the stored credentials when set.
	UserID string
	Token  string

	DBPath          string
	CredentialsPath string
	LogPath         string
	JournalDir      string
}

type fileConfig struct {
	BaseURL         string `yaml:"base_url"`
	Timeout         string `yaml:"timeout"`
	LogLevel        string `yaml:"log_level"`
	ReconcileTotals *bool  `yaml:"reconcile_totals"`
	JournalDir      string `yaml:"journal_dir"`
}

// DefaultHome is ~/.mealtrack, or ./.mealtrack when no home directory exists.
func DefaultHome() string {
	dir, err := os.UserHomeDir()
	if err != nil || dir == "" {
		return ".mealtrack"
	}
	return filepath.Join(dir, ".mealtrack")
}

// New layers defaults, <home>/config.yaml, <home>/.env and the process
// environment, in that order of increasing precedence.
func New(home string) (Config, error) {
	if strings.TrimSpace(home) == "" {
		return Config{}, fmt.Errorf("home directory is required: %w", apperrors.ErrInvalidInput)
	}
	cfg := Config{
		Home:            home,
		BaseURL:         DefaultBaseURL,
		Timeout:         DefaultTimeout,
		LogLevel:        DefaultLogLevel,
		DBPath:          filepath.Join(home, "mealtrack.db"),
		CredentialsPath: filepath.Join(home, "credentials.json"),
		LogPath:         filepath.Join(home, "mealtrack.log"),
		JournalDir:      filepath.Join(home, "journal"),
	}

	file, err := readFile(filepath.Join(home, "config.yaml"))
	if err != nil {
		return Config{}, err
	}
	dotenv, err := readDotenv(filepath.Join(home, ".env"))
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			return v, true
		}
		v, ok := dotenv[envPrefix+key]
		return v, ok
	}

	if file.BaseURL != "" {
		cfg.BaseURL = file.BaseURL
	}
	if file.Timeout != "" {
		if cfg.Timeout, err = parseTimeout(file.Timeout); err != nil {
			return Config{}, err
		}
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.ReconcileTotals != nil {
		cfg.ReconcileTotals = *file.ReconcileTotals
	}
	if file.JournalDir != "" {
		cfg.JournalDir = resolve(home, file.JournalDir)
	}

	if v, ok := lookup("BASE_URL"); ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := lookup("TIMEOUT"); ok && v != "" {
		if cfg.Timeout, err = parseTimeout(v); err != nil {
			return Config{}, err
		}
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup("RECONCILE_TOTALS"); ok && v != "" {
		b, parseErr := strconv.ParseBool(v)
		if parseErr != nil {
			return Config{}, fmt.Errorf("reconcile totals %q: %w", v, apperrors.ErrInvalidInput)
		}
		cfg.ReconcileTotals = b
	}
	if v, ok := lookup("USER_ID"); ok {
		cfg.UserID = strings.TrimSpace(v)
	}
	if v, ok := lookup("TOKEN"); ok {
		cfg.Token = strings.TrimSpace(v)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	return cfg, nil
}

func (c Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base url %q must be an absolute http(s) url: %w", c.BaseURL, apperrors.ErrInvalidInput)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("unknown log level %q: %w", c.LogLevel, apperrors.ErrInvalidInput)
	}
	return nil
}

func readFile(path string) (fileConfig, error) {
	out := fileConfig{}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return out, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode config %s: %w", path, err)
	}
	return out, nil
}

func readDotenv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

func parseTimeout(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("timeout %q must be a positive duration: %w", raw, apperrors.ErrInvalidInput)
	}
	return d, nil
}

func resolve(home, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(home, path)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend names accepted by Config.Backend.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds all runtime configuration.
type Config struct {
	// Backend selects the persistence port implementation.
	// Values: "sqlite", "redis", "memory"
	Backend string

	// DBPath is the SQLite file. Empty means the default XDG location.
	DBPath string

	RedisAddr string

	// Prefix namespaces every persisted record, one per course.
	Prefix string

	// LogMode is "dev" or "prod".
	LogMode string

	// LogFile receives logs while the TUI owns the terminal. Empty
	// discards TUI logs; command-line subcommands log to stderr.
	LogFile string

	// CoursePath points at a course manifest (.yaml or .xlsx). Optional.
	CoursePath string

	// NotifyChannel is the Redis pub/sub channel that receives item-rated
	// events. Empty disables fan-out.
	NotifyChannel string

	Timer TimerConfig
}

// TimerConfig holds the defaults for new timed practice sessions.
type TimerConfig struct {
	FocusMinutes          int
	BreakMinutes          int
	LongBreakMinutes      int
	CyclesBeforeLongBreak int

	// RemindEvery is the period of the due-items reminder job. Zero disables it.
	RemindEvery time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend: BackendSQLite,
		Prefix:  "drill",
		LogMode: "dev",
		Timer: TimerConfig{
			FocusMinutes:          25,
			BreakMinutes:          5,
			LongBreakMinutes:      15,
			CyclesBeforeLongBreak: 4,
		},
	}
}

// Load reads an optional .env file and then builds a Config from the
// environment. A missing .env file is not an error.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from DRILL_* environment variables, falling back
// to defaults for unset values.
func FromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("DRILL_BACKEND"); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("DRILL_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("DRILL_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("DRILL_PREFIX"); v != "" {
		cfg.Prefix = v
	}
	if v := os.Getenv("DRILL_LOG_MODE"); v != "" {
		cfg.LogMode = v
	}
	if v := os.Getenv("DRILL_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("DRILL_COURSE"); v != "" {
		cfg.CoursePath = v
	}
	if v := os.Getenv("DRILL_NOTIFY_CHANNEL"); v != "" {
		cfg.NotifyChannel = v
	}

	cfg.Timer.FocusMinutes = envInt("DRILL_FOCUS_MINUTES", cfg.Timer.FocusMinutes)
	cfg.Timer.BreakMinutes = envInt("DRILL_BREAK_MINUTES", cfg.Timer.BreakMinutes)
	cfg.Timer.LongBreakMinutes = envInt("DRILL_LONG_BREAK_MINUTES", cfg.Timer.LongBreakMinutes)
	cfg.Timer.CyclesBeforeLongBreak = envInt("DRILL_CYCLES_BEFORE_LONG_BREAK", cfg.Timer.CyclesBeforeLongBreak)
	if v := os.Getenv("DRILL_REMIND_EVERY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timer.RemindEvery = d
		}
	}

	return cfg
}

// Validate checks that the selected backend has what it needs and the
// timer settings are usable.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("DRILL_REDIS_ADDR is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	if strings.TrimSpace(c.Prefix) == "" {
		return fmt.Errorf("prefix must not be empty")
	}
	if c.NotifyChannel != "" && c.RedisAddr == "" {
		return fmt.Errorf("DRILL_NOTIFY_CHANNEL requires DRILL_REDIS_ADDR")
	}
	t := c.Timer
	if t.FocusMinutes <= 0 {
		return fmt.Errorf("focus minutes must be positive, got %d", t.FocusMinutes)
	}
	if t.BreakMinutes < 0 || t.LongBreakMinutes < 0 {
		return fmt.Errorf("break minutes must not be negative")
	}
	if t.CyclesBeforeLongBreak <= 0 {
		return fmt.Errorf("cycles before long break must be positive, got %d", t.CyclesBeforeLongBreak)
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. DRILL_DB environment variable
// 2. $XDG_DATA_HOME/drill/drill.db
// 3. ~/.local/share/drill/drill.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("DRILL_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "drill", "drill.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func envInt(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

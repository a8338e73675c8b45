package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/config"
	"github.com/abhisek/drill/internal/course"
	"github.com/abhisek/drill/internal/logger"
	"github.com/abhisek/drill/internal/notify"
	"github.com/abhisek/drill/internal/phase"
	"github.com/abhisek/drill/internal/screens"
	"github.com/abhisek/drill/internal/store"
)

// env is everything a command needs, opened from config and flags.
type env struct {
	cfg     config.Config
	log     *logger.Logger
	port    *store.Namespaced
	docs    *store.Docs
	course  *course.Course
	bus     *notify.Bus
	channel *notify.RedisChannel
	deps    screens.Deps

	closers []io.Closer
}

type envOptions struct {
	// tui routes logs to the configured log file instead of stderr.
	tui bool
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}

	overrides := map[string]*string{
		"db":      &cfg.DBPath,
		"backend": &cfg.Backend,
		"prefix":  &cfg.Prefix,
		"course":  &cfg.CoursePath,
	}
	for name, dst := range overrides {
		if v, _ := cmd.Flags().GetString(name); v != "" {
			*dst = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config, o envOptions) (*logger.Logger, error) {
	if !o.tui {
		return logger.New(cfg.LogMode)
	}
	if cfg.LogFile == "" {
		return logger.Nop(), nil
	}
	if err := config.EnsureDir(cfg.LogFile); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return logger.NewTo(cfg.LogMode, cfg.LogFile)
}

// openEnv opens the configured backend and wires the scheduling services.
// Callers must call close.
func openEnv(cmd *cobra.Command, o envOptions) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg, o)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	e := &env{cfg: cfg, log: log}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	inner, err := e.openPort(ctx)
	if err != nil {
		e.close()
		return nil, err
	}
	e.port = store.WithPrefix(inner, cfg.Prefix)
	e.docs = store.NewDocs(e.port, log)

	if cfg.CoursePath != "" {
		c, err := course.Load(cfg.CoursePath)
		if err != nil {
			e.close()
			return nil, err
		}
		e.course = c
	}

	busOpts := []notify.Option{notify.WithLogger(log)}
	if cfg.NotifyChannel != "" {
		rdb, err := store.NewRedis(ctx, cfg.RedisAddr)
		if err != nil {
			e.close()
			return nil, fmt.Errorf("connect notify channel: %w", err)
		}
		e.closers = append(e.closers, rdb)
		e.channel, err = notify.NewRedisChannel(rdb.Client(), cfg.NotifyChannel, log)
		if err != nil {
			e.close()
			return nil, err
		}
		busOpts = append(busOpts, notify.WithForwarder(e.channel))
	}
	e.bus = notify.New(busOpts...)

	wireOpts := screens.Options{
		Bus: e.bus,
		Log: log,
		Timer: phase.Settings{
			FocusMinutes:          cfg.Timer.FocusMinutes,
			BreakMinutes:          cfg.Timer.BreakMinutes,
			LongBreakMinutes:      cfg.Timer.LongBreakMinutes,
			CyclesBeforeLongBreak: cfg.Timer.CyclesBeforeLongBreak,
		},
	}
	if n, _ := cmd.Flags().GetInt("size"); n > 0 {
		wireOpts.QueueSize = n
	}
	if m, _ := cmd.Flags().GetString("module"); m != "" {
		if e.course == nil {
			e.close()
			return nil, errors.New("--module needs a course (--course or DRILL_COURSE)")
		}
		wireOpts.Filter = e.course.ModuleFilter(m)
	}
	e.deps = screens.Wire(ctx, e.docs, e.course, wireOpts)
	return e, nil
}

func (e *env) openPort(ctx context.Context) (store.Port, error) {
	switch e.cfg.Backend {
	case config.BackendMemory:
		return store.NewMemory(), nil
	case config.BackendRedis:
		r, err := store.NewRedis(ctx, e.cfg.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		e.closers = append(e.closers, r)
		return r, nil
	default:
		path := e.cfg.DBPath
		if path == "" {
			p, err := config.DefaultDBPath()
			if err != nil {
				return nil, fmt.Errorf("resolve DB path: %w", err)
			}
			path = p
		} else if err := config.EnsureDir(path); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		e.closers = append(e.closers, st)
		e.log.Debug("store opened", "path", path)
		return st, nil
	}
}

func (e *env) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			e.log.Warn("close failed", "error", err)
		}
	}
	e.closers = nil
	e.log.Sync()
}

// withEnv opens the env for a command body and closes it afterwards.
func withEnv(cmd *cobra.Command, fn func(e *env) error) error {
	e, err := openEnv(cmd, envOptions{})
	if err != nil {
		return err
	}
	defer e.close()
	return fn(e)
}

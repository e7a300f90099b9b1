package executor

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Environment variables read by Default.
const (
	EnvWorkers     = "GXHASH_WORKERS"
	EnvQueueSize   = "GXHASH_QUEUE_SIZE"
	EnvMemoryLimit = "GXHASH_MEMORY_LIMIT"
)

// Config holds runtime settings. The zero value is usable.
type Config struct {
	// Workers is the number of worker goroutines. 0 means GOMAXPROCS.
	Workers int

	// QueueSize is the number of jobs that can wait for a worker.
	// 0 means 4 per worker.
	QueueSize int

	// MemoryLimitBytes caps the bytes held by owned copies of caller
	// buffers. 0 means unlimited.
	MemoryLimitBytes int64

	// IOLimitBytesPerSec throttles stream draining that uses the runtime's
	// controller. 0 means unlimited.
	IOLimitBytesPerSec int64

	// Logger receives worker panics. nil discards.
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.QueueSize == 0 {
		c.QueueSize = 4 * c.Workers
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Validate reports settings New would reject.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("%w: queue size must not be negative, got %d", ErrInvalidConfig, c.QueueSize)
	}
	if c.MemoryLimitBytes < 0 {
		return fmt.Errorf("%w: memory limit must not be negative, got %d", ErrInvalidConfig, c.MemoryLimitBytes)
	}
	if c.IOLimitBytesPerSec < 0 {
		return fmt.Errorf("%w: io limit must not be negative, got %d", ErrInvalidConfig, c.IOLimitBytesPerSec)
	}
	return nil
}

// ConfigFromEnv returns base with any GXHASH_* overrides applied.
func ConfigFromEnv(base Config) (Config, error) {
	return configFromLookup(base, os.LookupEnv)
}

func configFromLookup(base Config, lookup func(string) (string, bool)) (Config, error) {
	cfg := base

	if v, ok := lookup(EnvWorkers); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvWorkers, v, err)
		}
		cfg.Workers = n
	}

	if v, ok := lookup(EnvQueueSize); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvQueueSize, v, err)
		}
		cfg.QueueSize = n
	}

	if v, ok := lookup(EnvMemoryLimit); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvMemoryLimit, v, err)
		}
		cfg.MemoryLimitBytes = n
	}

	return cfg, nil
}

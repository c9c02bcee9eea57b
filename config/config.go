package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
)

type Config struct {
	Addr    string // HTTP listen address
	DSN     string // PostgreSQL connection string; empty keeps tables in memory
	Workers int    // Batch job workers
}

func Load() Config {
	cfg, err := LoadFrom(os.Getenv)
	if err != nil {
		// Fall back to defaults rather than refusing to start
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
	}
	return cfg
}

// LoadFrom reads configuration through getenv. On a malformed value the
// default is kept and the error returned alongside.
func LoadFrom(getenv func(string) string) (Config, error) {
	cfg := Config{
		Addr:    ":8080",
		DSN:     getenv("HUFFCODES_DSN"),
		Workers: DefaultWorkers(),
	}
	if addr := getenv("HUFFCODES_ADDR"); addr != "" {
		cfg.Addr = addr
	} else if port := getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if w := getenv("HUFFCODES_WORKERS"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil || n < 1 {
			return cfg, fmt.Errorf("HUFFCODES_WORKERS=%q is not a positive integer", w)
		}
		cfg.Workers = n
	}
	return cfg, nil
}

// DefaultWorkers leaves some CPUs spare on big machines.
func DefaultWorkers() int {
	n := runtime.NumCPU()
	if n > 4 {
		n -= 2 // Some spare for the OS
	}
	return n
}

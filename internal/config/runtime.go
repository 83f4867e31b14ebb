package config

import (
	"os"
	"strconv"
	"time"
)

type Runtime struct {
	HTTPAddr        string
	VerifyWorkers   int
	VerifyMaxChecks int
	VerifyTimeout   time.Duration
	SolverTimeout   time.Duration
	CacheMaxItems   int
	ObsBuffer       int
}

func Load() Runtime {
	return Runtime{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		VerifyWorkers:   getenvInt("VERIFY_WORKERS", 4, 1),
		VerifyMaxChecks: getenvInt("VERIFY_MAX_CHECKS", 100_000, 1),
		VerifyTimeout:   getenvMillis("VERIFY_TIMEOUT_MS", 30_000),
		SolverTimeout:   getenvMillis("SOLVER_TIMEOUT_MS", 2_000),
		CacheMaxItems:   getenvInt("VERIFY_CACHE_MAX_ITEMS", 1024, 1),
		ObsBuffer:       getenvInt("VERIFY_OBS_BUFFER", 4096, 1),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback, min int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return fallback
	}
	return v
}

func getenvMillis(key string, fallbackMillis int) time.Duration {
	return time.Duration(getenvInt(key, fallbackMillis, 1)) * time.Millisecond
}

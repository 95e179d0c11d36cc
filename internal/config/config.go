package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	BackendURL     string
	BackendTimeout time.Duration
	CacheTTL       time.Duration
	LogFile        string
}

func Load() Config {
	// Local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	backend := os.Getenv("BACKEND_URL")
	if backend == "" {
		backend = "http://localhost:8080/api"
	}
	timeout := duration("BACKEND_TIMEOUT", 10*time.Second)
	ttl := duration("CACHE_TTL", 30*time.Second)
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{Port: port, BackendURL: backend, BackendTimeout: timeout, CacheTTL: ttl, LogFile: logFile}
	log.Printf("[config] PORT=%s BACKEND_URL=%s BACKEND_TIMEOUT=%s CACHE_TTL=%s LOG_FILE=%s",
		cfg.Port, cfg.BackendURL, cfg.BackendTimeout, cfg.CacheTTL, cfg.LogFile)
	return cfg
}

func duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[config] bad %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

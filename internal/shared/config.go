package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	Backend        string // apper | mysql | memory
	ApperBase      string
	ApperProjectID string
	ApperPublicKey string
	ApperRPS       int
	MySQLDSN       string
	SeedFile       string

	RedisAddr       string
	RedisDB         int
	RedisPass       string
	ConfirmationTTL time.Duration

	UnavailableProbability float64
	CORSOrigins            []string
	SyncWorkers            int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not read .env")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),

		Backend:        strings.ToLower(env("BACKEND", "apper")),
		ApperBase:      env("APPER_BASE_URL", "https://api.apper.io/v1"),
		ApperProjectID: env("APPER_PROJECT_ID", ""),
		ApperPublicKey: env("APPER_PUBLIC_KEY", ""),
		ApperRPS:       atoi("APPER_RPS", 10),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/stayhub?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		SeedFile:       env("SEED_FILE", ""),

		RedisAddr:       env("REDIS_ADDR", ""),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		ConfirmationTTL: time.Duration(atoi("CONFIRMATION_TTL_HOURS", 24*30)) * time.Hour,

		UnavailableProbability: envFloat("UNAVAILABLE_PROBABILITY", 0.1),
		CORSOrigins:            splitList(env("CORS_ORIGINS", "*")),
		SyncWorkers:            atoi("SYNC_WORKERS", 8),
	}
	if c.Backend == "apper" && (c.ApperProjectID == "" || c.ApperPublicKey == "") {
		log.Warn().Msg("APPER_PROJECT_ID or APPER_PUBLIC_KEY is empty")
	}
	if c.UnavailableProbability < 0 || c.UnavailableProbability > 1 {
		log.Warn().Float64("value", c.UnavailableProbability).Msg("UNAVAILABLE_PROBABILITY out of [0,1], using 0.1")
		c.UnavailableProbability = 0.1
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

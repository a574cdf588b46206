package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	applog "apparelstock/internal/log"
)

// ErrMissingStoreConfig is returned when the store URL or key is unset.
var ErrMissingStoreConfig = errors.New("config: STORE_URL and STORE_KEY must both be set")

type Config struct {
	Port              string
	StoreURL          string
	StoreKey          string
	LogFile           string
	AllowedTags       []string
	AllowedCategories []string
	CORSOrigins       string
}

// Load reads the process environment, after merging an optional .env file
// from the working directory. Variables already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		applog.Security(nil, "config.dotenv.fail", map[string]any{"err": err.Error()})
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an env lookup function.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Config{
		Port:              get("PORT", "3001"),
		StoreURL:          get("STORE_URL", ""),
		StoreKey:          get("STORE_KEY", ""),
		LogFile:           get("LOG_FILE", ""),
		AllowedTags:       splitList(get("ALLOWED_TAGS", "")),
		AllowedCategories: splitList(get("ALLOWED_CATEGORIES", "")),
		CORSOrigins:       get("CORS_ORIGINS", "*"),
	}
	if cfg.StoreURL == "" || cfg.StoreKey == "" {
		return Config{}, ErrMissingStoreConfig
	}

	applog.Info(nil, "config.load", map[string]any{
		"port":               cfg.Port,
		"store_scheme":       scheme(cfg.StoreURL),
		"log_file":           cfg.LogFile,
		"allowed_tags":       cfg.AllowedTags,
		"allowed_categories": cfg.AllowedCategories,
		"cors_origins":       cfg.CORSOrigins,
	})
	return cfg, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// scheme keeps credentials out of the startup log.
func scheme(url string) string {
	if i := strings.Index(url, ":"); i > 0 {
		return url[:i]
	}
	return url
}

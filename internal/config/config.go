package config

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const DefaultOutputPath = "img/steam-profile-showcase.svg"

type Config struct {
	Vanity         string
	SteamID        string
	APIKey         string
	OutputPath     string
	CachePath      string
	WriteCachePath string
	HistoryDBPath  string
	APIBase        string
	LogLevel       string
}

// Load parses CLI flags, with .env and environment variables as the
// fallback for the credential. Flags win over the environment.
func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	vanity := fs.String("vanity", "", "Steam vanity URL handle")
	steamID := fs.String("steamid", "", "SteamID64 (skips vanity resolution)")
	apiKey := fs.String("api-key", "", "Steam Web API key (falls back to STEAM_API_KEY env var)")
	output := fs.String("output", DefaultOutputPath, "path to write the SVG output")
	cachePath := fs.String("cache", "", "cache JSON to read when the API is unavailable")
	writeCache := fs.String("write-cache", "", "path to write fetched data for offline reuse")
	history := fs.String("history", "", "optional sqlite database to append profile snapshots to")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, err
	}

	cfg := &Config{
		Vanity:         *vanity,
		SteamID:        *steamID,
		APIKey:         *apiKey,
		OutputPath:     *output,
		CachePath:      *cachePath,
		WriteCachePath: *writeCache,
		HistoryDBPath:  *history,
		APIBase:        getEnv("STEAM_API_BASE", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("STEAM_API_KEY")
	}

	logger.Info().
		Str("vanity", cfg.Vanity).
		Str("steamid", cfg.SteamID).
		Bool("api_key_present", cfg.APIKey != "").
		Str("output", cfg.OutputPath).
		Str("cache", cfg.CachePath).
		Str("write_cache", cfg.WriteCachePath).
		Str("history", cfg.HistoryDBPath).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)

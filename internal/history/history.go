package history

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"steam-showcase/internal/config"
	"steam-showcase/internal/constants"
	"steam-showcase/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Recorder appends one profile snapshot per run to a local sqlite
// database. Without --history the recorder is a no-op.
type Recorder struct {
	db     *sql.DB
	logger zerolog.Logger
}

func New(cfg *config.Config, logger zerolog.Logger) (*Recorder, error) {
	if cfg.HistoryDBPath == "" {
		return &Recorder{logger: logger}, nil
	}

	logger.Info().Str("path", cfg.HistoryDBPath).Msg("opening history database")

	db, err := sql.Open("sqlite3", cfg.HistoryDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	db.SetMaxOpenConns(constants.DBMaxOpenConns)
	db.SetMaxIdleConns(constants.DBMaxIdleConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)

	if err := runMigrations(db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Recorder{db: db, logger: logger}, nil
}

func runMigrations(db *sql.DB, logger zerolog.Logger) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	logger.Debug().Msg("history migrations completed")
	return nil
}

func (r *Recorder) Enabled() bool {
	return r.db != nil
}

// Record appends a snapshot row with the full profile payload. Callers
// treat failures as warnings; the archive never blocks rendering.
func (r *Recorder) Record(ctx context.Context, profile *domain.Profile) error {
	if r.db == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate nanoid: %w", err)
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot payload: %w", err)
	}

	var level sql.NullInt64
	if profile.Level != nil {
		level = sql.NullInt64{Int64: int64(*profile.Level), Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profile_snapshots (id, steamid, personaname, personastate, level, payload, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, profile.SteamID, profile.PersonaName, profile.PersonaState, level, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile snapshot: %w", err)
	}

	r.logger.Debug().Str("id", id).Str("steamid", profile.SteamID).Msg("profile snapshot recorded")
	return nil
}

func (r *Recorder) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

var Module = fx.Provide(New)

package constants

import "time"

const (
	ExternalAPITimeout = 15 * time.Second
	RunTimeout         = 2 * time.Minute
)

const (
	BadgeHighlightLimit = 3
	RecentGamesLimit    = 3
)

const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 1 * time.Hour
	DatabaseTimeout   = 5 * time.Second
)

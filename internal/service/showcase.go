package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"steam-showcase/internal/api"
	"steam-showcase/internal/cache"
	"steam-showcase/internal/config"
	"steam-showcase/internal/constants"
	"steam-showcase/internal/domain"
	"steam-showcase/internal/history"
	"steam-showcase/internal/render"

	"github.com/rs/zerolog"
)

type ShowcaseService struct {
	cfg     *config.Config
	steam   *api.SteamClient
	history *history.Recorder
	logger  zerolog.Logger
}

func NewShowcaseService(cfg *config.Config, steam *api.SteamClient, recorder *history.Recorder, logger zerolog.Logger) *ShowcaseService {
	return &ShowcaseService{cfg: cfg, steam: steam, history: recorder, logger: logger}
}

// Run executes one showcase generation: live fetch when possible,
// cache fallback otherwise, then render and write the SVG.
func (s *ShowcaseService) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RunTimeout)
	defer cancel()

	var profile *domain.Profile

	if s.cfg.APIKey != "" {
		p, err := s.fetchLive(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("api fetch failed")
		} else {
			profile = p
		}
	} else {
		s.logger.Debug().Msg("no api key available, skipping live fetch")
	}

	if profile == nil {
		if s.cfg.CachePath == "" {
			return errors.New("api fetch failed and no cache provided")
		}
		p, err := cache.Load(s.cfg.CachePath)
		if err != nil {
			return err
		}
		s.logger.Info().Str("path", s.cfg.CachePath).Msg("loaded profile from cache")
		profile = p
	}

	if s.cfg.WriteCachePath != "" {
		if err := cache.Save(profile, s.cfg.WriteCachePath); err != nil {
			return err
		}
		s.logger.Info().Str("path", s.cfg.WriteCachePath).Msg("profile cache written")
	}

	if s.history.Enabled() {
		if err := s.history.Record(ctx, profile); err != nil {
			s.logger.Warn().Err(err).Msg("failed to record profile snapshot")
		}
	}

	svg := render.Card(profile, time.Now().UTC())

	if dir := filepath.Dir(s.cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(s.cfg.OutputPath, []byte(svg+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write svg output: %w", err)
	}

	s.logger.Info().
		Str("steamid", profile.SteamID).
		Str("personaname", profile.PersonaName).
		Str("output", s.cfg.OutputPath).
		Msg("showcase written")
	return nil
}

// fetchLive resolves the handle if needed and assembles a full profile
// from the Steam Web API. Any mandatory-call failure aborts the whole
// attempt; only the avatar fetch is allowed to fail silently.
func (s *ShowcaseService) fetchLive(ctx context.Context) (*domain.Profile, error) {
	steamID := s.cfg.SteamID
	if steamID == "" {
		if s.cfg.Vanity == "" {
			return nil, errors.New("a vanity handle or steamid must be provided when using the API")
		}
		resolveCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
		defer cancel()

		resolved, err := s.steam.ResolveVanity(resolveCtx, s.cfg.Vanity)
		if err != nil {
			return nil, err
		}
		s.logger.Debug().Str("vanity", s.cfg.Vanity).Str("steamid", resolved).Msg("vanity resolved")
		steamID = resolved
	}

	summaryCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()
	summary, err := s.steam.GetPlayerSummary(summaryCtx, steamID)
	if err != nil {
		return nil, err
	}

	levelCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()
	level, err := s.steam.GetSteamLevel(levelCtx, steamID)
	if err != nil {
		return nil, err
	}

	badgeCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()
	badges, err := s.steam.GetBadges(badgeCtx, steamID)
	if err != nil {
		return nil, err
	}

	recentCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()
	games, err := s.steam.GetRecentlyPlayedGames(recentCtx, steamID, constants.RecentGamesLimit)
	if err != nil {
		return nil, err
	}

	avatarCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()
	avatarDataURI := s.steam.FetchAvatarDataURI(avatarCtx, summary.AvatarFull)
	if avatarDataURI == "" {
		s.logger.Debug().Str("url", summary.AvatarFull).Msg("avatar embedding skipped")
	}

	return assembleProfile(steamID, summary, level, badges, games, avatarDataURI), nil
}

func assembleProfile(steamID string, summary *api.PlayerSummary, level *int, badges []api.BadgeEntry, games []api.RecentGameEntry, avatarDataURI string) *domain.Profile {
	profile := &domain.Profile{
		SteamID:           summary.SteamID,
		PersonaName:       summary.PersonaName,
		ProfileURL:        summary.ProfileURL,
		AvatarFull:        summary.AvatarFull,
		PersonaState:      summary.PersonaState,
		PersonaStateFlags: summary.PersonaStateFlags,
		Level:             level,
		BadgeHighlights:   []domain.BadgeHighlight{},
		RecentGames:       []domain.RecentGame{},
	}
	if profile.SteamID == "" {
		profile.SteamID = steamID
	}
	if profile.PersonaName == "" {
		profile.PersonaName = "Unknown"
	}
	if profile.ProfileURL == "" {
		profile.ProfileURL = fmt.Sprintf("https://steamcommunity.com/profiles/%s", steamID)
	}
	if avatarDataURI != "" {
		profile.AvatarDataURI = &avatarDataURI
	}
	if summary.RealName != "" {
		profile.RealName = &summary.RealName
	}
	if summary.LocCountryCode != "" {
		profile.LocCountryCode = &summary.LocCountryCode
	}
	if summary.TimeCreated != 0 {
		profile.TimeCreated = &summary.TimeCreated
	}
	if summary.LastLogoff != 0 {
		profile.LastLogoff = &summary.LastLogoff
	}

	for _, badge := range badges {
		if len(profile.BadgeHighlights) == constants.BadgeHighlightLimit {
			break
		}
		name := badge.Name
		if name == "" {
			name = badge.Description
		}
		if name == "" {
			name = "Badge"
		}
		profile.BadgeHighlights = append(profile.BadgeHighlights, domain.BadgeHighlight{Name: name, Level: badge.Level})
	}

	for _, game := range games {
		name := game.Name
		if name == "" {
			name = "Unknown"
		}
		profile.RecentGames = append(profile.RecentGames, domain.RecentGame{Name: name, Playtime2Weeks: game.Playtime2Weeks})
	}

	return profile
}

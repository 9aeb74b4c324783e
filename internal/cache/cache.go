package cache

import (
	"encoding/json"
	"fmt"
	"os"

	"steam-showcase/internal/domain"
)

// Save writes every raw profile field to path as indented JSON,
// overwriting any existing file. Badge and recent-game lists are stored
// in full; truncation only happens at fetch assembly and at render.
func Save(profile *domain.Profile, path string) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile cache: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write profile cache: %w", err)
	}
	return nil
}

// Load reads a cached profile back, applying the same defaults the
// fetcher applies so a sparse cache file still yields a renderable
// profile. Never touches the network.
func Load(path string) (*domain.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile cache: %w", err)
	}

	var profile domain.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile cache %s: %w", path, err)
	}

	applyDefaults(&profile)
	return &profile, nil
}

func applyDefaults(p *domain.Profile) {
	if p.PersonaName == "" {
		p.PersonaName = "Unknown"
	}
	if p.ProfileURL == "" {
		p.ProfileURL = "https://steamcommunity.com"
	}
	if p.BadgeHighlights == nil {
		p.BadgeHighlights = []domain.BadgeHighlight{}
	}
	for i := range p.BadgeHighlights {
		if p.BadgeHighlights[i].Name == "" {
			p.BadgeHighlights[i].Name = "Badge"
		}
	}
	if p.RecentGames == nil {
		p.RecentGames = []domain.RecentGame{}
	}
	for i := range p.RecentGames {
		if p.RecentGames[i].Name == "" {
			p.RecentGames[i].Name = "Unknown"
		}
	}
}

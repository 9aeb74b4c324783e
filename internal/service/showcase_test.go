package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"steam-showcase/internal/api"
	"steam-showcase/internal/cache"
	"steam-showcase/internal/domain"
	"steam-showcase/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCacheToCardOfflineStatus(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	raw := map[string]any{
		"steamid":      "76561198000000000",
		"personaname":  "gordon",
		"profileurl":   "https://steamcommunity.com/id/gordon/",
		"avatarfull":   "",
		"personastate": 0,
		"lastlogoff":   now.Add(-2 * time.Hour).Unix(),
	}
	data, err := json.Marshal(raw)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	profile, err := cache.Load(path)
	require.NoError(t, err)

	svg := render.Card(profile, now)
	assert.Contains(t, svg, "Offline (2h ago)")
}

func TestAssembleProfileBadgeNameFallback(t *testing.T) {
	summary := &api.PlayerSummary{
		SteamID:      "76561198000000000",
		PersonaName:  "gordon",
		ProfileURL:   "https://steamcommunity.com/id/gordon/",
		PersonaState: 1,
	}
	badges := []api.BadgeEntry{
		{Name: "Years of Service", Level: intPtr(10)},
		{Description: "Described only"},
		{},
		{Name: "Dropped by truncation"},
	}

	profile := assembleProfile("76561198000000000", summary, nil, badges, nil, "")

	require.Len(t, profile.BadgeHighlights, 3)
	assert.Equal(t, "Years of Service", profile.BadgeHighlights[0].Name)
	assert.Equal(t, "Described only", profile.BadgeHighlights[1].Name)
	assert.Equal(t, "Badge", profile.BadgeHighlights[2].Name)
}

func TestAssembleProfileDefaults(t *testing.T) {
	summary := &api.PlayerSummary{SteamID: "", PersonaName: "", ProfileURL: ""}
	games := []api.RecentGameEntry{{Name: "", Playtime2Weeks: 0}}

	profile := assembleProfile("76561198000000001", summary, nil, nil, games, "")

	assert.Equal(t, "76561198000000001", profile.SteamID)
	assert.Equal(t, "Unknown", profile.PersonaName)
	assert.Equal(t, "https://steamcommunity.com/profiles/76561198000000001", profile.ProfileURL)
	require.Len(t, profile.RecentGames, 1)
	assert.Equal(t, "Unknown", profile.RecentGames[0].Name)
	assert.Equal(t, 0, profile.RecentGames[0].Playtime2Weeks)
	assert.Nil(t, profile.Level)
	assert.Nil(t, profile.AvatarDataURI)
	assert.Empty(t, profile.BadgeHighlights)
}

func TestAssembleProfileOptionalFields(t *testing.T) {
	flags := 512
	summary := &api.PlayerSummary{
		SteamID:           "76561198000000000",
		PersonaName:       "gordon",
		ProfileURL:        "https://steamcommunity.com/id/gordon/",
		AvatarFull:        "https://avatars.steamstatic.com/full.jpg",
		RealName:          "Gordon Freeman",
		LocCountryCode:    "US",
		TimeCreated:       1325376000,
		LastLogoff:        1700000000,
		PersonaState:      1,
		PersonaStateFlags: &flags,
	}
	level := 42

	profile := assembleProfile("76561198000000000", summary, &level, nil, nil, "data:image/jpeg;base64,AAAA")

	require.NotNil(t, profile.RealName)
	assert.Equal(t, "Gordon Freeman", *profile.RealName)
	require.NotNil(t, profile.LocCountryCode)
	assert.Equal(t, "US", *profile.LocCountryCode)
	require.NotNil(t, profile.TimeCreated)
	assert.Equal(t, int64(1325376000), *profile.TimeCreated)
	require.NotNil(t, profile.LastLogoff)
	require.NotNil(t, profile.PersonaStateFlags)
	assert.Equal(t, 512, *profile.PersonaStateFlags)
	require.NotNil(t, profile.Level)
	assert.Equal(t, 42, *profile.Level)
	require.NotNil(t, profile.AvatarDataURI)
	assert.Equal(t, "data:image/jpeg;base64,AAAA", *profile.AvatarDataURI)
}

func TestWriteCachePreservesFullLists(t *testing.T) {
	profile := &domain.Profile{
		SteamID:         "76561198000000000",
		PersonaName:     "gordon",
		ProfileURL:      "https://steamcommunity.com/id/gordon/",
		BadgeHighlights: []domain.BadgeHighlight{},
		RecentGames:     []domain.RecentGame{},
	}
	for i := 0; i < 5; i++ {
		profile.BadgeHighlights = append(profile.BadgeHighlights, domain.BadgeHighlight{Name: fmt.Sprintf("Badge %d", i)})
		profile.RecentGames = append(profile.RecentGames, domain.RecentGame{Name: fmt.Sprintf("Game %d", i), Playtime2Weeks: i * 10})
	}

	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, cache.Save(profile, path))

	loaded, err := cache.Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded.BadgeHighlights, 5)
	assert.Len(t, loaded.RecentGames, 5)
}

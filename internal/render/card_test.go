package render

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"steam-showcase/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func baseProfile() *domain.Profile {
	return &domain.Profile{
		SteamID:     "76561198000000000",
		PersonaName: "gordon",
		ProfileURL:  "https://steamcommunity.com/id/gordon/",
		AvatarFull:  "https://avatars.steamstatic.com/full.jpg",
	}
}

func TestCardPlaceholdersWhenListsEmpty(t *testing.T) {
	svg := Card(baseProfile(), time.Now().UTC())

	assert.Equal(t, 1, strings.Count(svg, "No recent games"))
	assert.Equal(t, 1, strings.Count(svg, "Collector"))
}

func TestCardTruncatesToThree(t *testing.T) {
	p := baseProfile()
	for _, name := range []string{"One", "Two", "Three", "Four", "Five"} {
		p.RecentGames = append(p.RecentGames, domain.RecentGame{Name: name, Playtime2Weeks: 60})
		p.BadgeHighlights = append(p.BadgeHighlights, domain.BadgeHighlight{Name: "Badge " + name})
	}
	svg := Card(p, time.Now().UTC())

	assert.Contains(t, svg, "Three — 1h")
	assert.NotContains(t, svg, "Four — 1h")
	assert.Contains(t, svg, "Badge Three")
	assert.NotContains(t, svg, "Badge Four")
}

func TestCardEscapesUserText(t *testing.T) {
	p := baseProfile()
	p.PersonaName = `<b>"evil" & friends</b>`
	p.RecentGames = []domain.RecentGame{{Name: "Game <&> One", Playtime2Weeks: 5}}
	p.BadgeHighlights = []domain.BadgeHighlight{{Name: `Badge "quoted"`}}

	svg := Card(p, time.Now().UTC())

	assert.NotContains(t, svg, `<b>`)
	assert.Contains(t, svg, "&lt;b&gt;&#34;evil&#34; &amp; friends&lt;/b&gt;")
	assert.Contains(t, svg, "Game &lt;&amp;&gt; One")
	assert.Contains(t, svg, "Badge &#34;quoted&#34;")

	// Output must stay well-formed markup.
	require.NoError(t, xml.Unmarshal([]byte(svg), new(struct{})))
}

func TestCardOfflineStatusWithLastSeen(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	p := baseProfile()
	p.PersonaState = 0
	p.LastLogoff = int64Ptr(now.Add(-2 * time.Hour).Unix())

	svg := Card(p, now)
	assert.Contains(t, svg, "Offline (2h ago)")
}

func TestCardOnlineStatusIgnoresLastSeen(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	p := baseProfile()
	p.PersonaState = 1
	p.LastLogoff = int64Ptr(now.Add(-2 * time.Hour).Unix())

	svg := Card(p, now)
	assert.Contains(t, svg, ">Online<")
	assert.NotContains(t, svg, "2h ago")
}

func TestCardBadgeLevelSuffix(t *testing.T) {
	p := baseProfile()
	p.BadgeHighlights = []domain.BadgeHighlight{
		{Name: "Years of Service", Level: intPtr(10)},
		{Name: "Zero Level", Level: intPtr(0)},
		{Name: "No Level"},
	}

	svg := Card(p, time.Now().UTC())
	assert.Contains(t, svg, "Years of Service · Lv10")
	assert.Contains(t, svg, ">Zero Level<")
	assert.NotContains(t, svg, "Zero Level · Lv0")
	assert.NotContains(t, svg, "No Level · Lv")
}

func TestCardAvatarFallsBackToPlaceholder(t *testing.T) {
	svg := Card(baseProfile(), time.Now().UTC())
	assert.Contains(t, svg, DefaultAvatarDataURI)

	embedded := "data:image/png;base64,AAAA"
	p := baseProfile()
	p.AvatarDataURI = &embedded
	svg = Card(p, time.Now().UTC())
	assert.Contains(t, svg, embedded)
	assert.NotContains(t, svg, DefaultAvatarDataURI)
}

func TestCardInfoLine(t *testing.T) {
	p := baseProfile()
	p.RealName = strPtr("Gordon Freeman")
	p.LocCountryCode = strPtr("US")
	p.TimeCreated = int64Ptr(time.Date(2012, time.January, 15, 0, 0, 0, 0, time.UTC).Unix())
	p.Level = intPtr(42)

	svg := Card(p, time.Now().UTC())
	assert.Contains(t, svg, "Gordon Freeman")
	assert.Contains(t, svg, domain.CountryFlag("US"))
	assert.Contains(t, svg, "Member since Jan 2012")
	assert.Contains(t, svg, "Level 42")

	svg = Card(baseProfile(), time.Now().UTC())
	assert.Contains(t, svg, "Level hidden")
}

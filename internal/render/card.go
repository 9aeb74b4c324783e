package render

import (
	"encoding/base64"
	"fmt"
	"html"
	"strings"
	"text/template"
	"time"

	"steam-showcase/internal/constants"
	"steam-showcase/internal/domain"
)

const defaultAvatarSVG = `<svg xmlns='http://www.w3.org/2000/svg' width='88' height='88' viewBox='0 0 88 88'>
  <defs>
    <linearGradient id='avatarGradient' x1='0' y1='0' x2='1' y2='1'>
      <stop offset='0%' stop-color='#1B2838'/>
      <stop offset='100%' stop-color='#3C9BD6'/>
    </linearGradient>
  </defs>
  <rect width='88' height='88' rx='18' fill='url(#avatarGradient)'/>
  <g fill='none' stroke='rgba(255,255,255,0.4)' stroke-width='2'>
    <circle cx='44' cy='36' r='16'/>
    <path d='M18 76c6-12 15-20 26-20s20 8 26 20' stroke-linecap='round'/>
  </g>
</svg>`

// DefaultAvatarDataURI is the placeholder silhouette used when no
// avatar could be embedded. Encoded once, constant for the process.
var DefaultAvatarDataURI = "data:image/svg+xml;base64," +
	base64.StdEncoding.EncodeToString([]byte(defaultAvatarSVG))

var cardTemplate = template.Must(template.New("card").Parse(`<svg width="360" height="260" viewBox="0 0 360 260" fill="none" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <linearGradient id="steamCardGradient" x1="0" y1="0" x2="1" y2="1">
      <stop offset="0%" stop-color="#0B141C" />
      <stop offset="45%" stop-color="#13283D" />
      <stop offset="100%" stop-color="#1E405F" />
    </linearGradient>
    <filter id="steamCardShadow" x="-20%" y="-20%" width="140%" height="140%">
      <feDropShadow dx="0" dy="14" stdDeviation="18" flood-color="#040A14" flood-opacity="0.55" />
    </filter>
    <clipPath id="avatarClip">
      <rect x="24" y="26" width="88" height="88" rx="18" />
    </clipPath>
  </defs>
  <g filter="url(#steamCardShadow)">
    <rect x="0" y="0" width="360" height="260" rx="22" fill="url(#steamCardGradient)" stroke="rgba(102,192,244,0.35)" />
  </g>
  <image href="{{.Avatar}}" x="24" y="26" width="88" height="88" clip-path="url(#avatarClip)" preserveAspectRatio="xMidYMid slice" />
  <rect x="24" y="26" width="88" height="88" rx="18" fill="rgba(15, 29, 44, 0.4)" stroke="rgba(102,192,244,0.45)" />
  <g transform="translate(128 40)" font-family="'Segoe UI', 'Inter', sans-serif">
    <text x="0" y="0" font-size="24" font-weight="700" fill="#F5FAFF">{{.PersonaName}}</text>
    <text x="0" y="18" font-size="12" fill="#90ABC4">{{.LevelText}}</text>
    <text x="0" y="38" font-size="12" fill="#6E8BA8">{{.Status}}</text>
    <text x="0" y="58" font-size="11" fill="#4DA6DA">{{.InfoLine}}</text>
  </g>
  <g transform="translate(24 136)" font-family="'Segoe UI', 'Inter', sans-serif">
    <rect width="312" height="52" rx="16" fill="rgba(15, 29, 44, 0.7)" stroke="rgba(102,192,244,0.3)" />
    <text x="20" y="24" font-size="13" font-weight="600" fill="#66C0F4">Recent playtime</text>
    <text x="20" y="36" font-size="12" fill="#B5D8F2">
      <tspan x="20" dy="0">{{.RecentFirst}}</tspan>
      {{- range .RecentRest}}<tspan x="20" dy="16">{{.}}</tspan>{{end}}
    </text>
  </g>
  <g transform="translate(24 196)" font-family="'Segoe UI', 'Inter', sans-serif">
    <rect width="312" height="52" rx="16" fill="rgba(12, 24, 36, 0.65)" stroke="rgba(102,192,244,0.3)" />
    <text x="20" y="24" font-size="13" font-weight="600" fill="#66C0F4">Badge highlights</text>
    <text x="20" y="36" font-size="12" fill="#B5D8F2">
      <tspan x="20" dy="0">{{.BadgeFirst}}</tspan>
      {{- range .BadgeRest}}<tspan x="20" dy="16">{{.}}</tspan>{{end}}
    </text>
  </g>
  <a href="{{.ProfileURL}}" target="_blank" rel="noreferrer">
    <rect x="260" y="30" width="76" height="30" rx="10" fill="rgba(18, 42, 60, 0.75)" stroke="rgba(102,192,244,0.4)" />
    <text x="298" y="50" font-family="'Segoe UI', 'Inter', sans-serif" font-size="11" font-weight="600" fill="#F5FAFF" text-anchor="middle">View</text>
  </a>
</svg>`))

// cardData carries pre-escaped strings only; the template inserts them
// verbatim.
type cardData struct {
	PersonaName string
	LevelText   string
	Status      string
	InfoLine    string
	Avatar      string
	ProfileURL  string
	RecentFirst string
	RecentRest  []string
	BadgeFirst  string
	BadgeRest   []string
}

// Card renders a profile to a self-contained SVG document. Pure: the
// clock is injected and no network or filesystem access happens here.
func Card(p *domain.Profile, now time.Time) string {
	recent := p.RecentGames
	if len(recent) > constants.RecentGamesLimit {
		recent = recent[:constants.RecentGamesLimit]
	}
	if len(recent) == 0 {
		recent = []domain.RecentGame{{Name: "No recent games", Playtime2Weeks: 0}}
	}

	badges := p.BadgeHighlights
	if len(badges) > constants.BadgeHighlightLimit {
		badges = badges[:constants.BadgeHighlightLimit]
	}
	if len(badges) == 0 {
		badges = []domain.BadgeHighlight{{Name: "Collector"}}
	}

	var infoParts []string
	if p.RealName != nil && *p.RealName != "" {
		infoParts = append(infoParts, *p.RealName)
	}
	if p.LocCountryCode != nil {
		if flag := domain.CountryFlag(*p.LocCountryCode); flag != "" {
			infoParts = append(infoParts, flag)
		}
	}
	if p.TimeCreated != nil {
		if since := domain.MemberSince(*p.TimeCreated); since != "" {
			infoParts = append(infoParts, "Member since "+since)
		}
	}

	status := domain.StatusLabel(p.PersonaState)
	if p.PersonaState == 0 && p.LastLogoff != nil {
		if seen := domain.LastSeen(*p.LastLogoff, now); seen != "" {
			status += fmt.Sprintf(" (%s)", seen)
		}
	}

	levelText := "Level hidden"
	if p.Level != nil {
		levelText = fmt.Sprintf("Level %d", *p.Level)
	}

	avatar := DefaultAvatarDataURI
	if p.AvatarDataURI != nil && *p.AvatarDataURI != "" {
		avatar = *p.AvatarDataURI
	}

	data := cardData{
		PersonaName: html.EscapeString(p.PersonaName),
		LevelText:   html.EscapeString(levelText),
		Status:      html.EscapeString(status),
		InfoLine:    html.EscapeString(strings.Join(infoParts, "  ·  ")),
		Avatar:      html.EscapeString(avatar),
		ProfileURL:  html.EscapeString(p.ProfileURL),
		RecentFirst: gameLine(recent[0]),
		BadgeFirst:  html.EscapeString(badgeLabel(badges[0])),
	}
	for _, game := range recent[1:] {
		data.RecentRest = append(data.RecentRest, gameLine(game))
	}
	for _, badge := range badges[1:] {
		data.BadgeRest = append(data.BadgeRest, html.EscapeString(badgeLabel(badge)))
	}

	var b strings.Builder
	if err := cardTemplate.Execute(&b, data); err != nil {
		// The template is static and cardData has no failing methods.
		panic(err)
	}
	return b.String()
}

func gameLine(game domain.RecentGame) string {
	return html.EscapeString(game.Name) + " — " + domain.HumanMinutes(game.Playtime2Weeks)
}

func badgeLabel(badge domain.BadgeHighlight) string {
	label := badge.Name
	if badge.Level != nil && *badge.Level != 0 {
		label += fmt.Sprintf(" · Lv%d", *badge.Level)
	}
	return label
}

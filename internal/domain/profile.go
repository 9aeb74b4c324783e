package domain

import (
	"fmt"
	"strings"
	"time"
)

// Profile is the normalized shape of a Steam identity. Only raw fields
// live here; display strings are derived on access by the free
// functions below so cache round-trips never persist them. A Profile is
// immutable once assembled.
type Profile struct {
	SteamID           string           `json:"steamid"`
	PersonaName       string           `json:"personaname"`
	ProfileURL        string           `json:"profileurl"`
	AvatarFull        string           `json:"avatarfull"`
	AvatarDataURI     *string          `json:"avatar_data_uri"`
	RealName          *string          `json:"realname"`
	LocCountryCode    *string          `json:"loccountrycode"`
	TimeCreated       *int64           `json:"timecreated"`
	LastLogoff        *int64           `json:"lastlogoff"`
	PersonaState      int              `json:"personastate"`
	PersonaStateFlags *int             `json:"personastateflags"`
	Level             *int             `json:"level"`
	BadgeHighlights   []BadgeHighlight `json:"badge_highlights"`
	RecentGames       []RecentGame     `json:"recent_games"`
}

type BadgeHighlight struct {
	Name  string `json:"name"`
	Level *int   `json:"level"`
}

type RecentGame struct {
	Name           string `json:"name"`
	Playtime2Weeks int    `json:"playtime_2weeks"`
}

var personaStateLabels = map[int]string{
	0: "Offline",
	1: "Online",
	2: "Busy",
	3: "Away",
	4: "Snooze",
	5: "Looking to Trade",
	6: "Looking to Play",
}

// StatusLabel is total over all integers; codes outside the Steam
// persona-state enumeration map to "Unknown".
func StatusLabel(code int) string {
	if label, ok := personaStateLabels[code]; ok {
		return label
	}
	return "Unknown"
}

// CountryFlag maps a two-letter country code to its regional-indicator
// pair. Anything that is not exactly two ASCII letters yields "".
func CountryFlag(code string) string {
	if len(code) != 2 {
		return ""
	}
	code = strings.ToUpper(code)
	var b strings.Builder
	for _, ch := range code {
		if ch < 'A' || ch > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + ch - 'A')
	}
	return b.String()
}

// MemberSince renders an account-creation timestamp as a short
// month+year label in UTC, or "" when the timestamp is missing or out
// of range.
func MemberSince(ts int64) string {
	if ts <= 0 {
		return ""
	}
	t := time.Unix(ts, 0).UTC()
	if t.Year() > 9999 {
		return ""
	}
	return t.Format("Jan 2006")
}

// LastSeen renders a last-logoff timestamp as a relative age against
// the injected clock. Missing or future timestamps yield "".
func LastSeen(ts int64, now time.Time) string {
	if ts <= 0 {
		return ""
	}
	delta := now.Sub(time.Unix(ts, 0).UTC())
	if delta < 0 {
		return ""
	}
	if days := int(delta.Hours()) / 24; days >= 1 {
		return fmt.Sprintf("%dd ago", days)
	}
	if hours := int(delta.Hours()); hours >= 1 {
		return fmt.Sprintf("%dh ago", hours)
	}
	minutes := int(delta.Minutes())
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%dm ago", minutes)
}

// HumanMinutes formats a playtime total as "2h 5m", "2h", or "45m".
// Zero renders as "0m".
func HumanMinutes(total int) string {
	hours, mins := total/60, total%60
	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

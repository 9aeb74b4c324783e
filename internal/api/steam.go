package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"steam-showcase/internal/config"

	"github.com/valyala/fasthttp"
)

const defaultAPIBase = "https://api.steampowered.com"

type SteamClient struct {
	apiKey  string
	baseURL string
	client  *fasthttp.Client
}

func NewSteamClient(cfg *config.Config) *SteamClient {
	base := cfg.APIBase
	if base == "" {
		base = defaultAPIBase
	}
	return &SteamClient{
		apiKey:  cfg.APIKey,
		baseURL: base,
		client: &fasthttp.Client{
			MaxConnsPerHost:     10,
			ReadTimeout:         15 * time.Second,
			WriteTimeout:        15 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// ResolveVanity converts a vanity handle to a SteamID64.
func (c *SteamClient) ResolveVanity(ctx context.Context, vanity string) (string, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("vanityurl", vanity)

	data, err := doRequest[vanityResponse](ctx, c, "/ISteamUser/ResolveVanityURL/v1/", params)
	if err != nil {
		return "", err
	}
	if data.Response.Success != 1 {
		return "", &ResolutionError{Vanity: vanity, Detail: fmt.Sprintf("success=%d, message=%q", data.Response.Success, data.Response.Message)}
	}
	if data.Response.SteamID == "" {
		return "", &ResolutionError{Vanity: vanity, Detail: "no steamid in response"}
	}
	return data.Response.SteamID, nil
}

// GetPlayerSummary returns the first player summary for the given
// SteamID64, or NotFoundError when the result set is empty.
func (c *SteamClient) GetPlayerSummary(ctx context.Context, steamID string) (*PlayerSummary, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("steamids", steamID)

	data, err := doRequest[summariesResponse](ctx, c, "/ISteamUser/GetPlayerSummaries/v2/", params)
	if err != nil {
		return nil, err
	}
	if len(data.Response.Players) == 0 {
		return nil, &NotFoundError{SteamID: steamID}
	}
	return &data.Response.Players[0], nil
}

// GetSteamLevel returns the player level, or nil when the profile hides it.
func (c *SteamClient) GetSteamLevel(ctx context.Context, steamID string) (*int, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("steamid", steamID)

	data, err := doRequest[levelResponse](ctx, c, "/IPlayerService/GetSteamLevel/v1/", params)
	if err != nil {
		return nil, err
	}
	return data.Response.PlayerLevel, nil
}

func (c *SteamClient) GetBadges(ctx context.Context, steamID string) ([]BadgeEntry, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("steamid", steamID)

	data, err := doRequest[badgesResponse](ctx, c, "/IPlayerService/GetBadges/v1/", params)
	if err != nil {
		return nil, err
	}
	return data.Response.Badges, nil
}

func (c *SteamClient) GetRecentlyPlayedGames(ctx context.Context, steamID string, count int) ([]RecentGameEntry, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("steamid", steamID)
	params.Set("count", fmt.Sprintf("%d", count))

	data, err := doRequest[recentGamesResponse](ctx, c, "/IPlayerService/GetRecentlyPlayedGames/v1/", params)
	if err != nil {
		return nil, err
	}
	return data.Response.Games, nil
}

// FetchAvatarDataURI downloads the avatar and returns it as a base64
// data URI. The avatar is cosmetic, so every failure collapses to "".
func (c *SteamClient) FetchAvatarDataURI(ctx context.Context, avatarURL string) string {
	if avatarURL == "" {
		return ""
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(avatarURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.do(ctx, req, resp); err != nil {
		return ""
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return ""
	}
	body := resp.Body()
	if len(body) == 0 {
		return ""
	}

	ctype := normalizeContentType(string(resp.Header.ContentType()), avatarURL)
	return fmt.Sprintf("data:%s;base64,%s", ctype, base64.StdEncoding.EncodeToString(body))
}

// normalizeContentType picks the declared type, then the URL extension,
// then a generic image type.
func normalizeContentType(header, rawURL string) string {
	if header != "" {
		ctype := strings.TrimSpace(strings.SplitN(header, ";", 2)[0])
		if ctype != "" {
			return ctype
		}
	}
	if u, err := url.Parse(rawURL); err == nil {
		if guess := mime.TypeByExtension(path.Ext(u.Path)); guess != "" {
			return strings.SplitN(guess, ";", 2)[0]
		}
	}
	return "image/jpeg"
}

func (c *SteamClient) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if deadline, ok := ctx.Deadline(); ok {
		return c.client.DoDeadline(req, resp, deadline)
	}
	return c.client.Do(req, resp)
}

func doRequest[T any](ctx context.Context, client *SteamClient, endpoint string, params url.Values) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s%s?%s", client.baseURL, endpoint, params.Encode()))
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := client.do(ctx, req, resp); err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &TransportError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode(),
			Body:       string(resp.Body()),
		}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	return &result, nil
}

type vanityResponse struct {
	Response struct {
		Success int    `json:"success"`
		SteamID string `json:"steamid"`
		Message string `json:"message"`
	} `json:"response"`
}

type summariesResponse struct {
	Response struct {
		Players []PlayerSummary `json:"players"`
	} `json:"response"`
}

type PlayerSummary struct {
	SteamID           string `json:"steamid"`
	PersonaName       string `json:"personaname"`
	ProfileURL        string `json:"profileurl"`
	AvatarFull        string `json:"avatarfull"`
	RealName          string `json:"realname"`
	LocCountryCode    string `json:"loccountrycode"`
	TimeCreated       int64  `json:"timecreated"`
	LastLogoff        int64  `json:"lastlogoff"`
	PersonaState      int    `json:"personastate"`
	PersonaStateFlags *int   `json:"personastateflags"`
}

type levelResponse struct {
	Response struct {
		PlayerLevel *int `json:"player_level"`
	} `json:"response"`
}

type badgesResponse struct {
	Response struct {
		Badges []BadgeEntry `json:"badges"`
	} `json:"response"`
}

type BadgeEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       *int   `json:"level"`
}

type recentGamesResponse struct {
	Response struct {
		Games []RecentGameEntry `json:"games"`
	} `json:"response"`
}

type RecentGameEntry struct {
	Name           string `json:"name"`
	Playtime2Weeks int    `json:"playtime_2weeks"`
}

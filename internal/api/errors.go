package api

import "fmt"

// ResolutionError reports a vanity handle the API could not convert to
// a SteamID64.
type ResolutionError struct {
	Vanity string
	Detail string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve vanity URL %q: %s", e.Vanity, e.Detail)
}

// NotFoundError reports an empty player-summary result set.
type NotFoundError struct {
	SteamID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no player data returned for steamid %s", e.SteamID)
}

// TransportError reports an HTTP-level failure on a mandatory call.
// Non-2xx responses carry the status and body; connection and decode
// failures carry the underlying error.
type TransportError struct {
	Endpoint   string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("steam api %s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("steam api %s returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

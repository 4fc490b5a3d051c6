// internal/remote/client.go
//
// HTTP client for a running Globetrotter server.
// Implements game.RoundSource over GET /api/destination so the terminal
// presenter can play against a remote dataset, and fetches share cards from
// GET /api/share.

package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/neo7812/Globetrotter/internal/game"
)

// maxCardBytes bounds a share card download.
const maxCardBytes = 8 << 20

// StatusError is a non-2xx reply from the server.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client talks to one server.
type Client struct {
	base *url.URL
	http *http.Client
}

// New returns a Client for baseURL. A nil hc uses a client with a 10s timeout.
func New(baseURL string, hc *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", baseURL)
	}
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{base: u, http: hc}, nil
}

// NextDeal fetches one round.
func (c *Client) NextDeal(ctx context.Context) (game.Deal, error) {
	resp, err := c.get(ctx, c.base.JoinPath("api", "destination"))
	if err != nil {
		return game.Deal{}, err
	}
	defer resp.Body.Close()

	var deal game.Deal
	if err := json.NewDecoder(resp.Body).Decode(&deal); err != nil {
		return game.Deal{}, fmt.Errorf("decode round: %w", err)
	}
	if len(deal.Options) != game.OptionCount || !deal.Options.Contains(deal.Correct) {
		return game.Deal{}, fmt.Errorf("malformed round: %d options, answer %q", len(deal.Options), deal.Correct)
	}
	return deal, nil
}

// ShareCard downloads the PNG card for username and score.
func (c *Client) ShareCard(ctx context.Context, username string, score int) ([]byte, error) {
	u := c.base.JoinPath("api", "share")
	u.RawQuery = url.Values{"username": {username}, "score": {strconv.Itoa(score)}}.Encode()
	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCardBytes))
	if err != nil {
		return nil, fmt.Errorf("read share card: %w", err)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, u *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", u.Path, err)
	}
	log.Debug().Str("path", u.Path).Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("remote call")
	if resp.StatusCode/100 != 2 {
		defer resp.Body.Close()
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body)
		return nil, &StatusError{Status: resp.StatusCode, Message: body.Error}
	}
	return resp, nil
}

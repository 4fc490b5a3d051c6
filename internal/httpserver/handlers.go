package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/neo7812/Globetrotter/internal/destinations"
	"github.com/neo7812/Globetrotter/internal/game"
	"github.com/neo7812/Globetrotter/internal/metrics"
	"github.com/neo7812/Globetrotter/internal/sharecard"
)

const shareCacheControl = "public, max-age=31536000"

// IndexResponse describes the service.
type IndexResponse struct {
	Service   string   `json:"service"`
	Endpoints []string `json:"endpoints"`
}

// HealthResponse reports liveness and dataset size.
type HealthResponse struct {
	OK           bool `json:"ok"`
	Destinations int  `json:"destinations"`
}

// ShareRequest holds the query parameters of /api/share and /api/invite.
type ShareRequest struct {
	Username string `query:"username" description:"Player name; blank becomes \"Player\"."`
	Score    string `query:"score" description:"Non-negative integer; anything else becomes 0."`
}

func handleIndex() http.HandlerFunc {
	body := IndexResponse{
		Service: "globetrotter",
		Endpoints: []string{
			"/health", "/metrics", "/openapi.json", "/docs",
			"GET /api/destination", "GET /api/share", "GET /api/invite",
		},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, body)
	}
}

func handleHealth(store *destinations.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := 0
		if store != nil {
			n = store.Len()
		}
		writeJSON(w, http.StatusOK, HealthResponse{OK: true, Destinations: n})
	}
}

// handleDestination deals one round: two clues, four options, the answer and
// its facts.
func handleDestination(src game.RoundSource, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deal, err := src.NextDeal(r.Context())
		if err != nil {
			m.RoundFailures.Inc()
			hlog.FromRequest(r).Error().Err(err).Msg("deal round")
			writeError(w, http.StatusInternalServerError, "Failed to load destination")
			return
		}
		m.RoundsDealt.Inc()
		writeJSON(w, http.StatusOK, deal)
	}
}

// handleShare renders the PNG share card. Bad query values fall back to
// defaults instead of failing.
func handleShare(cards *sharecard.Renderer, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		username := q.Get("username")
		score := sharecard.ParseScore(q.Get("score"))

		start := time.Now()
		img, err := cards.Render(username, score)
		if err != nil {
			m.ObserveShare(metrics.ResultError, time.Since(start))
			lvl := zerolog.ErrorLevel
			var unavailable *sharecard.RenderUnavailableError
			if errors.As(err, &unavailable) {
				lvl = zerolog.WarnLevel
			}
			hlog.FromRequest(r).WithLevel(lvl).Err(err).Str("username", username).Msg("render share card")
			writeError(w, http.StatusInternalServerError, "Failed to generate image")
			return
		}
		m.ObserveShare(metrics.ResultOK, time.Since(start))

		w.Header().Set("Content-Type", sharecard.ContentType)
		w.Header().Set("Cache-Control", shareCacheControl)
		w.Header().Set("Content-Length", strconv.Itoa(len(img)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(img)
	}
}

// handleInvite returns the invite, image and WhatsApp links for a score.
func handleInvite(baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		inv, err := sharecard.NewInvite(baseURL, q.Get("username"), sharecard.ParseScore(q.Get("score")))
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("build invite")
			writeError(w, http.StatusInternalServerError, "Failed to build invite")
			return
		}
		writeJSON(w, http.StatusOK, inv)
	}
}

// internal/httpserver/server.go
//
// HTTP server wiring for the Globetrotter backend.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts,
//     zerolog access logging, CORS).
//   - Public endpoints: "/", "/health", "/metrics", "/openapi.json", "/docs".
//   - Round endpoint: GET /api/destination.
//   - Share endpoints: GET /api/share (PNG, rate limited per IP) and
//     GET /api/invite.
//
// Notes:
//   - The server is stateless; rounds are dealt fresh on every request and
//     the countdown runs on the client.
//   - CORS allows the single configured client origin.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/swaggest/swgui/v5emb"
	"golang.org/x/time/rate"

	"github.com/neo7812/Globetrotter/internal/config"
	"github.com/neo7812/Globetrotter/internal/destinations"
	"github.com/neo7812/Globetrotter/internal/game"
	"github.com/neo7812/Globetrotter/internal/metrics"
	"github.com/neo7812/Globetrotter/internal/sharecard"
)

// Deps are the collaborators the handlers need.
type Deps struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  *destinations.Store
	// Source deals rounds; nil uses a Dealer over Store.
	Source  game.RoundSource
	Cards   *sharecard.Renderer
	Metrics *metrics.Metrics
}

// Server bundles the router and its dependencies.
type Server struct {
	r    *chi.Mux
	deps Deps
}

// New constructs a Server, installs middleware, and registers routes.
func New(deps Deps) *Server {
	if deps.Source == nil {
		deps.Source = game.NewDealer(deps.Store, nil)
	}
	if deps.Cards == nil {
		deps.Cards = sharecard.NewRenderer(nil)
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	cfg := deps.Config
	s := &Server{r: chi.NewRouter(), deps: deps}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                   // add X-Request-ID
	s.r.Use(chimw.RealIP)                      // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(deps.Logger))      // request-scoped logger
	s.r.Use(accessLog)                         // one line per request
	s.r.Use(chimw.Recoverer)                   // recover from panics
	s.r.Use(chimw.Timeout(cfg.RequestTimeout)) // bound handler time
	s.r.Use(cors(cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", handleIndex())
	s.r.Get("/health", handleHealth(deps.Store))
	s.r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	s.r.Get("/openapi.json", handleOpenAPI())
	s.r.Mount("/docs", v5emb.New("Globetrotter API", "/openapi.json", "/docs"))

	// --- game ---
	s.r.Get("/api/destination", handleDestination(deps.Source, deps.Metrics))

	limiter := NewIPRateLimiter(rate.Limit(cfg.ShareRatePerSec), cfg.ShareBurst)
	s.r.With(rateLimit(limiter, deps.Metrics)).Get("/api/share", handleShare(deps.Cards, deps.Metrics))
	s.r.Get("/api/invite", handleInvite(cfg.PublicBaseURL))

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.r }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// accessLog writes one zerolog line per request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

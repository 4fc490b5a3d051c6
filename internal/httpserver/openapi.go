package httpserver

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/neo7812/Globetrotter/internal/game"
	"github.com/neo7812/Globetrotter/internal/sharecard"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Globetrotter API"
	r.Spec.Info.Version = "1.0.0"
	r.Spec.Info.WithDescription("Rounds and share cards for the Globetrotter geography game.")

	// GET /
	getIndex, _ := r.NewOperationContext(http.MethodGet, "/")
	getIndex.SetSummary("Service index")
	getIndex.AddRespStructure(IndexResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getIndex)

	// GET /health
	getHealth, _ := r.NewOperationContext(http.MethodGet, "/health")
	getHealth.SetSummary("Health check")
	getHealth.SetDescription("Reports liveness and how many destinations are loaded.")
	getHealth.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getHealth)

	// GET /api/destination
	getDest, _ := r.NewOperationContext(http.MethodGet, "/api/destination")
	getDest.SetSummary("Deal a round")
	getDest.SetDescription("Picks a random destination and returns two clues, four shuffled options, the answer, a fun fact and a trivia line.")
	getDest.AddRespStructure(game.Deal{}, openapi.WithHTTPStatus(http.StatusOK))
	getDest.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(getDest)

	// GET /api/share
	getShare, _ := r.NewOperationContext(http.MethodGet, "/api/share")
	getShare.SetSummary("Render share card")
	getShare.SetDescription("Returns a 1200x630 PNG challenge card. Rate limited per client IP.")
	getShare.AddReqStructure(ShareRequest{})
	getShare.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType(sharecard.ContentType))
	getShare.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusTooManyRequests))
	getShare.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(getShare)

	// GET /api/invite
	getInvite, _ := r.NewOperationContext(http.MethodGet, "/api/invite")
	getInvite.SetSummary("Invite links")
	getInvite.SetDescription("Builds the invite link, share image link and WhatsApp link for a score.")
	getInvite.AddReqStructure(ShareRequest{})
	getInvite.AddRespStructure(sharecard.Invite{}, openapi.WithHTTPStatus(http.StatusOK))
	getInvite.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(getInvite)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/gridreg/trueup-cli/internal/assessment"
	"github.com/gridreg/trueup-cli/internal/config"
	"github.com/gridreg/trueup-cli/internal/evaluate"
	"github.com/gridreg/trueup-cli/internal/fy"
	"github.com/gridreg/trueup-cli/internal/session"
	"github.com/gridreg/trueup-cli/internal/unit"
)

// api holds the server state: the session manager and the scenario
// every evaluation runs against.
type api struct {
	sessions *session.Manager
	scenario *fy.Scenario
}

func newAPI(sc *fy.Scenario) *api {
	return &api{
		sessions: session.NewManager(),
		scenario: sc,
	}
}

func (a *api) router(sc config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: sc.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(rateLimit(rate.NewLimiter(rate.Limit(sc.RateRPS), sc.RateBurst)))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "year": a.scenario.Year})
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", a.createSession)
		r.Route("/{session}", func(r chi.Router) {
			r.Delete("/", a.deleteSession)
			r.Post("/evaluate", a.evaluateSession)
			r.Route("/units/{code}", func(r chi.Router) {
				r.Get("/", a.unitSummary)
				r.Post("/evaluate", a.evaluateUnit)
				r.Get("/pending", a.pendingReviews)
				r.Get("/items/{key}", a.drillDown)
				r.Post("/items/{key}/records/{heuristic}/review", a.reviewRecord)
			})
		})
	})
	return r
}

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *api) createSession(w http.ResponseWriter, _ *http.Request) {
	s := a.sessions.Create()
	zap.L().Info("session created", zap.String("session", s.ID))
	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": s.ID,
		"created_at": s.CreatedAt,
	})
}

func (a *api) deleteSession(w http.ResponseWriter, r *http.Request) {
	a.sessions.Delete(chi.URLParam(r, "session"))
	w.WriteHeader(http.StatusNoContent)
}

// evaluateSession evaluates all three units in the session, feeding
// the live generation and transmission net requirements into
// distribution's transfer items.
func (a *api) evaluateSession(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	g, t, d, ok := a.sessionUnits(w, s)
	if !ok {
		return
	}
	if err := evaluate.AllInto(a.scenario, g, t, d); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summaries := make([]unit.Summary, 0, 3)
	for _, u := range s.Units() {
		summaries = append(summaries, u.Summary())
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (a *api) evaluateUnit(w http.ResponseWriter, r *http.Request) {
	u, ok := a.unit(w, r)
	if !ok {
		return
	}
	if err := evaluate.Unit(u, a.scenario); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, u.Summary())
}

func (a *api) unitSummary(w http.ResponseWriter, r *http.Request) {
	u, ok := a.unit(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, u.Summary())
}

func (a *api) pendingReviews(w http.ResponseWriter, r *http.Request) {
	u, ok := a.unit(w, r)
	if !ok {
		return
	}
	pending := u.PendingReviews()
	if pending == nil {
		pending = []unit.PendingReview{}
	}
	writeJSON(w, http.StatusOK, pending)
}

func (a *api) drillDown(w http.ResponseWriter, r *http.Request) {
	u, ok := a.unit(w, r)
	if !ok {
		return
	}
	records, err := u.DrillDown(chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}

type reviewRequest struct {
	Action        string  `json:"action"`
	Reviewer      string  `json:"reviewer"`
	Justification string  `json:"justification"`
	Flag          string  `json:"flag"`
	Amount        float64 `json:"amount"`
	Remarks       string  `json:"remarks"`
}

func (a *api) reviewRecord(w http.ResponseWriter, r *http.Request) {
	u, ok := a.unit(w, r)
	if !ok {
		return
	}
	item, err := u.Item(chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	rec, err := item.Record(chi.URLParam(r, "heuristic"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Action {
	case "accept":
		err = rec.Accept(req.Reviewer)
	case "override-flag":
		err = rec.OverrideFlag(req.Reviewer, req.Justification, assessment.Flag(strings.ToUpper(req.Flag)))
	case "override-amount":
		err = rec.OverrideAmount(req.Reviewer, req.Justification, req.Amount)
	case "remarks":
		err = rec.AddRemarks(req.Reviewer, req.Remarks)
	default:
		writeError(w, http.StatusBadRequest, "unknown action (want accept, override-flag, override-amount or remarks)")
		return
	}
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	zap.L().Info("review action applied",
		zap.String("sbu", u.Code()),
		zap.String("item", item.Key),
		zap.String("heuristic", rec.HeuristicID),
		zap.String("action", req.Action),
		zap.String("reviewer", req.Reviewer),
	)
	writeJSON(w, http.StatusOK, rec)
}

func (a *api) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := a.sessions.Get(chi.URLParam(r, "session"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return s, true
}

func (a *api) unit(w http.ResponseWriter, r *http.Request) (unit.Unit, bool) {
	s, ok := a.session(w, r)
	if !ok {
		return nil, false
	}
	u, err := s.Unit(strings.ToUpper(chi.URLParam(r, "code")))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return u, true
}

func (a *api) sessionUnits(w http.ResponseWriter, s *session.Session) (*unit.Generation, *unit.Transmission, *unit.Distribution, bool) {
	gU, err := s.Unit("G")
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, nil, nil, false
	}
	tU, err := s.Unit("T")
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, nil, nil, false
	}
	dU, err := s.Unit("D")
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, nil, nil, false
	}
	return gU.(*unit.Generation), tU.(*unit.Transmission), dU.(*unit.Distribution), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

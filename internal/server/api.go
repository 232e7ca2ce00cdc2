package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/teemow/classwatch/internal/logging"
	"github.com/teemow/classwatch/internal/session"
)

// hourLabelPattern matches the "HH:00" labels accepted by /sync-config.
var hourLabelPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):00$`)

// API exposes the session state over HTTP.
type API struct {
	store  *session.Store
	health *HealthChecker
	logger *slog.Logger
}

// NewAPI creates the session API.
func NewAPI(store *session.Store, health *HealthChecker, logger *slog.Logger) *API {
	return &API{
		store:  store,
		health: health,
		logger: logging.WithComponent(logger, "api"),
	}
}

// Router builds the HTTP handler, including health probes and CORS for
// the given origins.
func (a *API) Router(allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/sessions", a.handleSessions).Methods(http.MethodGet)
	router.HandleFunc("/sync-config", a.handleSyncConfig).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/record", a.handleRecord).Methods(http.MethodPost)
	router.Handle("/healthz", a.health.LivenessHandler()).Methods(http.MethodGet)
	router.Handle("/readyz", a.health.ReadinessHandler()).Methods(http.MethodGet)

	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

// handleSessions serves the current session snapshot: the enriched state
// when the monitor has produced one, else the synced skeleton.
func (a *API) handleSessions(w http.ResponseWriter, _ *http.Request) {
	sessions := a.store.Sessions()
	if sessions == nil {
		sessions = []session.Session{}
	}
	a.writeJSON(w, http.StatusOK, sessions)
}

// syncConfigRequest is the body of POST /sync-config.
type syncConfigRequest struct {
	Timeframes []string `json:"timeframes"`
}

type syncConfigResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// handleSyncConfig replaces the active timeframes. The next monitor
// cycle picks them up.
func (a *API) handleSyncConfig(w http.ResponseWriter, r *http.Request) {
	var req syncConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeJSON(w, http.StatusBadRequest, syncConfigResponse{Error: "invalid JSON body"})
		return
	}
	for _, frame := range req.Timeframes {
		if !hourLabelPattern.MatchString(frame) {
			a.writeJSON(w, http.StatusBadRequest, syncConfigResponse{Error: "invalid timeframe: " + frame})
			return
		}
	}

	a.store.SetTimeframes(req.Timeframes)
	a.logger.Info("timeframes updated",
		logging.Operation("sync-config"),
		slog.Int("timeframes", len(req.Timeframes)))
	a.writeJSON(w, http.StatusOK, syncConfigResponse{Success: true})
}

// handleRecord is the recording control endpoint. Starting a recording
// through the Meet API needs a media-control grant the service does not
// request, so for now this acknowledges the session without acting.
func (a *API) handleRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	for _, s := range a.store.Sessions() {
		if s.ID == id {
			a.logger.Info("recording requested",
				logging.Operation("record"),
				slog.String(logging.KeySession, id))
			a.writeJSON(w, http.StatusOK, syncConfigResponse{Success: true})
			return
		}
	}
	a.writeJSON(w, http.StatusNotFound, syncConfigResponse{Error: "unknown session: " + id})
}

func (a *API) writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Error("writing response failed", logging.Err(err))
	}
}

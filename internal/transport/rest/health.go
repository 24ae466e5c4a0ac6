package rest

import (
	"context"
	"net/http"
	"time"
)

const pingTimeout = 3 * time.Second

type storagePinger interface {
	Ping(ctx context.Context) error
}

type sessionCounter interface {
	Len() int
}

// HealthHandler reports whether the journal backend is reachable.
type HealthHandler struct {
	storage  storagePinger
	backend  string
	sessions sessionCounter
	version  string
}

// NewHealthHandler creates a HealthHandler. backend names the configured
// storage kind; sessions may be nil.
func NewHealthHandler(storage storagePinger, backend string, sessions sessionCounter, version string) *HealthHandler {
	return &HealthHandler{storage: storage, backend: backend, sessions: sessions, version: version}
}

// HealthResponse is the body of every health route.
type HealthResponse struct {
	Status    string         `json:"status"`
	Version   string         `json:"version,omitempty"`
	Storage   *StorageStatus `json:"storage,omitempty"`
	Sessions  *int           `json:"sessions,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// StorageStatus describes the journal backend.
type StorageStatus struct {
	Backend string `json:"backend"`
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live answers as long as the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 503 while the backend cannot be reached.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	st := h.checkStorage(r.Context())
	writeJSON(w, statusCode(st), HealthResponse{Status: st.Status, Timestamp: time.Now()})
}

// Health is Ready plus backend details and the number of loaded identities.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	st := h.checkStorage(r.Context())
	resp := HealthResponse{
		Status:    st.Status,
		Version:   h.version,
		Storage:   &st,
		Timestamp: time.Now(),
	}
	if h.sessions != nil {
		n := h.sessions.Len()
		resp.Sessions = &n
	}
	writeJSON(w, statusCode(st), resp)
}

func (h *HealthHandler) checkStorage(ctx context.Context) StorageStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	if err := h.storage.Ping(ctx); err != nil {
		return StorageStatus{Backend: h.backend, Status: "down", Error: err.Error()}
	}
	return StorageStatus{Backend: h.backend, Status: "ok", Latency: time.Since(start).String()}
}

func statusCode(st StorageStatus) int {
	if st.Status != "ok" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

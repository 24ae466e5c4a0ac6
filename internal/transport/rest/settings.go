package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/howzue/internal/domain"
)

// SettingsHandler serves the preferences of the authenticated identity.
type SettingsHandler struct {
	stores storeSource
	log    *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(stores storeSource, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{stores: stores, log: logger.With("handler", "settings")}
}

// Get handles GET /settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := storesFor(r, h.stores)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, st.Settings.Get())
}

// Put handles PUT /settings. The body replaces the settings as a whole.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req domain.Settings
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	st, err := storesFor(r, h.stores)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	saved, err := st.Settings.Update(r.Context(), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

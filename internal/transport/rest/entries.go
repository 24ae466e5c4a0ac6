package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/howzue/internal/domain"
	"github.com/heartmarshall/howzue/internal/service/journal"
	"github.com/heartmarshall/howzue/internal/service/stats"
)

const maxImportBytes = 16 << 20

// EntryHandler serves the journal of the authenticated identity.
type EntryHandler struct {
	stores storeSource
	log    *slog.Logger
}

// NewEntryHandler creates an EntryHandler.
func NewEntryHandler(stores storeSource, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{stores: stores, log: logger.With("handler", "entries")}
}

type addEntryRequest struct {
	Mood string `json:"mood"`
	Text string `json:"text"`
}

type entriesResponse struct {
	Entries []domain.JournalEntry `json:"entries"`
	Count   int                   `json:"count"`
	Policy  string                `json:"sameDayPolicy"`
}

type importResponse struct {
	Imported int `json:"imported"`
}

type statsResponse struct {
	stats.Summary
	Trend []stats.DayPoint `json:"trend"`
}

// List handles GET /entries.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	st, err := storesFor(r, h.stores)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	entries := st.Journal.Entries()
	writeJSON(w, http.StatusOK, entriesResponse{
		Entries: entries,
		Count:   len(entries),
		Policy:  st.Journal.Policy().String(),
	})
}

// Add handles POST /entries.
func (h *EntryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addEntryRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	st, err := storesFor(r, h.stores)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	mood, _ := domain.ParseMood(req.Mood)
	entry, err := st.Journal.AddEntry(r.Context(), journal.AddEntryInput{Mood: mood, Text: req.Text})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// DeleteAll handles DELETE /entries.
func (h *EntryHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	st, err := storesFor(r, h.stores)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	if err := st.Journal.DeleteAll(r.Context()); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /entries/export. Entries are oldest first.
func (h *EntryHandler) Export(w http.ResponseWriter, r *http.Request) {
	st, err := storesFor(r, h.stores)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	name := fmt.Sprintf("howzue-%s.json", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	writeJSON(w, http.StatusOK, st.Journal.Export())
}

// Import handles PUT /entries/import. The body replaces the whole journal.
func (h *EntryHandler) Import(w http.ResponseWriter, r *http.Request) {
	var entries []domain.JournalEntry
	if err := decodeJSON(w, r, maxImportBytes, &entries); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	st, err := storesFor(r, h.stores)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	n, err := st.Journal.Import(r.Context(), entries)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{Imported: n})
}

// Stats handles GET /stats.
func (h *EntryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := storesFor(r, h.stores)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Summary: st.Journal.Stats(),
		Trend:   st.Journal.Trend(),
	})
}

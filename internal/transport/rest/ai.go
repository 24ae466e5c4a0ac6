package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/howzue/internal/domain"
)

type companionService interface {
	Insights(ctx context.Context, settings domain.Settings, entries []domain.JournalEntry) (string, error)
	Summary(ctx context.Context, settings domain.Settings, entries []domain.JournalEntry) (string, error)
	ReflectionPrompts(ctx context.Context, settings domain.Settings, entries []domain.JournalEntry) ([]string, error)
	Reply(ctx context.Context, settings domain.Settings, history []domain.ChatMessage, message string) (string, error)
}

// AIHandler serves the AI features gated by the identity's settings.
type AIHandler struct {
	stores    storeSource
	companion companionService
	log       *slog.Logger
}

// NewAIHandler creates an AIHandler.
func NewAIHandler(stores storeSource, companion companionService, logger *slog.Logger) *AIHandler {
	return &AIHandler{stores: stores, companion: companion, log: logger.With("handler", "ai")}
}

type textResponse struct {
	Text string `json:"text"`
}

type promptsResponse struct {
	Prompts []string `json:"prompts"`
}

type companionRequest struct {
	History []domain.ChatMessage `json:"history"`
	Message string               `json:"message"`
}

type companionResponse struct {
	Reply string `json:"reply"`
}

// Insights handles POST /ai/insights.
func (h *AIHandler) Insights(w http.ResponseWriter, r *http.Request) {
	h.text(w, r, h.companion.Insights)
}

// Summary handles POST /ai/summary.
func (h *AIHandler) Summary(w http.ResponseWriter, r *http.Request) {
	h.text(w, r, h.companion.Summary)
}

// Prompts handles POST /ai/prompts.
func (h *AIHandler) Prompts(w http.ResponseWriter, r *http.Request) {
	st, err := storesFor(r, h.stores)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	prompts, err := h.companion.ReflectionPrompts(r.Context(), st.Settings.Get(), st.Journal.Entries())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if prompts == nil {
		prompts = []string{}
	}
	writeJSON(w, http.StatusOK, promptsResponse{Prompts: prompts})
}

// Companion handles POST /ai/companion.
func (h *AIHandler) Companion(w http.ResponseWriter, r *http.Request) {
	var req companionRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	st, err := storesFor(r, h.stores)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	reply, err := h.companion.Reply(r.Context(), st.Settings.Get(), req.History, req.Message)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, companionResponse{Reply: reply})
}

func (h *AIHandler) text(w http.ResponseWriter, r *http.Request,
	generate func(context.Context, domain.Settings, []domain.JournalEntry) (string, error),
) {
	st, err := storesFor(r, h.stores)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out, err := generate(r.Context(), st.Settings.Get(), st.Journal.Entries())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Text: out})
}

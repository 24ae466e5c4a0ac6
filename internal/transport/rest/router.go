package rest

import (
	"net/http"

	"github.com/heartmarshall/howzue/internal/transport/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Entries  *EntryHandler
	Settings *SettingsHandler
	AI       *AIHandler
}

// Limits are the rate limiting middleware for expensive routes. Nil entries
// leave the route unlimited.
type Limits struct {
	Login middleware.Middleware
	AI    middleware.Middleware
}

// NewRouter mounts every route on a ServeMux. Routes other than health and
// login require an authenticated identity; the caller wraps the result with
// the shared middleware chain.
func NewRouter(h Handlers, limits Limits) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.Handle("POST /auth/login", middleware.Chain(limits.Login)(http.HandlerFunc(h.Auth.Login)))

	authed := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, middleware.RequireIdentity(fn))
	}
	aiRoute := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, middleware.Chain(middleware.RequireIdentity, limits.AI)(fn))
	}

	authed("GET /entries", h.Entries.List)
	authed("POST /entries", h.Entries.Add)
	authed("DELETE /entries", h.Entries.DeleteAll)
	authed("GET /entries/export", h.Entries.Export)
	authed("PUT /entries/import", h.Entries.Import)
	authed("GET /stats", h.Entries.Stats)

	authed("GET /settings", h.Settings.Get)
	authed("PUT /settings", h.Settings.Put)

	aiRoute("POST /ai/insights", h.AI.Insights)
	aiRoute("POST /ai/summary", h.AI.Summary)
	aiRoute("POST /ai/prompts", h.AI.Prompts)
	aiRoute("POST /ai/companion", h.AI.Companion)

	return mux
}

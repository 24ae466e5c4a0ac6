package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heartmarshall/howzue/pkg/ctxutil"
)

// journalRoutes mimics the shape of the REST router: a public list of
// entries and an identity-scoped settings replace.
func journalRoutes(t *testing.T) *http.ServeMux {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /entries", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"entries":[],"count":0}`)) //nolint:errcheck
	})
	mux.Handle("PUT /settings", RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))
	mux.HandleFunc("POST /entries", func(w http.ResponseWriter, r *http.Request) {
		panic("entry store exploded")
	})
	return mux
}

func TestChain_RequestIDVisibleToLaterMiddleware(t *testing.T) {
	t.Parallel()

	var seen []string
	record := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = append(seen, name+":"+ctxutil.RequestIDFromCtx(r.Context()))
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(record("outer"), RequestID(), record("inner"))(journalRoutes(t))

	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	want := []string{"outer:", "inner:req-7"}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestChain_SkipsNilMiddleware(t *testing.T) {
	t.Parallel()

	h := Chain(nil, RequestID(), nil)(journalRoutes(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/entries", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected a generated request id")
	}
	if got := rec.Body.String(); got != `{"entries":[],"count":0}` {
		t.Errorf("body = %q", got)
	}
}

func TestChain_UnauthorizedSettingsCarriesRequestID(t *testing.T) {
	t.Parallel()

	h := Chain(RequestID())(journalRoutes(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/settings", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	body := decodeErrorBody(t, rec)
	if body.Error != "unauthorized" || body.RequestID == "" {
		t.Errorf("body = %+v, want unauthorized with a request id", body)
	}
}

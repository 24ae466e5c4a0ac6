package rest

import (
	"context"
	"net/http"

	"github.com/heartmarshall/howzue/internal/domain"
	"github.com/heartmarshall/howzue/internal/session"
	"github.com/heartmarshall/howzue/pkg/ctxutil"
)

type storeSource interface {
	Get(ctx context.Context, id domain.Identity) (session.Stores, error)
}

// storesFor resolves the stores of the request's identity.
func storesFor(r *http.Request, src storeSource) (session.Stores, error) {
	id, ok := ctxutil.IdentityFromCtx(r.Context())
	if !ok {
		return session.Stores{}, domain.ErrIdentityMissing
	}
	return src.Get(r.Context(), domain.Identity(id))
}

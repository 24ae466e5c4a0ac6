package journal

import (
	"fmt"

	"github.com/heartmarshall/howzue/internal/domain"
)

// ErrIdentityChanged is returned when the active identity changed while a
// mutation was waiting to run. Nothing was persisted.
var ErrIdentityChanged = fmt.Errorf("identity changed: %w", domain.ErrConflict)

package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Identity namespaces entries and settings in storage. It is opaque to the core.
type Identity string

// GuestIdentity is the namespace used when nobody is logged in.
const GuestIdentity Identity = "guest"

func (i Identity) String() string { return string(i) }

// identityNamespace seeds IdentityFromEmail so that the same address always maps to the same identity.
var identityNamespace = uuid.MustParse("8a4f3c2e-5d1b-4e7a-9c60-2b7d1f0e6a35")

// IdentityFromEmail derives a stable identity from an e-mail address (case-insensitive).
func IdentityFromEmail(email string) Identity {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return Identity(uuid.NewSHA1(identityNamespace, []byte(normalized)).String())
}

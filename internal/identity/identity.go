// Package identity is the thin boundary to the external auth
// collaborator. The engine treats the user as an opaque id plus a
// verified flag; history operations require a resolved identity, nothing
// else in the core gates on it.
package identity

import "net/http"

const (
	headerUserID   = "X-User-ID"
	headerVerified = "X-User-Verified"
)

type Identity struct {
	ID       string
	Verified bool
}

// Resolved reports whether the auth layer supplied a user at all.
func (id Identity) Resolved() bool {
	return id.ID != ""
}

// FromRequest reads the identity headers the auth proxy injects.
func FromRequest(r *http.Request) Identity {
	return Identity{
		ID:       r.Header.Get(headerUserID),
		Verified: r.Header.Get(headerVerified) == "true",
	}
}

// Package authz centralizes the access policy: who may perform which action
// class on which resource. Every handler and use case goes through the Gate
// instead of re-deriving ownership checks per call site.
package authz

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrLoginRequired means the caller's identity is unknown.
	ErrLoginRequired = errors.New("login required")
	// ErrForbidden means the caller is known but is not the resource owner.
	ErrForbidden = errors.New("forbidden")
)

// Identity is the resolved caller identity for one request. The zero value
// represents an anonymous caller.
type Identity struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
}

// Anonymous reports whether no authenticated user is bound to the request.
func (i Identity) Anonymous() bool {
	return i.UserID == uuid.Nil
}

// Gate decides allow/deny for the three action tiers: public-read (no check),
// authenticated-write, and owner-only-write.
type Gate struct{}

func NewGate() Gate { return Gate{} }

// RequireAuthenticated admits any authenticated identity.
func (Gate) RequireAuthenticated(id Identity) error {
	if id.Anonymous() {
		return ErrLoginRequired
	}
	return nil
}

// RequireOwner admits only the identity matching the resource owner.
// Authentication is checked strictly before ownership, so an anonymous
// caller always gets ErrLoginRequired, never ErrForbidden.
func (g Gate) RequireOwner(id Identity, owner uuid.UUID) error {
	if err := g.RequireAuthenticated(id); err != nil {
		return err
	}
	if id.UserID != owner {
		return ErrForbidden
	}
	return nil
}

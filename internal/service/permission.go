package service

import (
	"github.com/google/uuid"
	"github.com/mkrause/storefront/internal/domain"
)

// Authorize passes when the actor holds at least one of the required
// permissions (any-of, not all-of).
func Authorize(actor *domain.User, required ...domain.Permission) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	if actor.HasAny(required...) {
		return nil
	}
	return domain.ErrForbidden
}

// AuthorizeOwner is the more permissive gate: owning the resource is enough,
// otherwise the actor needs one of the required permissions.
func AuthorizeOwner(actor *domain.User, ownerID uuid.UUID, required ...domain.Permission) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	if actor.ID == ownerID {
		return nil
	}
	return Authorize(actor, required...)
}

package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mkrause/storefront/internal/domain"
	"github.com/mkrause/storefront/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		actor    *domain.User
		required []domain.Permission
		wantErr  error
	}{
		{
			name:     "nil actor is unauthenticated",
			actor:    nil,
			required: []domain.Permission{domain.PermissionAdmin},
			wantErr:  domain.ErrUnauthenticated,
		},
		{
			name:     "user lacking all required permissions",
			actor:    &domain.User{ID: uuid.New(), Permissions: []domain.Permission{domain.PermissionUser}},
			required: []domain.Permission{domain.PermissionAdmin, domain.PermissionItemDelete},
			wantErr:  domain.ErrForbidden,
		},
		{
			name:     "any-of: one matching permission is enough",
			actor:    &domain.User{ID: uuid.New(), Permissions: []domain.Permission{domain.PermissionAdmin}},
			required: []domain.Permission{domain.PermissionAdmin, domain.PermissionItemDelete},
		},
		{
			name:     "any-of: second required permission matches",
			actor:    &domain.User{ID: uuid.New(), Permissions: []domain.Permission{domain.PermissionUser, domain.PermissionItemDelete}},
			required: []domain.Permission{domain.PermissionAdmin, domain.PermissionItemDelete},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Authorize(tt.actor, tt.required...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAuthorizeOwner(t *testing.T) {
	owner := &domain.User{ID: uuid.New(), Permissions: []domain.Permission{domain.PermissionUser}}
	admin := &domain.User{ID: uuid.New(), Permissions: []domain.Permission{domain.PermissionAdmin}}
	stranger := &domain.User{ID: uuid.New(), Permissions: []domain.Permission{domain.PermissionUser}}

	t.Run("owner passes without permissions", func(t *testing.T) {
		err := service.AuthorizeOwner(owner, owner.ID, domain.PermissionAdmin, domain.PermissionItemDelete)
		assert.NoError(t, err)
	})

	t.Run("non-owner with required permission passes", func(t *testing.T) {
		err := service.AuthorizeOwner(admin, owner.ID, domain.PermissionAdmin, domain.PermissionItemDelete)
		assert.NoError(t, err)
	})

	t.Run("non-owner without permission is forbidden", func(t *testing.T) {
		err := service.AuthorizeOwner(stranger, owner.ID, domain.PermissionAdmin, domain.PermissionItemDelete)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("nil actor is unauthenticated", func(t *testing.T) {
		err := service.AuthorizeOwner(nil, owner.ID, domain.PermissionAdmin)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}

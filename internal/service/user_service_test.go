package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mkrause/storefront/internal/domain"
	"github.com/mkrause/storefront/internal/repository/postgres"
	"github.com/mkrause/storefront/internal/service"
	"github.com/mkrause/storefront/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_UpdatePermissions(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	userService := service.NewUserService(repos.User)
	ctx := context.Background()

	admin, _ := testutil.NewUserBuilder().
		WithPermissions(domain.PermissionAdmin).
		Build(t, testDB.DB)
	plain, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	target, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("plain user is forbidden even against themselves", func(t *testing.T) {
		_, err := userService.UpdatePermissions(ctx, plain, plain.ID,
			[]domain.Permission{domain.PermissionAdmin})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown label is rejected", func(t *testing.T) {
		_, err := userService.UpdatePermissions(ctx, admin, target.ID,
			[]domain.Permission{"SUPERUSER"})
		assert.ErrorIs(t, err, service.ErrInvalidPermission)
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := userService.UpdatePermissions(ctx, admin, uuid.New(),
			[]domain.Permission{domain.PermissionUser})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("admin updates the target's set", func(t *testing.T) {
		updated, err := userService.UpdatePermissions(ctx, admin, target.ID,
			[]domain.Permission{domain.PermissionUser, domain.PermissionItemDelete})
		require.NoError(t, err)
		assert.ElementsMatch(t,
			[]domain.Permission{domain.PermissionUser, domain.PermissionItemDelete},
			[]domain.Permission(updated.Permissions))
	})
}

func TestUserService_List(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	userService := service.NewUserService(repos.User)
	ctx := context.Background()

	admin, _ := testutil.NewUserBuilder().
		WithPermissions(domain.PermissionPermissionUpdate).
		Build(t, testDB.DB)
	plain, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("plain user is forbidden", func(t *testing.T) {
		_, err := userService.List(ctx, plain)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("permission holder sees all users", func(t *testing.T) {
		users, err := userService.List(ctx, admin)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}

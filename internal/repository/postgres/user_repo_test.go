package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkrause/storefront/internal/domain"
	"github.com/mkrause/storefront/internal/repository/postgres"
	"github.com/mkrause/storefront/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *domain.User
		wantErr bool
	}{
		{
			name: "successful creation",
			user: &domain.User{
				ID:           uuid.New(),
				Email:        "create@example.com",
				Name:         "Create User",
				PasswordHash: "hashedpassword",
				Permissions:  []domain.Permission{domain.PermissionUser},
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			},
			wantErr: false,
		},
		{
			name: "duplicate email",
			user: &domain.User{
				ID:           uuid.New(),
				Email:        "create@example.com", // Same as above
				Name:         "Other User",
				PasswordHash: "hashedpassword2",
				Permissions:  []domain.Permission{domain.PermissionUser},
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithEmail("byemail@example.com").
		Build(t, testDB.DB)

	t.Run("existing user", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "byemail@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("non-existent user", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "missing@example.com")
		assert.Error(t, err)
	})
}

func TestUserRepository_ResetToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("token within expiry is found", func(t *testing.T) {
		err := repo.SetResetToken(ctx, user.ID, "livetoken", time.Now().Add(time.Hour))
		require.NoError(t, err)

		got, err := repo.GetByResetToken(ctx, "livetoken", time.Now())
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("token past expiry is not found", func(t *testing.T) {
		err := repo.SetResetToken(ctx, user.ID, "staletoken", time.Now().Add(-time.Second))
		require.NoError(t, err)

		_, err = repo.GetByResetToken(ctx, "staletoken", time.Now())
		assert.Error(t, err)
	})

	t.Run("setting the password clears token and expiry together", func(t *testing.T) {
		err := repo.SetResetToken(ctx, user.ID, "consumed", time.Now().Add(time.Hour))
		require.NoError(t, err)

		err = repo.SetPassword(ctx, user.ID, "newhash")
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "newhash", got.PasswordHash)
		assert.Nil(t, got.ResetToken)
		assert.Nil(t, got.ResetTokenExpiry)
	})
}

func TestUserRepository_UpdatePermissions(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("replaces the stored set", func(t *testing.T) {
		err := repo.UpdatePermissions(ctx, user.ID,
			[]domain.Permission{domain.PermissionAdmin, domain.PermissionItemDelete})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t,
			[]domain.Permission{domain.PermissionAdmin, domain.PermissionItemDelete},
			[]domain.Permission(got.Permissions))
	})

	t.Run("missing user reports record not found", func(t *testing.T) {
		err := repo.UpdatePermissions(ctx, uuid.New(),
			[]domain.Permission{domain.PermissionUser})
		assert.Error(t, err)
	})
}

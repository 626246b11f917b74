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

func TestCartRepository_Upsert(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCartRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	item := testutil.NewItemBuilder().Build(t, testDB.DB)

	newRow := func() *domain.CartItem {
		return &domain.CartItem{
			ID:        uuid.New(),
			UserID:    user.ID,
			ItemID:    item.ID,
			Quantity:  1,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}

	t.Run("insert then increment", func(t *testing.T) {
		first, err := repo.Upsert(ctx, newRow())
		require.NoError(t, err)
		assert.Equal(t, 1, first.Quantity)
		require.NotNil(t, first.Item)
		assert.Equal(t, item.ID, first.Item.ID)

		second, err := repo.Upsert(ctx, newRow())
		require.NoError(t, err)
		assert.Equal(t, 2, second.Quantity)
		assert.Equal(t, first.ID, second.ID, "conflict branch keeps the original row")

		var count int64
		err = testDB.DB.Model(&domain.CartItem{}).
			Where("user_id = ? AND item_id = ?", user.ID, item.ID).
			Count(&count).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestCartRepository_GetByUserID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCartRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	testutil.NewCartItemBuilder().WithUser(user).Build(t, testDB.DB)
	testutil.NewCartItemBuilder().WithUser(user).Build(t, testDB.DB)
	testutil.NewCartItemBuilder().WithUser(other).Build(t, testDB.DB)

	rows, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, user.ID, row.UserID)
		assert.NotNil(t, row.Item, "items are preloaded for snapshotting")
	}
}

package repository

import (
	"context"
	"testing"

	"clickduel/repository/testutil"
	"clickduel/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	userRepo := NewUserRepository(testDB.DB)

	t.Run("create and get", func(t *testing.T) {
		user, err := userRepo.Create(ctx, 1001, "alice", 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), user.Available)
		assert.Equal(t, int64(0), user.Frozen)

		fetched, err := userRepo.GetByID(ctx, 1001)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, "alice", fetched.Username)
	})

	t.Run("duplicate create leaves account untouched", func(t *testing.T) {
		dup, err := userRepo.Create(ctx, 1001, "alice_again", 1000)
		require.NoError(t, err)
		assert.Nil(t, dup)

		user, err := userRepo.GetByID(ctx, 1001)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, int64(1000), user.Available)
	})

	t.Run("get missing returns nil", func(t *testing.T) {
		user, err := userRepo.GetByID(ctx, 424242)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("touch profile updates username", func(t *testing.T) {
		err := userRepo.TouchProfile(ctx, 1001, "alice_renamed")
		require.NoError(t, err)

		user, err := userRepo.GetByID(ctx, 1001)
		require.NoError(t, err)
		assert.Equal(t, "alice_renamed", user.Username)
	})

	t.Run("freeze moves available to frozen", func(t *testing.T) {
		err := userRepo.Freeze(ctx, 1001, 300)
		require.NoError(t, err)

		user, err := userRepo.GetByID(ctx, 1001)
		require.NoError(t, err)
		assert.Equal(t, int64(700), user.Available)
		assert.Equal(t, int64(300), user.Frozen)
	})

	t.Run("freeze beyond available fails without clamping", func(t *testing.T) {
		err := userRepo.Freeze(ctx, 1001, 100000)
		assert.ErrorIs(t, err, service.ErrInsufficientFunds)

		user, err := userRepo.GetByID(ctx, 1001)
		require.NoError(t, err)
		assert.Equal(t, int64(700), user.Available)
		assert.Equal(t, int64(300), user.Frozen)
	})

	t.Run("freeze on missing user reports not found", func(t *testing.T) {
		err := userRepo.Freeze(ctx, 424242, 100)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("unfreeze returns escrow", func(t *testing.T) {
		err := userRepo.Unfreeze(ctx, 1001, 100)
		require.NoError(t, err)

		user, err := userRepo.GetByID(ctx, 1001)
		require.NoError(t, err)
		assert.Equal(t, int64(800), user.Available)
		assert.Equal(t, int64(200), user.Frozen)
	})

	t.Run("unfreeze beyond frozen fails", func(t *testing.T) {
		err := userRepo.Unfreeze(ctx, 1001, 10000)
		assert.ErrorIs(t, err, service.ErrInsufficientFrozen)
	})

	t.Run("debit frozen removes escrow", func(t *testing.T) {
		err := userRepo.DebitFrozen(ctx, 1001, 200)
		require.NoError(t, err)

		user, err := userRepo.GetByID(ctx, 1001)
		require.NoError(t, err)
		assert.Equal(t, int64(800), user.Available)
		assert.Equal(t, int64(0), user.Frozen)
	})

	t.Run("credit available adds winnings", func(t *testing.T) {
		err := userRepo.CreditAvailable(ctx, 1001, 200)
		require.NoError(t, err)

		user, err := userRepo.GetByID(ctx, 1001)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), user.Available)
	})
}

package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user, err := repo.Create(ctx, "alice", "A@X.com", "hash-1")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "a@x.com", user.Email, "email is stored lowercased")
	require.False(t, user.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", found.Username)

	_, err = repo.FindByID(ctx, user.ID+100)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "alice", "a@x.com", "h")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "alice", "other@x.com", "h")
	require.ErrorIs(t, err, ErrDuplicateUsername)

	// Username uniqueness is case-sensitive: Alice and alice may coexist.
	_, err = repo.Create(ctx, "Alice", "upper@x.com", "h")
	require.NoError(t, err)
}

func TestUserRepository_DuplicateEmailCaseInsensitive(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "alice", "a@x.com", "h")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "bob", "A@X.COM", "h")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_FindByUsernameOrEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", "a@x.com", "h")
	require.NoError(t, err)

	byUsername, err := repo.FindByUsernameOrEmail(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, created.ID, byUsername.ID)

	byEmail, err := repo.FindByUsernameOrEmail(ctx, "A@X.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	_, err = repo.FindByUsernameOrEmail(ctx, "nobody")
	require.True(t, errors.Is(err, ErrUserNotFound))
}

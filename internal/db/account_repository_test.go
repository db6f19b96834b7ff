package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAccountRepositoryCreateAndGet(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewAccountRepository(pool, false)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "Neo", "trinity"))

	acc, err := repo.Get(ctx, "neo")
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, "neo", acc.Login, "logins are stored lowercase")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("trinity")))
	assert.False(t, acc.CreatedAt.IsZero())
}

func TestAccountRepositoryGetMissing(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewAccountRepository(pool, false)

	acc, err := repo.Get(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, acc)
}

func TestAccountRepositoryCreateTwiceKeepsFirst(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewAccountRepository(pool, false)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "dupe", "first"))
	require.NoError(t, repo.Create(ctx, "dupe", "second"))

	ok, err := repo.Authenticate(ctx, "dupe", "first")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Authenticate(ctx, "dupe", "second")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccountRepositoryAuthenticate(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewAccountRepository(pool, false)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "johnny", "silverhand"))

	ok, err := repo.Authenticate(ctx, "johnny", "silverhand")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Authenticate(ctx, "JOHNNY", "silverhand")
	require.NoError(t, err)
	assert.True(t, ok, "login matching is case-insensitive")

	ok, err = repo.Authenticate(ctx, "johnny", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Authenticate(ctx, "nobody", "anything")
	require.NoError(t, err)
	assert.False(t, ok, "unknown logins fail when auto-create is off")
}

func TestAccountRepositoryAuthenticateEmptyCredentials(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewAccountRepository(pool, true)
	ctx := context.Background()

	ok, err := repo.Authenticate(ctx, "", "pass")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Authenticate(ctx, "user", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccountRepositoryAutoCreate(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewAccountRepository(pool, true)
	ctx := context.Background()

	ok, err := repo.Authenticate(ctx, "fresh", "secret")
	require.NoError(t, err)
	assert.True(t, ok, "first login registers the account")

	acc, err := repo.Get(ctx, "fresh")
	require.NoError(t, err)
	require.NotNil(t, acc)

	ok, err = repo.Authenticate(ctx, "fresh", "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Authenticate(ctx, "fresh", "other")
	require.NoError(t, err)
	assert.False(t, ok, "the registered password sticks")
}

func TestAccountRepositoryTouch(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewAccountRepository(pool, false)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "active", "pw"))
	before, err := repo.Get(ctx, "active")
	require.NoError(t, err)

	require.NoError(t, repo.Touch(ctx, "active"))

	after, err := repo.Get(ctx, "active")
	require.NoError(t, err)
	assert.True(t, after.LastActive.After(before.LastActive) || after.LastActive.Equal(before.LastActive))
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penduduk_backend/internal/feature/auth/domain/entity"
	"penduduk_backend/internal/feature/auth/usecase"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

// createTestSession creates a session entity for testing.
func createTestSession(id string, userID uint, expiresIn time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestNewSessionRedis(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.client, "client is nil")
	assert.Equal(t, "session", repo.prefix)
}

func TestNewSessionRedis_DefaultPrefix(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "")

	assert.Equal(t, "session", repo.prefix)
}

func TestSessionRedis_CreateAndFind(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")
		ctx := context.Background()

		created := createTestSession("token-1", 1, time.Hour)
		require.NoError(t, repo.Create(ctx, created))

		found, err := repo.FindByID(ctx, "token-1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, created.UserID, found.UserID)
		assert.Equal(t, "test-agent", found.UserAgent)
		assert.True(t, found.IsValid())
	})

	t.Run("already expired session is rejected", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		err := repo.Create(context.Background(), createTestSession("token-1", 1, -time.Hour))
		assert.Error(t, err)
	})

	t.Run("unknown id returns ErrSessionNotFound", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		_, err := repo.FindByID(context.Background(), "no-such-token")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})

	t.Run("session disappears after its TTL", func(t *testing.T) {
		client, mr := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, createTestSession("token-1", 1, time.Hour)))

		mr.FastForward(2 * time.Hour)

		_, err := repo.FindByID(ctx, "token-1")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionRedis_Revoke(t *testing.T) {
	t.Run("revoked session stays findable until expiry", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, createTestSession("token-1", 1, time.Hour)))
		require.NoError(t, repo.Revoke(ctx, "token-1"))

		found, err := repo.FindByID(ctx, "token-1")
		require.NoError(t, err, "revoked session must remain for reuse detection")
		assert.True(t, found.IsRevoked())
		assert.False(t, found.IsValid())
	})

	t.Run("unknown id returns ErrSessionNotFound", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		err := repo.Revoke(context.Background(), "no-such-token")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionRedis_RevokeAllByUserID(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, createTestSession("token-1", 1, time.Hour)))
	require.NoError(t, repo.Create(ctx, createTestSession("token-2", 1, time.Hour)))
	require.NoError(t, repo.Create(ctx, createTestSession("other-user", 2, time.Hour)))

	require.NoError(t, repo.RevokeAllByUserID(ctx, 1))

	for _, id := range []string{"token-1", "token-2"} {
		s, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, s.IsRevoked(), "session %s should be revoked", id)
	}

	other, err := repo.FindByID(ctx, "other-user")
	require.NoError(t, err)
	assert.False(t, other.IsRevoked(), "another user's session must be untouched")
}

func TestSessionRedis_CountByUserID(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, createTestSession("token-1", 1, time.Hour)))
	require.NoError(t, repo.Create(ctx, createTestSession("token-2", 1, 30*time.Minute)))
	require.NoError(t, repo.Create(ctx, createTestSession("token-3", 1, time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "token-3"))

	count, err := repo.CountByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "revoked sessions do not count")

	// Expire token-2 and count again; the dead set member is pruned.
	mr.FastForward(45 * time.Minute)

	count, err = repo.CountByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSessionRedis_DeleteOldestByUserID(t *testing.T) {
	t.Run("removes the oldest active session", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")
		ctx := context.Background()

		now := time.Now()
		oldest := &entity.Session{
			ID:        "token-old",
			UserID:    1,
			CreatedAt: now.Add(-2 * time.Hour),
			ExpiresAt: now.Add(time.Hour),
		}
		newest := &entity.Session{
			ID:        "token-new",
			UserID:    1,
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
		}
		require.NoError(t, repo.Create(ctx, oldest))
		require.NoError(t, repo.Create(ctx, newest))

		require.NoError(t, repo.DeleteOldestByUserID(ctx, 1))

		_, err := repo.FindByID(ctx, "token-old")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
		_, err = repo.FindByID(ctx, "token-new")
		assert.NoError(t, err)
	})

	t.Run("no active sessions is a no-op", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		assert.NoError(t, repo.DeleteOldestByUserID(context.Background(), 1))
	})
}

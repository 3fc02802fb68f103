package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penduduk_backend/internal/feature/auth/domain/entity"
	"penduduk_backend/internal/feature/auth/usecase"
)

// newSession creates a session entity for test data.
func newSession(id string, userID uint, expiresIn time.Duration) *entity.Session {
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

func TestSessionGorm_CreateAndFind(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSessionRepository(db)
		ctx := context.Background()

		created := newSession("token-1", 1, time.Hour)
		require.NoError(t, repo.Create(ctx, created))

		found, err := repo.FindByID(ctx, "token-1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, created.UserID, found.UserID)
		assert.Equal(t, "test-agent", found.UserAgent)
		assert.True(t, found.IsValid())
	})

	t.Run("unknown id returns ErrSessionNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSessionRepository(db)

		_, err := repo.FindByID(context.Background(), "no-such-token")

		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionGorm_Revoke(t *testing.T) {
	t.Run("revoked session stays findable", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSessionRepository(db)
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, newSession("token-1", 1, time.Hour)))
		require.NoError(t, repo.Revoke(ctx, "token-1"))

		found, err := repo.FindByID(ctx, "token-1")
		require.NoError(t, err, "revoked session must remain for reuse detection")
		assert.True(t, found.IsRevoked())
	})

	t.Run("unknown id returns ErrSessionNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSessionRepository(db)

		err := repo.Revoke(context.Background(), "no-such-token")

		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionGorm_RevokeAllByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSession("token-1", 1, time.Hour)))
	require.NoError(t, repo.Create(ctx, newSession("token-2", 1, time.Hour)))
	require.NoError(t, repo.Create(ctx, newSession("other-user", 2, time.Hour)))

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

func TestSessionGorm_CountByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSession("active-1", 1, time.Hour)))
	require.NoError(t, repo.Create(ctx, newSession("active-2", 1, time.Hour)))
	require.NoError(t, repo.Create(ctx, newSession("expired", 1, -time.Hour)))
	require.NoError(t, repo.Create(ctx, newSession("revoked", 1, time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "revoked"))

	count, err := repo.CountByUserID(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "expired and revoked sessions do not count")
}

func TestSessionGorm_DeleteOldestByUserID(t *testing.T) {
	t.Run("removes the oldest active session", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSessionRepository(db)
		ctx := context.Background()

		now := time.Now()
		oldest := &entity.Session{ID: "token-old", UserID: 1, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(time.Hour)}
		newest := &entity.Session{ID: "token-new", UserID: 1, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
		require.NoError(t, repo.Create(ctx, oldest))
		require.NoError(t, repo.Create(ctx, newest))

		require.NoError(t, repo.DeleteOldestByUserID(ctx, 1))

		_, err := repo.FindByID(ctx, "token-old")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
		_, err = repo.FindByID(ctx, "token-new")
		assert.NoError(t, err)
	})

	t.Run("no active sessions is a no-op", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSessionRepository(db)

		assert.NoError(t, repo.DeleteOldestByUserID(context.Background(), 1))
	})
}

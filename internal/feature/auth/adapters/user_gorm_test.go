package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"penduduk_backend/internal/feature/auth/domain/entity"
	"penduduk_backend/internal/feature/auth/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
// TranslateError matches the production config so unique violations map to
// gorm.ErrDuplicatedKey.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{}, &SessionModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		user := &entity.User{
			Name:     "Test User",
			Email:    "test@example.com",
			Password: "hashed_password",
			Role:     entity.RolePetugas,
		}

		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("duplicate email returns ErrEmailAlreadyExists", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		first := &entity.User{Name: "First", Email: "duplicate@example.com", Password: "p1", Role: entity.RolePetugas}
		require.NoError(t, repo.Create(context.Background(), first))

		second := &entity.User{Name: "Second", Email: "duplicate@example.com", Password: "p2", Role: entity.RolePetugas}
		err := repo.Create(context.Background(), second)

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
	})
}

func TestUserGorm_FindByEmail(t *testing.T) {
	t.Run("find existing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		created := &entity.User{Name: "Admin", Email: "admin@example.com", Password: "hash", Role: entity.RoleAdmin}
		require.NoError(t, repo.Create(context.Background(), created))

		found, err := repo.FindByEmail(context.Background(), "admin@example.com")

		assert.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, entity.RoleAdmin, found.Role)
		assert.True(t, found.IsAdmin())
	})

	t.Run("missing email returns ErrUserNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		_, err := repo.FindByEmail(context.Background(), "nobody@example.com")

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserGorm_FindByID(t *testing.T) {
	t.Run("find existing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		created := &entity.User{Name: "Staff", Email: "staff@example.com", Password: "hash", Role: entity.RolePetugas}
		require.NoError(t, repo.Create(context.Background(), created))

		found, err := repo.FindByID(context.Background(), created.ID)

		assert.NoError(t, err)
		assert.Equal(t, "staff@example.com", found.Email)
		assert.False(t, found.IsAdmin())
	})

	t.Run("missing id returns ErrUserNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		_, err := repo.FindByID(context.Background(), 999)

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

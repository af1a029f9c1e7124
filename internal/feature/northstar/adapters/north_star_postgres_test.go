package adapters

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tend_backend/internal/feature/northstar/domain/entity"
	"tend_backend/internal/feature/northstar/usecase"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&NorthStarModel{}), "failed to migrate tables")
	return db
}

func northStar(owner, haiku string) *entity.NorthStar {
	return &entity.NorthStar{
		OwnerEmail: owner,
		Haiku:      haiku,
		North:      []entity.Direction{{Emoji: "🌱", Phrase: "grow together"}},
		East:       []entity.Direction{{Emoji: "🌅", Phrase: "new starts"}},
		South:      []entity.Direction{},
		West:       []entity.Direction{{Emoji: "🌙", Phrase: "rest"}},
	}
}

func TestNorthStarPostgres_FindByOwner_NotFound(t *testing.T) {
	repo := NewNorthStarPostgres(setupTestDB(t))

	_, err := repo.FindByOwner(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, usecase.ErrNorthStarNotFound)
}

func TestNorthStarPostgres_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNorthStarPostgres(db)
	ctx := context.Background()

	first, err := repo.Upsert(ctx, northStar("alice@example.com", "first"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.MetaVersion)
	assert.Len(t, first.ID, 27)
	assert.Equal(t, "grow together", first.North[0].Phrase)

	second, err := repo.Upsert(ctx, northStar("alice@example.com", "second"))
	require.NoError(t, err)
	assert.Equal(t, 2, second.MetaVersion)
	assert.Equal(t, first.ID, second.ID, "the row is updated in place")
	assert.Equal(t, "second", second.Haiku)

	other, err := repo.Upsert(ctx, northStar("bob@example.com", "bob"))
	require.NoError(t, err)
	assert.Equal(t, 1, other.MetaVersion)

	var count int64
	require.NoError(t, db.Model(&NorthStarModel{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestNorthStarPostgres_Upsert_Concurrent(t *testing.T) {
	repo := NewNorthStarPostgres(setupTestDB(t))
	ctx := context.Background()

	const writers = 5
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Upsert(ctx, northStar("alice@example.com", "race"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.FindByOwner(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, writers, got.MetaVersion)
}

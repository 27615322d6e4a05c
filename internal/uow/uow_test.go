package uow

import (
	"context"
	"errors"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{TablePrefix: "ripple_"},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive across queries.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Post{}))
	return db
}

func countPosts(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Post{}).Count(&n).Error)
	return n
}

func TestUnitOfWork_TransactCommits(t *testing.T) {
	db := setupTestDB(t)
	u := New(db)
	ctx := context.Background()

	err := u.Transact(ctx, func(tx *gorm.DB) error {
		u.UseTransaction(tx)
		_, err := u.Posts.Create(ctx, &models.Post{Content: "committed", AuthorName: "John Doe"})
		return err
	})
	require.NoError(t, err)

	assert.EqualValues(t, 1, countPosts(t, db))
}

func TestUnitOfWork_TransactRollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	u := New(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := u.Transact(ctx, func(tx *gorm.DB) error {
		u.UseTransaction(tx)
		if _, err := u.Posts.Create(ctx, &models.Post{Content: "doomed", AuthorName: "John Doe"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.EqualValues(t, 0, countPosts(t, db))
}

func TestUnitOfWork_UseTransactionRebindsUntilNextCall(t *testing.T) {
	db := setupTestDB(t)
	u := New(db)

	ambient := u.Posts
	err := u.Transact(context.Background(), func(tx *gorm.DB) error {
		u.UseTransaction(tx)
		assert.NotSame(t, ambient, u.Posts)
		return nil
	})
	require.NoError(t, err)

	// The swap is a mutable-state change, not a scoped override: the
	// transactional binding persists after the transaction ends.
	assert.NotSame(t, ambient, u.Posts)
}

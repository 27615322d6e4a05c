package repository

import (
	"context"
	"regexp"
	"testing"

	"ripple/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{TablePrefix: "ripple_"},
	})
	require.NoError(t, err)

	return gormDB, mock
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Content: "Hello World!", AuthorName: "John Doe"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "ripple_posts"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.Same(t, post, created)
	// The hook assigns the identifier before the insert hits the database.
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_FindAll(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	older := uuid.Must(uuid.NewV7())
	newer := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ripple_posts" ORDER BY id DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "author_name"}).
			AddRow(newer.String(), "second", "John Doe").
			AddRow(older.String(), "first", "John Doe"))

	posts, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer, posts[0].ID)
	assert.Equal(t, "second", posts[0].Content)
	assert.Equal(t, older, posts[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_FindAll_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ripple_posts"`)).
		WillReturnError(assert.AnError)

	_, err := repo.FindAll(context.Background())
	assert.Error(t, err)
}

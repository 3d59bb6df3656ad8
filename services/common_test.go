package services

import (
	"testing"
	"time"

	"yatube/db"
	"yatube/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB поднимает SQLite в памяти и подставляет его вместо ORM
func setupTestDB(t *testing.T) {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database))
	db.ORM = database
}

func createTestUser(t *testing.T) *models.User {
	t.Helper()

	user := &models.User{Username: gofakeit.Username()}
	require.NoError(t, db.ORM.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, authorID int64, groupID *int64, createdAt time.Time) *models.Post {
	t.Helper()

	post := &models.Post{
		Text:      gofakeit.Sentence(5),
		AuthorID:  authorID,
		GroupID:   groupID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.ORM.Create(post).Error)
	return post
}

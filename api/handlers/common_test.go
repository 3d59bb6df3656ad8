package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"yatube/api/routes"
	"yatube/db"
	"yatube/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupRouter поднимает SQLite в памяти и полный роутер приложения
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database))
	db.ORM = database

	router := gin.New()
	routes.PublicApi(router)
	return router
}

func createUser(t *testing.T, username string) *models.User {
	t.Helper()

	if username == "" {
		username = gofakeit.Username()
	}
	user := &models.User{Username: username}
	require.NoError(t, db.ORM.Create(user).Error)
	return user
}

func createPost(t *testing.T, authorID int64, groupID *int64, text string, createdAt time.Time) *models.Post {
	t.Helper()

	post := &models.Post{
		Text:      text,
		AuthorID:  authorID,
		GroupID:   groupID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.ORM.Create(post).Error)
	return post
}

// doGet выполняет GET, userID=0 значит анонимный запрос
func doGet(router *gin.Engine, path string, userID int64) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	if userID != 0 {
		req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))
	}
	router.ServeHTTP(w, req)
	return w
}

// doPostForm выполняет POST с urlencoded формой
func doPostForm(router *gin.Engine, path string, userID int64, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if userID != 0 {
		req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))
	}
	router.ServeHTTP(w, req)
	return w
}

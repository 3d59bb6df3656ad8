package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"yatube/db"
	"yatube/models"
	"yatube/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listResponse struct {
	Posts []models.Post `json:"posts"`
	Page  services.Page `json:"page"`
}

func decodeList(t *testing.T, body []byte) listResponse {
	t.Helper()
	var resp listResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestIndexNewestFirst(t *testing.T) {
	router := setupRouter(t)
	author := createUser(t, "")

	base := time.Now().Add(-time.Hour)
	createPost(t, author.ID, nil, "старый", base)
	newest := createPost(t, author.ID, nil, "новый", base.Add(time.Minute))

	w := doGet(router, "/", 0)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeList(t, w.Body.Bytes())
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, newest.ID, resp.Posts[0].ID)
}

// TestGroupPagination - 13 постов в группе: первая страница 10, вторая 3
func TestGroupPagination(t *testing.T) {
	router := setupRouter(t)
	author := createUser(t, "")

	group := &models.Group{Title: "Test", Slug: "test_slug"}
	require.NoError(t, db.ORM.Create(group).Error)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 13; i++ {
		createPost(t, author.ID, &group.ID, fmt.Sprintf("пост %d", i), base.Add(time.Duration(i)*time.Second))
	}

	w := doGet(router, "/group/test_slug/", 0)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeList(t, w.Body.Bytes())
	assert.Len(t, resp.Posts, 10)
	assert.Equal(t, 2, resp.Page.TotalPages)

	w = doGet(router, "/group/test_slug/?page=2", 0)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeList(t, w.Body.Bytes())
	assert.Len(t, resp.Posts, 3)

	// Выход за последнюю страницу прижимается к ней
	w = doGet(router, "/group/test_slug/?page=99", 0)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeList(t, w.Body.Bytes())
	assert.Equal(t, 2, resp.Page.Number)
	assert.Len(t, resp.Posts, 3)
}

func TestGroupNotFound(t *testing.T) {
	router := setupRouter(t)

	w := doGet(router, "/group/missing/", 0)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileShowsFollowing(t *testing.T) {
	router := setupRouter(t)
	author := createUser(t, "leo")
	reader := createUser(t, "")

	createPost(t, author.ID, nil, "пост автора", time.Now())
	require.NoError(t, db.ORM.Create(&models.Follow{UserID: reader.ID, AuthorID: author.ID}).Error)

	var resp struct {
		Username      string `json:"username"`
		NumberOfPosts int64  `json:"number_of_posts"`
		Following     bool   `json:"following"`
	}

	// Анонимно - подписка не показана
	w := doGet(router, "/profile/leo/", 0)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Following)
	assert.Equal(t, int64(1), resp.NumberOfPosts)

	// От имени подписчика
	w = doGet(router, "/profile/leo/", reader.ID)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Following)
	assert.Equal(t, "leo", resp.Username)
}

func TestProfileNotFound(t *testing.T) {
	router := setupRouter(t)

	w := doGet(router, "/profile/nobody/", 0)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostDetail(t *testing.T) {
	router := setupRouter(t)
	author := createUser(t, "")

	post := createPost(t, author.ID, nil, "текст", time.Now())
	createPost(t, author.ID, nil, "второй", time.Now())
	require.NoError(t, db.ORM.Create(&models.Comment{PostID: post.ID, AuthorID: author.ID, Text: "коммент"}).Error)

	w := doGet(router, fmt.Sprintf("/posts/%d/", post.ID), 0)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Post          models.Post      `json:"post"`
		NumberOfPosts int64            `json:"number_of_posts"`
		Comments      []models.Comment `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, post.ID, resp.Post.ID)
	assert.Equal(t, int64(2), resp.NumberOfPosts)
	assert.Len(t, resp.Comments, 1)
}

func TestPostDetailNotFound(t *testing.T) {
	router := setupRouter(t)

	w := doGet(router, "/posts/12345/", 0)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doGet(router, "/posts/abc/", 0)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestCreateRequiresAuth - аноним уходит на логин с параметром next,
// пост не создается
func TestCreateRequiresAuth(t *testing.T) {
	router := setupRouter(t)

	w := doGet(router, "/create/", 0)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=/create/", w.Header().Get("Location"))

	w = doPostForm(router, "/create/", 0, url.Values{"text": {"не должен сохраниться"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=/create/", w.Header().Get("Location"))

	var count int64
	require.NoError(t, db.ORM.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreatePost(t *testing.T) {
	router := setupRouter(t)
	author := createUser(t, "anna")

	group := &models.Group{Title: "Test", Slug: "test"}
	require.NoError(t, db.ORM.Create(group).Error)

	form := url.Values{
		"text":  {"новый пост"},
		"group": {fmt.Sprint(group.ID)},
	}
	w := doPostForm(router, "/create/", author.ID, form)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/anna/", w.Header().Get("Location"))

	var post models.Post
	require.NoError(t, db.ORM.First(&post).Error)
	assert.Equal(t, "новый пост", post.Text)
	assert.Equal(t, author.ID, post.AuthorID)
	require.NotNil(t, post.GroupID)
	assert.Equal(t, group.ID, *post.GroupID)
}

func TestCreatePostBlankText(t *testing.T) {
	router := setupRouter(t)
	author := createUser(t, "")

	w := doPostForm(router, "/create/", author.ID, url.Values{"text": {"   "}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "text")

	var count int64
	require.NoError(t, db.ORM.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

// TestEditNonOwner - чужой пост нельзя редактировать, молчаливый
// редирект на страницу поста без изменений
func TestEditNonOwner(t *testing.T) {
	router := setupRouter(t)
	owner := createUser(t, "")
	intruder := createUser(t, "")

	post := createPost(t, owner.ID, nil, "оригинал", time.Now())
	detailURL := fmt.Sprintf("/posts/%d/", post.ID)

	w := doGet(router, fmt.Sprintf("/posts/%d/edit/", post.ID), intruder.ID)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailURL, w.Header().Get("Location"))

	w = doPostForm(router, fmt.Sprintf("/posts/%d/edit/", post.ID), intruder.ID, url.Values{"text": {"взломано"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailURL, w.Header().Get("Location"))

	var kept models.Post
	require.NoError(t, db.ORM.First(&kept, post.ID).Error)
	assert.Equal(t, "оригинал", kept.Text)
}

func TestEditOwner(t *testing.T) {
	router := setupRouter(t)
	owner := createUser(t, "")

	post := createPost(t, owner.ID, nil, "оригинал", time.Now())

	w := doPostForm(router, fmt.Sprintf("/posts/%d/edit/", post.ID), owner.ID, url.Values{"text": {"исправлено"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), w.Header().Get("Location"))

	var updated models.Post
	require.NoError(t, db.ORM.First(&updated, post.ID).Error)
	assert.Equal(t, "исправлено", updated.Text)
}

func TestEditUnknownPost(t *testing.T) {
	router := setupRouter(t)
	user := createUser(t, "")

	w := doGet(router, "/posts/12345/edit/", user.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddComment(t *testing.T) {
	router := setupRouter(t)
	author := createUser(t, "")
	commenter := createUser(t, "")

	post := createPost(t, author.ID, nil, "пост", time.Now())
	detailURL := fmt.Sprintf("/posts/%d/", post.ID)

	w := doPostForm(router, fmt.Sprintf("/posts/%d/comment/", post.ID), commenter.ID, url.Values{"text": {"отличный пост"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailURL, w.Header().Get("Location"))

	var comment models.Comment
	require.NoError(t, db.ORM.First(&comment).Error)
	assert.Equal(t, commenter.ID, comment.AuthorID)
	assert.Equal(t, post.ID, comment.PostID)
}

// TestAddCommentInvalid - невалидный комментарий молча игнорируется,
// редирект тот же, записи нет
func TestAddCommentInvalid(t *testing.T) {
	router := setupRouter(t)
	author := createUser(t, "")

	post := createPost(t, author.ID, nil, "пост", time.Now())

	w := doPostForm(router, fmt.Sprintf("/posts/%d/comment/", post.ID), author.ID, url.Values{"text": {"  "}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), w.Header().Get("Location"))

	var count int64
	require.NoError(t, db.ORM.Model(&models.Comment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCommentUnknownPost(t *testing.T) {
	router := setupRouter(t)
	user := createUser(t, "")

	w := doPostForm(router, "/posts/12345/comment/", user.ID, url.Values{"text": {"куда?"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	router := setupRouter(t)

	w := doGet(router, "/definitely/not/a/route/", 0)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

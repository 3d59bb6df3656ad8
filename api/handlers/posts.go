package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"yatube/models"
	"yatube/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	postService    = services.NewPostService()
	groupService   = services.NewGroupService()
	commentService = services.NewCommentService()
	followService  = services.NewFollowService()
	userService    = services.NewUserService()
)

// pageNumber читает номер страницы из query. Нечисловое значение
// трактуется как первая страница, выход за границы прижимает пагинатор.
func pageNumber(c *gin.Context) int {
	page := 1
	if raw := c.Query("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}
	return page
}

func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return 0, false
	}
	return id, true
}

func authedUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID.(int64), true
}

// postForm - поля формы создания/редактирования поста
type postForm struct {
	Text    string
	GroupID *int64
	Image   string
}

// bindPostForm читает text, group и image из multipart/urlencoded формы.
// Картинка опциональна и проверяется декодированием.
func bindPostForm(c *gin.Context) (*postForm, error) {
	form := &postForm{Text: c.PostForm("text")}

	if raw := c.PostForm("group"); raw != "" {
		groupID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &services.ValidationError{Field: "group", Message: "group must be an id"}
		}
		form.GroupID = &groupID
	}

	fileHeader, err := c.FormFile("image")
	if err == nil && fileHeader != nil {
		name, err := services.SaveImage(fileHeader)
		if err != nil {
			return nil, err
		}
		form.Image = name
	}

	return form, nil
}

// validationErrors переводит ошибку валидации в ответ формы с ошибками полей
func validationErrors(c *gin.Context, err error) bool {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{vErr.Field: vErr.Message}})
		return true
	}
	return false
}

// Index - главная страница, все посты
func Index(c *gin.Context) {
	page, err := postService.ListAll(c.Request.Context(), pageNumber(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title": "Последние обновления на сайте",
		"posts": page.Posts,
		"page":  page.Page,
	})
}

// GroupPosts - посты группы, найденной по slug
func GroupPosts(c *gin.Context) {
	group, err := groupService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get group"})
		return
	}

	page, err := postService.ListByGroup(c.Request.Context(), group.ID, pageNumber(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group": group,
		"posts": page.Posts,
		"page":  page.Page,
	})
}

// Profile - страница автора с его постами.
// Для аутентифицированного запроса добавляется признак подписки.
func Profile(c *gin.Context) {
	author, err := userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	page, err := postService.ListByAuthor(c.Request.Context(), author.ID, pageNumber(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get posts"})
		return
	}

	following := false
	if userID, exists := c.Get("user_id"); exists {
		following, err = followService.IsFollowing(c.Request.Context(), userID.(int64), author.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check follow"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"author":          author,
		"username":        author.Username,
		"number_of_posts": page.Page.TotalCount,
		"posts":           page.Posts,
		"page":            page.Page,
		"following":       following,
	})
}

// PostDetail - пост с комментариями и числом постов автора
func PostDetail(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := postService.GetPost(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get post"})
		return
	}

	numberOfPosts, err := postService.CountByAuthor(c.Request.Context(), post.AuthorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count posts"})
		return
	}

	comments, err := commentService.ListByPost(c.Request.Context(), post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":            post,
		"number_of_posts": numberOfPosts,
		"comments":        comments,
	})
}

// PostCreateForm - пустая форма нового поста
func PostCreateForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"is_edit": false,
		"form":    gin.H{"text": "", "group": nil, "image": nil},
	})
}

// PostCreate создает пост и перенаправляет на профиль автора
func PostCreate(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	form, err := bindPostForm(c)
	if err != nil {
		if validationErrors(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	_, err = postService.CreatePost(c.Request.Context(), userID, form.Text, form.GroupID, form.Image)
	if err != nil {
		if validationErrors(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	user, err := userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

// editablePost загружает пост и проверяет владельца.
// Не-владелец молча перенаправляется на страницу поста.
func editablePost(c *gin.Context) (*models.Post, bool) {
	id, ok := postID(c)
	if !ok {
		return nil, false
	}

	post, err := postService.GetPost(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get post"})
		return nil, false
	}

	userID, ok := authedUserID(c)
	if !ok {
		return nil, false
	}
	if userID != post.AuthorID {
		c.Redirect(http.StatusFound, "/posts/"+strconv.FormatInt(post.ID, 10)+"/")
		c.Abort()
		return nil, false
	}
	return post, true
}

// PostEditForm - форма редактирования, только для владельца
func PostEditForm(c *gin.Context) {
	post, ok := editablePost(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"is_edit": true,
		"form":    gin.H{"text": post.Text, "group": post.GroupID, "image": post.Image},
	})
}

// PostEdit обновляет пост владельца и перенаправляет на страницу поста
func PostEdit(c *gin.Context) {
	post, ok := editablePost(c)
	if !ok {
		return
	}

	form, err := bindPostForm(c)
	if err != nil {
		if validationErrors(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	err = postService.UpdatePost(c.Request.Context(), post, form.Text, form.GroupID, form.Image)
	if err != nil {
		if validationErrors(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.Redirect(http.StatusFound, "/posts/"+strconv.FormatInt(post.ID, 10)+"/")
}

// PostDelete удаляет пост владельца вместе с комментариями
func PostDelete(c *gin.Context) {
	post, ok := editablePost(c)
	if !ok {
		return
	}

	if err := postService.DeletePost(c.Request.Context(), post.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	user, err := userService.GetByID(c.Request.Context(), post.AuthorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

// AddComment добавляет комментарий и возвращает на страницу поста.
// Невалидный текст молча игнорируется - редирект тот же.
func AddComment(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := postService.GetPost(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get post"})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	detailURL := "/posts/" + strconv.FormatInt(post.ID, 10) + "/"

	_, err = commentService.AddComment(c.Request.Context(), post.ID, userID, c.PostForm("text"))
	if err != nil {
		var vErr *services.ValidationError
		if !errors.As(err, &vErr) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
			return
		}
	}

	c.Redirect(http.StatusFound, detailURL)
}

// FollowIndex - лента постов авторов, на которых подписан пользователь
func FollowIndex(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	page, err := postService.ListFollowed(c.Request.Context(), userID, pageNumber(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title": "Все посты ваших подписок",
		"posts": page.Posts,
		"page":  page.Page,
	})
}

// ProfileFollow подписывает на автора. Повторная подписка и подписка
// на себя молча игнорируются, редирект в любом случае на профиль.
func ProfileFollow(c *gin.Context) {
	author, err := userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	if err := followService.Follow(c.Request.Context(), userID, author.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow"})
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// ProfileUnfollow отписывает от автора, отсутствующая подписка не ошибка
func ProfileUnfollow(c *gin.Context) {
	author, err := userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	if err := followService.Unfollow(c.Request.Context(), userID, author.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow"})
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

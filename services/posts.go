package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"yatube/db"
	"yatube/models"

	"gorm.io/gorm"
)

type PostService struct{}

func NewPostService() *PostService {
	return &PostService{}
}

// PostPage - одна страница постов вместе с метаданными пагинации
type PostPage struct {
	Posts []models.Post `json:"posts"`
	Page  Page          `json:"page"`
}

// paginate выполняет count + выборку страницы для уже отфильтрованного запроса.
// Посты всегда отдаются от новых к старым.
func (ps *PostService) paginate(ctx context.Context, query *gorm.DB, number int) (*PostPage, error) {
	var totalCount int64
	if err := query.Session(&gorm.Session{}).Model(&models.Post{}).Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	page := Paginate(totalCount, number)

	var posts []models.Post
	err := query.Session(&gorm.Session{}).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(POSTS_PER_PAGE).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}

	if posts == nil {
		posts = []models.Post{}
	}
	return &PostPage{Posts: posts, Page: page}, nil
}

// ListAll возвращает страницу из всех постов
func (ps *PostService) ListAll(ctx context.Context, number int) (*PostPage, error) {
	return ps.paginate(ctx, db.GetReadOnlyDB(ctx).Model(&models.Post{}), number)
}

// ListByGroup возвращает страницу постов группы
func (ps *PostService) ListByGroup(ctx context.Context, groupID int64, number int) (*PostPage, error) {
	query := db.GetReadOnlyDB(ctx).Model(&models.Post{}).Where("group_id = ?", groupID)
	return ps.paginate(ctx, query, number)
}

// ListByAuthor возвращает страницу постов автора
func (ps *PostService) ListByAuthor(ctx context.Context, authorID int64, number int) (*PostPage, error) {
	query := db.GetReadOnlyDB(ctx).Model(&models.Post{}).Where("author_id = ?", authorID)
	return ps.paginate(ctx, query, number)
}

// ListFollowed возвращает страницу постов авторов, на которых подписан пользователь
func (ps *PostService) ListFollowed(ctx context.Context, userID int64, number int) (*PostPage, error) {
	followed := db.GetReadOnlyDB(ctx).Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ?", userID)
	query := db.GetReadOnlyDB(ctx).Model(&models.Post{}).Where("author_id IN (?)", followed)
	return ps.paginate(ctx, query, number)
}

// GetPost возвращает пост по id вместе с автором и группой
func (ps *PostService) GetPost(ctx context.Context, postID int64) (*models.Post, error) {
	var post models.Post
	err := db.GetReadOnlyDB(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, postID).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// CountByAuthor возвращает общее число постов автора
func (ps *PostService) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := db.GetReadOnlyDB(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// checkGroup проверяет, что выбранная группа существует
func (ps *PostService) checkGroup(ctx context.Context, groupID *int64) error {
	if groupID == nil {
		return nil
	}
	var group models.Group
	err := db.GetReadOnlyDB(ctx).First(&group, *groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ValidationError{Field: "group", Message: "group does not exist"}
	}
	return err
}

// CreatePost создает новый пост от имени автора
func (ps *PostService) CreatePost(ctx context.Context, authorID int64, text string, groupID *int64, image string) (*models.Post, error) {
	if err := ValidatePostText(text); err != nil {
		return nil, err
	}
	if err := ps.checkGroup(ctx, groupID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:      text,
		Image:     image,
		AuthorID:  authorID,
		GroupID:   groupID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.GetWriteDB(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	go func() {
		if err := PublishPostEvent(context.Background(), PostEvent{
			PostID:    post.ID,
			AuthorID:  post.AuthorID,
			Text:      post.Text,
			CreatedAt: post.CreatedAt,
		}); err != nil {
			log.Printf("failed to publish post event: %v", err)
		}
	}()

	return post, nil
}

// UpdatePost обновляет текст, группу и картинку поста.
// Проверка владельца выполняется на уровне хендлера.
func (ps *PostService) UpdatePost(ctx context.Context, post *models.Post, text string, groupID *int64, image string) error {
	if err := ValidatePostText(text); err != nil {
		return err
	}
	if err := ps.checkGroup(ctx, groupID); err != nil {
		return err
	}

	post.Text = text
	post.GroupID = groupID
	if image != "" {
		post.Image = image
	}
	post.UpdatedAt = time.Now()

	updates := map[string]interface{}{
		"text":       post.Text,
		"group_id":   post.GroupID,
		"image":      post.Image,
		"updated_at": post.UpdatedAt,
	}
	if err := db.GetWriteDB(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

// DeletePost удаляет пост владельца вместе с комментариями
func (ps *PostService) DeletePost(ctx context.Context, postID int64) error {
	return db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		if err := tx.Delete(&models.Post{}, postID).Error; err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		return nil
	})
}

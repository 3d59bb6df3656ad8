package services

import (
	"context"
	"fmt"
	"time"

	"yatube/db"
	"yatube/models"
)

type CommentService struct{}

func NewCommentService() *CommentService {
	return &CommentService{}
}

// AddComment создает комментарий к существующему посту
func (cs *CommentService) AddComment(ctx context.Context, postID, authorID int64, text string) (*models.Comment, error) {
	if err := ValidateCommentText(text); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:    postID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := db.GetWriteDB(ctx).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// ListByPost возвращает комментарии поста от старых к новым
func (cs *CommentService) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.GetReadOnlyDB(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"yatube/db"
	"yatube/models"
)

type FollowService struct{}

func NewFollowService() *FollowService {
	return &FollowService{}
}

// IsFollowing проверяет, существует ли подписка user -> author
func (fs *FollowService) IsFollowing(ctx context.Context, userID, authorID int64) (bool, error) {
	var count int64
	err := db.GetReadOnlyDB(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return count > 0, nil
}

// CanFollow - подписка возможна, если это не сам автор и подписки еще нет
func (fs *FollowService) CanFollow(ctx context.Context, userID, authorID int64) (bool, error) {
	if userID == authorID {
		return false, nil
	}
	following, err := fs.IsFollowing(ctx, userID, authorID)
	if err != nil {
		return false, err
	}
	return !following, nil
}

// Follow создает подписку. Подписка на себя и повторная подписка
// молча игнорируются.
func (fs *FollowService) Follow(ctx context.Context, userID, authorID int64) error {
	ok, err := fs.CanFollow(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	follow := &models.Follow{
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}
	if err := db.GetWriteDB(ctx).Create(follow).Error; err != nil {
		// Гонку на уникальном индексе (user_id, author_id) глотаем так же,
		// как повторную подписку.
		return nil
	}
	return nil
}

// Unfollow удаляет подписку. Отсутствующая подписка не считается ошибкой.
func (fs *FollowService) Unfollow(ctx context.Context, userID, authorID int64) error {
	err := db.GetWriteDB(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

package services

import (
	"context"
	"fmt"

	"yatube/db"
	"yatube/models"

	"gorm.io/gorm"
)

type UserService struct{}

func NewUserService() *UserService {
	return &UserService{}
}

// GetByUsername возвращает пользователя по имени
func (us *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := db.GetReadOnlyDB(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID возвращает пользователя по id
func (us *UserService) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	err := db.GetReadOnlyDB(ctx).First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByToken возвращает пользователя по токену сессии, выданному
// внешним провайдером идентичности
func (us *UserService) GetByToken(ctx context.Context, token string) (*models.User, error) {
	var userToken models.UserToken
	err := db.GetReadOnlyDB(ctx).Where("token = ?", token).First(&userToken).Error
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.GetReadOnlyDB(ctx).First(&user, userToken.UserID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser удаляет пользователя вместе с его постами, комментариями
// и подписками в обе стороны. Ссылки других постов не затрагиваются.
func (us *UserService) DeleteUser(ctx context.Context, userID int64) error {
	return db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		postIDs := tx.Model(&models.Post{}).Select("id").Where("author_id = ?", userID)
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments on user posts: %w", err)
		}
		if err := tx.Where("author_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete user comments: %w", err)
		}
		if err := tx.Where("author_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("failed to delete user posts: %w", err)
		}
		if err := tx.Where("user_id = ? OR author_id = ?", userID, userID).Delete(&models.Follow{}).Error; err != nil {
			return fmt.Errorf("failed to delete user follows: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserToken{}).Error; err != nil {
			return fmt.Errorf("failed to delete user tokens: %w", err)
		}
		if err := tx.Delete(&models.User{}, userID).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

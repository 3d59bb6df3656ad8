package services

import (
	"context"
	"fmt"
	"strings"

	"yatube/db"
	"yatube/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type GroupService struct{}

func NewGroupService() *GroupService {
	return &GroupService{}
}

// GetBySlug возвращает группу по slug
func (gs *GroupService) GetBySlug(ctx context.Context, slugValue string) (*models.Group, error) {
	var group models.Group
	err := db.GetReadOnlyDB(ctx).Where("slug = ?", slugValue).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// CreateGroup создает группу с уникальным slug.
// Если slug не передан, он строится из заголовка.
func (gs *GroupService) CreateGroup(ctx context.Context, title, slugValue, description string) (*models.Group, error) {
	if len(strings.Fields(title)) == 0 {
		return nil, &ValidationError{Field: "title", Message: "title must not be blank"}
	}
	if len(title) > 200 {
		return nil, &ValidationError{Field: "title", Message: "title must be at most 200 characters"}
	}

	if slugValue == "" {
		slugValue = title
	}
	slugValue = slug.Make(slugValue)
	if slugValue == "" {
		return nil, &ValidationError{Field: "slug", Message: "slug must not be blank"}
	}

	var existing int64
	err := db.GetReadOnlyDB(ctx).Model(&models.Group{}).Where("slug = ?", slugValue).Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if existing > 0 {
		return nil, &ValidationError{Field: "slug", Message: "group with this slug already exists"}
	}

	group := &models.Group{
		Title:       title,
		Slug:        slugValue,
		Description: description,
	}
	if err := db.GetWriteDB(ctx).Create(group).Error; err != nil {
		// Гонка на уникальном индексе считается ошибкой валидации
		return nil, &ValidationError{Field: "slug", Message: "group with this slug already exists"}
	}
	return group, nil
}

// DeleteGroup удаляет группу, обнуляя ссылку на нее у постов
func (gs *GroupService) DeleteGroup(ctx context.Context, groupID int64) error {
	return db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Post{}).Where("group_id = ?", groupID).Update("group_id", nil).Error
		if err != nil {
			return fmt.Errorf("failed to detach posts: %w", err)
		}
		if err := tx.Delete(&models.Group{}, groupID).Error; err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		return nil
	})
}

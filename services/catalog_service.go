package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-ordering/models"
)

// CatalogService is the read side of the menu used by the public pages.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

func (s *CatalogService) RestaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, newValidationError("restaurant", "is required")
	}

	var restaurant models.Restaurant
	err := s.DB.WithContext(ctx).Where("slug = ?", slug).First(&restaurant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "restaurant", ID: slug}
	}
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// Menu returns active categories with their available items, modifiers and
// available options, all in display order.
func (s *CatalogService) Menu(ctx context.Context, scope Scope) ([]models.Category, error) {
	categories := []models.Category{}
	err := s.DB.WithContext(ctx).
		Where("restaurant_id = ? AND is_active = ?", scope.RestaurantID, true).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_available = ?", true).Order("display_order ASC, id ASC")
		}).
		Preload("Items.Modifiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Preload("Items.Modifiers.Options", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_available = ?", true).Order("display_order ASC, id ASC")
		}).
		Order("display_order ASC, id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

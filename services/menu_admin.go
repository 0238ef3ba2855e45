package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-ordering/models"
)

// CategoryInput and ItemInput are partial: nil fields are left untouched on
// update and take their default on create.
type CategoryInput struct {
	Name         *string
	NameAr       *string
	ImageURL     *string
	DisplayOrder *int
	IsActive     *bool
}

type ItemInput struct {
	CategoryID   *uint
	Name         *string
	NameAr       *string
	Description  *string
	Price        *decimal.Decimal
	ImageURL     *string
	IsAvailable  *bool
	DisplayOrder *int
}

// MenuAdminService edits the catalog of one restaurant. Items are never
// removed once an order references them; they are switched off instead.
type MenuAdminService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewMenuAdminService(db *gorm.DB) *MenuAdminService {
	return &MenuAdminService{DB: db, Now: time.Now}
}

func (s *MenuAdminService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// ListCategories returns every category of the scope, inactive ones included,
// with all their items.
func (s *MenuAdminService) ListCategories(ctx context.Context, scope Scope) ([]models.Category, error) {
	categories := []models.Category{}
	err := s.DB.WithContext(ctx).
		Where("restaurant_id = ?", scope.RestaurantID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Order("display_order ASC, id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *MenuAdminService) CreateCategory(ctx context.Context, scope Scope, in CategoryInput) (*models.Category, error) {
	if in.Name == nil {
		return nil, newValidationError("name", "is required")
	}
	fields, err := categoryFields(in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	category := models.Category{
		RestaurantID: scope.RestaurantID,
		Name:         fields["name"].(string),
		NameAr:       stringField(fields, "name_ar"),
		ImageURL:     stringField(fields, "image_url"),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.DisplayOrder != nil {
		category.DisplayOrder = *in.DisplayOrder
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}

	if err := s.DB.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &category, nil
}

func (s *MenuAdminService) UpdateCategory(ctx context.Context, scope Scope, id uint, in CategoryInput) (*models.Category, error) {
	fields, err := categoryFields(in)
	if err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	category, err := findCategory(db, scope, id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		fields["updated_at"] = s.now()
		if err := db.Model(&models.Category{ID: category.ID}).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return findCategory(db, scope, id)
}

// DeleteCategory only removes empty categories.
func (s *MenuAdminService) DeleteCategory(ctx context.Context, scope Scope, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := findCategory(tx, scope, id)
		if err != nil {
			return err
		}
		var items int64
		if err := tx.Model(&models.Item{}).Where("category_id = ?", category.ID).Count(&items).Error; err != nil {
			return err
		}
		if items > 0 {
			return &ConflictError{Message: fmt.Sprintf("category %d still has %d items", id, items)}
		}
		return tx.Delete(&models.Category{}, category.ID).Error
	})
}

func (s *MenuAdminService) CreateItem(ctx context.Context, scope Scope, in ItemInput) (*models.Item, error) {
	if in.CategoryID == nil {
		return nil, newValidationError("categoryId", "is required")
	}
	if in.Name == nil {
		return nil, newValidationError("name", "is required")
	}
	if in.Price == nil {
		return nil, newValidationError("price", "is required")
	}
	fields, err := itemFields(in)
	if err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	if _, err := findCategory(db, scope, *in.CategoryID); err != nil {
		return nil, err
	}

	now := s.now()
	item := models.Item{
		CategoryID:  *in.CategoryID,
		Name:        fields["name"].(string),
		NameAr:      stringField(fields, "name_ar"),
		Description: stringField(fields, "description"),
		Price:       fields["price"].(decimal.Decimal),
		ImageURL:    stringField(fields, "image_url"),
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.DisplayOrder != nil {
		item.DisplayOrder = *in.DisplayOrder
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}

	if err := db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return &item, nil
}

func (s *MenuAdminService) UpdateItem(ctx context.Context, scope Scope, id uint, in ItemInput) (*models.Item, error) {
	fields, err := itemFields(in)
	if err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	item, err := findItem(db, scope, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil && *in.CategoryID != item.CategoryID {
		if _, err := findCategory(db, scope, *in.CategoryID); err != nil {
			return nil, err
		}
	}
	if len(fields) > 0 {
		fields["updated_at"] = s.now()
		if err := db.Model(&models.Item{ID: item.ID}).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return findItem(db, scope, id)
}

// DeleteItem refuses items that placed orders point at.
func (s *MenuAdminService) DeleteItem(ctx context.Context, scope Scope, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := findItem(tx, scope, id)
		if err != nil {
			return err
		}

		var refs int64
		if err := tx.Model(&models.OrderItem{}).Where("item_id = ?", item.ID).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return &ConflictError{Message: fmt.Sprintf("item %d is referenced by orders; mark it unavailable instead", id)}
		}

		modifierIDs := tx.Model(&models.Modifier{}).Select("id").Where("item_id = ?", item.ID)
		if err := tx.Where("modifier_id IN (?)", modifierIDs).Delete(&models.ModifierOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.Modifier{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Item{}, item.ID).Error
	})
}

func findCategory(db *gorm.DB, scope Scope, id uint) (*models.Category, error) {
	var category models.Category
	err := db.Where("id = ? AND restaurant_id = ?", id, scope.RestaurantID).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "category", ID: fmt.Sprint(id)}
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func findItem(db *gorm.DB, scope Scope, id uint) (*models.Item, error) {
	var item models.Item
	err := db.Preload("Modifiers.Options").
		Where("id = ?", id).
		Where("category_id IN (?)", db.Model(&models.Category{}).Select("id").Where("restaurant_id = ?", scope.RestaurantID)).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "item", ID: fmt.Sprint(id)}
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func categoryFields(in CategoryInput) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if in.Name != nil {
		name, err := requiredName(*in.Name, 100)
		if err != nil {
			return nil, err
		}
		fields["name"] = name
	}
	if in.NameAr != nil {
		fields["name_ar"] = optionalString(*in.NameAr)
	}
	if in.ImageURL != nil {
		url, err := imageURL(*in.ImageURL)
		if err != nil {
			return nil, err
		}
		fields["image_url"] = url
	}
	if in.DisplayOrder != nil {
		fields["display_order"] = *in.DisplayOrder
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	return fields, nil
}

func itemFields(in ItemInput) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if in.CategoryID != nil {
		fields["category_id"] = *in.CategoryID
	}
	if in.Name != nil {
		name, err := requiredName(*in.Name, 255)
		if err != nil {
			return nil, err
		}
		fields["name"] = name
	}
	if in.NameAr != nil {
		fields["name_ar"] = optionalString(*in.NameAr)
	}
	if in.Description != nil {
		fields["description"] = optionalString(*in.Description)
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return nil, newValidationError("price", "must be greater than zero")
		}
		fields["price"] = in.Price.Round(2)
	}
	if in.ImageURL != nil {
		url, err := imageURL(*in.ImageURL)
		if err != nil {
			return nil, err
		}
		fields["image_url"] = url
	}
	if in.IsAvailable != nil {
		fields["is_available"] = *in.IsAvailable
	}
	if in.DisplayOrder != nil {
		fields["display_order"] = *in.DisplayOrder
	}
	return fields, nil
}

func requiredName(value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", newValidationError("name", "is required")
	}
	if len([]rune(value)) > max {
		return "", newValidationError("name", fmt.Sprintf("must be at most %d characters", max))
	}
	return value, nil
}

func imageURL(value string) (*string, error) {
	url := optionalString(value)
	if url == nil {
		return nil, nil
	}
	if !strings.HasPrefix(*url, "/") && !strings.HasPrefix(*url, "http://") && !strings.HasPrefix(*url, "https://") {
		return nil, newValidationError("imageUrl", "must be a relative path or an http(s) url")
	}
	return url, nil
}

func stringField(fields map[string]interface{}, key string) *string {
	v, ok := fields[key].(*string)
	if !ok {
		return nil
	}
	return v
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yeremiapane/restaurant-ordering/models"
)

func TestRestaurantBySlug(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	catalog := NewCatalogService(db)

	restaurant, err := catalog.RestaurantBySlug(context.Background(), " zen-acham ")
	require.NoError(t, err)
	assert.Equal(t, f.Restaurant.ID, restaurant.ID)

	_, err = catalog.RestaurantBySlug(context.Background(), "nowhere")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = catalog.RestaurantBySlug(context.Background(), "")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestMenuHidesUnavailableEntries(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)

	hidden := models.Category{RestaurantID: f.Restaurant.ID, Name: "Hidden", IsActive: false}
	require.NoError(t, db.Create(&hidden).Error)
	require.NoError(t, db.Model(&f.SauceBlanche).Update("is_available", false).Error)

	menu, err := NewCatalogService(db).Menu(context.Background(), f.scope())
	require.NoError(t, err)
	require.Len(t, menu, 1)

	items := menu[0].Items
	require.Len(t, items, 1)
	assert.Equal(t, "Sandwich Poulet", items[0].Name)
	require.Len(t, items[0].Modifiers, 1)
	require.Len(t, items[0].Modifiers[0].Options, 1)
	assert.Equal(t, "Fromage", items[0].Modifiers[0].Options[0].Name)
}

func ptr[T any](v T) *T { return &v }

func TestMenuAdminCategories(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewMenuAdminService(db)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, f.scope(), CategoryInput{Name: ptr(" Boissons "), ImageURL: ptr("/img/drinks.png")})
	require.NoError(t, err)
	assert.Equal(t, "Boissons", created.Name)
	assert.True(t, created.IsActive)

	updated, err := svc.UpdateCategory(ctx, f.scope(), created.ID, CategoryInput{IsActive: ptr(false), DisplayOrder: ptr(3)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, 3, updated.DisplayOrder)
	assert.Equal(t, "Boissons", updated.Name)

	_, err = svc.CreateCategory(ctx, f.scope(), CategoryInput{Name: ptr("x"), ImageURL: ptr("ftp://x")})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.UpdateCategory(ctx, Scope{RestaurantID: f.Other.ID}, created.ID, CategoryInput{Name: ptr("stolen")})
	assert.True(t, errors.Is(err, ErrNotFound))

	all, err := svc.ListCategories(ctx, f.scope())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	err = svc.DeleteCategory(ctx, f.scope(), f.Category.ID)
	assert.True(t, errors.Is(err, ErrConflict))
	require.NoError(t, svc.DeleteCategory(ctx, f.scope(), created.ID))
}

func TestMenuAdminItems(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewMenuAdminService(db)
	ctx := context.Background()

	price := decimal.RequireFromString("22.50")
	item, err := svc.CreateItem(ctx, f.scope(), ItemInput{CategoryID: &f.Category.ID, Name: ptr("Falafel"), Price: &price})
	require.NoError(t, err)
	assert.True(t, item.IsAvailable)
	assert.Equal(t, "22.50", item.Price.StringFixed(2))

	zero := decimal.Zero
	_, err = svc.CreateItem(ctx, f.scope(), ItemInput{CategoryID: &f.Category.ID, Name: ptr("Free"), Price: &zero})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "price", verr.Field)

	_, err = svc.CreateItem(ctx, f.scope(), ItemInput{CategoryID: ptr(f.OtherItem.CategoryID), Name: ptr("Sneaky"), Price: &price})
	assert.True(t, errors.Is(err, ErrNotFound))

	updated, err := svc.UpdateItem(ctx, f.scope(), item.ID, ItemInput{IsAvailable: ptr(false), Description: ptr("pois chiches")})
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)
	require.NotNil(t, updated.Description)

	_, err = svc.UpdateItem(ctx, f.scope(), f.OtherItem.ID, ItemInput{Name: ptr("x")})
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, svc.DeleteItem(ctx, f.scope(), item.ID))
	assert.Equal(t, int64(3), countRows(t, db, &models.Item{}))
}

func TestCreatedItemPriceKeepsOrderLinesConsistent(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	ctx := context.Background()

	price := decimal.RequireFromString("12.345")
	item, err := NewMenuAdminService(db).CreateItem(ctx, f.scope(), ItemInput{CategoryID: &f.Category.ID, Name: ptr("Msemen"), Price: &price})
	require.NoError(t, err)

	var stored models.Item
	require.NoError(t, db.First(&stored, item.ID).Error)
	assert.Equal(t, "12.35", stored.Price.String())

	orders := newTestOrderService(db, StatusPolicyPermissive, nil)
	order, err := orders.CreateOrder(ctx, f.scope(), CreateOrderInput{
		CustomerName:  "Imane",
		CustomerPhone: "0633",
		OrderType:     "DINE_IN",
		Lines:         []LineRequest{{ItemID: item.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)

	line := order.Items[0]
	assert.Equal(t, "12.35", line.UnitPrice.String())
	assert.True(t, line.UnitPrice.Mul(decimal.NewFromInt(3)).Equal(line.TotalPrice), "line total %s", line.TotalPrice)
	assert.True(t, line.TotalPrice.Equal(order.TotalAmount))
}

func TestDeleteItemReferencedByOrder(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	orders := newTestOrderService(db, StatusPolicyPermissive, nil)
	_, err := orders.CreateOrder(context.Background(), f.scope(), sandwichOrder(f))
	require.NoError(t, err)

	err = NewMenuAdminService(db).DeleteItem(context.Background(), f.scope(), f.Sandwich.ID)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, int64(2), countRows(t, db, &models.ModifierOption{}))
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := models.Admin{Email: "admin@zenacham.com", PasswordHash: string(hash), RestaurantID: f.Restaurant.ID}
	require.NoError(t, db.Create(&admin).Error)

	auth := NewAuthService(db, []byte("secret"), time.Hour)

	result, err := auth.Login(context.Background(), " Admin@ZenAcham.com ", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, f.Restaurant.ID, result.Admin.RestaurantID)

	_, err = auth.Login(context.Background(), "admin@zenacham.com", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = auth.Login(context.Background(), "nobody@zenacham.com", "admin123")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

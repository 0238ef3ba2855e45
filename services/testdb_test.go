package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-ordering/database"
	"github.com/yeremiapane/restaurant-ordering/models"
)

// setupTestDB opens a private in-memory database for one test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

type fixture struct {
	Restaurant   models.Restaurant
	Other        models.Restaurant
	Category     models.Category
	Sandwich     models.Item
	Tabouleh     models.Item
	OtherItem    models.Item
	Fromage      models.ModifierOption
	SauceBlanche models.ModifierOption
}

// seedFixture creates two restaurants. The first sells a 35.00 sandwich with
// a 10.00 cheese supplement and a free sauce, plus an unavailable tabouleh.
func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	var f fixture

	f.Restaurant = models.Restaurant{Slug: "zen-acham", Name: "ZEN ACHAM", Currency: "DH"}
	require.NoError(t, db.Create(&f.Restaurant).Error)
	f.Other = models.Restaurant{Slug: "other", Name: "Other", Currency: "DH"}
	require.NoError(t, db.Create(&f.Other).Error)

	f.Category = models.Category{RestaurantID: f.Restaurant.ID, Name: "Sandwiches", IsActive: true}
	require.NoError(t, db.Create(&f.Category).Error)

	f.Sandwich = models.Item{
		CategoryID:  f.Category.ID,
		Name:        "Sandwich Poulet",
		Price:       decimal.NewFromInt(35),
		IsAvailable: true,
	}
	require.NoError(t, db.Create(&f.Sandwich).Error)

	supplements := models.Modifier{ItemID: f.Sandwich.ID, Name: "Suppléments", Type: models.ModifierSupplement}
	require.NoError(t, db.Create(&supplements).Error)
	f.Fromage = models.ModifierOption{ModifierID: supplements.ID, Name: "Fromage", Price: decimal.NewFromInt(10), IsAvailable: true}
	require.NoError(t, db.Create(&f.Fromage).Error)
	f.SauceBlanche = models.ModifierOption{ModifierID: supplements.ID, Name: "Sauce blanche", Price: decimal.Zero, IsAvailable: true, DisplayOrder: 1}
	require.NoError(t, db.Create(&f.SauceBlanche).Error)

	f.Tabouleh = models.Item{CategoryID: f.Category.ID, Name: "Tabouleh", Price: decimal.NewFromInt(30), IsAvailable: false}
	require.NoError(t, db.Create(&f.Tabouleh).Error)

	otherCategory := models.Category{RestaurantID: f.Other.ID, Name: "Pizza", IsActive: true}
	require.NoError(t, db.Create(&otherCategory).Error)
	f.OtherItem = models.Item{CategoryID: otherCategory.ID, Name: "Margherita", Price: decimal.NewFromInt(50), IsAvailable: true}
	require.NoError(t, db.Create(&f.OtherItem).Error)

	return f
}

func (f fixture) scope() Scope { return Scope{RestaurantID: f.Restaurant.ID} }

// fakeClock hands out strictly increasing times, one minute apart.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}

type recordingNotifier struct {
	mu      sync.Mutex
	created []models.Order
	changed []models.OrderStatus
}

func (n *recordingNotifier) OrderCreated(order models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, order)
}

func (n *recordingNotifier) OrderStatusChanged(order models.Order, previous models.OrderStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, order.Status)
}

func (n *recordingNotifier) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.created), len(n.changed)
}

func newTestOrderService(db *gorm.DB, policy StatusPolicy, notifier Notifier) *OrderService {
	svc := NewOrderService(db, PricingEngine{OptionPolicy: OptionPolicyStrict}, policy, notifier)
	svc.Now = newFakeClock().Now
	return svc
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

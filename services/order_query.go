package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-ordering/models"
)

// DefaultSearchLimit caps search results when no limit is configured.
const DefaultSearchLimit = 10

// OrderQueryService serves the customer status page and the admin dashboard.
type OrderQueryService struct {
	DB          *gorm.DB
	SearchLimit int
}

func NewOrderQueryService(db *gorm.DB, searchLimit int) *OrderQueryService {
	if searchLimit <= 0 {
		searchLimit = DefaultSearchLimit
	}
	return &OrderQueryService{DB: db, SearchLimit: searchLimit}
}

type SearchQuery struct {
	Phone   string
	OrderID string
}

// Search finds orders by exact phone and/or order id, newest first. Ids are
// time ordered, so orders sharing a timestamp still sort by creation. An empty
// result is a NotFound, never an empty list.
func (q *OrderQueryService) Search(ctx context.Context, scope Scope, query SearchQuery) ([]models.Order, error) {
	phone := strings.TrimSpace(query.Phone)
	orderID := strings.TrimSpace(query.OrderID)
	if phone == "" && orderID == "" {
		return nil, newValidationError("phone", "phone or orderId is required")
	}

	db := withOrderDetails(q.DB.WithContext(ctx)).Where("restaurant_id = ?", scope.RestaurantID)
	if phone != "" {
		db = db.Where("customer_phone = ?", phone)
	}
	if orderID != "" {
		db = db.Where("id = ?", orderID)
	}

	limit := q.SearchLimit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var orders []models.Order
	if err := db.Order("created_at DESC, id DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, &NotFoundError{Resource: "order"}
	}
	return orders, nil
}

func (q *OrderQueryService) Get(ctx context.Context, scope Scope, orderID string) (*models.Order, error) {
	return findOrder(ctx, q.DB, scope, strings.TrimSpace(orderID))
}

type ListFilter struct {
	Status string
	Limit  int
}

// List returns the orders of the scope for the dashboard, newest first.
func (q *OrderQueryService) List(ctx context.Context, scope Scope, filter ListFilter) ([]models.Order, error) {
	db := withOrderDetails(q.DB.WithContext(ctx)).Where("restaurant_id = ?", scope.RestaurantID)

	if filter.Status != "" {
		status, ok := models.ParseOrderStatus(filter.Status)
		if !ok {
			return nil, &InvalidStatusError{Value: filter.Status}
		}
		db = db.Where("status = ?", status)
	}
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}

	orders := []models.Order{}
	if err := db.Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

type DashboardStats struct {
	TotalOrders  int64                        `json:"totalOrders"`
	TodayOrders  int64                        `json:"todayOrders"`
	TodayRevenue decimal.Decimal              `json:"todayRevenue"`
	ByStatus     map[models.OrderStatus]int64 `json:"byStatus"`
}

// Stats summarizes the scope. Revenue sums today's non-cancelled orders.
func (q *OrderQueryService) Stats(ctx context.Context, scope Scope, now time.Time) (*DashboardStats, error) {
	db := q.DB.WithContext(ctx)
	stats := &DashboardStats{
		TodayRevenue: decimal.Zero,
		ByStatus:     make(map[models.OrderStatus]int64, len(models.OrderStatuses)),
	}
	for _, st := range models.OrderStatuses {
		stats.ByStatus[st] = 0
	}

	var rows []struct {
		Status models.OrderStatus
		Count  int64
	}
	err := db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Where("restaurant_id = ?", scope.RestaurantID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		stats.ByStatus[r.Status] = r.Count
		stats.TotalOrders += r.Count
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	var today []models.Order
	err = db.Select("status", "total_amount").
		Where("restaurant_id = ? AND created_at >= ? AND created_at < ?", scope.RestaurantID, start, end).
		Find(&today).Error
	if err != nil {
		return nil, err
	}
	stats.TodayOrders = int64(len(today))
	for _, o := range today {
		if o.Status != models.OrderStatusCancelled {
			stats.TodayRevenue = stats.TodayRevenue.Add(o.TotalAmount)
		}
	}

	return stats, nil
}

func withOrderDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id ASC") }).
		Preload("Items.Item").
		Preload("Items.Modifiers", func(db *gorm.DB) *gorm.DB { return db.Order("order_item_modifiers.id ASC") }).
		Preload("Items.Modifiers.ModifierOption")
}

func findOrder(ctx context.Context, db *gorm.DB, scope Scope, orderID string) (*models.Order, error) {
	var order models.Order
	err := withOrderDetails(db.WithContext(ctx)).
		Where("id = ? AND restaurant_id = ?", orderID, scope.RestaurantID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "order", ID: orderID}
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/restaurant-ordering/models"
)

// Scope is the tenant context every order operation runs in.
type Scope struct {
	RestaurantID uint
}

// Notifier is told about committed order changes. Implementations must not block.
type Notifier interface {
	OrderCreated(order models.Order)
	OrderStatusChanged(order models.Order, previous models.OrderStatus)
}

type nopNotifier struct{}

func (nopNotifier) OrderCreated(models.Order)                             {}
func (nopNotifier) OrderStatusChanged(models.Order, models.OrderStatus) {}

type CreateOrderInput struct {
	CustomerName  string
	CustomerPhone string
	OrderType     string
	// PickupTime is "HH:MM" on the day the order is placed.
	PickupTime string
	Notes      string
	Lines      []LineRequest
}

// OrderService creates orders and governs their status.
//
// Status writes are last-write-wins: there is no version check, so two staff
// members moving the same order race on the final value.
type OrderService struct {
	DB       *gorm.DB
	Pricing  PricingEngine
	Policy   StatusPolicy
	Notifier Notifier
	Now      func() time.Time
}

func NewOrderService(db *gorm.DB, pricing PricingEngine, policy StatusPolicy, notifier Notifier) *OrderService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &OrderService{
		DB:       db,
		Pricing:  pricing,
		Policy:   policy,
		Notifier: notifier,
		Now:      time.Now,
	}
}

func (s *OrderService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *OrderService) notifier() Notifier {
	if s.Notifier == nil {
		return nopNotifier{}
	}
	return s.Notifier
}

// CreateOrder prices the lines against the live catalog and stores the order
// with all its lines in one transaction. Nothing is written when any line fails.
func (s *OrderService) CreateOrder(ctx context.Context, scope Scope, in CreateOrderInput) (*models.Order, error) {
	now := s.now()

	if scope.RestaurantID == 0 {
		return nil, newValidationError("restaurantId", "is required")
	}
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return nil, newValidationError("customerName", "is required")
	}
	phone := strings.TrimSpace(in.CustomerPhone)
	if phone == "" {
		return nil, newValidationError("customerPhone", "is required")
	}
	orderType, ok := models.ParseOrderType(in.OrderType)
	if !ok {
		return nil, newValidationError("orderType", "must be DINE_IN or TAKEAWAY")
	}
	if len(in.Lines) == 0 {
		return nil, newValidationError("items", "at least one item is required")
	}
	pickup, err := parsePickupTime(in.PickupTime, now)
	if err != nil {
		return nil, err
	}

	var orderID string
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureRestaurant(tx, scope.RestaurantID); err != nil {
			return err
		}

		catalog, err := loadCatalog(tx, scope.RestaurantID, in.Lines)
		if err != nil {
			return err
		}

		priced, err := s.Pricing.Price(catalog, in.Lines)
		if err != nil {
			return err
		}

		order := models.Order{
			RestaurantID:  scope.RestaurantID,
			CustomerName:  name,
			CustomerPhone: phone,
			OrderType:     orderType,
			PickupTime:    pickup,
			TotalAmount:   priced.Total,
			Status:        models.OrderStatusNew,
			Notes:         orderNotes(in),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for _, line := range priced.Lines {
			item := models.OrderItem{
				OrderID:    order.ID,
				ItemID:     line.Item.ID,
				ItemName:   line.Item.Name,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: line.TotalPrice,
				Notes:      optionalString(line.Notes),
				CreatedAt:  now,
			}
			if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}

			if len(line.Modifiers) == 0 {
				continue
			}
			mods := make([]models.OrderItemModifier, 0, len(line.Modifiers))
			for _, m := range line.Modifiers {
				mods = append(mods, models.OrderItemModifier{
					OrderItemID:      item.ID,
					ModifierOptionID: m.Option.ID,
					OptionName:       m.Option.Name,
					Quantity:         m.Quantity,
					UnitPrice:        m.UnitPrice,
					TotalPrice:       m.TotalPrice,
					CreatedAt:        now,
				})
			}
			if err := tx.Omit(clause.Associations).Create(&mods).Error; err != nil {
				return fmt.Errorf("insert order item modifiers: %w", err)
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := findOrder(ctx, s.DB, scope, orderID)
	if err != nil {
		return nil, err
	}
	s.notifier().OrderCreated(*order)
	return order, nil
}

// UpdateStatus writes a new status on an order of the scope. Re-applying the
// current status is a no-op.
func (s *OrderService) UpdateStatus(ctx context.Context, scope Scope, orderID string, target string) (*models.Order, error) {
	status, ok := models.ParseOrderStatus(target)
	if !ok {
		return nil, &InvalidStatusError{Value: target}
	}

	var previous models.OrderStatus
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Select("id", "status").
			Where("id = ? AND restaurant_id = ?", orderID, scope.RestaurantID).
			First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "order", ID: orderID}
		}
		if err != nil {
			return err
		}

		previous = order.Status
		if previous == status {
			return nil
		}
		if !s.Policy.Allows(previous, status) {
			return &TransitionError{From: previous, To: status}
		}

		return tx.Model(&models.Order{}).
			Where("id = ? AND restaurant_id = ?", orderID, scope.RestaurantID).
			Updates(map[string]interface{}{
				"status":     status,
				"updated_at": s.now(),
			}).Error
	})
	if err != nil {
		return nil, err
	}

	order, err := findOrder(ctx, s.DB, scope, orderID)
	if err != nil {
		return nil, err
	}
	if previous != status {
		s.notifier().OrderStatusChanged(*order, previous)
	}
	return order, nil
}

func ensureRestaurant(tx *gorm.DB, restaurantID uint) error {
	var count int64
	if err := tx.Model(&models.Restaurant{}).Where("id = ?", restaurantID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &NotFoundError{Resource: "restaurant", ID: fmt.Sprint(restaurantID)}
	}
	return nil
}

// loadCatalog reads the requested items of the restaurant with their
// modifiers and options. Items of other restaurants are simply absent.
func loadCatalog(tx *gorm.DB, restaurantID uint, lines []LineRequest) (Catalog, error) {
	ids := make([]uint, 0, len(lines))
	seen := make(map[uint]bool, len(lines))
	for _, l := range lines {
		if !seen[l.ItemID] {
			seen[l.ItemID] = true
			ids = append(ids, l.ItemID)
		}
	}

	var items []models.Item
	err := tx.Preload("Modifiers.Options").
		Where("id IN ?", ids).
		Where("category_id IN (?)", tx.Model(&models.Category{}).Select("id").Where("restaurant_id = ?", restaurantID)).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return NewCatalog(items), nil
}

func parsePickupTime(value string, now time.Time) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	clock, err := time.Parse("15:04", value)
	if err != nil {
		return nil, newValidationError("pickupTime", "must use HH:MM")
	}
	t := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())
	return &t, nil
}

// orderNotes falls back to the first line note when no order-level note is given.
func orderNotes(in CreateOrderInput) *string {
	if n := optionalString(in.Notes); n != nil {
		return n
	}
	for _, l := range in.Lines {
		if n := optionalString(l.Notes); n != nil {
			return n
		}
	}
	return nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

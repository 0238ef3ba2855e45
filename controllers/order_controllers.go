package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/restaurant-ordering/middlewares"
	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

type OrderController struct {
	Orders  *services.OrderService
	Queries *services.OrderQueryService
	Catalog *services.CatalogService
}

func NewOrderController(orders *services.OrderService, queries *services.OrderQueryService, catalog *services.CatalogService) *OrderController {
	return &OrderController{Orders: orders, Queries: queries, Catalog: catalog}
}

type modifierRequest struct {
	ModifierOptionID uint `json:"modifierOptionId"`
	// Quantity defaults to 1 when omitted.
	Quantity *int `json:"quantity"`
}

type orderLineRequest struct {
	ItemID    uint              `json:"itemId"`
	Quantity  int               `json:"quantity"`
	Modifiers []modifierRequest `json:"modifiers"`
	Notes     string            `json:"notes"`
}

type createOrderRequest struct {
	RestaurantID  uint               `json:"restaurantId"`
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
	OrderType     string             `json:"orderType"`
	PickupTime    string             `json:"pickupTime"`
	Notes         string             `json:"notes"`
	Items         []orderLineRequest `json:"items"`
}

func (r createOrderRequest) input() services.CreateOrderInput {
	lines := make([]services.LineRequest, 0, len(r.Items))
	for _, it := range r.Items {
		mods := make([]services.ModifierSelection, 0, len(it.Modifiers))
		for _, m := range it.Modifiers {
			qty := 1
			if m.Quantity != nil {
				qty = *m.Quantity
			}
			mods = append(mods, services.ModifierSelection{ModifierOptionID: m.ModifierOptionID, Quantity: qty})
		}
		lines = append(lines, services.LineRequest{
			ItemID:    it.ItemID,
			Quantity:  it.Quantity,
			Modifiers: mods,
			Notes:     it.Notes,
		})
	}
	return services.CreateOrderInput{
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		OrderType:     r.OrderType,
		PickupTime:    r.PickupTime,
		Notes:         r.Notes,
		Lines:         lines,
	}
}

// CreateOrder -> public checkout, prices are always taken from the catalog
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var body createOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	scope := services.Scope{RestaurantID: body.RestaurantID}
	order, err := oc.Orders.CreateOrder(c.Request.Context(), scope, body.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"short_code": order.ShortCode(),
	}).Infof("Order created, total %s", utils.FormatPrice(order.TotalAmount, ""))
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// SearchOrders -> customer status page lookup by phone and/or order id
func (oc *OrderController) SearchOrders(c *gin.Context) {
	scope, err := oc.publicScope(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	orders, err := oc.Queries.Search(c.Request.Context(), scope, services.SearchQuery{
		Phone:   c.Query("phone"),
		OrderID: c.Query("orderId"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if len(orders) == 1 {
		utils.RespondJSON(c, http.StatusOK, "Order found", orders[0])
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders found", orders)
}

// publicScope resolves ?restaurant=<slug>, or ?restaurantId=<id> as a fallback.
func (oc *OrderController) publicScope(c *gin.Context) (services.Scope, error) {
	if slug := strings.TrimSpace(c.Query("restaurant")); slug != "" {
		restaurant, err := oc.Catalog.RestaurantBySlug(c.Request.Context(), slug)
		if err != nil {
			return services.Scope{}, err
		}
		return services.Scope{RestaurantID: restaurant.ID}, nil
	}
	if raw := strings.TrimSpace(c.Query("restaurantId")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return services.Scope{}, &services.ValidationError{Field: "restaurantId", Message: "must be a positive integer"}
		}
		return services.Scope{RestaurantID: uint(id)}, nil
	}
	return services.Scope{}, &services.ValidationError{Field: "restaurant", Message: "is required"}
}

// GetAllOrders -> admin dashboard list, newest first
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	scope, ok := adminScope(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.RespondErrorMessage(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	orders, err := oc.Queries.List(c.Request.Context(), scope, services.ListFilter{
		Status: c.Query("status"),
		Limit:  limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	scope, ok := adminScope(c)
	if !ok {
		return
	}

	order, err := oc.Queries.Get(c.Request.Context(), scope, c.Param("order_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrder -> admin status change
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	scope, ok := adminScope(c)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	orderID := c.Param("order_id")
	order, err := oc.Orders.UpdateStatus(c.Request.Context(), scope, orderID, body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.WithField("order_id", orderID).Infof("Order status is now %s", order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// adminScope reads the restaurant from the verified token.
func adminScope(c *gin.Context) (services.Scope, bool) {
	id, ok := middlewares.RestaurantID(c)
	if !ok {
		utils.RespondErrorMessage(c, http.StatusUnauthorized, "unauthorized")
		c.Abort()
		return services.Scope{}, false
	}
	return services.Scope{RestaurantID: id}, true
}

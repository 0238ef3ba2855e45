package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-ordering/kds"
	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

// FeedController upgrades to websocket and hands the connection to the hub.
type FeedController struct {
	Hub      *kds.Hub
	Catalog  *services.CatalogService
	Queries  *services.OrderQueryService
	Upgrader websocket.Upgrader
}

func NewFeedController(hub *kds.Hub, catalog *services.CatalogService, queries *services.OrderQueryService, allowedOrigin string) *FeedController {
	return &FeedController{
		Hub:     hub,
		Catalog: catalog,
		Queries: queries,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" || allowedOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
	}
}

// KitchenFeed -> every order event of the admin's restaurant
func (fc *FeedController) KitchenFeed(c *gin.Context) {
	scope, ok := adminScope(c)
	if !ok {
		return
	}

	ws, err := fc.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.InfoLogger.WithError(err).Debug("Websocket upgrade failed")
		return
	}
	fc.Hub.Serve(ws, scope.RestaurantID, "")
}

// OrderFeed -> status updates of a single order, for the customer page. The
// order must exist in the restaurant before the upgrade.
func (fc *FeedController) OrderFeed(c *gin.Context) {
	slug := strings.TrimSpace(c.Query("restaurant"))
	restaurant, err := fc.Catalog.RestaurantBySlug(c.Request.Context(), slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	scope := services.Scope{RestaurantID: restaurant.ID}
	order, err := fc.Queries.Get(c.Request.Context(), scope, c.Param("order_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ws, err := fc.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.InfoLogger.WithError(err).Debug("Websocket upgrade failed")
		return
	}
	fc.Hub.Serve(ws, scope.RestaurantID, order.ID)
}

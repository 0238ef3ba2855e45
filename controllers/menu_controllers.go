package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

type MenuController struct {
	Catalog *services.CatalogService
	Menu    *services.MenuAdminService
}

func NewMenuController(catalog *services.CatalogService, menu *services.MenuAdminService) *MenuController {
	return &MenuController{Catalog: catalog, Menu: menu}
}

// GetRestaurant -> public profile by slug
func (mc *MenuController) GetRestaurant(c *gin.Context) {
	restaurant, err := mc.Catalog.RestaurantBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant", restaurant)
}

// GetMenu -> what a customer can order right now
func (mc *MenuController) GetMenu(c *gin.Context) {
	restaurant, err := mc.Catalog.RestaurantBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	categories, err := mc.Catalog.Menu(c.Request.Context(), services.Scope{RestaurantID: restaurant.ID})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu", gin.H{
		"restaurant": restaurant,
		"categories": categories,
	})
}

type itemRequest struct {
	CategoryID   *uint            `json:"categoryId"`
	Name         *string          `json:"name"`
	NameAr       *string          `json:"nameAr"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	ImageURL     *string          `json:"imageUrl"`
	IsAvailable  *bool            `json:"isAvailable"`
	DisplayOrder *int             `json:"displayOrder"`
}

func (r itemRequest) input() services.ItemInput {
	return services.ItemInput{
		CategoryID:   r.CategoryID,
		Name:         r.Name,
		NameAr:       r.NameAr,
		Description:  r.Description,
		Price:        r.Price,
		ImageURL:     r.ImageURL,
		IsAvailable:  r.IsAvailable,
		DisplayOrder: r.DisplayOrder,
	}
}

func (mc *MenuController) CreateItem(c *gin.Context) {
	scope, ok := adminScope(c)
	if !ok {
		return
	}
	var body itemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	item, err := mc.Menu.CreateItem(c.Request.Context(), scope, body.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item created", item)
}

func (mc *MenuController) UpdateItem(c *gin.Context) {
	scope, ok := adminScope(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "item_id")
	if !ok {
		return
	}
	var body itemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	item, err := mc.Menu.UpdateItem(c.Request.Context(), scope, id, body.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item updated", item)
}

// DeleteItem -> refused with 409 once an order references the item
func (mc *MenuController) DeleteItem(c *gin.Context) {
	scope, ok := adminScope(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "item_id")
	if !ok {
		return
	}

	if err := mc.Menu.DeleteItem(c.Request.Context(), scope, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item deleted", nil)
}

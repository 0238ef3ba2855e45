package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

type MenuCategoryController struct {
	Menu *services.MenuAdminService
}

func NewMenuCategoryController(menu *services.MenuAdminService) *MenuCategoryController {
	return &MenuCategoryController{Menu: menu}
}

type categoryRequest struct {
	Name         *string `json:"name"`
	NameAr       *string `json:"nameAr"`
	ImageURL     *string `json:"imageUrl"`
	DisplayOrder *int    `json:"displayOrder"`
	IsActive     *bool   `json:"isActive"`
}

func (r categoryRequest) input() services.CategoryInput {
	return services.CategoryInput{
		Name:         r.Name,
		NameAr:       r.NameAr,
		ImageURL:     r.ImageURL,
		DisplayOrder: r.DisplayOrder,
		IsActive:     r.IsActive,
	}
}

// GetAllCategories -> every category of the restaurant, inactive ones included
func (mcc *MenuCategoryController) GetAllCategories(c *gin.Context) {
	scope, ok := adminScope(c)
	if !ok {
		return
	}
	categories, err := mcc.Menu.ListCategories(c.Request.Context(), scope)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All menu categories", categories)
}

func (mcc *MenuCategoryController) CreateCategory(c *gin.Context) {
	scope, ok := adminScope(c)
	if !ok {
		return
	}
	var body categoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	category, err := mcc.Menu.CreateCategory(c.Request.Context(), scope, body.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

func (mcc *MenuCategoryController) UpdateCategory(c *gin.Context) {
	scope, ok := adminScope(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "category_id")
	if !ok {
		return
	}
	var body categoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	category, err := mcc.Menu.UpdateCategory(c.Request.Context(), scope, id, body.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

func (mcc *MenuCategoryController) DeleteCategory(c *gin.Context) {
	scope, ok := adminScope(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "category_id")
	if !ok {
		return
	}

	if err := mcc.Menu.DeleteCategory(c.Request.Context(), scope, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", nil)
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.RespondErrorMessage(c, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

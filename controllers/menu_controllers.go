package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tabletap/ordering-app/models"
	"github.com/tabletap/ordering-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenus -> public menu listing for a tenant.
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	tenantID := c.Param("tenant_id")

	var menus []models.Menu
	query := mc.DB.Preload("Category").Where("tenant_id = ?", tenantID)
	if catID := c.Query("category_id"); catID != "" {
		query = query.Where("category_id = ?", catID)
	}
	if err := query.Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenuByID
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	menuID := c.Param("menu_id")

	var menu models.Menu
	if err := mc.DB.Preload("Category").
		Where("id = ? AND tenant_id = ?", menuID, tenantID).
		First(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

type menuRequest struct {
	CategoryID  uint            `json:"category_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	IsAvailable *bool           `json:"is_available"`
	Description string          `json:"description"`
	ImageUrl    *string         `json:"image_url"`
}

// CreateMenu -> staff/admin
func (mc *MenuController) CreateMenu(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu := models.Menu{
		TenantID:    tenantID.(uint),
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		IsAvailable: true,
		Description: req.Description,
		ImageUrl:    req.ImageUrl,
	}
	if req.IsAvailable != nil {
		menu.IsAvailable = *req.IsAvailable
	}

	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// UpdateMenu -> staff/admin, partial update
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	menuID := c.Param("menu_id")

	var menu models.Menu
	if err := mc.DB.Where("id = ? AND tenant_id = ?", menuID, tenantID).First(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		CategoryID  *uint            `json:"category_id"`
		Name        *string          `json:"name"`
		Price       *decimal.Decimal `json:"price"`
		IsAvailable *bool            `json:"is_available"`
		Description *string          `json:"description"`
		ImageUrl    *string          `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.CategoryID != nil {
		menu.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Price != nil {
		menu.Price = *req.Price
	}
	if req.IsAvailable != nil {
		menu.IsAvailable = *req.IsAvailable
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.ImageUrl != nil {
		menu.ImageUrl = req.ImageUrl
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// DeleteMenu -> staff/admin
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	idStr := c.Param("menu_id")
	id, _ := strconv.Atoi(idStr)

	if err := mc.DB.Where("tenant_id = ?", tenantID).Delete(&models.Menu{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"menu_id": id})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tabletap/ordering-app/events"
	"github.com/tabletap/ordering-app/models"
	"github.com/tabletap/ordering-app/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// GetAllTables -> tables of one tenant
func (tc *TableController) GetAllTables(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	if tenantID == "" {
		tenantID, _ = c.GetQuery("tenant_id")
	}

	var tables []models.Table
	if err := tc.DB.Where("tenant_id = ?", tenantID).Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// CreateTable -> staff/admin
func (tc *TableController) CreateTable(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	var body struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		TenantID: tenantID.(uint),
		Code:     body.Code,
		Status:   "available",
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// UpdateTableStatus -> staff/admin
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	tableID := c.Param("table_id")

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.Where("id = ? AND tenant_id = ?", tableID, tenantID).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.Status = body.Status
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableUpdate(table.TenantID, table)

	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

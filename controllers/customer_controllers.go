package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tabletap/ordering-app/models"
	"github.com/tabletap/ordering-app/utils"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// ScanTable -> a diner scanned a table QR. Returns the active session for
// that table, creating one if needed.
func (cc *CustomerController) ScanTable(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	tableID := c.Param("table_id")

	var table models.Table
	if err := cc.DB.Where("id = ? AND tenant_id = ?", tableID, tenantID).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("table not found"))
		return
	}

	var customer models.Customer
	err := cc.DB.
		Where("tenant_id = ? AND table_id = ? AND status = ?", table.TenantID, table.ID, "active").
		First(&customer).Error
	if err == gorm.ErrRecordNotFound {
		key := uuid.NewString()
		customer = models.Customer{
			TenantID:   table.TenantID,
			TableID:    &table.ID,
			SessionKey: &key,
			Status:     "active",
		}
		err = cc.DB.Create(&customer).Error
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session active", customer)
}

// StartTakeawaySession -> session without a table.
func (cc *CustomerController) StartTakeawaySession(c *gin.Context) {
	tenantID := c.Param("tenant_id")

	var tenant models.Tenant
	if err := cc.DB.First(&tenant, tenantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("tenant not found"))
		return
	}

	key := uuid.NewString()
	customer := models.Customer{
		TenantID:   tenant.ID,
		SessionKey: &key,
		Status:     "active",
	}
	if err := cc.DB.Create(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Session created", customer)
}

// CloseSession -> staff closes a diner session when the table is vacated.
func (cc *CustomerController) CloseSession(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	customerID := c.Param("customer_id")

	var customer models.Customer
	if err := cc.DB.Where("id = ? AND tenant_id = ?", customerID, tenantID).First(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	customer.Status = "closed"
	if err := cc.DB.Save(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session closed", customer)
}

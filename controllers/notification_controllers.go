package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tabletap/ordering-app/models"
	"github.com/tabletap/ordering-app/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetAllNotifications -> staff/admin, newest first
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	var notifs []models.Notification
	if err := nc.DB.
		Where("tenant_id = ?", tenantID).
		Order("created_at desc").
		Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All notifications", notifs)
}

// DeleteNotification
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")
	idStr := c.Param("notif_id")
	id, _ := strconv.Atoi(idStr)

	if err := nc.DB.Where("tenant_id = ?", tenantID).Delete(&models.Notification{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification deleted", gin.H{"notification_id": id})
}

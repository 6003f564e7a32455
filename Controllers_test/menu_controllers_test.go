package Controllers_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/tabletap/ordering-app/controllers"
	"github.com/tabletap/ordering-app/models"
	"github.com/tabletap/ordering-app/utils"
)

func setupTestDBForMenus() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:menutest?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Tenant{}, &models.MenuCategory{}, &models.Menu{})
	if err != nil {
		panic(err)
	}
	tenant := models.Tenant{Name: "Warung Satu", Slug: "warung-menu", DefaultCurrency: "IDR"}
	db.Create(&tenant)
	category := models.MenuCategory{TenantID: tenant.ID, Name: "Food"}
	db.Create(&category)
	return db
}

// tenantContext stands in for the auth middleware on admin routes.
func tenantContext(tenantID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("tenant_id", tenantID)
		c.Set("role", "admin")
		c.Next()
	}
}

func setupMenuRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	menuCtrl := controllers.NewMenuController(db)

	router.GET("/tenants/:tenant_id/menus", menuCtrl.GetAllMenus)
	router.GET("/tenants/:tenant_id/menus/:menu_id", menuCtrl.GetMenuByID)

	admin := router.Group("/admin", tenantContext(1))
	admin.POST("/menus", menuCtrl.CreateMenu)
	admin.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
	admin.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)
	return router
}

func TestMenuCRUD(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMenus()
	router := setupMenuRouter(db)

	w := doJSON(router, "POST", "/admin/menus", map[string]interface{}{
		"category_id": 1,
		"name":        "Pizza",
		"price":       "12.5",
		"description": "Delicious cheese pizza",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp struct {
		Data models.Menu `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	menuID := createResp.Data.ID
	assert.NotZero(t, menuID)
	assert.True(t, createResp.Data.IsAvailable)
	assert.True(t, createResp.Data.Price.Equal(decimal.RequireFromString("12.5")))

	// Public read, tenant-scoped by path.
	url := "/tenants/1/menus/" + strconv.Itoa(int(menuID))
	w = doJSON(router, "GET", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A different tenant cannot see it.
	w = doJSON(router, "GET", "/tenants/2/menus/"+strconv.Itoa(int(menuID)), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Partial update: flip availability and reprice.
	adminURL := "/admin/menus/" + strconv.Itoa(int(menuID))
	w = doJSON(router, "PATCH", adminURL, map[string]interface{}{
		"price":        "15",
		"is_available": false,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Menu
	assert.NoError(t, db.First(&updated, menuID).Error)
	assert.False(t, updated.IsAvailable)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, "Pizza", updated.Name)

	// Delete.
	w = doJSON(router, "DELETE", adminURL, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Menu{}).Where("id = ?", menuID).Count(&count)
	assert.Equal(t, int64(0), count)
}

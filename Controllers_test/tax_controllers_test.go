package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/tabletap/ordering-app/controllers"
	"github.com/tabletap/ordering-app/models"
	"github.com/tabletap/ordering-app/utils"
)

func setupTestDBForTax(name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Tenant{}, &models.TaxConfig{})
	if err != nil {
		panic(err)
	}
	tenant := models.Tenant{Name: "Warung Satu", Slug: "warung-" + name, DefaultCurrency: "IDR"}
	db.Create(&tenant)
	return db
}

func setupTaxRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	taxCtrl := controllers.NewTaxConfigController(db)

	admin := router.Group("/admin", tenantContext(1))
	admin.GET("/tax-config", taxCtrl.GetTaxConfig)
	admin.PUT("/tax-config", taxCtrl.UpsertTaxConfig)
	return router
}

func TestTaxConfigDefaultsThenUpsert(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTax("taxupsert")
	router := setupTaxRouter(db)

	// No stored row yet: the platform default is served.
	w := doJSON(router, "GET", "/admin/tax-config", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var getResp struct {
		Data models.TaxConfig `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &getResp))
	assert.Equal(t, "0.08", getResp.Data.EffectiveRate.String())
	assert.Equal(t, models.TaxInclusive, getResp.Data.Inclusion)

	// Store a composite policy.
	w = doJSON(router, "PUT", "/admin/tax-config", map[string]interface{}{
		"effective_rate": "0.05",
		"inclusion":      "exclusive",
		"currency":       "INR",
		"breakdown": []map[string]interface{}{
			{"name": "CGST", "rate": "0.025"},
			{"name": "SGST", "rate": "0.025"},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", "/admin/tax-config", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &getResp))
	assert.Equal(t, models.TaxModeComposite, getResp.Data.Mode)
	assert.Equal(t, "INR", getResp.Data.Currency)
	assert.Len(t, getResp.Data.Breakdown, 2)

	// Upsert replaces, never duplicates.
	w = doJSON(router, "PUT", "/admin/tax-config", map[string]interface{}{
		"effective_rate": "0.1",
		"inclusion":      "inclusive",
		"currency":       "INR",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.TaxConfig{}).Where("tenant_id = ?", 1).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpsertTaxConfigValidation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTax("taxvalidation")
	router := setupTaxRouter(db)

	// Rate out of range.
	w := doJSON(router, "PUT", "/admin/tax-config", map[string]interface{}{
		"effective_rate": "1.2",
		"inclusion":      "inclusive",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Breakdown must sum to the effective rate.
	w = doJSON(router, "PUT", "/admin/tax-config", map[string]interface{}{
		"effective_rate": "0.05",
		"inclusion":      "exclusive",
		"breakdown": []map[string]interface{}{
			{"name": "CGST", "rate": "0.025"},
			{"name": "SGST", "rate": "0.03"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown inclusion flag.
	w = doJSON(router, "PUT", "/admin/tax-config", map[string]interface{}{
		"effective_rate": "0.05",
		"inclusion":      "both",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

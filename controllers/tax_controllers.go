package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tabletap/ordering-app/models"
	"github.com/tabletap/ordering-app/services"
	"github.com/tabletap/ordering-app/utils"
)

type TaxConfigController struct {
	DB  *gorm.DB
	Tax *services.TaxService
}

func NewTaxConfigController(db *gorm.DB) *TaxConfigController {
	return &TaxConfigController{DB: db, Tax: services.NewTaxService(db)}
}

// GetTaxConfig -> the effective policy, defaults included.
func (tcc *TaxConfigController) GetTaxConfig(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	cfg := tcc.Tax.Resolve(tenantID.(uint))
	utils.RespondJSON(c, http.StatusOK, "Tax configuration", cfg)
}

// UpsertTaxConfig -> admin writes the tenant policy. When a breakdown is
// given its rates must sum to the effective rate; readers trust the stored
// row, so this is the one place that invariant is enforced.
func (tcc *TaxConfigController) UpsertTaxConfig(c *gin.Context) {
	tenantID, _ := c.Get("tenant_id")

	var body struct {
		EffectiveRate decimal.Decimal         `json:"effective_rate" binding:"required"`
		Mode          string                  `json:"mode"`
		Inclusion     string                  `json:"inclusion" binding:"required,oneof=inclusive exclusive"`
		Currency      string                  `json:"currency"`
		Breakdown     models.TaxComponentList `json:"breakdown"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.EffectiveRate.IsNegative() || body.EffectiveRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("effective_rate must be in [0, 1)"))
		return
	}

	mode := body.Mode
	if mode == "" {
		mode = models.TaxModeSingle
	}
	if len(body.Breakdown) > 0 {
		mode = models.TaxModeComposite
		sum := decimal.Zero
		for _, comp := range body.Breakdown {
			if comp.Name == "" || comp.Rate.IsNegative() {
				utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid breakdown component"))
				return
			}
			sum = sum.Add(comp.Rate)
		}
		if !sum.Equal(body.EffectiveRate) {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("breakdown rates sum to %s, expected %s", sum, body.EffectiveRate))
			return
		}
	}

	cfg := models.TaxConfig{
		TenantID:      tenantID.(uint),
		EffectiveRate: body.EffectiveRate,
		Mode:          mode,
		Inclusion:     body.Inclusion,
		Currency:      body.Currency,
		Breakdown:     body.Breakdown,
	}

	err := tcc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"effective_rate", "mode", "inclusion", "currency", "breakdown", "updated_at"}),
	}).Create(&cfg).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Tax configuration saved", cfg)
}

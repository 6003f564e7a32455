package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tabletap/ordering-app/models"
)

// ApplyMode selects the write strategy for a batch of line changes.
type ApplyMode string

const (
	// ApplyModeSet replaces line quantities outright (idempotent).
	ApplyModeSet ApplyMode = "set"
	// ApplyModeIncrement adds the requested quantity to each line.
	ApplyModeIncrement ApplyMode = "increment"
)

// incrementTier is one level of the ordered fallback chain for increment
// writes. The engine first runs the strongest tier for the whole batch in a
// single transaction; if that fails it degrades to walking the tiers per
// line, so each successive tier gives a strictly weaker guarantee.
type incrementTier interface {
	Name() string
	// Guarantee states the consistency level this tier provides.
	Guarantee() string
	Increment(db *gorm.DB, line *models.CartItem) error
}

// lineTiers is the fallback order for a single line once the batched
// transaction tier has failed.
var lineTiers = []incrementTier{
	atomicIncrement{},
	readModifyWrite{},
}

// atomicIncrement bumps the quantity with a single relative UPDATE, inserting
// the row if no line exists yet.
type atomicIncrement struct{}

func (atomicIncrement) Name() string { return "atomic_increment" }

func (atomicIncrement) Guarantee() string {
	return "single-statement relative update; safe against concurrent increments on the same line"
}

func (atomicIncrement) Increment(db *gorm.DB, line *models.CartItem) error {
	res := db.Model(&models.CartItem{}).
		Where("tenant_id = ? AND cart_id = ? AND menu_id = ?", line.TenantID, line.CartID, line.MenuID).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", line.Quantity),
			"price":      line.Price,
			"item_name":  line.ItemName,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return db.Create(line).Error
	}
	return nil
}

// readModifyWrite is the weakest tier: read the current quantity, add, write
// back. Two concurrent increments on the same line can both read the same
// stale quantity and one increment is lost. Accepted risk; there is no
// per-cart serialization mechanism.
type readModifyWrite struct{}

func (readModifyWrite) Name() string { return "read_modify_write" }

func (readModifyWrite) Guarantee() string {
	return "none; race window between read and write under concurrent writers"
}

func (readModifyWrite) Increment(db *gorm.DB, line *models.CartItem) error {
	var existing models.CartItem
	err := db.
		Where("tenant_id = ? AND cart_id = ? AND menu_id = ?", line.TenantID, line.CartID, line.MenuID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(line).Error
	}
	if err != nil {
		return err
	}

	existing.Quantity += line.Quantity
	existing.Price = line.Price
	existing.ItemName = line.ItemName
	existing.UpdatedAt = time.Now()
	return db.Save(&existing).Error
}

// incrementBatch applies the whole batch through the strongest tier inside
// one transaction: either every line lands or none does.
func incrementBatch(db *gorm.DB, lines []models.CartItem) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for i := range lines {
			if err := (atomicIncrement{}).Increment(tx, &lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// incrementPerLine walks the tier chain for each line independently. Lines
// committed before a failure stay committed: once degraded past the batched
// transaction, increment mode is no longer all-or-nothing.
func incrementPerLine(db *gorm.DB, lines []models.CartItem) error {
	for i := range lines {
		// A rolled-back batch attempt can leave a stale primary key on the
		// value; clear it so a per-line insert starts fresh.
		lines[i].ID = 0
		var lastErr error
		for _, tier := range lineTiers {
			lastErr = tier.Increment(db, &lines[i])
			if lastErr == nil {
				break
			}
		}
		if lastErr != nil {
			return lastErr
		}
	}
	return nil
}

package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tabletap/ordering-app/models"
	"github.com/tabletap/ordering-app/utils"
)

// CartLineInput is one requested (menu item, quantity) change.
type CartLineInput struct {
	MenuID   uint `json:"menu_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"min=0"`
}

// CartSummary is computed fresh on every read, never cached.
type CartSummary struct {
	CartID   uint              `json:"cart_id"`
	Status   models.CartStatus `json:"status"`
	Mode     string            `json:"mode"`
	Items    []models.CartItem `json:"items"`
	Totals   CartTotals        `json:"totals"`
	Currency string            `json:"currency"`
}

type CartService struct {
	DB      *gorm.DB
	Catalog *CatalogService
	Tax     *TaxService
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{
		DB:      db,
		Catalog: NewCatalogService(db),
		Tax:     NewTaxService(db),
	}
}

// EnsureCart returns the active cart for (tenant, customer, mode[, table]),
// creating it if none exists. Idempotent.
func (s *CartService) EnsureCart(tenantID, customerID uint, mode string, tableCode *string) (*models.Cart, error) {
	if mode == "" {
		mode = models.CartModeDineIn
	}

	query := s.DB.Where(
		"tenant_id = ? AND customer_id = ? AND mode = ? AND status <> ?",
		tenantID, customerID, mode, models.CartStatusCheckedOut,
	)
	if tableCode != nil {
		query = query.Where("table_code = ?", *tableCode)
	} else {
		query = query.Where("table_code IS NULL")
	}

	var cart models.Cart
	err := query.First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	cart = models.Cart{
		TenantID:   tenantID,
		CustomerID: customerID,
		Mode:       mode,
		TableCode:  tableCode,
		Status:     models.CartStatusOpen,
	}
	if err := s.DB.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCart loads a cart scoped to its tenant.
func (s *CartService) GetCart(tenantID, cartID uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.DB.Where("id = ? AND tenant_id = ?", cartID, tenantID).First(&cart).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// ApplyItems applies a batch of quantity changes to the cart under the given
// mode, then reconciles the cart status and returns a fresh summary.
//
// The whole batch is validated against a single catalog snapshot before any
// write; validation failures never leave partial writes behind.
func (s *CartService) ApplyItems(cart *models.Cart, inputs []CartLineInput, mode ApplyMode) (*CartSummary, error) {
	if cart.Status.Terminal() {
		return nil, ErrCartNotOpen
	}

	lines := normalizeLines(inputs, mode)

	menuIDs := make([]uint, 0, len(lines))
	for _, in := range lines {
		menuIDs = append(menuIDs, in.MenuID)
	}

	snapshot, err := s.Catalog.LoadSnapshot(cart.TenantID, menuIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMutationFailed, err)
	}

	items, err := buildCartItems(cart, lines, snapshot)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ApplyModeIncrement:
		err = s.writeIncrement(cart, items)
	default:
		err = s.writeSet(cart, items)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMutationFailed, err)
	}

	// Best-effort secondary effect, never surfaced to the caller.
	s.ReconcileStatus(cart)

	return s.Summary(cart)
}

// Summary loads the current lines and prices them under the tenant's
// resolved tax policy.
func (s *CartService) Summary(cart *models.Cart) (*CartSummary, error) {
	var items []models.CartItem
	if err := s.DB.
		Where("tenant_id = ? AND cart_id = ?", cart.TenantID, cart.ID).
		Order("menu_id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}

	cfg := s.Tax.Resolve(cart.TenantID)
	return &CartSummary{
		CartID:   cart.ID,
		Status:   cart.Status,
		Mode:     cart.Mode,
		Items:    items,
		Totals:   ComputeTotals(items, cfg),
		Currency: cfg.Currency,
	}, nil
}

// ReconcileStatus derives the lifecycle flag from the line count. A cart
// holding items is forced open; an emptied cart keeps its current status
// (there is no "inactive" value, see models.CartStatus). Failures are
// logged and swallowed.
func (s *CartService) ReconcileStatus(cart *models.Cart) {
	var count int64
	if err := s.DB.Model(&models.CartItem{}).
		Where("tenant_id = ? AND cart_id = ?", cart.TenantID, cart.ID).
		Count(&count).Error; err != nil {
		utils.ErrorLogger.Printf("cart %d: status reconcile count failed: %v", cart.ID, err)
		return
	}

	if count == 0 || cart.Status == models.CartStatusOpen {
		return
	}

	if err := s.DB.Model(&models.Cart{}).
		Where("id = ? AND tenant_id = ?", cart.ID, cart.TenantID).
		Update("status", models.CartStatusOpen).Error; err != nil {
		utils.ErrorLogger.Printf("cart %d: status reconcile update failed: %v", cart.ID, err)
		return
	}
	cart.Status = models.CartStatusOpen
}

// writeSet replaces the targeted lines: one batched upsert for positive
// quantities, one batched delete for zero quantities, both inside a single
// transaction so a crash cannot land between them.
func (s *CartService) writeSet(cart *models.Cart, items []models.CartItem) error {
	var upserts []models.CartItem
	var removals []uint
	for _, it := range items {
		if it.Quantity > 0 {
			upserts = append(upserts, it)
		} else {
			removals = append(removals, it.MenuID)
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if len(upserts) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "cart_id"}, {Name: "menu_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"quantity", "price", "item_name", "updated_at"}),
			}).Create(&upserts).Error; err != nil {
				return err
			}
		}
		if len(removals) > 0 {
			if err := tx.
				Where("tenant_id = ? AND cart_id = ? AND menu_id IN ?", cart.TenantID, cart.ID, removals).
				Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// writeIncrement walks the fallback chain: batched transaction first, then
// per-line tiers. Afterwards any line driven to zero or below is removed so
// a zero quantity never persists.
func (s *CartService) writeIncrement(cart *models.Cart, items []models.CartItem) error {
	var deltas []models.CartItem
	for _, it := range items {
		if it.Quantity != 0 {
			deltas = append(deltas, it)
		}
	}
	if len(deltas) == 0 {
		return nil
	}

	if err := incrementBatch(s.DB, deltas); err != nil {
		utils.ErrorLogger.Printf("cart %d: batched increment failed, degrading to per-line writes: %v", cart.ID, err)
		if err := incrementPerLine(s.DB, deltas); err != nil {
			return err
		}
	}

	menuIDs := make([]uint, 0, len(deltas))
	for _, it := range deltas {
		menuIDs = append(menuIDs, it.MenuID)
	}
	return s.DB.
		Where("tenant_id = ? AND cart_id = ? AND menu_id IN ? AND quantity <= 0", cart.TenantID, cart.ID, menuIDs).
		Delete(&models.CartItem{}).Error
}

// normalizeLines collapses duplicate menu ids in a batch: set mode keeps the
// last requested quantity, increment mode sums the deltas.
func normalizeLines(inputs []CartLineInput, mode ApplyMode) []CartLineInput {
	index := make(map[uint]int, len(inputs))
	out := make([]CartLineInput, 0, len(inputs))
	for _, in := range inputs {
		if pos, seen := index[in.MenuID]; seen {
			if mode == ApplyModeIncrement {
				out[pos].Quantity += in.Quantity
			} else {
				out[pos].Quantity = in.Quantity
			}
			continue
		}
		index[in.MenuID] = len(out)
		out = append(out, in)
	}
	return out
}

// buildCartItems validates the batch against the catalog snapshot and turns
// it into writable rows with price/name snapshotted now.
func buildCartItems(cart *models.Cart, lines []CartLineInput, snapshot map[uint]MenuSnapshot) ([]models.CartItem, error) {
	now := time.Now()
	items := make([]models.CartItem, 0, len(lines))
	for _, in := range lines {
		menu, ok := snapshot[in.MenuID]
		if !ok {
			return nil, fmt.Errorf("%w: menu %d", ErrInvalidItem, in.MenuID)
		}
		if menu.Price.IsNegative() {
			return nil, fmt.Errorf("%w: menu %d", ErrInvalidItemPrice, in.MenuID)
		}
		// Removing an unavailable item is always permitted.
		if !menu.IsAvailable && in.Quantity > 0 {
			return nil, fmt.Errorf("%w: menu %d", ErrItemUnavailable, in.MenuID)
		}

		items = append(items, models.CartItem{
			TenantID:  cart.TenantID,
			CartID:    cart.ID,
			MenuID:    in.MenuID,
			Quantity:  in.Quantity,
			Price:     menu.Price,
			ItemName:  menu.Name,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return items, nil
}

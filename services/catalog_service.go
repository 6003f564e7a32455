package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tabletap/ordering-app/models"
)

// MenuSnapshot is the catalog view the mutation engine validates against:
// current price, name and availability of one menu item.
type MenuSnapshot struct {
	MenuID      uint
	Name        string
	Price       decimal.Decimal
	IsAvailable bool
}

type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// LoadSnapshot fetches price/name/availability for the whole id set in one
// batched query. Items that do not exist for the tenant are simply absent
// from the result map; the caller decides what absence means.
func (cs *CatalogService) LoadSnapshot(tenantID uint, menuIDs []uint) (map[uint]MenuSnapshot, error) {
	snapshot := make(map[uint]MenuSnapshot, len(menuIDs))
	if len(menuIDs) == 0 {
		return snapshot, nil
	}

	var menus []models.Menu
	if err := cs.DB.
		Where("tenant_id = ? AND id IN ?", tenantID, menuIDs).
		Find(&menus).Error; err != nil {
		return nil, err
	}

	for _, m := range menus {
		snapshot[m.ID] = MenuSnapshot{
			MenuID:      m.ID,
			Name:        m.Name,
			Price:       m.Price,
			IsAvailable: m.IsAvailable,
		}
	}
	return snapshot, nil
}

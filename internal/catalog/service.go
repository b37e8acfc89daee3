package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/elbenfreund/armyimp/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service resolves read-only facts about the rules catalog. Catalog rows are
// administrator-edited and treated as immutable here.
type Service struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewService(db *gorm.DB, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// UnitFilters narrows ListUnits results.
type UnitFilters struct {
	OrganizationID *uuid.UUID
	Category       string
}

func (s *Service) ListUnits(ctx context.Context, filters UnitFilters, offset, limit int) ([]models.Unit, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Unit{})
	if filters.OrganizationID != nil {
		query = query.Where("organization_id = ?", *filters.OrganizationID)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting units: %w", err)
	}

	var units []models.Unit
	if err := query.
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&units).Error; err != nil {
		return nil, 0, fmt.Errorf("listing units: %w", err)
	}
	return units, total, nil
}

// GetUnit loads a unit template with its full composition tree: models,
// their profiles, item slots, slot options and referenced wargear lists.
func (s *Service) GetUnit(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	var unit models.Unit
	err := s.db.WithContext(ctx).
		Preload("Models.Profile").
		Preload("Models.ItemSlots.Default").
		Preload("Models.ItemSlots.Options").
		Preload("Models.ItemSlots.OptionFromList.Items").
		Preload("Abilities").
		Preload("Keywords").
		Preload("FactionKeywords").
		First(&unit, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "unit", Key: id.String()}
		}
		return nil, fmt.Errorf("loading unit: %w", err)
	}
	return &unit, nil
}

func (s *Service) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	var orgs []models.Organization
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&orgs).Error; err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}
	return orgs, nil
}

func (s *Service) ListItems(ctx context.Context, offset, limit int) ([]models.Item, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Item{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting items: %w", err)
	}

	var items []models.Item
	if err := query.
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("listing items: %w", err)
	}
	return items, total, nil
}

// OrganizationPrice is one organization's price for an item.
type OrganizationPrice struct {
	OrganizationID   uuid.UUID `json:"organization_id"`
	OrganizationName string    `json:"organization_name"`
	Price            int       `json:"price"`
}

// ItemPrice carries the resolved price of an item. When every granting
// organization charges the same, Uniform holds that scalar; otherwise
// PerOrganization lists each organization's price.
type ItemPrice struct {
	Uniform         *int                `json:"uniform,omitempty"`
	PerOrganization []OrganizationPrice `json:"per_organization,omitempty"`
}

// Price resolves an item's price across all organizations granting it. An
// item with zero pricing rows is a data-integrity violation; cascade
// constraints should make it impossible, it is still checked.
func (s *Service) Price(ctx context.Context, itemID uuid.UUID) (*ItemPrice, error) {
	var rows []models.OrganizationItem
	err := s.db.WithContext(ctx).
		Preload("Organization").
		Where("item_id = ?", itemID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("loading item pricing: %w", err)
	}
	if len(rows) == 0 {
		return nil, &NotFoundError{Entity: "item pricing", Key: itemID.String()}
	}

	uniform := true
	for _, row := range rows[1:] {
		if row.Price != rows[0].Price {
			uniform = false
			break
		}
	}

	if uniform {
		price := rows[0].Price
		return &ItemPrice{Uniform: &price}, nil
	}

	prices := make([]OrganizationPrice, len(rows))
	for i, row := range rows {
		prices[i] = OrganizationPrice{
			OrganizationID: row.OrganizationID,
			Price:          row.Price,
		}
		if row.Organization != nil {
			prices[i].OrganizationName = row.Organization.Name
		}
	}
	return &ItemPrice{PerOrganization: prices}, nil
}

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/elbenfreund/armyimp/internal/database/models"
	"gorm.io/gorm"
)

// Natural-key lookups. Every catalog entity is addressable by a stable,
// human-meaningful key (its unique name, or a composite for join entities)
// so fixtures can reference rows independent of surrogate IDs. Matching is
// exact and case-sensitive, same as the unique constraints.

func (s *Service) OrganizationByName(ctx context.Context, name string) (*models.Organization, error) {
	var org models.Organization
	if err := s.db.WithContext(ctx).First(&org, "name = ?", name).Error; err != nil {
		return nil, byNameErr("organization", name, err)
	}
	return &org, nil
}

func (s *Service) ItemByName(ctx context.Context, name string) (*models.Item, error) {
	var item models.Item
	if err := s.db.WithContext(ctx).First(&item, "name = ?", name).Error; err != nil {
		return nil, byNameErr("item", name, err)
	}
	return &item, nil
}

func (s *Service) WeaponProfileByName(ctx context.Context, name string) (*models.WeaponProfile, error) {
	var profile models.WeaponProfile
	if err := s.db.WithContext(ctx).First(&profile, "name = ?", name).Error; err != nil {
		return nil, byNameErr("weapon profile", name, err)
	}
	return &profile, nil
}

func (s *Service) ModelProfileByName(ctx context.Context, name string) (*models.ModelProfile, error) {
	var profile models.ModelProfile
	if err := s.db.WithContext(ctx).First(&profile, "name = ?", name).Error; err != nil {
		return nil, byNameErr("model profile", name, err)
	}
	return &profile, nil
}

func (s *Service) UnitByName(ctx context.Context, name string) (*models.Unit, error) {
	var unit models.Unit
	if err := s.db.WithContext(ctx).First(&unit, "name = ?", name).Error; err != nil {
		return nil, byNameErr("unit", name, err)
	}
	return &unit, nil
}

func (s *Service) UnitAbilityByName(ctx context.Context, name string) (*models.UnitAbility, error) {
	var ability models.UnitAbility
	if err := s.db.WithContext(ctx).First(&ability, "name = ?", name).Error; err != nil {
		return nil, byNameErr("unit ability", name, err)
	}
	return &ability, nil
}

func (s *Service) UnitKeywordByName(ctx context.Context, name string) (*models.UnitKeyword, error) {
	var keyword models.UnitKeyword
	if err := s.db.WithContext(ctx).First(&keyword, "name = ?", name).Error; err != nil {
		return nil, byNameErr("unit keyword", name, err)
	}
	return &keyword, nil
}

func (s *Service) FactionKeywordByName(ctx context.Context, name string) (*models.FactionKeyword, error) {
	var keyword models.FactionKeyword
	if err := s.db.WithContext(ctx).First(&keyword, "name = ?", name).Error; err != nil {
		return nil, byNameErr("faction keyword", name, err)
	}
	return &keyword, nil
}

// WargearListByKey resolves a wargear list by its composite key of list name
// and owning organization name.
func (s *Service) WargearListByKey(ctx context.Context, name, organizationName string) (*models.WargearList, error) {
	org, err := s.OrganizationByName(ctx, organizationName)
	if err != nil {
		return nil, err
	}

	var list models.WargearList
	err = s.db.WithContext(ctx).
		First(&list, "name = ? AND organization_id = ?", name, org.ID).Error
	if err != nil {
		return nil, byNameErr("wargear list", name+"/"+organizationName, err)
	}
	return &list, nil
}

// OrganizationItemByKey resolves a pricing row by its composite key of
// organization name and item name.
func (s *Service) OrganizationItemByKey(ctx context.Context, organizationName, itemName string) (*models.OrganizationItem, error) {
	org, err := s.OrganizationByName(ctx, organizationName)
	if err != nil {
		return nil, err
	}
	item, err := s.ItemByName(ctx, itemName)
	if err != nil {
		return nil, err
	}

	var row models.OrganizationItem
	err = s.db.WithContext(ctx).
		First(&row, "organization_id = ? AND item_id = ?", org.ID, item.ID).Error
	if err != nil {
		return nil, byNameErr("organization item", organizationName+"/"+itemName, err)
	}
	return &row, nil
}

func byNameErr(entity, key string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity, Key: key}
	}
	return fmt.Errorf("looking up %s %q: %w", entity, key, err)
}

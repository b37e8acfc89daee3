package models

import "github.com/google/uuid"

// Organization is a party with its own ruleset: it owns a catalog of priced
// items, wargear lists and unit templates.
type Organization struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// Relationships
	Items        []OrganizationItem `gorm:"foreignKey:OrganizationID" json:"-"`
	WargearLists []WargearList      `gorm:"foreignKey:OrganizationID" json:"-"`
	Units        []Unit             `gorm:"foreignKey:OrganizationID" json:"-"`
}

func (Organization) TableName() string {
	return "organizations"
}

// OrganizationItem links an item into an organization's catalog with the
// price it costs there. A unit model's default items are not included in the
// model price and are paid for like any other item.
type OrganizationItem struct {
	Base
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_org_items_org_item" json:"organization_id"`
	ItemID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_org_items_org_item" json:"item_id"`
	Price          int       `gorm:"not null" json:"price"`

	// Relationships
	Organization *Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
	Item         *Item         `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
}

func (OrganizationItem) TableName() string {
	return "organization_items"
}

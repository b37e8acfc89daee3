package models

import "github.com/google/uuid"

// WargearList is a named grouping of items scoped to one organization.
// Codexes use these to phrase swap options like "may take an item from the
// Ranged Weapons list", so the same list name can exist once per
// organization.
type WargearList struct {
	Base
	Name           string    `gorm:"not null;uniqueIndex:idx_wargear_lists_name_org" json:"name"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wargear_lists_name_org" json:"organization_id"`

	// Relationships
	Organization *Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
	Items        []Item        `gorm:"many2many:wargear_list_items" json:"items,omitempty"`
}

func (WargearList) TableName() string {
	return "wargear_lists"
}

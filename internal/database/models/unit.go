package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnitCategory string

const (
	UnitCategoryHQ                 UnitCategory = "hq"
	UnitCategoryElites             UnitCategory = "elites"
	UnitCategoryTroops             UnitCategory = "troops"
	UnitCategoryFastAttack         UnitCategory = "fast_attack"
	UnitCategoryHeavySupport       UnitCategory = "heavy_support"
	UnitCategoryFlyers             UnitCategory = "flyers"
	UnitCategoryDedicatedTransport UnitCategory = "dedicated_transport"
)

// Unit is the template for a composable battlefield unit. Besides its own
// attributes a unit is a collection of UnitModel configurations that govern
// which models a composed unit may include and what items they may carry.
type Unit struct {
	Base
	OrganizationID uuid.UUID `gorm:"type:uuid;index;not null" json:"organization_id"`

	Name             string       `gorm:"uniqueIndex;not null" json:"name"`
	Category         UnitCategory `gorm:"not null;index" json:"category"`
	IsNamedCharacter bool         `json:"is_named_character"`
	PowerRating      int          `gorm:"not null" json:"power_rating"`
	ModelPrice       int          `gorm:"not null" json:"model_price"` // points per model
	MaxPerArmy       *int         `json:"max_per_army,omitempty"`
	ModelsMin        int          `gorm:"not null;default:1" json:"models_min"`
	ModelsMax        int          `gorm:"not null" json:"models_max"`
	Transport        string       `gorm:"type:text" json:"transport,omitempty"`
	Comment          string       `gorm:"type:text" json:"comment,omitempty"`

	// Relationships
	Organization    *Organization    `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
	Models          []UnitModel      `gorm:"foreignKey:UnitID" json:"models,omitempty"`
	Abilities       []UnitAbility    `gorm:"many2many:unit_unit_abilities" json:"abilities,omitempty"`
	Keywords        []UnitKeyword    `gorm:"many2many:unit_unit_keywords" json:"keywords,omitempty"`
	FactionKeywords []FactionKeyword `gorm:"many2many:unit_faction_keywords" json:"faction_keywords,omitempty"`
}

func (Unit) TableName() string {
	return "units"
}

func (u *Unit) BeforeSave(tx *gorm.DB) error {
	if u.ModelsMin > u.ModelsMax {
		return fmt.Errorf("unit %q: models_min %d exceeds models_max %d", u.Name, u.ModelsMin, u.ModelsMax)
	}
	return nil
}

// UnitModel is one configuration option within a unit's composition, e.g.
// "Sergeant" vs "Trooper". Item constraints live on the specific
// configuration: rules that read "any one model may take" are modeled by
// bounding how many instances of the configuration a composed unit includes.
// Swapping whole models (rather than items) is out of scope; a separate
// pseudo unit with the alternative composition covers those rules.
type UnitModel struct {
	Base
	UnitID    uuid.UUID `gorm:"type:uuid;index;not null" json:"unit_id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null" json:"profile_id"`

	// Bounds on how many instances of this particular configuration a
	// composed unit may include.
	MinAmount int `gorm:"not null;default:0" json:"min_amount"`
	MaxAmount int `gorm:"not null" json:"max_amount"`

	// Disambiguates configurations sharing a profile.
	NameSuffix string `json:"name_suffix,omitempty"`

	// Relationships
	Unit      *Unit         `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE" json:"-"`
	Profile   *ModelProfile `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	ItemSlots []ItemSlot    `gorm:"foreignKey:UnitModelID" json:"item_slots,omitempty"`
}

func (UnitModel) TableName() string {
	return "unit_models"
}

// DisplayName returns the profile name, disambiguated by the suffix when
// several configurations share a profile.
func (m *UnitModel) DisplayName() string {
	if m.Profile == nil {
		return m.NameSuffix
	}
	if m.NameSuffix != "" {
		return m.Profile.Name + " " + m.NameSuffix
	}
	return m.Profile.Name
}

// ItemSlot is an equipment attachment point on a unit configuration. The
// eligible item set is the union of the explicit options and the items of
// the referenced wargear lists; min/max bound how many items (with
// repetition) fill the slot.
type ItemSlot struct {
	Base
	UnitModelID uuid.UUID  `gorm:"type:uuid;index;not null" json:"unit_model_id"`
	DefaultID   *uuid.UUID `gorm:"type:uuid" json:"default_id,omitempty"`

	MinAmount int `gorm:"not null;default:1" json:"min_amount"`
	MaxAmount int `gorm:"not null;default:1" json:"max_amount"`

	// Relationships
	UnitModel      *UnitModel    `gorm:"foreignKey:UnitModelID;constraint:OnDelete:CASCADE" json:"-"`
	Default        *Item         `gorm:"foreignKey:DefaultID" json:"default,omitempty"`
	Options        []Item        `gorm:"many2many:item_slot_options" json:"options,omitempty"`
	OptionFromList []WargearList `gorm:"many2many:item_slot_wargear_lists" json:"option_from_list,omitempty"`
}

func (ItemSlot) TableName() string {
	return "item_slots"
}

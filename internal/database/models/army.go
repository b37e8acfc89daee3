package models

import "github.com/google/uuid"

// Army is a user-built collection of fielded units.
type Army struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// Relationships
	Units []ArmyUnit `gorm:"foreignKey:ArmyID;constraint:OnDelete:CASCADE" json:"units,omitempty"`
}

func (Army) TableName() string {
	return "armies"
}

// ArmyUnit is one unit fielded in an army, instantiating a Unit template.
type ArmyUnit struct {
	Base
	ArmyID uuid.UUID `gorm:"type:uuid;index;not null" json:"army_id"`
	UnitID uuid.UUID `gorm:"type:uuid;index;not null" json:"unit_id"`

	// Optional display name, e.g. "1st Tactical Squad".
	Name string `json:"name,omitempty"`

	// Relationships
	Army   *Army       `gorm:"foreignKey:ArmyID;constraint:OnDelete:CASCADE" json:"-"`
	Unit   *Unit       `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE" json:"unit,omitempty"`
	Models []ArmyModel `gorm:"foreignKey:ArmyUnitID;constraint:OnDelete:CASCADE" json:"models,omitempty"`
}

func (ArmyUnit) TableName() string {
	return "army_units"
}

// ArmyModel is one concrete model within a fielded unit, instantiating a
// UnitModel configuration.
type ArmyModel struct {
	Base
	ArmyUnitID  uuid.UUID `gorm:"type:uuid;index;not null" json:"army_unit_id"`
	UnitModelID uuid.UUID `gorm:"type:uuid;index;not null" json:"unit_model_id"`

	// Relationships
	ArmyUnit  *ArmyUnit       `gorm:"foreignKey:ArmyUnitID;constraint:OnDelete:CASCADE" json:"-"`
	UnitModel *UnitModel      `gorm:"foreignKey:UnitModelID;constraint:OnDelete:CASCADE" json:"unit_model,omitempty"`
	Items     []ArmyModelItem `gorm:"foreignKey:ArmyModelID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (ArmyModel) TableName() string {
	return "army_models"
}

// ArmyModelItem is the concrete item filling one of a model's slots. Amount
// accounts for slots stacking more than one identical item.
type ArmyModelItem struct {
	Base
	ArmyModelID uuid.UUID `gorm:"type:uuid;index;not null" json:"army_model_id"`
	ItemSlotID  uuid.UUID `gorm:"type:uuid;index;not null" json:"item_slot_id"`
	ItemID      uuid.UUID `gorm:"type:uuid;not null" json:"item_id"`
	Amount      int       `gorm:"not null;default:1" json:"amount"`

	// Relationships
	ArmyModel *ArmyModel `gorm:"foreignKey:ArmyModelID;constraint:OnDelete:CASCADE" json:"-"`
	ItemSlot  *ItemSlot  `gorm:"foreignKey:ItemSlotID;constraint:OnDelete:CASCADE" json:"item_slot,omitempty"`
	Item      *Item      `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"item,omitempty"`
}

func (ArmyModelItem) TableName() string {
	return "army_model_items"
}

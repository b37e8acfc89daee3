package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item is a piece of equipment as given in a codex. The same item may appear
// in several organizations' catalogs, each with its own price.
type Item struct {
	Base
	Name    string `gorm:"uniqueIndex;not null" json:"name"`
	Comment string `gorm:"type:text" json:"comment,omitempty"`

	// Relationships
	Organizations  []OrganizationItem `gorm:"foreignKey:ItemID" json:"-"`
	WeaponProfiles []WeaponProfile    `gorm:"foreignKey:ItemID" json:"-"`
}

func (Item) TableName() string {
	return "items"
}

type WeaponCategory string

const (
	WeaponCategoryRanged WeaponCategory = "ranged"
	WeaponCategoryMelee  WeaponCategory = "melee"
)

type AttackType string

const (
	AttackTypeMelee     AttackType = "melee"
	AttackTypePistol    AttackType = "pistol"
	AttackTypeRapidFire AttackType = "rapid_fire"
	AttackTypeAssault   AttackType = "assault"
	AttackTypeHeavy     AttackType = "heavy"
	AttackTypeGrenade   AttackType = "grenade"
)

// StatRange is a (min,max) pair for a weapon stat. Dice-based and fixed
// values are represented uniformly: a fixed value has min == max.
type StatRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r StatRange) Valid() bool {
	return r.Min <= r.Max
}

// WeaponProfile holds the stats for one firing mode of an item. Items with
// multiple firing modes own one profile per mode.
type WeaponProfile struct {
	Base
	ItemID uuid.UUID `gorm:"type:uuid;index;not null" json:"item_id"`

	Name       string         `gorm:"uniqueIndex;not null" json:"name"`
	Category   WeaponCategory `gorm:"not null" json:"category"`
	AttackType AttackType     `gorm:"not null" json:"attack_type"`

	RangeMin    int `json:"range_min"`
	RangeMax    int `json:"range_max"`
	AttacksMin  int `json:"attacks_min"`
	AttacksMax  int `json:"attacks_max"`
	StrengthMin int `json:"strength_min"`
	StrengthMax int `json:"strength_max"`
	DamageMin   int `json:"damage_min"`
	DamageMax   int `json:"damage_max"`

	ArmorPenetration int    `json:"armor_penetration"`
	Comment          string `gorm:"type:text" json:"comment,omitempty"`

	// Relationships
	Item *Item `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
}

func (WeaponProfile) TableName() string {
	return "weapon_profiles"
}

// Each stat pair must satisfy min <= max.
func (p *WeaponProfile) BeforeSave(tx *gorm.DB) error {
	pairs := map[string]StatRange{
		"range":    p.Range(),
		"attacks":  p.NumberOfAttacks(),
		"strength": p.Strength(),
		"damage":   p.Damage(),
	}
	for stat, pair := range pairs {
		if !pair.Valid() {
			return fmt.Errorf("weapon profile %q: %s min %d exceeds max %d", p.Name, stat, pair.Min, pair.Max)
		}
	}
	return nil
}

// Range returns the stored (min,max) range pair.
func (p *WeaponProfile) Range() StatRange {
	return StatRange{Min: p.RangeMin, Max: p.RangeMax}
}

// NumberOfAttacks returns the stored (min,max) attacks pair.
func (p *WeaponProfile) NumberOfAttacks() StatRange {
	return StatRange{Min: p.AttacksMin, Max: p.AttacksMax}
}

// Strength returns the stored (min,max) strength pair.
func (p *WeaponProfile) Strength() StatRange {
	return StatRange{Min: p.StrengthMin, Max: p.StrengthMax}
}

// Damage returns the stored (min,max) damage pair.
func (p *WeaponProfile) Damage() StatRange {
	return StatRange{Min: p.DamageMin, Max: p.DamageMax}
}

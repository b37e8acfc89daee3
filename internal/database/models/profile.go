package models

// ModelProfile is a named stat block shared by unit models. Where the printed
// stat carries a '+' (e.g. saves) the suffix is omitted, it adds no
// information.
type ModelProfile struct {
	Base
	Name           string `gorm:"uniqueIndex;not null" json:"name"`
	Movement       int    `json:"movement"`
	WeaponSkill    int    `gorm:"not null" json:"weapon_skill"`
	BallisticSkill int    `json:"ballistic_skill"`
	Strength       int    `gorm:"not null" json:"strength"`
	Toughness      int    `gorm:"not null" json:"toughness"`
	Wounds         int    `gorm:"not null" json:"wounds"`
	Attacks        int    `json:"attacks"`
	Leadership     int    `gorm:"not null" json:"leadership"`
	Saves          int    `gorm:"not null" json:"saves"`
}

func (ModelProfile) TableName() string {
	return "model_profiles"
}

// UnitAbility is a named unit ability as per codex.
type UnitAbility struct {
	Base
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
}

func (UnitAbility) TableName() string {
	return "unit_abilities"
}

// UnitKeyword is a unique-named tag attachable to units.
type UnitKeyword struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

func (UnitKeyword) TableName() string {
	return "unit_keywords"
}

// FactionKeyword is a unique-named faction tag attachable to units.
type FactionKeyword struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

func (FactionKeyword) TableName() string {
	return "faction_keywords"
}

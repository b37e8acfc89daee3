package models_test

import (
	"testing"

	"github.com/elbenfreund/armyimp/internal/database/models"
	"github.com/elbenfreund/armyimp/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeaponProfile_StatPairsReturnedVerbatim(t *testing.T) {
	profile := &models.WeaponProfile{
		RangeMin: 0, RangeMax: 24,
		AttacksMin: 1, AttacksMax: 3,
		StrengthMin: 4, StrengthMax: 4,
		DamageMin: 1, DamageMax: 6,
	}

	assert.Equal(t, models.StatRange{Min: 0, Max: 24}, profile.Range())
	assert.Equal(t, models.StatRange{Min: 1, Max: 3}, profile.NumberOfAttacks())
	assert.Equal(t, models.StatRange{Min: 4, Max: 4}, profile.Strength())
	assert.Equal(t, models.StatRange{Min: 1, Max: 6}, profile.Damage())
}

func TestWeaponProfile_RejectsInvertedPair(t *testing.T) {
	db := testutil.SetupTestDB(t)

	org := testutil.CreateTestOrganization(t, db, "Alpha Legion")
	item := testutil.CreateTestItem(t, db, "Melta Gun", map[uuid.UUID]int{org.ID: 14})

	profile := &models.WeaponProfile{
		ItemID:     item.ID,
		Name:       "Melta Gun",
		Category:   models.WeaponCategoryRanged,
		AttackType: models.AttackTypeAssault,
		DamageMin:  6, DamageMax: 1,
	}
	err := db.Create(profile).Error
	require.Error(t, err)
	assert.Contains(t, err.Error(), "damage")
}

func TestUnit_RejectsInvertedModelBounds(t *testing.T) {
	db := testutil.SetupTestDB(t)

	org := testutil.CreateTestOrganization(t, db, "Alpha Legion")
	unit := &models.Unit{
		Name:           "Broken Squad",
		OrganizationID: org.ID,
		Category:       models.UnitCategoryTroops,
		ModelsMin:      6,
		ModelsMax:      2,
	}
	err := db.Create(unit).Error
	require.Error(t, err)
	assert.Contains(t, err.Error(), "models_min")
}

func TestUnitModel_DisplayName(t *testing.T) {
	profile := &models.ModelProfile{Name: "Sergeant"}

	plain := &models.UnitModel{Profile: profile}
	assert.Equal(t, "Sergeant", plain.DisplayName())

	suffixed := &models.UnitModel{Profile: profile, NameSuffix: "(Plasma)"}
	assert.Equal(t, "Sergeant (Plasma)", suffixed.DisplayName())
}

func TestArmyDelete_CascadesToCompositionTree(t *testing.T) {
	db := testutil.SetupTestDB(t)

	org := testutil.CreateTestOrganization(t, db, "Alpha Legion")
	unit := testutil.CreateTestUnit(t, db, org, "Tactical Squad", 1, 5)
	profile := testutil.CreateTestModelProfile(t, db, "Trooper")
	unitModel := testutil.CreateTestUnitModel(t, db, unit, profile, 0, 5)
	army := testutil.CreateTestArmy(t, db, "1st Company")

	armyUnit := &models.ArmyUnit{ArmyID: army.ID, UnitID: unit.ID}
	require.NoError(t, db.Create(armyUnit).Error)
	armyModel := &models.ArmyModel{ArmyUnitID: armyUnit.ID, UnitModelID: unitModel.ID}
	require.NoError(t, db.Create(armyModel).Error)

	// Hard delete so the FK cascade fires rather than a soft-delete flag.
	require.NoError(t, db.Unscoped().Delete(army).Error)

	var remaining int64
	require.NoError(t, db.Model(&models.ArmyUnit{}).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

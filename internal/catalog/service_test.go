package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/elbenfreund/armyimp/internal/catalog"
	"github.com/elbenfreund/armyimp/internal/database/models"
	"github.com/elbenfreund/armyimp/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalog(t *testing.T) (*gorm.DB, *catalog.Service) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return db, catalog.NewService(db, logger)
}

func TestPrice_UniformAcrossOrganizations(t *testing.T) {
	db, svc := setupCatalog(t)

	orgA := testutil.CreateTestOrganization(t, db, "Alpha Legion")
	orgB := testutil.CreateTestOrganization(t, db, "Beta Legion")
	item := testutil.CreateTestItem(t, db, "Chainsword", map[uuid.UUID]int{
		orgA.ID: 4,
		orgB.ID: 4,
	})

	price, err := svc.Price(context.Background(), item.ID)
	require.NoError(t, err)
	require.NotNil(t, price.Uniform)
	assert.Equal(t, 4, *price.Uniform)
	assert.Empty(t, price.PerOrganization)
}

func TestPrice_DiffersPerOrganization(t *testing.T) {
	db, svc := setupCatalog(t)

	orgA := testutil.CreateTestOrganization(t, db, "Alpha Legion")
	orgB := testutil.CreateTestOrganization(t, db, "Beta Legion")
	item := testutil.CreateTestItem(t, db, "Power Fist", map[uuid.UUID]int{
		orgA.ID: 9,
		orgB.ID: 12,
	})

	price, err := svc.Price(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Nil(t, price.Uniform)
	require.Len(t, price.PerOrganization, 2)

	byOrg := make(map[uuid.UUID]catalog.OrganizationPrice)
	for _, p := range price.PerOrganization {
		byOrg[p.OrganizationID] = p
	}
	assert.Equal(t, 9, byOrg[orgA.ID].Price)
	assert.Equal(t, "Alpha Legion", byOrg[orgA.ID].OrganizationName)
	assert.Equal(t, 12, byOrg[orgB.ID].Price)
}

func TestPrice_NoOrganizationAssociation(t *testing.T) {
	db, svc := setupCatalog(t)

	item := testutil.CreateTestItem(t, db, "Orphaned Relic", nil)

	_, err := svc.Price(context.Background(), item.ID)
	var notFound *catalog.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "item pricing", notFound.Entity)
}

func TestNaturalKeyRoundTrips(t *testing.T) {
	db, svc := setupCatalog(t)
	ctx := context.Background()

	org := testutil.CreateTestOrganization(t, db, "Iron Wardens")
	item := testutil.CreateTestItem(t, db, "Bolter", map[uuid.UUID]int{org.ID: 0})
	profile := testutil.CreateTestModelProfile(t, db, "Veteran")
	unit := testutil.CreateTestUnit(t, db, org, "Veteran Squad", 1, 5)
	list := testutil.CreateTestWargearList(t, db, org, "Heavy", []*models.Item{item})

	ability := &models.UnitAbility{Name: "And They Shall Know No Fear", Description: "Re-roll morale."}
	require.NoError(t, db.Create(ability).Error)
	keyword := &models.UnitKeyword{Name: "Infantry"}
	require.NoError(t, db.Create(keyword).Error)
	faction := &models.FactionKeyword{Name: "Imperium"}
	require.NoError(t, db.Create(faction).Error)
	weapon := &models.WeaponProfile{
		ItemID:     item.ID,
		Name:       "Bolter - Rapid Fire",
		Category:   models.WeaponCategoryRanged,
		AttackType: models.AttackTypeRapidFire,
		RangeMax:   24, AttacksMin: 1, AttacksMax: 1,
		StrengthMin: 4, StrengthMax: 4, DamageMin: 1, DamageMax: 1,
	}
	require.NoError(t, db.Create(weapon).Error)

	gotOrg, err := svc.OrganizationByName(ctx, "Iron Wardens")
	require.NoError(t, err)
	assert.Equal(t, org.ID, gotOrg.ID)

	gotItem, err := svc.ItemByName(ctx, "Bolter")
	require.NoError(t, err)
	assert.Equal(t, item.ID, gotItem.ID)

	gotProfile, err := svc.ModelProfileByName(ctx, "Veteran")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, gotProfile.ID)

	gotUnit, err := svc.UnitByName(ctx, "Veteran Squad")
	require.NoError(t, err)
	assert.Equal(t, unit.ID, gotUnit.ID)

	gotWeapon, err := svc.WeaponProfileByName(ctx, "Bolter - Rapid Fire")
	require.NoError(t, err)
	assert.Equal(t, weapon.ID, gotWeapon.ID)

	gotAbility, err := svc.UnitAbilityByName(ctx, "And They Shall Know No Fear")
	require.NoError(t, err)
	assert.Equal(t, ability.ID, gotAbility.ID)

	gotKeyword, err := svc.UnitKeywordByName(ctx, "Infantry")
	require.NoError(t, err)
	assert.Equal(t, keyword.ID, gotKeyword.ID)

	gotFaction, err := svc.FactionKeywordByName(ctx, "Imperium")
	require.NoError(t, err)
	assert.Equal(t, faction.ID, gotFaction.ID)

	gotList, err := svc.WargearListByKey(ctx, "Heavy", "Iron Wardens")
	require.NoError(t, err)
	assert.Equal(t, list.ID, gotList.ID)

	gotRow, err := svc.OrganizationItemByKey(ctx, "Iron Wardens", "Bolter")
	require.NoError(t, err)
	assert.Equal(t, org.ID, gotRow.OrganizationID)
	assert.Equal(t, item.ID, gotRow.ItemID)
}

func TestNaturalKeyLookup_Missing(t *testing.T) {
	_, svc := setupCatalog(t)

	_, err := svc.UnitByName(context.Background(), "No Such Unit")
	var notFound *catalog.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "unit", notFound.Entity)
}

func TestNaturalKeyLookup_CaseSensitive(t *testing.T) {
	db, svc := setupCatalog(t)

	testutil.CreateTestOrganization(t, db, "Iron Wardens")

	_, err := svc.OrganizationByName(context.Background(), "iron wardens")
	var notFound *catalog.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGetUnit_PreloadsCompositionTree(t *testing.T) {
	db, svc := setupCatalog(t)

	org := testutil.CreateTestOrganization(t, db, "Iron Wardens")
	unit := testutil.CreateTestUnit(t, db, org, "Veteran Squad", 1, 5)
	profile := testutil.CreateTestModelProfile(t, db, "Veteran")
	unitModel := testutil.CreateTestUnitModel(t, db, unit, profile, 1, 5)
	bolter := testutil.CreateTestItem(t, db, "Bolter", map[uuid.UUID]int{org.ID: 0})
	testutil.CreateTestItemSlot(t, db, unitModel, bolter, []*models.Item{bolter}, 1, 1)

	got, err := svc.GetUnit(context.Background(), unit.ID)
	require.NoError(t, err)
	require.Len(t, got.Models, 1)
	assert.Equal(t, "Veteran", got.Models[0].Profile.Name)
	require.Len(t, got.Models[0].ItemSlots, 1)
	slot := got.Models[0].ItemSlots[0]
	require.NotNil(t, slot.Default)
	assert.Equal(t, "Bolter", slot.Default.Name)
	require.Len(t, slot.Options, 1)
}

func TestGetUnit_NotFound(t *testing.T) {
	_, svc := setupCatalog(t)

	_, err := svc.GetUnit(context.Background(), uuid.New())
	var notFound *catalog.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListUnits_Filters(t *testing.T) {
	db, svc := setupCatalog(t)

	orgA := testutil.CreateTestOrganization(t, db, "Alpha Legion")
	orgB := testutil.CreateTestOrganization(t, db, "Beta Legion")
	testutil.CreateTestUnit(t, db, orgA, "Alpha Squad", 1, 5)
	testutil.CreateTestUnit(t, db, orgA, "Alpha Veterans", 1, 5)
	testutil.CreateTestUnit(t, db, orgB, "Beta Squad", 1, 5)

	units, total, err := svc.ListUnits(context.Background(), catalog.UnitFilters{}, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, units, 3)

	units, total, err = svc.ListUnits(context.Background(),
		catalog.UnitFilters{OrganizationID: &orgA.ID}, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, units, 2)
	// Ordered by name.
	assert.Equal(t, "Alpha Squad", units[0].Name)
}

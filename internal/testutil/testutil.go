package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elbenfreund/armyimp/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// One connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Organization{},
		&models.Item{},
		&models.OrganizationItem{},
		&models.WeaponProfile{},
		&models.ModelProfile{},
		&models.UnitAbility{},
		&models.UnitKeyword{},
		&models.FactionKeyword{},
		&models.WargearList{},
		&models.Unit{},
		&models.UnitModel{},
		&models.ItemSlot{},
		&models.Army{},
		&models.ArmyUnit{},
		&models.ArmyModel{},
		&models.ArmyModelItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// CreateTestOrganization creates an organization with a unique name
func CreateTestOrganization(t *testing.T, db *gorm.DB, name string) *models.Organization {
	t.Helper()

	org := &models.Organization{Name: name}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateTestItem creates an item priced for the given organizations
func CreateTestItem(t *testing.T, db *gorm.DB, name string, prices map[uuid.UUID]int) *models.Item {
	t.Helper()

	item := &models.Item{Name: name}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test item: %v", err)
	}
	for orgID, price := range prices {
		row := &models.OrganizationItem{
			OrganizationID: orgID,
			ItemID:         item.ID,
			Price:          price,
		}
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("failed to create test item pricing: %v", err)
		}
	}
	return item
}

// CreateTestModelProfile creates a model profile stat block
func CreateTestModelProfile(t *testing.T, db *gorm.DB, name string) *models.ModelProfile {
	t.Helper()

	profile := &models.ModelProfile{
		Name:        name,
		Movement:    6,
		WeaponSkill: 3,
		Strength:    4,
		Toughness:   4,
		Wounds:      1,
		Attacks:     1,
		Leadership:  7,
		Saves:       3,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test model profile: %v", err)
	}
	return profile
}

// CreateTestUnit creates a unit template with the given model count bounds
func CreateTestUnit(t *testing.T, db *gorm.DB, org *models.Organization, name string, modelsMin, modelsMax int) *models.Unit {
	t.Helper()

	unit := &models.Unit{
		Name:           name,
		OrganizationID: org.ID,
		Category:       models.UnitCategoryTroops,
		PowerRating:    5,
		ModelPrice:     12,
		ModelsMin:      modelsMin,
		ModelsMax:      modelsMax,
	}
	if err := db.Create(unit).Error; err != nil {
		t.Fatalf("failed to create test unit: %v", err)
	}
	return unit
}

// CreateTestUnitModel creates a configuration option on a unit
func CreateTestUnitModel(t *testing.T, db *gorm.DB, unit *models.Unit, profile *models.ModelProfile, minAmount, maxAmount int) *models.UnitModel {
	t.Helper()

	unitModel := &models.UnitModel{
		UnitID:    unit.ID,
		ProfileID: profile.ID,
		MinAmount: minAmount,
		MaxAmount: maxAmount,
	}
	if err := db.Create(unitModel).Error; err != nil {
		t.Fatalf("failed to create test unit model: %v", err)
	}
	return unitModel
}

// CreateTestItemSlot creates a slot on a unit model with explicit options
func CreateTestItemSlot(t *testing.T, db *gorm.DB, unitModel *models.UnitModel, def *models.Item, options []*models.Item, minAmount, maxAmount int) *models.ItemSlot {
	t.Helper()

	slot := &models.ItemSlot{
		UnitModelID: unitModel.ID,
		MinAmount:   minAmount,
		MaxAmount:   maxAmount,
	}
	if def != nil {
		slot.DefaultID = &def.ID
	}
	if err := db.Create(slot).Error; err != nil {
		t.Fatalf("failed to create test item slot: %v", err)
	}
	for _, opt := range options {
		if err := db.Model(slot).Association("Options").Append(opt); err != nil {
			t.Fatalf("failed to add slot option: %v", err)
		}
	}
	return slot
}

// CreateTestWargearList creates a wargear list holding the given items
func CreateTestWargearList(t *testing.T, db *gorm.DB, org *models.Organization, name string, items []*models.Item) *models.WargearList {
	t.Helper()

	list := &models.WargearList{Name: name, OrganizationID: org.ID}
	if err := db.Create(list).Error; err != nil {
		t.Fatalf("failed to create test wargear list: %v", err)
	}
	for _, item := range items {
		if err := db.Model(list).Association("Items").Append(item); err != nil {
			t.Fatalf("failed to add wargear list item: %v", err)
		}
	}
	return list
}

// CreateTestArmy creates an army
func CreateTestArmy(t *testing.T, db *gorm.DB, name string) *models.Army {
	t.Helper()

	army := &models.Army{Name: name}
	if err := db.Create(army).Error; err != nil {
		t.Fatalf("failed to create test army: %v", err)
	}
	return army
}

// JSONRequest creates an HTTP request with a JSON body
func JSONRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}

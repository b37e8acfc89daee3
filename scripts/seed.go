//go:build ignore

// Imports a JSON catalog fixture. Fixture entries reference each other by
// natural key (names, or name+organization composites) so the file is
// portable across databases regardless of surrogate IDs.
//
// Usage: go run scripts/seed.go fixtures/catalog.json
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/elbenfreund/armyimp/internal/catalog"
	"github.com/elbenfreund/armyimp/internal/database"
	"github.com/elbenfreund/armyimp/internal/database/models"
	"github.com/elbenfreund/armyimp/pkg/config"
	"github.com/elbenfreund/armyimp/pkg/util"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

type itemFixture struct {
	Name    string         `json:"name"`
	Comment string         `json:"comment,omitempty"`
	Prices  map[string]int `json:"prices"` // organization name -> price
}

type wargearListFixture struct {
	Name         string   `json:"name"`
	Organization string   `json:"organization"`
	Items        []string `json:"items"`
}

type modelProfileFixture struct {
	Name           string `json:"name"`
	Movement       int    `json:"movement"`
	WeaponSkill    int    `json:"weapon_skill"`
	BallisticSkill int    `json:"ballistic_skill"`
	Strength       int    `json:"strength"`
	Toughness      int    `json:"toughness"`
	Wounds         int    `json:"wounds"`
	Attacks        int    `json:"attacks"`
	Leadership     int    `json:"leadership"`
	Saves          int    `json:"saves"`
}

type itemSlotFixture struct {
	Default      string   `json:"default,omitempty"`
	Options      []string `json:"options,omitempty"`
	WargearLists []string `json:"wargear_lists,omitempty"`
	MinAmount    int      `json:"min_amount"`
	MaxAmount    int      `json:"max_amount"`
}

type unitModelFixture struct {
	Profile    string            `json:"profile"`
	NameSuffix string            `json:"name_suffix,omitempty"`
	MinAmount  int               `json:"min_amount"`
	MaxAmount  int               `json:"max_amount"`
	Slots      []itemSlotFixture `json:"slots,omitempty"`
}

type unitFixture struct {
	Name             string             `json:"name"`
	Organization     string             `json:"organization"`
	Category         string             `json:"category"`
	IsNamedCharacter bool               `json:"is_named_character"`
	PowerRating      int                `json:"power_rating"`
	ModelPrice       int                `json:"model_price"`
	MaxPerArmy       *int               `json:"max_per_army,omitempty"`
	ModelsMin        int                `json:"models_min"`
	ModelsMax        int                `json:"models_max"`
	Models           []unitModelFixture `json:"models"`
}

type fixture struct {
	Organizations []string              `json:"organizations"`
	Items         []itemFixture         `json:"items"`
	ModelProfiles []modelProfileFixture `json:"model_profiles"`
	WargearLists  []wargearListFixture  `json:"wargear_lists"`
	Units         []unitFixture         `json:"units"`
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatal("usage: go run scripts/seed.go <fixture.json>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("failed to read fixture: %v", err)
	}
	var fix fixture
	if err := json.Unmarshal(raw, &fix); err != nil {
		log.Fatalf("failed to parse fixture: %v", err)
	}

	ctx := context.Background()

	// The resolver must share the transaction so natural-key lookups see
	// rows created earlier in the same import.
	if err := db.Transaction(func(tx *gorm.DB) error {
		resolver := catalog.NewService(tx, logger)
		return importFixture(ctx, tx, resolver, &fix)
	}); err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("imported %d organizations, %d items, %d units\n",
		len(fix.Organizations), len(fix.Items), len(fix.Units))
}

func importFixture(ctx context.Context, tx *gorm.DB, resolver *catalog.Service, fix *fixture) error {
	for _, name := range fix.Organizations {
		org := models.Organization{Name: name}
		if err := tx.Where("name = ?", name).FirstOrCreate(&org).Error; err != nil {
			return fmt.Errorf("organization %q: %w", name, err)
		}
	}

	for _, mp := range fix.ModelProfiles {
		profile := models.ModelProfile{
			Name:           mp.Name,
			Movement:       mp.Movement,
			WeaponSkill:    mp.WeaponSkill,
			BallisticSkill: mp.BallisticSkill,
			Strength:       mp.Strength,
			Toughness:      mp.Toughness,
			Wounds:         mp.Wounds,
			Attacks:        mp.Attacks,
			Leadership:     mp.Leadership,
			Saves:          mp.Saves,
		}
		if err := tx.Where("name = ?", mp.Name).FirstOrCreate(&profile).Error; err != nil {
			return fmt.Errorf("model profile %q: %w", mp.Name, err)
		}
	}

	for _, it := range fix.Items {
		item := models.Item{Name: it.Name, Comment: it.Comment}
		if err := tx.Where("name = ?", it.Name).FirstOrCreate(&item).Error; err != nil {
			return fmt.Errorf("item %q: %w", it.Name, err)
		}
		for orgName, price := range it.Prices {
			org, err := resolver.OrganizationByName(ctx, orgName)
			if err != nil {
				return fmt.Errorf("item %q: %w", it.Name, err)
			}
			row := models.OrganizationItem{OrganizationID: org.ID, ItemID: item.ID, Price: price}
			err = tx.Where("organization_id = ? AND item_id = ?", org.ID, item.ID).
				FirstOrCreate(&row).Error
			if err != nil {
				return fmt.Errorf("pricing %q/%q: %w", orgName, it.Name, err)
			}
		}
	}

	for _, wl := range fix.WargearLists {
		org, err := resolver.OrganizationByName(ctx, wl.Organization)
		if err != nil {
			return fmt.Errorf("wargear list %q: %w", wl.Name, err)
		}
		list := models.WargearList{Name: wl.Name, OrganizationID: org.ID}
		err = tx.Where("name = ? AND organization_id = ?", wl.Name, org.ID).
			FirstOrCreate(&list).Error
		if err != nil {
			return fmt.Errorf("wargear list %q: %w", wl.Name, err)
		}
		for _, itemName := range wl.Items {
			item, err := resolver.ItemByName(ctx, itemName)
			if err != nil {
				return fmt.Errorf("wargear list %q: %w", wl.Name, err)
			}
			if err := tx.Model(&list).Association("Items").Append(item); err != nil {
				return fmt.Errorf("wargear list %q: %w", wl.Name, err)
			}
		}
	}

	for _, uf := range fix.Units {
		if err := importUnit(ctx, tx, resolver, &uf); err != nil {
			return fmt.Errorf("unit %q: %w", uf.Name, err)
		}
	}
	return nil
}

func importUnit(ctx context.Context, tx *gorm.DB, resolver *catalog.Service, uf *unitFixture) error {
	org, err := resolver.OrganizationByName(ctx, uf.Organization)
	if err != nil {
		return err
	}

	unit := models.Unit{
		Name:             uf.Name,
		OrganizationID:   org.ID,
		Category:         models.UnitCategory(uf.Category),
		IsNamedCharacter: uf.IsNamedCharacter,
		PowerRating:      uf.PowerRating,
		ModelPrice:       uf.ModelPrice,
		MaxPerArmy:       uf.MaxPerArmy,
		ModelsMin:        uf.ModelsMin,
		ModelsMax:        uf.ModelsMax,
	}
	if err := tx.Where("name = ?", uf.Name).FirstOrCreate(&unit).Error; err != nil {
		return err
	}

	for _, mf := range uf.Models {
		profile, err := resolver.ModelProfileByName(ctx, mf.Profile)
		if err != nil {
			return err
		}
		unitModel := models.UnitModel{
			UnitID:     unit.ID,
			ProfileID:  profile.ID,
			MinAmount:  mf.MinAmount,
			MaxAmount:  mf.MaxAmount,
			NameSuffix: mf.NameSuffix,
		}
		if err := tx.Create(&unitModel).Error; err != nil {
			return err
		}

		for _, sf := range mf.Slots {
			slot := models.ItemSlot{
				UnitModelID: unitModel.ID,
				MinAmount:   sf.MinAmount,
				MaxAmount:   sf.MaxAmount,
			}
			if sf.Default != "" {
				item, err := resolver.ItemByName(ctx, sf.Default)
				if err != nil {
					return err
				}
				slot.DefaultID = &item.ID
			}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
			for _, optName := range sf.Options {
				item, err := resolver.ItemByName(ctx, optName)
				if err != nil {
					return err
				}
				if err := tx.Model(&slot).Association("Options").Append(item); err != nil {
					return err
				}
			}
			for _, listName := range sf.WargearLists {
				list, err := resolver.WargearListByKey(ctx, listName, uf.Organization)
				if err != nil {
					return err
				}
				if err := tx.Model(&slot).Association("OptionFromList").Append(list); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

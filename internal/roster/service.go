package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/elbenfreund/armyimp/internal/catalog"
	"github.com/elbenfreund/armyimp/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service builds and validates concrete army compositions against the
// catalog's constraints. Validation runs over the whole proposed tree before
// anything is written; a valid tree is committed in a single transaction.
type Service struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewService(db *gorm.DB, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// ItemChoice fills one slot of a proposed model with an item, Amount times.
type ItemChoice struct {
	SlotID uuid.UUID
	ItemID uuid.UUID
	Amount int
}

// ModelSelection proposes one model instantiating a unit configuration.
type ModelSelection struct {
	UnitModelID uuid.UUID
	Items       []ItemChoice
}

// BuildArmyUnit validates a proposed unit composition as a whole and, only
// if every constraint holds, persists the full tree atomically. On
// validation failure the returned error is a *ValidationErrors carrying
// every violation found; nothing is written.
func (s *Service) BuildArmyUnit(ctx context.Context, armyID, unitID uuid.UUID, name string, selections []ModelSelection) (*models.ArmyUnit, error) {
	var army models.Army
	if err := s.db.WithContext(ctx).First(&army, "id = ?", armyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &catalog.NotFoundError{Entity: "army", Key: armyID.String()}
		}
		return nil, fmt.Errorf("loading army: %w", err)
	}

	unit, err := s.loadUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	var fielded int64
	err = s.db.WithContext(ctx).Model(&models.ArmyUnit{}).
		Where("army_id = ? AND unit_id = ?", armyID, unitID).
		Count(&fielded).Error
	if err != nil {
		return nil, fmt.Errorf("counting fielded units: %w", err)
	}

	tree, verr := compose(unit, int(fielded), selections)
	if verr != nil {
		return nil, verr
	}

	tree.ArmyID = armyID
	tree.Name = name

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(tree).Error
	})
	if err != nil {
		return nil, fmt.Errorf("persisting army unit: %w", err)
	}

	s.logger.Info("built army unit",
		"army_id", armyID,
		"unit", unit.Name,
		"models", len(tree.Models),
	)
	return tree, nil
}

// Validate checks a proposed composition against the unit's constraints
// without touching the database or the inputs, so an already-valid
// composition re-validates to the same success.
func Validate(unit *models.Unit, fielded int, selections []ModelSelection) error {
	_, verr := compose(unit, fielded, selections)
	if verr != nil {
		return verr
	}
	return nil
}

// GetArmyUnit loads a fielded unit with its full composition tree.
func (s *Service) GetArmyUnit(ctx context.Context, id uuid.UUID) (*models.ArmyUnit, error) {
	var armyUnit models.ArmyUnit
	err := s.db.WithContext(ctx).
		Preload("Unit").
		Preload("Models.UnitModel.Profile").
		Preload("Models.Items.Item").
		Preload("Models.Items.ItemSlot").
		First(&armyUnit, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &catalog.NotFoundError{Entity: "army unit", Key: id.String()}
		}
		return nil, fmt.Errorf("loading army unit: %w", err)
	}
	return &armyUnit, nil
}

func (s *Service) loadUnit(ctx context.Context, unitID uuid.UUID) (*models.Unit, error) {
	var unit models.Unit
	err := s.db.WithContext(ctx).
		Preload("Models.Profile").
		Preload("Models.ItemSlots.Default").
		Preload("Models.ItemSlots.Options").
		Preload("Models.ItemSlots.OptionFromList.Items").
		First(&unit, "id = ?", unitID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &catalog.NotFoundError{Entity: "unit", Key: unitID.String()}
		}
		return nil, fmt.Errorf("loading unit: %w", err)
	}
	return &unit, nil
}

// compose validates the proposed selections against the unit template and
// assembles the unpersisted composition tree. All violations are collected;
// the tree is returned only when there are none.
func compose(unit *models.Unit, fielded int, selections []ModelSelection) (*models.ArmyUnit, *ValidationErrors) {
	verrs := &ValidationErrors{}

	configs := make(map[uuid.UUID]*models.UnitModel, len(unit.Models))
	for i := range unit.Models {
		configs[unit.Models[i].ID] = &unit.Models[i]
	}

	// Per-configuration counts, including configurations the proposal left
	// out entirely: a configuration with a positive minimum must be present.
	counts := make(map[uuid.UUID]int)
	for _, sel := range selections {
		if _, ok := configs[sel.UnitModelID]; !ok {
			verrs.add(&catalog.NotFoundError{
				Entity: "unit model",
				Key:    fmt.Sprintf("%s (not part of unit %q)", sel.UnitModelID, unit.Name),
			})
			continue
		}
		counts[sel.UnitModelID]++
	}
	for i := range unit.Models {
		config := &unit.Models[i]
		count := counts[config.ID]
		if count == 0 && config.MinAmount == 0 {
			continue
		}
		if count < config.MinAmount || count > config.MaxAmount {
			verrs.add(&SlotCardinalityError{
				UnitModel: config.DisplayName(),
				Count:     count,
				Min:       config.MinAmount,
				Max:       config.MaxAmount,
			})
		}
	}

	total := 0
	for _, count := range counts {
		total += count
	}
	if total < unit.ModelsMin || total > unit.ModelsMax {
		verrs.add(&UnitSizeError{
			Unit:  unit.Name,
			Count: total,
			Min:   unit.ModelsMin,
			Max:   unit.ModelsMax,
		})
	}

	if unit.MaxPerArmy != nil && fielded+1 > *unit.MaxPerArmy {
		verrs.add(&ArmyLimitError{
			Unit:  unit.Name,
			Count: fielded,
			Max:   *unit.MaxPerArmy,
		})
	}

	tree := &models.ArmyUnit{UnitID: unit.ID}
	for _, sel := range selections {
		config, ok := configs[sel.UnitModelID]
		if !ok {
			continue
		}
		model := models.ArmyModel{UnitModelID: config.ID}
		model.Items = composeSlots(config, sel.Items, verrs)
		tree.Models = append(tree.Models, model)
	}

	if len(verrs.Violations) > 0 {
		return nil, verrs
	}
	return tree, nil
}

// composeSlots validates one model's item choices slot by slot and returns
// the resulting slot fillings.
func composeSlots(config *models.UnitModel, choices []ItemChoice, verrs *ValidationErrors) []models.ArmyModelItem {
	slots := make(map[uuid.UUID]*models.ItemSlot, len(config.ItemSlots))
	for i := range config.ItemSlots {
		slots[config.ItemSlots[i].ID] = &config.ItemSlots[i]
	}

	bySlot := make(map[uuid.UUID][]ItemChoice)
	for _, choice := range choices {
		if _, ok := slots[choice.SlotID]; !ok {
			verrs.add(&catalog.NotFoundError{
				Entity: "item slot",
				Key:    fmt.Sprintf("%s (not on model %q)", choice.SlotID, config.DisplayName()),
			})
			continue
		}
		bySlot[choice.SlotID] = append(bySlot[choice.SlotID], choice)
	}

	var items []models.ArmyModelItem
	for i := range config.ItemSlots {
		slot := &config.ItemSlots[i]
		eligible := eligibleItems(slot)
		slotName := slotName(slot)

		chosen := bySlot[slot.ID]

		// An untouched slot with a required default resolves to one default
		// item; without a default it stays empty and the cardinality check
		// below decides.
		if len(chosen) == 0 && slot.DefaultID != nil && slot.MinAmount >= 1 {
			items = append(items, models.ArmyModelItem{
				ItemSlotID: slot.ID,
				ItemID:     *slot.DefaultID,
				Amount:     1,
			})
			continue
		}

		// Quantity counts every chosen item, eligible or not, so an
		// ineligible pick within bounds reports exactly one violation.
		quantity := 0
		for _, choice := range chosen {
			quantity += choice.Amount
			if _, ok := eligible[choice.ItemID]; !ok {
				verrs.add(&ItemSlotError{
					UnitModel: config.DisplayName(),
					Slot:      slotName,
					Item:      choice.ItemID.String(),
				})
				continue
			}
			items = append(items, models.ArmyModelItem{
				ItemSlotID: slot.ID,
				ItemID:     choice.ItemID,
				Amount:     choice.Amount,
			})
		}

		if quantity < slot.MinAmount || quantity > slot.MaxAmount {
			verrs.add(&SlotCardinalityError{
				UnitModel: config.DisplayName(),
				Slot:      slotName,
				Count:     quantity,
				Min:       slot.MinAmount,
				Max:       slot.MaxAmount,
			})
		}
	}
	return items
}

// eligibleItems is the union of a slot's explicit options and the items of
// its referenced wargear lists.
func eligibleItems(slot *models.ItemSlot) map[uuid.UUID]*models.Item {
	eligible := make(map[uuid.UUID]*models.Item)
	for i := range slot.Options {
		eligible[slot.Options[i].ID] = &slot.Options[i]
	}
	for i := range slot.OptionFromList {
		list := &slot.OptionFromList[i]
		for j := range list.Items {
			eligible[list.Items[j].ID] = &list.Items[j]
		}
	}
	return eligible
}

func slotName(slot *models.ItemSlot) string {
	if slot.Default != nil {
		return slot.Default.Name + " slot"
	}
	return slot.ID.String()
}

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elbenfreund/armyimp/internal/api/dto"
	"github.com/elbenfreund/armyimp/internal/database/models"
	"github.com/elbenfreund/armyimp/internal/roster"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArmyUnitHandler struct {
	db     *gorm.DB
	roster *roster.Service
}

func NewArmyUnitHandler(db *gorm.DB, rosterService *roster.Service) *ArmyUnitHandler {
	return &ArmyUnitHandler{db: db, roster: rosterService}
}

// ItemChoiceRequest selects an item for one slot of a proposed model.
type ItemChoiceRequest struct {
	SlotID string `json:"slot_id"`
	ItemID string `json:"item_id"`
	Amount int    `json:"amount"`
}

// ModelSelectionRequest proposes one model for the new unit.
type ModelSelectionRequest struct {
	UnitModelID string              `json:"unit_model_id"`
	Items       []ItemChoiceRequest `json:"items,omitempty"`
}

// BuildArmyUnitRequest represents the request to field a unit in an army.
type BuildArmyUnitRequest struct {
	UnitID string                  `json:"unit_id"`
	Name   string                  `json:"name,omitempty"`
	Models []ModelSelectionRequest `json:"models"`
}

func (r BuildArmyUnitRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if r.UnitID == "" {
		errs["unit_id"] = "Unit ID is required"
	} else if _, err := uuid.Parse(r.UnitID); err != nil {
		errs["unit_id"] = "Invalid unit ID format"
	}
	for i, sel := range r.Models {
		if _, err := uuid.Parse(sel.UnitModelID); err != nil {
			errs[fmt.Sprintf("models[%d].unit_model_id", i)] = "Invalid unit model ID format"
		}
		for j, choice := range sel.Items {
			if _, err := uuid.Parse(choice.SlotID); err != nil {
				errs[fmt.Sprintf("models[%d].items[%d].slot_id", i, j)] = "Invalid slot ID format"
			}
			if _, err := uuid.Parse(choice.ItemID); err != nil {
				errs[fmt.Sprintf("models[%d].items[%d].item_id", i, j)] = "Invalid item ID format"
			}
			if choice.Amount < 1 {
				errs[fmt.Sprintf("models[%d].items[%d].amount", i, j)] = "Amount must be at least 1"
			}
		}
	}
	return errs
}

func (r BuildArmyUnitRequest) selections() []roster.ModelSelection {
	selections := make([]roster.ModelSelection, len(r.Models))
	for i, sel := range r.Models {
		unitModelID, _ := uuid.Parse(sel.UnitModelID)
		selections[i] = roster.ModelSelection{UnitModelID: unitModelID}
		for _, choice := range sel.Items {
			slotID, _ := uuid.Parse(choice.SlotID)
			itemID, _ := uuid.Parse(choice.ItemID)
			selections[i].Items = append(selections[i].Items, roster.ItemChoice{
				SlotID: slotID,
				ItemID: itemID,
				Amount: choice.Amount,
			})
		}
	}
	return selections
}

// ArmyModelItemResponse is one filled slot of a fielded model.
type ArmyModelItemResponse struct {
	ItemSlotID string `json:"item_slot_id"`
	ItemID     string `json:"item_id"`
	ItemName   string `json:"item_name,omitempty"`
	Amount     int    `json:"amount"`
}

// ArmyModelResponse is one fielded model with its equipment.
type ArmyModelResponse struct {
	ID          string                  `json:"id"`
	UnitModelID string                  `json:"unit_model_id"`
	Name        string                  `json:"name,omitempty"`
	Items       []ArmyModelItemResponse `json:"items"`
}

// ArmyUnitResponse is a fielded unit with its composition tree.
type ArmyUnitResponse struct {
	ID        string              `json:"id"`
	ArmyID    string              `json:"army_id"`
	UnitID    string              `json:"unit_id"`
	UnitName  string              `json:"unit_name,omitempty"`
	Name      string              `json:"name,omitempty"`
	Models    []ArmyModelResponse `json:"models"`
	CreatedAt string              `json:"created_at"`
}

func armyUnitToResponse(armyUnit *models.ArmyUnit) ArmyUnitResponse {
	resp := ArmyUnitResponse{
		ID:        armyUnit.ID.String(),
		ArmyID:    armyUnit.ArmyID.String(),
		UnitID:    armyUnit.UnitID.String(),
		Name:      armyUnit.Name,
		Models:    make([]ArmyModelResponse, len(armyUnit.Models)),
		CreatedAt: armyUnit.CreatedAt.Format(time.RFC3339),
	}
	if armyUnit.Unit != nil {
		resp.UnitName = armyUnit.Unit.Name
	}
	for i := range armyUnit.Models {
		model := &armyUnit.Models[i]
		modelResp := ArmyModelResponse{
			ID:          model.ID.String(),
			UnitModelID: model.UnitModelID.String(),
			Items:       make([]ArmyModelItemResponse, len(model.Items)),
		}
		if model.UnitModel != nil {
			modelResp.Name = model.UnitModel.DisplayName()
		}
		for j := range model.Items {
			item := &model.Items[j]
			itemResp := ArmyModelItemResponse{
				ItemSlotID: item.ItemSlotID.String(),
				ItemID:     item.ItemID.String(),
				Amount:     item.Amount,
			}
			if item.Item != nil {
				itemResp.ItemName = item.Item.Name
			}
			modelResp.Items[j] = itemResp
		}
		resp.Models[i] = modelResp
	}
	return resp
}

// Build handles POST /api/v1/armies/:id/units
func (h *ArmyUnitHandler) Build(w http.ResponseWriter, r *http.Request) {
	armyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid army ID"})
		return
	}

	var req BuildArmyUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	unitID, _ := uuid.Parse(req.UnitID)
	armyUnit, err := h.roster.BuildArmyUnit(r.Context(), armyID, unitID, req.Name, req.selections())
	if err != nil {
		writeError(w, err, "Failed to build army unit")
		return
	}

	writeJSON(w, http.StatusCreated, armyUnitToResponse(armyUnit))
}

// ListForArmy handles GET /api/v1/armies/:id/units
func (h *ArmyUnitHandler) ListForArmy(w http.ResponseWriter, r *http.Request) {
	armyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid army ID"})
		return
	}

	var armyUnits []models.ArmyUnit
	if err := h.db.
		Preload("Unit").
		Preload("Models.UnitModel.Profile").
		Preload("Models.Items.Item").
		Where("army_id = ?", armyID).
		Order("created_at ASC").
		Find(&armyUnits).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list army units"})
		return
	}

	response := make([]ArmyUnitResponse, len(armyUnits))
	for i := range armyUnits {
		response[i] = armyUnitToResponse(&armyUnits[i])
	}
	writeJSON(w, http.StatusOK, response)
}

// Get handles GET /api/v1/army-units/:id
func (h *ArmyUnitHandler) Get(w http.ResponseWriter, r *http.Request) {
	armyUnitID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid army unit ID"})
		return
	}

	armyUnit, err := h.roster.GetArmyUnit(r.Context(), armyUnitID)
	if err != nil {
		writeError(w, err, "Failed to get army unit")
		return
	}

	writeJSON(w, http.StatusOK, armyUnitToResponse(armyUnit))
}

// Delete handles DELETE /api/v1/army-units/:id
func (h *ArmyUnitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	armyUnitID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid army unit ID"})
		return
	}

	result := h.db.Where("id = ?", armyUnitID).Delete(&models.ArmyUnit{})
	if result.Error != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete army unit"})
		return
	}
	if result.RowsAffected == 0 {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Army unit not found"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Army unit removed"})
}

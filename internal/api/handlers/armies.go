package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/elbenfreund/armyimp/internal/api/dto"
	"github.com/elbenfreund/armyimp/internal/database/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArmyHandler struct {
	db *gorm.DB
}

func NewArmyHandler(db *gorm.DB) *ArmyHandler {
	return &ArmyHandler{db: db}
}

// CreateArmyRequest represents the request to create an army
type CreateArmyRequest struct {
	Name string `json:"name"`
}

func (r CreateArmyRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if r.Name == "" {
		errs["name"] = "Name is required"
	}
	if len(r.Name) > 200 {
		errs["name"] = "Name must be at most 200 characters"
	}
	return errs
}

// ArmyResponse represents an army in API responses
type ArmyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitCount int    `json:"unit_count"`
	CreatedAt string `json:"created_at"`
}

func armyToResponse(army *models.Army) ArmyResponse {
	return ArmyResponse{
		ID:        army.ID.String(),
		Name:      army.Name,
		UnitCount: len(army.Units),
		CreatedAt: army.CreatedAt.Format(time.RFC3339),
	}
}

// List handles GET /api/v1/armies
func (h *ArmyHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	pagination := dto.PaginationParams{Page: page, PerPage: perPage}
	pagination.Normalize()

	query := h.db.Model(&models.Army{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to count armies"})
		return
	}

	var armies []models.Army
	if err := query.
		Preload("Units").
		Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.PerPage).
		Find(&armies).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list armies"})
		return
	}

	response := make([]ArmyResponse, len(armies))
	for i := range armies {
		response[i] = armyToResponse(&armies[i])
	}

	totalPages := int(total) / pagination.PerPage
	if int(total)%pagination.PerPage > 0 {
		totalPages++
	}

	writeJSON(w, http.StatusOK, dto.PaginatedResponse{
		Data:       response,
		Total:      total,
		Page:       pagination.Page,
		PerPage:    pagination.PerPage,
		TotalPages: totalPages,
	})
}

// Create handles POST /api/v1/armies
func (h *ArmyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateArmyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	army := models.Army{Name: req.Name}
	if err := h.db.Create(&army).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "An army with this name already exists"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create army"})
		return
	}

	writeJSON(w, http.StatusCreated, armyToResponse(&army))
}

// Get handles GET /api/v1/armies/:id
func (h *ArmyHandler) Get(w http.ResponseWriter, r *http.Request) {
	armyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid army ID"})
		return
	}

	var army models.Army
	if err := h.db.Preload("Units.Unit").First(&army, "id = ?", armyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Army not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get army"})
		return
	}

	writeJSON(w, http.StatusOK, armyToResponse(&army))
}

// Delete handles DELETE /api/v1/armies/:id. Deleting an army cascades down
// to its units, models and slot fillings.
func (h *ArmyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	armyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid army ID"})
		return
	}

	result := h.db.Where("id = ?", armyID).Delete(&models.Army{})
	if result.Error != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete army"})
		return
	}
	if result.RowsAffected == 0 {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Army not found"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Army deleted"})
}

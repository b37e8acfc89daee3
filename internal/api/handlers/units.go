package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/elbenfreund/armyimp/internal/api/dto"
	"github.com/elbenfreund/armyimp/internal/cache"
	"github.com/elbenfreund/armyimp/internal/catalog"
	"github.com/elbenfreund/armyimp/internal/database/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type UnitHandler struct {
	catalog *catalog.Service
	cache   *cache.Cache
}

func NewUnitHandler(catalogService *catalog.Service, cache *cache.Cache) *UnitHandler {
	return &UnitHandler{catalog: catalogService, cache: cache}
}

// UnitListEntry is the flat unit representation used in listings.
type UnitListEntry struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	OrganizationID   string `json:"organization_id"`
	Category         string `json:"category"`
	IsNamedCharacter bool   `json:"is_named_character"`
	PowerRating      int    `json:"power_rating"`
	ModelPrice       int    `json:"model_price"`
	MaxPerArmy       *int   `json:"max_per_army,omitempty"`
	ModelsMin        int    `json:"models_min"`
	ModelsMax        int    `json:"models_max"`
}

func unitToListEntry(unit *models.Unit) UnitListEntry {
	return UnitListEntry{
		ID:               unit.ID.String(),
		Name:             unit.Name,
		OrganizationID:   unit.OrganizationID.String(),
		Category:         string(unit.Category),
		IsNamedCharacter: unit.IsNamedCharacter,
		PowerRating:      unit.PowerRating,
		ModelPrice:       unit.ModelPrice,
		MaxPerArmy:       unit.MaxPerArmy,
		ModelsMin:        unit.ModelsMin,
		ModelsMax:        unit.ModelsMax,
	}
}

// List handles GET /api/v1/units
func (h *UnitHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	pagination := dto.PaginationParams{Page: page, PerPage: perPage}
	pagination.Normalize()

	filters := catalog.UnitFilters{
		Category: r.URL.Query().Get("category"),
	}
	if raw := r.URL.Query().Get("organization_id"); raw != "" {
		orgID, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid organization ID"})
			return
		}
		filters.OrganizationID = &orgID
	}

	units, total, err := h.catalog.ListUnits(r.Context(), filters, pagination.Offset(), pagination.PerPage)
	if err != nil {
		writeError(w, err, "Failed to list units")
		return
	}

	response := make([]UnitListEntry, len(units))
	for i := range units {
		response[i] = unitToListEntry(&units[i])
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

// Get handles GET /api/v1/units/:id
func (h *UnitHandler) Get(w http.ResponseWriter, r *http.Request) {
	unitID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid unit ID"})
		return
	}

	cacheKey := "unit:" + unitID.String()
	if data := h.cache.Get(r.Context(), cacheKey); data != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	unit, err := h.catalog.GetUnit(r.Context(), unitID)
	if err != nil {
		writeError(w, err, "Failed to get unit")
		return
	}

	payload, err := json.Marshal(unit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to encode unit"})
		return
	}
	h.cache.Set(r.Context(), cacheKey, payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/elbenfreund/armyimp/internal/api/dto"
	"github.com/elbenfreund/armyimp/internal/catalog"
	"github.com/elbenfreund/armyimp/internal/database/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalog *catalog.Service
}

func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: catalogService}
}

type OrganizationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListOrganizations handles GET /api/v1/organizations
func (h *CatalogHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.catalog.ListOrganizations(r.Context())
	if err != nil {
		writeError(w, err, "Failed to list organizations")
		return
	}

	response := make([]OrganizationResponse, len(orgs))
	for i, org := range orgs {
		response[i] = OrganizationResponse{ID: org.ID.String(), Name: org.Name}
	}
	writeJSON(w, http.StatusOK, response)
}

type ItemResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Comment string `json:"comment,omitempty"`
}

func itemToResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:      item.ID.String(),
		Name:    item.Name,
		Comment: item.Comment,
	}
}

// ListItems handles GET /api/v1/items
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	pagination := dto.PaginationParams{Page: page, PerPage: perPage}
	pagination.Normalize()

	items, total, err := h.catalog.ListItems(r.Context(), pagination.Offset(), pagination.PerPage)
	if err != nil {
		writeError(w, err, "Failed to list items")
		return
	}

	response := make([]ItemResponse, len(items))
	for i := range items {
		response[i] = itemToResponse(&items[i])
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

// GetItemPrice handles GET /api/v1/items/:id/price
func (h *CatalogHandler) GetItemPrice(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid item ID"})
		return
	}

	price, err := h.catalog.Price(r.Context(), itemID)
	if err != nil {
		writeError(w, err, "Failed to resolve item price")
		return
	}
	writeJSON(w, http.StatusOK, price)
}

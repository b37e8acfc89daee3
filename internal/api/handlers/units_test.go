package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elbenfreund/armyimp/internal/api/dto"
	"github.com/elbenfreund/armyimp/internal/api/handlers"
	"github.com/elbenfreund/armyimp/internal/cache"
	"github.com/elbenfreund/armyimp/internal/catalog"
	"github.com/elbenfreund/armyimp/internal/database/models"
	"github.com/elbenfreund/armyimp/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUnitRouter(t *testing.T) (*gorm.DB, *chi.Mux) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalogService := catalog.NewService(db, logger)

	unitHandler := handlers.NewUnitHandler(catalogService, cache.New(nil, 0, logger))
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/units", unitHandler.List)
		r.Get("/units/{id}", unitHandler.Get)
		r.Get("/organizations", catalogHandler.ListOrganizations)
		r.Get("/items", catalogHandler.ListItems)
		r.Get("/items/{id}/price", catalogHandler.GetItemPrice)
	})
	return db, r
}

func TestUnitHandler_List(t *testing.T) {
	db, router := setupUnitRouter(t)

	marines := testutil.CreateTestOrganization(t, db, "Space Marines")
	guard := testutil.CreateTestOrganization(t, db, "Astra Militarum")
	testutil.CreateTestUnit(t, db, marines, "Tactical Squad", 5, 10)
	testutil.CreateTestUnit(t, db, guard, "Infantry Squad", 10, 10)

	tests := []struct {
		name          string
		query         string
		expectedTotal int64
	}{
		{name: "all units", query: "", expectedTotal: 2},
		{name: "filter by organization", query: "?organization_id=" + marines.ID.String(), expectedTotal: 1},
		{name: "filter without matches", query: "?organization_id=" + uuid.New().String(), expectedTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.JSONRequest(t, "GET", "/api/v1/units"+tt.query, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			var resp dto.PaginatedResponse
			testutil.ParseJSONResponse(t, rr, &resp)
			assert.Equal(t, tt.expectedTotal, resp.Total)
		})
	}

	t.Run("malformed organization id", func(t *testing.T) {
		req := testutil.JSONRequest(t, "GET", "/api/v1/units?organization_id=bogus", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUnitHandler_Get(t *testing.T) {
	db, router := setupUnitRouter(t)

	org := testutil.CreateTestOrganization(t, db, "Space Marines")
	unit := testutil.CreateTestUnit(t, db, org, "Tactical Squad", 5, 10)
	profile := testutil.CreateTestModelProfile(t, db, "Tactical Marine")
	testutil.CreateTestUnitModel(t, db, unit, profile, 4, 9)

	t.Run("existing unit with composition", func(t *testing.T) {
		req := testutil.JSONRequest(t, "GET", "/api/v1/units/"+unit.ID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp models.Unit
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Tactical Squad", resp.Name)
		require.Len(t, resp.Models, 1)
		assert.Equal(t, "Tactical Marine", resp.Models[0].Profile.Name)
	})

	t.Run("unknown unit", func(t *testing.T) {
		req := testutil.JSONRequest(t, "GET", "/api/v1/units/"+uuid.New().String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCatalogHandler_ListOrganizations(t *testing.T) {
	db, router := setupUnitRouter(t)

	testutil.CreateTestOrganization(t, db, "Space Marines")
	testutil.CreateTestOrganization(t, db, "Astra Militarum")

	req := testutil.JSONRequest(t, "GET", "/api/v1/organizations", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp []handlers.OrganizationResponse
	testutil.ParseJSONResponse(t, rr, &resp)
	require.Len(t, resp, 2)
	// Listing is ordered by name.
	assert.Equal(t, "Astra Militarum", resp[0].Name)
}

func TestCatalogHandler_GetItemPrice(t *testing.T) {
	db, router := setupUnitRouter(t)

	org := testutil.CreateTestOrganization(t, db, "Space Marines")
	item := testutil.CreateTestItem(t, db, "Boltgun", map[uuid.UUID]int{org.ID: 5})

	t.Run("priced item", func(t *testing.T) {
		req := testutil.JSONRequest(t, "GET", "/api/v1/items/"+item.ID.String()+"/price", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp catalog.ItemPrice
		testutil.ParseJSONResponse(t, rr, &resp)
		require.NotNil(t, resp.Uniform)
		assert.Equal(t, 5, *resp.Uniform)
	})

	t.Run("unpriced item", func(t *testing.T) {
		unpriced := testutil.CreateTestItem(t, db, "Relic Blade", nil)
		req := testutil.JSONRequest(t, "GET", "/api/v1/items/"+unpriced.ID.String()+"/price", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

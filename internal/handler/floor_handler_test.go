package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/seatwise/floor-service/internal/dto"
	"github.com/seatwise/floor-service/internal/models"
	"github.com/seatwise/floor-service/internal/occupancy"
	"github.com/stretchr/testify/assert"
)

// --- Mock TableRepository ---

type mockTableRepo struct {
	findAllFn func(ctx context.Context, restaurantID uint) ([]models.Table, error)
}

func (m *mockTableRepo) FindByID(ctx context.Context, id uint) (*models.Table, error) {
	return nil, nil
}
func (m *mockTableRepo) FindByIDs(ctx context.Context, ids []uint) ([]models.Table, error) {
	return nil, nil
}
func (m *mockTableRepo) FindActiveByRestaurant(ctx context.Context, restaurantID uint) ([]models.Table, error) {
	return nil, nil
}
func (m *mockTableRepo) FindAllByRestaurant(ctx context.Context, restaurantID uint) ([]models.Table, error) {
	return m.findAllFn(ctx, restaurantID)
}
func (m *mockTableRepo) ListRestaurantIDs(ctx context.Context) ([]uint, error) {
	return nil, nil
}

// --- Mock CombinationRepository ---

type mockCombinationRepo struct {
	findByRestaurantFn func(ctx context.Context, restaurantID uint) ([]models.TableCombination, error)
}

func (m *mockCombinationRepo) Create(ctx context.Context, combo *models.TableCombination) error {
	return nil
}
func (m *mockCombinationRepo) FindByID(ctx context.Context, id uint) (*models.TableCombination, error) {
	return nil, nil
}
func (m *mockCombinationRepo) FindByRestaurant(ctx context.Context, restaurantID uint) ([]models.TableCombination, error) {
	if m.findByRestaurantFn != nil {
		return m.findByRestaurantFn(ctx, restaurantID)
	}
	return nil, nil
}

// --- Tests ---

func TestGetFloor_Handler_Success(t *testing.T) {
	floor := &mockFloorService{
		snapshotFn: func(ctx context.Context, restaurantID uint) (*occupancy.Snapshot, error) {
			return openFloorSnapshot(), nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/1/floor", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewFloorHandler(floor, nil, nil)
	err := h.GetFloor(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.FloorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Tables, 1)
	assert.Equal(t, 1, resp.AvailableCount)
	assert.Zero(t, resp.AnomalyCount)
}

func TestGetFloor_Handler_InvalidID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/abc/floor", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	h := NewFloorHandler(nil, nil, nil)
	err := h.GetFloor(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestListTables_Handler_Success(t *testing.T) {
	repo := &mockTableRepo{
		findAllFn: func(ctx context.Context, restaurantID uint) ([]models.Table, error) {
			return []models.Table{
				{ID: 1, RestaurantID: restaurantID, TableNumber: "T1", MaxCapacity: 4, IsActive: true},
				{ID: 2, RestaurantID: restaurantID, TableNumber: "T9", MaxCapacity: 6, IsActive: false},
			}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/1/tables", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewFloorHandler(nil, repo, nil)
	err := h.ListTables(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []models.Table
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestCheckAvailability_Handler_SingleTables(t *testing.T) {
	floor := &mockFloorService{
		snapshotFn: func(ctx context.Context, restaurantID uint) (*occupancy.Snapshot, error) {
			return openFloorSnapshot(), nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/1/availability?party_size=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewFloorHandler(floor, nil, nil)
	err := h.CheckAvailability(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	var ids []uint
	assert.NoError(t, json.Unmarshal(resp["available_table_ids"], &ids))
	assert.Equal(t, []uint{1}, ids)
	assert.NotContains(t, resp, "combination_fit")
}

func TestCheckAvailability_Handler_FallsBackToCombination(t *testing.T) {
	tables := []models.Table{
		{ID: 1, RestaurantID: 1, TableNumber: "T1", MinCapacity: 1, MaxCapacity: 4, IsActive: true, IsCombinable: true},
		{ID: 2, RestaurantID: 1, TableNumber: "T2", MinCapacity: 1, MaxCapacity: 4, IsActive: true, IsCombinable: true},
	}
	floor := &mockFloorService{
		snapshotFn: func(ctx context.Context, restaurantID uint) (*occupancy.Snapshot, error) {
			return occupancy.Resolve(tables, nil, time.Now()), nil
		},
	}
	combos := &mockCombinationRepo{
		findByRestaurantFn: func(ctx context.Context, restaurantID uint) ([]models.TableCombination, error) {
			return []models.TableCombination{
				{ID: 1, RestaurantID: restaurantID, PrimaryTableID: 1, SecondaryTableID: 2, CombinedCapacity: 8},
			}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/1/availability?party_size=6", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewFloorHandler(floor, nil, combos)
	err := h.CheckAvailability(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "combination_fit")

	var fit dto.CombinationResponse
	assert.NoError(t, json.Unmarshal(resp["combination_fit"], &fit))
	assert.Equal(t, uint(1), fit.ID)
	assert.Equal(t, 8, fit.CombinedCapacity)
}

func TestCheckAvailability_Handler_BadPartySize(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/1/availability?party_size=0", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewFloorHandler(nil, nil, nil)
	err := h.CheckAvailability(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/seatwise/floor-service/internal/combination"
	"github.com/seatwise/floor-service/internal/dto"
	"github.com/seatwise/floor-service/internal/service"
)

type CombinationHandler struct {
	svc service.CombinationService
}

func NewCombinationHandler(svc service.CombinationService) *CombinationHandler {
	return &CombinationHandler{svc: svc}
}

func (h *CombinationHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/combinations", h.CreateCombination)
	e.GET("/api/v1/combinations/suggest", h.SuggestCapacity)
	e.GET("/api/v1/restaurants/:id/combinations", h.ListCombinations)
}

func (h *CombinationHandler) CreateCombination(c echo.Context) error {
	var req dto.CreateCombinationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RestaurantID == 0 || req.PrimaryTableID == 0 || req.SecondaryTableID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "restaurant_id, primary_table_id and secondary_table_id are required")
	}

	combo, err := h.svc.Create(c.Request().Context(), req.RestaurantID, req.PrimaryTableID, req.SecondaryTableID, req.CombinedCapacity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTableNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, combination.ErrNotCombinable),
			errors.Is(err, combination.ErrSameTable),
			errors.Is(err, combination.ErrInvalidCapacity):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToCombinationResponse(combo))
}

func (h *CombinationHandler) ListCombinations(c echo.Context) error {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid restaurant id")
	}

	combos, err := h.svc.List(c.Request().Context(), uint(restaurantID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.CombinationResponse, len(combos))
	for i := range combos {
		resp[i] = dto.ToCombinationResponse(&combos[i])
	}

	return c.JSON(http.StatusOK, resp)
}

// SuggestCapacity returns the arithmetic sum the UI pre-fills; the operator
// may overwrite it before saving.
func (h *CombinationHandler) SuggestCapacity(c echo.Context) error {
	primaryID, err := strconv.ParseUint(c.QueryParam("primary"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid primary table id")
	}
	secondaryID, err := strconv.ParseUint(c.QueryParam("secondary"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid secondary table id")
	}

	suggested, err := h.svc.Suggest(c.Request().Context(), uint(primaryID), uint(secondaryID))
	if err != nil {
		if errors.Is(err, service.ErrTableNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]int{"suggested_capacity": suggested})
}

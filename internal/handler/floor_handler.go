package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/seatwise/floor-service/internal/dto"
	"github.com/seatwise/floor-service/internal/occupancy"
	"github.com/seatwise/floor-service/internal/repository"
	"github.com/seatwise/floor-service/internal/service"
	"github.com/seatwise/floor-service/pkg/ws"
)

type FloorHandler struct {
	floor     service.FloorService
	tableRepo repository.TableRepository
	comboRepo repository.CombinationRepository
}

func NewFloorHandler(floor service.FloorService, tableRepo repository.TableRepository, comboRepo repository.CombinationRepository) *FloorHandler {
	return &FloorHandler{floor: floor, tableRepo: tableRepo, comboRepo: comboRepo}
}

func (h *FloorHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/restaurants/:id/floor", h.GetFloor)
	e.GET("/api/v1/restaurants/:id/tables", h.ListTables)
	e.GET("/api/v1/restaurants/:id/availability", h.CheckAvailability)
	e.GET("/ws/floor", h.ServeWS)
}

func (h *FloorHandler) GetFloor(c echo.Context) error {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid restaurant id")
	}

	snap, err := h.floor.Snapshot(c.Request().Context(), uint(restaurantID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToFloorResponse(snap))
}

func (h *FloorHandler) ListTables(c echo.Context) error {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid restaurant id")
	}

	tables, err := h.tableRepo.FindAllByRestaurant(c.Request().Context(), uint(restaurantID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, tables)
}

// CheckAvailability answers "can we seat a party of N right now": the free
// single tables that fit, and failing those, the smallest free combination.
func (h *FloorHandler) CheckAvailability(c echo.Context) error {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid restaurant id")
	}

	partySize, err := strconv.Atoi(c.QueryParam("party_size"))
	if err != nil || partySize < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "party_size must be a positive integer")
	}

	ctx := c.Request().Context()

	snap, err := h.floor.Snapshot(ctx, uint(restaurantID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var availableIDs []uint
	for _, to := range snap.Tables {
		if occupancy.IsTableAvailable(to.Table, partySize, snap) {
			availableIDs = append(availableIDs, to.Table.ID)
		}
	}

	resp := map[string]interface{}{
		"party_size":          partySize,
		"available_table_ids": availableIDs,
	}

	if len(availableIDs) == 0 {
		combos, err := h.comboRepo.FindByRestaurant(ctx, uint(restaurantID))
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if fit := occupancy.FindCombinationFit(partySize, combos, snap); fit != nil {
			resp["combination_fit"] = dto.ToCombinationResponse(fit)
		}
	}

	return c.JSON(http.StatusOK, resp)
}

var upgrader = websocket.Upgrader{
	// Dashboards are served from a different origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades a dashboard connection and keeps it registered until the
// client goes away. Snapshots and deltas arrive via the hub broadcast.
func (h *FloorHandler) ServeWS(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	ws.RegisterClient(conn)
	defer ws.UnregisterClient(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

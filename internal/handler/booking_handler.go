package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/seatwise/floor-service/internal/dto"
	"github.com/seatwise/floor-service/internal/models"
	"github.com/seatwise/floor-service/internal/service"
	"github.com/seatwise/floor-service/internal/statemachine"
	"github.com/seatwise/floor-service/pkg/ws"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/bookings/:id", h.GetBooking)
	e.GET("/api/v1/bookings/:id/history", h.GetStatusHistory)
	e.PATCH("/api/v1/bookings/:id/status", h.TransitionStatus)
	e.PUT("/api/v1/bookings/:id/tables", h.AssignTables)
	e.GET("/api/v1/restaurants/:id/bookings", h.ListBookings)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid restaurant id")
	}

	from, to, err := parseDateRange(c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bookings, err := h.svc.ListBookings(c.Request().Context(), uint(restaurantID), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) TransitionStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.TransitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Status == "" || req.ActorID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status and actor_id are required")
	}

	newStatus := models.DiningStatus(req.Status)
	if !newStatus.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status: "+req.Status)
	}

	booking, err := h.svc.TransitionStatus(c.Request().Context(), uint(id), newStatus, req.ActorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, statemachine.ErrInvalidTransition):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	resp := dto.ToBookingResponse(booking)
	ws.Broadcast(ws.Message{Event: ws.EventBookingUpdate, Data: resp})

	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) AssignTables(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.AssignTablesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.AssignTables(c.Request().Context(), uint(id), req.TableIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound), errors.Is(err, service.ErrTableNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInactiveTable), errors.Is(err, service.ErrNoTablesGiven):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	resp := dto.ToBookingResponse(booking)
	ws.Broadcast(ws.Message{Event: ws.EventTableAssignment, Data: resp})

	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) GetStatusHistory(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	records, err := h.svc.StatusHistory(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, records)
}

// parseDateRange interprets from/to query params as dates; an empty range
// defaults to today.
func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	if fromStr == "" && toStr == "" {
		now := time.Now()
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return from, from.AddDate(0, 0, 1), nil
	}

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid from date, expected YYYY-MM-DD")
	}

	if toStr == "" {
		return from, from.AddDate(0, 0, 1), nil
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid to date, expected YYYY-MM-DD")
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, errors.New("to date must be after from date")
	}
	return from, to, nil
}

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
	"github.com/seatwise/floor-service/internal/waitlist"
	"github.com/seatwise/floor-service/pkg/ws"
)

type WaitlistHandler struct {
	svc   service.WaitlistService
	floor service.FloorService
}

func NewWaitlistHandler(svc service.WaitlistService, floor service.FloorService) *WaitlistHandler {
	return &WaitlistHandler{svc: svc, floor: floor}
}

func (h *WaitlistHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/waitlist", h.CreateEntry)
	e.GET("/api/v1/restaurants/:id/waitlist", h.ListWaitlist)
	e.POST("/api/v1/waitlist/:id/notify", h.NotifyEntry)
	e.POST("/api/v1/waitlist/:id/convert", h.ConvertEntry)
	e.DELETE("/api/v1/waitlist/:id", h.CancelEntry)
}

func (h *WaitlistHandler) CreateEntry(c echo.Context) error {
	var req dto.CreateWaitlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RestaurantID == 0 || req.PartySize < 1 || req.DesiredTimeRange == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "restaurant_id, party_size and desired_time_range are required")
	}
	if req.UserID == nil && req.GuestName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "either user_id or guest contact is required")
	}
	if req.UserID != nil && req.GuestName != "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id and guest contact are mutually exclusive")
	}
	if _, _, err := waitlist.ParseTimeRange(req.DesiredDate, req.DesiredTimeRange); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tableType := req.TableType
	if tableType == "" {
		tableType = models.TableTypeAny
	}

	entry := &models.WaitlistEntry{
		RestaurantID:     req.RestaurantID,
		UserID:           req.UserID,
		GuestName:        req.GuestName,
		GuestPhone:       req.GuestPhone,
		GuestEmail:       req.GuestEmail,
		DesiredDate:      req.DesiredDate,
		DesiredTimeRange: req.DesiredTimeRange,
		PartySize:        req.PartySize,
		TableType:        tableType,
	}

	if err := h.svc.CreateEntry(c.Request().Context(), entry); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToWaitlistEntryResponse(entry, waitlist.ClassifyUrgency(*entry, time.Now()), false))
}

// ListWaitlist returns the panel view: entries for the date, each graded by
// urgency and checked against the current occupancy snapshot.
func (h *WaitlistHandler) ListWaitlist(c echo.Context) error {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid restaurant id")
	}

	date := time.Now()
	if d := c.QueryParam("date"); d != "" {
		date, err = time.Parse("2006-01-02", d)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
	}

	ctx := c.Request().Context()

	entries, err := h.svc.ListForDate(ctx, uint(restaurantID), date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	snap, err := h.floor.Snapshot(ctx, uint(restaurantID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	tables := make([]models.Table, len(snap.Tables))
	for i, to := range snap.Tables {
		tables[i] = to.Table
	}

	now := time.Now()
	resp := make([]dto.WaitlistEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = dto.ToWaitlistEntryResponse(
			&e,
			waitlist.ClassifyUrgency(e, now),
			waitlist.HasAvailability(e, tables, snap),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *WaitlistHandler) NotifyEntry(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid waitlist entry id")
	}

	entry, err := h.svc.Notify(c.Request().Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEntryNotActive):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrNoTableAvailable):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	resp := dto.ToWaitlistEntryResponse(entry, waitlist.ClassifyUrgency(*entry, time.Now()), true)
	ws.Broadcast(ws.Message{Event: ws.EventWaitlistUpdate, Data: resp})

	return c.JSON(http.StatusOK, resp)
}

func (h *WaitlistHandler) ConvertEntry(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid waitlist entry id")
	}

	var req dto.ConvertWaitlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.SlotTime.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "slot_time is required")
	}

	booking, err := h.svc.Convert(c.Request().Context(), uint(id), service.ConvertInput{
		SlotTime:   req.SlotTime,
		TableIDs:   req.TableIDs,
		AutoAssign: req.AutoAssign,
		ActorID:    req.ActorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound), errors.Is(err, service.ErrTableNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEntryNotActive), errors.Is(err, service.ErrNoTableAvailable):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidSlot),
			errors.Is(err, service.ErrNoTablesGiven),
			errors.Is(err, service.ErrInactiveTable):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	resp := dto.ToBookingResponse(booking)
	ws.Broadcast(ws.Message{Event: ws.EventBookingUpdate, Data: resp})

	return c.JSON(http.StatusCreated, resp)
}

func (h *WaitlistHandler) CancelEntry(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid waitlist entry id")
	}

	entry, err := h.svc.Cancel(c.Request().Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEntryClosed):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	resp := dto.ToWaitlistEntryResponse(entry, waitlist.ClassifyUrgency(*entry, time.Now()), false)
	ws.Broadcast(ws.Message{Event: ws.EventWaitlistUpdate, Data: resp})

	return c.JSON(http.StatusOK, resp)
}

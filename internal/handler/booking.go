package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/speaker-booking-desk/internal/service"
)

// BookingHandler serves the booking endpoints for users and administrators.
type BookingHandler struct {
	svc *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// Submit handles POST /v1/bookings.
func (h *BookingHandler) Submit(c echo.Context) error {
	var in service.BookingInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	b, err := h.svc.Submit(ctx, principal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// Mine handles GET /v1/my-bookings.
func (h *BookingHandler) Mine(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	list, err := h.svc.ListMine(ctx, principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}

// Get handles GET /v1/bookings/:id and GET /v1/admin/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	b, err := h.svc.Get(ctx, principal(c), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// List handles GET /v1/admin/bookings?status=.
func (h *BookingHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	list, err := h.svc.List(ctx, principal(c), c.QueryParam("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}

// Confirm handles POST /v1/admin/bookings/:id/confirm.
func (h *BookingHandler) Confirm(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	b, err := h.svc.Confirm(ctx, principal(c), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// Cancel handles POST /v1/admin/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	b, err := h.svc.Cancel(ctx, principal(c), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// Delete handles DELETE /v1/admin/bookings/:id.
func (h *BookingHandler) Delete(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Delete(ctx, principal(c), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

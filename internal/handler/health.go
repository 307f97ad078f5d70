package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/speaker-booking-desk/internal/model"
)

// Health is the liveness probe.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// BookingOptions returns the choices for the booking form.
func BookingOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, model.DefaultBookingOptions())
}

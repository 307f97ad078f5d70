package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/speaker-booking-desk/internal/service"
)

// ContactHandler serves the public contact form and its admin inbox.
type ContactHandler struct {
	svc *service.ContactService
}

func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Send handles POST /v1/contact.
func (h *ContactHandler) Send(c echo.Context) error {
	var in service.ContactInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	m, err := h.svc.Send(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// List handles GET /v1/admin/contact-messages.
func (h *ContactHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	list, err := h.svc.List(ctx, principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": list})
}

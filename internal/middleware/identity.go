package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/speaker-booking-desk/internal/model"
)

// PrincipalFrom returns the caller stored by JWTAuth.  ok is false on routes
// that are not behind JWTAuth.
func PrincipalFrom(c echo.Context) (model.Principal, bool) {
	p, ok := c.Get(ctxPrincipal).(model.Principal)
	return p, ok && p.UserID != 0
}

// subject identifies the caller for rate limit and cache keys.  Anonymous
// requests share the "anon" subject.
func subject(c echo.Context) string {
	if id, ok := c.Get(ctxUserID).(uint64); ok && id != 0 {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}

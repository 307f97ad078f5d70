package model

// Capability names an operation that requires authorization.
type Capability string

const (
	CapabilitySubmitBooking       Capability = "booking:submit"
	CapabilityManageBookings      Capability = "booking:manage"
	CapabilityViewAnalytics       Capability = "analytics:view"
	CapabilityReadContactMessages Capability = "contact:read"
)

var roleCapabilities = map[string]map[Capability]bool{
	RoleAdmin: {
		CapabilityManageBookings:      true,
		CapabilityViewAnalytics:       true,
		CapabilityReadContactMessages: true,
	},
	RoleUser: {
		CapabilitySubmitBooking: true,
	},
}

// Principal is the authenticated caller as recovered from a verified access
// token.
type Principal struct {
	UserID uint64
	Email  string
	Role   string
}

// Can reports whether the principal's role grants c.  A zero principal can do
// nothing.
func (p Principal) Can(c Capability) bool {
	if p.UserID == 0 {
		return false
	}
	return roleCapabilities[p.Role][c]
}

// IsAdmin is shorthand for the ADMIN role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

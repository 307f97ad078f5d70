package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrincipal_Can(t *testing.T) {
	admin := Principal{UserID: 1, Email: "admin@example.com", Role: RoleAdmin}
	user := Principal{UserID: 2, Email: "jane@example.com", Role: RoleUser}

	assert.True(t, admin.Can(CapabilityManageBookings))
	assert.True(t, admin.Can(CapabilityViewAnalytics))
	assert.True(t, admin.Can(CapabilityReadContactMessages))
	assert.False(t, admin.Can(CapabilitySubmitBooking))

	assert.True(t, user.Can(CapabilitySubmitBooking))
	assert.False(t, user.Can(CapabilityManageBookings))
	assert.False(t, user.Can(CapabilityViewAnalytics))

	assert.False(t, Principal{Role: RoleAdmin}.Can(CapabilityManageBookings), "no user id")
	assert.False(t, Principal{UserID: 3, Role: "OWNER"}.Can(CapabilitySubmitBooking))
}

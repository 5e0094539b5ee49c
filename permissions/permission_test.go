package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"innkeep/permissions"
	"innkeep/shared/constant"
)

func TestGet_EmbeddedPolicy(t *testing.T) {
	policy := permissions.Get()
	assert.NotNil(t, policy)
	assert.False(t, policy.Open)

	known := []string{constant.RoleAdmin, constant.RoleManager, constant.RoleAccountant, constant.RoleReceptionist}

	for _, rule := range policy.Routes {
		if rule.Guest {
			assert.Empty(t, rule.Roles, "%s %s", rule.Method, rule.Path)

			continue
		}

		for _, role := range rule.Roles {
			assert.Contains(t, known, role, "%s %s", rule.Method, rule.Path)
		}
	}
}

func TestPermissionData_Rule(t *testing.T) {
	policy := permissions.Get()

	tests := []struct {
		name   string
		method string
		path   string
		role   string
		guest  bool
		allows bool
	}{
		{name: "guest search", method: http.MethodGet, path: "/v1/rooms/available", guest: true, allows: true},
		{name: "guest hold", method: http.MethodPost, path: "/v1/rooms/{id}/hold", guest: true, allows: true},
		{name: "accountant confirms payment", method: http.MethodPost, path: "/v1/bookings/{id}/confirm-payment", role: constant.RoleAccountant, allows: true},
		{name: "receptionist cannot confirm payment", method: http.MethodPost, path: "/v1/bookings/{id}/confirm-payment", role: constant.RoleReceptionist},
		{name: "receptionist cannot add rooms", method: http.MethodPost, path: "/v1/rooms/", role: constant.RoleReceptionist},
		{name: "manager edits calendar", method: http.MethodPut, path: "/v1/pricing/calendar", role: constant.RoleManager, allows: true},
		{name: "guest reads payment account", method: http.MethodGet, path: "/v1/pricing/payment-account", guest: true, allows: true},
		{name: "receptionist cannot delete room types", method: http.MethodDelete, path: "/v1/room-types/{code}", role: constant.RoleReceptionist},
		{name: "receptionist lists the menu", method: http.MethodGet, path: "/v1/service-items/", role: constant.RoleReceptionist, allows: true},
		{name: "accountant cannot edit the menu", method: http.MethodPut, path: "/v1/service-items/{id}", role: constant.RoleAccountant},
		{name: "lowercase method", method: "get", path: "/v1/rooms/available", guest: true, allows: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := policy.Rule(tt.method, tt.path)

			assert.Equal(t, tt.guest, rule.Guest)
			assert.Equal(t, tt.allows, rule.Allows(tt.role))
		})
	}
}

func TestParse(t *testing.T) {
	policy, err := permissions.Parse([]byte(`{
		"routes": [
			{"method": "GET", "path": "/v1/rooms/", "roles": ["admin"]},
			{"method": "GET", "path": "/v1/rooms/", "roles": ["manager"]}
		]
	}`))
	assert.NoError(t, err)

	rule := policy.Rule(http.MethodGet, "/v1/rooms/")
	assert.True(t, rule.Allows(constant.RoleManager))
	assert.False(t, rule.Allows(constant.RoleAdmin))

	unlisted := policy.Rule(http.MethodGet, "/v1/unknown")
	assert.False(t, unlisted.Guest)
	assert.True(t, unlisted.Allows(constant.RoleReceptionist))

	_, err = permissions.Parse([]byte(`{"routes": [`))
	assert.Error(t, err)
}

package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleIsHR(t *testing.T) {
	assert.True(t, RoleHR.IsHR())
	assert.True(t, RoleAdmin.IsHR())
	assert.False(t, RoleEmployee.IsHR())
	assert.False(t, RoleMarketingExecutive.IsHR())
	assert.False(t, Role("").IsHR())
}

func TestDisplayName(t *testing.T) {
	u := User{FullName: "Priya Nair", Username: "priya.n"}
	assert.Equal(t, "Priya Nair", u.DisplayName())

	u.FullName = ""
	assert.Equal(t, "priya.n", u.DisplayName())
}

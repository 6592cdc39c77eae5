package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCanCrossOrganization(t *testing.T) {
	assert.True(t, RoleSuperAdmin.Can(CapCrossOrganization))
	assert.False(t, RoleAdmin.Can(CapCrossOrganization))
	assert.False(t, RoleMember.Can(CapCrossOrganization))
	assert.False(t, Role("unknown").Can(CapCrossOrganization))
}

func TestRoleCanUnknownCapability(t *testing.T) {
	assert.False(t, RoleSuperAdmin.Can(Capability("delete_everything")))
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Role
		ok   bool
	}{
		{name: "admin", raw: "admin", want: RoleAdmin, ok: true},
		{name: "gestor master", raw: "gestor_master", want: RoleManagerMaster, ok: true},
		{name: "tripulante", raw: "tripulante", want: RoleCrewMember, ok: true},
		{name: "cotista", raw: "cotista", want: RoleShareholder, ok: true},
		{name: "unknown value", raw: "superuser", ok: false},
		{name: "empty", raw: "", ok: false},
		{name: "case sensitive", raw: "Admin", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRole(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseRoles_FiltersAndDeduplicates(t *testing.T) {
	got := ParseRoles([]string{"piloto_chefe", "bogus", "admin", "piloto_chefe", ""})
	assert.Equal(t, []Role{RoleChiefPilot, RoleAdmin}, got)
}

func TestParseRoles_Empty(t *testing.T) {
	assert.Empty(t, ParseRoles(nil))
	assert.Empty(t, ParseRoles([]string{"nope"}))
}

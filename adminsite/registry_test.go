package adminsite

import (
	"testing"

	"backoffice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegistry() *Registry {
	registry := NewRegistry()
	registry.RegisterApp("accounts", "Accounts")
	registry.RegisterModel("accounts", Model{Name: "user", ObjectName: "User", DisplayName: "Users"})
	registry.RegisterModel("accounts", Model{Name: "group", ObjectName: "Group", DisplayName: "Groups"})
	registry.RegisterApp("syshealth", "System Health")
	registry.RegisterModel("syshealth", Model{Name: "accessevent", ObjectName: "AccessEvent", DisplayName: "Access events"})
	return registry
}

func userWithPerms(codenames ...string) *models.User {
	user := &models.User{IsStaff: true}
	for _, codename := range codenames {
		user.Permissions = append(user.Permissions, &models.Permission{Codename: codename})
	}
	return user
}

func TestAppDictNonStaffSeesNothing(t *testing.T) {
	registry := sampleRegistry()

	assert.Empty(t, registry.AppDict(nil))
	assert.Empty(t, registry.AppDict(&models.User{}))
	assert.Empty(t, registry.AppList(&models.User{IsSuperuser: true}))
}

func TestAppDictFiltersByPermission(t *testing.T) {
	registry := sampleRegistry()
	user := userWithPerms("accounts.view_user")

	dict := registry.AppDict(user)
	require.Contains(t, dict, "accounts")
	assert.NotContains(t, dict, "syshealth")

	accounts := dict["accounts"]
	require.Len(t, accounts.Models, 1)
	assert.Equal(t, "Users", accounts.Models[0].Name)
	assert.True(t, accounts.HasModulePerms)
}

func TestAppDictPermFlags(t *testing.T) {
	registry := sampleRegistry()
	user := userWithPerms("accounts.view_user", "accounts.add_user")

	entry := registry.AppDict(user)["accounts"].Models[0]
	assert.True(t, entry.Perms.View)
	assert.True(t, entry.Perms.Add)
	assert.False(t, entry.Perms.Change)
	assert.False(t, entry.Perms.Delete)
	assert.Equal(t, "user", entry.ModelName)
	assert.Equal(t, "/admin/accounts/user/", entry.AdminURL)
	assert.Equal(t, "/admin/accounts/user/add/", entry.AddURL)
}

func TestAppDictNoAddURLWithoutAddPerm(t *testing.T) {
	registry := sampleRegistry()
	user := userWithPerms("accounts.view_user")

	entry := registry.AppDict(user)["accounts"].Models[0]
	assert.Empty(t, entry.AddURL)
}

func TestAppListSuperuserSeesEverythingSorted(t *testing.T) {
	registry := sampleRegistry()
	admin := &models.User{IsStaff: true, IsSuperuser: true}

	list := registry.AppList(admin)
	require.Len(t, list, 2)
	assert.Equal(t, "Accounts", list[0].Name)
	assert.Equal(t, "System Health", list[1].Name)

	// models sorted by display name within the app
	require.Len(t, list[0].Models, 2)
	assert.Equal(t, "Groups", list[0].Models[0].Name)
	assert.Equal(t, "Users", list[0].Models[1].Name)
}

func TestRegisterModelUnknownAppCreatesIt(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterModel("ADHOC", Model{Name: "Thing", ObjectName: "Thing"})

	admin := &models.User{IsStaff: true, IsSuperuser: true}
	list := registry.AppList(admin)
	require.Len(t, list, 1)
	assert.Equal(t, "adhoc", list[0].AppLabel)
	assert.Equal(t, "Thing", list[0].Models[0].Name)
}

func TestRegisterAppTwiceUpdatesDisplayName(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterApp("accounts", "Accounts")
	registry.RegisterModel("accounts", Model{Name: "user", ObjectName: "User"})
	registry.RegisterApp("accounts", "People & Access")

	admin := &models.User{IsStaff: true, IsSuperuser: true}
	list := registry.AppList(admin)
	require.Len(t, list, 1)
	assert.Equal(t, "People & Access", list[0].Name)
}

func TestGroupPermissionsCount(t *testing.T) {
	registry := sampleRegistry()
	user := &models.User{
		IsStaff: true,
		Groups: []*models.Group{
			{Permissions: []*models.Permission{{Codename: "syshealth.view_accessevent"}}},
		},
	}

	dict := registry.AppDict(user)
	require.Contains(t, dict, "syshealth")
	assert.NotContains(t, dict, "accounts")
}

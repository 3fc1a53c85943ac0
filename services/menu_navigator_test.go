package services

import (
	"errors"
	"testing"

	"backoffice/adminsite"
	"backoffice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *adminsite.Registry {
	registry := adminsite.NewRegistry()
	registry.RegisterApp("accounts", "Accounts")
	registry.RegisterModel("accounts", adminsite.Model{Name: "user", ObjectName: "User", DisplayName: "Users"})
	registry.RegisterModel("accounts", adminsite.Model{Name: "group", ObjectName: "Group", DisplayName: "Groups"})
	return registry
}

func staffUser(codenames ...string) *models.User {
	user := &models.User{IsStaff: true}
	for _, codename := range codenames {
		user.Permissions = append(user.Permissions, &models.Permission{Codename: codename})
	}
	return user
}

func testNavigator(registry *adminsite.Registry) *MenuNavigator {
	routes := adminsite.NewRouteTable()
	nav := NewMenuNavigator(registry, routes)
	nav.resolveScope = func(*models.User) (*models.MenuScope, error) {
		return &models.MenuScope{ID: "scope-1", Name: "everyone"}, nil
	}
	nav.activeConfig = func(*models.MenuScope) (*models.MenuConfig, error) {
		return &models.MenuConfig{
			ID:      "cfg-1",
			ScopeID: "scope-1",
			Items:   []*models.MenuItem{modelItem(1, "accounts", "user")},
		}, nil
	}
	return nav
}

func TestNavigatorServesCustomList(t *testing.T) {
	nav := testNavigator(testRegistry())
	user := staffUser("accounts.view_user", "accounts.view_group")

	list := nav.AppList(user, "")
	require.Len(t, list, 1)
	require.Len(t, list[0].Models, 1)
	assert.Equal(t, "Users", list[0].Models[0].Name)
}

func TestNavigatorSuperuserGetsDefault(t *testing.T) {
	nav := testNavigator(testRegistry())
	admin := &models.User{IsStaff: true, IsSuperuser: true}

	list := nav.AppList(admin, "")
	require.Len(t, list, 1)
	// the default list carries every registered model, not the custom subset
	assert.Len(t, list[0].Models, 2)
}

func TestNavigatorSingleAppViewBypassesCustomMenu(t *testing.T) {
	nav := testNavigator(testRegistry())
	user := staffUser("accounts.view_user", "accounts.view_group")

	list := nav.AppList(user, "accounts")
	require.Len(t, list, 1)
	assert.Len(t, list[0].Models, 2)

	assert.Empty(t, nav.AppList(user, "nosuchapp"))
}

func TestNavigatorNoScopeServesDefault(t *testing.T) {
	nav := testNavigator(testRegistry())
	nav.resolveScope = func(*models.User) (*models.MenuScope, error) { return nil, nil }
	user := staffUser("accounts.view_user", "accounts.view_group")

	list := nav.AppList(user, "")
	require.Len(t, list, 1)
	assert.Len(t, list[0].Models, 2)
}

func TestNavigatorNoActiveConfigServesDefault(t *testing.T) {
	nav := testNavigator(testRegistry())
	nav.activeConfig = func(*models.MenuScope) (*models.MenuConfig, error) { return nil, nil }
	user := staffUser("accounts.view_user")

	list := nav.AppList(user, "")
	require.Len(t, list, 1)
	assert.Equal(t, "Accounts", list[0].Name)
}

func TestNavigatorResolveErrorFallsBack(t *testing.T) {
	nav := testNavigator(testRegistry())
	nav.resolveScope = func(*models.User) (*models.MenuScope, error) {
		return nil, errors.New("connection refused")
	}
	user := staffUser("accounts.view_user", "accounts.view_group")

	list := nav.AppList(user, "")
	require.Len(t, list, 1)
	assert.Len(t, list[0].Models, 2)
}

func TestNavigatorConfigErrorFallsBack(t *testing.T) {
	nav := testNavigator(testRegistry())
	nav.activeConfig = func(*models.MenuScope) (*models.MenuConfig, error) {
		return nil, errors.New("connection refused")
	}
	user := staffUser("accounts.view_user")

	list := nav.AppList(user, "")
	require.Len(t, list, 1)
}

func TestNavigatorBuildErrorFallsBack(t *testing.T) {
	nav := testNavigator(testRegistry())
	nav.build = func(*models.User, *models.MenuConfig, map[string]adminsite.AppEntry, RouteResolver) ([]adminsite.AppEntry, error) {
		return nil, &BuildError{ScopeID: "scope-1", ConfigID: "cfg-1", Err: errors.New("bad route")}
	}
	user := staffUser("accounts.view_user")

	list := nav.AppList(user, "")
	require.Len(t, list, 1)
	assert.Equal(t, "Accounts", list[0].Name)
}

func TestNavigatorEmptyCustomListFallsBack(t *testing.T) {
	nav := testNavigator(testRegistry())
	nav.activeConfig = func(*models.MenuScope) (*models.MenuConfig, error) {
		// active config whose only item points at an unregistered model
		return &models.MenuConfig{
			ID:      "cfg-1",
			ScopeID: "scope-1",
			Items:   []*models.MenuItem{modelItem(1, "nosuchapp", "user")},
		}, nil
	}
	user := staffUser("accounts.view_user")

	list := nav.AppList(user, "")
	require.Len(t, list, 1)
	assert.Equal(t, "Accounts", list[0].Name)
}

func TestNavigatorNonStaffGetsNothing(t *testing.T) {
	nav := testNavigator(testRegistry())

	assert.Empty(t, nav.AppList(&models.User{}, ""))
	assert.Empty(t, nav.AppList(nil, ""))
}

package services

import (
	"errors"
	"testing"

	"backoffice/adminsite"
	"backoffice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	routes map[string]string
	err    error
}

func (f *fakeResolver) Resolve(name string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if path, ok := f.routes[name]; ok {
		return path, nil
	}
	return "", adminsite.ErrRouteNotFound
}

func testAppDict() map[string]adminsite.AppEntry {
	return map[string]adminsite.AppEntry{
		"accounts": {
			Name:           "Accounts",
			AppLabel:       "accounts",
			AppURL:         "/admin/accounts/",
			HasModulePerms: true,
			Models: []adminsite.ModelEntry{
				{Name: "Users", ObjectName: "User", Perms: adminsite.ModelPerms{View: true, Change: true}, AdminURL: "/admin/accounts/user/"},
				{Name: "Groups", ObjectName: "Group", Perms: adminsite.ModelPerms{View: true}, AdminURL: "/admin/accounts/group/"},
			},
		},
		"syshealth": {
			Name:           "System Health",
			AppLabel:       "syshealth",
			AppURL:         "/admin/syshealth/",
			HasModulePerms: true,
			Models: []adminsite.ModelEntry{
				{Name: "Access events", ObjectName: "AccessEvent", Perms: adminsite.ModelPerms{View: true}, AdminURL: "/admin/syshealth/accessevent/"},
			},
		},
	}
}

func modelItem(order int, appLabel, modelName string) *models.MenuItem {
	return &models.MenuItem{
		Order:     order,
		ItemType:  models.ItemTypeModel,
		AppLabel:  appLabel,
		ModelName: modelName,
	}
}

func TestBuildAppListNilConfig(t *testing.T) {
	list, err := BuildAppList(nil, nil, testAppDict(), &fakeResolver{})
	require.NoError(t, err)
	assert.Nil(t, list)
}

func TestBuildAppListModelItems(t *testing.T) {
	config := &models.MenuConfig{
		Items: []*models.MenuItem{
			modelItem(1, "accounts", "user"),
			modelItem(2, "accounts", "group"),
		},
	}

	list, err := BuildAppList(nil, config, testAppDict(), &fakeResolver{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	section := list[0]
	assert.Equal(t, "Accounts", section.Name)
	assert.Equal(t, "accounts", section.AppLabel)
	assert.Equal(t, "/admin/accounts/", section.AppURL)
	require.Len(t, section.Models, 2)
	assert.Equal(t, "Users", section.Models[0].Name)
	assert.Equal(t, "/admin/accounts/user/", section.Models[0].AdminURL)
	assert.Equal(t, "Groups", section.Models[1].Name)
}

func TestBuildAppListSkipsUnknownModels(t *testing.T) {
	config := &models.MenuConfig{
		Items: []*models.MenuItem{
			modelItem(1, "accounts", "user"),
			modelItem(2, "accounts", "missing"),
			modelItem(3, "nosuchapp", "user"),
		},
	}

	list, err := BuildAppList(nil, config, testAppDict(), &fakeResolver{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Models, 1)
	assert.Equal(t, "Users", list[0].Models[0].Name)
}

func TestBuildAppListLabelOverride(t *testing.T) {
	item := modelItem(1, "accounts", "user")
	item.Label = "Members"
	config := &models.MenuConfig{Items: []*models.MenuItem{item}}

	list, err := BuildAppList(nil, config, testAppDict(), &fakeResolver{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Members", list[0].Models[0].Name)
	// the registry's own dict is left untouched
	assert.Equal(t, "Users", testAppDict()["accounts"].Models[0].Name)
}

func TestBuildAppListSectionOverride(t *testing.T) {
	first := modelItem(1, "accounts", "user")
	first.Section = "Administration"
	second := modelItem(2, "syshealth", "accessevent")
	second.Section = "Administration"
	config := &models.MenuConfig{Items: []*models.MenuItem{first, second}}

	list, err := BuildAppList(nil, config, testAppDict(), &fakeResolver{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	section := list[0]
	assert.Equal(t, "Administration", section.Name)
	assert.Equal(t, "administration", section.AppLabel)
	assert.Equal(t, "#", section.AppURL)
	assert.True(t, section.HasModulePerms)
	require.Len(t, section.Models, 2)
	assert.Equal(t, "Users", section.Models[0].Name)
	assert.Equal(t, "Access events", section.Models[1].Name)
}

func TestBuildAppListSectionsKeepFirstSeenOrder(t *testing.T) {
	config := &models.MenuConfig{
		Items: []*models.MenuItem{
			modelItem(1, "syshealth", "accessevent"),
			modelItem(2, "accounts", "user"),
			modelItem(3, "syshealth", "accessevent"),
		},
	}

	list, err := BuildAppList(nil, config, testAppDict(), &fakeResolver{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "System Health", list[0].Name)
	assert.Equal(t, "Accounts", list[1].Name)
	assert.Len(t, list[0].Models, 2)
}

func TestBuildAppListItemOrderWins(t *testing.T) {
	config := &models.MenuConfig{
		Items: []*models.MenuItem{
			modelItem(20, "accounts", "group"),
			modelItem(10, "accounts", "user"),
		},
	}

	list, err := BuildAppList(nil, config, testAppDict(), &fakeResolver{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Users", list[0].Models[0].Name)
	assert.Equal(t, "Groups", list[0].Models[1].Name)
}

func TestBuildAppListPermissionFiltering(t *testing.T) {
	gated := modelItem(1, "accounts", "user")
	gated.PermissionCodename = "accounts.view_user"
	open := modelItem(2, "accounts", "group")
	config := &models.MenuConfig{Items: []*models.MenuItem{gated, open}}

	viewer := &models.User{}
	list, err := BuildAppList(viewer, config, testAppDict(), &fakeResolver{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Models, 1)
	assert.Equal(t, "Groups", list[0].Models[0].Name)

	holder := &models.User{Permissions: []*models.Permission{{Codename: "accounts.view_user"}}}
	list, err = BuildAppList(holder, config, testAppDict(), &fakeResolver{})
	require.NoError(t, err)
	require.Len(t, list[0].Models, 2)
}

func TestBuildAppListURLItemNamedRoute(t *testing.T) {
	resolver := &fakeResolver{routes: map[string]string{"ops:syshealth": "/api/v1/ops/health"}}
	config := &models.MenuConfig{
		Items: []*models.MenuItem{
			{Order: 1, ItemType: models.ItemTypeURL, URLName: "ops:syshealth", Label: "Health"},
		},
	}

	list, err := BuildAppList(nil, config, testAppDict(), resolver)
	require.NoError(t, err)
	require.Len(t, list, 1)

	section := list[0]
	assert.Equal(t, "Links", section.Name)
	assert.Equal(t, "#", section.AppURL)
	require.Len(t, section.Models, 1)
	entry := section.Models[0]
	assert.Equal(t, "Health", entry.Name)
	assert.Equal(t, "/api/v1/ops/health", entry.AdminURL)
	assert.True(t, entry.ViewOnly)
	assert.True(t, entry.Perms.View)
	assert.False(t, entry.Perms.Add)
	assert.Empty(t, entry.AddURL)
}

func TestBuildAppListURLItemFallsBackToLiteral(t *testing.T) {
	config := &models.MenuConfig{
		Items: []*models.MenuItem{
			{Order: 1, ItemType: models.ItemTypeURL, URLName: "gone:route", AbsoluteURL: "https://example.com/docs"},
		},
	}

	list, err := BuildAppList(nil, config, testAppDict(), &fakeResolver{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "https://example.com/docs", list[0].Models[0].AdminURL)
	assert.Equal(t, "gone:route", list[0].Models[0].Name)
}

func TestBuildAppListURLItemWithoutAnyURLSkipped(t *testing.T) {
	config := &models.MenuConfig{
		Items: []*models.MenuItem{
			{Order: 1, ItemType: models.ItemTypeURL, URLName: "gone:route"},
			modelItem(2, "accounts", "user"),
		},
	}

	list, err := BuildAppList(nil, config, testAppDict(), &fakeResolver{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Accounts", list[0].Name)
}

func TestBuildAppListNamedLinkSectionPointsAtFirstItem(t *testing.T) {
	config := &models.MenuConfig{
		Items: []*models.MenuItem{
			{Order: 1, ItemType: models.ItemTypeURL, AbsoluteURL: "/reports/", Section: "Reporting", Label: "Reports"},
			{Order: 2, ItemType: models.ItemTypeURL, AbsoluteURL: "/exports/", Section: "Reporting", Label: "Exports"},
		},
	}

	list, err := BuildAppList(nil, config, testAppDict(), &fakeResolver{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	section := list[0]
	assert.Equal(t, "Reporting", section.Name)
	assert.Equal(t, "/reports/", section.AppURL)
	require.Len(t, section.Models, 2)
}

func TestBuildAppListResolverErrorAborts(t *testing.T) {
	boom := errors.New("route table corrupted")
	config := &models.MenuConfig{
		ID:      "cfg-1",
		ScopeID: "scope-1",
		Items: []*models.MenuItem{
			{Order: 1, ItemType: models.ItemTypeURL, URLName: "ops:syshealth"},
		},
	}

	list, err := BuildAppList(nil, config, testAppDict(), &fakeResolver{err: boom})
	assert.Nil(t, list)
	require.Error(t, err)

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "scope-1", buildErr.ScopeID)
	assert.Equal(t, "cfg-1", buildErr.ConfigID)
	assert.ErrorIs(t, err, boom)
}

func TestBuildAppListMatchesRegisteredModelName(t *testing.T) {
	// multi-word type names must still match the lowercase identifier an
	// admin types into a menu item
	appDict := map[string]adminsite.AppEntry{
		"billing": {
			Name:           "Billing",
			AppLabel:       "billing",
			AppURL:         "/admin/billing/",
			HasModulePerms: true,
			Models: []adminsite.ModelEntry{
				{Name: "Payment plans", ObjectName: "Payment_Plan", ModelName: "payment_plan", AdminURL: "/admin/billing/payment_plan/", Perms: adminsite.ModelPerms{View: true}},
			},
		},
	}
	config := &models.MenuConfig{
		Items: []*models.MenuItem{modelItem(1, "billing", "payment_plan")},
	}

	list, err := BuildAppList(nil, config, appDict, &fakeResolver{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Payment plans", list[0].Models[0].Name)
}

func TestBuildAppListMatchFallsBackToObjectName(t *testing.T) {
	appDict := map[string]adminsite.AppEntry{
		"billing": {
			Name:     "Billing",
			AppLabel: "billing",
			Models: []adminsite.ModelEntry{
				{Name: "Invoices", ObjectName: "Invoice", Perms: adminsite.ModelPerms{View: true}},
			},
		},
	}
	config := &models.MenuConfig{
		Items: []*models.MenuItem{modelItem(1, "billing", "invoice")},
	}

	list, err := BuildAppList(nil, config, appDict, &fakeResolver{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Invoices", list[0].Models[0].Name)
}

func TestBuildAppListMixedModelAndURLSections(t *testing.T) {
	resolver := &fakeResolver{routes: map[string]string{"admin:index": "/admin/"}}
	config := &models.MenuConfig{
		Items: []*models.MenuItem{
			modelItem(1, "accounts", "user"),
			{Order: 2, ItemType: models.ItemTypeURL, URLName: "admin:index", Label: "Home"},
			modelItem(3, "syshealth", "accessevent"),
		},
	}

	list, err := BuildAppList(nil, config, testAppDict(), resolver)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Accounts", list[0].Name)
	assert.Equal(t, "Links", list[1].Name)
	assert.Equal(t, "System Health", list[2].Name)
}

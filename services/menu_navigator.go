package services

import (
	"log"

	"backoffice/adminsite"
	"backoffice/metrics"
	"backoffice/models"
)

// MenuNavigator serves the scope-configured navigation list for non-superusers
// and degrades to the registry default on any failure. It is registered with
// the admin site host at startup as its Navigator.
type MenuNavigator struct {
	registry *adminsite.Registry
	routes   *adminsite.RouteTable

	// seams injected for tests; production wiring uses the package functions
	resolveScope func(*models.User) (*models.MenuScope, error)
	activeConfig func(*models.MenuScope) (*models.MenuConfig, error)
	build        func(*models.User, *models.MenuConfig, map[string]adminsite.AppEntry, RouteResolver) ([]adminsite.AppEntry, error)
}

func NewMenuNavigator(registry *adminsite.Registry, routes *adminsite.RouteTable) *MenuNavigator {
	return &MenuNavigator{
		registry:     registry,
		routes:       routes,
		resolveScope: ResolveScope,
		activeConfig: ActiveConfigForScope,
		build:        BuildAppList,
	}
}

// AppList implements adminsite.Navigator. The default list is always computed
// first: it is both the fallback and, through the app dict, the source of
// model entries for the custom list. Customization only applies to the
// top-level multi-app view of non-superusers.
func (n *MenuNavigator) AppList(user *models.User, appLabel string) []adminsite.AppEntry {
	defaultList := adminsite.FilterByApp(n.registry.AppList(user), appLabel)

	if appLabel != "" || (user != nil && user.IsSuperuser) {
		metrics.MenuBuildsTotal.WithLabelValues("default").Inc()
		return defaultList
	}

	scope, err := n.resolveScope(user)
	if err != nil {
		n.fallback("resolve_error", err)
		return defaultList
	}
	if scope == nil {
		metrics.MenuBuildsTotal.WithLabelValues("default").Inc()
		return defaultList
	}

	config, err := n.activeConfig(scope)
	if err != nil {
		n.fallback("config_error", err)
		return defaultList
	}
	if config == nil {
		metrics.MenuBuildsTotal.WithLabelValues("default").Inc()
		return defaultList
	}

	custom, err := n.build(user, config, n.registry.AppDict(user), n.routes)
	if err != nil {
		n.fallback("build_error", err)
		return defaultList
	}
	if len(custom) == 0 {
		n.fallback("empty", nil)
		return defaultList
	}

	metrics.MenuBuildsTotal.WithLabelValues("custom").Inc()
	return custom
}

func (n *MenuNavigator) fallback(reason string, err error) {
	if err != nil {
		log.Printf("Custom menu unavailable (%s), serving default list: %v", reason, err)
	}
	metrics.MenuBuildsTotal.WithLabelValues("fallback").Inc()
	metrics.MenuBuildFallbacks.WithLabelValues(reason).Inc()
}

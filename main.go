package main

import (
	"log"

	"backoffice/adminsite"
	"backoffice/config"
	"backoffice/database"
	"backoffice/middleware"
	v1 "backoffice/routes/v1"
	"backoffice/services"

	"github.com/gin-gonic/gin"
)

// buildRegistry declares every app and model the admin site exposes. Menu
// items of type "model" resolve against these entries.
func buildRegistry() *adminsite.Registry {
	registry := adminsite.NewRegistry()

	registry.RegisterApp("accounts", "Accounts")
	registry.RegisterModel("accounts", adminsite.Model{Name: "user", ObjectName: "User", DisplayName: "Users"})
	registry.RegisterModel("accounts", adminsite.Model{Name: "group", ObjectName: "Group", DisplayName: "Groups"})
	registry.RegisterModel("accounts", adminsite.Model{Name: "permission", ObjectName: "Permission", DisplayName: "Permissions"})
	registry.RegisterModel("accounts", adminsite.Model{Name: "person", ObjectName: "Person", DisplayName: "People"})

	registry.RegisterApp("admin_menu", "Admin Menu")
	registry.RegisterModel("admin_menu", adminsite.Model{Name: "menuscope", ObjectName: "MenuScope", DisplayName: "Menu scopes"})
	registry.RegisterModel("admin_menu", adminsite.Model{Name: "menuconfig", ObjectName: "MenuConfig", DisplayName: "Menu configs"})
	registry.RegisterModel("admin_menu", adminsite.Model{Name: "menuitem", ObjectName: "MenuItem", DisplayName: "Menu items"})

	registry.RegisterApp("syshealth", "System Health")
	registry.RegisterModel("syshealth", adminsite.Model{Name: "accessevent", ObjectName: "AccessEvent", DisplayName: "Access events"})
	registry.RegisterModel("syshealth", adminsite.Model{Name: "accesssettings", ObjectName: "AccessSettings", DisplayName: "Access settings"})
	registry.RegisterModel("syshealth", adminsite.Model{Name: "systemhealthconfig", ObjectName: "SystemHealthConfig", DisplayName: "Health config"})

	return registry
}

// buildRouteTable registers the named routes that "url" menu items and the
// access logger resolve against
func buildRouteTable() *adminsite.RouteTable {
	routes := adminsite.NewRouteTable()
	routes.Register("admin:index", "/admin/")
	routes.Register("ops:syshealth", "/api/v1/ops/health")
	routes.Register("ops:access_dashboard", "/api/v1/ops/access/summary")
	routes.Register("ops:access_events", "/api/v1/ops/access/events")
	routes.Register("api:metrics", "/api/v1/metrics")
	routes.Register("api:docs", "/api/v1/swagger/index.html")
	return routes
}

// @title Back Office API
// @version 1.0
// @description Admin navigation, access logging and system health API
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	config.Load()
	database.InitDB()

	registry := buildRegistry()
	routes := buildRouteTable()
	navigator := services.NewMenuNavigator(registry, routes)
	collector := services.NewHealthCollector()

	r := gin.Default()
	v1.Register(r, navigator, collector, routes)

	// Background refresh of runtime gauges
	middleware.UpdateSystemMetrics()

	log.Printf("Listening on %s", config.ServerAddr)
	if err := r.Run(config.ServerAddr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

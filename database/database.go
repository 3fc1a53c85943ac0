package database

import (
	"fmt"
	"log"

	"backoffice/config"
	"backoffice/models"
	"backoffice/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

var DefaultAdminEmail = "admin@admin.com"
var DefaultSubscriberGroup = "Subscribers"

// InitDB initializes the database connection, migrates the models and
// populates the database with default values if needed
func InitDB() {
    dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=UTC", config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)

    var err error
    DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
    if err != nil {
        log.Fatal("failed to connect database: ", err)
    }

    err = DB.AutoMigrate(
        &models.User{},
        &models.Group{},
        &models.Permission{},
        &models.Person{},
        &models.MenuScope{},
        &models.MenuConfig{},
        &models.MenuItem{},
        &models.AccessEvent{},
        &models.AccessSettings{},
        &models.SystemHealthConfig{},
    )
    if err != nil {
        log.Fatal("failed to migrate database: ", err)
    }

    // Partial unique index backing the one-active-config-per-scope invariant
    if err := DB.Exec(
        "CREATE UNIQUE INDEX IF NOT EXISTS unique_active_menu_per_scope ON menu_configs (scope_id) WHERE is_active",
    ).Error; err != nil {
        log.Fatal("failed to create active config index: ", err)
    }

    Populate()
}

// Populate populates the database with default values if needed
func Populate() {
    var countUser int64
    DB.Model(&models.User{}).Count(&countUser)
    if countUser == 0 {
        password := "admin"
        if config.DefaultPassword != "" {
            password = config.DefaultPassword
        }

        hashed, err := utils.HashPassword(password)
        if err != nil {
            panic(err)
        }

        admin := models.User{
            Email:       DefaultAdminEmail,
            Firstname:   "Admin",
            Lastname:    "Admin",
            Password:    hashed,
            IsStaff:     true,
            IsSuperuser: true,
        }
        DB.Create(&admin)
        log.Println("Default superuser created")
    }

    // Group new registrations land in
    var subscriberGroup models.Group
    if err := DB.Where("name = ?", DefaultSubscriberGroup).First(&subscriberGroup).Error; err != nil {
        subscriberGroup = models.Group{Name: DefaultSubscriberGroup, Description: "Default group for self-registered users"}
        DB.Create(&subscriberGroup)
        log.Println("Default subscriber group created")
    }

    seedPermissions()

    // Singleton configuration rows
    var countSettings int64
    DB.Model(&models.AccessSettings{}).Count(&countSettings)
    if countSettings == 0 {
        DB.Create(&models.AccessSettings{
            OnlineWindowMinutes: 5,
            AutoRefreshSeconds:  10,
            LogAnonymous:        true,
            SamplingRatio:       1,
            RetentionDays:       90,
            IgnorePaths:         models.StringList{"/static/", "/media/", "/health/"},
        })
        log.Println("Default access settings created")
    }

    var countHealth int64
    DB.Model(&models.SystemHealthConfig{}).Count(&countHealth)
    if countHealth == 0 {
        DB.Create(&models.SystemHealthConfig{
            WarnCPULoadPerCore: 0.7,
            CritCPULoadPerCore: 1.0,
            WarnMemUsedPct:     80,
            CritMemUsedPct:     90,
            WarnDiskUsedPct:    80,
            CritDiskUsedPct:    90,
            CacheSeconds:       15,
        })
        log.Println("Default system health config created")
    }
}

// seedPermissions makes sure the well-known permission codenames exist so
// they can be granted from the back office
func seedPermissions() {
    known := map[string]string{
        "syshealth.view_access_dashboard":  "Can view the access dashboard",
        "syshealth.view_accessevent":       "Can view access events",
        "syshealth.view_systemhealthpanel": "Can view the system health panel",
        "accounts.view_person":             "Can view people",
        "accounts.change_person":           "Can change people",
        "admin_menu.view_menuscope":        "Can view menu scopes",
        "admin_menu.change_menuscope":      "Can change menu scopes",
        "admin_menu.view_menuconfig":       "Can view menu configurations",
        "admin_menu.change_menuconfig":     "Can change menu configurations",
    }

    for codename, name := range known {
        var count int64
        DB.Model(&models.Permission{}).Where("codename = ?", codename).Count(&count)
        if count == 0 {
            DB.Create(&models.Permission{Codename: codename, Name: name})
        }
    }
}

package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// menuTestDB opens an in-memory database with the menu tables. The schema is
// created by hand because the production DDL carries Postgres defaults.
func menuTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	for _, ddl := range []string{
		`CREATE TABLE menu_scopes (
			id text PRIMARY KEY,
			name text NOT NULL,
			group_id text UNIQUE,
			priority integer DEFAULT 0
		)`,
		`CREATE TABLE menu_configs (
			id text PRIMARY KEY,
			scope_id text NOT NULL,
			is_active boolean DEFAULT false,
			created_at datetime,
			updated_at datetime
		)`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func TestMenuScopeSingleDefaultEnforced(t *testing.T) {
	db := menuTestDB(t)

	first := &MenuScope{Name: "everyone"}
	require.NoError(t, db.Create(first).Error)

	second := &MenuScope{Name: "also everyone"}
	err := db.Create(second).Error
	assert.ErrorIs(t, err, ErrDefaultScopeExists)

	var count int64
	require.NoError(t, db.Model(&MenuScope{}).Where("group_id IS NULL").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMenuScopeDefaultCanBeResaved(t *testing.T) {
	db := menuTestDB(t)

	scope := &MenuScope{Name: "everyone"}
	require.NoError(t, db.Create(scope).Error)

	scope.Name = "  everybody  "
	require.NoError(t, db.Save(scope).Error)
	assert.Equal(t, "everybody", scope.Name)
}

func TestMenuScopeGroupScopesUnlimited(t *testing.T) {
	db := menuTestDB(t)

	require.NoError(t, db.Create(&MenuScope{Name: "everyone"}).Error)

	editors := "group-editors"
	viewers := "group-viewers"
	require.NoError(t, db.Create(&MenuScope{Name: "editors", GroupID: &editors}).Error)
	require.NoError(t, db.Create(&MenuScope{Name: "viewers", GroupID: &viewers}).Error)

	var count int64
	require.NoError(t, db.Model(&MenuScope{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestMenuScopeDefaultAllowedAfterDeletingPrevious(t *testing.T) {
	db := menuTestDB(t)

	old := &MenuScope{Name: "everyone"}
	require.NoError(t, db.Create(old).Error)
	require.NoError(t, db.Delete(old).Error)

	assert.NoError(t, db.Create(&MenuScope{Name: "fresh default"}).Error)
}

func TestMenuConfigActivateDeactivatesSiblings(t *testing.T) {
	db := menuTestDB(t)

	scope := &MenuScope{Name: "everyone"}
	require.NoError(t, db.Create(scope).Error)

	configs := make([]*MenuConfig, 3)
	for i := range configs {
		configs[i] = &MenuConfig{ScopeID: scope.ID}
		require.NoError(t, db.Create(configs[i]).Error)
	}
	require.NoError(t, configs[0].Activate(db))
	require.NoError(t, configs[2].Activate(db))

	var active []MenuConfig
	require.NoError(t, db.Where("scope_id = ? AND is_active = ?", scope.ID, true).Find(&active).Error)
	require.Len(t, active, 1)
	assert.Equal(t, configs[2].ID, active[0].ID)
	assert.True(t, configs[2].IsActive)
}

func TestMenuConfigActivateLeavesOtherScopesAlone(t *testing.T) {
	db := menuTestDB(t)

	groupID := "group-editors"
	defaultScope := &MenuScope{Name: "everyone"}
	editorScope := &MenuScope{Name: "editors", GroupID: &groupID}
	require.NoError(t, db.Create(defaultScope).Error)
	require.NoError(t, db.Create(editorScope).Error)

	defaultConfig := &MenuConfig{ScopeID: defaultScope.ID}
	editorConfig := &MenuConfig{ScopeID: editorScope.ID}
	require.NoError(t, db.Create(defaultConfig).Error)
	require.NoError(t, db.Create(editorConfig).Error)

	require.NoError(t, defaultConfig.Activate(db))
	require.NoError(t, editorConfig.Activate(db))

	var count int64
	require.NoError(t, db.Model(&MenuConfig{}).Where("is_active = ?", true).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

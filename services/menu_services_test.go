package services

import (
	"testing"

	"backoffice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scopeFor(name string, groupID string, priority int) models.MenuScope {
	scope := models.MenuScope{ID: "scope-" + name, Name: name, Priority: priority}
	if groupID != "" {
		scope.GroupID = &groupID
	}
	return scope
}

// scopes arrive pre-ordered by priority desc, name asc, id asc, matching the
// database ordering applied by models.OrderedScopes
func TestPickScopeFirstMatchingGroupWins(t *testing.T) {
	scopes := []models.MenuScope{
		scopeFor("editors", "group-editors", 10),
		scopeFor("viewers", "group-viewers", 5),
		scopeFor("everyone", "", 0),
	}

	picked := PickScope(scopes, []string{"group-viewers", "group-editors"})
	require.NotNil(t, picked)
	assert.Equal(t, "editors", picked.Name)
}

func TestPickScopeFallsBackToDefault(t *testing.T) {
	scopes := []models.MenuScope{
		scopeFor("editors", "group-editors", 10),
		scopeFor("everyone", "", 0),
	}

	picked := PickScope(scopes, []string{"group-unrelated"})
	require.NotNil(t, picked)
	assert.Equal(t, "everyone", picked.Name)
	assert.True(t, picked.IsDefault())
}

func TestPickScopeAnonymousGetsDefault(t *testing.T) {
	scopes := []models.MenuScope{
		scopeFor("editors", "group-editors", 10),
		scopeFor("everyone", "", 0),
	}

	picked := PickScope(scopes, nil)
	require.NotNil(t, picked)
	assert.Equal(t, "everyone", picked.Name)
}

func TestPickScopeNoDefaultNoMatch(t *testing.T) {
	scopes := []models.MenuScope{
		scopeFor("editors", "group-editors", 10),
	}

	assert.Nil(t, PickScope(scopes, []string{"group-unrelated"}))
	assert.Nil(t, PickScope(nil, nil))
}

func TestPickScopeHigherPriorityGroupWins(t *testing.T) {
	scopes := []models.MenuScope{
		scopeFor("vip", "group-vip", 100),
		scopeFor("basic", "group-basic", 1),
		scopeFor("everyone", "", 0),
	}

	picked := PickScope(scopes, []string{"group-basic", "group-vip"})
	require.NotNil(t, picked)
	assert.Equal(t, "vip", picked.Name)
}

func TestPickScopeDefaultNeverShadowsLaterGroupMatch(t *testing.T) {
	// a high-priority default must not short-circuit a group match that
	// sorts after it
	scopes := []models.MenuScope{
		scopeFor("everyone", "", 50),
		scopeFor("editors", "group-editors", 10),
	}

	picked := PickScope(scopes, []string{"group-editors"})
	require.NotNil(t, picked)
	assert.Equal(t, "editors", picked.Name)
}

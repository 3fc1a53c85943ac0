package menu

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backoffice/database"
	"backoffice/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testContext builds a request context with the user already authenticated,
// the way the auth middleware leaves it
func testContext(method string, body string, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if user != nil {
		c.Set("currentUser", user)
	}
	return c, w
}

func openTestDB(t *testing.T, ddl ...string) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	database.DB = db
}

func TestMenuEditingForbiddenForNonSuperusers(t *testing.T) {
	c, w := testContext(http.MethodGet, "", &models.User{IsStaff: true})

	GetAllScopes(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), ErrNoPermission)
}

func TestMenuEditingUnauthenticatedGets401(t *testing.T) {
	c, w := testContext(http.MethodGet, "", nil)

	GetAllScopes(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateScopeLookupFailureIsServerError(t *testing.T) {
	// no groups table: the existence probe itself fails, which must surface
	// as a 500, not as a group-not-found 400
	openTestDB(t)

	c, w := testContext(http.MethodPost, `{"name":"editors","group_id":"group-1"}`, &models.User{IsSuperuser: true})

	CreateScope(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), ErrLookupFailed)
}

func TestCreateScopeUnknownGroupIsBadRequest(t *testing.T) {
	openTestDB(t, `CREATE TABLE groups (id text PRIMARY KEY, name text)`)

	c, w := testContext(http.MethodPost, `{"name":"editors","group_id":"group-1"}`, &models.User{IsSuperuser: true})

	CreateScope(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrGroupNotFound)
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"backoffice/database"
	"backoffice/models"
	"backoffice/utils"
	"backoffice/utils/response"

	"github.com/gin-gonic/gin"
)

const userContextKey = "currentUser"

var ErrUnauthenticated = errors.New("unauthenticated")

// GetUserFromRequest authenticates the request and returns the user with
// groups and permissions loaded. On failure it writes the 401 response and
// returns an error, so handlers can simply return.
func GetUserFromRequest(c *gin.Context) (*models.User, error) {
    if cached, exists := c.Get(userContextKey); exists {
        if user, ok := cached.(*models.User); ok {
            return user, nil
        }
    }

    token := tokenFromRequest(c)
    if token == "" {
        response.Error(c, http.StatusUnauthorized, "No token provided")
        c.Abort()
        return nil, ErrUnauthenticated
    }

    userID, err := utils.ParseToken(token)
    if err != nil {
        response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
        c.Abort()
        return nil, ErrUnauthenticated
    }

    var user models.User
    err = database.DB.
        Preload("Groups.Permissions").
        Preload("Permissions").
        First(&user, "id = ?", userID).Error
    if err != nil {
        response.Error(c, http.StatusUnauthorized, "User not found")
        c.Abort()
        return nil, ErrUnauthenticated
    }

    if user.Blocked {
        response.Error(c, http.StatusUnauthorized, "Your account has been blocked")
        c.Abort()
        return nil, ErrUnauthenticated
    }

    c.Set(userContextKey, &user)
    return &user, nil
}

// GetUserIfAuthenticated returns the current user without writing any error
// response; anonymous requests yield nil
func GetUserIfAuthenticated(c *gin.Context) *models.User {
    if cached, exists := c.Get(userContextKey); exists {
        if user, ok := cached.(*models.User); ok {
            return user
        }
    }

    token := tokenFromRequest(c)
    if token == "" {
        return nil
    }
    userID, err := utils.ParseToken(token)
    if err != nil {
        return nil
    }

    var user models.User
    err = database.DB.
        Preload("Groups.Permissions").
        Preload("Permissions").
        First(&user, "id = ?", userID).Error
    if err != nil || user.Blocked {
        return nil
    }

    c.Set(userContextKey, &user)
    return &user
}

func tokenFromRequest(c *gin.Context) string {
    if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
        return cookie
    }
    header := c.GetHeader("Authorization")
    if strings.HasPrefix(header, "Bearer ") {
        return strings.TrimPrefix(header, "Bearer ")
    }
    return ""
}

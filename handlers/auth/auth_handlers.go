package auth

import (
	"net/http"
	"time"

	"backoffice/config"
	"backoffice/database"
	"backoffice/middleware"
	"backoffice/models"
	"backoffice/utils"
	"backoffice/utils/response"

	"github.com/gin-gonic/gin"
)

// Login authenticates a user and sets the auth cookie
// @Summary Login
// @Description Authenticate with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func Login(c *gin.Context) {
    var req LoginRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.Error(c, http.StatusBadRequest, err.Error())
        return
    }

    var user models.User
    err := database.DB.Preload("Groups").First(&user, "email = ?", req.Email).Error
    if err != nil || !utils.CheckPasswordHash(req.Password, user.Password) {
        response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
        return
    }

    if user.Blocked {
        response.Error(c, http.StatusUnauthorized, ErrAccountBlocked)
        return
    }

    lifetime := 24 * time.Hour
    if req.RememberMe {
        lifetime = 30 * 24 * time.Hour
    }
    token, err := utils.GenerateToken(user.ID, lifetime)
    if err != nil {
        response.Error(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
        return
    }

    now := time.Now()
    database.DB.Model(&user).Update("last_connected", &now)

    setCookieToken(c, token, req.RememberMe, config.CookieSecure)
    c.JSON(http.StatusOK, AuthResponse{
        Token:         token,
        UserID:        user.ID,
        Email:         user.Email,
        Firstname:     user.Firstname,
        Lastname:      user.Lastname,
        LastConnected: user.LastConnected,
        IsStaff:       user.IsStaff,
        IsSuperuser:   user.IsSuperuser,
        Groups:        user.Groups,
    })
}

// RegisterUser creates a new account and places it in the subscriber group
// @Summary Register
// @Description Create an account; new accounts are staff members of the default subscriber group
// @Tags Auth
// @Accept json
// @Produce json
// @Param registration body RegisterRequest true "Registration details"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/register [post]
func RegisterUser(c *gin.Context) {
    var req RegisterRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.Error(c, http.StatusBadRequest, err.Error())
        return
    }

    var count int64
    database.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
    if count > 0 {
        response.Error(c, http.StatusBadRequest, ErrEmailInUse)
        return
    }

    hashed, err := utils.HashPassword(req.Password)
    if err != nil {
        response.Error(c, http.StatusInternalServerError, ErrHashPasswordFailed)
        return
    }

    var group models.Group
    if err := database.DB.Where("name = ?", database.DefaultSubscriberGroup).First(&group).Error; err != nil {
        group = models.Group{Name: database.DefaultSubscriberGroup}
        database.DB.Create(&group)
    }

    user := models.User{
        Email:     req.Email,
        Firstname: req.Firstname,
        Lastname:  req.Lastname,
        Password:  hashed,
        IsStaff:   true,
        Groups:    []*models.Group{&group},
    }
    if err := database.DB.Create(&user).Error; err != nil {
        response.Error(c, http.StatusInternalServerError, ErrUserCreateFailed)
        return
    }

    // Profile record mirrors the user's identity fields
    database.DB.Create(&models.Person{
        UserID:    user.ID,
        Firstname: user.Firstname,
        Lastname:  user.Lastname,
        Email:     user.Email,
    })

    user.Password = ""
    c.JSON(http.StatusCreated, user)
}

// CheckAuth returns the authenticated user's identity
// @Summary Check authentication
// @Description Verify the current token and return the user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /auth/check [get]
// @Security Bearer
func CheckAuth(c *gin.Context) {
    user, err := middleware.GetUserFromRequest(c)
    if err != nil {
        return
    }

    user.Password = ""
    c.JSON(http.StatusOK, user)
}

// Logout clears the auth cookie
// @Summary Logout
// @Description Clear the authentication cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
    c.SetCookie("auth_token", "", -1, "/", "", config.CookieSecure, true)
    c.JSON(http.StatusOK, gin.H{"message": ErrLogoutSuccess})
}

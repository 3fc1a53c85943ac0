package persons

import (
	"context"
	"net/http"
	"time"

	"backoffice/database"
	"backoffice/middleware"
	"backoffice/models"

	"github.com/gin-gonic/gin"
)

const defaultQueryTimeout = 5 * time.Second

func withTimeout(fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
	defer cancel()
	return fn(ctx)
}

// GetMyProfile returns the profile record attached to the authenticated user.
//
// @Summary Get own profile
// @Description Get the profile of the authenticated user
// @Tags Persons
// @Accept json
// @Produce json
// @Success 200 {object} models.Person
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /persons/me [get]
// @Security Bearer
func GetMyProfile(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var person models.Person
	err = withTimeout(func(ctx context.Context) error {
		return database.DB.WithContext(ctx).Where("user_id = ?", user.ID).First(&person).Error
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrPersonNotFound})
		return
	}

	c.JSON(http.StatusOK, person)
}

// UpdateMyProfile updates the caller's profile. Name and email changes
// are mirrored onto the account record by the model's save hook.
//
// @Summary Update own profile
// @Description Update the profile of the authenticated user
// @Tags Persons
// @Accept json
// @Produce json
// @Param profile body ProfileUpdateRequest true "Profile fields"
// @Success 200 {object} models.Person
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /persons/me [put]
// @Security Bearer
func UpdateMyProfile(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var person models.Person
	err = withTimeout(func(ctx context.Context) error {
		return database.DB.WithContext(ctx).Where("user_id = ?", user.ID).First(&person).Error
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrPersonNotFound})
		return
	}

	if req.Firstname != "" {
		person.Firstname = req.Firstname
	}
	if req.Lastname != "" {
		person.Lastname = req.Lastname
	}
	if req.Email != "" {
		person.Email = req.Email
	}

	err = withTimeout(func(ctx context.Context) error {
		return database.DB.WithContext(ctx).Save(&person).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrFailedUpdatePerson})
		return
	}

	c.JSON(http.StatusOK, person)
}

// GetAllPersons lists every profile. Restricted to staff holding the
// view permission.
//
// @Summary List people
// @Description List all profiles, requires accounts.view_person
// @Tags Persons
// @Accept json
// @Produce json
// @Success 200 {array} models.Person
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /persons [get]
// @Security Bearer
func GetAllPersons(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !user.HasPerm("accounts.view_person") {
		c.JSON(http.StatusForbidden, gin.H{"error": ErrNoPermissionView})
		return
	}

	var persons []models.Person
	err = withTimeout(func(ctx context.Context) error {
		return database.DB.WithContext(ctx).Preload("User").Find(&persons).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrFetchingPersons})
		return
	}

	c.JSON(http.StatusOK, persons)
}

// GetPersonByID returns a single profile by its id.
//
// @Summary Get a person
// @Description Get one profile by id, requires accounts.view_person
// @Tags Persons
// @Accept json
// @Produce json
// @Param person_id path string true "Person ID"
// @Success 200 {object} models.Person
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /persons/{person_id} [get]
// @Security Bearer
func GetPersonByID(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !user.HasPerm("accounts.view_person") {
		c.JSON(http.StatusForbidden, gin.H{"error": ErrNoPermissionView})
		return
	}

	personID := c.Param("person_id")

	var person models.Person
	err = withTimeout(func(ctx context.Context) error {
		return database.DB.WithContext(ctx).Preload("User").Where("id = ?", personID).First(&person).Error
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrPersonNotFound})
		return
	}

	c.JSON(http.StatusOK, person)
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteer-app/models"
	"github.com/volunteerhub/volunteer-app/services"
	"github.com/volunteerhub/volunteer-app/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Geo services.Geocoder
}

func NewUserController(db *gorm.DB, geo services.Geocoder) *UserController {
	return &UserController{DB: db, Geo: geo}
}

// RegisterVolunteer -> user (role=VOLUNTEER) + volunteer profile
func (uc *UserController) RegisterVolunteer(c *gin.Context) {
	type request struct {
		Username     string                 `json:"username" binding:"required"`
		Email        string                 `json:"email" binding:"required,email"`
		Password     string                 `json:"password" binding:"required,min=8"`
		LocationText string                 `json:"location_text"`
		Skills       []string               `json:"skills"`
		Availability map[string]interface{} `json:"availability"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     models.RoleVolunteer,
	}

	profile := models.VolunteerProfile{
		LocationText: req.LocationText,
		Skills:       req.Skills,
		Availability: req.Availability,
	}
	if req.LocationText != "" {
		if lat, lng, ok := uc.Geo.Geocode(req.LocationText); ok {
			profile.Latitude = &lat
			profile.Longitude = &lng
		}
	}

	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(&profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, errors.New("username or email already taken"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New volunteer registered: %s", user.Username)
	utils.RespondJSON(c, http.StatusCreated, "Volunteer registered", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}

// RegisterOrganization -> user (role=ORG) + organization profile
func (uc *UserController) RegisterOrganization(c *gin.Context) {
	type request struct {
		Username     string `json:"username" binding:"required"`
		Email        string `json:"email" binding:"required,email"`
		Password     string `json:"password" binding:"required,min=8"`
		Name         string `json:"name" binding:"required"`
		Mission      string `json:"mission"`
		ContactPhone string `json:"contact_phone"`
		LocationText string `json:"location_text"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     models.RoleOrganization,
	}

	profile := models.OrganizationProfile{
		Name:         req.Name,
		Mission:      req.Mission,
		ContactPhone: req.ContactPhone,
		LocationText: req.LocationText,
	}
	if req.LocationText != "" {
		if lat, lng, ok := uc.Geo.Geocode(req.LocationText); ok {
			profile.Latitude = &lat
			profile.Longitude = &lng
		}
	}

	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(&profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, errors.New("username or email already taken"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New organization registered: %s (%s)", user.Username, profile.Name)
	utils.RespondJSON(c, http.StatusCreated, "Organization registered", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}

// Login -> JWT with user id + role
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"role":  user.Role,
	})
}

func (uc *UserController) GetVolunteerProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var profile models.VolunteerProfile
	if err := uc.DB.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Volunteer profile", profile)
}

// UpdateVolunteerProfile -> partial update; a location change re-geocodes,
// and clearing the text clears the coordinates too.
func (uc *UserController) UpdateVolunteerProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var profile models.VolunteerProfile
	if err := uc.DB.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		LocationText *string                 `json:"location_text"`
		Skills       *[]string               `json:"skills"`
		Availability *map[string]interface{} `json:"availability"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Skills != nil {
		profile.Skills = *req.Skills
	}
	if req.Availability != nil {
		profile.Availability = *req.Availability
	}
	if req.LocationText != nil {
		profile.LocationText = *req.LocationText
		profile.Latitude = nil
		profile.Longitude = nil
		if *req.LocationText != "" {
			if lat, lng, ok := uc.Geo.Geocode(*req.LocationText); ok {
				profile.Latitude = &lat
				profile.Longitude = &lng
			}
		}
	}

	if err := uc.DB.Save(&profile).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Volunteer profile updated", profile)
}

func (uc *UserController) GetOrganizationProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var profile models.OrganizationProfile
	if err := uc.DB.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Organization profile", profile)
}

func (uc *UserController) UpdateOrganizationProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var profile models.OrganizationProfile
	if err := uc.DB.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		Name         *string `json:"name"`
		Mission      *string `json:"mission"`
		ContactPhone *string `json:"contact_phone"`
		LocationText *string `json:"location_text"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Mission != nil {
		profile.Mission = *req.Mission
	}
	if req.ContactPhone != nil {
		profile.ContactPhone = *req.ContactPhone
	}
	if req.LocationText != nil {
		profile.LocationText = *req.LocationText
		profile.Latitude = nil
		profile.Longitude = nil
		if *req.LocationText != "" {
			if lat, lng, ok := uc.Geo.Geocode(*req.LocationText); ok {
				profile.Latitude = &lat
				profile.Longitude = &lng
			}
		}
	}

	if err := uc.DB.Save(&profile).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Organization profile updated", profile)
}

// GetAllUsers -> admin only
func (uc *UserController) GetAllUsers(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var users []models.User
	if err := uc.DB.Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

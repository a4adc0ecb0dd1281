package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/volunteerhub/volunteer-app/models"
	"github.com/volunteerhub/volunteer-app/policies"
	"github.com/volunteerhub/volunteer-app/utils"
	"gorm.io/gorm"
)

type HourLogController struct {
	DB *gorm.DB
}

func NewHourLogController(db *gorm.DB) *HourLogController {
	return &HourLogController{DB: db}
}

func hourLogResponse(log *models.HourLog) gin.H {
	return gin.H{
		"id":             log.ID,
		"application_id": log.ApplicationID,
		"work_date":      log.WorkDate.Format(dateLayout),
		"hours":          log.Hours,
		"note":           log.Note,
		"created_at":     log.CreatedAt,
	}
}

// LogHours -> VOLUNTEER owning the application. The application status is
// deliberately not checked, hours may be logged retroactively against any
// application including rejected ones.
func (hc *HourLogController) LogHours(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	type request struct {
		ApplicationID uint            `json:"application_id" binding:"required"`
		WorkDate      string          `json:"work_date" binding:"required"`
		Hours         decimal.Decimal `json:"hours"`
		Note          string          `json:"note"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Hours.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("hours must not be negative"))
		return
	}

	workDate, err := time.Parse(dateLayout, req.WorkDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("work_date must be YYYY-MM-DD"))
		return
	}

	var app models.Application
	if err := hc.DB.Preload("Volunteer").First(&app, req.ApplicationID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("application not found"))
		return
	}

	if !policies.VolunteerOwnsApplication(userID, &app) {
		utils.RespondError(c, http.StatusForbidden, errors.New("you can only log hours for your own applications"))
		return
	}

	log := models.HourLog{
		ApplicationID: app.ID,
		WorkDate:      workDate,
		Hours:         req.Hours.Round(2),
		Note:          req.Note,
		CreatedAt:     time.Now(),
	}
	if err := hc.DB.Create(&log).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Hours logged", hourLogResponse(&log))
}

// GetMyHours -> VOLUNTEER; own hour logs across all applications
func (hc *HourLogController) GetMyHours(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var volunteer models.VolunteerProfile
	if err := hc.DB.Where("user_id = ?", userID).First(&volunteer).Error; err != nil {
		utils.RespondError(c, http.StatusForbidden, errors.New("volunteer profile not found"))
		return
	}

	var logs []models.HourLog
	err := hc.DB.
		Joins("JOIN applications ON applications.id = hour_logs.application_id").
		Where("applications.volunteer_id = ?", volunteer.ID).
		Order("work_date desc").
		Find(&logs).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]gin.H, 0, len(logs))
	for i := range logs {
		out = append(out, hourLogResponse(&logs[i]))
	}
	utils.RespondJSON(c, http.StatusOK, "My hours", out)
}

package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteer-app/models"
	"github.com/volunteerhub/volunteer-app/policies"
	"github.com/volunteerhub/volunteer-app/utils"
	"gorm.io/gorm"
)

type ApplicationController struct {
	DB *gorm.DB
}

func NewApplicationController(db *gorm.DB) *ApplicationController {
	return &ApplicationController{DB: db}
}

func applicationResponse(app *models.Application) gin.H {
	return gin.H{
		"id":                app.ID,
		"opportunity_id":    app.OpportunityID,
		"opportunity_title": app.Opportunity.Title,
		"org_name":          app.Opportunity.Organization.Name,
		"status":            app.Status,
		"applied_at":        app.AppliedAt,
		"updated_at":        app.UpdatedAt,
	}
}

// Apply -> VOLUNTEER; conditional insert racing the unique
// (opportunity_id, volunteer_id) index. The insert winner gets 201 and the
// organization gets exactly one APPLICATION_CREATED notification, committed
// in the same transaction. A duplicate (repeat call or race loser) re-reads
// the existing row and gets 200 with no new notification.
func (ac *ApplicationController) Apply(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var volunteer models.VolunteerProfile
	if err := ac.DB.Preload("User").Where("user_id = ?", userID).First(&volunteer).Error; err != nil {
		utils.RespondError(c, http.StatusForbidden, errors.New("volunteer profile not found"))
		return
	}

	oppID, _ := strconv.Atoi(c.Param("opportunity_id"))

	var opp models.Opportunity
	if err := ac.DB.Preload("Organization").First(&opp, oppID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("opportunity not found"))
		return
	}

	app := models.Application{
		OpportunityID: opp.ID,
		VolunteerID:   volunteer.ID,
		Status:        models.StatusPending,
		AppliedAt:     time.Now(),
	}

	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&app).Error; err != nil {
			return err
		}
		return createNotification(tx, opp.Organization.UserID,
			models.NotifApplicationCreated,
			"New volunteer application",
			fmt.Sprintf("%s applied to '%s'.", volunteer.User.Username, opp.Title))
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.Application
			if err := ac.DB.Where("opportunity_id = ? AND volunteer_id = ?", opp.ID, volunteer.ID).First(&existing).Error; err != nil {
				utils.RespondError(c, http.StatusConflict, errors.New("application already exists"))
				return
			}
			existing.Opportunity = opp
			utils.RespondJSON(c, http.StatusOK, "Application already exists", applicationResponse(&existing))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	app.Opportunity = opp
	utils.InfoLogger.Printf("Application %d: volunteer %d -> opportunity %d", app.ID, volunteer.ID, opp.ID)
	utils.RespondJSON(c, http.StatusCreated, "Application submitted", applicationResponse(&app))
}

// GetMyApplications -> VOLUNTEER; own applications, newest first
func (ac *ApplicationController) GetMyApplications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var volunteer models.VolunteerProfile
	if err := ac.DB.Where("user_id = ?", userID).First(&volunteer).Error; err != nil {
		utils.RespondError(c, http.StatusForbidden, errors.New("volunteer profile not found"))
		return
	}

	var apps []models.Application
	if err := ac.DB.Preload("Opportunity.Organization").
		Where("volunteer_id = ?", volunteer.ID).
		Order("applied_at desc").
		Find(&apps).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]gin.H, 0, len(apps))
	for i := range apps {
		out = append(out, applicationResponse(&apps[i]))
	}
	utils.RespondJSON(c, http.StatusOK, "My applications", out)
}

// GetApplicants -> ORG; applications against the caller's own opportunity
func (ac *ApplicationController) GetApplicants(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	oppID, _ := strconv.Atoi(c.Param("opportunity_id"))

	var opp models.Opportunity
	if err := ac.DB.Preload("Organization").First(&opp, oppID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("opportunity not found"))
		return
	}

	if !policies.OrgOwnsOpportunity(userID, &opp) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var apps []models.Application
	if err := ac.DB.Preload("Volunteer.User").
		Where("opportunity_id = ?", opp.ID).
		Order("applied_at desc").
		Find(&apps).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]gin.H, 0, len(apps))
	for i := range apps {
		out = append(out, gin.H{
			"id":           apps[i].ID,
			"volunteer_id": apps[i].VolunteerID,
			"username":     apps[i].Volunteer.User.Username,
			"skills":       apps[i].Volunteer.Skills,
			"status":       apps[i].Status,
			"applied_at":   apps[i].AppliedAt,
		})
	}
	utils.RespondJSON(c, http.StatusOK, "Applicants", out)
}

// UpdateApplicationStatus -> owning ORG; any of the three states may be set
// at any time (re-issuing or reversing a decision is the org's call). The
// volunteer notification shares the update's transaction.
func (ac *ApplicationController) UpdateApplicationStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	appID, _ := strconv.Atoi(c.Param("application_id"))

	var app models.Application
	if err := ac.DB.Preload("Opportunity.Organization").Preload("Volunteer.User").First(&app, appID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("application not found"))
		return
	}

	if !policies.OrgOwnsApplication(userID, &app) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type request struct {
		Status string `json:"status" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status must be PENDING, ACCEPTED or REJECTED"))
		return
	}

	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&app).Update("status", req.Status).Error; err != nil {
			return err
		}
		return createNotification(tx, app.Volunteer.UserID,
			models.NotifApplicationStatusChanged,
			"Application status updated",
			fmt.Sprintf("Your application for '%s' is now %s.", app.Opportunity.Title, req.Status))
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	app.Status = req.Status
	utils.InfoLogger.Printf("Application %d status -> %s", app.ID, req.Status)
	utils.RespondJSON(c, http.StatusOK, "Application status updated", applicationResponse(&app))
}

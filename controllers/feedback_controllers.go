package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteer-app/models"
	"github.com/volunteerhub/volunteer-app/policies"
	"github.com/volunteerhub/volunteer-app/utils"
	"gorm.io/gorm"
)

type FeedbackController struct {
	DB *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{DB: db}
}

// LeaveFeedback -> ORG owning the opportunity behind the application.
// One feedback per application, enforced by the unique index; losing a
// duplicate race surfaces as Conflict. The volunteer notification shares
// the insert's transaction.
func (fc *FeedbackController) LeaveFeedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	type request struct {
		ApplicationID uint   `json:"application_id" binding:"required"`
		Rating        int    `json:"rating" binding:"required"`
		Comment       string `json:"comment"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("rating must be between 1 and 5"))
		return
	}

	var app models.Application
	if err := fc.DB.Preload("Opportunity.Organization").Preload("Volunteer").First(&app, req.ApplicationID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("application not found"))
		return
	}

	if !policies.OrgOwnsApplication(userID, &app) {
		utils.RespondError(c, http.StatusForbidden, errors.New("you can only leave feedback for your own opportunity applications"))
		return
	}

	feedback := models.Feedback{
		ApplicationID:  app.ID,
		OrganizationID: app.Opportunity.OrganizationID,
		Rating:         req.Rating,
		Comment:        req.Comment,
		CreatedAt:      time.Now(),
	}

	err := fc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&feedback).Error; err != nil {
			return err
		}
		return createNotification(tx, app.Volunteer.UserID,
			models.NotifFeedbackLeft,
			"Feedback received",
			fmt.Sprintf("%s left feedback for '%s'. Rating: %d/5",
				app.Opportunity.Organization.Name, app.Opportunity.Title, feedback.Rating))
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, errors.New("feedback already left for this application"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Feedback %d left on application %d (rating %d)", feedback.ID, app.ID, feedback.Rating)
	utils.RespondJSON(c, http.StatusCreated, "Feedback left", gin.H{
		"id":             feedback.ID,
		"application_id": feedback.ApplicationID,
		"rating":         feedback.Rating,
		"comment":        feedback.Comment,
		"created_at":     feedback.CreatedAt,
	})
}

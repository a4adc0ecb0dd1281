package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/volunteerhub/volunteer-app/controllers"
	"github.com/volunteerhub/volunteer-app/models"
)

func setupFeedbackRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(testAuth())
	feedbackCtrl := controllers.NewFeedbackController(db)
	router.POST("/feedback", feedbackCtrl.LeaveFeedback)
	return router
}

func TestFeedbackRatingBounds(t *testing.T) {
	db := newTestDB(t)
	router := setupFeedbackRouter(db)

	orgUser, org := seedOrganization(t, db, "org1", "Helping Hands")
	_, vol := seedVolunteer(t, db, "vol1", nil)
	opp := seedOpportunity(t, db, org, "Beach Cleanup", "2025-12-28", "2025-12-28", nil)

	appA := seedApplication(t, db, opp, vol, models.StatusAccepted)

	// 0 and 6 are out of range.
	w := doRequest(t, router, "POST", "/feedback", gin.H{"application_id": appA.ID, "rating": 0}, orgUser.ID, models.RoleOrganization)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doRequest(t, router, "POST", "/feedback", gin.H{"application_id": appA.ID, "rating": 6}, orgUser.ID, models.RoleOrganization)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 1 and 5 are accepted (on distinct applications).
	w = doRequest(t, router, "POST", "/feedback", gin.H{"application_id": appA.ID, "rating": 1}, orgUser.ID, models.RoleOrganization)
	assert.Equal(t, http.StatusCreated, w.Code)

	_, vol2 := seedVolunteer(t, db, "vol2", nil)
	appB := seedApplication(t, db, opp, vol2, models.StatusAccepted)
	w = doRequest(t, router, "POST", "/feedback", gin.H{"application_id": appB.ID, "rating": 5}, orgUser.ID, models.RoleOrganization)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestFeedbackIsSingletonPerApplication(t *testing.T) {
	db := newTestDB(t)
	router := setupFeedbackRouter(db)

	orgUser, org := seedOrganization(t, db, "org1", "Helping Hands")
	volUser, vol := seedVolunteer(t, db, "vol1", nil)
	opp := seedOpportunity(t, db, org, "Beach Cleanup", "2025-12-28", "2025-12-28", nil)
	app := seedApplication(t, db, opp, vol, models.StatusAccepted)

	w := doRequest(t, router, "POST", "/feedback", gin.H{"application_id": app.ID, "rating": 5, "comment": "great"}, orgUser.ID, models.RoleOrganization)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Volunteer got one FEEDBACK_LEFT notification embedding the rating.
	var notifs []models.Notification
	db.Where("user_id = ? AND type = ?", volUser.ID, models.NotifFeedbackLeft).Find(&notifs)
	assert.Len(t, notifs, 1)
	assert.Contains(t, notifs[0].Message, "Rating: 5/5")
	assert.Contains(t, notifs[0].Message, "Helping Hands")

	// A second attempt loses against the unique index.
	w = doRequest(t, router, "POST", "/feedback", gin.H{"application_id": app.ID, "rating": 3}, orgUser.ID, models.RoleOrganization)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.Feedback{}).Count(&count)
	assert.Equal(t, int64(1), count)
	db.Where("user_id = ? AND type = ?", volUser.ID, models.NotifFeedbackLeft).Find(&notifs)
	assert.Len(t, notifs, 1)
}

func TestFeedbackRequiresOwningOrganization(t *testing.T) {
	db := newTestDB(t)
	router := setupFeedbackRouter(db)

	_, org := seedOrganization(t, db, "org1", "Helping Hands")
	orgUser2, _ := seedOrganization(t, db, "org2", "Other Org")
	_, vol := seedVolunteer(t, db, "vol1", nil)
	opp := seedOpportunity(t, db, org, "Beach Cleanup", "2025-12-28", "2025-12-28", nil)
	app := seedApplication(t, db, opp, vol, models.StatusAccepted)

	w := doRequest(t, router, "POST", "/feedback", gin.H{"application_id": app.ID, "rating": 5}, orgUser2.ID, models.RoleOrganization)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

package router

import (
	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteer-app/controllers"
	"github.com/volunteerhub/volunteer-app/middlewares"
	"github.com/volunteerhub/volunteer-app/models"
	"github.com/volunteerhub/volunteer-app/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, geo services.Geocoder) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db, geo)
	oppCtrl := controllers.NewOpportunityController(db, geo)
	appCtrl := controllers.NewApplicationController(db)
	hourCtrl := controllers.NewHourLogController(db)
	feedbackCtrl := controllers.NewFeedbackController(db)
	notifCtrl := controllers.NewNotificationController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/auth")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register/volunteer", userCtrl.RegisterVolunteer)
		public.POST("/register/org", userCtrl.RegisterOrganization)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		// Profiles
		auth.GET("/me/volunteer-profile", middlewares.RequireRole(models.RoleVolunteer), userCtrl.GetVolunteerProfile)
		auth.PATCH("/me/volunteer-profile", middlewares.RequireRole(models.RoleVolunteer), userCtrl.UpdateVolunteerProfile)
		auth.GET("/me/org-profile", middlewares.RequireRole(models.RoleOrganization), userCtrl.GetOrganizationProfile)
		auth.PATCH("/me/org-profile", middlewares.RequireRole(models.RoleOrganization), userCtrl.UpdateOrganizationProfile)

		// Opportunities
		auth.GET("/opportunities", oppCtrl.GetAllOpportunities)
		auth.POST("/opportunities", middlewares.RequireRole(models.RoleOrganization), oppCtrl.CreateOpportunity)
		auth.GET("/opportunities/search", oppCtrl.SearchOpportunities)
		auth.GET("/opportunities/:opportunity_id", oppCtrl.GetOpportunityByID)
		auth.PATCH("/opportunities/:opportunity_id", middlewares.RequireRole(models.RoleOrganization), oppCtrl.UpdateOpportunity)
		auth.DELETE("/opportunities/:opportunity_id", middlewares.RequireRole(models.RoleOrganization), oppCtrl.DeleteOpportunity)

		// Apply + status
		auth.POST("/opportunities/:opportunity_id/apply", middlewares.RequireRole(models.RoleVolunteer), appCtrl.Apply)
		auth.GET("/me/applications", middlewares.RequireRole(models.RoleVolunteer), appCtrl.GetMyApplications)
		auth.GET("/opportunities/:opportunity_id/applicants", middlewares.RequireRole(models.RoleOrganization), appCtrl.GetApplicants)
		auth.PATCH("/applications/:application_id/status", middlewares.RequireRole(models.RoleOrganization), appCtrl.UpdateApplicationStatus)

		// Notifications
		auth.GET("/me/notifications", notifCtrl.GetMyNotifications)
		auth.PATCH("/notifications/:notif_id/read", notifCtrl.MarkNotificationRead)

		// Hours tracking
		auth.POST("/hours", middlewares.RequireRole(models.RoleVolunteer), hourCtrl.LogHours)
		auth.GET("/me/hours", middlewares.RequireRole(models.RoleVolunteer), hourCtrl.GetMyHours)

		// Feedback
		auth.POST("/feedback", middlewares.RequireRole(models.RoleOrganization), feedbackCtrl.LeaveFeedback)

		// Admin
		auth.GET("/users", userCtrl.GetAllUsers)
	}

	return r
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteer-app/models"
	"github.com/volunteerhub/volunteer-app/policies"
	"github.com/volunteerhub/volunteer-app/services"
	"github.com/volunteerhub/volunteer-app/utils"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type OpportunityController struct {
	DB  *gorm.DB
	Geo services.Geocoder
}

func NewOpportunityController(db *gorm.DB, geo services.Geocoder) *OpportunityController {
	return &OpportunityController{DB: db, Geo: geo}
}

func opportunityResponse(opp *models.Opportunity) gin.H {
	return gin.H{
		"id":                opp.ID,
		"organization_id":   opp.OrganizationID,
		"organization_name": opp.Organization.Name,
		"title":             opp.Title,
		"description":       opp.Description,
		"required_skills":   opp.RequiredSkills,
		"location_text":     opp.LocationText,
		"latitude":          opp.Latitude,
		"longitude":         opp.Longitude,
		"start_date":        opp.StartDate.Format(dateLayout),
		"end_date":          opp.EndDate.Format(dateLayout),
		"created_at":        opp.CreatedAt,
	}
}

func opportunityListResponse(opps []models.Opportunity) []gin.H {
	out := make([]gin.H, 0, len(opps))
	for i := range opps {
		out = append(out, opportunityResponse(&opps[i]))
	}
	return out
}

// CreateOpportunity -> ORG only; location text is geocoded best-effort.
// Start/end dates are stored as given, no ordering check on purpose.
func (oc *OpportunityController) CreateOpportunity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var org models.OrganizationProfile
	if err := oc.DB.Where("user_id = ?", userID).First(&org).Error; err != nil {
		utils.RespondError(c, http.StatusForbidden, errors.New("organization profile not found"))
		return
	}

	type request struct {
		Title          string   `json:"title" binding:"required"`
		Description    string   `json:"description"`
		RequiredSkills []string `json:"required_skills"`
		LocationText   string   `json:"location_text"`
		StartDate      string   `json:"start_date" binding:"required"`
		EndDate        string   `json:"end_date" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("start_date must be YYYY-MM-DD"))
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("end_date must be YYYY-MM-DD"))
		return
	}

	opp := models.Opportunity{
		OrganizationID: org.ID,
		Organization:   org,
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		LocationText:   req.LocationText,
		StartDate:      start,
		EndDate:        end,
		CreatedAt:      time.Now(),
	}
	if req.LocationText != "" {
		if lat, lng, geoOK := oc.Geo.Geocode(req.LocationText); geoOK {
			opp.Latitude = &lat
			opp.Longitude = &lng
		}
	}

	if err := oc.DB.Create(&opp).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Opportunity created: %q by org %d", opp.Title, org.ID)
	utils.RespondJSON(c, http.StatusCreated, "Opportunity created", opportunityResponse(&opp))
}

// GetAllOpportunities -> newest first; ?mine=1 narrows to the caller's org.
func (oc *OpportunityController) GetAllOpportunities(c *gin.Context) {
	query := oc.DB.Preload("Organization").Order("created_at desc")

	if c.Query("mine") == "1" {
		userID, ok := currentUserID(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
			return
		}
		var org models.OrganizationProfile
		if err := oc.DB.Where("user_id = ?", userID).First(&org).Error; err != nil {
			utils.RespondError(c, http.StatusForbidden, errors.New("organization profile not found"))
			return
		}
		query = query.Where("organization_id = ?", org.ID)
	}

	var opps []models.Opportunity
	if err := query.Find(&opps).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of opportunities", opportunityListResponse(opps))
}

func (oc *OpportunityController) GetOpportunityByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("opportunity_id"))

	var opp models.Opportunity
	if err := oc.DB.Preload("Organization").First(&opp, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("opportunity not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Opportunity detail", opportunityResponse(&opp))
}

// UpdateOpportunity -> owning ORG only; when location_text is present in the
// payload the coordinates are re-resolved, never left stale.
func (oc *OpportunityController) UpdateOpportunity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("opportunity_id"))

	var opp models.Opportunity
	if err := oc.DB.Preload("Organization").First(&opp, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("opportunity not found"))
		return
	}

	if !policies.OrgOwnsOpportunity(userID, &opp) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type request struct {
		Title          *string   `json:"title"`
		Description    *string   `json:"description"`
		RequiredSkills *[]string `json:"required_skills"`
		LocationText   *string   `json:"location_text"`
		StartDate      *string   `json:"start_date"`
		EndDate        *string   `json:"end_date"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Title != nil {
		opp.Title = *req.Title
	}
	if req.Description != nil {
		opp.Description = *req.Description
	}
	if req.RequiredSkills != nil {
		opp.RequiredSkills = *req.RequiredSkills
	}
	if req.StartDate != nil {
		start, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("start_date must be YYYY-MM-DD"))
			return
		}
		opp.StartDate = start
	}
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("end_date must be YYYY-MM-DD"))
			return
		}
		opp.EndDate = end
	}
	if req.LocationText != nil {
		opp.LocationText = *req.LocationText
		opp.Latitude = nil
		opp.Longitude = nil
		if *req.LocationText != "" {
			if lat, lng, geoOK := oc.Geo.Geocode(*req.LocationText); geoOK {
				opp.Latitude = &lat
				opp.Longitude = &lng
			}
		}
	}

	if err := oc.DB.Save(&opp).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Opportunity updated", opportunityResponse(&opp))
}

// DeleteOpportunity -> owning ORG only; cascades to applications and their
// hour logs and feedback in one transaction.
func (oc *OpportunityController) DeleteOpportunity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("opportunity_id"))

	var opp models.Opportunity
	if err := oc.DB.Preload("Organization").First(&opp, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("opportunity not found"))
		return
	}

	if !policies.OrgOwnsOpportunity(userID, &opp) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		var appIDs []uint
		if err := tx.Model(&models.Application{}).Where("opportunity_id = ?", opp.ID).Pluck("id", &appIDs).Error; err != nil {
			return err
		}
		if len(appIDs) > 0 {
			if err := tx.Where("application_id IN ?", appIDs).Delete(&models.HourLog{}).Error; err != nil {
				return err
			}
			if err := tx.Where("application_id IN ?", appIDs).Delete(&models.Feedback{}).Error; err != nil {
				return err
			}
			if err := tx.Where("opportunity_id = ?", opp.ID).Delete(&models.Application{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Opportunity{}, opp.ID).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Opportunity deleted", gin.H{"opportunity_id": opp.ID})
}

// SearchOpportunities -> optional conjunctive filters: skill, date window,
// free text, radius. Malformed numeric inputs drop their filter silently.
func (oc *OpportunityController) SearchOpportunities(c *gin.Context) {
	query := oc.DB.Preload("Organization").Order("created_at desc")

	// Window overlap: opp.start <= q.end AND opp.end >= q.start.
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr != "" && endStr != "" {
		start, errStart := time.Parse(dateLayout, startStr)
		end, errEnd := time.Parse(dateLayout, endStr)
		if errStart == nil && errEnd == nil {
			query = query.Where("start_date <= ? AND end_date >= ?", end, start)
		}
	}

	if q := c.Query("search"); q != "" {
		like := "%" + q + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR location_text LIKE ?", like, like, like)
	}

	var opps []models.Opportunity
	if err := query.Find(&opps).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if skill := c.Query("skill"); skill != "" {
		filtered := make([]models.Opportunity, 0, len(opps))
		for _, opp := range opps {
			for _, token := range opp.RequiredSkills {
				if strings.Contains(token, skill) {
					filtered = append(filtered, opp)
					break
				}
			}
		}
		opps = filtered
	}

	latStr := c.Query("lat")
	lngStr := c.Query("lng")
	radiusStr := c.Query("radius_km")
	if latStr != "" && lngStr != "" && radiusStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		radius, errRadius := strconv.ParseFloat(radiusStr, 64)
		if errLat == nil && errLng == nil && errRadius == nil {
			filtered := make([]models.Opportunity, 0, len(opps))
			for _, opp := range opps {
				// Unresolved locations never match a radius filter.
				if opp.Latitude == nil || opp.Longitude == nil {
					continue
				}
				if services.HaversineKm(lat, lng, *opp.Latitude, *opp.Longitude) <= radius {
					filtered = append(filtered, opp)
				}
			}
			opps = filtered
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Search results", opportunityListResponse(opps))
}

package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/volunteerhub/volunteer-app/models"
	"github.com/volunteerhub/volunteer-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestDB opens a per-test in-memory sqlite database. TranslateError is
// on so the duplicate-key branches behave as they do against MySQL.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.VolunteerProfile{},
		&models.OrganizationProfile{},
		&models.Opportunity{},
		&models.Application{},
		&models.HourLog{},
		&models.Feedback{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// testAuth stands in for the JWT middleware: identity comes from headers so
// a single router can serve requests from several actors in one test.
func testAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v := c.GetHeader("X-Test-User"); v != "" {
			id, _ := strconv.Atoi(v)
			c.Set("user_id", uint(id))
		}
		if r := c.GetHeader("X-Test-Role"); r != "" {
			c.Set("role", r)
		}
		c.Next()
	}
}

// stubGeocoder resolves only the locations it was seeded with.
type stubGeocoder struct {
	coords map[string][2]float64
}

func (s stubGeocoder) Geocode(text string) (float64, float64, bool) {
	if c, ok := s.coords[text]; ok {
		return c[0], c[1], true
	}
	return 0, 0, false
}

func seedVolunteer(t *testing.T, db *gorm.DB, username string, skills []string) (models.User, models.VolunteerProfile) {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret",
		Role:     models.RoleVolunteer,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed volunteer user: %v", err)
	}
	profile := models.VolunteerProfile{UserID: user.ID, Skills: skills}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed volunteer profile: %v", err)
	}
	return user, profile
}

func seedOrganization(t *testing.T, db *gorm.DB, username, name string) (models.User, models.OrganizationProfile) {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret",
		Role:     models.RoleOrganization,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed org user: %v", err)
	}
	profile := models.OrganizationProfile{UserID: user.ID, Name: name}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed org profile: %v", err)
	}
	return user, profile
}

func seedOpportunity(t *testing.T, db *gorm.DB, org models.OrganizationProfile, title, start, end string, skills []string) models.Opportunity {
	t.Helper()
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		t.Fatalf("bad start date: %v", err)
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		t.Fatalf("bad end date: %v", err)
	}
	opp := models.Opportunity{
		OrganizationID: org.ID,
		Title:          title,
		Description:    "seeded opportunity",
		RequiredSkills: skills,
		StartDate:      startDate,
		EndDate:        endDate,
		CreatedAt:      time.Now(),
	}
	if err := db.Create(&opp).Error; err != nil {
		t.Fatalf("seed opportunity: %v", err)
	}
	return opp
}

// doRequest performs a JSON request as the given user against the router.
func doRequest(t *testing.T, router *gin.Engine, method, url string, body interface{}, userID uint, role string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Test-User", strconv.Itoa(int(userID)))
	}
	if role != "" {
		req.Header.Set("X-Test-Role", role)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	data, _ := resp["data"].(map[string]interface{})
	return data
}

func decodeDataList(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	list, _ := resp["data"].([]interface{})
	return list
}

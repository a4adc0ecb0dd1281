package services

import (
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

const earthRadiusKm = 6371.0

// Geocoder turns free-text locations into coordinates. ok=false means the
// location is unresolved; that is a valid outcome, never an error, so a
// slow or broken geocoding backend can never block a write.
type Geocoder interface {
	Geocode(text string) (lat, lng float64, ok bool)
}

// NominatimGeocoder resolves locations against the OpenStreetMap Nominatim
// API. The base URL is overridable so tests can point it at a local server.
type NominatimGeocoder struct {
	BaseURL    string
	UserAgent  string
	httpClient *http.Client
}

func NewNominatimGeocoder() *NominatimGeocoder {
	baseURL := os.Getenv("GEOCODER_BASE_URL")
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}

	timeout := 10 * time.Second
	if raw := os.Getenv("GEOCODER_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	return &NominatimGeocoder{
		BaseURL:   baseURL,
		UserAgent: "volunteer-app",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (g *NominatimGeocoder) Geocode(text string) (float64, float64, bool) {
	if text == "" {
		return 0, 0, false
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequest(http.MethodGet, g.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, false
	}
	req.Header.Set("User-Agent", g.UserAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, false
	}

	// Nominatim returns lat/lon as strings.
	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil || len(results) == 0 {
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, false
	}

	return lat, lng, true
}

// HaversineKm returns the great-circle distance between two coordinates.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

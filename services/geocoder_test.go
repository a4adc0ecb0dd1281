package services

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNominatimGeocoder_Geocode(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		mockResponse   string
		mockStatusCode int
		wantLat        float64
		wantLng        float64
		wantOK         bool
	}{
		{
			name:           "resolved location",
			text:           "Maracas Beach, Trinidad",
			mockResponse:   `[{"lat": "10.7577", "lon": "-61.4403"}]`,
			mockStatusCode: http.StatusOK,
			wantLat:        10.7577,
			wantLng:        -61.4403,
			wantOK:         true,
		},
		{
			name:           "no match",
			text:           "Nowhere In Particular",
			mockResponse:   `[]`,
			mockStatusCode: http.StatusOK,
			wantOK:         false,
		},
		{
			name:           "server error",
			text:           "Maracas Beach, Trinidad",
			mockResponse:   `upstream exploded`,
			mockStatusCode: http.StatusInternalServerError,
			wantOK:         false,
		},
		{
			name:           "malformed payload",
			text:           "Maracas Beach, Trinidad",
			mockResponse:   `{"not": "a list"}`,
			mockStatusCode: http.StatusOK,
			wantOK:         false,
		},
		{
			name:           "non-numeric coordinates",
			text:           "Maracas Beach, Trinidad",
			mockResponse:   `[{"lat": "north-ish", "lon": "-61.4403"}]`,
			mockStatusCode: http.StatusOK,
			wantOK:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("q") != tt.text {
					t.Errorf("unexpected query %q", r.URL.Query().Get("q"))
				}
				w.WriteHeader(tt.mockStatusCode)
				w.Write([]byte(tt.mockResponse))
			}))
			defer server.Close()

			g := &NominatimGeocoder{
				BaseURL:    server.URL,
				UserAgent:  "volunteer-app-test",
				httpClient: server.Client(),
			}

			lat, lng, ok := g.Geocode(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Geocode() ok = %v, want %v", ok, tt.wantOK)
			}
			if tt.wantOK {
				if math.Abs(lat-tt.wantLat) > 1e-9 || math.Abs(lng-tt.wantLng) > 1e-9 {
					t.Errorf("Geocode() = (%v, %v), want (%v, %v)", lat, lng, tt.wantLat, tt.wantLng)
				}
			}
		})
	}
}

func TestNominatimGeocoder_EmptyInput(t *testing.T) {
	g := NewNominatimGeocoder()
	if _, _, ok := g.Geocode(""); ok {
		t.Error("empty input must be unresolved")
	}
}

// A stalled backend degrades to unresolved instead of blocking the caller.
func TestNominatimGeocoder_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[{"lat": "10.7577", "lon": "-61.4403"}]`))
	}))
	defer server.Close()

	g := &NominatimGeocoder{
		BaseURL:    server.URL,
		UserAgent:  "volunteer-app-test",
		httpClient: &http.Client{Timeout: 50 * time.Millisecond},
	}

	if _, _, ok := g.Geocode("Maracas Beach, Trinidad"); ok {
		t.Error("timed-out geocode must be unresolved")
	}
}

func TestHaversineKm(t *testing.T) {
	// Same point.
	if d := HaversineKm(10.7577, -61.4403, 10.7577, -61.4403); d > 1e-9 {
		t.Errorf("distance to self = %v, want 0", d)
	}

	// One degree of latitude is roughly 111.19 km.
	d := HaversineKm(0, 0, 1, 0)
	if math.Abs(d-111.19) > 0.1 {
		t.Errorf("one degree latitude = %v km, want ~111.19", d)
	}

	// Port of Spain to Maracas Beach is on the order of 13 km.
	d = HaversineKm(10.6549, -61.5019, 10.7577, -61.4403)
	if d < 10 || d > 17 {
		t.Errorf("Port of Spain -> Maracas = %v km, expected 10..17", d)
	}
}

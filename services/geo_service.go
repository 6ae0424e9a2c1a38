package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const geoUserAgent = "RegenArdhi/1.0 (Land Restoration Platform)"

type GeoService struct {
	client *http.Client
}

func NewGeoService() *GeoService {
	return &GeoService{client: &http.Client{Timeout: 10 * time.Second}}
}

type nominatimResponse struct {
	Address struct {
		Town    string `json:"town"`
		City    string `json:"city"`
		County  string `json:"county"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
}

// ReverseGeocode resolves coordinates to a readable place name via
// Nominatim. Falls back to the raw coordinates when the lookup fails.
func (s *GeoService) ReverseGeocode(lat, lon float64) string {
	fallback := fmt.Sprintf("%.4f, %.4f", lat, lon)

	u := fmt.Sprintf("https://nominatim.openstreetmap.org/reverse?lat=%f&lon=%f&format=json&zoom=10", lat, lon)
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return fallback
	}
	req.Header.Set("User-Agent", geoUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return fallback
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		return fallback
	}

	var nr nominatimResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		return fallback
	}

	var parts []string
	if nr.Address.Town != "" {
		parts = append(parts, nr.Address.Town)
	} else if nr.Address.City != "" {
		parts = append(parts, nr.Address.City)
	}
	if nr.Address.County != "" {
		parts = append(parts, nr.Address.County)
	}
	if nr.Address.State != "" {
		parts = append(parts, nr.Address.State)
	}
	if nr.Address.Country != "" {
		parts = append(parts, nr.Address.Country)
	}
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, ", ")
}

type GeocodeResult struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// Geocode resolves a free-form address to coordinates. Returns an error
// when Nominatim has no match; callers treat that as user input error.
func (s *GeoService) Geocode(address string) (*GeocodeResult, error) {
	u := fmt.Sprintf("https://nominatim.openstreetmap.org/search?q=%s&format=json&limit=1", url.QueryEscape(address))
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", geoUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Nominatim search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Nominatim response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim search error %d: %s", resp.StatusCode, string(body))
	}

	var results []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to parse Nominatim JSON: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no match for %q", address)
	}

	var out GeocodeResult
	fmt.Sscanf(results[0].Lat, "%f", &out.Latitude)
	fmt.Sscanf(results[0].Lon, "%f", &out.Longitude)
	out.DisplayName = results[0].DisplayName
	return &out, nil
}

type elevationResponse struct {
	Results []struct {
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}

// Elevation returns meters above sea level via Open-Elevation, 0 on failure.
func (s *GeoService) Elevation(lat, lon float64) float64 {
	u := fmt.Sprintf("https://api.open-elevation.com/api/v1/lookup?locations=%f,%f", lat, lon)

	resp, err := s.client.Get(u)
	if err != nil {
		return 0
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		return 0
	}

	var er elevationResponse
	if err := json.Unmarshal(body, &er); err != nil || len(er.Results) == 0 {
		return 0
	}
	return er.Results[0].Elevation
}

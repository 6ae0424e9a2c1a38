package services

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"time"
)

// Weather is the current-conditions snapshot the analysis and monitoring
// engines consume. Values are metric.
type Weather struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"wind_speed"`
	Clouds      float64 `json:"clouds"`
	Estimated   bool    `json:"estimated"`
}

type WeatherService struct {
	apiKey string
	client *http.Client
}

func NewWeatherService() *WeatherService {
	return &WeatherService{
		apiKey: os.Getenv("OPENWEATHER_API_KEY"),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type openWeatherResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
}

// CurrentWeather returns live conditions from OpenWeather, or the
// latitude-based estimate when the API is unreachable or unconfigured.
// It never returns an error: a project analysis must not fail because
// the weather provider is down.
func (s *WeatherService) CurrentWeather(lat, lon float64) *Weather {
	if s.apiKey == "" {
		return EstimateWeather(lat, lon)
	}

	u := fmt.Sprintf(
		"https://api.openweathermap.org/data/2.5/weather?lat=%f&lon=%f&appid=%s&units=metric",
		lat, lon, s.apiKey,
	)

	resp, err := s.client.Get(u)
	if err != nil {
		return EstimateWeather(lat, lon)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		return EstimateWeather(lat, lon)
	}

	var ow openWeatherResponse
	if err := json.Unmarshal(body, &ow); err != nil {
		return EstimateWeather(lat, lon)
	}

	w := &Weather{
		Temperature: math.Round(ow.Main.Temp*10) / 10,
		FeelsLike:   math.Round(ow.Main.FeelsLike*10) / 10,
		Humidity:    ow.Main.Humidity,
		Pressure:    ow.Main.Pressure,
		WindSpeed:   ow.Wind.Speed,
		Clouds:      ow.Clouds.All,
	}
	if len(ow.Weather) > 0 {
		w.Description = ow.Weather[0].Description
	}
	return w
}

// EstimateWeather derives plausible conditions from coordinates alone.
// Temperature falls off with latitude; humidity is higher in the tropics.
func EstimateWeather(lat, lon float64) *Weather {
	absLat := math.Abs(lat)
	temp := 30 - absLat*0.6
	if temp > 45 {
		temp = 45
	}
	if temp < -20 {
		temp = -20
	}

	var humidity float64
	if absLat < 23.5 {
		humidity = 70 + math.Mod(math.Abs(lon), 20)
	} else {
		humidity = 50 + math.Mod(math.Abs(lon), 30)
	}

	return &Weather{
		Temperature: math.Round(temp*10) / 10,
		FeelsLike:   math.Round((temp+2)*10) / 10,
		Humidity:    math.Floor(humidity),
		Pressure:    1013,
		Description: "estimated",
		Clouds:      50,
		Estimated:   true,
	}
}

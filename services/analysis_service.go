package services

import (
	"math"
	"time"

	"github.com/StevenOyar/RegenArdhi/models"
)

// LandAnalysis is the full assessment produced for a plot. Its snapshot
// fields are copied onto the Project row; the recommendations feed the
// planning UI.
type LandAnalysis struct {
	LocationName   string   `json:"location_name"`
	SoilType       string   `json:"soil_type"`
	SoilPH         float64  `json:"soil_ph"`
	SoilFertility  string   `json:"soil_fertility"`
	ClimateZone    string   `json:"climate_zone"`
	AnnualRainfall int      `json:"annual_rainfall"`
	Temperature    float64  `json:"temperature"`
	Humidity       float64  `json:"humidity"`
	Elevation      float64  `json:"elevation"`
	NDVI           float64  `json:"vegetation_index"`
	Degradation    string   `json:"land_degradation_level"`
	Crops          []string `json:"recommended_crops"`
	Trees          []string `json:"recommended_trees"`
	Techniques     []string `json:"restoration_techniques"`
	TimelineMonths int      `json:"estimated_timeline_months"`
	BudgetPerHa    float64  `json:"budget_per_hectare"`
	TotalBudget    float64  `json:"estimated_budget"`
	Weather        *Weather `json:"weather"`
}

type AnalysisService struct {
	weather *WeatherService
	geo     *GeoService
	climate *NASAPowerService
}

func NewAnalysisService(weather *WeatherService, geo *GeoService, climate *NASAPowerService) *AnalysisService {
	return &AnalysisService{weather: weather, geo: geo, climate: climate}
}

// AnalyzeLocation runs the full pipeline: reverse geocode, live weather,
// recent climate history, elevation, then the derived indicators and
// recommendations. External lookups degrade to fallbacks; the analysis
// itself never fails.
func (s *AnalysisService) AnalyzeLocation(lat, lon, areaHectares float64) *LandAnalysis {
	locationName := s.geo.ReverseGeocode(lat, lon)
	weather := s.weather.CurrentWeather(lat, lon)

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -30)
	history, err := s.climate.ClimateData(lat, lon, start, end)
	if err != nil {
		history = nil // NDVI proceeds on weather alone
	}

	elevation := s.geo.Elevation(lat, lon)

	ndvi := EstimateNDVI(lat, lon, weather, history)
	climateZone := ClimateZone(lat, weather.Temperature)
	soilType := SoilType(lat, lon, elevation)
	soilPH := SoilPH(soilType, weather.Humidity)
	rainfall := AnnualRainfall(climateZone, weather.Humidity, lon)
	degradation := AssessDegradation(ndvi, soilPH, areaHectares)
	rec := Recommend(climateZone, degradation, rainfall)

	return &LandAnalysis{
		LocationName:   locationName,
		SoilType:       soilType,
		SoilPH:         soilPH,
		SoilFertility:  Fertility(soilPH, ndvi),
		ClimateZone:    climateZone,
		AnnualRainfall: rainfall,
		Temperature:    weather.Temperature,
		Humidity:       weather.Humidity,
		Elevation:      elevation,
		NDVI:           ndvi,
		Degradation:    degradation,
		Crops:          rec.Crops,
		Trees:          rec.Trees,
		Techniques:     rec.Techniques,
		TimelineMonths: rec.TimelineMonths,
		BudgetPerHa:    rec.BudgetPerHa,
		TotalBudget:    math.Round(rec.BudgetPerHa*areaHectares*100) / 100,
		Weather:        weather,
	}
}

// EstimateNDVI approximates vegetation density from latitude band and
// current conditions, nudged by recent temperature anomalies when climate
// history is available. Result is clamped to [0,1] at 2 decimal places.
func EstimateNDVI(lat, lon float64, weather *Weather, history *ClimateSummary) float64 {
	absLat := math.Abs(lat)
	temp, humidity := 20.0, 50.0
	if weather != nil {
		temp = weather.Temperature
		humidity = weather.Humidity
	}

	var base float64
	switch {
	case absLat < 10:
		base = 0.6
	case absLat < 23.5:
		base = 0.5
	case absLat < 35:
		base = 0.4
	case absLat < 50:
		base = 0.35
	default:
		base = 0.2
	}

	if temp > 25 && humidity > 60 {
		base += 0.1
	} else if temp < 10 || humidity < 30 {
		base -= 0.15
	}

	variation := math.Mod(math.Abs(lon), 10) * 0.02
	ndvi := clamp(base+variation-0.1, 0, 1)

	if history != nil && len(history.TemperatureSeries) > 0 {
		temps := history.TemperatureSeries
		recent := temps[len(temps)-1]
		var mean float64
		for _, t := range temps {
			mean += t
		}
		mean /= float64(len(temps))
		if recent > mean+2 {
			ndvi = clamp(ndvi+0.03, 0, 1)
		} else if recent < mean-2 {
			ndvi = clamp(ndvi-0.03, 0, 1)
		}
	}

	return math.Round(ndvi*100) / 100
}

func ClimateZone(lat, temperature float64) string {
	absLat := math.Abs(lat)
	switch {
	case absLat > 66.5:
		return "Polar"
	case absLat > 60:
		return "Subpolar"
	case absLat > 45:
		if temperature > 20 {
			return "Warm Temperate"
		}
		return "Cool Temperate"
	case absLat > 30:
		if temperature > 25 {
			return "Subtropical"
		}
		return "Warm Temperate"
	case absLat > 23.5:
		return "Tropical"
	default:
		return "Equatorial"
	}
}

// SoilType picks from a band-specific candidate list, indexed by longitude
// so nearby plots vary deterministically.
func SoilType(lat, lon, elevation float64) string {
	absLat := math.Abs(lat)
	var candidates []string
	switch {
	case elevation > 2000:
		candidates = []string{"Rocky", "Mountain Soil", "Thin Soil"}
	case elevation > 1000:
		candidates = []string{"Loamy", "Clay-Loam", "Sandy-Loam"}
	case absLat < 10:
		candidates = []string{"Laterite", "Tropical Red", "Alluvial"}
	case absLat < 30:
		candidates = []string{"Alluvial", "Loamy", "Red Soil"}
	case absLat < 50:
		candidates = []string{"Loamy", "Clay", "Podzol"}
	default:
		candidates = []string{"Tundra", "Permafrost", "Gleysol"}
	}
	return candidates[int(math.Abs(lon))%len(candidates)]
}

var soilBasePH = map[string]float64{
	"Laterite":      5.5,
	"Tropical Red":  6.0,
	"Alluvial":      7.0,
	"Loamy":         6.5,
	"Clay":          7.2,
	"Sandy":         6.8,
	"Rocky":         7.5,
	"Mountain Soil": 6.3,
	"Podzol":        5.0,
	"Tundra":        5.5,
}

func SoilPH(soilType string, humidity float64) float64 {
	ph, ok := soilBasePH[soilType]
	if !ok {
		ph = 6.5
	}
	if humidity > 70 {
		ph -= 0.3
	} else if humidity < 40 {
		ph += 0.3
	}
	return math.Round(ph*10) / 10
}

func Fertility(soilPH, ndvi float64) string {
	switch {
	case soilPH >= 6.0 && soilPH <= 7.5 && ndvi > 0.5:
		return "high"
	case ((soilPH >= 5.5 && soilPH < 6.0) || (soilPH > 7.5 && soilPH <= 8.0)) && ndvi > 0.35:
		return "medium"
	default:
		return "low"
	}
}

var zoneBaseRainfall = map[string]float64{
	"Equatorial":     2500,
	"Tropical":       1800,
	"Subtropical":    1000,
	"Warm Temperate": 800,
	"Cool Temperate": 700,
	"Subpolar":       500,
	"Polar":          250,
}

func AnnualRainfall(climateZone string, humidity, lon float64) int {
	rainfall, ok := zoneBaseRainfall[climateZone]
	if !ok {
		rainfall = 800
	}
	if humidity > 70 {
		rainfall *= 1.3
	} else if humidity < 40 {
		rainfall *= 0.6
	}
	rainfall += math.Mod(math.Abs(lon), 15) * 20
	return int(rainfall)
}

// AssessDegradation scores vegetation, soil acidity, and plot size into a
// level. Large plots score one point worse: degradation compounds over area.
func AssessDegradation(ndvi, soilPH, areaHectares float64) string {
	score := 0
	switch {
	case ndvi < 0.2:
		score += 4
	case ndvi < 0.35:
		score += 3
	case ndvi < 0.5:
		score += 2
	default:
		score++
	}
	if soilPH < 5.0 || soilPH > 8.5 {
		score++
	}
	if areaHectares > 100 {
		score++
	}
	switch {
	case score >= 5:
		return models.DegradationCritical
	case score >= 4:
		return models.DegradationSevere
	case score >= 2:
		return models.DegradationModerate
	default:
		return models.DegradationMinimal
	}
}

type Recommendation struct {
	Crops          []string
	Trees          []string
	Techniques     []string
	TimelineMonths int
	BudgetPerHa    float64
}

var cropsByZone = map[string][]string{
	"Equatorial":     {"Rice", "Bananas", "Cassava", "Yams", "Cocoa", "Coffee"},
	"Tropical":       {"Maize", "Beans", "Cassava", "Sweet Potato", "Millet", "Sorghum"},
	"Subtropical":    {"Wheat", "Maize", "Citrus", "Grapes", "Cotton", "Rice"},
	"Warm Temperate": {"Wheat", "Barley", "Potato", "Apple", "Cherry", "Corn"},
	"Cool Temperate": {"Oats", "Barley", "Potato", "Cabbage", "Berries", "Rye"},
}

var treesByZone = map[string][]string{
	"Equatorial":     {"Mahogany", "Teak", "Rubber", "Oil Palm", "Bamboo"},
	"Tropical":       {"Acacia", "Neem", "Mango", "Moringa", "Grevillea", "Eucalyptus"},
	"Subtropical":    {"Oak", "Citrus", "Olive", "Pine", "Cypress"},
	"Warm Temperate": {"Oak", "Maple", "Ash", "Pine", "Walnut"},
	"Cool Temperate": {"Spruce", "Fir", "Birch", "Alder", "Larch"},
}

var techniquesByDegradation = map[string][]string{
	models.DegradationMinimal: {
		"Regular mulching and organic matter addition",
		"Crop rotation practices",
		"Water conservation techniques",
	},
	models.DegradationModerate: {
		"Contour farming and terracing",
		"Agroforestry integration",
		"Soil amendment with compost",
		"Cover cropping",
	},
	models.DegradationSevere: {
		"Intensive afforestation program",
		"Deep tillage and soil loosening",
		"Watershed management systems",
		"Biochar application",
	},
	models.DegradationCritical: {
		"Emergency restoration protocols",
		"Comprehensive soil remediation",
		"Intensive irrigation system installation",
		"Professional consultation required",
	},
}

var timelineByDegradation = map[string]int{
	models.DegradationMinimal:  12,
	models.DegradationModerate: 24,
	models.DegradationSevere:   36,
	models.DegradationCritical: 48,
}

var budgetByDegradation = map[string]float64{
	models.DegradationMinimal:  50000,
	models.DegradationModerate: 150000,
	models.DegradationSevere:   350000,
	models.DegradationCritical: 700000,
}

// Recommend builds planting and technique guidance. Budgets scale up 50%
// in arid zones (annual rainfall under 600mm) for irrigation overhead.
func Recommend(climateZone, degradation string, rainfall int) Recommendation {
	crops, ok := cropsByZone[climateZone]
	if !ok {
		crops = []string{"Consult agronomist"}
	}
	trees, ok := treesByZone[climateZone]
	if !ok {
		trees = []string{"Consult forester"}
	}
	if len(crops) > 5 {
		crops = crops[:5]
	}
	if len(trees) > 5 {
		trees = trees[:5]
	}

	timeline, ok := timelineByDegradation[degradation]
	if !ok {
		timeline = 24
	}
	budget, ok := budgetByDegradation[degradation]
	if !ok {
		budget = 100000
	}
	if rainfall < 600 {
		budget *= 1.5
	}

	return Recommendation{
		Crops:          crops,
		Trees:          trees,
		Techniques:     techniquesByDegradation[degradation],
		TimelineMonths: timeline,
		BudgetPerHa:    math.Round(budget*100) / 100,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

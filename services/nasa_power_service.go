package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"
)

// SeriesStats summarizes one NASA POWER parameter over the query window.
type SeriesStats struct {
	Avg     float64 `json:"avg"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Current float64 `json:"current"`
}

type RainfallStats struct {
	Total        float64 `json:"total"`
	AvgDaily     float64 `json:"avg_daily"`
	DaysWithRain int     `json:"days_with_rain"`
}

// ClimateSummary is the processed NASA POWER daily-point response,
// with series in chronological order.
type ClimateSummary struct {
	Temperature    SeriesStats   `json:"temperature"`
	Rainfall       RainfallStats `json:"rainfall"`
	Humidity       SeriesStats   `json:"humidity"`
	WindSpeed      SeriesStats   `json:"wind_speed"`
	SolarRadiation SeriesStats   `json:"solar_radiation"`

	Dates             []string  `json:"dates"`
	TemperatureSeries []float64 `json:"temperature_series"`
	RainfallSeries    []float64 `json:"rainfall_series"`
	HumiditySeries    []float64 `json:"humidity_series"`
}

type NASAPowerService struct {
	client *http.Client
}

func NewNASAPowerService() *NASAPowerService {
	return &NASAPowerService{client: &http.Client{Timeout: 30 * time.Second}}
}

type nasaPowerResponse struct {
	Properties struct {
		Parameter map[string]map[string]float64 `json:"parameter"`
	} `json:"properties"`
}

// ClimateData fetches daily agro-climate parameters for a point. The raw
// response keys series by YYYYMMDD date strings in unspecified order, so
// dates are sorted ascending before stats are taken ("current" is the
// latest day).
func (s *NASAPowerService) ClimateData(lat, lon float64, start, end time.Time) (*ClimateSummary, error) {
	u := fmt.Sprintf(
		"https://power.larc.nasa.gov/api/temporal/daily/point?parameters=T2M,PRECTOTCORR,RH2M,WS2M,ALLSKY_SFC_SW_DWN&community=AG&latitude=%f&longitude=%f&start=%s&end=%s&format=JSON",
		lat, lon, start.Format("20060102"), end.Format("20060102"),
	)

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call NASA POWER: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read NASA POWER response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NASA POWER API error %d: %s", resp.StatusCode, string(body))
	}

	var nr nasaPowerResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		return nil, fmt.Errorf("failed to parse NASA POWER JSON: %w", err)
	}
	if len(nr.Properties.Parameter) == 0 {
		return nil, fmt.Errorf("NASA POWER returned no parameters")
	}

	dates, temps := orderedSeries(nr.Properties.Parameter["T2M"])
	_, rainfall := orderedSeries(nr.Properties.Parameter["PRECTOTCORR"])
	_, humidity := orderedSeries(nr.Properties.Parameter["RH2M"])
	_, wind := orderedSeries(nr.Properties.Parameter["WS2M"])
	_, solar := orderedSeries(nr.Properties.Parameter["ALLSKY_SFC_SW_DWN"])

	summary := &ClimateSummary{
		Temperature:       safeStats(temps),
		Humidity:          safeStats(humidity),
		WindSpeed:         safeStats(wind),
		SolarRadiation:    safeStats(solar),
		Dates:             dates,
		TemperatureSeries: temps,
		RainfallSeries:    rainfall,
		HumiditySeries:    humidity,
	}

	for _, r := range rainfall {
		summary.Rainfall.Total += r
		if r > 0 {
			summary.Rainfall.DaysWithRain++
		}
	}
	if len(rainfall) > 0 {
		summary.Rainfall.AvgDaily = summary.Rainfall.Total / float64(len(rainfall))
	}
	return summary, nil
}

func orderedSeries(series map[string]float64) ([]string, []float64) {
	if len(series) == 0 {
		return nil, nil
	}
	dates := make([]string, 0, len(series))
	for d := range series {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	values := make([]float64, len(dates))
	for i, d := range dates {
		values[i] = series[d]
	}
	return dates, values
}

func safeStats(arr []float64) SeriesStats {
	if len(arr) == 0 {
		return SeriesStats{}
	}
	st := SeriesStats{Min: arr[0], Max: arr[0], Current: arr[len(arr)-1]}
	var sum float64
	for _, v := range arr {
		sum += v
		if v < st.Min {
			st.Min = v
		}
		if v > st.Max {
			st.Max = v
		}
	}
	st.Avg = sum / float64(len(arr))
	return st
}

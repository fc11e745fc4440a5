package googleweather

import (
	"encoding/json"
	"fmt"
	"time"
)

const hourTimestampLayout = "2006-01-02T15:04:05Z"

// Condition is the flattened weatherCondition of an hourly entry.
type Condition struct {
	Description string `json:"description"`
	Type        string `json:"type"`
}

// HourlyForecast is one normalized hour of the forecast. Nested
// provider containers (interval, precipitation, weatherCondition) are
// flattened; unit-bearing values are passed through untouched.
type HourlyForecast struct {
	Date                    string          `json:"date"`
	StartTime               string          `json:"start_time"`
	EndTime                 string          `json:"end_time"`
	RainProbability         int             `json:"rain_probability"`
	PrecipitationMM         float64         `json:"precipitation_mm"`
	SnowPrecipitationMM     float64         `json:"snow_precipitation_mm"`
	ThunderstormProbability int             `json:"thunderstorm_probability"`
	CloudCover              int             `json:"cloud_cover"`
	Condition               Condition       `json:"condition"`
	Temperature             json.RawMessage `json:"temperature,omitempty"`
	FeelsLike               json.RawMessage `json:"feels_like,omitempty"`
	DewPoint                json.RawMessage `json:"dew_point,omitempty"`
	HeatIndex               json.RawMessage `json:"heat_index,omitempty"`
	WindChill               json.RawMessage `json:"wind_chill,omitempty"`
	WetBulbTemperature      json.RawMessage `json:"wet_bulb_temperature,omitempty"`
	AirPressure             json.RawMessage `json:"air_pressure,omitempty"`
	Wind                    json.RawMessage `json:"wind,omitempty"`
	Visibility              json.RawMessage `json:"visibility,omitempty"`
	IceThickness            json.RawMessage `json:"ice_thickness,omitempty"`
	IsDaytime               bool            `json:"is_daytime"`
	RelativeHumidity        int             `json:"relative_humidity"`
	UVIndex                 int             `json:"uv_index"`
}

type forecastResponse struct {
	ForecastHours []forecastHour `json:"forecastHours"`
}

type forecastHour struct {
	Interval struct {
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	} `json:"interval"`
	WeatherCondition struct {
		Description struct {
			Text string `json:"text"`
		} `json:"description"`
		Type string `json:"type"`
	} `json:"weatherCondition"`
	Precipitation struct {
		Probability struct {
			Percent int `json:"percent"`
		} `json:"probability"`
		QPF struct {
			Quantity float64 `json:"quantity"`
		} `json:"qpf"`
		SnowQPF struct {
			Quantity float64 `json:"quantity"`
		} `json:"snowQpf"`
	} `json:"precipitation"`
	ThunderstormProbability int             `json:"thunderstormProbability"`
	CloudCover              int             `json:"cloudCover"`
	Temperature             json.RawMessage `json:"temperature"`
	FeelsLikeTemperature    json.RawMessage `json:"feelsLikeTemperature"`
	DewPoint                json.RawMessage `json:"dewPoint"`
	HeatIndex               json.RawMessage `json:"heatIndex"`
	WindChill               json.RawMessage `json:"windChill"`
	WetBulbTemperature      json.RawMessage `json:"wetBulbTemperature"`
	AirPressure             json.RawMessage `json:"airPressure"`
	Wind                    json.RawMessage `json:"wind"`
	Visibility              json.RawMessage `json:"visibility"`
	IceThickness            json.RawMessage `json:"iceThickness"`
	IsDaytime               bool            `json:"isDaytime"`
	RelativeHumidity        int             `json:"relativeHumidity"`
	UVIndex                 int             `json:"uvIndex"`
}

func normalizeHours(hours []forecastHour) ([]HourlyForecast, error) {
	result := make([]HourlyForecast, 0, len(hours))

	for i, hour := range hours {
		start, err := time.Parse(hourTimestampLayout, hour.Interval.StartTime)
		if err != nil {
			return nil, fmt.Errorf("failed to parse start time of hour %d: %w", i, err)
		}

		end, err := time.Parse(hourTimestampLayout, hour.Interval.EndTime)
		if err != nil {
			return nil, fmt.Errorf("failed to parse end time of hour %d: %w", i, err)
		}

		result = append(result, HourlyForecast{
			Date:                    start.Format("2006-01-02"),
			StartTime:               start.Format("15:04"),
			EndTime:                 end.Format("15:04"),
			RainProbability:         hour.Precipitation.Probability.Percent,
			PrecipitationMM:         hour.Precipitation.QPF.Quantity,
			SnowPrecipitationMM:     hour.Precipitation.SnowQPF.Quantity,
			ThunderstormProbability: hour.ThunderstormProbability,
			CloudCover:              hour.CloudCover,
			Condition: Condition{
				Description: hour.WeatherCondition.Description.Text,
				Type:        hour.WeatherCondition.Type,
			},
			Temperature:        hour.Temperature,
			FeelsLike:          hour.FeelsLikeTemperature,
			DewPoint:           hour.DewPoint,
			HeatIndex:          hour.HeatIndex,
			WindChill:          hour.WindChill,
			WetBulbTemperature: hour.WetBulbTemperature,
			AirPressure:        hour.AirPressure,
			Wind:               hour.Wind,
			Visibility:         hour.Visibility,
			IceThickness:       hour.IceThickness,
			IsDaytime:          hour.IsDaytime,
			RelativeHumidity:   hour.RelativeHumidity,
			UVIndex:            hour.UVIndex,
		})
	}

	return result, nil
}

package conversation

import (
	"context"
	"errors"
	"testing"

	"tourplan/app/client/googleweather"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubForecaster struct {
	hours []googleweather.HourlyForecast
	err   error
}

func (s *stubForecaster) Forecast(_ context.Context, _ string) ([]googleweather.HourlyForecast, error) {
	return s.hours, s.err
}

func TestWeatherTool_Call(t *testing.T) {
	tool := NewWeatherTool(&stubForecaster{
		hours: []googleweather.HourlyForecast{
			{Date: "2024-05-01", StartTime: "08:00", EndTime: "09:00", RainProbability: 70},
		},
	})

	output, err := tool.Call(context.Background(), "jaipur")
	require.NoError(t, err)

	assert.Contains(t, output, `"date":"2024-05-01"`)
	assert.Contains(t, output, `"rain_probability":70`)
}

func TestWeatherTool_Call_ForecastError(t *testing.T) {
	tool := NewWeatherTool(&stubForecaster{err: errors.New("no geocode results")})

	_, err := tool.Call(context.Background(), "nowhere")
	require.ErrorContains(t, err, "forecast lookup failed")
}

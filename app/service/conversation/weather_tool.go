package conversation

import (
	"context"
	"encoding/json"
	"fmt"

	"tourplan/app/client/googleweather"

	"github.com/tmc/langchaingo/tools"
)

type forecaster interface {
	Forecast(ctx context.Context, address string) ([]googleweather.HourlyForecast, error)
}

var _ tools.Tool = (*WeatherTool)(nil)

// WeatherTool exposes the forecast client as a langchaingo tool. There
// is exactly one tool and one decision (city known → fetch weather),
// so the orchestrator invokes it directly instead of running an
// open-ended tool-selection loop.
type WeatherTool struct {
	client forecaster
}

func NewWeatherTool(client forecaster) *WeatherTool {
	return &WeatherTool{client: client}
}

func (t *WeatherTool) Name() string {
	return "WeatherInfo"
}

func (t *WeatherTool) Description() string {
	return "Returns the hourly weather forecast for a given city as JSON. Input must be a city name or address."
}

func (t *WeatherTool) Call(ctx context.Context, input string) (string, error) {
	hours, err := t.client.Forecast(ctx, input)
	if err != nil {
		return "", fmt.Errorf("forecast lookup failed: %w", err)
	}

	data, err := json.Marshal(hours)
	if err != nil {
		return "", fmt.Errorf("failed to marshal forecast: %w", err)
	}

	return string(data), nil
}

// Package weather provides getWeatherInfo, a canned weather lookup.
package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/stepagent/internal/tool"
)

// Name is the tool name exposed to the model.
const Name = "getWeatherInfo"

// ErrCityRequired is returned when the input is blank.
var ErrCityRequired = errors.New("city cannot be empty")

// WeatherTool returns a fixed report for any city. It has no side effects.
type WeatherTool struct{}

// NewWeatherTool creates a WeatherTool.
func NewWeatherTool() *WeatherTool {
	return &WeatherTool{}
}

func (t *WeatherTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        Name,
		Description: "Get the weather information for a city",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"city": {
					Type:        tool.TypeString,
					Description: "The city to get the weather information for",
				},
			},
			Required: []string{"city"},
		},
	}
}

func (t *WeatherTool) Invoke(ctx context.Context, input string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	city := strings.TrimSpace(input)
	if city == "" {
		return "", ErrCityRequired
	}
	return fmt.Sprintf("28 DEGREE CELSIUS for %s", city), nil
}

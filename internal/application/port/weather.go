package port

import (
	"context"

	"github.com/bnema/startdash/internal/domain/entity"
)

// WeatherProvider fetches the current forecast for a coordinate.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (*entity.Forecast, error)
}

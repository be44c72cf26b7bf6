package entity

import "time"

// Forecast is the current weather at one location.
type Forecast struct {
	TemperatureC float64
	// Symbol is a met.no symbol code such as "clearsky_day"; "unknown" when absent.
	Symbol    string
	UpdatedAt time.Time
}

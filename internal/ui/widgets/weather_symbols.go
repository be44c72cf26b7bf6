package widgets

import "strings"

const unknownWeatherEmoji = "🌡️"

// weatherEmoji maps met.no symbol codes to emoji.
var weatherEmoji = map[string]string{
	"clearsky_day":                   "☀️",
	"clearsky_night":                 "🌙",
	"clearsky_polartwilight":         "🌅",
	"fair_day":                       "🌤️",
	"fair_night":                     "🌙",
	"fair_polartwilight":             "🌅",
	"partlycloudy_day":               "⛅",
	"partlycloudy_night":             "☁️",
	"partlycloudy_polartwilight":     "⛅",
	"cloudy":                         "☁️",
	"fog":                            "🌫️",
	"rain":                           "🌧️",
	"heavyrain":                      "🌧️",
	"lightrain":                      "🌦️",
	"sleet":                          "🌨️",
	"lightsleet":                     "🌨️",
	"snow":                           "❄️",
	"lightsnow":                      "🌨️",
	"rainshowers_day":                "🌦️",
	"rainshowers_night":              "🌧️",
	"rainshowers_polartwilight":      "🌦️",
	"lightrainshowers_day":           "🌦️",
	"lightrainshowers_night":         "🌧️",
	"lightrainshowers_polartwilight": "🌦️",
	"heavyrainshowers_day":           "🌧️",
	"heavyrainshowers_night":         "🌧️",
}

// WeatherEmoji returns the emoji for a met.no symbol code. Codes carrying a
// thunder suffix all map to a storm; shower variants not listed fall back to
// their sleet or snow family before the thermometer default.
func WeatherEmoji(symbol string) string {
	if e, ok := weatherEmoji[symbol]; ok {
		return e
	}
	base, _, _ := strings.Cut(symbol, "_")
	switch {
	case strings.HasSuffix(base, "thunder"):
		return "⛈️"
	case strings.Contains(base, "sleet"), strings.Contains(base, "snowshowers"):
		return "🌨️"
	case strings.Contains(base, "rainshowers"):
		return "🌧️"
	}
	if e, ok := weatherEmoji[base]; ok {
		return e
	}
	return unknownWeatherEmoji
}

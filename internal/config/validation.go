package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateWindow(config)...)
	validationErrors = append(validationErrors, validateClock(config)...)
	validationErrors = append(validationErrors, validateLinks(config)...)
	validationErrors = append(validationErrors, validateWeather(config)...)
	validationErrors = append(validationErrors, validateScripts(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch strings.ToLower(config.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error, disabled (got %q)", config.Logging.Level))
	}
	if config.Logging.Format != "console" && config.Logging.Format != "json" {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be console or json (got %q)", config.Logging.Format))
	}
	if config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size must be at least 1")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAge < 0 {
		validationErrors = append(validationErrors, "logging.max_age must be non-negative")
	}
	return validationErrors
}

func validateWindow(config *Config) []string {
	var validationErrors []string
	w := config.Window
	if w.MinVisibleWidth < 0 {
		validationErrors = append(validationErrors, "window.min_visible_width must be non-negative")
	}
	if w.MinVisibleHeight < 0 {
		validationErrors = append(validationErrors, "window.min_visible_height must be non-negative")
	}
	if w.MinWidth < 1 {
		validationErrors = append(validationErrors, "window.min_width must be at least 1")
	}
	if w.MinHeight < 1 {
		validationErrors = append(validationErrors, "window.min_height must be at least 1")
	}
	return validationErrors
}

func validateClock(config *Config) []string {
	if offset := config.Widgets.Clock.HourOffset; offset < -23 || offset > 23 {
		return []string{"widgets.clock.hour_offset must be between -23 and 23"}
	}
	return nil
}

func validateLinks(config *Config) []string {
	var validationErrors []string
	for i, category := range config.Widgets.Links.Categories {
		if strings.TrimSpace(category.Title) == "" {
			validationErrors = append(validationErrors, fmt.Sprintf("widgets.links.categories[%d].title cannot be empty", i))
		}
		for j, link := range category.Links {
			if !isHTTPURL(link.URL) {
				validationErrors = append(validationErrors,
					fmt.Sprintf("widgets.links.categories[%d].links[%d].url must be an http(s) URL (got %q)", i, j, link.URL))
			}
		}
	}
	return validationErrors
}

func validateWeather(config *Config) []string {
	w := config.Widgets.Weather
	if !w.Enabled {
		return nil
	}
	var validationErrors []string
	if w.Latitude < -90 || w.Latitude > 90 {
		validationErrors = append(validationErrors, "widgets.weather.latitude must be between -90 and 90")
	}
	if w.Longitude < -180 || w.Longitude > 180 {
		validationErrors = append(validationErrors, "widgets.weather.longitude must be between -180 and 180")
	}
	if w.Interval < minWeatherInterval {
		validationErrors = append(validationErrors,
			fmt.Sprintf("widgets.weather.interval must be at least %s", minWeatherInterval))
	}
	if strings.TrimSpace(w.UserAgent) == "" {
		validationErrors = append(validationErrors, "widgets.weather.user_agent cannot be empty")
	}
	if w.BaseURL != "" && !isHTTPURL(w.BaseURL) {
		validationErrors = append(validationErrors, "widgets.weather.base_url must be an http(s) URL")
	}
	return validationErrors
}

func validateScripts(config *Config) []string {
	var validationErrors []string
	seen := make(map[string]bool)
	for i, script := range config.Widgets.Scripts {
		id := strings.TrimSpace(script.ID)
		switch {
		case id == "":
			validationErrors = append(validationErrors, fmt.Sprintf("widgets.scripts[%d].id cannot be empty", i))
		case seen[id]:
			validationErrors = append(validationErrors, fmt.Sprintf("widgets.scripts[%d].id %q is duplicated", i, id))
		case reservedWidgetIDs[id]:
			validationErrors = append(validationErrors, fmt.Sprintf("widgets.scripts[%d].id %q is reserved", i, id))
		}
		seen[id] = true
		if strings.TrimSpace(script.File) == "" {
			validationErrors = append(validationErrors, fmt.Sprintf("widgets.scripts[%d].file cannot be empty", i))
		}
		if script.Refresh < 0 {
			validationErrors = append(validationErrors, fmt.Sprintf("widgets.scripts[%d].refresh must be non-negative", i))
		}
	}
	return validationErrors
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

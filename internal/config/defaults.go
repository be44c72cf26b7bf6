package config

import "time"

const (
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 7

	// Window limits in terminal cells.
	defaultMinVisibleWidth  = 12
	defaultMinVisibleHeight = 3
	defaultMinWidth         = 20
	defaultMinHeight        = 5
	defaultInitialZ         = 1000

	defaultWeatherInterval  = 30 * time.Minute
	defaultWeatherLatitude  = 60.3913
	defaultWeatherLongitude = 5.3221
	defaultWeatherUserAgent = "startdash/1.0 github.com/bnema/startdash"
	defaultWeatherDetails   = "https://www.yr.no/en/forecast/daily-table/1-92416/Norway/Vestland/Bergen/Bergen"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:         defaultLogLevel,
			Format:        defaultLogFormat,
			EnableFileLog: true,
			MaxSizeMB:     defaultMaxSizeMB,
			MaxBackups:    defaultMaxBackups,
			MaxAge:        defaultMaxAgeDays,
			Compress:      true,
		},
		Window: WindowConfig{
			MinVisibleWidth:  defaultMinVisibleWidth,
			MinVisibleHeight: defaultMinVisibleHeight,
			MinWidth:         defaultMinWidth,
			MinHeight:        defaultMinHeight,
			InitialZ:         defaultInitialZ,
		},
		Widgets: WidgetsConfig{
			Clock: ClockConfig{
				Enabled:   true,
				Placement: Placement{X: 104, Y: 1},
			},
			Links: LinksConfig{
				Enabled:    true,
				Title:      "startdash",
				Subtitle:   "Either it goes well, or it goes over...",
				Categories: defaultLinkCategories(),
				Placement:  Placement{X: 12, Y: 6, Width: 96, Height: 24},
			},
			Weather: WeatherConfig{
				Enabled:    true,
				Latitude:   defaultWeatherLatitude,
				Longitude:  defaultWeatherLongitude,
				Interval:   defaultWeatherInterval,
				UserAgent:  defaultWeatherUserAgent,
				DetailsURL: defaultWeatherDetails,
				Placement:  Placement{X: 44, Y: 1},
			},
			MealPlan: MealPlanConfig{
				Enabled:   true,
				Placement: Placement{X: 2, Y: 8, Width: 44, Height: 20},
			},
		},
	}
}

func defaultLinkCategories() []LinkCategory {
	return []LinkCategory{
		{
			Title: "NRK",
			Links: []Link{
				{Name: "TV", URL: "https://tv.nrk.no"},
				{Name: "Radio", URL: "https://www.nrk.no/radio/"},
				{Name: "News", URL: "https://www.nrk.no/"},
			},
		},
		{
			Title: "DEV",
			Links: []Link{
				{Name: "Github", URL: "https://github.com"},
				{Name: "Roadmap", URL: "https://roadmap.sh"},
			},
		},
		{
			Title: "FUN",
			Links: []Link{
				{Name: "Chess", URL: "https://chess.com"},
				{Name: "Youtube", URL: "https://youtube.com"},
			},
		},
		{
			Title: "PRIVATE",
			Links: []Link{
				{Name: "Mail", URL: "https://gmail.com"},
				{Name: "Tek", URL: "https://www.tek.no/"},
				{Name: "Kode24", URL: "https://www.kode24.no/"},
			},
		},
	}
}

// Package config loads, validates and watches the startdash configuration.
package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/invopop/jsonschema"
)

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
	Window   WindowConfig   `mapstructure:"window" toml:"window" json:"window"`
	Widgets  WidgetsConfig  `mapstructure:"widgets" toml:"widgets" json:"widgets"`
	Print    PrintConfig    `mapstructure:"print" toml:"print" json:"print"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	// Path to the SQLite layout database. Empty means $XDG_DATA_HOME/startdash/startdash.sqlite.
	Path string `mapstructure:"path" toml:"path" json:"path,omitempty"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`

	// File output configuration
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir,omitempty"`
	MaxSizeMB     int    `mapstructure:"max_size" toml:"max_size" json:"max_size" jsonschema:"minimum=1"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
	MaxAge        int    `mapstructure:"max_age" toml:"max_age" json:"max_age" jsonschema:"minimum=0"`
	Compress      bool   `mapstructure:"compress" toml:"compress" json:"compress"`
}

// WindowConfig holds the window manager limits, in terminal cells.
type WindowConfig struct {
	// MinVisibleWidth is how much of a dragged window stays on screen horizontally.
	MinVisibleWidth  int `mapstructure:"min_visible_width" toml:"min_visible_width" json:"min_visible_width" jsonschema:"minimum=0"`
	MinVisibleHeight int `mapstructure:"min_visible_height" toml:"min_visible_height" json:"min_visible_height" jsonschema:"minimum=0"`
	MinWidth         int `mapstructure:"min_width" toml:"min_width" json:"min_width" jsonschema:"minimum=1"`
	MinHeight        int `mapstructure:"min_height" toml:"min_height" json:"min_height" jsonschema:"minimum=1"`
	InitialZ         int `mapstructure:"initial_z" toml:"initial_z" json:"initial_z"`
}

// Placement is a widget's default geometry before any layout is persisted.
// Zero Width or Height means the widget's intrinsic size.
type Placement struct {
	X      int `mapstructure:"x" toml:"x" json:"x"`
	Y      int `mapstructure:"y" toml:"y" json:"y"`
	Width  int `mapstructure:"width" toml:"width" json:"width,omitempty"`
	Height int `mapstructure:"height" toml:"height" json:"height,omitempty"`
}

// WidgetsConfig holds per-widget configuration.
type WidgetsConfig struct {
	Clock    ClockConfig    `mapstructure:"clock" toml:"clock" json:"clock"`
	Links    LinksConfig    `mapstructure:"links" toml:"links" json:"links"`
	Weather  WeatherConfig  `mapstructure:"weather" toml:"weather" json:"weather"`
	MealPlan MealPlanConfig `mapstructure:"mealplan" toml:"mealplan" json:"mealplan"`
	Scripts  []ScriptConfig `mapstructure:"scripts" toml:"scripts" json:"scripts,omitempty"`
}

// ClockConfig configures the clock widget.
type ClockConfig struct {
	Enabled    bool      `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	HourOffset int       `mapstructure:"hour_offset" toml:"hour_offset" json:"hour_offset" jsonschema:"minimum=-23,maximum=23"`
	Placement  Placement `mapstructure:"placement" toml:"placement" json:"placement"`
}

// LinksConfig configures the links widget.
type LinksConfig struct {
	Enabled  bool   `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	Title    string `mapstructure:"title" toml:"title" json:"title"`
	Subtitle string `mapstructure:"subtitle" toml:"subtitle" json:"subtitle"`
	// OpenLinks hands clicked links to the system opener in addition to the notice.
	OpenLinks  bool           `mapstructure:"open_links" toml:"open_links" json:"open_links"`
	Categories []LinkCategory `mapstructure:"categories" toml:"categories" json:"categories"`
	Placement  Placement      `mapstructure:"placement" toml:"placement" json:"placement"`
}

// LinkCategory is a titled group of links.
type LinkCategory struct {
	Title string `mapstructure:"title" toml:"title" json:"title"`
	Links []Link `mapstructure:"links" toml:"links" json:"links"`
}

// Link is a named URL.
type Link struct {
	Name string `mapstructure:"name" toml:"name" json:"name"`
	URL  string `mapstructure:"url" toml:"url" json:"url"`
}

// WeatherConfig configures the weather widget and its forecast source.
type WeatherConfig struct {
	Enabled   bool          `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	Latitude  float64       `mapstructure:"latitude" toml:"latitude" json:"latitude" jsonschema:"minimum=-90,maximum=90"`
	Longitude float64       `mapstructure:"longitude" toml:"longitude" json:"longitude" jsonschema:"minimum=-180,maximum=180"`
	Interval  time.Duration `mapstructure:"interval" toml:"interval" json:"interval"`
	UserAgent string        `mapstructure:"user_agent" toml:"user_agent" json:"user_agent"`
	// BaseURL overrides the forecast API endpoint.
	BaseURL string `mapstructure:"base_url" toml:"base_url" json:"base_url,omitempty"`
	// DetailsURL is opened when the widget is clicked.
	DetailsURL string    `mapstructure:"details_url" toml:"details_url" json:"details_url,omitempty"`
	Placement  Placement `mapstructure:"placement" toml:"placement" json:"placement"`
}

// MealPlanConfig configures the meal plan widget.
type MealPlanConfig struct {
	Enabled   bool      `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	Placement Placement `mapstructure:"placement" toml:"placement" json:"placement"`
}

// ScriptConfig declares a scripted widget.
type ScriptConfig struct {
	ID string `mapstructure:"id" toml:"id" json:"id"`
	// File is a JavaScript file defining render(). Relative paths resolve against the config directory.
	File string `mapstructure:"file" toml:"file" json:"file"`
	// Refresh re-renders the widget periodically; zero renders once.
	Refresh   time.Duration `mapstructure:"refresh" toml:"refresh" json:"refresh,omitempty"`
	Resizable bool          `mapstructure:"resizable" toml:"resizable" json:"resizable,omitempty"`
	Placement Placement     `mapstructure:"placement" toml:"placement" json:"placement"`
}

// PrintConfig configures document export.
type PrintConfig struct {
	// ExportDir receives printed documents. Empty means $XDG_DATA_HOME/startdash/exports.
	ExportDir string `mapstructure:"export_dir" toml:"export_dir" json:"export_dir,omitempty"`
}

// Schema returns the JSON Schema of the configuration file.
func Schema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/bnema/startdash/config.schema.json"
	schema.Title = "startdash configuration"
	schema.Description = "Configuration schema for startdash, a terminal start page of draggable widgets"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

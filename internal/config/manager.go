package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// minWeatherInterval keeps polling within the forecast API's terms of use.
const minWeatherInterval = 10 * time.Minute

// reservedWidgetIDs are the window ids of the built-in widgets.
var reservedWidgetIDs = map[string]bool{
	"clock-component":    true,
	"links-component":    true,
	"weather-component":  true,
	"mealplan-component": true,
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config     *Config
	viper      *viper.Viper
	configFile string
	mu         sync.RWMutex
	callbacks  []func(*Config)
	watching   bool
	pending    *time.Timer
}

// NewManager creates a new configuration manager. An empty configFile selects
// $XDG_CONFIG_HOME/startdash/config.toml.
func NewManager(configFile string) (*Manager, error) {
	v := viper.New()

	if configFile == "" {
		path, err := GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		configFile = path
	}
	v.SetConfigFile(configFile)
	v.SetConfigType("toml")

	// STARTDASH_DATABASE_PATH, STARTDASH_WIDGETS_WEATHER_LATITUDE, ...
	v.SetEnvPrefix("STARTDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "STARTDASH_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind STARTDASH_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "STARTDASH_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind STARTDASH_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:      v,
		configFile: configFile,
		callbacks:  make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables. A missing
// file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.buildConfig()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.configFile,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf(
			"failed to read newly created config file: %w\nThe config file was created but couldn't be read. Please check the file format",
			rereadErr,
		)
	}
	return nil
}

// buildConfig unmarshals, completes and validates the viper state.
func (m *Manager) buildConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.configFile,
			err,
		)
	}
	if err := m.resolvePaths(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// resolvePaths fills empty paths with their XDG locations and anchors
// relative script files on the config directory.
func (m *Manager) resolvePaths(config *Config) error {
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}
	if config.Logging.LogDir == "" {
		logDir, err := GetLogDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		config.Logging.LogDir = logDir
	}
	if config.Print.ExportDir == "" {
		exportDir, err := GetExportDir()
		if err != nil {
			return fmt.Errorf("failed to get export directory: %w", err)
		}
		config.Print.ExportDir = exportDir
	}

	base := filepath.Dir(m.configFile)
	for i := range config.Widgets.Scripts {
		file := config.Widgets.Scripts[i].File
		if file != "" && !filepath.IsAbs(file) {
			config.Widgets.Scripts[i].File = filepath.Join(base, file)
		}
	}
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}

	switch strings.ToLower(strings.TrimSpace(config.Logging.Format)) {
	case "json":
		config.Logging.Format = "json"
	default:
		config.Logging.Format = defaultLogFormat
	}

	for i := range config.Widgets.Scripts {
		config.Widgets.Scripts[i].ID = strings.TrimSpace(config.Widgets.Scripts[i].ID)
	}
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// createDefaultConfig writes the defaults to the config file.
func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(filepath.Dir(m.configFile), dirPerm); err != nil {
		return err
	}
	if err := m.viper.SafeWriteConfigAs(m.configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	// Empty paths resolve to XDG locations in Load(). The keys are declared so
	// STARTDASH_DATABASE_PATH and friends are picked up.
	m.viper.SetDefault("database.path", "")
	m.viper.SetDefault("logging.log_dir", "")
	m.viper.SetDefault("print.export_dir", "")

	m.setLoggingDefaults(defaults)
	m.setWindowDefaults(defaults)
	m.setClockDefaults(defaults)
	m.setLinksDefaults(defaults)
	m.setWeatherDefaults(defaults)
	m.setMealPlanDefaults(defaults)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.max_size", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

func (m *Manager) setWindowDefaults(defaults *Config) {
	m.viper.SetDefault("window.min_visible_width", defaults.Window.MinVisibleWidth)
	m.viper.SetDefault("window.min_visible_height", defaults.Window.MinVisibleHeight)
	m.viper.SetDefault("window.min_width", defaults.Window.MinWidth)
	m.viper.SetDefault("window.min_height", defaults.Window.MinHeight)
	m.viper.SetDefault("window.initial_z", defaults.Window.InitialZ)
}

func (m *Manager) setPlacementDefaults(prefix string, p Placement) {
	m.viper.SetDefault(prefix+".placement.x", p.X)
	m.viper.SetDefault(prefix+".placement.y", p.Y)
	m.viper.SetDefault(prefix+".placement.width", p.Width)
	m.viper.SetDefault(prefix+".placement.height", p.Height)
}

func (m *Manager) setClockDefaults(defaults *Config) {
	m.viper.SetDefault("widgets.clock.enabled", defaults.Widgets.Clock.Enabled)
	m.viper.SetDefault("widgets.clock.hour_offset", defaults.Widgets.Clock.HourOffset)
	m.setPlacementDefaults("widgets.clock", defaults.Widgets.Clock.Placement)
}

func (m *Manager) setLinksDefaults(defaults *Config) {
	links := defaults.Widgets.Links
	m.viper.SetDefault("widgets.links.enabled", links.Enabled)
	m.viper.SetDefault("widgets.links.title", links.Title)
	m.viper.SetDefault("widgets.links.subtitle", links.Subtitle)
	m.viper.SetDefault("widgets.links.open_links", links.OpenLinks)
	m.viper.SetDefault("widgets.links.categories", categoriesToMaps(links.Categories))
	m.setPlacementDefaults("widgets.links", links.Placement)
}

func (m *Manager) setWeatherDefaults(defaults *Config) {
	weather := defaults.Widgets.Weather
	m.viper.SetDefault("widgets.weather.enabled", weather.Enabled)
	m.viper.SetDefault("widgets.weather.latitude", weather.Latitude)
	m.viper.SetDefault("widgets.weather.longitude", weather.Longitude)
	m.viper.SetDefault("widgets.weather.interval", weather.Interval.String())
	m.viper.SetDefault("widgets.weather.user_agent", weather.UserAgent)
	m.viper.SetDefault("widgets.weather.base_url", weather.BaseURL)
	m.viper.SetDefault("widgets.weather.details_url", weather.DetailsURL)
	m.setPlacementDefaults("widgets.weather", weather.Placement)
}

func (m *Manager) setMealPlanDefaults(defaults *Config) {
	m.viper.SetDefault("widgets.mealplan.enabled", defaults.Widgets.MealPlan.Enabled)
	m.setPlacementDefaults("widgets.mealplan", defaults.Widgets.MealPlan.Placement)
}

// categoriesToMaps converts link categories into plain maps so the TOML
// writer emits them as arrays of tables.
func categoriesToMaps(categories []LinkCategory) []map[string]any {
	out := make([]map[string]any, 0, len(categories))
	for _, category := range categories {
		links := make([]map[string]any, 0, len(category.Links))
		for _, link := range category.Links {
			links = append(links, map[string]any{"name": link.Name, "url": link.URL})
		}
		out = append(out, map[string]any{"title": category.Title, "links": links})
	}
	return out
}

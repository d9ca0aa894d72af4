// config.go: settings struct and functions to load and save the Perchlog configuration.
package conf

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var configFiles embed.FS

// Log rotation types
const (
	RotationDaily  = "daily"
	RotationWeekly = "weekly"
	RotationSize   = "size"
)

// LogConfig contains the configuration for log files.
type LogConfig struct {
	Enabled  bool   // true to enable this log
	Path     string // path to log file
	Rotation string // rotation type
	MaxSize  int64  // max size in bytes for size rotation
}

// MainSettings contains the main application settings.
type MainSettings struct {
	Name string    // name of the node
	Log  LogConfig // log file settings
}

// SQLiteSettings contains settings for the SQLite backend.
type SQLiteSettings struct {
	Enabled bool   // true to enable the SQLite backend
	Path    string // path to the database file
}

// FileSettings contains settings for the JSON file fallback backend.
type FileSettings struct {
	Enabled bool   // true to enable the fallback backend explicitly
	Path    string // path to the JSON collection file
}

// OutputSettings contains the storage backend settings.
type OutputSettings struct {
	SQLite SQLiteSettings // SQLite backend settings
	File   FileSettings   // fallback backend settings
}

// ResolverSettings controls the backend detection retry loop.
type ResolverSettings struct {
	Interval    time.Duration // delay between probe attempts
	MaxAttempts int           // bounded number of probe attempts
}

// Settings contains all application settings.
type Settings struct {
	Debug    bool   // true to enable debug messages
	DataPath string // application-private data directory

	Main     MainSettings
	Output   OutputSettings
	Resolver ResolverSettings
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration into the global settings instance.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := applyDataPathDefaults(settings); err != nil {
		return nil, err
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// LoadFrom reads the configuration from an explicit file path, bypassing the
// default search paths.
func LoadFrom(configPath string) (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	viper.SetConfigFile(configPath)
	setDefaultConfig()
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("fatal error reading config file: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := applyDataPathDefaults(settings); err != nil {
		return nil, err
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter
	// function defined in defaults.go
	setDefaultConfig()

	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create config with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// createDefaultConfig writes the embedded default config to the first config path.
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[0], "config.yaml")
	defaultConfig := getDefaultConfig()

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	log.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// getDefaultConfig returns the embedded default configuration as a string.
func getDefaultConfig() string {
	data, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		log.Fatalf("error reading embedded config file: %v", err)
	}
	return string(data)
}

// applyDataPathDefaults fills the data directory and the backend paths that
// were left empty in the config file.
func applyDataPathDefaults(settings *Settings) error {
	if settings.DataPath == "" {
		dataPath, err := DefaultDataPath()
		if err != nil {
			return fmt.Errorf("error resolving default data path: %w", err)
		}
		settings.DataPath = dataPath
	}
	if settings.Output.SQLite.Path == "" {
		settings.Output.SQLite.Path = filepath.Join(settings.DataPath, "sightings.db")
	}
	if settings.Output.File.Path == "" {
		settings.Output.File.Path = filepath.Join(settings.DataPath, "sightings.json")
	}
	if settings.Main.Log.Path == "" {
		settings.Main.Log.Path = filepath.Join(settings.DataPath, "logs", "perchlog.log")
	}
	return nil
}

// GetSettings returns the current settings instance, loading it on first use.
func GetSettings() *Settings {
	once.Do(func() {
		if settingsInstance == nil {
			if _, err := Load(); err != nil {
				log.Printf("error loading settings: %v", err)
			}
		}
	})
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// Setting is a shorthand for GetSettings.
func Setting() *Settings {
	return GetSettings()
}

// SaveYAMLConfig writes the current settings back to a YAML config file.
func SaveYAMLConfig(configPath string, settings *Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings to YAML: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// GetDefaultConfigPaths returns the OS specific config search paths.
func GetDefaultConfigPaths() ([]string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error resolving user config directory: %w", err)
	}
	return []string{
		filepath.Join(configDir, "perchlog"),
		".",
	}, nil
}

// DefaultDataPath returns the application-private data directory.
func DefaultDataPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error resolving user config directory: %w", err)
	}
	return filepath.Join(configDir, "perchlog", "data"), nil
}

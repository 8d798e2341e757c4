package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Career engine configuration
	Career CareerConfig `json:"career"`

	// Server configuration
	Server ServerConfig `json:"server"`
}

// CareerConfig holds career engine specific configuration
type CareerConfig struct {
	// Directory holding the jobs.json / crimes.json seed catalogs
	DataDir string `json:"data_dir"`

	// Path of the persisted career state file
	StatePath string `json:"state_path"`

	// Default starting money for a new character
	DefaultMoney int `json:"default_money"`

	// Default starting level for a new character
	DefaultLevel int `json:"default_level"`

	// Minutes of wall-clock time per simulated day
	DayCycleInterval int `json:"day_cycle_interval"`
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	// Server port
	Port string `json:"port"`

	// Log level (debug, info, warn, error)
	LogLevel string `json:"log_level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Career: CareerConfig{
			DataDir:          "./assets/data",
			StatePath:        "./data/career_state.json",
			DefaultMoney:     100,
			DefaultLevel:     1,
			DayCycleInterval: 30,
		},
		Server: ServerConfig{
			Port:     "8080",
			LogLevel: "info",
		},
	}
}

// LoadConfig loads configuration from a file, creating it with defaults if
// it does not exist, then applies environment overrides.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return config, err
	}

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Create default config file
		if err := SaveConfig(config, path); err != nil {
			return config, err
		}
		applyEnvOverrides(&config)
		return config, nil
	}

	// Read config file
	file, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}

	applyEnvOverrides(&config)
	return config, nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config Config, path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(config); err != nil {
		return err
	}

	return nil
}

func applyEnvOverrides(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Server.LogLevel = level
	}
	if dir := os.Getenv("CAREER_DATA_DIR"); dir != "" {
		config.Career.DataDir = dir
	}
	if path := os.Getenv("CAREER_STATE_PATH"); path != "" {
		config.Career.StatePath = path
	}
	if interval := os.Getenv("CAREER_DAY_INTERVAL"); interval != "" {
		if minutes, err := strconv.Atoi(interval); err == nil && minutes > 0 {
			config.Career.DayCycleInterval = minutes
		}
	}
}

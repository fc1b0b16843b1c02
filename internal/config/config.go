package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	DBPath             string `yaml:"db_path" json:"db_path"`                             // SQLite file holding the task snapshot
	ExportDir          string `yaml:"export_dir" json:"export_dir"`                       // Where tasks.json and reports are written
	ReportLinesPerPage int    `yaml:"report_lines_per_page" json:"report_lines_per_page"` // Line budget of one report page
	UpcomingDays       int    `yaml:"upcoming_days" json:"upcoming_days"`                 // Window of the "upcoming" bucket
	ConfirmDelete      bool   `yaml:"confirm_delete" json:"confirm_delete"`               // Require confirmation for delete

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// Dir returns ~/.taskpad
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".taskpad"), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dir, _ := Dir()
	dbPath, logPath, exportDir := "", "", "."
	if dir != "" {
		dbPath = filepath.Join(dir, "tasks.db")
		logPath = filepath.Join(dir, "logs", "taskpad.log")
	}

	return &Config{
		DBPath:             getEnv("TASKPAD_DB", dbPath),
		ExportDir:          getEnv("TASKPAD_EXPORT_DIR", exportDir),
		ReportLinesPerPage: 26,
		UpcomingDays:       7,
		ConfirmDelete:      true,
		LogLevel:           getEnv("TASKPAD_LOG_LEVEL", "INFO"),
		LogFile:            getEnv("TASKPAD_LOG_FILE", logPath),
		LogConsole:         getEnvBool("TASKPAD_LOG_CONSOLE", false),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

// Path returns the location of config.yaml
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads config from ~/.taskpad/config.yaml
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads config from path, returning defaults if the file does not exist
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()

	return cfg, nil
}

// normalize replaces nonsensical values with defaults
func (c *Config) normalize() {
	if c.ReportLinesPerPage < 10 {
		c.ReportLinesPerPage = 26
	}
	if c.UpcomingDays <= 0 {
		c.UpcomingDays = 7
	}
	if c.ExportDir == "" {
		c.ExportDir = "."
	}
}

// Save saves config to ~/.taskpad/config.yaml
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config as yaml to path
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Package config provides configuration loading and management for the
// viewer core. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"mprcore/pkg/mpr"
)

// Config represents the viewer configuration loaded from YAML
type Config struct {
	// View parameters control the plane-to-axis convention
	View struct {
		// AxialAxis, SagittalAxis and CoronalAxis name the voxel axis
		// (x, y or z) each plane's slice index runs along. Together
		// they must cover all three axes.
		AxialAxis    string `yaml:"axialAxis"`
		SagittalAxis string `yaml:"sagittalAxis"`
		CoronalAxis  string `yaml:"coronalAxis"`
	} `yaml:"view"`

	// Picker parameters
	Picker struct {
		// FallbackDistanceMM is where a measurement point lands along
		// the camera ray when the renderer reports no intersection
		FallbackDistanceMM float64 `yaml:"fallbackDistanceMM"`
	} `yaml:"picker"`

	// Measurement parameters
	Measurement struct {
		// ProbeRadiusMM is the neighborhood half-width for density
		// probe statistics; 0 disables them
		ProbeRadiusMM float64 `yaml:"probeRadiusMM"`
	} `yaml:"measurement"`

	// Logging parameters
	Logging struct {
		// FilePath is the rotating log file location; empty disables
		// file logging
		FilePath string `yaml:"filePath"`

		// MaxSizeMB is the log rotation threshold
		MaxSizeMB int `yaml:"maxSizeMB"`

		// MaxBackups is how many rotated log files to keep
		MaxBackups int `yaml:"maxBackups"`

		// Verbose controls the level of console logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"logging"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Radiological convention: axial along z, sagittal along x,
	// coronal along y
	cfg.View.AxialAxis = "z"
	cfg.View.SagittalAxis = "x"
	cfg.View.CoronalAxis = "y"

	cfg.Picker.FallbackDistanceMM = 100.0
	cfg.Measurement.ProbeRadiusMM = 2.0

	cfg.Logging.FilePath = "logs/mprcore.log"
	cfg.Logging.MaxSizeMB = 10
	cfg.Logging.MaxBackups = 3
	cfg.Logging.Verbose = false

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

// AxisMapping builds the plane-to-axis mapping from the configured axis
// names. The in-plane screen axes are the two remaining voxel axes in
// x, y, z order: u maps to the lower one, v to the higher.
func (cfg *Config) AxisMapping() (mpr.AxisMapping, error) {
	var mapping mpr.AxisMapping

	normals := [3]string{
		mpr.Axial:    cfg.View.AxialAxis,
		mpr.Sagittal: cfg.View.SagittalAxis,
		mpr.Coronal:  cfg.View.CoronalAxis,
	}

	for plane := mpr.Axial; plane <= mpr.Coronal; plane++ {
		axis, err := parseAxis(normals[plane])
		if err != nil {
			return mapping, fmt.Errorf("%s plane: %w", plane, err)
		}
		mapping.Normal[plane] = axis

		inPlane := [3][2]int{{1, 2}, {0, 2}, {0, 1}}[axis]
		mapping.Horizontal[plane] = inPlane[0]
		mapping.Vertical[plane] = inPlane[1]
	}

	if err := mapping.Validate(); err != nil {
		return mapping, fmt.Errorf("invalid axis convention: %w", err)
	}
	return mapping, nil
}

func parseAxis(name string) (int, error) {
	switch name {
	case "x", "X":
		return 0, nil
	case "y", "Y":
		return 1, nil
	case "z", "Z":
		return 2, nil
	default:
		return 0, fmt.Errorf("unknown axis %q (must be x, y or z)", name)
	}
}

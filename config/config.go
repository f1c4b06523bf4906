package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"systemsensors/sensor"
	"systemsensors/util"
)

const (
	DefaultPort           = 1883
	DefaultUpdateInterval = 60
)

var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrMissingCredential    = errors.New("missing credential")
	ErrInvalidField         = errors.New("invalid field")
)

// FieldError reports which settings field failed validation.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s not defined correctly in settings file: %s", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Settings contains all values from the settings file.
type Settings struct {
	DeviceName     string         `yaml:"deviceName" toml:"deviceName"`
	ClientID       string         `yaml:"client_id" toml:"client_id"`
	Timezone       string         `yaml:"timezone" toml:"timezone"`
	MQTT           *MQTT          `yaml:"mqtt" toml:"mqtt"`
	UpdateInterval int            `yaml:"update_interval" toml:"update_interval"`
	SensorTimeout  int            `yaml:"sensor_timeout" toml:"sensor_timeout"`
	WifiInterface  string         `yaml:"wifi_interface" toml:"wifi_interface"`
	LogLevel       string         `yaml:"log_level" toml:"log_level"`
	LogFormat      string         `yaml:"log_format" toml:"log_format"`
	Sensors        SensorSettings `yaml:"sensors" toml:"sensors"`

	// PowerIntegerState is deprecated and only read to warn about it.
	PowerIntegerState *bool `yaml:"power_integer_state" toml:"power_integer_state"`

	location *time.Location
}

// MQTT holds the broker connection settings.
type MQTT struct {
	Hostname string  `yaml:"hostname" toml:"hostname"`
	Port     int     `yaml:"port" toml:"port"`
	User     string  `yaml:"user" toml:"user"`
	Password *string `yaml:"password" toml:"password"`
}

// Load reads the settings file at path. Files ending in .toml are
// parsed as TOML, everything else as YAML.
func Load(path string) (*Settings, error) {
	home, err := util.NewHomePath(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(home.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	var s Settings
	if strings.EqualFold(filepath.Ext(home.Path), ".toml") {
		if _, err := toml.Decode(string(b), &s); err != nil {
			return nil, fmt.Errorf("failed to parse settings file: %w", err)
		}
		return &s, nil
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return &s, nil
}

// ApplyDefaults fills in every value that was not configured.
// Each key in builtin is enabled unless the file says otherwise.
func (s *Settings) ApplyDefaults(builtin []string) {
	if s.UpdateInterval == 0 {
		s.UpdateInterval = DefaultUpdateInterval
	}
	if s.SensorTimeout == 0 {
		s.SensorTimeout = s.UpdateInterval
	}
	if s.MQTT != nil && s.MQTT.Port == 0 {
		s.MQTT.Port = DefaultPort
	}
	if s.WifiInterface == "" {
		s.WifiInterface = "wlan0"
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	if s.LogFormat == "" {
		s.LogFormat = "console"
	}
	if s.Sensors.Enabled == nil {
		s.Sensors.Enabled = make(map[string]bool)
	}
	for _, key := range builtin {
		if _, ok := s.Sensors.Enabled[key]; !ok {
			s.Sensors.Enabled[key] = true
		}
	}
	if s.Sensors.ExternalDrives == nil {
		s.Sensors.ExternalDrives = make(map[string]string)
	}
	if s.Sensors.Smartctl == nil {
		s.Sensors.Smartctl = make(map[string]string)
	}
	if s.Sensors.Scripts == nil {
		s.Sensors.Scripts = make(map[string]sensor.ScriptConfig)
	}
}

// Validate checks that all required values are present.
func (s *Settings) Validate() error {
	if s.MQTT == nil {
		return &FieldError{Field: "mqtt", Err: ErrMissingRequiredField}
	}
	if s.Timezone == "" {
		return &FieldError{Field: "timezone", Err: ErrMissingRequiredField}
	}
	if s.DeviceName == "" {
		return &FieldError{Field: "deviceName", Err: ErrMissingRequiredField}
	}
	if s.ClientID == "" {
		return &FieldError{Field: "client_id", Err: ErrMissingRequiredField}
	}
	if s.MQTT.Hostname == "" {
		return &FieldError{Field: "mqtt.hostname", Err: ErrMissingRequiredField}
	}
	if s.MQTT.User != "" && s.MQTT.Password == nil {
		return &FieldError{Field: "mqtt.password", Err: ErrMissingCredential}
	}
	if s.MQTT.Port < 0 || s.MQTT.Port > 65535 {
		return &FieldError{Field: "mqtt.port", Err: ErrInvalidField}
	}
	if s.UpdateInterval < 0 {
		return &FieldError{Field: "update_interval", Err: ErrInvalidField}
	}
	if s.SensorTimeout < 0 {
		return &FieldError{Field: "sensor_timeout", Err: ErrInvalidField}
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return &FieldError{Field: "timezone", Err: fmt.Errorf("%w: %s", ErrInvalidField, err)}
	}
	s.location = loc
	return nil
}

// Enabled reports whether the sensor key is enabled; unknown keys are.
func (s *Settings) Enabled(key string) bool {
	enabled, ok := s.Sensors.Enabled[key]
	return !ok || enabled
}

// Location returns the configured time zone (Local before Validate).
func (s *Settings) Location() *time.Location {
	if s.location == nil {
		return time.Local
	}
	return s.location
}

// DeviceID is the device name as used in topics and unique ids.
func (s *Settings) DeviceID() string {
	return strings.ToLower(strings.ReplaceAll(s.DeviceName, " ", ""))
}

func (s *Settings) Interval() time.Duration {
	return time.Duration(s.UpdateInterval) * time.Second
}

func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.SensorTimeout) * time.Second
}

// Deprecations lists warnings about options that are no longer used.
func (s *Settings) Deprecations() []string {
	var warnings []string
	if s.PowerIntegerState != nil {
		warnings = append(warnings, "power_integer_state is deprecated, please remove this option: power state is now a binary_sensor")
	}
	return warnings
}

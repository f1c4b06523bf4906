package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"systemsensors/sensor"
)

const (
	keyExternalDrives = "external_drives"
	keySmartctl       = "smartctl"
	keyScripts        = "scripts"
)

// SensorSettings is the "sensors" section. Besides the per-sensor
// enable flags it holds the maps that register additional sensors.
type SensorSettings struct {
	Enabled        map[string]bool
	ExternalDrives map[string]string
	Smartctl       map[string]string
	Scripts        map[string]sensor.ScriptConfig
}

func (s *SensorSettings) UnmarshalYAML(value *yaml.Node) error {
	var flags map[string]yaml.Node
	if err := value.Decode(&flags); err != nil {
		return err
	}
	s.Enabled = make(map[string]bool)
	for key, node := range flags {
		var err error
		switch key {
		case keyExternalDrives:
			err = node.Decode(&s.ExternalDrives)
		case keySmartctl:
			// "smartctl: false" disables SMART monitoring altogether.
			var enabled bool
			if node.Kind == yaml.ScalarNode && node.Decode(&enabled) == nil {
				s.Enabled[key] = enabled
				continue
			}
			err = node.Decode(&s.Smartctl)
		case keyScripts:
			err = node.Decode(&s.Scripts)
		default:
			var enabled bool
			err = node.Decode(&enabled)
			s.Enabled[key] = enabled
		}
		if err != nil {
			return fmt.Errorf("invalid value for sensors.%s: %w", key, err)
		}
	}
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (s *SensorSettings) UnmarshalTOML(data interface{}) error {
	table, ok := data.(map[string]interface{})
	if !ok {
		return fmt.Errorf("sensors must be a table, got %T", data)
	}
	s.Enabled = make(map[string]bool)
	for key, raw := range table {
		switch key {
		case keyExternalDrives:
			m, err := stringMap(key, raw)
			if err != nil {
				return err
			}
			s.ExternalDrives = m
		case keySmartctl:
			if enabled, ok := raw.(bool); ok {
				s.Enabled[key] = enabled
				continue
			}
			m, err := stringMap(key, raw)
			if err != nil {
				return err
			}
			s.Smartctl = m
		case keyScripts:
			scripts, err := scriptMap(raw)
			if err != nil {
				return err
			}
			s.Scripts = scripts
		default:
			enabled, ok := raw.(bool)
			if !ok {
				return fmt.Errorf("invalid value for sensors.%s: expected bool, got %T", key, raw)
			}
			s.Enabled[key] = enabled
		}
	}
	return nil
}

// Labels returns the keys of m in sorted order, so dynamic sensors are
// registered deterministically.
func Labels[V any](m map[string]V) []string {
	labels := make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func stringMap(key string, raw interface{}) (map[string]string, error) {
	table, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid value for sensors.%s: expected table, got %T", key, raw)
	}
	m := make(map[string]string, len(table))
	for label, v := range table {
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("invalid value for sensors.%s.%s: expected string, got %T", key, label, v)
		}
		m[label] = str
	}
	return m, nil
}

func scriptMap(raw interface{}) (map[string]sensor.ScriptConfig, error) {
	table, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid value for sensors.%s: expected table, got %T", keyScripts, raw)
	}
	scripts := make(map[string]sensor.ScriptConfig, len(table))
	for key := range table {
		fields, err := stringMap(keyScripts+"."+key, table[key])
		if err != nil {
			return nil, err
		}
		scripts[key] = sensor.ScriptConfig{
			Path:              fields["path"],
			Name:              fields["name"],
			Icon:              fields["icon"],
			Type:              fields["type"],
			UnitOfMeasurement: fields["unit_of_measurement"],
			DeviceClass:       fields["device_class"],
		}
	}
	return scripts, nil
}

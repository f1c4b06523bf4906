package entity

import (
	"context"
	"fmt"
)

// Kind is the Home Assistant entity platform a sensor is announced as.
type Kind string

const (
	KindSensor       Kind = "sensor"
	KindBinarySensor Kind = "binary_sensor"
)

// Runner is used to read a single metric from the host.
type Runner interface {
	Run(ctx context.Context) (string, error)
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func(ctx context.Context) (string, error)

func (f RunnerFunc) Run(ctx context.Context) (string, error) {
	return f(ctx)
}

// Sensor describes one metric: its Home Assistant attributes and the
// Runner that produces its value.
type Sensor struct {
	Key         string
	Name        string
	Unit        string
	Icon        string
	DeviceClass string
	Kind        Kind
	// Requires names an optional host capability. Sensors with an
	// unavailable capability are disabled at startup.
	Requires Capability
	Runner   Runner
}

func (s Sensor) String() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.Key)
}

// Update runs the Sensor's Runner and appends the value to outputs.
// Failures are returned to the caller and nothing is appended.
func (s Sensor) Update(ctx context.Context, outputs *Outputs) error {
	if s.Runner == nil {
		return fmt.Errorf("sensor %s has no runner", s)
	}
	value, err := s.Runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to run sensor %s: %w", s, err)
	}
	outputs.Add(Output{Sensor: s, Value: value})
	return nil
}

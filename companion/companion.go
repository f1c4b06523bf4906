package companion

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"systemsensors/api"
	"systemsensors/entity"
	"systemsensors/logger"
)

type Companion struct {
	api      *api.API
	registry *entity.Registry
	gate     entity.Gate
	// timeout bounds a single sensor run.
	timeout time.Duration
	log     zerolog.Logger
}

func NewCompanion(api *api.API, registry *entity.Registry, gate entity.Gate, timeout time.Duration) *Companion {
	return &Companion{
		api:      api,
		registry: registry,
		gate:     gate,
		timeout:  timeout,
		log:      logger.WithComponent("companion"),
	}
}

// Collect runs every active sensor in registration order. Sensors that
// fail are logged and left out of the result.
func (c *Companion) Collect(ctx context.Context) entity.Outputs {
	outputs := entity.NewOutputs()
	for _, sensor := range c.registry.Active(c.gate) {
		c.update(ctx, sensor, &outputs)
	}
	return outputs
}

func (c *Companion) update(ctx context.Context, sensor entity.Sensor, outputs *entity.Outputs) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := sensor.Update(ctx, outputs); err != nil {
		c.log.Warn().Err(err).Str("sensor", sensor.Key).Msg("skipping sensor")
	}
}

// UpdateSensorData collects all values and publishes them as one state
// payload.
func (c *Companion) UpdateSensorData(ctx context.Context) error {
	outputs := c.Collect(ctx)
	state := outputs.State()
	if err := c.api.UpdateSensorData(state); err != nil {
		return err
	}
	c.log.Debug().Int("sensors", state.Len()).Msg("sensor data published")
	return nil
}

// RegisterSensors publishes the discovery documents of all active
// sensors and marks the device as online.
func (c *Companion) RegisterSensors() error {
	err := c.api.RegisterSensors(c.registry.Active(c.gate))
	return errors.Join(err, c.MarkOnline())
}

// RemoveDisabledSensors clears the discovery documents of sensors that
// are disabled, so entities from earlier runs disappear.
func (c *Companion) RemoveDisabledSensors() error {
	var errs []error
	for _, sensor := range c.registry.Inactive(c.gate) {
		if err := c.api.UnregisterSensor(sensor); err != nil {
			errs = append(errs, err)
			continue
		}
		c.log.Debug().Str("sensor", sensor.Key).Msg("removed discovery config")
	}
	return errors.Join(errs...)
}

// Run publishes sensor data right away and then once per interval until
// ctx is cancelled. A cycle that has started always runs to completion;
// ticks missed while a cycle runs are dropped.
func (c *Companion) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return
		}
		if err := c.UpdateSensorData(context.WithoutCancel(ctx)); err != nil {
			c.log.Error().Err(err).Msg("failed to update sensor data")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// MarkOnline publishes the retained "online" availability.
func (c *Companion) MarkOnline() error {
	return c.api.UpdateAvailability(true)
}

// Shutdown marks the device as offline.
func (c *Companion) Shutdown() error {
	return c.api.UpdateAvailability(false)
}

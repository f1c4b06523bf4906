package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"systemsensors/api"
	"systemsensors/companion"
	"systemsensors/config"
	"systemsensors/logger"
	"systemsensors/sensor"
	"systemsensors/util"
)

const osReleaseFile = "/etc/os-release"

func main() {
	flags := pflag.NewFlagSet("system-sensors", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: system-sensors <settings file>")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(2)
	}

	settings, err := loadSettings(flags.Arg(0))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load settings")
	}
	if err = logger.Init(logger.Config{Level: settings.LogLevel, Format: settings.LogFormat}); err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize logger")
	}
	for _, warning := range settings.Deprecations() {
		logger.Warn().Msg(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, settings); err != nil {
		logger.Fatal().Err(err).Msg("system sensors stopped")
	}
}

func loadSettings(path string) (*config.Settings, error) {
	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	settings.ApplyDefaults(builtinKeys())
	if err = settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func run(ctx context.Context, settings *config.Settings) error {
	probe := sensor.NewHostProbe()
	registry := buildRegistry(settings, environment{
		release:  sensor.ReadOSRelease(osReleaseFile),
		location: settings.Location(),
		clock:    util.RealClock(),
		wifi:     settings.WifiInterface,
		alarm:    probe.UnderVoltageAlarm,
	})
	settings.DisableUnavailable(registry.All(), probe, logger.WithComponent("config"))

	var c *companion.Companion
	var password string
	if settings.MQTT.Password != nil {
		password = *settings.MQTT.Password
	}
	client := api.NewClient(api.ClientConfig{
		Host:     settings.MQTT.Hostname,
		Port:     settings.MQTT.Port,
		ClientID: settings.ClientID,
		User:     settings.MQTT.User,
		Password: password,
		OnConnect: func() {
			if err := c.MarkOnline(); err != nil {
				logger.Error().Err(err).Msg("failed to publish availability")
			}
		},
		OnHassOnline: func() {
			if err := c.RegisterSensors(); err != nil {
				logger.Error().Err(err).Msg("failed to register sensors")
			}
		},
	}, api.AvailabilityTopic(settings.DeviceID()))
	c = companion.NewCompanion(api.NewAPI(client, settings.DeviceName, settings.DeviceID()), registry, settings, settings.Timeout())

	if err := api.Connect(ctx, client, api.RetryDelay); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	defer client.Disconnect(250)

	if err := c.RemoveDisabledSensors(); err != nil {
		logger.Error().Err(err).Msg("failed to remove disabled sensors")
	}
	if err := c.RegisterSensors(); err != nil {
		logger.Error().Err(err).Msg("failed to register sensors")
	}
	logger.Info().
		Int("sensors", len(registry.Active(settings))).
		Dur("interval", settings.Interval()).
		Msg("publishing sensor data")

	c.Run(ctx, settings.Interval())

	logger.Info().Msg("shutting down")
	if err := c.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("failed to publish offline availability")
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"systemsensors/config"
	"systemsensors/entity"
	"systemsensors/sensor"
	"systemsensors/sensor/cpu"
	"systemsensors/util"
)

// loadUnit is a zero width space. Home Assistant only draws a graph for
// sensors with a unit.
const loadUnit = "\u200b"

// environment contains the host facts the built-in sensors depend on.
type environment struct {
	release  sensor.OSRelease
	location *time.Location
	clock    util.Clock
	wifi     string
	// alarm resolves the under-voltage alarm file on first use.
	alarm func() string
}

// builtinSensors returns the built-in sensor catalog in publish order.
func builtinSensors(env environment) []entity.Sensor {
	raspberry := env.release.IsRaspberry()
	return []entity.Sensor{
		{
			Key:         "temperature",
			Name:        "Temperature",
			DeviceClass: "temperature",
			Unit:        "°C",
			Icon:        "thermometer",
			Runner:      cpu.NewCPUTemp(raspberry),
		},
		{
			Key:    "clock_speed",
			Name:   "Clock Speed",
			Unit:   "MHz",
			Runner: cpu.NewClockSpeed(raspberry),
		},
		{
			Key:    "disk_use",
			Name:   "Disk Use",
			Unit:   "%",
			Icon:   "micro-sd",
			Runner: sensor.NewDiskUsage("/"),
		},
		{
			Key:    "memory_use",
			Name:   "Memory Use",
			Unit:   "%",
			Icon:   "memory",
			Runner: sensor.NewMemory(),
		},
		{
			Key:    "cpu_usage",
			Name:   "CPU Usage",
			Unit:   "%",
			Icon:   "memory",
			Runner: cpu.NewCPUUsage(),
		},
		{
			Key:    "load_1m",
			Name:   "Load 1m",
			Unit:   loadUnit,
			Icon:   "cpu-64-bit",
			Runner: sensor.NewLoadAVG(0),
		},
		{
			Key:    "load_5m",
			Name:   "Load 5m",
			Unit:   loadUnit,
			Icon:   "cpu-64-bit",
			Runner: sensor.NewLoadAVG(1),
		},
		{
			Key:    "load_15m",
			Name:   "Load 15m",
			Unit:   loadUnit,
			Icon:   "cpu-64-bit",
			Runner: sensor.NewLoadAVG(2),
		},
		{
			Key:    "net_tx",
			Name:   "Network Upload",
			Unit:   "Kbps",
			Icon:   "server-network",
			Runner: sensor.NewNetwork(sensor.Transmit, env.clock, nil),
		},
		{
			Key:    "net_rx",
			Name:   "Network Download",
			Unit:   "Kbps",
			Icon:   "server-network",
			Runner: sensor.NewNetwork(sensor.Receive, env.clock, nil),
		},
		{
			Key:    "swap_usage",
			Name:   "Swap Usage",
			Unit:   "%",
			Icon:   "harddisk",
			Runner: sensor.NewSwap(),
		},
		{
			Key:         "power_status",
			Name:        "Under Voltage",
			DeviceClass: "problem",
			Kind:        entity.KindBinarySensor,
			Requires:    entity.CapabilityUnderVoltage,
			Runner:      underVoltage(env.alarm),
		},
		{
			Key:         "last_boot",
			Name:        "Last Boot",
			DeviceClass: "timestamp",
			Icon:        "clock",
			Runner:      sensor.NewLastBoot(env.location),
		},
		{
			Key:    "hostname",
			Name:   "Hostname",
			Icon:   "card-account-details",
			Runner: sensor.NewHostname(),
		},
		{
			Key:    "host_ip",
			Name:   "Host IP",
			Icon:   "lan",
			Runner: sensor.NewHostIP(),
		},
		{
			Key:    "host_os",
			Name:   "Host OS",
			Icon:   "linux",
			Runner: sensor.NewHostOS(env.release),
		},
		{
			Key:    "host_arch",
			Name:   "Host Architecture",
			Icon:   "chip",
			Runner: sensor.NewHostArch(),
		},
		{
			Key:         "last_message",
			Name:        "Last Message",
			DeviceClass: "timestamp",
			Icon:        "clock-check",
			Runner:      sensor.NewLastMessage(env.location, env.clock),
		},
		{
			Key:      "updates",
			Name:     "Updates",
			Icon:     "cellphone-arrow-down",
			Requires: entity.CapabilityUpdates,
			Runner:   sensor.NewUpdates(env.clock, nil),
		},
		{
			Key:         "wifi_strength",
			Name:        "Wifi Strength",
			DeviceClass: "signal_strength",
			Unit:        "dBm",
			Icon:        "wifi",
			Runner:      sensor.NewWifiStrength(env.wifi),
		},
		{
			Key:         "wifi_ssid",
			Name:        "Wifi SSID",
			DeviceClass: "signal_strength",
			Icon:        "wifi",
			Runner:      sensor.NewWifiSSID(),
		},
	}
}

func underVoltage(alarm func() string) entity.Runner {
	return entity.RunnerFunc(func(ctx context.Context) (string, error) {
		if alarm == nil {
			return "", errors.New("under-voltage alarm not configured")
		}
		return sensor.NewUnderVoltage(alarm()).Run(ctx)
	})
}

// builtinKeys lists the keys of all built-in sensors.
func builtinKeys() []string {
	var keys []string
	for _, s := range builtinSensors(environment{}) {
		keys = append(keys, s.Key)
	}
	return keys
}

// buildRegistry registers the built-in sensors followed by the ones
// configured in the settings file.
func buildRegistry(settings *config.Settings, env environment) *entity.Registry {
	registry := entity.NewRegistry()
	for _, s := range builtinSensors(env) {
		registry.Register(s)
	}
	addExternalDrives(registry, settings)
	addSmartctl(registry, settings)
	addScripts(registry, settings)
	return registry
}

func addExternalDrives(registry *entity.Registry, settings *config.Settings) {
	for _, label := range config.Labels(settings.Sensors.ExternalDrives) {
		registry.Register(entity.Sensor{
			Key:    "disk_use_" + strings.ToLower(label),
			Name:   "Disk Use " + label,
			Unit:   "%",
			Icon:   "harddisk",
			Runner: sensor.NewDiskUsage(util.ExpandHome(settings.Sensors.ExternalDrives[label])),
		})
	}
}

func addSmartctl(registry *entity.Registry, settings *config.Settings) {
	if !settings.Enabled("smartctl") {
		return
	}
	for _, label := range config.Labels(settings.Sensors.Smartctl) {
		device := settings.Sensors.Smartctl[label]
		registry.Register(entity.Sensor{
			Key:         "hdd_temp_" + strings.ToLower(label),
			Name:        "disk temperature " + label,
			DeviceClass: "temperature",
			Unit:        "°C",
			Icon:        "thermometer",
			Requires:    entity.CapabilitySmart,
			Runner:      sensor.NewDiskTemperature(device),
		})
		registry.Register(entity.Sensor{
			Key:      "TBW_" + strings.ToLower(label),
			Name:     "TBW " + label,
			Unit:     "GiB",
			Icon:     "harddisk",
			Requires: entity.CapabilitySmart,
			Runner:   sensor.NewDiskWritten(device),
		})
	}
}

func addScripts(registry *entity.Registry, settings *config.Settings) {
	for _, key := range config.Labels(settings.Sensors.Scripts) {
		script := settings.Sensors.Scripts[key]
		name := script.Name
		if name == "" {
			name = key
		}
		registry.Register(entity.Sensor{
			Key:         key,
			Name:        name,
			Unit:        script.UnitOfMeasurement,
			Icon:        script.Icon,
			DeviceClass: script.DeviceClass,
			Kind:        script.Kind(),
			Runner:      sensor.NewScriptRunner(script),
		})
	}
}

package sensor

import (
	"bufio"
	"context"
	"strings"

	"systemsensors/entity"
	"systemsensors/util"
)

// ScriptConfig contains the definition of a custom script sensor.
type ScriptConfig struct {
	Path              string `yaml:"path" toml:"path"`
	Name              string `yaml:"name" toml:"name"`
	Icon              string `yaml:"icon" toml:"icon"`
	Type              string `yaml:"type" toml:"type"`
	UnitOfMeasurement string `yaml:"unit_of_measurement" toml:"unit_of_measurement"`
	DeviceClass       string `yaml:"device_class" toml:"device_class"`
}

// Kind returns the entity kind the script is announced as.
func (c ScriptConfig) Kind() entity.Kind {
	if c.Type == string(entity.KindBinarySensor) {
		return entity.KindBinarySensor
	}
	return entity.KindSensor
}

// Script runs a user supplied executable. The first line of its output
// is the state, further lines are ignored.
type Script struct {
	cfg ScriptConfig
}

func NewScriptRunner(cfg ScriptConfig) *Script {
	cfg.Path = util.ExpandHome(cfg.Path)
	return &Script{
		cfg: cfg,
	}
}

func (s Script) Run(ctx context.Context) (string, error) {
	out, err := util.Command(ctx, s.cfg.Path)
	if err != nil {
		return "", err
	}
	return s.process(out), nil
}

func (s Script) process(output string) string {
	var line string
	sc := bufio.NewScanner(strings.NewReader(output))
	if sc.Scan() {
		line = strings.TrimSpace(sc.Text())
	}
	if s.cfg.Kind() != entity.KindBinarySensor {
		return line
	}
	// Binary sensor -> convert string to ON/OFF
	switch strings.ToLower(line) {
	case "on", "true", "yes", "1":
		return "ON"
	default:
		return "OFF"
	}
}

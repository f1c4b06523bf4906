package entity

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type gateMap map[string]bool

func (g gateMap) Enabled(key string) bool {
	enabled, ok := g[key]
	return !ok || enabled
}

func constant(value string) Runner {
	return RunnerFunc(func(context.Context) (string, error) { return value, nil })
}

func TestRegistryOrderAndOverwrite(t *testing.T) {
	r := NewRegistry()
	r.Register(Sensor{Key: "temperature", Name: "Temperature", Runner: constant("40.1")})
	r.Register(Sensor{Key: "hostname", Name: "Hostname", Runner: constant("pi")})
	r.Register(Sensor{Key: "power_status", Name: "Under Voltage", Kind: KindBinarySensor, Runner: constant("OFF")})
	r.Register(Sensor{Key: "temperature", Name: "CPU Temperature", Runner: constant("41.0")})

	require.Equal(t, []string{"temperature", "hostname", "power_status"}, r.Keys())
	require.Equal(t, 3, r.Len())

	s, ok := r.Get("temperature")
	require.True(t, ok)
	require.Equal(t, "CPU Temperature", s.Name)
	require.Equal(t, KindSensor, s.Kind)

	s, _ = r.Get("power_status")
	require.Equal(t, KindBinarySensor, s.Kind)
}

func TestRegistryActive(t *testing.T) {
	r := NewRegistry()
	for _, key := range []string{"a", "b", "c", "d"} {
		r.Register(Sensor{Key: key, Runner: constant(key)})
	}
	gate := gateMap{"b": false, "c": true}

	var active []string
	for _, s := range r.Active(gate) {
		active = append(active, s.Key)
	}
	require.Equal(t, []string{"a", "c", "d"}, active)

	inactive := r.Inactive(gate)
	require.Len(t, inactive, 1)
	require.Equal(t, "b", inactive[0].Key)

	require.Len(t, r.Active(nil), 4)
	require.Empty(t, r.Inactive(nil))
}

func TestSensorUpdate(t *testing.T) {
	outputs := NewOutputs()

	ok := Sensor{Key: "hostname", Name: "Hostname", Runner: constant("pi")}
	require.NoError(t, ok.Update(context.Background(), &outputs))

	failing := Sensor{Key: "wifi_ssid", Name: "Wifi SSID", Runner: RunnerFunc(func(context.Context) (string, error) {
		return "", errors.New("iwgetid not found")
	})}
	err := failing.Update(context.Background(), &outputs)
	require.Error(t, err)
	require.Contains(t, err.Error(), "wifi_ssid")

	require.Error(t, Sensor{Key: "empty"}.Update(context.Background(), &outputs))

	require.Len(t, outputs.Data, 1)
	require.Equal(t, "pi", outputs.Data[0].Value)
}

func TestStateMarshalJSON(t *testing.T) {
	s := NewState()
	s.Set("temperature", "48.3")
	s.Set("wifi_ssid", `my "home" net`)
	s.Set("cpu_usage", "3.1")
	s.Set("temperature", "48.4")

	b, err := json.Marshal(s)
	require.NoError(t, err)
	require.Equal(t, `{"temperature":"48.4","wifi_ssid":"my \"home\" net","cpu_usage":"3.1"}`, string(b))

	b, err = json.Marshal(NewState())
	require.NoError(t, err)
	require.Equal(t, `{}`, string(b))
}

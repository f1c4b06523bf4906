package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"systemsensors/entity"
)

const (
	DiscoveryPrefix = "homeassistant"
	StatusTopic     = "hass/status"
	Manufacturer    = "SystemSensors"

	PayloadOnline  = "online"
	PayloadOffline = "offline"

	// QoS is used for every publish.
	QoS byte = 1
)

// DiscoveryRequest is the retained document that lets Home Assistant
// register one entity. Field order matches the published JSON.
type DiscoveryRequest struct {
	DeviceClass       string `json:"device_class,omitempty"`
	Name              string `json:"name"`
	StateTopic        string `json:"state_topic"`
	UnitOfMeasurement string `json:"unit_of_measurement,omitempty"`
	ValueTemplate     string `json:"value_template"`
	UniqueID          string `json:"unique_id"`
	AvailabilityTopic string `json:"availability_topic"`
	Device            Device `json:"device"`
	Icon              string `json:"icon,omitempty"`
}

// Device groups all entities of this host in Home Assistant.
type Device struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Model        string   `json:"model"`
	Manufacturer string   `json:"manufacturer"`
}

// Publisher is the part of the MQTT client the API needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// API publishes sensor data using the Home Assistant MQTT conventions.
type API struct {
	// DeviceName is the display name, DeviceID its topic-safe form.
	DeviceName string
	DeviceID   string
	client     Publisher
	timeout    time.Duration
}

func NewAPI(client Publisher, deviceName, deviceID string) *API {
	return &API{
		DeviceName: deviceName,
		DeviceID:   deviceID,
		client:     client,
		timeout:    10 * time.Second,
	}
}

func (api *API) StateTopic() string {
	return fmt.Sprintf("system-sensors/sensor/%s/state", api.DeviceID)
}

func (api *API) AvailabilityTopic() string {
	return AvailabilityTopic(api.DeviceID)
}

// AvailabilityTopic is also needed for the last will, before an API
// exists.
func AvailabilityTopic(deviceID string) string {
	return fmt.Sprintf("system-sensors/sensor/%s/availability", deviceID)
}

func (api *API) DiscoveryTopic(sensor entity.Sensor) string {
	kind := sensor.Kind
	if kind == "" {
		kind = entity.KindSensor
	}
	return fmt.Sprintf("%s/%s/%s/%s/config", DiscoveryPrefix, kind, api.DeviceID, sensor.Key)
}

// Discovery builds the discovery document of sensor.
func (api *API) Discovery(sensor entity.Sensor) DiscoveryRequest {
	req := DiscoveryRequest{
		DeviceClass:       sensor.DeviceClass,
		Name:              fmt.Sprintf("%s %s", api.DeviceName, sensor.Name),
		StateTopic:        api.StateTopic(),
		UnitOfMeasurement: sensor.Unit,
		ValueTemplate:     fmt.Sprintf("{{value_json.%s}}", sensor.Key),
		UniqueID:          fmt.Sprintf("%s_sensor_%s", api.DeviceID, sensor.Key),
		AvailabilityTopic: api.AvailabilityTopic(),
		Device: Device{
			Identifiers:  []string{api.DeviceID + "_sensor"},
			Name:         api.DeviceName + " Sensors",
			Model:        api.DeviceName,
			Manufacturer: Manufacturer,
		},
	}
	if sensor.Icon != "" {
		req.Icon = "mdi:" + sensor.Icon
	}
	return req
}

func (api *API) publish(topic string, retained bool, payload []byte) error {
	token := api.client.Publish(topic, QoS, retained, payload)
	if !token.WaitTimeout(api.timeout) {
		return fmt.Errorf("timed out publishing to %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// RegisterSensor publishes the retained discovery document of sensor.
func (api *API) RegisterSensor(sensor entity.Sensor) error {
	j, err := json.Marshal(api.Discovery(sensor))
	if err != nil {
		return err
	}
	return api.publish(api.DiscoveryTopic(sensor), true, j)
}

// RegisterSensors registers a slice of sensors in Home Assistant.
// All sensors are attempted; the errors are joined.
func (api *API) RegisterSensors(sensors []entity.Sensor) error {
	var errs []error
	for _, sensor := range sensors {
		if err := api.RegisterSensor(sensor); err != nil {
			errs = append(errs, fmt.Errorf("failed to register sensor %s: %w", sensor.Key, err))
		}
	}
	return errors.Join(errs...)
}

// UnregisterSensor clears the retained discovery document of sensor,
// which removes the entity from Home Assistant.
func (api *API) UnregisterSensor(sensor entity.Sensor) error {
	return api.publish(api.DiscoveryTopic(sensor), true, []byte{})
}

// UpdateSensorData publishes the state payload (not retained).
func (api *API) UpdateSensorData(state *entity.State) error {
	j, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return api.publish(api.StateTopic(), false, j)
}

// UpdateAvailability publishes the retained availability payload.
func (api *API) UpdateAvailability(online bool) error {
	payload := PayloadOffline
	if online {
		payload = PayloadOnline
	}
	return api.publish(api.AvailabilityTopic(), true, []byte(payload))
}

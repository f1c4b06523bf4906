package config

import (
	"github.com/rs/zerolog"

	"systemsensors/entity"
)

// DisableUnavailable disables every sensor whose required capability
// is unavailable on this host. It returns the disabled keys.
func (s *Settings) DisableUnavailable(sensors []entity.Sensor, probe entity.Probe, log zerolog.Logger) []string {
	if s.Sensors.Enabled == nil {
		s.Sensors.Enabled = make(map[string]bool)
	}
	var disabled []string
	for _, sn := range sensors {
		if sn.Requires == entity.CapabilityNone || !s.Enabled(sn.Key) {
			continue
		}
		availability := probe.Probe(sn.Requires)
		if availability.Available {
			continue
		}
		s.Sensors.Enabled[sn.Key] = false
		disabled = append(disabled, sn.Key)
		log.Warn().
			Str("sensor", sn.Key).
			Str("capability", string(sn.Requires)).
			Msg(availability.Reason)
	}
	return disabled
}

package sensor

import (
	"os/exec"
	"sync"

	"systemsensors/entity"
)

// HostProbe checks optional host capabilities. Each capability is
// probed at most once; later calls return the cached result.
type HostProbe struct {
	lookPath   func(file string) (string, error)
	findVolt   func(glob string) (string, error)
	hwmonGlob  string
	mu         sync.Mutex
	results    map[entity.Capability]entity.Availability
	voltSensor string
}

func NewHostProbe() *HostProbe {
	return &HostProbe{
		lookPath: exec.LookPath,
		findVolt: FindUnderVoltageAlarm,
		results:  make(map[entity.Capability]entity.Availability),
	}
}

func (p *HostProbe) Probe(c entity.Capability) entity.Availability {
	p.mu.Lock()
	defer p.mu.Unlock()
	if res, ok := p.results[c]; ok {
		return res
	}
	res := p.probe(c)
	p.results[c] = res
	return res
}

// UnderVoltageAlarm returns the alarm file found while probing
// CapabilityUnderVoltage.
func (p *HostProbe) UnderVoltageAlarm() string {
	p.Probe(entity.CapabilityUnderVoltage)
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.voltSensor
}

func (p *HostProbe) probe(c entity.Capability) entity.Availability {
	switch c {
	case entity.CapabilityNone:
		return entity.Available()
	case entity.CapabilityUpdates:
		if _, err := p.lookPath("apt-get"); err != nil {
			return entity.Unavailable("apt-get not found, available updates will not be shown")
		}
		return entity.Available()
	case entity.CapabilitySmart:
		if _, err := p.lookPath("smartctl"); err != nil {
			return entity.Unavailable("smartctl not found, SMART monitoring will be disabled")
		}
		return entity.Available()
	case entity.CapabilityUnderVoltage:
		alarm, err := p.findVolt(p.hwmonGlob)
		if err != nil {
			return entity.Unavailable("under-voltage detection not supported: " + err.Error())
		}
		p.voltSensor = alarm
		return entity.Available()
	default:
		return entity.Unavailable("unknown capability " + string(c))
	}
}

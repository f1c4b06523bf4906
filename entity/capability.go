package entity

// Capability is an optional host feature some sensors depend on.
type Capability string

const (
	CapabilityNone         Capability = ""
	CapabilityUpdates      Capability = "apt"
	CapabilitySmart        Capability = "smartctl"
	CapabilityUnderVoltage Capability = "rpi_power"
)

// Availability is the result of probing a Capability.
type Availability struct {
	Available bool
	Reason    string
}

func Available() Availability {
	return Availability{Available: true}
}

func Unavailable(reason string) Availability {
	return Availability{Reason: reason}
}

// Probe reports whether a capability can be used on this host.
type Probe interface {
	Probe(c Capability) Availability
}

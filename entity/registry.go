package entity

// Gate decides whether a sensor key is enabled.
type Gate interface {
	Enabled(key string) bool
}

// Registry is an ordered catalog of sensors keyed by Sensor.Key.
// It is filled before the scheduler starts and only read afterwards.
type Registry struct {
	keys    []string
	sensors map[string]Sensor
}

func NewRegistry() *Registry {
	return &Registry{
		sensors: make(map[string]Sensor),
	}
}

// Register adds a sensor. Registering an existing key overwrites the
// previous sensor but keeps its position.
func (r *Registry) Register(s Sensor) {
	if s.Kind == "" {
		s.Kind = KindSensor
	}
	if _, ok := r.sensors[s.Key]; !ok {
		r.keys = append(r.keys, s.Key)
	}
	r.sensors[s.Key] = s
}

func (r *Registry) Get(key string) (Sensor, bool) {
	s, ok := r.sensors[key]
	return s, ok
}

func (r *Registry) Len() int {
	return len(r.keys)
}

// Keys returns all registered keys in registration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// All returns every registered sensor in registration order.
func (r *Registry) All() []Sensor {
	all := make([]Sensor, 0, len(r.keys))
	for _, key := range r.keys {
		all = append(all, r.sensors[key])
	}
	return all
}

// Active returns the sensors the gate enables, in registration order.
// A nil gate enables everything.
func (r *Registry) Active(gate Gate) []Sensor {
	active := make([]Sensor, 0, len(r.keys))
	for _, key := range r.keys {
		if gate != nil && !gate.Enabled(key) {
			continue
		}
		active = append(active, r.sensors[key])
	}
	return active
}

// Inactive returns the sensors the gate disables, in registration order.
func (r *Registry) Inactive(gate Gate) []Sensor {
	var inactive []Sensor
	if gate == nil {
		return inactive
	}
	for _, key := range r.keys {
		if !gate.Enabled(key) {
			inactive = append(inactive, r.sensors[key])
		}
	}
	return inactive
}

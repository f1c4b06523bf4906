package entity

// Output is the resulting value of a Sensor that was run.
type Output struct {
	Value  string
	Sensor Sensor
}

// Outputs collects the values of one update cycle in the order the
// sensors were run.
type Outputs struct {
	Data []Output
}

func NewOutputs() Outputs {
	return Outputs{
		Data: make([]Output, 0),
	}
}

func (o *Outputs) Add(output Output) {
	o.Data = append(o.Data, output)
}

// State converts the collected outputs to a state payload.
func (o *Outputs) State() *State {
	s := NewState()
	for _, output := range o.Data {
		s.Set(output.Sensor.Key, output.Value)
	}
	return s
}

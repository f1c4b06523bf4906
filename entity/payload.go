package entity

import (
	"bytes"
	"encoding/json"
)

// State is the flat key/value payload published on the state topic.
// Fields are encoded in insertion order.
type State struct {
	keys   []string
	values map[string]string
}

func NewState() *State {
	return &State{
		values: make(map[string]string),
	}
}

// Set adds or replaces a field.
func (s *State) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

func (s *State) Len() int {
	return len(s.keys)
}

func (s *State) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

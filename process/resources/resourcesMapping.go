package resources

import (
	"bytes"
	"encoding/json"
)

// ResourcesMapping maps resource names to consumed quantities. Keys keep
// their insertion order, which is preserved by serialization: the mapping is
// part of externally observable, consensus-critical output.
type ResourcesMapping struct {
	keys   []string
	values map[string]uint64
}

// NewResourcesMapping creates an empty resources mapping
func NewResourcesMapping() *ResourcesMapping {
	return &ResourcesMapping{
		keys:   make([]string, 0),
		values: make(map[string]uint64),
	}
}

// Set stores the quantity for the given resource name, keeping the name's
// first insertion position
func (rm *ResourcesMapping) Set(name string, value uint64) {
	_, exists := rm.values[name]
	if !exists {
		rm.keys = append(rm.keys, name)
	}
	rm.values[name] = value
}

// AddToValue adds delta to the quantity stored for the given resource name,
// inserting the name if absent
func (rm *ResourcesMapping) AddToValue(name string, delta uint64) {
	_, exists := rm.values[name]
	if !exists {
		rm.keys = append(rm.keys, name)
	}
	rm.values[name] += delta
}

// Value returns the quantity stored for the given resource name
func (rm *ResourcesMapping) Value(name string) (uint64, bool) {
	value, exists := rm.values[name]

	return value, exists
}

// Keys returns the resource names in insertion order
func (rm *ResourcesMapping) Keys() []string {
	keys := make([]string, len(rm.keys))
	copy(keys, rm.keys)

	return keys
}

// Len returns the number of entries in the mapping
func (rm *ResourcesMapping) Len() int {
	return len(rm.keys)
}

// Clone returns a deep copy of the mapping, preserving key order
func (rm *ResourcesMapping) Clone() *ResourcesMapping {
	cloned := &ResourcesMapping{
		keys:   make([]string, len(rm.keys)),
		values: make(map[string]uint64, len(rm.values)),
	}
	copy(cloned.keys, rm.keys)
	for name, value := range rm.values {
		cloned.values[name] = value
	}

	return cloned
}

// MarshalJSON serializes the mapping as a JSON object with keys in insertion order
func (rm *ResourcesMapping) MarshalJSON() ([]byte, error) {
	buff := bytes.NewBufferString("{")
	for idx, name := range rm.keys {
		if idx > 0 {
			buff.WriteByte(',')
		}

		encodedName, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buff.Write(encodedName)
		buff.WriteByte(':')

		encodedValue, err := json.Marshal(rm.values[name])
		if err != nil {
			return nil, err
		}
		buff.Write(encodedValue)
	}
	buff.WriteByte('}')

	return buff.Bytes(), nil
}

package resources

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ExecutionResources is the raw execution cost of a piece of Cairo code: a
// number of VM steps and memory holes plus per-builtin usage counts
type ExecutionResources struct {
	NSteps                 uint64
	NMemoryHoles           uint64
	BuiltinInstanceCounter map[string]uint64
}

// NewExecutionResources creates an empty execution resources value
func NewExecutionResources() *ExecutionResources {
	return &ExecutionResources{
		BuiltinInstanceCounter: make(map[string]uint64),
	}
}

// Add accumulates the other execution resources into the receiver, pointwise
func (er *ExecutionResources) Add(other *ExecutionResources) {
	if other == nil {
		return
	}

	er.NSteps += other.NSteps
	er.NMemoryHoles += other.NMemoryHoles
	if er.BuiltinInstanceCounter == nil {
		er.BuiltinInstanceCounter = make(map[string]uint64)
	}
	for builtin, count := range other.BuiltinInstanceCounter {
		er.BuiltinInstanceCounter[builtin] += count
	}
}

// MulScalar returns a new execution resources value with all fields scaled by factor
func (er *ExecutionResources) MulScalar(factor uint64) *ExecutionResources {
	scaled := &ExecutionResources{
		NSteps:                 er.NSteps * factor,
		NMemoryHoles:           er.NMemoryHoles * factor,
		BuiltinInstanceCounter: make(map[string]uint64, len(er.BuiltinInstanceCounter)),
	}
	for builtin, count := range er.BuiltinInstanceCounter {
		scaled.BuiltinInstanceCounter[builtin] = count * factor
	}

	return scaled
}

// Clone returns a deep copy of the execution resources
func (er *ExecutionResources) Clone() *ExecutionResources {
	cloned := &ExecutionResources{
		NSteps:                 er.NSteps,
		NMemoryHoles:           er.NMemoryHoles,
		BuiltinInstanceCounter: make(map[string]uint64, len(er.BuiltinInstanceCounter)),
	}
	for builtin, count := range er.BuiltinInstanceCounter {
		cloned.BuiltinInstanceCounter[builtin] = count
	}

	return cloned
}

// IsEmpty returns true if the execution resources hold no steps, holes or builtin usage
func (er *ExecutionResources) IsEmpty() bool {
	if er.NSteps != 0 || er.NMemoryHoles != 0 {
		return false
	}
	for _, count := range er.BuiltinInstanceCounter {
		if count != 0 {
			return false
		}
	}

	return true
}

// SortedBuiltinNames returns the builtin names of the counter in lexicographic
// order, for deterministic iteration
func (er *ExecutionResources) SortedBuiltinNames() []string {
	names := maps.Keys(er.BuiltinInstanceCounter)
	slices.Sort(names)

	return names
}

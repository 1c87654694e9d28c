package resources_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starkfoundry/sn-exec-go/process"
	"github.com/starkfoundry/sn-exec-go/process/resources"
)

func createDummyExecutionResources() *resources.ExecutionResources {
	return &resources.ExecutionResources{
		NSteps:       100,
		NMemoryHoles: 7,
		BuiltinInstanceCounter: map[string]uint64{
			process.PedersenBuiltinName:   4,
			process.RangeCheckBuiltinName: 10,
		},
	}
}

func TestExecutionResources_Add(t *testing.T) {
	t.Parallel()

	t.Run("pointwise accumulation", func(t *testing.T) {
		t.Parallel()

		er := createDummyExecutionResources()
		er.Add(&resources.ExecutionResources{
			NSteps:       50,
			NMemoryHoles: 3,
			BuiltinInstanceCounter: map[string]uint64{
				process.RangeCheckBuiltinName: 5,
				process.PoseidonBuiltinName:   2,
			},
		})

		assert.Equal(t, uint64(150), er.NSteps)
		assert.Equal(t, uint64(10), er.NMemoryHoles)
		assert.Equal(t, uint64(4), er.BuiltinInstanceCounter[process.PedersenBuiltinName])
		assert.Equal(t, uint64(15), er.BuiltinInstanceCounter[process.RangeCheckBuiltinName])
		assert.Equal(t, uint64(2), er.BuiltinInstanceCounter[process.PoseidonBuiltinName])
	})
	t.Run("nil other should not alter the receiver", func(t *testing.T) {
		t.Parallel()

		er := createDummyExecutionResources()
		er.Add(nil)

		assert.Equal(t, createDummyExecutionResources(), er)
	})
	t.Run("adding an empty value is the identity", func(t *testing.T) {
		t.Parallel()

		er := createDummyExecutionResources()
		er.Add(resources.NewExecutionResources())

		assert.Equal(t, createDummyExecutionResources(), er)
	})
}

func TestExecutionResources_MulScalar(t *testing.T) {
	t.Parallel()

	er := createDummyExecutionResources()
	scaled := er.MulScalar(3)

	assert.Equal(t, uint64(300), scaled.NSteps)
	assert.Equal(t, uint64(21), scaled.NMemoryHoles)
	assert.Equal(t, uint64(12), scaled.BuiltinInstanceCounter[process.PedersenBuiltinName])
	assert.Equal(t, uint64(30), scaled.BuiltinInstanceCounter[process.RangeCheckBuiltinName])
	// the receiver stays untouched
	assert.Equal(t, createDummyExecutionResources(), er)

	zero := er.MulScalar(0)
	assert.True(t, zero.IsEmpty())
}

func TestExecutionResources_ScalingDistributesOverAddition(t *testing.T) {
	t.Parallel()

	a := createDummyExecutionResources()
	b := &resources.ExecutionResources{
		NSteps:       33,
		NMemoryHoles: 1,
		BuiltinInstanceCounter: map[string]uint64{
			process.RangeCheckBuiltinName: 2,
			process.EcOpBuiltinName:       5,
		},
	}

	sum := a.Clone()
	sum.Add(b)
	left := sum.MulScalar(4)

	right := a.MulScalar(4)
	right.Add(b.MulScalar(4))

	assert.Equal(t, right, left)
}

func TestExecutionResources_AdditionIsCommutative(t *testing.T) {
	t.Parallel()

	a := createDummyExecutionResources()
	b := &resources.ExecutionResources{
		NSteps: 33,
		BuiltinInstanceCounter: map[string]uint64{
			process.EcOpBuiltinName: 5,
		},
	}

	aThenB := a.Clone()
	aThenB.Add(b)
	bThenA := b.Clone()
	bThenA.Add(a)

	assert.Equal(t, aThenB, bThenA)
}

func TestExecutionResources_Clone(t *testing.T) {
	t.Parallel()

	er := createDummyExecutionResources()
	cloned := er.Clone()
	require.Equal(t, er, cloned)

	cloned.NSteps = 999
	cloned.BuiltinInstanceCounter[process.PedersenBuiltinName] = 999

	assert.Equal(t, uint64(100), er.NSteps)
	assert.Equal(t, uint64(4), er.BuiltinInstanceCounter[process.PedersenBuiltinName])
}

func TestExecutionResources_IsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, resources.NewExecutionResources().IsEmpty())
	assert.True(t, (&resources.ExecutionResources{
		BuiltinInstanceCounter: map[string]uint64{process.PedersenBuiltinName: 0},
	}).IsEmpty())
	assert.False(t, (&resources.ExecutionResources{NSteps: 1}).IsEmpty())
	assert.False(t, (&resources.ExecutionResources{NMemoryHoles: 1}).IsEmpty())
	assert.False(t, (&resources.ExecutionResources{
		BuiltinInstanceCounter: map[string]uint64{process.PedersenBuiltinName: 1},
	}).IsEmpty())
}

func TestExecutionResources_SortedBuiltinNames(t *testing.T) {
	t.Parallel()

	er := &resources.ExecutionResources{
		BuiltinInstanceCounter: map[string]uint64{
			process.RangeCheckBuiltinName: 1,
			process.BitwiseBuiltinName:    1,
			process.PedersenBuiltinName:   1,
		},
	}

	expectedOrder := []string{
		process.BitwiseBuiltinName,
		process.PedersenBuiltinName,
		process.RangeCheckBuiltinName,
	}
	assert.Equal(t, expectedOrder, er.SortedBuiltinNames())
}

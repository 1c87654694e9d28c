package fee_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starkfoundry/sn-exec-go/data"
	"github.com/starkfoundry/sn-exec-go/process"
	"github.com/starkfoundry/sn-exec-go/process/fee"
	"github.com/starkfoundry/sn-exec-go/process/versionedConstants"
)

func createUnboundedEventLimits() versionedConstants.EventLimits {
	return versionedConstants.EventLimits{
		MaxDataLength:     math.MaxUint64,
		MaxKeysLength:     math.MaxUint64,
		MaxNEmittedEvents: math.MaxUint64,
	}
}

func createEventWithSizes(numKeys int, numData int) data.OrderedEvent {
	event := data.OrderedEvent{
		Keys: make([][]byte, numKeys),
		Data: make([][]byte, numData),
	}
	for i := 0; i < numKeys; i++ {
		event.Keys[i] = []byte("key")
	}
	for i := 0; i < numData; i++ {
		event.Data[i] = []byte("data")
	}

	return event
}

func TestNewStarknetResources(t *testing.T) {
	t.Parallel()

	t.Run("negative calldata length", func(t *testing.T) {
		t.Parallel()

		snr, err := fee.NewStarknetResources(-1, 0)
		assert.Nil(t, snr)
		assert.ErrorIs(t, err, process.ErrNegativeResourceSize)
	})
	t.Run("negative signature length", func(t *testing.T) {
		t.Parallel()

		snr, err := fee.NewStarknetResources(0, -1)
		assert.Nil(t, snr)
		assert.ErrorIs(t, err, process.ErrNegativeResourceSize)
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		snr, err := fee.NewStarknetResources(10, 2)
		require.NoError(t, err)
		assert.Equal(t, 10, snr.CalldataLength)
		assert.Equal(t, 2, snr.SignatureLength)
	})
}

func TestStarknetResources_SetL1HandlerPayloadSize(t *testing.T) {
	t.Parallel()

	snr, err := fee.NewStarknetResources(0, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, snr.SetL1HandlerPayloadSize(-1), process.ErrNegativeResourceSize)
	assert.NoError(t, snr.SetL1HandlerPayloadSize(4))
}

func TestStarknetResources_SetEventsAndMessagesResources(t *testing.T) {
	t.Parallel()

	t.Run("nil call infos are skipped", func(t *testing.T) {
		t.Parallel()

		snr, err := fee.NewStarknetResources(0, 0)
		require.NoError(t, err)

		err = snr.SetEventsAndMessagesResources([]*data.CallInfo{nil, nil}, createUnboundedEventLimits())
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(0), snr.MessagesGasCost())
	})
	t.Run("events across inner calls count towards the transaction total", func(t *testing.T) {
		t.Parallel()

		limits := versionedConstants.EventLimits{
			MaxDataLength:     10,
			MaxKeysLength:     10,
			MaxNEmittedEvents: 3,
		}
		callInfo := &data.CallInfo{
			Events: []data.OrderedEvent{createEventWithSizes(1, 2)},
			InnerCalls: []*data.CallInfo{
				{Events: []data.OrderedEvent{createEventWithSizes(2, 3), createEventWithSizes(0, 0)}},
			},
		}

		snr, err := fee.NewStarknetResources(0, 0)
		require.NoError(t, err)

		// exactly at the limit passes
		err = snr.SetEventsAndMessagesResources([]*data.CallInfo{callInfo}, limits)
		require.NoError(t, err)
	})
	t.Run("one event over the transaction total fails", func(t *testing.T) {
		t.Parallel()

		limits := versionedConstants.EventLimits{
			MaxDataLength:     10,
			MaxKeysLength:     10,
			MaxNEmittedEvents: 2,
		}
		callInfo := &data.CallInfo{
			Events: []data.OrderedEvent{
				createEventWithSizes(1, 1),
				createEventWithSizes(1, 1),
				createEventWithSizes(1, 1),
			},
		}

		snr, err := fee.NewStarknetResources(0, 0)
		require.NoError(t, err)

		err = snr.SetEventsAndMessagesResources([]*data.CallInfo{callInfo}, limits)
		require.ErrorIs(t, err, process.ErrMaxNumberOfEmittedEventsExceeded)
		assert.Contains(t, err.Error(), "exceed the limit of 2 by 1")
	})
	t.Run("event keys over the per-event limit fail", func(t *testing.T) {
		t.Parallel()

		limits := versionedConstants.EventLimits{
			MaxDataLength:     10,
			MaxKeysLength:     2,
			MaxNEmittedEvents: 10,
		}
		callInfo := &data.CallInfo{
			Events: []data.OrderedEvent{createEventWithSizes(3, 0)},
		}

		snr, err := fee.NewStarknetResources(0, 0)
		require.NoError(t, err)

		err = snr.SetEventsAndMessagesResources([]*data.CallInfo{callInfo}, limits)
		require.ErrorIs(t, err, process.ErrMaxEventKeysLengthExceeded)
		assert.Contains(t, err.Error(), "exceed the limit of 2 by 1")
	})
	t.Run("event data over the per-event limit fails", func(t *testing.T) {
		t.Parallel()

		limits := versionedConstants.EventLimits{
			MaxDataLength:     2,
			MaxKeysLength:     10,
			MaxNEmittedEvents: 10,
		}
		callInfo := &data.CallInfo{
			Events: []data.OrderedEvent{createEventWithSizes(0, 4)},
		}

		snr, err := fee.NewStarknetResources(0, 0)
		require.NoError(t, err)

		err = snr.SetEventsAndMessagesResources([]*data.CallInfo{callInfo}, limits)
		require.ErrorIs(t, err, process.ErrMaxEventDataLengthExceeded)
		assert.Contains(t, err.Error(), "exceed the limit of 2 by 2")
	})
}

func TestStarknetResources_ArchivalDataGas(t *testing.T) {
	t.Parallel()

	costs := versionedConstants.DefaultVersionedConstants().L2ResourceGasCosts()

	snr, err := fee.NewStarknetResources(10, 2)
	require.NoError(t, err)
	snr.SetCodeSize(100)

	callInfo := &data.CallInfo{
		Events: []data.OrderedEvent{createEventWithSizes(2, 3)},
	}
	err = snr.SetEventsAndMessagesResources([]*data.CallInfo{callInfo}, createUnboundedEventLimits())
	require.NoError(t, err)

	// data felts: 10 calldata + 2 signature + 3 event data + 2*2 weighted keys = 19
	// gas: 19 * 0.128 + 100 * 0.875 = 89.932, rounded up
	assert.Equal(t, big.NewInt(90), snr.ArchivalDataGas(costs))
}

func TestStarknetResources_MessagesGasCost(t *testing.T) {
	t.Parallel()

	snr, err := fee.NewStarknetResources(0, 0)
	require.NoError(t, err)

	callInfo := &data.CallInfo{
		L2ToL1Messages: []data.OrderedL2ToL1Message{
			{Payload: [][]byte{[]byte("felt")}},
		},
		InnerCalls: []*data.CallInfo{
			{L2ToL1Messages: []data.OrderedL2ToL1Message{
				{Payload: [][]byte{[]byte("felt"), []byte("felt")}},
			}},
		},
	}
	err = snr.SetEventsAndMessagesResources([]*data.CallInfo{callInfo}, createUnboundedEventLimits())
	require.NoError(t, err)

	// segment: (1+3) + (2+3) = 9 words, plus 2 message logs
	expected := big.NewInt(9*fee.SharpGasPerMemoryWord + 2*fee.GasPerLogMessageToL1)
	assert.Equal(t, expected, snr.MessagesGasCost())

	// an L1 handler payload joins the message segment
	require.NoError(t, snr.SetL1HandlerPayloadSize(4))
	expected.Add(expected, big.NewInt((4+3)*fee.SharpGasPerMemoryWord))
	assert.Equal(t, expected, snr.MessagesGasCost())
}

func TestStarknetResources_ToGasVector(t *testing.T) {
	t.Parallel()

	costs := versionedConstants.DefaultVersionedConstants().L2ResourceGasCosts()

	snr, err := fee.NewStarknetResources(10, 2)
	require.NoError(t, err)
	snr.StateChangesCount.NumStorageUpdates = 1
	snr.StateChangesCount.NumModifiedContracts = 1

	t.Run("calldata path folds everything into plain gas", func(t *testing.T) {
		t.Parallel()

		gasVector := snr.ToGasVector(costs, false)

		expectedDAGas := big.NewInt(4 * fee.SharpGasPerMemoryWord)
		expected := new(big.Int).Add(expectedDAGas, snr.ArchivalDataGas(costs))
		expected.Add(expected, snr.MessagesGasCost())
		assert.Equal(t, expected, gasVector.L1Gas)
		assert.Equal(t, big.NewInt(0), gasVector.L1DataGas)
	})
	t.Run("kzg path keeps the state diff in blob gas", func(t *testing.T) {
		t.Parallel()

		gasVector := snr.ToGasVector(costs, true)

		expected := new(big.Int).Add(snr.ArchivalDataGas(costs), snr.MessagesGasCost())
		assert.Equal(t, expected, gasVector.L1Gas)
		assert.Equal(t, big.NewInt(4*fee.DataGasPerFieldElement), gasVector.L1DataGas)
	})
}

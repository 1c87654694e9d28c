package fee

import (
	"fmt"
	"math/big"

	"github.com/starkfoundry/sn-exec-go/data"
	"github.com/starkfoundry/sn-exec-go/process"
	"github.com/starkfoundry/sn-exec-go/process/resources"
	"github.com/starkfoundry/sn-exec-go/process/versionedConstants"
	"github.com/starkfoundry/sn-exec-go/state"
)

// StarknetResources accumulates the transaction-specific cost inputs that do
// not come from the VM trace: payload sizes, declared code size, state change
// counts and the event/message totals of the executed call trees
type StarknetResources struct {
	CalldataLength    int
	SignatureLength   int
	CodeSize          uint64
	StateChangesCount state.StateChangesCount

	l1HandlerPayloadSize int
	hasL1HandlerPayload  bool

	numEmittedEvents     uint64
	totalEventKeys       uint64
	totalEventData       uint64
	numL2ToL1Messages    uint64
	messageSegmentLength uint64
}

// NewStarknetResources creates the starknet-specific resources record seeded
// with the transaction's payload sizes
func NewStarknetResources(calldataLength int, signatureLength int) (*StarknetResources, error) {
	if calldataLength < 0 || signatureLength < 0 {
		return nil, process.ErrNegativeResourceSize
	}

	return &StarknetResources{
		CalldataLength:  calldataLength,
		SignatureLength: signatureLength,
	}, nil
}

// SetCodeSize records the byte size of the contract class carried by the transaction
func (snr *StarknetResources) SetCodeSize(codeSize uint64) {
	snr.CodeSize = codeSize
}

// SetL1HandlerPayloadSize records the payload size of the consumed L1 to L2
// message. Only meaningful for L1 handler transactions.
func (snr *StarknetResources) SetL1HandlerPayloadSize(payloadSize int) error {
	if payloadSize < 0 {
		return process.ErrNegativeResourceSize
	}

	snr.l1HandlerPayloadSize = payloadSize
	snr.hasL1HandlerPayload = true

	return nil
}

// SetEventsAndMessagesResources derives the event and message totals from the
// given call trees, in order, enforcing the snapshot's event size limits.
// Exceeding a limit returns an error naming the limit and the overshoot.
func (snr *StarknetResources) SetEventsAndMessagesResources(
	callInfos []*data.CallInfo,
	limits versionedConstants.EventLimits,
) error {
	numEmittedEvents := uint64(0)
	totalEventKeys := uint64(0)
	totalEventData := uint64(0)
	numMessages := uint64(0)
	messageSegmentLength := uint64(0)

	for _, callInfo := range callInfos {
		if callInfo == nil {
			continue
		}

		for _, call := range callInfo.AllCalls() {
			for _, event := range call.Events {
				numKeys := uint64(len(event.Keys))
				numData := uint64(len(event.Data))

				if numKeys > limits.MaxKeysLength {
					return fmt.Errorf("%w: %d keys exceed the limit of %d by %d",
						process.ErrMaxEventKeysLengthExceeded, numKeys, limits.MaxKeysLength, numKeys-limits.MaxKeysLength)
				}
				if numData > limits.MaxDataLength {
					return fmt.Errorf("%w: %d data felts exceed the limit of %d by %d",
						process.ErrMaxEventDataLengthExceeded, numData, limits.MaxDataLength, numData-limits.MaxDataLength)
				}

				numEmittedEvents++
				totalEventKeys += numKeys
				totalEventData += numData
			}

			for _, message := range call.L2ToL1Messages {
				numMessages++
				messageSegmentLength += uint64(len(message.Payload)) + MessageHeaderWords
			}
		}
	}

	if numEmittedEvents > limits.MaxNEmittedEvents {
		return fmt.Errorf("%w: %d events exceed the limit of %d by %d",
			process.ErrMaxNumberOfEmittedEventsExceeded, numEmittedEvents, limits.MaxNEmittedEvents, numEmittedEvents-limits.MaxNEmittedEvents)
	}

	snr.numEmittedEvents = numEmittedEvents
	snr.totalEventKeys = totalEventKeys
	snr.totalEventData = totalEventData
	snr.numL2ToL1Messages = numMessages
	snr.messageSegmentLength = messageSegmentLength

	return nil
}

// ArchivalDataGas returns the L1 gas charged for the archival L2 data the
// transaction introduces: calldata, signature, event payloads weighted by the
// key factor, and declared code bytes
func (snr *StarknetResources) ArchivalDataGas(costs versionedConstants.L2ResourceGasCosts) *big.Int {
	dataFelts := new(big.Rat).SetInt64(int64(snr.CalldataLength + snr.SignatureLength))
	dataFelts.Add(dataFelts, new(big.Rat).SetUint64(snr.totalEventData))

	weightedKeys := new(big.Rat).SetUint64(snr.totalEventKeys)
	weightedKeys.Mul(weightedKeys, costs.EventKeyFactor)
	dataFelts.Add(dataFelts, weightedKeys)

	gas := new(big.Rat).Mul(costs.GasPerDataFelt, dataFelts)

	codeGas := new(big.Rat).SetUint64(snr.CodeSize)
	codeGas.Mul(codeGas, costs.GasPerCodeByte)
	gas.Add(gas, codeGas)

	return ceilRat(gas)
}

// MessagesGasCost returns the L1 gas charged for the transaction's message
// segment: the L2 to L1 payloads, their log emissions, and the consumed
// L1 to L2 message of an L1 handler transaction
func (snr *StarknetResources) MessagesGasCost() *big.Int {
	segmentLength := snr.messageSegmentLength
	if snr.hasL1HandlerPayload {
		segmentLength += uint64(snr.l1HandlerPayloadSize) + MessageHeaderWords
	}

	gas := new(big.Int).SetUint64(segmentLength * SharpGasPerMemoryWord)
	logGas := new(big.Int).SetUint64(snr.numL2ToL1Messages * GasPerLogMessageToL1)

	return gas.Add(gas, logGas)
}

// StateChangesGasCost returns the data availability gas of the recorded state
// change counts
func (snr *StarknetResources) StateChangesGasCost(useKzgDA bool) *resources.GasVector {
	return DAGasCost(snr.StateChangesCount, useKzgDA)
}

// ToGasVector combines the archival data gas, the message gas and the data
// availability gas into the transaction's L1 gas usage
func (snr *StarknetResources) ToGasVector(costs versionedConstants.L2ResourceGasCosts, useKzgDA bool) *resources.GasVector {
	gasVector := snr.StateChangesGasCost(useKzgDA)
	gasVector.L1Gas.Add(gasVector.L1Gas, snr.ArchivalDataGas(costs))
	gasVector.L1Gas.Add(gasVector.L1Gas, snr.MessagesGasCost())

	return gasVector
}

// ceilRat rounds a non-negative rational up to the nearest integer
func ceilRat(value *big.Rat) *big.Int {
	quotient := new(big.Int)
	remainder := new(big.Int)
	quotient.QuoRem(value.Num(), value.Denom(), remainder)
	if remainder.Sign() > 0 {
		quotient.Add(quotient, big.NewInt(1))
	}

	return quotient
}

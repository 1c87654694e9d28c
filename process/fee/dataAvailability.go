package fee

import (
	"github.com/starkfoundry/sn-exec-go/process/resources"
	"github.com/starkfoundry/sn-exec-go/state"
)

// Ethereum-side gas parameters of posting the state diff, fixed by the protocol.
const (
	// WordWidth is the byte width of one posted field element
	WordWidth = 32
	// GasPerMemoryByte is the L1 calldata gas charged per posted byte
	GasPerMemoryByte = 16
	// GasPerMemoryWord is the L1 calldata gas charged per posted field element
	GasPerMemoryWord = GasPerMemoryByte * WordWidth
	// SharpAdditionalGasPerMemoryWord is the proof verification overhead per posted field element
	SharpAdditionalGasPerMemoryWord = 100
	// SharpGasPerMemoryWord is the total L1 gas charged per field element on the calldata path
	SharpGasPerMemoryWord = GasPerMemoryWord + SharpAdditionalGasPerMemoryWord
	// DataGasPerFieldElement is the L1 blob gas charged per field element on the KZG path
	DataGasPerFieldElement = WordWidth
	// GasPerLogMessageToL1 is the L1 gas charged for emitting one L2 to L1 message log
	GasPerLogMessageToL1 = 1379
	// MessageHeaderWords accounts for the to-address, from-address and
	// payload-size words framing each message payload
	MessageHeaderWords = 3
)

// OnchainDataSegmentLength returns the number of field elements the state
// diff summary occupies in the data availability segment: each modified
// contract posts its address plus a packed nonce/class-info word, each
// storage update posts a key and a value, each class hash update posts one
// word.
func OnchainDataSegmentLength(count state.StateChangesCount) int {
	return 2*count.NumModifiedContracts + 2*count.NumStorageUpdates + count.NumClassHashUpdates
}

// DAGasCost returns the L1 gas attributed to posting the state diff,
// branching between the KZG commitment path (priced in blob data gas) and
// the legacy calldata path (priced in plain L1 gas)
func DAGasCost(count state.StateChangesCount, useKzgDA bool) *resources.GasVector {
	segmentLength := int64(OnchainDataSegmentLength(count))

	gasVector := resources.NewGasVector()
	if useKzgDA {
		gasVector.L1DataGas.SetInt64(segmentLength * DataGasPerFieldElement)
		return gasVector
	}

	gasVector.L1Gas.SetInt64(segmentLength * SharpGasPerMemoryWord)

	return gasVector
}

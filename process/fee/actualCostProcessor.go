package fee

import (
	"math/big"

	"github.com/multiversx/mx-chain-core-go/core/check"

	"github.com/starkfoundry/sn-exec-go/data"
	"github.com/starkfoundry/sn-exec-go/process"
	"github.com/starkfoundry/sn-exec-go/process/resources"
	"github.com/starkfoundry/sn-exec-go/state"
)

// ActualCost is the final, immutable cost of one executed transaction
type ActualCost struct {
	ActualFee       *big.Int
	DAGas           *resources.GasVector
	ActualResources *resources.ResourcesMapping
}

// ArgsActualCostProcessor holds the arguments needed to create an actual cost processor
type ArgsActualCostProcessor struct {
	TxContext       *TransactionContext
	TxType          process.TransactionType
	CalldataLength  int
	SignatureLength int
}

// actualCostProcessor accumulates one transaction's cost inputs as its
// execution phases complete, then computes the actual cost in a single
// terminal pass. Owned exclusively by the transaction's executing goroutine;
// the only shared state it touches is the read-only constants snapshot.
type actualCostProcessor struct {
	txContext         *TransactionContext
	txType            process.TransactionType
	starknetResources *StarknetResources
	validateCallInfo  *data.CallInfo
	executeCallInfo   *data.CallInfo
	stateChanges      *state.StateChanges
	senderAddress     []byte
	hasSender         bool
	numRevertedSteps  uint64
	computed          bool
}

// NewActualCostProcessor creates an actual cost processor seeded with the
// transaction's context and payload sizes
func NewActualCostProcessor(args ArgsActualCostProcessor) (*actualCostProcessor, error) {
	if args.TxContext == nil || args.TxContext.BlockContext == nil {
		return nil, process.ErrNilTransactionContext
	}
	if check.IfNil(args.TxContext.TxInfo) {
		return nil, process.ErrNilTransactionInfoHandler
	}
	if args.TxContext.BlockContext.VersionedConstants.IsInterfaceNil() {
		return nil, process.ErrNilVersionedConstants
	}

	starknetResources, err := NewStarknetResources(args.CalldataLength, args.SignatureLength)
	if err != nil {
		return nil, err
	}

	return &actualCostProcessor{
		txContext:         args.TxContext,
		txType:            args.TxType,
		starknetResources: starknetResources,
		stateChanges:      state.NewStateChanges(),
		senderAddress:     args.TxContext.TxInfo.SenderAddress(),
		hasSender:         true,
	}, nil
}

// NewActualCostProcessorForL1Handler creates a processor for an L1 handler
// transaction: the signature is validated on L1, no L2 sender is billed and
// the consumed message payload is part of the message segment
func NewActualCostProcessorForL1Handler(txContext *TransactionContext, l1HandlerPayloadSize int) (*actualCostProcessor, error) {
	processor, err := NewActualCostProcessor(ArgsActualCostProcessor{
		TxContext:       txContext,
		TxType:          process.TxTypeL1Handler,
		CalldataLength:  l1HandlerPayloadSize,
		SignatureLength: 0,
	})
	if err != nil {
		return nil, err
	}

	processor.WithoutSenderAddress()
	err = processor.SetL1HandlerPayloadSize(l1HandlerPayloadSize)
	if err != nil {
		return nil, err
	}

	return processor, nil
}

// WithoutSenderAddress marks the transaction as having no billable L2 sender
func (acp *actualCostProcessor) WithoutSenderAddress() {
	acp.senderAddress = nil
	acp.hasSender = false
}

// SetCodeSize records the byte size of the resolved contract class
func (acp *actualCostProcessor) SetCodeSize(codeSize uint64) {
	acp.starknetResources.SetCodeSize(codeSize)
}

// SetL1HandlerPayloadSize records the consumed L1 to L2 message payload size
func (acp *actualCostProcessor) SetL1HandlerPayloadSize(payloadSize int) error {
	return acp.starknetResources.SetL1HandlerPayloadSize(payloadSize)
}

// SetValidateCallInfo attaches the validate phase call results. A phase that
// did not run is simply never attached.
func (acp *actualCostProcessor) SetValidateCallInfo(callInfo *data.CallInfo) error {
	if callInfo == nil {
		return process.ErrNilCallInfo
	}

	acp.validateCallInfo = callInfo

	return nil
}

// SetExecuteCallInfo attaches the execute phase call results
func (acp *actualCostProcessor) SetExecuteCallInfo(callInfo *data.CallInfo) error {
	if callInfo == nil {
		return process.ErrNilCallInfo
	}

	acp.executeCallInfo = callInfo

	return nil
}

// AddStateChanges merges the state changes observed so far into the
// processor's record. Repeated calls accumulate.
func (acp *actualCostProcessor) AddStateChanges(stateChanges *state.StateChanges) error {
	if stateChanges == nil {
		return process.ErrNilStateChanges
	}

	acp.stateChanges.Merge(stateChanges)

	return nil
}

// SetRevertedSteps records the VM steps burned before the execution reverted
func (acp *actualCostProcessor) SetRevertedSteps(numRevertedSteps uint64) {
	acp.numRevertedSteps = numRevertedSteps
}

// Compute consumes the processor and builds the transaction's actual cost
// together with the resources view used for block capacity accounting. The
// capacity view excludes reverted steps; the billed resources include them.
func (acp *actualCostProcessor) Compute(executionResources *resources.ExecutionResources) (*ActualCost, *resources.ResourcesMapping, error) {
	if acp.computed {
		return nil, nil, process.ErrActualCostAlreadyComputed
	}
	if executionResources == nil {
		return nil, nil, process.ErrNilExecutionResources
	}
	// a consumed L1 message payload and the L1 handler type come together or not at all
	if acp.starknetResources.hasL1HandlerPayload != (acp.txType == process.TxTypeL1Handler) {
		return nil, nil, process.ErrInvalidPayloadSizeCombination
	}
	acp.computed = true

	blockContext := acp.txContext.BlockContext
	txInfo := acp.txContext.TxInfo
	useKzgDA := blockContext.BlockInfo.UseKzgDA
	feeType := txInfo.FeeType()
	feeTokenAddress := blockContext.ChainInfo.FeeTokenAddresses.FeeTokenAddress(feeType)

	var senderAddress []byte
	if acp.hasSender {
		senderAddress = acp.senderAddress
	}
	acp.starknetResources.StateChangesCount = acp.stateChanges.CountForFeeCharge(senderAddress, feeTokenAddress)

	daGas := acp.starknetResources.StateChangesGasCost(useKzgDA)

	// validate results first, then execute results
	callInfos := []*data.CallInfo{acp.validateCallInfo, acp.executeCallInfo}
	err := acp.starknetResources.SetEventsAndMessagesResources(callInfos, blockContext.VersionedConstants.TxEventLimits())
	if err != nil {
		return nil, nil, err
	}

	actualResources, err := CalculateTxResources(
		blockContext.VersionedConstants,
		executionResources,
		acp.txType,
		acp.starknetResources,
		useKzgDA,
	)
	if err != nil {
		return nil, nil, err
	}

	// the capacity view is snapshotted before reverted steps are added:
	// wasted work must not shrink what else fits in the block
	bouncerResources := actualResources.Clone()

	// the transaction still pays for the steps it burned before reverting
	actualResources.AddToValue(process.NStepsResource, acp.numRevertedSteps)

	actualFee := big.NewInt(0)
	// L1 handler transactions are not charged an L2 fee but it is compared to the L1 fee
	if txInfo.EnforceFee() || acp.txType == process.TxTypeL1Handler {
		actualFee, err = CalculateTxFee(actualResources, blockContext, feeType)
		if err != nil {
			return nil, nil, err
		}
	}

	actualCost := &ActualCost{
		ActualFee:       actualFee,
		DAGas:           daGas,
		ActualResources: actualResources,
	}

	return actualCost, bouncerResources, nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (acp *actualCostProcessor) IsInterfaceNil() bool {
	return acp == nil
}

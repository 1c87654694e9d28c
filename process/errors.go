package process

import "errors"

// ErrNilTransactionContext signals that a nil transaction context has been provided
var ErrNilTransactionContext = errors.New("nil transaction context")

// ErrNilTransactionInfoHandler signals that a nil transaction info handler has been provided
var ErrNilTransactionInfoHandler = errors.New("nil transaction info handler")

// ErrNilVersionedConstants signals that a nil versioned constants snapshot has been provided
var ErrNilVersionedConstants = errors.New("nil versioned constants snapshot")

// ErrNilCallInfo signals that a nil call info has been provided
var ErrNilCallInfo = errors.New("nil call info")

// ErrNilStateChanges signals that a nil state changes record has been provided
var ErrNilStateChanges = errors.New("nil state changes record")

// ErrNilExecutionResources signals that a nil execution trace has been provided
var ErrNilExecutionResources = errors.New("nil execution resources")

// ErrNegativeResourceSize signals that a negative payload, calldata or signature size has been provided
var ErrNegativeResourceSize = errors.New("negative resource size")

// ErrInvalidPayloadSizeCombination signals that the starknet resources were built with an
// invalid combination of payload size fields
var ErrInvalidPayloadSizeCombination = errors.New("invalid combination of payload size fields")

// ErrMalformedConstantsDocument signals that the versioned constants document is structurally malformed
var ErrMalformedConstantsDocument = errors.New("malformed versioned constants document")

// ErrMissingGasCostKey signals that a required gas cost key is absent after resolution
var ErrMissingGasCostKey = errors.New("missing gas cost key")

// ErrUnknownGasCostDependency signals that a gas cost formula references an undefined key
var ErrUnknownGasCostDependency = errors.New("unknown gas cost dependency")

// ErrCyclicGasCostDependency signals that the gas cost dependency graph contains a cycle
var ErrCyclicGasCostDependency = errors.New("cyclic gas cost dependency")

// ErrGasCostValueOutOfRange signals that a gas cost value or factor does not fit an unsigned 64-bit integer
var ErrGasCostValueOutOfRange = errors.New("gas cost value out of uint64 range")

// ErrUnknownBuiltin signals that a resource vector references a builtin outside the known set
var ErrUnknownBuiltin = errors.New("unknown builtin name")

// ErrMissingTxTypeResources signals that the os resources table has no entry for a transaction type
var ErrMissingTxTypeResources = errors.New("missing os resources entry for transaction type")

// ErrMissingSyscallResources signals that the os resources table has no entry for a syscall
var ErrMissingSyscallResources = errors.New("missing os resources entry for syscall")

// ErrMaxNumberOfEmittedEventsExceeded signals that a transaction emitted more events than allowed
var ErrMaxNumberOfEmittedEventsExceeded = errors.New("maximum number of emitted events exceeded")

// ErrMaxEventKeysLengthExceeded signals that an emitted event carries more keys than allowed
var ErrMaxEventKeysLengthExceeded = errors.New("maximum event keys length exceeded")

// ErrMaxEventDataLengthExceeded signals that an emitted event carries more data than allowed
var ErrMaxEventDataLengthExceeded = errors.New("maximum event data length exceeded")

// ErrMissingResourceEntry signals that a required key is absent from a resources mapping
var ErrMissingResourceEntry = errors.New("missing resources mapping entry")

// ErrResourceNotInFeeCosts signals that a resources mapping entry has no cost-per-unit ratio
var ErrResourceNotInFeeCosts = errors.New("resource not contained in the fee cost table")

// ErrNilGasPrice signals that the block context carries no gas price for the requested fee type
var ErrNilGasPrice = errors.New("nil gas price")

// ErrInvalidVersionedConstantsConfig signals that the versioned constants config section is empty or malformed
var ErrInvalidVersionedConstantsConfig = errors.New("invalid versioned constants config")

// ErrActualCostAlreadyComputed signals that the actual cost processor has already been consumed
var ErrActualCostAlreadyComputed = errors.New("actual cost already computed")

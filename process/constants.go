package process

// TransactionType identifies the Starknet transaction flavor being executed
type TransactionType string

const (
	// TxTypeDeclare defines the identifier of a declare transaction
	TxTypeDeclare TransactionType = "Declare"
	// TxTypeDeployAccount defines the identifier of a deploy account transaction
	TxTypeDeployAccount TransactionType = "DeployAccount"
	// TxTypeInvokeFunction defines the identifier of an invoke transaction
	TxTypeInvokeFunction TransactionType = "InvokeFunction"
	// TxTypeL1Handler defines the identifier of an L1 handler transaction
	TxTypeL1Handler TransactionType = "L1Handler"
)

// AllTransactionTypes holds every transaction type known to the protocol
var AllTransactionTypes = []TransactionType{
	TxTypeDeclare,
	TxTypeDeployAccount,
	TxTypeInvokeFunction,
	TxTypeL1Handler,
}

// Builtin co-processor names, as they appear in execution traces and in the
// os resources tables. The set is closed: a table referencing any other name
// fails validation at load time.
const (
	OutputBuiltinName       = "output_builtin"
	PedersenBuiltinName     = "pedersen_builtin"
	RangeCheckBuiltinName   = "range_check_builtin"
	EcdsaBuiltinName        = "ecdsa_builtin"
	BitwiseBuiltinName      = "bitwise_builtin"
	EcOpBuiltinName         = "ec_op_builtin"
	KeccakBuiltinName       = "keccak_builtin"
	PoseidonBuiltinName     = "poseidon_builtin"
	SegmentArenaBuiltinName = "segment_arena_builtin"
)

// KnownBuiltinNames holds the closed set of builtin co-processor names
var KnownBuiltinNames = map[string]struct{}{
	OutputBuiltinName:       {},
	PedersenBuiltinName:     {},
	RangeCheckBuiltinName:   {},
	EcdsaBuiltinName:        {},
	BitwiseBuiltinName:      {},
	EcOpBuiltinName:         {},
	KeccakBuiltinName:       {},
	PoseidonBuiltinName:     {},
	SegmentArenaBuiltinName: {},
}

// SyscallName identifies a syscall handled by the Starknet OS
type SyscallName string

// Syscalls handled by the Starknet OS. The set is closed: the os resources
// table must provide a resource vector for each and may not reference others.
const (
	SyscallCallContract           SyscallName = "call_contract"
	SyscallDeploy                 SyscallName = "deploy"
	SyscallEmitEvent              SyscallName = "emit_event"
	SyscallGetBlockHash           SyscallName = "get_block_hash"
	SyscallGetExecutionInfo       SyscallName = "get_execution_info"
	SyscallKeccak                 SyscallName = "keccak"
	SyscallLibraryCall            SyscallName = "library_call"
	SyscallReplaceClass           SyscallName = "replace_class"
	SyscallSendMessageToL1        SyscallName = "send_message_to_l1"
	SyscallStorageRead            SyscallName = "storage_read"
	SyscallStorageWrite           SyscallName = "storage_write"
	SyscallSecp256k1Add           SyscallName = "secp256k1_add"
	SyscallSecp256k1GetPointFromX SyscallName = "secp256k1_get_point_from_x"
	SyscallSecp256k1GetXy         SyscallName = "secp256k1_get_xy"
	SyscallSecp256k1Mul           SyscallName = "secp256k1_mul"
	SyscallSecp256k1New           SyscallName = "secp256k1_new"
	SyscallSecp256r1Add           SyscallName = "secp256r1_add"
	SyscallSecp256r1GetPointFromX SyscallName = "secp256r1_get_point_from_x"
	SyscallSecp256r1GetXy         SyscallName = "secp256r1_get_xy"
	SyscallSecp256r1Mul           SyscallName = "secp256r1_mul"
	SyscallSecp256r1New           SyscallName = "secp256r1_new"
)

// AllSyscalls holds every syscall known to the protocol
var AllSyscalls = []SyscallName{
	SyscallCallContract,
	SyscallDeploy,
	SyscallEmitEvent,
	SyscallGetBlockHash,
	SyscallGetExecutionInfo,
	SyscallKeccak,
	SyscallLibraryCall,
	SyscallReplaceClass,
	SyscallSendMessageToL1,
	SyscallStorageRead,
	SyscallStorageWrite,
	SyscallSecp256k1Add,
	SyscallSecp256k1GetPointFromX,
	SyscallSecp256k1GetXy,
	SyscallSecp256k1Mul,
	SyscallSecp256k1New,
	SyscallSecp256r1Add,
	SyscallSecp256r1GetPointFromX,
	SyscallSecp256r1GetXy,
	SyscallSecp256r1Mul,
	SyscallSecp256r1New,
}

// Resource names used as keys of the resources mapping handed to the fee
// computation and to the block capacity accounting.
const (
	// NStepsResource is the key under which plain VM steps are reported
	NStepsResource = "n_steps"
	// L1GasUsageResource is the key under which L1 calldata gas is reported
	L1GasUsageResource = "l1_gas_usage"
	// L1BlobGasUsageResource is the key under which L1 blob gas is reported
	L1BlobGasUsageResource = "l1_blob_gas_usage"
)

// Gas cost constants that must resolve from the os_constants section of a
// versioned constants document. All other keys of that section are ignored.
const (
	StepGasCost                   = "step_gas_cost"
	RangeCheckGasCost             = "range_check_gas_cost"
	MemoryHoleGasCost             = "memory_hole_gas_cost"
	InitialGasCost                = "initial_gas_cost"
	EntryPointInitialBudget       = "entry_point_initial_budget"
	SyscallBaseGasCost            = "syscall_base_gas_cost"
	EntryPointGasCost             = "entry_point_gas_cost"
	FeeTransferGasCost            = "fee_transfer_gas_cost"
	TransactionGasCost            = "transaction_gas_cost"
	CallContractGasCost           = "call_contract_gas_cost"
	DeployGasCost                 = "deploy_gas_cost"
	GetBlockHashGasCost           = "get_block_hash_gas_cost"
	GetExecutionInfoGasCost       = "get_execution_info_gas_cost"
	LibraryCallGasCost            = "library_call_gas_cost"
	ReplaceClassGasCost           = "replace_class_gas_cost"
	StorageReadGasCost            = "storage_read_gas_cost"
	StorageWriteGasCost           = "storage_write_gas_cost"
	EmitEventGasCost              = "emit_event_gas_cost"
	SendMessageToL1GasCost        = "send_message_to_l1_gas_cost"
	Secp256k1AddGasCost           = "secp256k1_add_gas_cost"
	Secp256k1GetPointFromXGasCost = "secp256k1_get_point_from_x_gas_cost"
	Secp256k1GetXyGasCost         = "secp256k1_get_xy_gas_cost"
	Secp256k1MulGasCost           = "secp256k1_mul_gas_cost"
	Secp256k1NewGasCost           = "secp256k1_new_gas_cost"
	Secp256r1AddGasCost           = "secp256r1_add_gas_cost"
	Secp256r1GetPointFromXGasCost = "secp256r1_get_point_from_x_gas_cost"
	Secp256r1GetXyGasCost         = "secp256r1_get_xy_gas_cost"
	Secp256r1MulGasCost           = "secp256r1_mul_gas_cost"
	Secp256r1NewGasCost           = "secp256r1_new_gas_cost"
	KeccakGasCost                 = "keccak_gas_cost"
	KeccakRoundCostGasCost        = "keccak_round_cost_gas_cost"
)

// AllowedGasCostNames holds every gas cost constant that must be present in a
// versioned constants document after resolution
var AllowedGasCostNames = []string{
	StepGasCost,
	RangeCheckGasCost,
	MemoryHoleGasCost,
	InitialGasCost,
	EntryPointInitialBudget,
	SyscallBaseGasCost,
	EntryPointGasCost,
	FeeTransferGasCost,
	TransactionGasCost,
	CallContractGasCost,
	DeployGasCost,
	GetBlockHashGasCost,
	GetExecutionInfoGasCost,
	LibraryCallGasCost,
	ReplaceClassGasCost,
	StorageReadGasCost,
	StorageWriteGasCost,
	EmitEventGasCost,
	SendMessageToL1GasCost,
	Secp256k1AddGasCost,
	Secp256k1GetPointFromXGasCost,
	Secp256k1GetXyGasCost,
	Secp256k1MulGasCost,
	Secp256k1NewGasCost,
	Secp256r1AddGasCost,
	Secp256r1GetPointFromXGasCost,
	Secp256r1GetXyGasCost,
	Secp256r1MulGasCost,
	Secp256r1NewGasCost,
	KeccakGasCost,
	KeccakRoundCostGasCost,
}

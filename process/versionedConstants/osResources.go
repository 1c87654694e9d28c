package versionedConstants

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/starkfoundry/sn-exec-go/process"
	"github.com/starkfoundry/sn-exec-go/process/resources"
)

const (
	executeSyscallsKey            = "execute_syscalls"
	executeTxsInnerKey            = "execute_txs_inner"
	computeOsKzgCommitmentInfoKey = "compute_os_kzg_commitment_info"
	currentResourcesKey           = "resources"
	deprecatedResourcesKey        = "deprecated_resources"
	constantKey                   = "constant"
	calldataFactorKey             = "calldata_factor"
)

// ResourcesParams is the per-transaction-type resource formula: a constant
// vector plus a vector applied once per calldata element
type ResourcesParams struct {
	Constant       *resources.ExecutionResources
	CalldataFactor *resources.ExecutionResources
}

// resourcesByVersion keeps both the current and the deprecated formula schema
// of one transaction type, retained for document compatibility
type resourcesByVersion struct {
	resources           ResourcesParams
	deprecatedResources ResourcesParams
}

// osResources holds the per-syscall and per-transaction-type resource vector
// formulas of one protocol version, plus the data availability commitment
// cost formula. Immutable after creation.
type osResources struct {
	executeSyscalls            map[process.SyscallName]*resources.ExecutionResources
	executeTxsInner            map[process.TransactionType]*resourcesByVersion
	computeOsKzgCommitmentInfo *resources.ExecutionResources
}

type rawExecutionResources struct {
	NSteps                 uint64            `mapstructure:"n_steps"`
	NMemoryHoles           uint64            `mapstructure:"n_memory_holes"`
	BuiltinInstanceCounter map[string]uint64 `mapstructure:"builtin_instance_counter"`
}

func (raw *rawExecutionResources) toExecutionResources() *resources.ExecutionResources {
	vector := &resources.ExecutionResources{
		NSteps:                 raw.NSteps,
		NMemoryHoles:           raw.NMemoryHoles,
		BuiltinInstanceCounter: make(map[string]uint64, len(raw.BuiltinInstanceCounter)),
	}
	for builtin, count := range raw.BuiltinInstanceCounter {
		vector.BuiltinInstanceCounter[builtin] = count
	}

	return vector
}

// newOsResources decodes and validates the os_resources section of a raw
// document. Validation enforces the closed transaction type, syscall and
// builtin sets; it is skipped only by test constructors.
func newOsResources(rawSection map[string]interface{}, skipValidation bool) (*osResources, error) {
	rawSyscalls, err := getSection(rawSection, executeSyscallsKey)
	if err != nil {
		return nil, err
	}
	executeSyscalls := make(map[process.SyscallName]*resources.ExecutionResources, len(rawSyscalls))
	for syscallName, rawVector := range rawSyscalls {
		vector, err := parseExecutionResources(rawVector, executeSyscallsKey+"."+syscallName)
		if err != nil {
			return nil, err
		}
		executeSyscalls[process.SyscallName(syscallName)] = vector
	}

	rawTxsInner, err := getSection(rawSection, executeTxsInnerKey)
	if err != nil {
		return nil, err
	}
	executeTxsInner := make(map[process.TransactionType]*resourcesByVersion, len(rawTxsInner))
	for txTypeName, rawEntry := range rawTxsInner {
		entry, err := parseResourcesByVersion(rawEntry, executeTxsInnerKey+"."+txTypeName)
		if err != nil {
			return nil, err
		}
		executeTxsInner[process.TransactionType(txTypeName)] = entry
	}

	rawKzgInfo, hasKzgInfo := rawSection[computeOsKzgCommitmentInfoKey]
	if !hasKzgInfo {
		return nil, fmt.Errorf("%w: missing section '%s'", process.ErrMalformedConstantsDocument, computeOsKzgCommitmentInfoKey)
	}
	kzgCommitmentInfo, err := parseExecutionResources(rawKzgInfo, computeOsKzgCommitmentInfoKey)
	if err != nil {
		return nil, err
	}

	table := &osResources{
		executeSyscalls:            executeSyscalls,
		executeTxsInner:            executeTxsInner,
		computeOsKzgCommitmentInfo: kzgCommitmentInfo,
	}

	if !skipValidation {
		err = table.validate()
		if err != nil {
			return nil, err
		}
	}

	return table, nil
}

// validate checks completeness of the transaction type and syscall entries
// and that every referenced builtin belongs to the known set
func (or *osResources) validate() error {
	for _, txType := range process.AllTransactionTypes {
		_, hasEntry := or.executeTxsInner[txType]
		if !hasEntry {
			return fmt.Errorf("%w: %s", process.ErrMissingTxTypeResources, txType)
		}
	}

	for _, syscall := range process.AllSyscalls {
		_, hasEntry := or.executeSyscalls[syscall]
		if !hasEntry {
			return fmt.Errorf("%w: %s", process.ErrMissingSyscallResources, syscall)
		}
	}

	allVectors := []*resources.ExecutionResources{or.computeOsKzgCommitmentInfo}
	for _, entry := range or.executeTxsInner {
		allVectors = append(allVectors,
			entry.resources.Constant, entry.resources.CalldataFactor,
			entry.deprecatedResources.Constant, entry.deprecatedResources.CalldataFactor,
		)
	}
	for _, vector := range or.executeSyscalls {
		allVectors = append(allVectors, vector)
	}

	for _, vector := range allVectors {
		for builtin := range vector.BuiltinInstanceCounter {
			_, isKnown := process.KnownBuiltinNames[builtin]
			if !isKnown {
				return fmt.Errorf("%w: %s", process.ErrUnknownBuiltin, builtin)
			}
		}
	}

	return nil
}

// resourcesForTxType returns constant + calldataFactor * calldataLength for
// the given transaction type
func (or *osResources) resourcesForTxType(txType process.TransactionType, calldataLength int) *resources.ExecutionResources {
	entry, hasEntry := or.executeTxsInner[txType]
	if !hasEntry {
		panic(fmt.Sprintf("os resources table should contain transaction type '%s'; was validation skipped?", txType))
	}

	params := entry.deprecatedResources
	total := params.Constant.Clone()
	total.Add(params.CalldataFactor.MulScalar(uint64(calldataLength)))

	return total
}

// osKzgDaResources returns the resources the OS spends computing the KZG
// commitment info over a data segment of the given length
func (or *osResources) osKzgDaResources(dataSegmentLength int) *resources.ExecutionResources {
	total := or.computeOsKzgCommitmentInfo.MulScalar(uint64(dataSegmentLength))
	total.Add(poseidonHashManyCost(uint64(dataSegmentLength)))

	return total
}

// additionalOsTxResources returns the extra resources the OS spends running
// the given transaction, outside of the execution trace itself
func (or *osResources) additionalOsTxResources(
	txType process.TransactionType,
	calldataLength int,
	dataSegmentLength int,
	useKzgDA bool,
) *resources.ExecutionResources {
	total := or.resourcesForTxType(txType, calldataLength)
	if useKzgDA {
		total.Add(or.osKzgDaResources(dataSegmentLength))
	}

	return total
}

// additionalOsSyscallResources accumulates vector * count over the invoked
// syscalls. The syscall set is closed and validated at load time: a selector
// missing here is a programming defect, not a runtime condition.
func (or *osResources) additionalOsSyscallResources(syscallCounts map[process.SyscallName]uint64) *resources.ExecutionResources {
	total := resources.NewExecutionResources()

	syscalls := maps.Keys(syscallCounts)
	slices.Sort(syscalls)
	for _, syscall := range syscalls {
		count := syscallCounts[syscall]
		if count == 0 {
			continue
		}

		vector, hasEntry := or.executeSyscalls[syscall]
		if !hasEntry {
			panic(fmt.Sprintf("os resources of syscall '%s' are unknown; was validation skipped?", syscall))
		}

		total.Add(vector.MulScalar(count))
	}

	return total
}

// poseidonHashManyCost is the protocol-defined cost of hashing dataLength
// felts with the poseidon hash, as metered by the OS
func poseidonHashManyCost(dataLength uint64) *resources.ExecutionResources {
	numApplications := dataLength/2 + 1

	return &resources.ExecutionResources{
		NSteps: 11 + numApplications*8,
		BuiltinInstanceCounter: map[string]uint64{
			process.PoseidonBuiltinName: numApplications,
		},
	}
}

// parseExecutionResources decodes one resource vector of the document
func parseExecutionResources(rawVector interface{}, path string) (*resources.ExecutionResources, error) {
	raw := &rawExecutionResources{}
	err := decodeSection(rawVector, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", process.ErrMalformedConstantsDocument, path, err.Error())
	}

	return raw.toExecutionResources(), nil
}

// parseResourcesByVersion decodes one execute_txs_inner entry, carrying both
// the current and the deprecated formula schema
func parseResourcesByVersion(rawEntry interface{}, path string) (*resourcesByVersion, error) {
	entry, isObject := rawEntry.(map[string]interface{})
	if !isObject {
		return nil, fmt.Errorf("%w: %s is not an object", process.ErrMalformedConstantsDocument, path)
	}

	currentParams, err := parseResourcesParams(entry[currentResourcesKey], path+"."+currentResourcesKey)
	if err != nil {
		return nil, err
	}
	deprecatedParams, err := parseResourcesParams(entry[deprecatedResourcesKey], path+"."+deprecatedResourcesKey)
	if err != nil {
		return nil, err
	}

	return &resourcesByVersion{
		resources:           *currentParams,
		deprecatedResources: *deprecatedParams,
	}, nil
}

// parseResourcesParams decodes a {constant, calldata_factor} pair. A vector
// given directly (without the pair keys) is read as the constant with a zero
// calldata factor, matching older document schemas.
func parseResourcesParams(rawParams interface{}, path string) (*ResourcesParams, error) {
	params, isObject := rawParams.(map[string]interface{})
	if !isObject {
		return nil, fmt.Errorf("%w: %s is not an object", process.ErrMalformedConstantsDocument, path)
	}

	rawConstant, hasConstant := params[constantKey]
	rawCalldataFactor, hasCalldataFactor := params[calldataFactorKey]
	if hasConstant && !hasCalldataFactor {
		return nil, fmt.Errorf("%w: %s has '%s' but no '%s'",
			process.ErrMalformedConstantsDocument, path, constantKey, calldataFactorKey)
	}
	if !hasConstant {
		constant, err := parseExecutionResources(rawParams, path)
		if err != nil {
			return nil, err
		}

		return &ResourcesParams{
			Constant:       constant,
			CalldataFactor: resources.NewExecutionResources(),
		}, nil
	}

	constant, err := parseExecutionResources(rawConstant, path+"."+constantKey)
	if err != nil {
		return nil, err
	}
	calldataFactor, err := parseExecutionResources(rawCalldataFactor, path+"."+calldataFactorKey)
	if err != nil {
		return nil, err
	}

	return &ResourcesParams{
		Constant:       constant,
		CalldataFactor: calldataFactor,
	}, nil
}

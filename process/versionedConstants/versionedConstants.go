package versionedConstants

import (
	_ "embed"
	"fmt"
	"math"
	"math/big"
	"os"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/starkfoundry/sn-exec-go/process"
	"github.com/starkfoundry/sn-exec-go/process/resources"
)

const (
	invokeTxMaxNStepsKey  = "invoke_tx_max_n_steps"
	validateMaxNStepsKey  = "validate_max_n_steps"
	maxRecursionDepthKey  = "max_recursion_depth"
	txEventLimitsKey      = "tx_event_limits"
	l2ResourceGasCostsKey = "l2_resource_gas_costs"
	osConstantsKey        = "os_constants"
	osResourcesKey        = "os_resources"
	vmResourceFeeCostKey  = "vm_resource_fee_cost"

	gasPerDataFeltKey = "gas_per_data_felt"
	eventKeyFactorKey = "event_key_factor"
	gasPerCodeByteKey = "gas_per_code_byte"
)

//go:embed defaultConstants.json
var defaultConstantsDocument []byte

var (
	defaultInstance     *VersionedConstants
	defaultInstanceOnce sync.Once
)

// EventLimits holds the per-transaction event size limits
type EventLimits struct {
	MaxDataLength     uint64 `mapstructure:"max_data_length"`
	MaxKeysLength     uint64 `mapstructure:"max_keys_length"`
	MaxNEmittedEvents uint64 `mapstructure:"max_n_emitted_events"`
}

// L2ResourceGasCosts holds the gas ratios applied to archival L2 data
type L2ResourceGasCosts struct {
	GasPerDataFelt *big.Rat
	EventKeyFactor *big.Rat
	GasPerCodeByte *big.Rat
}

// VersionedConstants is one protocol version's immutable snapshot of gas
// costs, resource formulas, limits and fee ratios. Built once per version,
// then shared read-only across every transaction executed under it.
type VersionedConstants struct {
	txEventLimits      EventLimits
	invokeTxMaxNSteps  uint32
	validateMaxNSteps  uint32
	maxRecursionDepth  uint64
	l2ResourceGasCosts L2ResourceGasCosts
	osConstants        *osConstants
	osResources        *osResources
	vmResourceFeeCost  map[string]*big.Rat
}

// NewVersionedConstantsFromRawDocument builds a snapshot from a declarative
// JSON document. The snapshot is all-or-nothing: any malformed structure,
// unresolvable dependency or failed completeness check aborts construction.
func NewVersionedConstantsFromRawDocument(rawDocument []byte) (*VersionedConstants, error) {
	return newVersionedConstants(rawDocument, false)
}

// NewVersionedConstantsFromFile builds a snapshot from a document on disk
func NewVersionedConstantsFromFile(filePath string) (*VersionedConstants, error) {
	rawDocument, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "reading versioned constants file")
	}

	vc, err := NewVersionedConstantsFromRawDocument(rawDocument)
	if err != nil {
		return nil, errors.Wrapf(err, "loading versioned constants from %s", filePath)
	}

	return vc, nil
}

// DefaultVersionedConstants returns the snapshot built from the bundled
// document. It is constructed on first use and reused afterwards; loading
// alternative snapshots never mutates it.
func DefaultVersionedConstants() *VersionedConstants {
	defaultInstanceOnce.Do(func() {
		vc, err := NewVersionedConstantsFromRawDocument(defaultConstantsDocument)
		if err != nil {
			panic(fmt.Sprintf("bundled versioned constants document is malformed: %s", err.Error()))
		}
		defaultInstance = vc
	})

	return defaultInstance
}

func newVersionedConstants(rawDocument []byte, skipValidation bool) (*VersionedConstants, error) {
	document, err := parseRawDocument(rawDocument)
	if err != nil {
		return nil, err
	}

	invokeTxMaxNSteps, err := getUint32Field(document, invokeTxMaxNStepsKey)
	if err != nil {
		return nil, err
	}
	validateMaxNSteps, err := getUint32Field(document, validateMaxNStepsKey)
	if err != nil {
		return nil, err
	}
	maxRecursionDepth, err := getUint64Field(document, maxRecursionDepthKey)
	if err != nil {
		return nil, err
	}

	eventLimits, err := parseEventLimits(document)
	if err != nil {
		return nil, err
	}
	l2ResourceGasCosts, err := parseL2ResourceGasCosts(document)
	if err != nil {
		return nil, err
	}
	vmResourceFeeCost, err := parseVMResourceFeeCost(document)
	if err != nil {
		return nil, err
	}

	osConstantsSection, err := getSection(document, osConstantsKey)
	if err != nil {
		return nil, err
	}
	osConstantsTable, err := newOsConstants(osConstantsSection, skipValidation)
	if err != nil {
		return nil, err
	}

	osResourcesSection, err := getSection(document, osResourcesKey)
	if err != nil {
		return nil, err
	}
	osResourcesTable, err := newOsResources(osResourcesSection, skipValidation)
	if err != nil {
		return nil, err
	}

	return &VersionedConstants{
		txEventLimits:      eventLimits,
		invokeTxMaxNSteps:  invokeTxMaxNSteps,
		validateMaxNSteps:  validateMaxNSteps,
		maxRecursionDepth:  maxRecursionDepth,
		l2ResourceGasCosts: l2ResourceGasCosts,
		osConstants:        osConstantsTable,
		osResources:        osResourcesTable,
		vmResourceFeeCost:  vmResourceFeeCost,
	}, nil
}

func parseEventLimits(document map[string]interface{}) (EventLimits, error) {
	limits := EventLimits{
		MaxDataLength:     math.MaxUint64,
		MaxKeysLength:     math.MaxUint64,
		MaxNEmittedEvents: math.MaxUint64,
	}

	rawLimits, hasLimits := document[txEventLimitsKey]
	if !hasLimits {
		return limits, nil
	}

	err := decodeSection(rawLimits, &limits)
	if err != nil {
		return EventLimits{}, fmt.Errorf("%w: %s section: %s", process.ErrMalformedConstantsDocument, txEventLimitsKey, err.Error())
	}

	return limits, nil
}

func parseL2ResourceGasCosts(document map[string]interface{}) (L2ResourceGasCosts, error) {
	costs := L2ResourceGasCosts{
		GasPerDataFelt: big.NewRat(0, 1),
		EventKeyFactor: big.NewRat(0, 1),
		GasPerCodeByte: big.NewRat(0, 1),
	}

	rawCosts, hasCosts := document[l2ResourceGasCostsKey]
	if !hasCosts {
		return costs, nil
	}

	section, isObject := rawCosts.(map[string]interface{})
	if !isObject {
		return L2ResourceGasCosts{}, fmt.Errorf("%w: section '%s' is not an object", process.ErrMalformedConstantsDocument, l2ResourceGasCostsKey)
	}

	var err error
	costs.GasPerDataFelt, err = parseRatio(section[gasPerDataFeltKey], gasPerDataFeltKey)
	if err != nil {
		return L2ResourceGasCosts{}, err
	}
	costs.EventKeyFactor, err = parseRatio(section[eventKeyFactorKey], eventKeyFactorKey)
	if err != nil {
		return L2ResourceGasCosts{}, err
	}
	costs.GasPerCodeByte, err = parseRatio(section[gasPerCodeByteKey], gasPerCodeByteKey)
	if err != nil {
		return L2ResourceGasCosts{}, err
	}

	return costs, nil
}

func parseVMResourceFeeCost(document map[string]interface{}) (map[string]*big.Rat, error) {
	section, err := getSection(document, vmResourceFeeCostKey)
	if err != nil {
		return nil, err
	}

	costTable := make(map[string]*big.Rat, len(section))
	resourceNames := maps.Keys(section)
	slices.Sort(resourceNames)
	for _, resourceName := range resourceNames {
		ratio, err := parseRatio(section[resourceName], vmResourceFeeCostKey+"."+resourceName)
		if err != nil {
			return nil, err
		}
		costTable[resourceName] = ratio
	}

	return costTable, nil
}

// GasCost returns the resolved value of an allow-listed gas cost constant.
// Requesting a name outside the allow-list, or one missing despite load-time
// validation, indicates a programming defect and aborts.
func (vc *VersionedConstants) GasCost(name string) uint64 {
	cost, hasCost := vc.osConstants.gasCosts[name]
	if hasCost {
		return cost
	}

	if slices.Contains(process.AllowedGasCostNames, name) {
		panic(fmt.Sprintf("gas cost '%s' is allow-listed but missing from the snapshot; was validation skipped?", name))
	}
	panic(fmt.Sprintf("only allow-listed gas costs may be requested, got '%s'", name))
}

// TxInitialGas returns the initial gas any transaction starts its run with
func (vc *VersionedConstants) TxInitialGas() uint64 {
	return vc.GasCost(process.InitialGasCost) - vc.GasCost(process.TransactionGasCost)
}

// TxEventLimits returns the per-transaction event size limits
func (vc *VersionedConstants) TxEventLimits() EventLimits {
	return vc.txEventLimits
}

// InvokeTxMaxNSteps returns the step cap of invoke transactions
func (vc *VersionedConstants) InvokeTxMaxNSteps() uint32 {
	return vc.invokeTxMaxNSteps
}

// ValidateMaxNSteps returns the step cap of the validate phase
func (vc *VersionedConstants) ValidateMaxNSteps() uint32 {
	return vc.validateMaxNSteps
}

// MaxRecursionDepth returns the maximum allowed call recursion depth
func (vc *VersionedConstants) MaxRecursionDepth() uint64 {
	return vc.maxRecursionDepth
}

// L2ResourceGasCosts returns the archival data gas ratios
func (vc *VersionedConstants) L2ResourceGasCosts() L2ResourceGasCosts {
	return vc.l2ResourceGasCosts
}

// VMResourceFeeCost returns the resource name to cost-per-unit table. The
// returned map is shared and must be treated as read-only.
func (vc *VersionedConstants) VMResourceFeeCost() map[string]*big.Rat {
	return vc.vmResourceFeeCost
}

// ValidateBlockNumberRounding returns the flooring factor applied to the
// block number in validate mode
func (vc *VersionedConstants) ValidateBlockNumberRounding() uint64 {
	return vc.osConstants.validateRoundingConsts.ValidateBlockNumberRounding
}

// ValidateTimestampRounding returns the flooring factor applied to the
// block timestamp in validate mode
func (vc *VersionedConstants) ValidateTimestampRounding() uint64 {
	return vc.osConstants.validateRoundingConsts.ValidateTimestampRounding
}

// OsResourcesForTxType returns constant + calldataFactor * calldataLength for
// the given transaction type
func (vc *VersionedConstants) OsResourcesForTxType(txType process.TransactionType, calldataLength int) *resources.ExecutionResources {
	return vc.osResources.resourcesForTxType(txType, calldataLength)
}

// OsKzgDaResources returns the OS cost of computing the KZG commitment info
// over a data segment of the given length
func (vc *VersionedConstants) OsKzgDaResources(dataSegmentLength int) *resources.ExecutionResources {
	return vc.osResources.osKzgDaResources(dataSegmentLength)
}

// AdditionalOsTxResources returns the extra OS resources of running the given
// transaction, including the KZG data availability cost when enabled
func (vc *VersionedConstants) AdditionalOsTxResources(
	txType process.TransactionType,
	calldataLength int,
	dataSegmentLength int,
	useKzgDA bool,
) *resources.ExecutionResources {
	return vc.osResources.additionalOsTxResources(txType, calldataLength, dataSegmentLength, useKzgDA)
}

// AdditionalOsSyscallResources returns the extra OS resources of serving the
// given syscall invocation counts
func (vc *VersionedConstants) AdditionalOsSyscallResources(syscallCounts map[process.SyscallName]uint64) *resources.ExecutionResources {
	return vc.osResources.additionalOsSyscallResources(syscallCounts)
}

// IsInterfaceNil returns true if there is no value under the interface
func (vc *VersionedConstants) IsInterfaceNil() bool {
	return vc == nil
}

package fee

import (
	"fmt"

	"github.com/starkfoundry/sn-exec-go/process"
	"github.com/starkfoundry/sn-exec-go/process/resources"
	"github.com/starkfoundry/sn-exec-go/process/versionedConstants"
)

// CalculateTxResources combines the raw execution trace, the OS per-type and
// data availability formulas and the transaction's starknet-specific
// resources into one ordered resources mapping. Pure function of its inputs.
func CalculateTxResources(
	vc *versionedConstants.VersionedConstants,
	executionResources *resources.ExecutionResources,
	txType process.TransactionType,
	starknetResources *StarknetResources,
	useKzgDA bool,
) (*resources.ResourcesMapping, error) {
	if vc.IsInterfaceNil() {
		return nil, process.ErrNilVersionedConstants
	}
	if executionResources == nil {
		return nil, process.ErrNilExecutionResources
	}

	dataSegmentLength := OnchainDataSegmentLength(starknetResources.StateChangesCount)
	totalVMUsage := executionResources.Clone()
	totalVMUsage.Add(vc.AdditionalOsTxResources(txType, starknetResources.CalldataLength, dataSegmentLength, useKzgDA))

	gasVector := starknetResources.ToGasVector(vc.L2ResourceGasCosts(), useKzgDA)
	if !gasVector.L1Gas.IsUint64() || !gasVector.L1DataGas.IsUint64() {
		return nil, fmt.Errorf("%w: transaction gas usage", process.ErrGasCostValueOutOfRange)
	}

	mapping := resources.NewResourcesMapping()
	mapping.Set(process.L1GasUsageResource, gasVector.L1Gas.Uint64())
	mapping.Set(process.L1BlobGasUsageResource, gasVector.L1DataGas.Uint64())
	// memory holes are charged as plain steps
	mapping.Set(process.NStepsResource, totalVMUsage.NSteps+totalVMUsage.NMemoryHoles)
	for _, builtin := range totalVMUsage.SortedBuiltinNames() {
		count := totalVMUsage.BuiltinInstanceCounter[builtin]
		if count == 0 {
			continue
		}
		mapping.Set(builtin, count)
	}

	return mapping, nil
}

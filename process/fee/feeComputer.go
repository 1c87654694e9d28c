package fee

import (
	"fmt"
	"math/big"

	"github.com/starkfoundry/sn-exec-go/data"
	"github.com/starkfoundry/sn-exec-go/process"
	"github.com/starkfoundry/sn-exec-go/process/resources"
)

// CalculateL1GasByVMUsage prices the VM portion of a resources mapping: the
// transaction is charged for its dominant resource, the one whose usage
// scaled by its cost-per-unit ratio is highest, rounded up
func CalculateL1GasByVMUsage(
	mapping *resources.ResourcesMapping,
	costTable map[string]*big.Rat,
) (*big.Int, error) {
	maxGas := new(big.Rat)
	for _, resourceName := range mapping.Keys() {
		if resourceName == process.L1GasUsageResource || resourceName == process.L1BlobGasUsageResource {
			continue
		}

		costPerUnit, hasCost := costTable[resourceName]
		if !hasCost {
			return nil, fmt.Errorf("%w: %s", process.ErrResourceNotInFeeCosts, resourceName)
		}

		usage, _ := mapping.Value(resourceName)
		gas := new(big.Rat).SetUint64(usage)
		gas.Mul(gas, costPerUnit)
		if gas.Cmp(maxGas) > 0 {
			maxGas = gas
		}
	}

	return ceilRat(maxGas), nil
}

// CalculateTxFee prices a transaction's resources mapping in the fee token's
// smallest unit: the dominant VM resource plus the L1 gas usage, at the
// block's gas price, plus the blob gas usage at the block's data gas price
func CalculateTxFee(
	mapping *resources.ResourcesMapping,
	blockContext *BlockContext,
	feeType data.FeeType,
) (*big.Int, error) {
	if blockContext == nil {
		return nil, process.ErrNilTransactionContext
	}
	if blockContext.VersionedConstants.IsInterfaceNil() {
		return nil, process.ErrNilVersionedConstants
	}

	l1GasUsage, hasL1GasUsage := mapping.Value(process.L1GasUsageResource)
	if !hasL1GasUsage {
		return nil, fmt.Errorf("%w: %s", process.ErrMissingResourceEntry, process.L1GasUsageResource)
	}
	l1BlobGasUsage, hasBlobGasUsage := mapping.Value(process.L1BlobGasUsageResource)
	if !hasBlobGasUsage {
		return nil, fmt.Errorf("%w: %s", process.ErrMissingResourceEntry, process.L1BlobGasUsageResource)
	}

	l1GasByVMUsage, err := CalculateL1GasByVMUsage(mapping, blockContext.VersionedConstants.VMResourceFeeCost())
	if err != nil {
		return nil, err
	}

	gasPrice := blockContext.BlockInfo.GasPrices.L1GasPrice(feeType)
	dataGasPrice := blockContext.BlockInfo.GasPrices.L1DataGasPrice(feeType)
	if gasPrice == nil || dataGasPrice == nil {
		return nil, fmt.Errorf("%w: fee type %s", process.ErrNilGasPrice, feeType)
	}

	totalL1Gas := new(big.Int).SetUint64(l1GasUsage)
	totalL1Gas.Add(totalL1Gas, l1GasByVMUsage)

	fee := new(big.Int).Mul(totalL1Gas, gasPrice)
	blobFee := new(big.Int).SetUint64(l1BlobGasUsage)
	blobFee.Mul(blobFee, dataGasPrice)

	return fee.Add(fee, blobFee), nil
}

package resources

import "math/big"

// GasVector is the L1 settlement gas attributed to a transaction's data
// availability, split between plain calldata gas and blob data gas
type GasVector struct {
	L1Gas     *big.Int
	L1DataGas *big.Int
}

// NewGasVector creates a zero gas vector
func NewGasVector() *GasVector {
	return &GasVector{
		L1Gas:     big.NewInt(0),
		L1DataGas: big.NewInt(0),
	}
}

// Add accumulates the other gas vector into the receiver
func (gv *GasVector) Add(other *GasVector) {
	if other == nil {
		return
	}

	gv.L1Gas.Add(gv.L1Gas, other.L1Gas)
	gv.L1DataGas.Add(gv.L1DataGas, other.L1DataGas)
}

// Clone returns a deep copy of the gas vector
func (gv *GasVector) Clone() *GasVector {
	return &GasVector{
		L1Gas:     big.NewInt(0).Set(gv.L1Gas),
		L1DataGas: big.NewInt(0).Set(gv.L1DataGas),
	}
}

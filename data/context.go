package data

import "math/big"

// FeeType identifies the token a transaction pays its fee in
type FeeType string

const (
	// FeeTypeEth defines fees denominated in the ETH fee token
	FeeTypeEth FeeType = "ETH"
	// FeeTypeStrk defines fees denominated in the STRK fee token
	FeeTypeStrk FeeType = "STRK"
)

// GasPrices holds the L1 gas and L1 data gas prices for one block, per fee token
type GasPrices struct {
	EthL1GasPrice      *big.Int
	StrkL1GasPrice     *big.Int
	EthL1DataGasPrice  *big.Int
	StrkL1DataGasPrice *big.Int
}

// L1GasPrice returns the L1 gas price for the given fee type
func (gp *GasPrices) L1GasPrice(feeType FeeType) *big.Int {
	if feeType == FeeTypeStrk {
		return gp.StrkL1GasPrice
	}

	return gp.EthL1GasPrice
}

// L1DataGasPrice returns the L1 data gas price for the given fee type
func (gp *GasPrices) L1DataGasPrice(feeType FeeType) *big.Int {
	if feeType == FeeTypeStrk {
		return gp.StrkL1DataGasPrice
	}

	return gp.EthL1DataGasPrice
}

// BlockInfo holds the block-scoped inputs of the fee computation
type BlockInfo struct {
	BlockNumber    uint64
	BlockTimestamp uint64
	UseKzgDA       bool
	GasPrices      GasPrices
}

// FeeTokenAddresses holds the fee token contract addresses, per fee token
type FeeTokenAddresses struct {
	EthFeeTokenAddress  []byte
	StrkFeeTokenAddress []byte
}

// FeeTokenAddress returns the fee token contract address for the given fee type
func (fta *FeeTokenAddresses) FeeTokenAddress(feeType FeeType) []byte {
	if feeType == FeeTypeStrk {
		return fta.StrkFeeTokenAddress
	}

	return fta.EthFeeTokenAddress
}

// ChainInfo holds the chain-scoped inputs of the fee computation
type ChainInfo struct {
	ChainID           string
	FeeTokenAddresses FeeTokenAddresses
}

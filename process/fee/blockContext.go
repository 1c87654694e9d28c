package fee

import (
	"github.com/starkfoundry/sn-exec-go/data"
	"github.com/starkfoundry/sn-exec-go/process"
	"github.com/starkfoundry/sn-exec-go/process/versionedConstants"
)

// BlockContext bundles the block-scoped inputs of the fee computation with
// the versioned constants snapshot resolved for the block's protocol version.
// One instance is shared read-only by every transaction of the block.
type BlockContext struct {
	BlockInfo          data.BlockInfo
	ChainInfo          data.ChainInfo
	VersionedConstants *versionedConstants.VersionedConstants
}

// TransactionContext bundles a block context with the fee-relevant view of
// one transaction
type TransactionContext struct {
	BlockContext *BlockContext
	TxInfo       process.TransactionInfoHandler
}

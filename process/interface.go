package process

import (
	"github.com/starkfoundry/sn-exec-go/data"
)

// TransactionInfoHandler exposes the fee-relevant view of the transaction being executed
type TransactionInfoHandler interface {
	SenderAddress() []byte
	FeeType() data.FeeType
	EnforceFee() bool
	IsInterfaceNil() bool
}

// VersionedConstantsSubscribeHandler gets notified when the registry switches to a
// new protocol version's constants
type VersionedConstantsSubscribeHandler interface {
	VersionedConstantsChange(protocolVersion string)
	IsInterfaceNil() bool
}

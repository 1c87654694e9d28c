package testscommon

import (
	"github.com/starkfoundry/sn-exec-go/data"
)

// TransactionInfoStub -
type TransactionInfoStub struct {
	SenderAddressCalled func() []byte
	FeeTypeCalled       func() data.FeeType
	EnforceFeeCalled    func() bool
}

// SenderAddress -
func (stub *TransactionInfoStub) SenderAddress() []byte {
	if stub.SenderAddressCalled != nil {
		return stub.SenderAddressCalled()
	}
	return []byte("sender")
}

// FeeType -
func (stub *TransactionInfoStub) FeeType() data.FeeType {
	if stub.FeeTypeCalled != nil {
		return stub.FeeTypeCalled()
	}
	return data.FeeTypeStrk
}

// EnforceFee -
func (stub *TransactionInfoStub) EnforceFee() bool {
	if stub.EnforceFeeCalled != nil {
		return stub.EnforceFeeCalled()
	}
	return true
}

// IsInterfaceNil -
func (stub *TransactionInfoStub) IsInterfaceNil() bool {
	return stub == nil
}

package testscommon

// VersionedConstantsSubscribeHandlerStub -
type VersionedConstantsSubscribeHandlerStub struct {
	VersionedConstantsChangeCalled func(protocolVersion string)
}

// VersionedConstantsChange -
func (stub *VersionedConstantsSubscribeHandlerStub) VersionedConstantsChange(protocolVersion string) {
	if stub.VersionedConstantsChangeCalled != nil {
		stub.VersionedConstantsChangeCalled(protocolVersion)
	}
}

// IsInterfaceNil -
func (stub *VersionedConstantsSubscribeHandlerStub) IsInterfaceNil() bool {
	return stub == nil
}

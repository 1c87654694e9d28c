package config

// ConstantsByProtocolVersion binds one versioned constants document to the
// protocol version range it covers, starting at StartVersion
type ConstantsByProtocolVersion struct {
	StartVersion string
	FileName     string
}

// VersionedConstantsConfig holds the versioned constants documents configuration
type VersionedConstantsConfig struct {
	ConstantsByProtocol []ConstantsByProtocolVersion
}

package versionedConstants

// CreateTestVersionedConstants builds a snapshot from a possibly partial
// document, skipping the completeness and closed-set validations. To be used
// in tests only; production loading always validates.
func CreateTestVersionedConstants(rawDocument []byte) (*VersionedConstants, error) {
	return newVersionedConstants(rawDocument, true)
}

package state

// StorageEntryKey identifies one storage cell of one contract
type StorageEntryKey struct {
	ContractAddress string
	StorageKey      string
}

// StateChanges records the state mutations observed while executing one
// transaction against the cached key-value state. Merging two records
// accumulates their key sets; repeated writes to the same key stay one entry.
type StateChanges struct {
	StorageUpdates    map[StorageEntryKey]struct{}
	NonceUpdates      map[string]struct{}
	ClassHashUpdates  map[string]struct{}
	DeployedContracts map[string]struct{}
}

// StateChangesCount summarizes a state changes record for the data
// availability cost computation
type StateChangesCount struct {
	NumStorageUpdates    int
	NumNonceUpdates      int
	NumClassHashUpdates  int
	NumModifiedContracts int
}

// NewStateChanges creates an empty state changes record
func NewStateChanges() *StateChanges {
	return &StateChanges{
		StorageUpdates:    make(map[StorageEntryKey]struct{}),
		NonceUpdates:      make(map[string]struct{}),
		ClassHashUpdates:  make(map[string]struct{}),
		DeployedContracts: make(map[string]struct{}),
	}
}

// AddStorageUpdate records a write to one storage cell
func (sc *StateChanges) AddStorageUpdate(contractAddress []byte, storageKey []byte) {
	sc.StorageUpdates[StorageEntryKey{
		ContractAddress: string(contractAddress),
		StorageKey:      string(storageKey),
	}] = struct{}{}
}

// AddNonceUpdate records a nonce increment for one contract
func (sc *StateChanges) AddNonceUpdate(contractAddress []byte) {
	sc.NonceUpdates[string(contractAddress)] = struct{}{}
}

// AddClassHashUpdate records a class hash replacement for one contract
func (sc *StateChanges) AddClassHashUpdate(contractAddress []byte) {
	sc.ClassHashUpdates[string(contractAddress)] = struct{}{}
}

// AddDeployedContract records a newly deployed contract
func (sc *StateChanges) AddDeployedContract(contractAddress []byte) {
	sc.DeployedContracts[string(contractAddress)] = struct{}{}
}

// Merge accumulates the other record into the receiver. Merging is
// associative and commutative; disjoint key sets sum their counts.
func (sc *StateChanges) Merge(other *StateChanges) {
	if other == nil {
		return
	}

	for key := range other.StorageUpdates {
		sc.StorageUpdates[key] = struct{}{}
	}
	for address := range other.NonceUpdates {
		sc.NonceUpdates[address] = struct{}{}
	}
	for address := range other.ClassHashUpdates {
		sc.ClassHashUpdates[address] = struct{}{}
	}
	for address := range other.DeployedContracts {
		sc.DeployedContracts[address] = struct{}{}
	}
}

// CountForFeeCharge summarizes the record for data availability billing. The
// sender's own balance cell in the fee token contract is excluded: its update
// is implicit in every transaction. The fee token contract itself counts as a
// modified contract only when a non-excluded write still touches it.
func (sc *StateChanges) CountForFeeCharge(senderAddress []byte, feeTokenAddress []byte) StateChangesCount {
	numStorageUpdates := len(sc.StorageUpdates)
	if senderAddress != nil {
		senderBalanceKey := StorageEntryKey{
			ContractAddress: string(feeTokenAddress),
			StorageKey:      string(senderAddress),
		}
		_, hasSenderBalanceUpdate := sc.StorageUpdates[senderBalanceKey]
		if hasSenderBalanceUpdate {
			numStorageUpdates--
		}
	}

	modifiedContracts := make(map[string]struct{})
	for key := range sc.StorageUpdates {
		if key.ContractAddress == string(feeTokenAddress) {
			continue
		}
		modifiedContracts[key.ContractAddress] = struct{}{}
	}
	for address := range sc.NonceUpdates {
		modifiedContracts[address] = struct{}{}
	}
	for address := range sc.ClassHashUpdates {
		modifiedContracts[address] = struct{}{}
	}
	for address := range sc.DeployedContracts {
		modifiedContracts[address] = struct{}{}
	}

	return StateChangesCount{
		NumStorageUpdates:    numStorageUpdates,
		NumNonceUpdates:      len(sc.NonceUpdates),
		NumClassHashUpdates:  len(sc.ClassHashUpdates),
		NumModifiedContracts: len(modifiedContracts),
	}
}

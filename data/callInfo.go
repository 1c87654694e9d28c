package data

// OrderedEvent is one event emitted during a call, with its emission order
// inside the transaction
type OrderedEvent struct {
	Order uint64
	Keys  [][]byte
	Data  [][]byte
}

// OrderedL2ToL1Message is one message sent to L1 during a call, with its
// emission order inside the transaction
type OrderedL2ToL1Message struct {
	Order     uint64
	ToAddress []byte
	Payload   [][]byte
}

// CallInfo is one node of a transaction's call tree, holding the events and
// L2 to L1 messages emitted by that call together with its inner calls
type CallInfo struct {
	CallerAddress   []byte
	ContractAddress []byte
	Events          []OrderedEvent
	L2ToL1Messages  []OrderedL2ToL1Message
	InnerCalls      []*CallInfo
}

// AllCalls returns the call and all its inner calls, outer call first, in a
// deterministic depth-first order
func (ci *CallInfo) AllCalls() []*CallInfo {
	if ci == nil {
		return nil
	}

	calls := []*CallInfo{ci}
	for _, inner := range ci.InnerCalls {
		calls = append(calls, inner.AllCalls()...)
	}

	return calls
}

// NumEmittedEvents returns the number of events emitted by the call and all its inner calls
func (ci *CallInfo) NumEmittedEvents() int {
	numEvents := 0
	for _, call := range ci.AllCalls() {
		numEvents += len(call.Events)
	}

	return numEvents
}

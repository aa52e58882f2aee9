package quorumtest

import (
	"github.com/iov-one/quorum"
)

// Invocation is the record of a single Invoke call.
type Invocation struct {
	Destination quorum.Address
	Amount      int64
	Payload     []byte
}

// Invoker is a mock of the engine's action boundary.
//
// By default every invocation succeeds. Set Err to make all further
// invocations fail with that error. Every call is recorded regardless
// of the outcome.
type Invoker struct {
	// Err is returned by every Invoke call when set.
	Err error

	// Invocations are all recorded calls, in order.
	Invocations []Invocation
}

// Invoke records the call and returns Err.
func (i *Invoker) Invoke(db quorum.KVStore, destination quorum.Address, amount int64, payload []byte) error {
	i.Invocations = append(i.Invocations, Invocation{
		Destination: destination,
		Amount:      amount,
		Payload:     payload,
	})
	return i.Err
}

// CallCount returns the number of recorded invocations.
func (i *Invoker) CallCount() int {
	return len(i.Invocations)
}

package multisig

import (
	"github.com/iov-one/quorum"
)

// Invoker performs the side-effecting action named by an executed
// proposal. The engine treats it strictly as a black box with two
// outcomes: nil means success, any error means failure and triggers a
// full rollback of the enclosing operation.
//
// The invoker writes through the same store view as the engine, so
// its writes are part of the same all-or-nothing commit.
type Invoker interface {
	Invoke(db quorum.KVStore, destination quorum.Address, amount int64, payload []byte) error
}

// CashKeeper manages the funds held by the wallet. x/cash provides
// the standard implementation.
type CashKeeper interface {
	// Credit adds the amount to the destination account.
	Credit(db quorum.KVStore, dest quorum.Address, amount int64) error
	// Balance returns the funds currently held by the account.
	Balance(db quorum.ReadOnlyKVStore, addr quorum.Address) (int64, error)
}

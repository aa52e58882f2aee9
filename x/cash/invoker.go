package cash

import (
	"github.com/iov-one/quorum"
)

// WalletInvoker executes fund-transfer actions on behalf of a wallet:
// the proposal's amount moves from the wallet's account to the
// destination. The payload is not interpreted here, it is meant for
// whatever the destination addresses.
//
// It satisfies the multisig.Invoker interface. A transfer exceeding
// the wallet's balance fails, which the engine reports as an
// execution failure and rolls back.
type WalletInvoker struct {
	ctrl   Controller
	source quorum.Address
}

// NewWalletInvoker returns an invoker transferring funds out of the
// source account.
func NewWalletInvoker(ctrl Controller, source quorum.Address) WalletInvoker {
	return WalletInvoker{
		ctrl:   ctrl,
		source: source,
	}
}

// Invoke moves the amount from the wallet to the destination.
func (i WalletInvoker) Invoke(db quorum.KVStore, destination quorum.Address, amount int64, payload []byte) error {
	return i.ctrl.Move(db, i.source, destination, amount)
}

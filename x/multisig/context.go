package multisig

import (
	"context"

	"github.com/iov-one/quorum"
)

type contextKey int // local to the multisig module

const (
	contextKeySelfGovernance contextKey = iota
)

// withSelfGovernance is a private function, as only the engine's own
// execute step may grant governance power. A context carrying this
// marker cannot be produced outside this package.
func withSelfGovernance(ctx quorum.Context) quorum.Context {
	return context.WithValue(ctx, contextKeySelfGovernance, true)
}

// hasSelfGovernance returns true iff the call originates from the
// engine executing one of its own proposals.
func hasSelfGovernance(ctx quorum.Context) bool {
	val, _ := ctx.Value(contextKeySelfGovernance).(bool)
	return val
}

// SelfCondition returns the condition under which a wallet governs
// itself. Its address is the destination a proposal must name to
// carry a self-governance payload.
func SelfCondition(walletID []byte) quorum.Condition {
	return quorum.NewCondition("multisig", "self", walletID)
}

package multisig

import (
	"strconv"

	"github.com/iov-one/quorum"
	"github.com/tendermint/tendermint/libs/common"
)

// Event types, one per state-changing effect.
const (
	EventDeposit           = "deposit"
	EventProposalSubmitted = "proposal-submitted"
	EventProposalConfirmed = "proposal-confirmed"
	EventProposalRevoked   = "proposal-revoked"
	EventProposalExecuted  = "proposal-executed"
	EventQuorumChanged     = "quorum-changed"
)

// Attribute keys used by the events above.
const (
	tagSender      = "sender"
	tagAmount      = "amount"
	tagProposalID  = "proposal-id"
	tagPrincipal   = "principal"
	tagDestination = "destination"
	tagPayload     = "payload"
	tagOldQuorum   = "old-quorum"
	tagNewQuorum   = "new-quorum"
)

// Event is one entry of the audit stream. Events are delivered to
// listeners synchronously, after the state change was committed, in
// call order.
type Event struct {
	Type       string
	Attributes []common.KVPair
}

// Listener observes the audit stream. Implementations must not call
// back into the engine from Notify.
type Listener interface {
	Notify(Event)
}

func pair(key string, value []byte) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: value}
}

func num(n int64) []byte {
	return []byte(strconv.FormatInt(n, 10))
}

func depositEvent(from quorum.Address, amount int64) Event {
	return Event{
		Type: EventDeposit,
		Attributes: []common.KVPair{
			pair(tagSender, []byte(from.String())),
			pair(tagAmount, num(amount)),
		},
	}
}

func submittedEvent(id int64, p *Proposal) Event {
	return Event{
		Type: EventProposalSubmitted,
		Attributes: []common.KVPair{
			pair(tagProposalID, num(id)),
			pair(tagDestination, []byte(p.Destination.String())),
			pair(tagAmount, num(p.Amount)),
			pair(tagPayload, p.Payload),
		},
	}
}

func confirmedEvent(id int64, principal quorum.Address) Event {
	return Event{
		Type: EventProposalConfirmed,
		Attributes: []common.KVPair{
			pair(tagProposalID, num(id)),
			pair(tagPrincipal, []byte(principal.String())),
		},
	}
}

func revokedEvent(id int64, principal quorum.Address) Event {
	return Event{
		Type: EventProposalRevoked,
		Attributes: []common.KVPair{
			pair(tagProposalID, num(id)),
			pair(tagPrincipal, []byte(principal.String())),
		},
	}
}

func executedEvent(id int64) Event {
	return Event{
		Type: EventProposalExecuted,
		Attributes: []common.KVPair{
			pair(tagProposalID, num(id)),
		},
	}
}

func quorumChangedEvent(oldValue, newValue int64) Event {
	return Event{
		Type: EventQuorumChanged,
		Attributes: []common.KVPair{
			pair(tagOldQuorum, num(oldValue)),
			pair(tagNewQuorum, num(newValue)),
		},
	}
}

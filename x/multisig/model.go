package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// To avoid burning CPU, this is the maximum number of principals
// allowed to control a single wallet.
const maxPrincipalsAllowed = 100

// Contract is the principal registry of one wallet: the fixed set of
// principals and the current confirmation threshold.
//
// The principal set is established at construction time and has no
// mutation API. Only the threshold can change, and only through an
// executed proposal.
type Contract struct {
	Participants []quorum.Address
	Threshold    int64
}

// Validate enforces the construction invariants: non-empty principal
// set, no duplicate or malformed principal, threshold within bounds.
func (c *Contract) Validate() error {
	switch n := len(c.Participants); {
	case n == 0:
		return errors.Wrap(errors.ErrModel, "no participants")
	case n > maxPrincipalsAllowed:
		return errors.Wrap(errors.ErrModel, "too many participants")
	}
	index := make(map[string]struct{})
	for _, p := range c.Participants {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "participant %s", p)
		}
		key := p.String()
		if _, exists := index[key]; exists {
			return errors.Wrapf(errors.ErrDuplicate, "participant %s", p)
		}
		index[key] = struct{}{}
	}
	return validateThreshold(c.Threshold, int64(len(c.Participants)))
}

// IsParticipant returns true iff the address belongs to the registry.
func (c *Contract) IsParticipant(a quorum.Address) bool {
	for _, p := range c.Participants {
		if p.Equals(a) {
			return true
		}
	}
	return false
}

// Copy returns a deep copy, so mutating the result cannot leak into
// persisted state.
func (c *Contract) Copy() *Contract {
	ps := make([]quorum.Address, 0, len(c.Participants))
	for _, p := range c.Participants {
		addr := make(quorum.Address, len(p))
		copy(addr, p)
		ps = append(ps, addr)
	}
	return &Contract{
		Participants: ps,
		Threshold:    c.Threshold,
	}
}

// validateThreshold returns an error unless 1 <= threshold <= total.
func validateThreshold(threshold, total int64) error {
	if threshold < 1 {
		return errors.Wrap(ErrInvalidQuorum, "threshold must be greater than 0")
	}
	if threshold > total {
		return errors.Wrapf(ErrInvalidQuorum,
			"threshold is %d and must not be greater than %d", threshold, total)
	}
	return nil
}

// Proposal describes one action awaiting confirmations. It is
// identified by a zero-based sequence number assigned by the
// ProposalBucket and never reused.
type Proposal struct {
	// Destination is the opaque target of the action. It may be the
	// engine's own address for self-governance payloads.
	Destination quorum.Address
	// Amount is transferred to the destination on execution.
	Amount int64
	// Payload is interpreted only by whatever the destination
	// addresses. The engine imposes no structure on it.
	Payload []byte
	// Executed flips to true exactly once and never reverts.
	Executed bool
	// Confirmations equals the number of principals currently
	// standing behind the proposal.
	Confirmations int64
}

func (p *Proposal) Validate() error {
	if err := p.Destination.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidDestination, "%s", p.Destination)
	}
	if p.Amount < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative amount %d", p.Amount)
	}
	if p.Confirmations < 0 {
		return errors.Wrap(errors.ErrModel, "negative confirmation count")
	}
	return nil
}

// Copy returns a deep copy of the proposal.
func (p *Proposal) Copy() *Proposal {
	dest := make(quorum.Address, len(p.Destination))
	copy(dest, p.Destination)
	var payload []byte
	if p.Payload != nil {
		payload = make([]byte, len(p.Payload))
		copy(payload, p.Payload)
	}
	return &Proposal{
		Destination:   dest,
		Amount:        p.Amount,
		Payload:       payload,
		Executed:      p.Executed,
		Confirmations: p.Confirmations,
	}
}

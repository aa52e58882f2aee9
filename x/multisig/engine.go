package multisig

import (
	"sync"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Engine is the orchestrator of the wallet. It exclusively owns the
// registry and the proposal store and is the only entry point for
// callers. Callers arrive pre-authenticated: every operation takes
// the verified identity of the calling principal as an argument.
//
// All mutating operations are serialized and each runs inside a
// cache-wrap of the backing store. The wrap is committed only when
// the whole operation succeeded, so no partially applied state is
// ever observable and a failing invocation leaves the store exactly
// as it was before the call.
type Engine struct {
	mutex     sync.RWMutex
	db        quorum.CacheableKVStore
	invoker   Invoker
	cash      CashKeeper
	address   quorum.Address
	listeners []Listener
	contracts ContractBucket
	proposals ProposalBucket
}

// NewEngine sets up the wallet. The participants and the threshold
// are checked once; a violation is fatal and the engine is not
// created. When db already holds a registry (engine restart), the
// stored registry wins: it carries the threshold as possibly changed
// by governance, and its participants must match the given ones.
func NewEngine(
	db quorum.CacheableKVStore,
	walletID []byte,
	participants []quorum.Address,
	threshold int64,
	invoker Invoker,
	cash CashKeeper,
) (*Engine, error) {
	if len(walletID) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "wallet id")
	}
	if invoker == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "invoker")
	}
	if cash == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "cash keeper")
	}

	e := &Engine{
		db:      db,
		invoker: invoker,
		cash:    cash,
		address: SelfCondition(walletID).Address(),
	}

	contract := &Contract{
		Participants: participants,
		Threshold:    threshold,
	}
	if err := contract.Validate(); err != nil {
		return nil, errors.Wrap(err, "contract")
	}

	tx := e.db.CacheWrap()
	if e.contracts.Has(tx) {
		stored, err := e.contracts.Get(tx)
		if err != nil {
			tx.Discard()
			return nil, err
		}
		if !sameParticipants(stored.Participants, participants) {
			tx.Discard()
			return nil, errors.Wrap(errors.ErrState, "stored participants differ")
		}
		tx.Discard()
		return e, nil
	}
	if err := e.contracts.Save(tx, contract); err != nil {
		tx.Discard()
		return nil, err
	}
	tx.Write()
	return e, nil
}

func sameParticipants(a, b []quorum.Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

// Address returns the engine's own address. A proposal naming it as
// destination carries a self-governance payload.
func (e *Engine) Address() quorum.Address {
	return e.address
}

// Subscribe registers a listener for the audit stream. Listeners are
// notified synchronously after each committed state change.
func (e *Engine) Subscribe(l Listener) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.listeners = append(e.listeners, l)
}

// update is the transactional wrapper around every mutating
// operation: run op against a cache-wrap, commit and publish events
// on success, discard everything on failure.
func (e *Engine) update(ctx quorum.Context, op func(tx quorum.KVStore) ([]Event, error)) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	tx := e.db.CacheWrap()
	events, err := op(tx)
	if err != nil {
		tx.Discard()
		quorum.GetLogger(ctx).Error("operation rejected", "err", err)
		return err
	}
	tx.Write()
	e.notify(ctx, events)
	return nil
}

func (e *Engine) notify(ctx quorum.Context, events []Event) {
	logger := quorum.GetLogger(ctx)
	for _, ev := range events {
		logger.Debug("audit event", "type", ev.Type)
		for _, l := range e.listeners {
			l.Notify(ev)
		}
	}
}

// participant loads the registry and ensures the caller belongs to it.
func (e *Engine) participant(tx quorum.ReadOnlyKVStore, caller quorum.Address) (*Contract, error) {
	contract, err := e.contracts.Get(tx)
	if err != nil {
		return nil, err
	}
	if !contract.IsParticipant(caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not a principal", caller)
	}
	return contract, nil
}

// Submit creates a new proposal and immediately confirms it for the
// submitting principal, so a fresh proposal always starts with
// exactly one confirmation. With a quorum of one this executes the
// action within the same call.
func (e *Engine) Submit(ctx quorum.Context, caller quorum.Address, destination quorum.Address, amount int64, payload []byte) (int64, error) {
	var id int64
	err := e.update(ctx, func(tx quorum.KVStore) ([]Event, error) {
		contract, err := e.participant(tx, caller)
		if err != nil {
			return nil, err
		}
		if err := destination.Validate(); err != nil {
			return nil, errors.Wrapf(ErrInvalidDestination, "%s", destination)
		}
		if amount < 0 {
			return nil, errors.Wrapf(errors.ErrAmount, "negative amount %d", amount)
		}
		p := &Proposal{
			Destination: destination,
			Amount:      amount,
			Payload:     payload,
		}
		pid, err := e.proposals.Create(tx, p)
		if err != nil {
			return nil, err
		}
		events := []Event{submittedEvent(pid, p)}
		evs, err := e.confirm(ctx, tx, contract, pid, caller)
		if err != nil {
			return nil, err
		}
		id = pid
		return append(events, evs...), nil
	})
	return id, err
}

// Confirm records the caller's consent for a pending proposal. If the
// new confirmation count reaches the quorum, the call atomically
// continues into the execute path: a failure there undoes the
// confirmation as well.
func (e *Engine) Confirm(ctx quorum.Context, caller quorum.Address, id int64) error {
	return e.update(ctx, func(tx quorum.KVStore) ([]Event, error) {
		contract, err := e.participant(tx, caller)
		if err != nil {
			return nil, err
		}
		return e.confirm(ctx, tx, contract, id, caller)
	})
}

func (e *Engine) confirm(ctx quorum.Context, tx quorum.KVStore, contract *Contract, id int64, caller quorum.Address) ([]Event, error) {
	p, err := e.proposals.Get(tx, id)
	if err != nil {
		return nil, err
	}
	if p.Executed {
		return nil, errors.Wrapf(ErrAlreadyExecuted, "proposal %d", id)
	}
	if e.proposals.IsConfirmed(tx, id, caller) {
		return nil, errors.Wrapf(ErrAlreadyConfirmed, "proposal %d by %s", id, caller)
	}
	count, err := e.proposals.SetConfirmed(tx, id, caller, true)
	if err != nil {
		return nil, err
	}
	events := []Event{confirmedEvent(id, caller)}
	if count < contract.Threshold {
		return events, nil
	}
	evs, err := e.executeProposal(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	return append(events, evs...), nil
}

// Revoke withdraws the caller's standing confirmation from a pending
// proposal. There is no auto-trigger on revoke.
func (e *Engine) Revoke(ctx quorum.Context, caller quorum.Address, id int64) error {
	return e.update(ctx, func(tx quorum.KVStore) ([]Event, error) {
		if _, err := e.participant(tx, caller); err != nil {
			return nil, err
		}
		p, err := e.proposals.Get(tx, id)
		if err != nil {
			return nil, err
		}
		if p.Executed {
			return nil, errors.Wrapf(ErrAlreadyExecuted, "proposal %d", id)
		}
		if !e.proposals.IsConfirmed(tx, id, caller) {
			return nil, errors.Wrapf(ErrNotConfirmed, "proposal %d by %s", id, caller)
		}
		if _, err := e.proposals.SetConfirmed(tx, id, caller, false); err != nil {
			return nil, err
		}
		return []Event{revokedEvent(id, caller)}, nil
	})
}

// Execute runs the action of a proposal that already reached the
// quorum. On invoker failure nothing is retained and the proposal
// stays pending with its confirmations intact, so the execution may
// be retried once the external condition is fixed.
func (e *Engine) Execute(ctx quorum.Context, caller quorum.Address, id int64) error {
	return e.update(ctx, func(tx quorum.KVStore) ([]Event, error) {
		contract, err := e.participant(tx, caller)
		if err != nil {
			return nil, err
		}
		p, err := e.proposals.Get(tx, id)
		if err != nil {
			return nil, err
		}
		if p.Executed {
			return nil, errors.Wrapf(ErrAlreadyExecuted, "proposal %d", id)
		}
		if p.Confirmations < contract.Threshold {
			return nil, errors.Wrapf(ErrInsufficientConfirmations,
				"%d of %d", p.Confirmations, contract.Threshold)
		}
		return e.executeProposal(ctx, tx, id)
	})
}

// executeProposal performs the terminal transition. It must only be
// called with a pending proposal that satisfies the quorum.
func (e *Engine) executeProposal(ctx quorum.Context, tx quorum.KVStore, id int64) ([]Event, error) {
	p, err := e.proposals.Get(tx, id)
	if err != nil {
		return nil, err
	}

	var events []Event
	if p.Destination.Equals(e.address) {
		ev, err := e.executeSelf(ctx, tx, p.Payload)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	} else {
		if err := e.invoker.Invoke(tx, p.Destination, p.Amount, p.Payload); err != nil {
			return nil, errors.Wrapf(ErrExecutionFailed, "%s", err)
		}
	}

	if err := e.proposals.MarkExecuted(tx, id); err != nil {
		return nil, err
	}
	return append(events, executedEvent(id)), nil
}

// executeSelf dispatches a self-governance payload. The engine acts
// as its own invoker here, so a malformed payload is an execution
// failure like any other.
func (e *Engine) executeSelf(ctx quorum.Context, tx quorum.KVStore, payload []byte) (Event, error) {
	msg, err := ParseMsg(payload)
	if err != nil {
		return Event{}, errors.Wrapf(ErrExecutionFailed, "%s", err)
	}
	switch m := msg.(type) {
	case *UpdateQuorumMsg:
		return e.reconfigure(withSelfGovernance(ctx), tx, m.Threshold)
	default:
		return Event{}, errors.Wrapf(ErrExecutionFailed, "unsupported message %q", msg.Path())
	}
}

// Reconfigure changes the quorum threshold. It is only reachable as
// the payload of a proposal that is itself being executed; any direct
// invocation fails with unauthorized, regardless of caller.
func (e *Engine) Reconfigure(ctx quorum.Context, caller quorum.Address, newThreshold int64) error {
	return e.update(ctx, func(tx quorum.KVStore) ([]Event, error) {
		ev, err := e.reconfigure(ctx, tx, newThreshold)
		if err != nil {
			return nil, err
		}
		return []Event{ev}, nil
	})
}

func (e *Engine) reconfigure(ctx quorum.Context, tx quorum.KVStore, newThreshold int64) (Event, error) {
	if !hasSelfGovernance(ctx) {
		return Event{}, errors.Wrap(errors.ErrUnauthorized,
			"quorum is changed only through an executed proposal")
	}
	contract, err := e.contracts.Get(tx)
	if err != nil {
		return Event{}, err
	}
	if err := validateThreshold(newThreshold, int64(len(contract.Participants))); err != nil {
		return Event{}, err
	}
	oldThreshold := contract.Threshold
	contract.Threshold = newThreshold
	if err := e.contracts.Save(tx, contract); err != nil {
		return Event{}, err
	}
	return quorumChangedEvent(oldThreshold, newThreshold), nil
}

// Deposit credits funds received by the wallet from outside. Anyone
// may deposit; a zero amount is accepted silently.
func (e *Engine) Deposit(ctx quorum.Context, from quorum.Address, amount int64) error {
	if err := from.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if amount < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative amount %d", amount)
	}
	if amount == 0 {
		return nil
	}
	return e.update(ctx, func(tx quorum.KVStore) ([]Event, error) {
		if err := e.cash.Credit(tx, e.address, amount); err != nil {
			return nil, err
		}
		return []Event{depositEvent(from, amount)}, nil
	})
}

// Quorum returns the current confirmation threshold.
func (e *Engine) Quorum() (int64, error) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	contract, err := e.contracts.Get(e.db)
	if err != nil {
		return 0, err
	}
	return contract.Threshold, nil
}

// PrincipalCount returns the size of the fixed principal set.
func (e *Engine) PrincipalCount() (int64, error) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	contract, err := e.contracts.Get(e.db)
	if err != nil {
		return 0, err
	}
	return int64(len(contract.Participants)), nil
}

// PrincipalAt enumerates the principal set, 0-indexed.
func (e *Engine) PrincipalAt(index int64) (quorum.Address, error) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	contract, err := e.contracts.Get(e.db)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= int64(len(contract.Participants)) {
		return nil, errors.Wrapf(errors.ErrInput, "principal index %d out of range", index)
	}
	addr := make(quorum.Address, len(contract.Participants[index]))
	copy(addr, contract.Participants[index])
	return addr, nil
}

// IsPrincipal returns true iff the address is a registered principal.
func (e *Engine) IsPrincipal(addr quorum.Address) (bool, error) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	contract, err := e.contracts.Get(e.db)
	if err != nil {
		return false, err
	}
	return contract.IsParticipant(addr), nil
}

// ProposalCount returns the number of proposals ever submitted.
func (e *Engine) ProposalCount() int64 {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.proposals.Count(e.db)
}

// Proposal returns the proposal with the given id. The result is a
// copy, mutating it does not affect the engine state.
func (e *Engine) Proposal(id int64) (*Proposal, error) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	p, err := e.proposals.Get(e.db, id)
	if err != nil {
		return nil, err
	}
	return p.Copy(), nil
}

// IsConfirmed returns whether the principal currently stands behind
// the proposal.
func (e *Engine) IsConfirmed(id int64, principal quorum.Address) (bool, error) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	if id < 0 || id >= e.proposals.Count(e.db) {
		return false, errors.Wrapf(errors.ErrNotFound, "proposal %d", id)
	}
	return e.proposals.IsConfirmed(e.db, id, principal), nil
}

// Balance returns the funds currently held by the wallet.
func (e *Engine) Balance() (int64, error) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.cash.Balance(e.db, e.address)
}

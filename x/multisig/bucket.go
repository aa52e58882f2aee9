package multisig

import (
	"encoding/binary"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

var (
	// contractKey is where the singleton registry is stored
	contractKey = []byte("contract")
	// proposalCountKey holds the number of proposals ever created
	proposalCountKey = []byte("proposals:size")

	proposalPrefix = []byte("proposals:")
	confirmPrefix  = []byte("confirm:")

	confirmed = []byte{1}
)

// ContractBucket persists the one Contract of the wallet.
type ContractBucket struct{}

// Get loads the registry. It is a coding error to read it before the
// engine stored it.
func (ContractBucket) Get(db quorum.ReadOnlyKVStore) (*Contract, error) {
	raw := db.Get(contractKey)
	if raw == nil {
		return nil, errors.Wrap(errors.ErrHuman, "contract not initialized")
	}
	var c Contract
	if err := cdc.UnmarshalBinaryBare(raw, &c); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "unmarshal contract: %s", err)
	}
	return &c, nil
}

// Has returns true if a registry was already stored.
func (ContractBucket) Has(db quorum.ReadOnlyKVStore) bool {
	return db.Has(contractKey)
}

// Save validates and stores the registry.
func (ContractBucket) Save(db quorum.KVStore, c *Contract) error {
	if err := c.Validate(); err != nil {
		return err
	}
	raw, err := cdc.MarshalBinaryBare(c)
	if err != nil {
		return errors.Wrap(err, "marshal contract")
	}
	db.Set(contractKey, raw)
	return nil
}

// ProposalBucket is the append-only, indexed collection of proposals
// together with the confirmation matrix. Proposal ids are dense,
// zero-based and never reused.
type ProposalBucket struct{}

func proposalKey(id int64) []byte {
	key := make([]byte, len(proposalPrefix)+8)
	copy(key, proposalPrefix)
	binary.BigEndian.PutUint64(key[len(proposalPrefix):], uint64(id))
	return key
}

func confirmKey(id int64, principal quorum.Address) []byte {
	key := make([]byte, 0, len(confirmPrefix)+8+1+len(principal))
	key = append(key, confirmPrefix...)
	var seq [8]byte
	binary.BigEndian.PutUint64(seq[:], uint64(id))
	key = append(key, seq[:]...)
	key = append(key, ':')
	return append(key, principal...)
}

// Count returns the number of proposals ever created.
func (ProposalBucket) Count(db quorum.ReadOnlyKVStore) int64 {
	raw := db.Get(proposalCountKey)
	if raw == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(raw))
}

// Get loads the proposal with the given id, or fails with ErrNotFound.
func (b ProposalBucket) Get(db quorum.ReadOnlyKVStore, id int64) (*Proposal, error) {
	if id < 0 || id >= b.Count(db) {
		return nil, errors.Wrapf(errors.ErrNotFound, "proposal %d", id)
	}
	raw := db.Get(proposalKey(id))
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrHuman, "proposal %d within size but missing", id)
	}
	var p Proposal
	if err := cdc.UnmarshalBinaryBare(raw, &p); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "unmarshal proposal: %s", err)
	}
	return &p, nil
}

// Create appends a new proposal and returns the assigned id.
func (b ProposalBucket) Create(db quorum.KVStore, p *Proposal) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	id := b.Count(db)
	if err := b.save(db, id, p); err != nil {
		return 0, err
	}
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], uint64(id+1))
	db.Set(proposalCountKey, raw[:])
	return id, nil
}

func (ProposalBucket) save(db quorum.KVStore, id int64, p *Proposal) error {
	raw, err := cdc.MarshalBinaryBare(p)
	if err != nil {
		return errors.Wrap(err, "marshal proposal")
	}
	db.Set(proposalKey(id), raw)
	return nil
}

// IsConfirmed returns the confirmation bit for the given pair.
func (ProposalBucket) IsConfirmed(db quorum.ReadOnlyKVStore, id int64, principal quorum.Address) bool {
	return db.Has(confirmKey(id, principal))
}

// SetConfirmed toggles the confirmation bit for the pair and adjusts
// the proposal's confirmation count by one. The caller must have
// checked via IsConfirmed that the toggle changes the bit, otherwise
// the count invariant is broken.
func (b ProposalBucket) SetConfirmed(db quorum.KVStore, id int64, principal quorum.Address, flag bool) (int64, error) {
	p, err := b.Get(db, id)
	if err != nil {
		return 0, err
	}
	if flag {
		db.Set(confirmKey(id, principal), confirmed)
		p.Confirmations++
	} else {
		db.Delete(confirmKey(id, principal))
		p.Confirmations--
	}
	if err := b.save(db, id, p); err != nil {
		return 0, err
	}
	return p.Confirmations, nil
}

// MarkExecuted moves the proposal into its terminal state.
func (b ProposalBucket) MarkExecuted(db quorum.KVStore, id int64) error {
	p, err := b.Get(db, id)
	if err != nil {
		return err
	}
	if p.Executed {
		return errors.Wrapf(ErrAlreadyExecuted, "proposal %d", id)
	}
	p.Executed = true
	return b.save(db, id, p)
}

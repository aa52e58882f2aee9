package cash

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	amino "github.com/tendermint/go-amino"
)

// BucketName is where we store the balances
const BucketName = "cash"

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterConcrete(&Wallet{}, "quorum/cash/Wallet", nil)
}

// Wallet is the balance of a single account.
type Wallet struct {
	Balance int64
}

func (w *Wallet) Validate() error {
	if w.Balance < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative balance %d", w.Balance)
	}
	return nil
}

// Bucket is a type-safe wrapper around the raw store.
type Bucket struct{}

func walletKey(addr quorum.Address) []byte {
	key := make([]byte, 0, len(BucketName)+1+len(addr))
	key = append(key, BucketName...)
	key = append(key, ':')
	return append(key, addr...)
}

// Get returns the wallet for the address, or nil if it never held
// funds.
func (Bucket) Get(db quorum.ReadOnlyKVStore, addr quorum.Address) (*Wallet, error) {
	raw := db.Get(walletKey(addr))
	if raw == nil {
		return nil, nil
	}
	var w Wallet
	if err := cdc.UnmarshalBinaryBare(raw, &w); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "unmarshal wallet: %s", err)
	}
	return &w, nil
}

// GetOrCreate returns the wallet for the address, creating an empty
// one if needed.
func (b Bucket) GetOrCreate(db quorum.ReadOnlyKVStore, addr quorum.Address) (*Wallet, error) {
	w, err := b.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = &Wallet{}
	}
	return w, nil
}

// Save validates and stores the wallet.
func (Bucket) Save(db quorum.KVStore, addr quorum.Address, w *Wallet) error {
	if err := w.Validate(); err != nil {
		return err
	}
	raw, err := cdc.MarshalBinaryBare(w)
	if err != nil {
		return errors.Wrap(err, "marshal wallet")
	}
	db.Set(walletKey(addr), raw)
	return nil
}

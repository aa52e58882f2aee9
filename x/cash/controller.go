package cash

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Controller moves funds between accounts. It satisfies the
// multisig.CashKeeper interface and backs the standard invoker.
type Controller struct {
	bucket Bucket
}

// NewController returns a controller operating on the cash bucket.
func NewController() Controller {
	return Controller{}
}

// Move transfers the given amount from src to dest. If src doesn't
// hold sufficient funds, it fails.
func (c Controller) Move(db quorum.KVStore, src, dest quorum.Address, amount int64) error {
	if amount < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative amount %d", amount)
	}
	if amount == 0 {
		return nil
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender == nil || sender.Balance < amount {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds in %s", src)
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}

	sender.Balance -= amount
	recipient.Balance += amount

	if err := c.bucket.Save(db, src, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, recipient)
}

// Credit adds the given amount of funds to the destination account.
func (c Controller) Credit(db quorum.KVStore, dest quorum.Address, amount int64) error {
	if amount < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative amount %d", amount)
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	recipient.Balance += amount
	return c.bucket.Save(db, dest, recipient)
}

// Balance returns the funds currently held by the account.
func (c Controller) Balance(db quorum.ReadOnlyKVStore, addr quorum.Address) (int64, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, err
	}
	if w == nil {
		return 0, nil
	}
	return w.Balance, nil
}

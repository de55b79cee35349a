package ledger

import "math"

// AccountStore is the balance cell for one owner. The balance is never
// negative and is mutated only through the hook dispatcher's
// capability-gated entry points; the fields are unexported so no caller can
// bypass them.
type AccountStore struct {
	owner   AccountID
	balance uint64
}

// NewAccountStore creates an empty store for owner. Host store resolvers
// call this when an account is addressed for the first time; a zero balance
// is a valid terminal state, stores are never deleted.
func NewAccountStore(owner AccountID) *AccountStore {
	return &AccountStore{owner: owner}
}

// Owner returns the account the store belongs to.
func (store *AccountStore) Owner() AccountID {
	return store.owner
}

// Balance returns the stored balance.
func (store *AccountStore) Balance() uint64 {
	return store.balance
}

func (store *AccountStore) credit(amount uint64) error {
	if store.balance > math.MaxUint64-amount {
		return NewOverflowError("balance")
	}
	store.balance += amount
	return nil
}

func (store *AccountStore) debit(amount uint64) error {
	if amount > store.balance {
		return NewInsufficientBalanceError(store.owner, amount, store.balance)
	}
	store.balance -= amount
	return nil
}

// DetachedAmount is a fungible value extracted from a store and not yet
// bound to any destination. It carries no owner tag and is consumable
// exactly once.
type DetachedAmount struct {
	units    uint64
	consumed bool
}

// Units returns the value carried.
func (value *DetachedAmount) Units() uint64 {
	return value.units
}

func (value *DetachedAmount) consume() (uint64, error) {
	if value.consumed {
		return 0, LedgerError{Message: "detached amount already consumed"}
	}
	value.consumed = true
	return value.units, nil
}

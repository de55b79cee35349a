package ledger

import "context"

// ActivityOracle reports how many transactions an account has committed on
// the host ledger. The counter is monotonically non-decreasing per account;
// zero means the account has never been active.
type ActivityOracle interface {
	ActivityCounter(ctx context.Context, account AccountID) (uint64, error)
}

// ReferenceBalanceOracle reports an account's balance in the host's
// designated reference currency, external to the managed asset.
type ReferenceBalanceOracle interface {
	ReferenceBalance(ctx context.Context, account AccountID) (uint64, error)
}

// EventSink accepts mint/burn records in emission order. The core only
// appends; it never reads the sink back. An Append failure aborts the
// emitting operation, which rolls its mutations back.
type EventSink interface {
	Append(ctx context.Context, event Event) error
}

// StoreResolver addresses balance stores by owner identity, creating a
// store on first use. Stores enumerates every store created so far, in a
// stable order, for state snapshots.
type StoreResolver interface {
	Resolve(account AccountID) (*AccountStore, error)
	Stores() ([]*AccountStore, error)
}

// BalanceReader exposes read-only balance lookups to withdraw hooks.
// *Ledger implements it.
type BalanceReader interface {
	BalanceOf(account AccountID) (uint64, error)
}

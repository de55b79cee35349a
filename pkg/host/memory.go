package host

import (
	"context"

	"github.com/openhooks/dispatch-ledger-go/pkg/ledger"
)

// MemoryHost implements ledger.ActivityOracle, ledger.ReferenceBalanceOracle,
// ledger.EventSink, and ledger.StoreResolver with in-process maps. It is not
// safe for concurrent use; the host contract has the embedder serialize
// operations.
type MemoryHost struct {
	activity  map[ledger.AccountID]uint64
	reference map[ledger.AccountID]uint64
	stores    map[ledger.AccountID]*ledger.AccountStore
	order     []ledger.AccountID
	events    []ledger.Event
}

// NewMemoryHost creates an empty host.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		activity:  map[ledger.AccountID]uint64{},
		reference: map[ledger.AccountID]uint64{},
		stores:    map[ledger.AccountID]*ledger.AccountStore{},
	}
}

// SetActivity sets an account's activity counter.
func (memoryHost *MemoryHost) SetActivity(account ledger.AccountID, counter uint64) {
	memoryHost.activity[account] = counter
}

// RecordTransaction increments an account's activity counter, the way the
// host ledger would on each committed transaction.
func (memoryHost *MemoryHost) RecordTransaction(account ledger.AccountID) {
	memoryHost.activity[account]++
}

// SetReferenceBalance sets an account's reference-currency balance.
func (memoryHost *MemoryHost) SetReferenceBalance(account ledger.AccountID, amount uint64) {
	memoryHost.reference[account] = amount
}

// ActivityCounter implements ledger.ActivityOracle.
func (memoryHost *MemoryHost) ActivityCounter(ctx context.Context, account ledger.AccountID) (uint64, error) {
	return memoryHost.activity[account], nil
}

// ReferenceBalance implements ledger.ReferenceBalanceOracle.
func (memoryHost *MemoryHost) ReferenceBalance(ctx context.Context, account ledger.AccountID) (uint64, error) {
	return memoryHost.reference[account], nil
}

// Append implements ledger.EventSink.
func (memoryHost *MemoryHost) Append(ctx context.Context, event ledger.Event) error {
	memoryHost.events = append(memoryHost.events, event)
	return nil
}

// Events returns the emitted events in emission order.
func (memoryHost *MemoryHost) Events() []ledger.Event {
	events := make([]ledger.Event, len(memoryHost.events))
	copy(events, memoryHost.events)
	return events
}

// Resolve implements ledger.StoreResolver, creating stores lazily.
func (memoryHost *MemoryHost) Resolve(account ledger.AccountID) (*ledger.AccountStore, error) {
	if store, exists := memoryHost.stores[account]; exists {
		return store, nil
	}
	store := ledger.NewAccountStore(account)
	memoryHost.stores[account] = store
	memoryHost.order = append(memoryHost.order, account)
	return store, nil
}

// Stores implements ledger.StoreResolver, returning stores in creation
// order.
func (memoryHost *MemoryHost) Stores() ([]*ledger.AccountStore, error) {
	stores := make([]*ledger.AccountStore, 0, len(memoryHost.order))
	for _, account := range memoryHost.order {
		stores = append(stores, memoryHost.stores[account])
	}
	return stores, nil
}

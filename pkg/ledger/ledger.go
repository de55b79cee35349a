package ledger

import (
	"context"
	"fmt"
	"math"
)

// Ledger owns all registry state for one deployed asset: the immutable
// descriptor, the authoritative supply counter, the capability bundle, and
// the bound hooks. It is constructed once through Registry.Initialize and
// passed by reference. It holds no locks and spawns no work of its own; the
// host runs each operation inside its own atomic envelope.
type Ledger struct {
	descriptor AssetDescriptor
	issuer     AccountID
	supply     uint64

	bundle       *CapabilityBundle
	withdrawHook WithdrawHook
	depositHook  DepositHook

	resolver StoreResolver
	sink     EventSink
}

// Descriptor returns the asset descriptor.
func (assetLedger *Ledger) Descriptor() AssetDescriptor {
	return assetLedger.descriptor
}

// TotalSupply returns the authoritative supply counter. It equals the sum
// of all stored balances after every committed operation.
func (assetLedger *Ledger) TotalSupply() uint64 {
	return assetLedger.supply
}

// BalanceOf returns account's balance. Accounts that never received funds
// hold zero.
func (assetLedger *Ledger) BalanceOf(account AccountID) (uint64, error) {
	normalized, err := NormalizeAccountID(account)
	if err != nil {
		return 0, err
	}
	store, err := assetLedger.resolver.Resolve(normalized)
	if err != nil {
		return 0, err
	}
	return store.Balance(), nil
}

// Snapshot returns a deep copy of the descriptor, the supply counter, and
// every created balance.
func (assetLedger *Ledger) Snapshot() (State, error) {
	stores, err := assetLedger.resolver.Stores()
	if err != nil {
		return State{}, err
	}

	balances := make(map[AccountID]uint64, len(stores))
	for _, store := range stores {
		balances[store.Owner()] = store.Balance()
	}

	return State{
		Descriptor: assetLedger.descriptor,
		Supply:     assetLedger.supply,
		Balances:   balances,
	}, nil
}

// Mint creates amount new units in to's store and increments the supply
// counter. It requires the mint capability, which only the issuer holds,
// and deliberately does not route the credit through the deposit hook:
// minting is a privileged path, not a peer-to-peer transfer. Amount zero is
// a permitted no-op mint.
func (assetLedger *Ledger) Mint(ctx context.Context, caller AccountID, to AccountID, amount uint64) (Event, error) {
	normalizedCaller, err := NormalizeAccountID(caller)
	if err != nil {
		return Event{}, err
	}
	normalizedTo, err := NormalizeAccountID(to)
	if err != nil {
		return Event{}, err
	}

	handle, err := assetLedger.borrowIssuerCapability(normalizedCaller, assetLedger.bundle.mint)
	if err != nil {
		return Event{}, err
	}
	if err := assetLedger.requireCapability(handle, capabilityMint); err != nil {
		return Event{}, err
	}

	store, err := assetLedger.resolver.Resolve(normalizedTo)
	if err != nil {
		return Event{}, err
	}

	if assetLedger.supply > math.MaxUint64-amount {
		return Event{}, NewOverflowError("supply")
	}
	if err := store.credit(amount); err != nil {
		return Event{}, err
	}
	assetLedger.supply += amount

	event := Event{
		Kind:         EventMint,
		Actor:        normalizedCaller,
		Counterparty: normalizedTo,
		Amount:       amount,
	}
	if err := assetLedger.sink.Append(ctx, event); err != nil {
		store.balance -= amount
		assetLedger.supply -= amount
		return Event{}, fmt.Errorf("event sink: %w", err)
	}
	return event, nil
}

// Burn destroys amount units from from's store and decrements the supply
// counter. It requires the burn capability, which only the issuer holds.
// The debit routes through the withdraw hook, so the activity and cap gates
// apply to burns exactly as they do to transfers.
func (assetLedger *Ledger) Burn(ctx context.Context, caller AccountID, from AccountID, amount uint64) (Event, error) {
	normalizedCaller, err := NormalizeAccountID(caller)
	if err != nil {
		return Event{}, err
	}
	normalizedFrom, err := NormalizeAccountID(from)
	if err != nil {
		return Event{}, err
	}

	handle, err := assetLedger.borrowIssuerCapability(normalizedCaller, assetLedger.bundle.burn)
	if err != nil {
		return Event{}, err
	}
	if err := assetLedger.requireCapability(handle, capabilityBurn); err != nil {
		return Event{}, err
	}

	store, err := assetLedger.resolver.Resolve(normalizedFrom)
	if err != nil {
		return Event{}, err
	}

	// No supply pre-check: supply always equals the sum of balances, so a
	// burn exceeding the supply fails in the store debit.
	value, err := assetLedger.withdraw(ctx, store, amount, assetLedger.bundle.transfer)
	if err != nil {
		return Event{}, err
	}
	units, err := value.consume()
	if err != nil {
		store.balance += value.units
		return Event{}, err
	}
	assetLedger.supply -= units

	event := Event{
		Kind:         EventBurn,
		Actor:        normalizedCaller,
		Counterparty: normalizedFrom,
		Amount:       units,
	}
	if err := assetLedger.sink.Append(ctx, event); err != nil {
		assetLedger.supply += units
		store.balance += units
		return Event{}, fmt.Errorf("event sink: %w", err)
	}
	return event, nil
}

// Transfer moves amount from the calling account to to. The withdraw and
// deposit legs commit together: a deposit-side rejection rolls the already
// applied debit back, so no partially applied transfer is ever observable.
func (assetLedger *Ledger) Transfer(ctx context.Context, caller AccountID, to AccountID, amount uint64) error {
	normalizedCaller, err := NormalizeAccountID(caller)
	if err != nil {
		return err
	}
	normalizedTo, err := NormalizeAccountID(to)
	if err != nil {
		return err
	}

	fromStore, err := assetLedger.resolver.Resolve(normalizedCaller)
	if err != nil {
		return err
	}
	toStore, err := assetLedger.resolver.Resolve(normalizedTo)
	if err != nil {
		return err
	}

	value, err := assetLedger.withdraw(ctx, fromStore, amount, assetLedger.bundle.transfer)
	if err != nil {
		return err
	}
	if err := assetLedger.deposit(ctx, toStore, value, assetLedger.bundle.transfer); err != nil {
		// The failed leg left the value unconsumed; undo the debit.
		fromStore.balance += value.units
		return err
	}
	return nil
}

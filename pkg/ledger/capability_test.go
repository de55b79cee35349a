package ledger

import (
	"context"
	"errors"
	"math"
	"testing"
)

// fixtureHost is a minimal in-package host so white-box tests avoid the
// import cycle with pkg/host.
type fixtureHost struct {
	activity  map[AccountID]uint64
	reference map[AccountID]uint64
	stores    map[AccountID]*AccountStore
	events    []Event
}

func newFixtureHost() *fixtureHost {
	return &fixtureHost{
		activity:  map[AccountID]uint64{},
		reference: map[AccountID]uint64{},
		stores:    map[AccountID]*AccountStore{},
	}
}

func (fixture *fixtureHost) ActivityCounter(ctx context.Context, account AccountID) (uint64, error) {
	return fixture.activity[account], nil
}

func (fixture *fixtureHost) ReferenceBalance(ctx context.Context, account AccountID) (uint64, error) {
	return fixture.reference[account], nil
}

func (fixture *fixtureHost) Append(ctx context.Context, event Event) error {
	fixture.events = append(fixture.events, event)
	return nil
}

func (fixture *fixtureHost) Resolve(account AccountID) (*AccountStore, error) {
	if store, exists := fixture.stores[account]; exists {
		return store, nil
	}
	store := NewAccountStore(account)
	fixture.stores[account] = store
	return store, nil
}

func (fixture *fixtureHost) Stores() ([]*AccountStore, error) {
	stores := make([]*AccountStore, 0, len(fixture.stores))
	for _, store := range fixture.stores {
		stores = append(stores, store)
	}
	return stores, nil
}

func newFixtureLedger(t *testing.T) (*Ledger, *fixtureHost) {
	t.Helper()

	fixture := newFixtureHost()
	assetLedger, err := NewRegistry().Initialize(Config{
		Name:      "Fixture Asset",
		Symbol:    "FIX",
		Decimals:  8,
		Issuer:    "issuer",
		Activity:  fixture,
		Reference: fixture,
		Sink:      fixture,
		Resolver:  fixture,
	})
	if err != nil {
		t.Fatalf("unexpected initialize error: %v", err)
	}
	return assetLedger, fixture
}

func TestForeignCapabilityRejected(t *testing.T) {
	firstLedger, firstHost := newFixtureLedger(t)
	secondLedger, _ := newFixtureLedger(t)

	firstHost.activity["alice"] = 1
	if _, err := firstLedger.Mint(t.Context(), "issuer", "alice", 100); err != nil {
		t.Fatalf("unexpected mint error: %v", err)
	}
	store, err := firstLedger.resolver.Resolve("alice")
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}

	var unauthorizedErr UnauthorizedError
	if _, err := firstLedger.withdraw(t.Context(), store, 10, secondLedger.bundle.transfer); !errors.As(err, &unauthorizedErr) {
		t.Fatalf("expected UnauthorizedError for foreign capability, got %v", err)
	}
	if _, err := firstLedger.withdraw(t.Context(), store, 10, nil); !errors.As(err, &unauthorizedErr) {
		t.Fatalf("expected UnauthorizedError for nil capability, got %v", err)
	}
	if _, err := firstLedger.withdraw(t.Context(), store, 10, firstLedger.bundle.mint); !errors.As(err, &unauthorizedErr) {
		t.Fatalf("expected UnauthorizedError for wrong capability kind, got %v", err)
	}
	if store.Balance() != 100 {
		t.Fatalf("expected balance unchanged at 100, got %d", store.Balance())
	}
}

func TestHooksCannotBeRebound(t *testing.T) {
	assetLedger, _ := newFixtureLedger(t)

	noop := func(ctx context.Context, owner AccountID, amount uint64) error { return nil }
	var alreadyErr AlreadyInitializedError
	if err := assetLedger.bindHooks(noop, noop, assetLedger.bundle.extend); !errors.As(err, &alreadyErr) {
		t.Fatalf("expected AlreadyInitializedError on rebind, got %v", err)
	}

	var unauthorizedErr UnauthorizedError
	if err := assetLedger.bindHooks(noop, noop, assetLedger.bundle.mint); !errors.As(err, &unauthorizedErr) {
		t.Fatalf("expected UnauthorizedError for non-extend handle, got %v", err)
	}
}

func TestStoreDebitUnderflowGuard(t *testing.T) {
	store := NewAccountStore("alice")
	if err := store.credit(50); err != nil {
		t.Fatalf("unexpected credit error: %v", err)
	}

	var insufficientErr InsufficientBalanceError
	if err := store.debit(51); !errors.As(err, &insufficientErr) {
		t.Fatalf("expected InsufficientBalanceError, got %v", err)
	}
	if store.Balance() != 50 {
		t.Fatalf("expected balance unchanged at 50, got %d", store.Balance())
	}
}

func TestStoreCreditOverflowGuard(t *testing.T) {
	store := NewAccountStore("alice")
	if err := store.credit(math.MaxUint64); err != nil {
		t.Fatalf("unexpected credit error: %v", err)
	}

	var overflowErr OverflowError
	if err := store.credit(1); !errors.As(err, &overflowErr) {
		t.Fatalf("expected OverflowError, got %v", err)
	}
}

func TestDetachedAmountSingleUse(t *testing.T) {
	value := &DetachedAmount{units: 10}

	units, err := value.consume()
	if err != nil {
		t.Fatalf("unexpected consume error: %v", err)
	}
	if units != 10 {
		t.Fatalf("expected 10 units, got %d", units)
	}
	if _, err := value.consume(); err == nil {
		t.Fatal("expected second consume to fail")
	}
}

func TestWithdrawCapOverflowTreatedAsExceeded(t *testing.T) {
	assetLedger, fixture := newFixtureLedger(t)
	fixture.activity["alice"] = 1
	if _, err := assetLedger.Mint(t.Context(), "issuer", "alice", 100); err != nil {
		t.Fatalf("unexpected mint error: %v", err)
	}

	store, err := assetLedger.resolver.Resolve("alice")
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}

	var capErr CapExceededError
	if _, err := assetLedger.withdraw(t.Context(), store, math.MaxUint64/CapRate+1, assetLedger.bundle.transfer); !errors.As(err, &capErr) {
		t.Fatalf("expected CapExceededError for oversized amount, got %v", err)
	}
}

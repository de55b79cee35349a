package ledger_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/openhooks/dispatch-ledger-go/pkg/host"
	"github.com/openhooks/dispatch-ledger-go/pkg/ledger"
)

func newTestLedger(t *testing.T) (*ledger.Ledger, *host.MemoryHost) {
	t.Helper()

	memoryHost := host.NewMemoryHost()
	assetLedger, err := ledger.NewRegistry().Initialize(ledger.Config{
		Name:      "Test Asset",
		Symbol:    "TST",
		Decimals:  8,
		Issuer:    "issuer",
		Activity:  memoryHost,
		Reference: memoryHost,
		Sink:      memoryHost,
		Resolver:  memoryHost,
	})
	if err != nil {
		t.Fatalf("unexpected initialize error: %v", err)
	}
	return assetLedger, memoryHost
}

func mustBalance(t *testing.T, assetLedger *ledger.Ledger, account ledger.AccountID) uint64 {
	t.Helper()
	balance, err := assetLedger.BalanceOf(account)
	if err != nil {
		t.Fatalf("unexpected balance error: %v", err)
	}
	return balance
}

func TestMintTransferScenario(t *testing.T) {
	assetLedger, memoryHost := newTestLedger(t)
	memoryHost.SetActivity("alice", 1)
	memoryHost.SetActivity("bob", 1)
	memoryHost.SetReferenceBalance("bob", 1001)

	if _, err := assetLedger.Mint(t.Context(), "issuer", "alice", 100); err != nil {
		t.Fatalf("unexpected mint error: %v", err)
	}
	if err := assetLedger.Transfer(t.Context(), "alice", "bob", 10); err != nil {
		t.Fatalf("unexpected transfer error: %v", err)
	}

	if got := mustBalance(t, assetLedger, "alice"); got != 90 {
		t.Fatalf("expected alice balance 90, got %d", got)
	}
	if got := mustBalance(t, assetLedger, "bob"); got != 10 {
		t.Fatalf("expected bob balance 10, got %d", got)
	}
	if got := assetLedger.TotalSupply(); got != 100 {
		t.Fatalf("expected supply 100, got %d", got)
	}
}

func TestTransferRejectedBySolvencyGate(t *testing.T) {
	assetLedger, memoryHost := newTestLedger(t)
	memoryHost.SetActivity("alice", 1)
	memoryHost.SetActivity("bob", 1)
	memoryHost.SetReferenceBalance("bob", 1000)

	if _, err := assetLedger.Mint(t.Context(), "issuer", "alice", 100); err != nil {
		t.Fatalf("unexpected mint error: %v", err)
	}

	err := assetLedger.Transfer(t.Context(), "alice", "bob", 10)
	var solvencyErr ledger.MinimumBalanceNotMetError
	if !errors.As(err, &solvencyErr) {
		t.Fatalf("expected MinimumBalanceNotMetError, got %v", err)
	}

	if got := mustBalance(t, assetLedger, "alice"); got != 100 {
		t.Fatalf("expected alice balance unchanged at 100, got %d", got)
	}
	if got := mustBalance(t, assetLedger, "bob"); got != 0 {
		t.Fatalf("expected bob balance 0, got %d", got)
	}
	if got := assetLedger.TotalSupply(); got != 100 {
		t.Fatalf("expected supply unchanged at 100, got %d", got)
	}
}

func TestTransferRejectedByCapGate(t *testing.T) {
	assetLedger, memoryHost := newTestLedger(t)
	memoryHost.SetActivity("alice", 1)
	memoryHost.SetActivity("bob", 1)
	memoryHost.SetReferenceBalance("bob", 2000)

	if _, err := assetLedger.Mint(t.Context(), "issuer", "alice", 100); err != nil {
		t.Fatalf("unexpected mint error: %v", err)
	}

	err := assetLedger.Transfer(t.Context(), "alice", "bob", 50000)
	var capErr ledger.CapExceededError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapExceededError, got %v", err)
	}
	if got := mustBalance(t, assetLedger, "alice"); got != 100 {
		t.Fatalf("expected alice balance unchanged at 100, got %d", got)
	}
}

func TestBurnRoutesThroughWithdrawGates(t *testing.T) {
	assetLedger, memoryHost := newTestLedger(t)
	memoryHost.SetActivity("alice", 1)

	if _, err := assetLedger.Mint(t.Context(), "issuer", "alice", 100); err != nil {
		t.Fatalf("unexpected mint error: %v", err)
	}

	event, err := assetLedger.Burn(t.Context(), "issuer", "alice", 10)
	if err != nil {
		t.Fatalf("unexpected burn error: %v", err)
	}
	if event.Kind != ledger.EventBurn || event.Amount != 10 {
		t.Fatalf("unexpected burn event: %+v", event)
	}
	if got := mustBalance(t, assetLedger, "alice"); got != 90 {
		t.Fatalf("expected alice balance 90, got %d", got)
	}
	if got := assetLedger.TotalSupply(); got != 90 {
		t.Fatalf("expected supply 90, got %d", got)
	}

	// The cap gate applies to burns: 90 <= 2*50.
	_, err = assetLedger.Burn(t.Context(), "issuer", "alice", 50)
	var capErr ledger.CapExceededError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapExceededError on burn, got %v", err)
	}
	if got := mustBalance(t, assetLedger, "alice"); got != 90 {
		t.Fatalf("expected alice balance unchanged at 90, got %d", got)
	}
}

func TestInactiveAccountCannotBeDebited(t *testing.T) {
	assetLedger, memoryHost := newTestLedger(t)
	memoryHost.SetActivity("bob", 1)
	memoryHost.SetReferenceBalance("bob", 5000)

	// Mint deposits to an inactive account are allowed.
	if _, err := assetLedger.Mint(t.Context(), "issuer", "alice", 100); err != nil {
		t.Fatalf("unexpected mint error: %v", err)
	}

	var inactiveErr ledger.InactiveAccountError
	if err := assetLedger.Transfer(t.Context(), "alice", "bob", 10); !errors.As(err, &inactiveErr) {
		t.Fatalf("expected InactiveAccountError, got %v", err)
	}
	if _, err := assetLedger.Burn(t.Context(), "issuer", "alice", 10); !errors.As(err, &inactiveErr) {
		t.Fatalf("expected InactiveAccountError on burn, got %v", err)
	}
	// The gate holds for amount zero as well.
	if err := assetLedger.Transfer(t.Context(), "alice", "bob", 0); !errors.As(err, &inactiveErr) {
		t.Fatalf("expected InactiveAccountError for zero amount, got %v", err)
	}
}

func TestMintRequiresIssuer(t *testing.T) {
	assetLedger, memoryHost := newTestLedger(t)
	memoryHost.SetActivity("alice", 1)

	var unauthorizedErr ledger.UnauthorizedError
	if _, err := assetLedger.Mint(t.Context(), "alice", "alice", 100); !errors.As(err, &unauthorizedErr) {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
	if unauthorizedErr.Operation != "mint" {
		t.Fatalf("expected mint operation in error, got %s", unauthorizedErr.Operation)
	}
	if _, err := assetLedger.Burn(t.Context(), "alice", "alice", 100); !errors.As(err, &unauthorizedErr) {
		t.Fatalf("expected UnauthorizedError on burn, got %v", err)
	}
	if got := assetLedger.TotalSupply(); got != 0 {
		t.Fatalf("expected supply 0, got %d", got)
	}
}

func TestZeroAmountMintIsNoOp(t *testing.T) {
	assetLedger, _ := newTestLedger(t)

	event, err := assetLedger.Mint(t.Context(), "issuer", "alice", 0)
	if err != nil {
		t.Fatalf("unexpected mint error: %v", err)
	}
	if event.Amount != 0 {
		t.Fatalf("expected zero-amount event, got %d", event.Amount)
	}
	if got := assetLedger.TotalSupply(); got != 0 {
		t.Fatalf("expected supply 0, got %d", got)
	}
}

func TestMintOverflowGuard(t *testing.T) {
	assetLedger, _ := newTestLedger(t)

	if _, err := assetLedger.Mint(t.Context(), "issuer", "alice", math.MaxUint64); err != nil {
		t.Fatalf("unexpected mint error: %v", err)
	}

	var overflowErr ledger.OverflowError
	if _, err := assetLedger.Mint(t.Context(), "issuer", "bob", 1); !errors.As(err, &overflowErr) {
		t.Fatalf("expected OverflowError, got %v", err)
	}
	if got := assetLedger.TotalSupply(); got != math.MaxUint64 {
		t.Fatalf("expected supply unchanged, got %d", got)
	}
}

func TestSupplyConservation(t *testing.T) {
	assetLedger, memoryHost := newTestLedger(t)
	for _, account := range []ledger.AccountID{"alice", "bob", "carol"} {
		memoryHost.SetActivity(account, 1)
		memoryHost.SetReferenceBalance(account, 5000)
	}

	if _, err := assetLedger.Mint(t.Context(), "issuer", "alice", 1000); err != nil {
		t.Fatalf("unexpected mint error: %v", err)
	}
	if _, err := assetLedger.Mint(t.Context(), "issuer", "bob", 500); err != nil {
		t.Fatalf("unexpected mint error: %v", err)
	}
	if err := assetLedger.Transfer(t.Context(), "alice", "carol", 300); err != nil {
		t.Fatalf("unexpected transfer error: %v", err)
	}
	if _, err := assetLedger.Burn(t.Context(), "issuer", "bob", 200); err != nil {
		t.Fatalf("unexpected burn error: %v", err)
	}

	state, err := assetLedger.Snapshot()
	if err != nil {
		t.Fatalf("unexpected snapshot error: %v", err)
	}
	var total uint64
	for _, balance := range state.Balances {
		total += balance
	}
	if total != assetLedger.TotalSupply() {
		t.Fatalf("supply %d does not equal balance total %d", assetLedger.TotalSupply(), total)
	}
	if assetLedger.TotalSupply() != 1300 {
		t.Fatalf("expected supply 1300, got %d", assetLedger.TotalSupply())
	}
}

func TestEventLogOrderAndContents(t *testing.T) {
	assetLedger, memoryHost := newTestLedger(t)
	memoryHost.SetActivity("alice", 1)

	if _, err := assetLedger.Mint(t.Context(), "issuer", "alice", 40); err != nil {
		t.Fatalf("unexpected mint error: %v", err)
	}
	if _, err := assetLedger.Burn(t.Context(), "issuer", "alice", 10); err != nil {
		t.Fatalf("unexpected burn error: %v", err)
	}

	events := memoryHost.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != ledger.EventMint || events[0].Counterparty != "alice" || events[0].Amount != 40 {
		t.Fatalf("unexpected mint event: %+v", events[0])
	}
	if events[1].Kind != ledger.EventBurn || events[1].Actor != "issuer" || events[1].Amount != 10 {
		t.Fatalf("unexpected burn event: %+v", events[1])
	}
}

type failingSink struct{}

func (failingSink) Append(ctx context.Context, event ledger.Event) error {
	return errors.New("sink unavailable")
}

func TestSinkFailureRollsMintBack(t *testing.T) {
	memoryHost := host.NewMemoryHost()
	assetLedger, err := ledger.NewRegistry().Initialize(ledger.Config{
		Name:      "Test Asset",
		Symbol:    "TST",
		Decimals:  8,
		Issuer:    "issuer",
		Activity:  memoryHost,
		Reference: memoryHost,
		Sink:      failingSink{},
		Resolver:  memoryHost,
	})
	if err != nil {
		t.Fatalf("unexpected initialize error: %v", err)
	}

	if _, err := assetLedger.Mint(t.Context(), "issuer", "alice", 100); err == nil {
		t.Fatal("expected sink failure")
	}
	if got := mustBalance(t, assetLedger, "alice"); got != 0 {
		t.Fatalf("expected rolled back balance 0, got %d", got)
	}
	if got := assetLedger.TotalSupply(); got != 0 {
		t.Fatalf("expected rolled back supply 0, got %d", got)
	}
}

func TestInvalidAccountRejected(t *testing.T) {
	assetLedger, _ := newTestLedger(t)

	var formatErr ledger.InvalidAccountFormatError
	if _, err := assetLedger.Mint(t.Context(), "issuer", "  ", 1); !errors.As(err, &formatErr) {
		t.Fatalf("expected InvalidAccountFormatError, got %v", err)
	}
	if _, err := assetLedger.BalanceOf(""); !errors.As(err, &formatErr) {
		t.Fatalf("expected InvalidAccountFormatError, got %v", err)
	}
}

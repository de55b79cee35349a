package ledger

import (
	"fmt"
	"math"
)

// Registry guards one-time initialization of a ledger deployment.
type Registry struct {
	ledger *Ledger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Initialize validates the configuration, creates the asset descriptor and
// the capability bundle, binds the hooks, and returns the ledger. It
// succeeds exactly once per registry; every later call fails with
// AlreadyInitializedError.
func (registry *Registry) Initialize(config Config) (*Ledger, error) {
	if registry.ledger != nil {
		return nil, NewAlreadyInitializedError()
	}

	descriptor, err := ValidateDescriptor(config.Name, config.Symbol, config.Decimals)
	if err != nil {
		return nil, err
	}
	issuer, err := NormalizeAccountID(config.Issuer)
	if err != nil {
		return nil, err
	}
	if config.Resolver == nil {
		return nil, LedgerError{Message: "store resolver is required"}
	}
	if config.Sink == nil {
		return nil, LedgerError{Message: "event sink is required"}
	}

	assetLedger := &Ledger{
		descriptor: descriptor,
		issuer:     issuer,
		resolver:   config.Resolver,
		sink:       config.Sink,
	}
	assetLedger.bundle = newCapabilityBundle(assetLedger)

	withdrawHook := config.WithdrawHook
	if withdrawHook == nil {
		if config.Activity == nil {
			return nil, LedgerError{Message: "activity oracle is required for the standard withdraw hook"}
		}
		withdrawHook = StandardWithdrawHook(config.Activity, assetLedger)
	}
	depositHook := config.DepositHook
	if depositHook == nil {
		if config.Activity == nil || config.Reference == nil {
			return nil, LedgerError{Message: "activity and reference oracles are required for the standard deposit hook"}
		}
		depositHook = StandardDepositHook(config.Activity, config.Reference)
	}

	if err := assetLedger.bindHooks(withdrawHook, depositHook, assetLedger.bundle.extend); err != nil {
		return nil, err
	}

	registry.ledger = assetLedger
	return assetLedger, nil
}

// Restore initializes a ledger and seeds it from a previously captured
// State snapshot. The snapshot must describe the same asset, its supply
// must equal the sum of its balances, and the resolver must not already
// hold balances for the snapshot accounts.
func (registry *Registry) Restore(config Config, state State) (*Ledger, error) {
	assetLedger, err := registry.Initialize(config)
	if err != nil {
		return nil, err
	}

	if state.Descriptor != assetLedger.descriptor {
		registry.ledger = nil
		return nil, NewInvalidAssetDescriptorError("descriptor", "snapshot descriptor does not match the configured asset")
	}

	// The snapshot validates in full before anything is credited, so a
	// rejected snapshot leaves the resolver untouched.
	var total uint64
	for _, balance := range state.Balances {
		if total > math.MaxUint64-balance {
			registry.ledger = nil
			return nil, NewOverflowError("supply")
		}
		total += balance
	}
	if total != state.Supply {
		registry.ledger = nil
		return nil, LedgerError{Message: fmt.Sprintf(
			"snapshot supply %d does not match balance total %d", state.Supply, total,
		)}
	}

	applied := make([]*AccountStore, 0, len(state.Balances))
	rollback := func() {
		for _, store := range applied {
			store.balance = 0
		}
	}
	for account, balance := range state.Balances {
		store, resolveErr := assetLedger.resolver.Resolve(account)
		if resolveErr != nil {
			rollback()
			registry.ledger = nil
			return nil, resolveErr
		}
		if store.balance != 0 {
			rollback()
			registry.ledger = nil
			return nil, LedgerError{Message: fmt.Sprintf(
				"resolver already holds a balance for account %s", account,
			)}
		}
		store.balance = balance
		applied = append(applied, store)
	}

	assetLedger.supply = state.Supply
	return assetLedger, nil
}

package ledger

import (
	"context"
	"fmt"
	"math"
)

// WithdrawHook validates a pending debit from owner's store. Hooks must be
// pure reads of ledger and host state; returning an error rejects the whole
// operation before any mutation is applied.
type WithdrawHook func(ctx context.Context, owner AccountID, amount uint64) error

// DepositHook validates a pending credit to owner's store under the same
// purity rules as WithdrawHook.
type DepositHook func(ctx context.Context, owner AccountID, amount uint64) error

// StandardWithdrawHook builds the default withdraw-path validation: the
// account-activity gate followed by the proportional cap gate.
func StandardWithdrawHook(activity ActivityOracle, balances BalanceReader) WithdrawHook {
	return func(ctx context.Context, owner AccountID, amount uint64) error {
		counter, err := activity.ActivityCounter(ctx, owner)
		if err != nil {
			return fmt.Errorf("activity oracle: %w", err)
		}
		if counter == 0 {
			return NewInactiveAccountError(owner)
		}

		balance, err := balances.BalanceOf(owner)
		if err != nil {
			return err
		}
		if amount > math.MaxUint64/CapRate {
			// No uint64 balance can strictly exceed a cap this large.
			return NewCapExceededError(owner, amount, balance, math.MaxUint64)
		}
		maxCap := amount * CapRate / ScaleFactor
		if balance <= maxCap {
			return NewCapExceededError(owner, amount, balance, maxCap)
		}
		return nil
	}
}

// StandardDepositHook builds the default deposit-path validation: the
// account-activity gate followed by the reference-currency solvency gate.
func StandardDepositHook(activity ActivityOracle, reference ReferenceBalanceOracle) DepositHook {
	return func(ctx context.Context, owner AccountID, amount uint64) error {
		counter, err := activity.ActivityCounter(ctx, owner)
		if err != nil {
			return fmt.Errorf("activity oracle: %w", err)
		}
		if counter == 0 {
			return NewInactiveAccountError(owner)
		}

		referenceBalance, err := reference.ReferenceBalance(ctx, owner)
		if err != nil {
			return fmt.Errorf("reference balance oracle: %w", err)
		}
		if referenceBalance <= MinReferenceBalance {
			return NewMinimumBalanceNotMetError(owner, referenceBalance, MinReferenceBalance)
		}
		return nil
	}
}

// bindHooks installs the withdraw and deposit hooks. Binding requires the
// extend capability and happens exactly once, at initialization; there is
// no re-registration path.
func (assetLedger *Ledger) bindHooks(withdrawHook WithdrawHook, depositHook DepositHook, handle *capability) error {
	if err := assetLedger.requireCapability(handle, capabilityExtend); err != nil {
		return err
	}
	if assetLedger.withdrawHook != nil || assetLedger.depositHook != nil {
		return NewAlreadyInitializedError()
	}
	assetLedger.withdrawHook = withdrawHook
	assetLedger.depositHook = depositHook
	return nil
}

// withdraw routes a balance-decreasing request through the bound withdraw
// hook and, only after the hook passes, debits the store. The returned
// DetachedAmount is consumable exactly once.
func (assetLedger *Ledger) withdraw(
	ctx context.Context,
	store *AccountStore,
	amount uint64,
	handle *capability,
) (*DetachedAmount, error) {
	if err := assetLedger.requireCapability(handle, capabilityTransfer); err != nil {
		return nil, err
	}
	if err := assetLedger.withdrawHook(ctx, store.Owner(), amount); err != nil {
		return nil, err
	}
	if err := store.debit(amount); err != nil {
		return nil, err
	}
	return &DetachedAmount{units: amount}, nil
}

// deposit routes a balance-increasing request through the bound deposit
// hook and consumes the detached value on success. A failed credit leaves
// the value unconsumed so the caller can roll back.
func (assetLedger *Ledger) deposit(
	ctx context.Context,
	store *AccountStore,
	value *DetachedAmount,
	handle *capability,
) error {
	if err := assetLedger.requireCapability(handle, capabilityTransfer); err != nil {
		return err
	}
	if err := assetLedger.depositHook(ctx, store.Owner(), value.Units()); err != nil {
		return err
	}

	units, err := value.consume()
	if err != nil {
		return err
	}
	if err := store.credit(units); err != nil {
		value.consumed = false
		return err
	}
	return nil
}

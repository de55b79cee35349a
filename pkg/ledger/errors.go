package ledger

import "fmt"

// LedgerError is the base type for every failure the ledger reports.
type LedgerError struct {
	Message string
}

func (errorValue LedgerError) Error() string {
	return errorValue.Message
}

// AlreadyInitializedError reports a second initialization attempt on a
// registry that already holds a ledger.
type AlreadyInitializedError struct {
	LedgerError
}

func NewAlreadyInitializedError() error {
	return AlreadyInitializedError{
		LedgerError: LedgerError{Message: "registry is already initialized"},
	}
}

// UnauthorizedError reports a missing or mismatched capability.
type UnauthorizedError struct {
	LedgerError
	Operation string
}

func NewUnauthorizedError(operation string) error {
	return UnauthorizedError{
		LedgerError: LedgerError{Message: fmt.Sprintf("caller does not hold the %s capability", operation)},
		Operation:   operation,
	}
}

// InactiveAccountError reports an account whose host activity counter is
// zero; such accounts cannot be debited or receive transfer deposits.
type InactiveAccountError struct {
	LedgerError
	Account AccountID
}

func NewInactiveAccountError(account AccountID) error {
	return InactiveAccountError{
		LedgerError: LedgerError{Message: fmt.Sprintf("account %s has never transacted on the host ledger", account)},
		Account:     account,
	}
}

// CapExceededError reports a withdrawal refused by the proportional cap
// gate: the owner's balance did not strictly exceed the computed cap.
type CapExceededError struct {
	LedgerError
	Account AccountID
	Amount  uint64
	Balance uint64
	MaxCap  uint64
}

func NewCapExceededError(account AccountID, amount uint64, balance uint64, maxCap uint64) error {
	return CapExceededError{
		LedgerError: LedgerError{Message: fmt.Sprintf(
			"withdrawal of %d from account %s exceeds the proportional cap: balance %d must exceed %d",
			amount, account, balance, maxCap,
		)},
		Account: account,
		Amount:  amount,
		Balance: balance,
		MaxCap:  maxCap,
	}
}

// MinimumBalanceNotMetError reports a deposit refused by the solvency gate:
// the recipient's reference-currency balance did not exceed the floor.
type MinimumBalanceNotMetError struct {
	LedgerError
	Account          AccountID
	ReferenceBalance uint64
	RequiredFloor    uint64
}

func NewMinimumBalanceNotMetError(account AccountID, referenceBalance uint64, requiredFloor uint64) error {
	return MinimumBalanceNotMetError{
		LedgerError: LedgerError{Message: fmt.Sprintf(
			"account %s holds %d in the reference currency, floor of %d not met",
			account, referenceBalance, requiredFloor,
		)},
		Account:          account,
		ReferenceBalance: referenceBalance,
		RequiredFloor:    requiredFloor,
	}
}

// InsufficientBalanceError reports a debit larger than the stored balance.
type InsufficientBalanceError struct {
	LedgerError
	Account   AccountID
	Requested uint64
	Available uint64
}

func NewInsufficientBalanceError(account AccountID, requested uint64, available uint64) error {
	return InsufficientBalanceError{
		LedgerError: LedgerError{Message: fmt.Sprintf(
			"account %s holds %d, cannot debit %d", account, available, requested,
		)},
		Account:   account,
		Requested: requested,
		Available: available,
	}
}

// OverflowError reports supply or balance arithmetic that would wrap.
type OverflowError struct {
	LedgerError
	Field string
}

func NewOverflowError(field string) error {
	return OverflowError{
		LedgerError: LedgerError{Message: fmt.Sprintf("%s arithmetic overflows", field)},
		Field:       field,
	}
}

// InvalidAccountFormatError reports an account identifier the core refuses
// to address.
type InvalidAccountFormatError struct {
	LedgerError
	Account AccountID
}

func NewInvalidAccountFormatError(account AccountID) error {
	return InvalidAccountFormatError{
		LedgerError: LedgerError{Message: fmt.Sprintf("invalid account identifier: %q", account)},
		Account:     account,
	}
}

// InvalidAssetDescriptorError reports descriptor fields rejected at
// initialization.
type InvalidAssetDescriptorError struct {
	LedgerError
	Field string
}

func NewInvalidAssetDescriptorError(field string, message string) error {
	return InvalidAssetDescriptorError{
		LedgerError: LedgerError{Message: message},
		Field:       field,
	}
}

package ledger

import "regexp"

const (
	// CapRate and ScaleFactor define the proportional withdrawal cap. A
	// withdrawal of amount is refused unless the owner's balance strictly
	// exceeds amount*CapRate/ScaleFactor (integer division). The default
	// values mean a 2x cap.
	CapRate     uint64 = 200
	ScaleFactor uint64 = 100

	// MinReferenceBalance is the reference-currency floor an account must
	// strictly exceed before it can receive deposits.
	MinReferenceBalance uint64 = 1000

	MaxNameLength   = 100
	MaxSymbolLength = 10
)

var accountIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// AccountID identifies an account on the host ledger. The format is host
// defined; the core only enforces basic shape.
type AccountID string

// AssetDescriptor describes the single asset managed by a deployment. It is
// created once at initialization and immutable afterwards.
type AssetDescriptor struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// Config carries everything Registry.Initialize needs to create a
// deployment: the asset descriptor fields, the issuer account that holds
// mint/burn authority, the host collaborators, and optional hook overrides.
type Config struct {
	Name     string
	Symbol   string
	Decimals uint8

	// Issuer is the only caller authorized to mint and burn.
	Issuer AccountID

	Activity  ActivityOracle
	Reference ReferenceBalanceOracle
	Sink      EventSink
	Resolver  StoreResolver

	// WithdrawHook and DepositHook replace the standard gate hooks. Left
	// nil, the standard hooks are built from the configured oracles.
	WithdrawHook WithdrawHook
	DepositHook  DepositHook
}

// State is a point-in-time deep copy of ledger state, produced by
// Ledger.Snapshot and accepted by Registry.Restore.
type State struct {
	Descriptor AssetDescriptor      `json:"descriptor"`
	Supply     uint64               `json:"supply"`
	Balances   map[AccountID]uint64 `json:"balances"`
}

package ledger

// EventKind discriminates the supply-changing operations recorded in the
// event log.
type EventKind string

const (
	EventMint EventKind = "mint"
	EventBurn EventKind = "burn"
)

// Event is an append-only record of a mint or burn. Actor is the caller
// that held the capability, Counterparty the account whose store changed.
// Events are emitted in operation order and never mutated or read back by
// the core.
type Event struct {
	Kind         EventKind `json:"kind"`
	Actor        AccountID `json:"actor"`
	Counterparty AccountID `json:"counterparty"`
	Amount       uint64    `json:"amount"`
}

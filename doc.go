// Dispatch Ledger is a Go implementation of a single fungible asset whose
// transfer path is mediated by pluggable withdraw and deposit validation
// hooks. Every balance movement is routed through hooks bound once at
// initialization, authority over supply is carried by capability values
// that cannot be forged or moved between ledgers, and every operation
// either completes fully or leaves no trace.
//
// # Packages
//
//   - pkg/ledger: the core asset ledger, capability model, and standard
//     validation gates
//   - pkg/host: an in-memory host providing account stores, oracles, and an
//     event sink for tests and examples
//   - pkg/oracle: an HTTP client for hosts that serve activity counters and
//     reference balances remotely
//   - pkg/logger: the leveled logging contract used by the adapters
//
// # Event sink adapters
//
//   - adapters/hederasink: publishes supply events to a Hedera Consensus
//     Service topic
//   - adapters/auditlog: a signed hash-chained in-process audit trail
//   - adapters/boltstore: a Bolt-backed persistent journal and snapshot
//     store
//   - adapters/socketsink: live event streaming over socket.io
//
// # Installation
//
//	go get github.com/openhooks/dispatch-ledger-go@latest
package dispatch_ledger_go

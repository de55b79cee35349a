// Package ledger implements a single fungible-asset ledger whose transfer
// path is extensible through pluggable validation hooks. Every
// balance-decreasing and balance-increasing request is routed through a
// withdraw hook and a deposit hook bound once at initialization, and every
// privileged path is mediated by capability handles that never leave the
// package.
//
// # Initialization
//
// A deployment is created exactly once through a Registry:
//
//	registry := ledger.NewRegistry()
//	assetLedger, err := registry.Initialize(ledger.Config{
//		Name:     "Example Asset",
//		Symbol:   "EXA",
//		Decimals: 8,
//		Issuer:   "issuer-1",
//		Activity:  hostActivityOracle,
//		Reference: hostReferenceOracle,
//		Sink:      hostEventSink,
//		Resolver:  hostStoreResolver,
//	})
//
// A second Initialize call fails with AlreadyInitializedError.
//
// # Operations
//
// Mint and Burn require the issuer's capability; Transfer is available to
// any account. Burn and Transfer route their debit through the withdraw
// hook, Transfer routes its credit through the deposit hook, and Mint
// credits directly (minting is a privileged path, not a peer-to-peer
// transfer). Each operation either commits fully or leaves no observable
// state change.
//
// The package performs no locking and no background work: the host's
// transaction-execution path is expected to run each operation inside its
// own atomic envelope.
package ledger

// Package oracle provides an HTTP client for hosts that expose the ledger's
// account-activity counters and reference-currency balances over a REST
// API. The client implements both oracle interfaces the ledger core
// consumes, so an embedder can point a deployment at a remote host service
// instead of in-process state.
package oracle

// Package host provides an in-memory implementation of every collaborator
// interface the ledger core consumes: the account-activity oracle, the
// reference-currency balance oracle, the event sink, and the store
// resolver. It is the reference host used by tests and examples; production
// embedders supply their own implementations, typically backed by the
// adapters in this module.
package host

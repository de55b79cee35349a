// Package boltstore persists ledger events and state snapshots in a Bolt
// database file. The event journal doubles as a ledger.EventSink, so a
// deployment can recover its audit trail after a restart, and SaveState and
// LoadState round-trip ledger snapshots for Restore. Payloads are
// brotli-compressed before they hit disk.
package boltstore

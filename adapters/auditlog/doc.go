// Package auditlog implements an in-process tamper-evident event sink.
// Every supply event is appended to a hash chain: the record digest covers
// the previous record's digest, the sequence number, and the event payload,
// and each digest is signed with a secp256k1 key. Verify replays the chain
// and fails on any reordered, altered, or dropped record.
package auditlog

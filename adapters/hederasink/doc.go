// Package hederasink publishes ledger supply events to a Hedera Consensus
// Service topic. Each Mint and Burn event becomes one topic message carrying
// a small JSON payload, giving the asset an externally auditable supply
// trail. Submissions are rate limited so a burst of ledger activity cannot
// exceed the operator account's throttle budget.
//
// The sink is synchronous: Append returns only after the network receipt
// confirms the message, so a failed submission surfaces to the ledger in
// time for it to roll the operation back.
package hederasink

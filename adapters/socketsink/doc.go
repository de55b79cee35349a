// Package socketsink streams ledger supply events to a socket.io endpoint.
// It is intended for dashboards and monitors that want live mint and burn
// notifications without polling a journal. The sink connects lazily on the
// first Append and acknowledgement is fire-and-forget, so it should sit
// behind a durable sink when the event trail must survive delivery failures.
package socketsink

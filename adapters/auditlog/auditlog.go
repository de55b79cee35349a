package auditlog

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"golang.org/x/crypto/blake2b"

	"github.com/openhooks/dispatch-ledger-go/pkg/ledger"
)

// Record is one signed link in the audit chain.
type Record struct {
	Sequence  uint64       `json:"sequence"`
	Event     ledger.Event `json:"event"`
	Digest    string       `json:"digest"`
	Signature string       `json:"signature"`
}

// Log implements ledger.EventSink with a signed hash chain. It is safe for
// concurrent use.
type Log struct {
	mutex      sync.Mutex
	privateKey *btcec.PrivateKey
	records    []Record
	lastDigest [blake2b.Size256]byte
}

// NewLog creates a Log signing with the given key.
func NewLog(privateKey *btcec.PrivateKey) (*Log, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("signing key is required")
	}
	return &Log{privateKey: privateKey}, nil
}

// GenerateLog creates a Log with a fresh signing key.
func GenerateLog() (*Log, error) {
	privateKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}
	return NewLog(privateKey)
}

// PublicKey returns the verification key for the chain.
func (log *Log) PublicKey() *btcec.PublicKey {
	return log.privateKey.PubKey()
}

// Append implements ledger.EventSink.
func (log *Log) Append(ctx context.Context, event ledger.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	log.mutex.Lock()
	defer log.mutex.Unlock()

	sequence := uint64(len(log.records)) + 1
	digest, err := chainDigest(log.lastDigest, sequence, event)
	if err != nil {
		return err
	}

	signature := btcecdsa.Sign(log.privateKey, digest[:])

	log.records = append(log.records, Record{
		Sequence:  sequence,
		Event:     event,
		Digest:    hex.EncodeToString(digest[:]),
		Signature: hex.EncodeToString(signature.Serialize()),
	})
	log.lastDigest = digest
	return nil
}

// Records returns a copy of the chain.
func (log *Log) Records() []Record {
	log.mutex.Lock()
	defer log.mutex.Unlock()

	records := make([]Record, len(log.records))
	copy(records, log.records)
	return records
}

// Verify replays a chain against a verification key. It returns an error
// naming the first record that fails.
func Verify(records []Record, publicKey *btcec.PublicKey) error {
	if publicKey == nil {
		return fmt.Errorf("verification key is required")
	}

	var previousDigest [blake2b.Size256]byte
	for index, record := range records {
		expectedSequence := uint64(index) + 1
		if record.Sequence != expectedSequence {
			return fmt.Errorf("record %d: expected sequence %d, got %d", index, expectedSequence, record.Sequence)
		}

		digest, err := chainDigest(previousDigest, record.Sequence, record.Event)
		if err != nil {
			return fmt.Errorf("record %d: %w", index, err)
		}
		if hex.EncodeToString(digest[:]) != record.Digest {
			return fmt.Errorf("record %d: digest mismatch", index)
		}

		signatureBytes, err := hex.DecodeString(record.Signature)
		if err != nil {
			return fmt.Errorf("record %d: invalid signature encoding: %w", index, err)
		}
		signature, err := btcecdsa.ParseDERSignature(signatureBytes)
		if err != nil {
			return fmt.Errorf("record %d: invalid signature: %w", index, err)
		}
		if !signature.Verify(digest[:], publicKey) {
			return fmt.Errorf("record %d: signature verification failed", index)
		}

		previousDigest = digest
	}
	return nil
}

func chainDigest(previousDigest [blake2b.Size256]byte, sequence uint64, event ledger.Event) ([blake2b.Size256]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return [blake2b.Size256]byte{}, fmt.Errorf("failed to encode event: %w", err)
	}

	var sequenceBytes [8]byte
	binary.BigEndian.PutUint64(sequenceBytes[:], sequence)

	material := make([]byte, 0, len(previousDigest)+len(sequenceBytes)+len(payload))
	material = append(material, previousDigest[:]...)
	material = append(material, sequenceBytes[:]...)
	material = append(material, payload...)

	return blake2b.Sum256(material), nil
}

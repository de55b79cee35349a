package hederasink

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/openhooks/dispatch-ledger-go/pkg/ledger"
)

// ProtocolID tags every topic message so indexers can filter the stream.
const ProtocolID = "dlg-1"

// EventPayload is the JSON shape written to the topic for each supply event.
type EventPayload struct {
	Protocol     string `json:"p"`
	Operation    string `json:"op"`
	Symbol       string `json:"symbol"`
	Actor        string `json:"actor"`
	Counterparty string `json:"counterparty,omitempty"`
	Amount       string `json:"amount"`
}

// BuildEventTxParams collects the inputs for BuildEventTx.
type BuildEventTxParams struct {
	TopicID         string
	Symbol          string
	Event           ledger.Event
	TransactionMemo string
}

// BuildEventPayload encodes a ledger event as a topic message payload.
func BuildEventPayload(symbol string, event ledger.Event) ([]byte, EventPayload, error) {
	trimmedSymbol := strings.TrimSpace(symbol)
	if trimmedSymbol == "" {
		return nil, EventPayload{}, fmt.Errorf("asset symbol is required")
	}
	if event.Kind != ledger.EventMint && event.Kind != ledger.EventBurn {
		return nil, EventPayload{}, fmt.Errorf("unsupported event kind %q", event.Kind)
	}

	payload := EventPayload{
		Protocol:     ProtocolID,
		Operation:    string(event.Kind),
		Symbol:       trimmedSymbol,
		Actor:        string(event.Actor),
		Counterparty: string(event.Counterparty),
		Amount:       strconv.FormatUint(event.Amount, 10),
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, EventPayload{}, fmt.Errorf("failed to encode event payload: %w", err)
	}
	return encoded, payload, nil
}

// BuildEventTx builds an unsigned topic message submit transaction for a
// ledger event. It does not touch the network.
func BuildEventTx(params BuildEventTxParams) (*hedera.TopicMessageSubmitTransaction, error) {
	trimmedTopicID := strings.TrimSpace(params.TopicID)
	if trimmedTopicID == "" {
		return nil, fmt.Errorf("topic ID is required")
	}

	topicID, err := hedera.TopicIDFromString(trimmedTopicID)
	if err != nil {
		return nil, fmt.Errorf("invalid topic ID: %w", err)
	}

	encoded, _, err := BuildEventPayload(params.Symbol, params.Event)
	if err != nil {
		return nil, err
	}

	transaction := hedera.NewTopicMessageSubmitTransaction().
		SetTopicID(topicID).
		SetMessage(encoded)

	trimmedMemo := strings.TrimSpace(params.TransactionMemo)
	if trimmedMemo != "" {
		transaction.SetTransactionMemo(trimmedMemo)
	}

	return transaction, nil
}

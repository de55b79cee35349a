package hederasink

import (
	"context"
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"golang.org/x/time/rate"

	"github.com/openhooks/dispatch-ledger-go/pkg/ledger"
	"github.com/openhooks/dispatch-ledger-go/pkg/logger"
)

// SinkConfig configures a Sink. Network defaults to testnet and
// SubmitsPerSecond defaults to 5 when zero.
type SinkConfig struct {
	Network          string
	AccountID        string
	PrivateKey       string
	TopicID          string
	Symbol           string
	SubmitsPerSecond float64
	Logger           logger.Logger
}

// Sink implements ledger.EventSink against a Hedera Consensus Service topic.
type Sink struct {
	hederaClient *hedera.Client
	topicID      string
	symbol       string
	limiter      *rate.Limiter
	log          logger.Logger
}

// NewSink creates a Sink and configures the operator on the network client.
func NewSink(config SinkConfig) (*Sink, error) {
	trimmedTopicID := strings.TrimSpace(config.TopicID)
	if trimmedTopicID == "" {
		return nil, fmt.Errorf("topic ID is required")
	}
	if _, err := hedera.TopicIDFromString(trimmedTopicID); err != nil {
		return nil, fmt.Errorf("invalid topic ID: %w", err)
	}

	trimmedSymbol := strings.TrimSpace(config.Symbol)
	if trimmedSymbol == "" {
		return nil, fmt.Errorf("asset symbol is required")
	}

	operatorID, err := hedera.AccountIDFromString(strings.TrimSpace(config.AccountID))
	if err != nil {
		return nil, fmt.Errorf("invalid operator account ID: %w", err)
	}

	operatorKey, err := ParsePrivateKey(config.PrivateKey)
	if err != nil {
		return nil, err
	}

	hederaClient, err := newNetworkClient(config.Network)
	if err != nil {
		return nil, err
	}
	hederaClient.SetOperator(operatorID, operatorKey)

	submitsPerSecond := config.SubmitsPerSecond
	if submitsPerSecond <= 0 {
		submitsPerSecond = 5
	}

	log := config.Logger
	if log == nil {
		log = logger.Nop{}
	}

	return &Sink{
		hederaClient: hederaClient,
		topicID:      trimmedTopicID,
		symbol:       trimmedSymbol,
		limiter:      rate.NewLimiter(rate.Limit(submitsPerSecond), 1),
		log:          log.WithField("topic_id", trimmedTopicID),
	}, nil
}

// TopicID returns the destination topic.
func (sink *Sink) TopicID() string {
	return sink.topicID
}

// Append implements ledger.EventSink. It blocks until the network receipt
// confirms the message or the context is done.
func (sink *Sink) Append(ctx context.Context, event ledger.Event) error {
	if err := sink.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	transaction, err := BuildEventTx(BuildEventTxParams{
		TopicID: sink.topicID,
		Symbol:  sink.symbol,
		Event:   event,
	})
	if err != nil {
		return err
	}

	response, err := transaction.Execute(sink.hederaClient)
	if err != nil {
		return fmt.Errorf("failed to execute topic message transaction: %w", err)
	}

	receipt, err := response.GetReceipt(sink.hederaClient)
	if err != nil {
		return fmt.Errorf("failed to get topic message receipt: %w", err)
	}

	sink.log.Infof(
		"published %s event: tx=%s status=%s",
		event.Kind,
		response.TransactionID.String(),
		receipt.Status.String(),
	)
	return nil
}

// Close releases the underlying network client.
func (sink *Sink) Close() error {
	return sink.hederaClient.Close()
}

package socketsink

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	socketio "github.com/zhouhui8915/go-socket.io-client"

	"github.com/openhooks/dispatch-ledger-go/pkg/ledger"
	"github.com/openhooks/dispatch-ledger-go/pkg/logger"
)

// DefaultEventName is the socket.io event emitted for each ledger event.
const DefaultEventName = "ledger-event"

// SinkConfig configures a Sink. URL is required.
type SinkConfig struct {
	URL       string
	APIKey    string
	EventName string
	Logger    logger.Logger
}

// EventPayload is the JSON shape emitted for each ledger event.
type EventPayload struct {
	Operation    string `json:"op"`
	Actor        string `json:"actor"`
	Counterparty string `json:"counterparty,omitempty"`
	Amount       string `json:"amount"`
}

// Sink implements ledger.EventSink over a socket.io connection.
type Sink struct {
	serverURL string
	apiKey    string
	eventName string
	log       logger.Logger

	connectOnce sync.Once
	connectErr  error
	client      *socketio.Client
}

// NewSink creates a Sink. The connection is established on first Append.
func NewSink(config SinkConfig) (*Sink, error) {
	trimmedURL := strings.TrimSpace(config.URL)
	if trimmedURL == "" {
		return nil, fmt.Errorf("socket server URL is required")
	}
	parsedURL, err := url.Parse(trimmedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid socket server URL: %w", err)
	}
	if strings.TrimSpace(parsedURL.Host) == "" {
		return nil, fmt.Errorf("invalid socket server URL: host is required")
	}

	eventName := strings.TrimSpace(config.EventName)
	if eventName == "" {
		eventName = DefaultEventName
	}

	log := config.Logger
	if log == nil {
		log = logger.Nop{}
	}

	return &Sink{
		serverURL: parsedURL.String(),
		apiKey:    strings.TrimSpace(config.APIKey),
		eventName: eventName,
		log:       log.WithField("socket_url", parsedURL.String()),
	}, nil
}

// BuildEventPayload converts a ledger event into the emitted wire shape.
func BuildEventPayload(event ledger.Event) (EventPayload, []byte, error) {
	if event.Kind != ledger.EventMint && event.Kind != ledger.EventBurn {
		return EventPayload{}, nil, fmt.Errorf("unsupported event kind %q", event.Kind)
	}

	payload := EventPayload{
		Operation:    string(event.Kind),
		Actor:        string(event.Actor),
		Counterparty: string(event.Counterparty),
		Amount:       strconv.FormatUint(event.Amount, 10),
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return EventPayload{}, nil, fmt.Errorf("failed to encode event payload: %w", err)
	}
	return payload, encoded, nil
}

// Append implements ledger.EventSink.
func (sink *Sink) Append(ctx context.Context, event ledger.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, encoded, err := BuildEventPayload(event)
	if err != nil {
		return err
	}

	client, err := sink.connect()
	if err != nil {
		return err
	}

	if err := client.Emit(sink.eventName, string(encoded)); err != nil {
		return fmt.Errorf("failed to emit %s event: %w", event.Kind, err)
	}

	sink.log.Debugf("emitted %s event for %s", event.Kind, event.Counterparty)
	return nil
}

func (sink *Sink) connect() (*socketio.Client, error) {
	sink.connectOnce.Do(func() {
		options := &socketio.Options{
			Transport: "websocket",
		}
		if sink.apiKey != "" {
			options.Query = map[string]string{"apiKey": sink.apiKey}
			options.Header = map[string][]string{"x-api-key": {sink.apiKey}}
		}

		client, err := socketio.NewClient(sink.serverURL, options)
		if err != nil {
			sink.connectErr = fmt.Errorf("failed to connect to socket server: %w", err)
			return
		}
		sink.client = client
	})
	return sink.client, sink.connectErr
}

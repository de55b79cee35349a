package socketsink

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/openhooks/dispatch-ledger-go/pkg/ledger"
)

func TestNewSinkValidatesURL(t *testing.T) {
	if _, err := NewSink(SinkConfig{URL: ""}); err == nil {
		t.Fatal("expected missing URL error")
	}
	if _, err := NewSink(SinkConfig{URL: "http://"}); err == nil {
		t.Fatal("expected missing host error")
	}

	sink, err := NewSink(SinkConfig{URL: " http://localhost:3000 "})
	if err != nil {
		t.Fatalf("unexpected sink error: %v", err)
	}
	if sink.eventName != DefaultEventName {
		t.Fatalf("expected default event name, got %q", sink.eventName)
	}
}

func TestNewSinkKeepsCustomEventName(t *testing.T) {
	sink, err := NewSink(SinkConfig{URL: "http://localhost:3000", EventName: "supply-change"})
	if err != nil {
		t.Fatalf("unexpected sink error: %v", err)
	}
	if sink.eventName != "supply-change" {
		t.Fatalf("expected supply-change, got %q", sink.eventName)
	}
}

func TestBuildEventPayload(t *testing.T) {
	payload, encoded, err := BuildEventPayload(ledger.Event{
		Kind:         ledger.EventBurn,
		Actor:        "issuer",
		Counterparty: "alice",
		Amount:       42,
	})
	if err != nil {
		t.Fatalf("unexpected payload error: %v", err)
	}
	if payload.Operation != "burn" || payload.Amount != "42" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	var decoded map[string]any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded["actor"] != "issuer" {
		t.Fatalf("expected actor issuer, got %v", decoded["actor"])
	}
}

func TestBuildEventPayloadRejectsUnknownKind(t *testing.T) {
	if _, _, err := BuildEventPayload(ledger.Event{Kind: "freeze"}); err == nil {
		t.Fatal("expected unsupported event kind error")
	}
}

func TestSinkIntegration_Emit(t *testing.T) {
	serverURL := os.Getenv("SOCKET_SINK_URL")
	if serverURL == "" {
		t.Skip("set SOCKET_SINK_URL to run live socket sink tests")
	}

	sink, err := NewSink(SinkConfig{URL: serverURL, APIKey: os.Getenv("SOCKET_SINK_API_KEY")})
	if err != nil {
		t.Fatalf("failed to create sink: %v", err)
	}

	err = sink.Append(t.Context(), ledger.Event{
		Kind:         ledger.EventMint,
		Actor:        "issuer",
		Counterparty: "alice",
		Amount:       1,
	})
	if err != nil {
		t.Fatalf("failed to emit event: %v", err)
	}
}

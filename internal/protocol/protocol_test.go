package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestEncodeProducesSingleLine(t *testing.T) {
	data, err := Encode(KindChatMessage, ChatMessageData{PlayerID: 1, Text: "hello"})
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Fatalf("expected trailing newline, got %q", data)
	}
	if bytes.Count(data, []byte("\n")) != 1 {
		t.Fatalf("expected exactly one line, got %q", data)
	}

	var env Envelope
	if err := json.Unmarshal(bytes.TrimSpace(data), &env); err != nil {
		t.Fatalf("encoded line is not valid JSON: %v", err)
	}
	if env.Type != KindChatMessage {
		t.Fatalf("expected type %q, got %q", KindChatMessage, env.Type)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	data, err := Encode(KindPlayerInput, PlayerInputData{PlayerID: 3, Action: "move", Direction: "left"})
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	env, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if env.Type != KindPlayerInput {
		t.Fatalf("expected type %q, got %q", KindPlayerInput, env.Type)
	}

	var payload PlayerInputData
	if err := env.DecodeData(&payload); err != nil {
		t.Fatalf("DecodeData returned error: %v", err)
	}
	if payload.PlayerID != 3 || payload.Action != "move" || payload.Direction != "left" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"not json", "not-json"},
		{"empty", ""},
		{"missing type", `{"data":{}}`},
		{"unknown type", `{"type":"teleport","data":{}}`},
		{"type wrong shape", `{"type":42,"data":{}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.line))
			if err == nil {
				t.Fatalf("expected error for %q", tc.line)
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("expected *Error, got %T: %v", err, err)
			}
		})
	}
}

func TestDecodeDataDefaultsMissingPayload(t *testing.T) {
	env, err := Decode([]byte(`{"type":"connect"}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	var payload ConnectData
	if err := env.DecodeData(&payload); err != nil {
		t.Fatalf("DecodeData returned error: %v", err)
	}
	if payload.Name != "" {
		t.Fatalf("expected zero-value name, got %q", payload.Name)
	}
}

func TestDecodeRecoversAcrossLines(t *testing.T) {
	if _, err := Decode([]byte("{broken")); err == nil {
		t.Fatalf("expected error for broken line")
	}

	env, err := Decode([]byte(`{"type":"request_state","data":{"player_id":2}}`))
	if err != nil {
		t.Fatalf("decode after a malformed line failed: %v", err)
	}
	if env.Type != KindRequestState {
		t.Fatalf("expected type %q, got %q", KindRequestState, env.Type)
	}
}

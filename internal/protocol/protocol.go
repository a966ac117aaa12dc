// Package protocol defines the newline-delimited JSON envelope exchanged
// between the server and its clients, and the payload types carried by each
// message kind. It performs no network I/O.
package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind discriminates the envelope payload.
type Kind string

const (
	KindConnect      Kind = "connect"
	KindDisconnect   Kind = "disconnect"
	KindPlayerInput  Kind = "player_input"
	KindAttack       Kind = "attack"
	KindChatMessage  Kind = "chat_message"
	KindRequestState Kind = "request_state"
	KindPlayerJoined Kind = "player_joined"
	KindPlayerLeft   Kind = "player_left"
	KindGameState    Kind = "game_state"
)

// knownKinds gates decoding: an envelope whose type is not listed here is a
// protocol error, not a best-effort dispatch.
var knownKinds = map[Kind]struct{}{
	KindConnect:      {},
	KindDisconnect:   {},
	KindPlayerInput:  {},
	KindAttack:       {},
	KindChatMessage:  {},
	KindRequestState: {},
	KindPlayerJoined: {},
	KindPlayerLeft:   {},
	KindGameState:    {},
}

// Envelope is the wire unit: one JSON object per line.
type Envelope struct {
	Type Kind            `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Error reports a malformed or unrecognized message. It is scoped to the
// single line that produced it; the connection carrying it stays usable.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("protocol: %s", e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// Encode marshals a payload into an envelope of the given kind and appends the
// line terminator.
func Encode(kind Kind, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	line, err := json.Marshal(Envelope{Type: kind, Data: raw})
	if err != nil {
		return nil, fmt.Errorf("encode %s envelope: %w", kind, err)
	}
	return append(line, '\n'), nil
}

// Decode parses one line into an envelope. The returned *Error classifies
// invalid JSON, a missing type field, and unrecognized kinds.
func Decode(line []byte) (Envelope, error) {
	var env Envelope
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return Envelope{}, &Error{Reason: "empty line"}
	}
	if err := json.Unmarshal(line, &env); err != nil {
		return Envelope{}, &Error{Reason: "invalid JSON", Err: err}
	}
	if env.Type == "" {
		return Envelope{}, &Error{Reason: "missing type field"}
	}
	if _, ok := knownKinds[env.Type]; !ok {
		return Envelope{}, &Error{Reason: fmt.Sprintf("unknown type %q", env.Type)}
	}
	return env, nil
}

// DecodeData unmarshals the envelope payload into v. A nil payload decodes as
// an empty object so optional fields fall back to their zero values.
func (e Envelope) DecodeData(v any) error {
	raw := e.Data
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &Error{Reason: fmt.Sprintf("invalid %s payload", e.Type), Err: err}
	}
	return nil
}

// Command protocolschema emits a JSON Schema document describing the wire
// protocol, for client developers and payload validation tooling.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/Bash-the-Kernel/Lan-Lords/internal/protocol"
)

// wireCatalog aggregates every envelope payload so one reflection pass
// captures the full protocol surface.
type wireCatalog struct {
	Envelope     protocol.Envelope         `json:"envelope"`
	Connect      protocol.ConnectData      `json:"connect"`
	PlayerInput  protocol.PlayerInputData  `json:"player_input"`
	Attack       protocol.AttackData       `json:"attack"`
	ChatMessage  protocol.ChatMessageData  `json:"chat_message"`
	RequestState protocol.RequestStateData `json:"request_state"`
	PlayerJoined protocol.PlayerJoinedData `json:"player_joined"`
	PlayerLeft   protocol.PlayerLeftData   `json:"player_left"`
	GameState    protocol.GameStateData    `json:"game_state"`
}

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	schema := buildSchema()

	if err := writeSchema(outPath, schema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(wireCatalog))
	schema.Title = "LAN Lords Wire Protocol"
	schema.Description = "Newline-delimited JSON envelopes exchanged between the LAN Lords server and its clients."
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}

package protocol

// Client-to-server payloads. PlayerID fields are carried for compatibility
// with older clients but the server trusts only the session's assigned id.

type ConnectData struct {
	Name string `json:"name"`
}

type PlayerInputData struct {
	PlayerID  int    `json:"player_id"`
	Action    string `json:"action"`
	Direction string `json:"direction"`
}

type AttackData struct {
	PlayerID  int    `json:"player_id"`
	Direction string `json:"direction"`
}

type ChatMessageData struct {
	PlayerID int    `json:"player_id"`
	Text     string `json:"text"`
}

type RequestStateData struct {
	PlayerID int `json:"player_id"`
}

// Server-to-client payloads.

type PlayerJoinedData struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
}

type PlayerLeftData struct {
	PlayerID int `json:"player_id"`
}

// Player is the public per-player slice of a game_state snapshot.
type Player struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Health      int     `json:"health"`
	MaxHealth   int     `json:"max_health"`
	Direction   string  `json:"direction"`
	IsCrouching bool    `json:"is_crouching"`
}

// ChatMessage is one entry of the chat tail included in a snapshot.
type ChatMessage struct {
	Text      string `json:"text"`
	IsSystem  bool   `json:"is_system"`
	Timestamp int64  `json:"timestamp"`
}

type GameStateData struct {
	Players   []Player      `json:"players"`
	Chat      []ChatMessage `json:"chat"`
	Timestamp int64         `json:"timestamp"`
}

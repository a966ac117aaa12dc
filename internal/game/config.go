package game

import "time"

// Point is a position in arena coordinates.
type Point struct {
	X float64
	Y float64
}

// Platform is a static rectangle players can stand on or be blocked by.
// The platform set never changes after the world is constructed.
type Platform struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Config carries every gameplay constant. Values are fixed at construction;
// there is no runtime reconfiguration surface.
type Config struct {
	MaxPlayers int

	ArenaWidth  float64
	ArenaHeight float64
	TickRate    int

	PlayerSize float64
	MoveSpeed  float64

	Gravity      float64
	MaxFallSpeed float64
	JumpSpeed    float64
	Friction     float64
	MinSpeed     float64

	MaxHealth      int
	AttackDamage   int
	AttackRange    float64
	AttackReach    float64
	AttackCooldown time.Duration

	ChatHistoryLimit int
	ChatTailSize     int

	SpawnPoints []Point
	Platforms   []Platform
}

// DefaultConfig returns the standard arena ruleset. Movement and physics
// values are in pixels per tick at the default 60 Hz tick rate.
func DefaultConfig() Config {
	return Config{
		MaxPlayers: 4,

		ArenaWidth:  800,
		ArenaHeight: 600,
		TickRate:    60,

		PlayerSize: 40,
		MoveSpeed:  5,

		Gravity:      0.5,
		MaxFallSpeed: 12,
		JumpSpeed:    10,
		Friction:     0.85,
		MinSpeed:     0.1,

		MaxHealth:      100,
		AttackDamage:   10,
		AttackRange:    60,
		AttackReach:    50,
		AttackCooldown: time.Second,

		ChatHistoryLimit: 100,
		ChatTailSize:     10,

		SpawnPoints: []Point{
			{X: 100, Y: 100},
			{X: 700, Y: 100},
			{X: 100, Y: 500},
			{X: 700, Y: 500},
		},
		Platforms: []Platform{
			{X: 80, Y: 520, Width: 640, Height: 20},
			{X: 120, Y: 380, Width: 180, Height: 18},
			{X: 500, Y: 380, Width: 180, Height: 18},
			{X: 280, Y: 120, Width: 240, Height: 16},
		},
	}
}

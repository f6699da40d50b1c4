package config

import (
	_ "embed"
)

//go:embed defaults/ladder.yaml
var defaultLadderYAML []byte

// DefaultConfig returns the default ladder configuration.
func DefaultConfig() Config {
	return Config{
		Geometry: GeometryConfig{
			Spacing:   40,
			Padding:   20,
			Width:     600,
			MinHeight: 400,
		},
		Game: GameConfig{
			DefaultRungs: 30,
			MinRungs:     3,
			MaxRungs:     400,
			MaxLanes:     10,
			Participants: []string{"Player 1", "Player 2", "Player 3", "Player 4"},
			Results:      []string{"Miss", "Miss", "Win", "Miss"},
		},
		Fairness: FairnessConfig{
			Trials:  10000,
			Workers: 4,
		},
		Server: ServerConfig{
			Address:            ":23235",
			IdleTimeoutMinutes: 10,
		},
	}
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
)

// GameConfig holds tunables for the match runtime. The rules themselves are not configurable.
type GameConfig struct {
	// TurnDurationSeconds is the per-turn deadline enforced by the match loop; 0 disables it.
	TurnDurationSeconds int  `json:"turn_duration_seconds"`
	MinPlayersToStart   int  `json:"min_players_to_start"`
	BotsEnabled         bool `json:"bots_enabled"`
	BotMinDelaySeconds  int  `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds  int  `json:"bot_max_delay_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding bots to a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

// Default returns the configuration used when no file is present.
func Default() GameConfig {
	return GameConfig{
		TurnDurationSeconds:     30,
		MinPlayersToStart:       2,
		BotsEnabled:             false,
		BotMinDelaySeconds:      1,
		BotMaxDelaySeconds:      3,
		BotAutoFillDelaySeconds: 5,
	}
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c, err := ParseGameConfig(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// ParseGameConfig decodes a JSON document on top of the defaults and normalizes it.
func ParseGameConfig(data []byte) (GameConfig, error) {
	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return GameConfig{}, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	c.normalize()
	return c, nil
}

// GetGameConfig returns the loaded configuration, or the defaults if nothing was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Default()
	}
	return *cfg
}

// ApplyEnv overrides fields from the Nakama runtime environment.
func (c *GameConfig) ApplyEnv(env map[string]string) {
	if val, ok := env["bigtwo_bots_enabled"]; ok {
		c.BotsEnabled = val == "true"
	}
	setInt := func(key string, dst *int) {
		if val, ok := env[key]; ok {
			if i, err := strconv.Atoi(val); err == nil {
				*dst = i
			}
		}
	}
	setInt("bigtwo_turn_duration_sec", &c.TurnDurationSeconds)
	setInt("bigtwo_min_players", &c.MinPlayersToStart)
	setInt("bigtwo_bot_min_delay_sec", &c.BotMinDelaySeconds)
	setInt("bigtwo_bot_max_delay_sec", &c.BotMaxDelaySeconds)
	setInt("bigtwo_bot_auto_fill_delay_sec", &c.BotAutoFillDelaySeconds)
	c.normalize()
}

func (c *GameConfig) normalize() {
	if c.MinPlayersToStart < 2 {
		c.MinPlayersToStart = 2
	}
	if c.MinPlayersToStart > 4 {
		c.MinPlayersToStart = 4
	}
	if c.TurnDurationSeconds < 0 {
		c.TurnDurationSeconds = 0
	}
	if c.BotMinDelaySeconds < 0 {
		c.BotMinDelaySeconds = 0
	}
	if c.BotMaxDelaySeconds < c.BotMinDelaySeconds {
		c.BotMaxDelaySeconds = c.BotMinDelaySeconds
	}
	if c.BotAutoFillDelaySeconds < 0 {
		c.BotAutoFillDelaySeconds = 0
	}
}

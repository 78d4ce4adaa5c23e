package service

import (
	"time"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/blackboard"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

// IntentKind classifies what a single unit should do this turn
type IntentKind string

const (
	IntentAttackHero IntentKind = "attack_hero"
	IntentAttackCity IntentKind = "attack_city"
	IntentMove       IntentKind = "move"
	IntentHold       IntentKind = "hold"
)

// UnitIntent is one hero's concrete instruction for the turn
type UnitIntent struct {
	HeroID       int             `json:"hero_id"`
	Kind         IntentKind      `json:"kind"`
	TargetHeroID int             `json:"target_hero_id,omitempty"`
	TargetCityID int             `json:"target_city_id,omitempty"`
	MoveTo       *state.Position `json:"move_to,omitempty"`
	Reason       string          `json:"reason,omitempty"`
}

// TurnResult is everything the transport layer needs after one evaluation
type TurnResult struct {
	Round    int                  `json:"round"`
	Decision blackboard.Decision  `json:"decision"`
	Intents  []UnitIntent         `json:"intents"`
	Elapsed  time.Duration        `json:"elapsed"`
	History  []blackboard.HistoryEntry `json:"history,omitempty"`
}

// AgentStatus is a read-only view of the agent for debug surfaces
type AgentStatus struct {
	Round        int                       `json:"round"`
	MyPlayerID   int                       `json:"my_player_id"`
	Strategy     blackboard.StrategyKind   `json:"strategy"`
	Decision     *blackboard.Decision      `json:"decision,omitempty"`
	Snapshot     *state.Snapshot           `json:"snapshot,omitempty"`
	History      []blackboard.HistoryEntry `json:"history,omitempty"`
	ConfigName   string                    `json:"config_name"`
	GridWidth    int                       `json:"grid_width"`
	GridHeight   int                       `json:"grid_height"`
}

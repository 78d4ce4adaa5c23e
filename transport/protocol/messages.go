package protocol

import (
	"encoding/json"
	"fmt"
)

// Message type identifiers used on the wire
const (
	TypeRegister   = "register"
	TypeRegistered = "registered"
	TypeInquire    = "inquire"
	TypeAction     = "action"
	TypeGameOver   = "gameOver"
)

// Message is the envelope every wire message travels in. Data holds the
// type-specific payload, decoded on demand.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewMessage wraps a payload in an envelope of the given type
func NewMessage(msgType string, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", msgType, err)
	}
	return &Message{Type: msgType, Data: data}, nil
}

// DecodePayload unmarshals the envelope's payload into dst
func (m *Message) DecodePayload(dst any) error {
	if len(m.Data) == 0 {
		return fmt.Errorf("%s message has no payload", m.Type)
	}
	if err := json.Unmarshal(m.Data, dst); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", m.Type, err)
	}
	return nil
}

// RegisterPayload announces the agent to the server
type RegisterPayload struct {
	PlayerID int    `json:"playerId"`
	Name     string `json:"name"`
	Version  string `json:"version,omitempty"`
}

// RegisteredPayload is the server's registration acknowledgement
type RegisteredPayload struct {
	PlayerID int    `json:"playerId"`
	MatchID  string `json:"matchId"`
	Config   string `json:"config,omitempty"`
}

// WirePosition is a grid coordinate as the server sends it
type WirePosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WireHero is one unit's state as the server sends it. Position is absent
// while the hero is dead or reviving off-board.
type WireHero struct {
	ID           int           `json:"id"`
	Name         string        `json:"name,omitempty"`
	Position     *WirePosition `json:"position,omitempty"`
	Life         int           `json:"life"`
	MaxLife      int           `json:"maxLife"`
	Attack       int           `json:"attack"`
	Alive        bool          `json:"alive"`
	Reviving     bool          `json:"reviving,omitempty"`
	ReviveRounds int           `json:"reviveRounds,omitempty"`
}

// WirePlayer is one side's state as the server sends it
type WirePlayer struct {
	ID       int        `json:"id"`
	Supplies int        `json:"supplies"`
	Morale   int        `json:"morale"`
	Heroes   []WireHero `json:"heroes"`
}

// WireCity is one attackable structure as the server sends it
type WireCity struct {
	ID       int           `json:"id"`
	Tier     int           `json:"tier"`
	Position *WirePosition `json:"position,omitempty"`
	Life     int           `json:"life"`
	MaxLife  int           `json:"maxLife"`
	Owner    int           `json:"owner"`
}

// WireStronghold is the contestable objective as the server sends it
type WireStronghold struct {
	Position       WirePosition   `json:"position"`
	Owner          int            `json:"owner"`
	Available      bool           `json:"available"`
	AvailableRound int            `json:"availableRound,omitempty"`
	OccupiedRounds map[string]int `json:"occupiedRounds,omitempty"`
}

// TurnPayload is the server's full per-turn battlefield state
type TurnPayload struct {
	Round      int             `json:"round"`
	Players    []WirePlayer    `json:"players"`
	Cities     []WireCity      `json:"cities,omitempty"`
	Stronghold *WireStronghold `json:"stronghold,omitempty"`
}

// Action verbs accepted by the server
const (
	ActionMove   = "move"
	ActionAttack = "attack"
	ActionSiege  = "siege"
	ActionHold   = "hold"
)

// WireAction is one unit's instruction for the turn
type WireAction struct {
	HeroID   int           `json:"heroId"`
	Action   string        `json:"action"`
	TargetID int           `json:"targetId,omitempty"`
	MoveTo   *WirePosition `json:"moveTo,omitempty"`
}

// ActionPayload is the agent's reply to a turn inquiry
type ActionPayload struct {
	Round   int          `json:"round"`
	Actions []WireAction `json:"actions"`
}

// GameOverPayload closes the match
type GameOverPayload struct {
	Winner int    `json:"winner"`
	Reason string `json:"reason,omitempty"`
}

package service

import (
	"github.com/chenchaotao666/xian-game-2025-sub000/game/blackboard"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

// AgentService is the boundary contract between the decision core and the
// transport layer
type AgentService interface {
	// ProcessTurn runs one full evaluation for the snapshot and returns the
	// decision plus per-unit intents
	ProcessTurn(snapshot *state.Snapshot) (*TurnResult, error)

	// ReportOutcome annotates the latest decision with how the turn's
	// actions fared
	ReportOutcome(outcome blackboard.Outcome)

	// Status returns a read-only view for debug surfaces
	Status() *AgentStatus
}

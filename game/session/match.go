package session

import (
	"time"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/blackboard"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/service"
)

// MatchResult is the final verdict of a match
type MatchResult string

const (
	ResultWin     MatchResult = "win"
	ResultLoss    MatchResult = "loss"
	ResultDraw    MatchResult = "draw"
	ResultUnknown MatchResult = "unknown"
)

// TurnRecord is the trace of one turn: which strategy was chosen, why, and
// how it fared once the server resolved the round
type TurnRecord struct {
	Round      int                     `json:"round"`
	Strategy   blackboard.StrategyKind `json:"strategy"`
	Priority   float64                 `json:"priority"`
	Confidence int                     `json:"confidence"`
	Reason     string                  `json:"reason,omitempty"`
	Outcome    blackboard.Outcome      `json:"outcome,omitempty"`
	Intents    int                     `json:"intents"`
	ElapsedMS  int64                   `json:"elapsed_ms"`
}

// MatchRecord is the full trace of one match
type MatchRecord struct {
	ID         string       `json:"id"`
	ConfigName string       `json:"config_name"`
	MyPlayerID int          `json:"my_player_id"`
	Result     MatchResult  `json:"result"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at,omitempty"`
	Turns      []TurnRecord `json:"turns,omitempty"`
}

// Finished reports whether the match has concluded
func (m *MatchRecord) Finished() bool {
	return m.Result != "" && m.Result != ResultUnknown
}

// turnRecordFrom condenses a turn result into its persisted trace
func turnRecordFrom(result *service.TurnResult) TurnRecord {
	return TurnRecord{
		Round:      result.Round,
		Strategy:   result.Decision.Kind,
		Priority:   result.Decision.Priority,
		Confidence: result.Decision.Confidence,
		Reason:     result.Decision.Reason,
		Intents:    len(result.Intents),
		ElapsedMS:  result.Elapsed.Milliseconds(),
	}
}

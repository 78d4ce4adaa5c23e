package strategy

import (
	"fmt"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/blackboard"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

// evaluateCapture scores taking the stronghold. The candidate only exists
// once the objective is available; a stronghold we already hold is never
// re-captured. Capture is the one supply-gated strategy: below the hard
// floor it is withdrawn entirely, below the soft floor it is penalized.
func (e *Evaluator) evaluateCapture(bb *blackboard.Blackboard) *blackboard.Decision {
	stronghold := bb.Stronghold()
	if stronghold == nil {
		return nil
	}
	round := bb.Round()
	if !stronghold.Available && round < e.cfg.StrongholdRound {
		return nil
	}
	if stronghold.Owner == bb.MyID() {
		return nil
	}

	me := bb.MyPlayer()
	if me == nil || me.Supplies < e.cfg.SupplyHardFloor {
		return nil
	}

	mine := positioned(bb.MyAliveHeroes())
	if len(mine) == 0 {
		return nil
	}

	contested := stronghold.Owner != state.NeutralSide

	var priority float64
	var reason string
	switch {
	case contested:
		priority = 85
		reason = "stronghold is enemy-held; must contest"
	default:
		// Neutral: moderate priority once the grace period after
		// availability has passed.
		availableSince := stronghold.AvailableRound
		if availableSince == 0 {
			availableSince = e.cfg.StrongholdRound
		}
		if round < availableSince+e.cfg.StrongholdGraceRounds {
			return nil
		}
		priority = 65
		reason = "stronghold is neutral and uncontested"
	}

	avgDist, reachable := e.averageRealDistance(mine, stronghold.Position)
	if !reachable {
		return nil
	}
	switch {
	case avgDist <= 3:
		priority += 10
	case avgDist > 10:
		priority -= 10
	}

	enemies := positioned(bb.EnemyAliveHeroes())
	nearby := enemiesNear(enemies, stronghold.Position, e.cfg.AttackRange+2)
	risk := float64(nearby) * 20
	priority -= float64(nearby) * 5

	if me.Supplies < e.cfg.SupplySoftFloor {
		priority -= 20
		reason += fmt.Sprintf(" (supplies %d below soft floor)", me.Supplies)
	}

	confidence := clampConfidence(100 - risk)
	if confidence < 20 {
		confidence = 20
	}

	return &blackboard.Decision{
		Kind:       blackboard.CaptureFlag,
		Priority:   priority,
		Confidence: confidence,
		Reason:     reason,
		Steps: []string{
			fmt.Sprintf("move to stronghold at (%d,%d)", stronghold.Position.X, stronghold.Position.Y),
			"hold the point against contest",
		},
		Details: blackboard.CaptureFlagDetails{
			Position:  stronghold.Position,
			Risk:      risk,
			Contested: contested,
		},
	}
}

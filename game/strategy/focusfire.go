package strategy

import (
	"fmt"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/blackboard"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

// focusCandidate is one enemy qualified for concentrated fire
type focusCandidate struct {
	target      *state.Hero
	attackers   []*state.Hero
	score       float64
	totalDamage int
}

// evaluateFocusFire looks for an enemy already within attack range of at
// least one of my units. Qualifying enemies are ranked by
// (100 − healthPercent) + 10 × attackerCount; the top one becomes the
// candidate. Priority jumps to the kill tier when the attackers' summed
// damage covers the target's remaining life.
func (e *Evaluator) evaluateFocusFire(bb *blackboard.Blackboard) *blackboard.Decision {
	mine := positioned(bb.MyAliveHeroes())
	enemies := positioned(bb.EnemyAliveHeroes())
	if len(mine) == 0 || len(enemies) == 0 {
		return nil
	}

	var best *focusCandidate
	for _, enemy := range enemies {
		var attackers []*state.Hero
		totalDamage := 0
		for _, h := range mine {
			r := e.distance.Distance(*h.Position, *enemy.Position)
			if r.Reachable && r.RealDistance <= e.cfg.AttackRange {
				attackers = append(attackers, h)
				totalDamage += h.Attack
			}
		}
		if len(attackers) == 0 {
			continue
		}

		score := (100 - enemy.HealthPercent()) + 10*float64(len(attackers))
		if best == nil || score > best.score {
			best = &focusCandidate{
				target:      enemy,
				attackers:   attackers,
				score:       score,
				totalDamage: totalDamage,
			}
		}
	}
	if best == nil {
		return nil
	}

	canEliminate := best.totalDamage >= best.target.Life

	var priority float64
	var confidence int
	if canEliminate {
		priority = e.cfg.Weights.FocusKillPriority
		confidence = 95
	} else {
		hp := best.target.HealthPercent()
		priority = e.cfg.Weights.FocusBasePriority + (100-hp)/4
		confidence = clampConfidence(40 + 10*float64(len(best.attackers)) + (100-hp)/5)
	}

	attackerIDs := make([]int, len(best.attackers))
	for i, h := range best.attackers {
		attackerIDs[i] = h.ID
	}

	reason := fmt.Sprintf("enemy %d at %.0f%% health with %d units in range",
		best.target.ID, best.target.HealthPercent(), len(best.attackers))
	if canEliminate {
		reason = fmt.Sprintf("enemy %d can be eliminated this turn (%d damage vs %d life)",
			best.target.ID, best.totalDamage, best.target.Life)
	}

	return &blackboard.Decision{
		Kind:       blackboard.FocusFire,
		Priority:   priority,
		Confidence: confidence,
		Reason:     reason,
		Steps: []string{
			fmt.Sprintf("concentrate fire on enemy %d", best.target.ID),
			"keep attackers inside attack range",
		},
		Details: blackboard.FocusFireDetails{
			TargetID:     best.target.ID,
			AttackerIDs:  attackerIDs,
			TotalDamage:  best.totalDamage,
			TargetLife:   best.target.Life,
			CanEliminate: canEliminate,
		},
	}
}

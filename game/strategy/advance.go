package strategy

import (
	"fmt"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/blackboard"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

// evaluateAdvance compares aggregate power between the sides and proposes
// either a general attack or, when my units are too spread out to fight
// together, gathering at a rally point first.
//
// Attack qualifies when the power ratio clears the attack threshold, or sits
// in the near-even band while the two sides' centers are already close
// enough to force an engagement. Low average health sharply suppresses the
// candidate.
func (e *Evaluator) evaluateAdvance(bb *blackboard.Blackboard) *blackboard.Decision {
	mine := positioned(bb.MyAliveHeroes())
	enemies := positioned(bb.EnemyAliveHeroes())
	if len(mine) == 0 || len(enemies) == 0 {
		return nil
	}

	enemyPower := power(enemies)
	if enemyPower <= 0 {
		return nil
	}
	ratio := power(mine) / enemyPower

	myCenter, _ := geometricCenter(mine)
	enemyCenter, _ := geometricCenter(enemies)
	centersClose := false
	if r := e.distance.Distance(myCenter, enemyCenter); r.Reachable {
		// Close enough to engage: within twice the regroup spread threshold.
		centersClose = float64(r.RealDistance) <= 2*e.cfg.SpreadThreshold
	}

	if ratio < e.cfg.PowerRatioAttack && !(ratio >= e.cfg.PowerRatioEven && centersClose) {
		return nil
	}

	priority := 50 + (ratio-1)*30
	if priority < 30 {
		priority = 30
	}
	if priority > 85 {
		priority = 85
	}

	avgHealth := averageHealthPercent(mine)
	degraded := avgHealth < e.cfg.LowHealthPercent
	if degraded {
		priority *= 0.4
	}

	// Spread check: scattered forces regroup before committing.
	if spread, ok := e.pairwiseSpread(mine); ok && spread > e.cfg.SpreadThreshold {
		rally, rallyOK := e.rallyPoint(myCenter, enemyCenter)
		if rallyOK {
			return &blackboard.Decision{
				Kind:       blackboard.GatherForces,
				Priority:   priority,
				Confidence: 60,
				Reason: fmt.Sprintf("forces spread %.1f beyond threshold %.1f; regroup before engaging",
					spread, e.cfg.SpreadThreshold),
				Steps: []string{
					fmt.Sprintf("rally at (%d,%d)", rally.X, rally.Y),
					"re-evaluate attack once concentrated",
				},
				Details: blackboard.GatherForcesDetails{
					RallyPoint: rally,
					Spread:     spread,
				},
			}
		}
	}

	target := e.pickAttackTarget(mine, enemies)
	if target == nil {
		return nil
	}

	confidence := clampConfidence(ratio * 40)
	if confidence < 30 {
		confidence = 30
	}
	if degraded {
		confidence = 30
	}

	return &blackboard.Decision{
		Kind:       blackboard.AttackEnemy,
		Priority:   priority,
		Confidence: confidence,
		Reason:     fmt.Sprintf("power ratio %.2f in our favor", ratio),
		Steps: []string{
			fmt.Sprintf("advance on enemy %d", target.ID),
			"engage on contact",
		},
		Details: blackboard.AttackEnemyDetails{
			TargetID:   target.ID,
			PowerRatio: ratio,
		},
	}
}

// rallyPoint computes the regroup position: the geometric center of my
// units, nudged two cells away from the enemy center along the line between
// the centers, then snapped to the nearest walkable cell.
func (e *Evaluator) rallyPoint(myCenter, enemyCenter state.Position) (state.Position, bool) {
	rally := myCenter
	dx := myCenter.X - enemyCenter.X
	dy := myCenter.Y - enemyCenter.Y
	rally.X += sign(dx) * 2
	rally.Y += sign(dy) * 2
	return e.nearestWalkable(rally)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// pickAttackTarget resolves the general-attack target: the enemy nearest by
// average path distance across my units, distance ties broken by lower
// remaining life.
func (e *Evaluator) pickAttackTarget(mine, enemies []*state.Hero) *state.Hero {
	var best *state.Hero
	bestDist := 0.0
	for _, enemy := range enemies {
		avg, ok := e.averageRealDistance(mine, *enemy.Position)
		if !ok {
			continue
		}
		if best == nil || avg < bestDist || (avg == bestDist && enemy.Life < best.Life) {
			best = enemy
			bestDist = avg
		}
	}
	return best
}

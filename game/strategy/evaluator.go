package strategy

import (
	"log"
	"sort"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/blackboard"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/config"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/pathfind"
)

// Evaluator scores candidate strategies against the blackboard and selects
// one per turn
type Evaluator struct {
	cfg      *config.BotConfig
	distance *pathfind.Service
}

// NewEvaluator creates an evaluator using the given tunables and distance
// service
func NewEvaluator(cfg *config.BotConfig, distance *pathfind.Service) *Evaluator {
	return &Evaluator{cfg: cfg, distance: distance}
}

// Analyze evaluates the current turn and returns the selected decision. The
// decision and its resolved target are written into the blackboard before
// returning, so per-unit consumers can read them immediately.
//
// Analyze never fails: missing snapshot data degrades individual candidates
// to "not applicable", and an unexpected internal error degrades the whole
// turn to the defensive fallback.
func (e *Evaluator) Analyze(bb *blackboard.Blackboard) (decision blackboard.Decision) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("strategy: evaluation panic recovered: %v", r)
			decision = e.fallbackDecision("internal error; holding position", false)
			bb.SetStrategy(decision)
		}
	}()

	if bb.Snapshot() == nil {
		decision = e.fallbackDecision("no snapshot yet; holding position", false)
		bb.SetStrategy(decision)
		return decision
	}

	if len(bb.MyAliveHeroes()) == 0 {
		decision = e.fallbackDecision("all units down; waiting to revive", true)
		bb.SetStrategy(decision)
		return decision
	}

	var candidates []blackboard.Decision
	if c := e.evaluateFocusFire(bb); c != nil {
		candidates = append(candidates, *c)
	}
	if c := e.evaluateAdvance(bb); c != nil {
		candidates = append(candidates, *c)
	}
	if c := e.evaluateCapture(bb); c != nil {
		candidates = append(candidates, *c)
	}
	if c := e.evaluateSiege(bb); c != nil {
		candidates = append(candidates, *c)
	}

	if len(candidates) == 0 {
		decision = e.fallbackDecision("no viable strategy; holding position", false)
		bb.SetStrategy(decision)
		return decision
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})
	decision = candidates[0]

	bb.SetStrategy(decision)
	e.assignTarget(bb, decision)
	return decision
}

// fallbackDecision is the default low-confidence hold/observe decision
func (e *Evaluator) fallbackDecision(reason string, waitingForRevive bool) blackboard.Decision {
	return blackboard.Decision{
		Kind:       blackboard.Defensive,
		Priority:   10,
		Confidence: 25,
		Reason:     reason,
		Steps:      []string{"hold position", "observe enemy movement"},
		Details:    blackboard.DefensiveDetails{WaitingForRevive: waitingForRevive},
	}
}

// assignTarget writes the selected decision's concrete target into the
// blackboard. Must run after SetStrategy, which clears prior assignments.
func (e *Evaluator) assignTarget(bb *blackboard.Blackboard, decision blackboard.Decision) {
	switch details := decision.Details.(type) {
	case blackboard.FocusFireDetails:
		bb.SetFocusTarget(details.TargetID)
	case blackboard.AttackEnemyDetails:
		bb.SetEnemyTarget(details.TargetID)
	case blackboard.AttackCityDetails:
		bb.SetCityTarget(details.CityID)
	case blackboard.CaptureFlagDetails:
		bb.SetFlagTarget(details.Position)
	case blackboard.GatherForcesDetails:
		bb.SetGatherPosition(details.RallyPoint)
	}
}

func clampConfidence(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}

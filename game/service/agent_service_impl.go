package service

import (
	"fmt"
	"time"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/blackboard"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/config"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/pathfind"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/strategy"
)

// Agent implements AgentService for one side of one match
type Agent struct {
	cfg        *config.BotConfig
	distance   *pathfind.Service
	evaluator  *strategy.Evaluator
	blackboard *blackboard.Blackboard
	myPlayerID int
}

// NewAgent builds the decision core for the given side from a configuration
func NewAgent(cfg *config.BotConfig, myPlayerID int) (*Agent, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	grid, err := cfg.BuildGrid()
	if err != nil {
		return nil, fmt.Errorf("failed to build grid: %w", err)
	}
	distance := pathfind.NewService(grid)

	return &Agent{
		cfg:        cfg,
		distance:   distance,
		evaluator:  strategy.NewEvaluator(cfg, distance),
		blackboard: blackboard.New(cfg.HistoryCapacity),
		myPlayerID: myPlayerID,
	}, nil
}

// Blackboard exposes the turn store for debug surfaces
func (a *Agent) Blackboard() *blackboard.Blackboard {
	return a.blackboard
}

// ProcessTurn runs one complete turn: install the snapshot, evaluate the
// strategy, and build per-unit intents from the resolved target.
func (a *Agent) ProcessTurn(snapshot *state.Snapshot) (*TurnResult, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("snapshot cannot be nil")
	}
	started := time.Now()

	a.distance.Grid().ResetOverlay()
	a.blackboard.Update(snapshot, a.myPlayerID)
	decision := a.evaluator.Analyze(a.blackboard)

	result := &TurnResult{
		Round:    snapshot.Round,
		Decision: decision,
		Intents:  a.buildIntents(decision),
		Elapsed:  time.Since(started),
		History:  a.blackboard.RecentHistory(5),
	}
	return result, nil
}

// ReportOutcome records how the turn's actions fared
func (a *Agent) ReportOutcome(outcome blackboard.Outcome) {
	a.blackboard.RecordStrategyResult(outcome)
}

// Status returns a read-only view of the agent
func (a *Agent) Status() *AgentStatus {
	grid := a.distance.Grid()
	return &AgentStatus{
		Round:      a.blackboard.Round(),
		MyPlayerID: a.myPlayerID,
		Strategy:   a.blackboard.CurrentStrategy(),
		Decision:   a.blackboard.CurrentDecision(),
		Snapshot:   a.blackboard.Snapshot(),
		History:    a.blackboard.RecentHistory(blackboard.DefaultHistoryCapacity),
		ConfigName: a.cfg.Name,
		GridWidth:  grid.Width(),
		GridHeight: grid.Height(),
	}
}

// buildIntents turns the active strategy and target into one instruction per
// living hero. Heroes with no known position hold.
func (a *Agent) buildIntents(decision blackboard.Decision) []UnitIntent {
	var intents []UnitIntent
	for _, h := range a.blackboard.MyAliveHeroes() {
		intents = append(intents, a.intentFor(h, decision))
	}
	return intents
}

func (a *Agent) intentFor(h *state.Hero, decision blackboard.Decision) UnitIntent {
	if h.Position == nil {
		return UnitIntent{HeroID: h.ID, Kind: IntentHold, Reason: "position unknown"}
	}

	switch decision.Kind {
	case blackboard.FocusFire:
		if id, ok := a.blackboard.FocusTarget(); ok {
			return a.engageHero(h, id)
		}
	case blackboard.AttackEnemy:
		if id, ok := a.blackboard.EnemyTarget(); ok {
			return a.engageHero(h, id)
		}
	case blackboard.AttackCity:
		if id, ok := a.blackboard.CityTarget(); ok {
			return a.engageCity(h, id, decision)
		}
	case blackboard.CaptureFlag:
		if pos, ok := a.blackboard.FlagTarget(); ok {
			return a.moveToward(h, pos, "advance to stronghold")
		}
	case blackboard.GatherForces:
		if pos, ok := a.blackboard.GatherPosition(); ok {
			return a.moveToward(h, pos, "regroup at rally point")
		}
	}
	return UnitIntent{HeroID: h.ID, Kind: IntentHold, Reason: "hold position"}
}

// engageHero attacks the target when already in range, otherwise closes in
func (a *Agent) engageHero(h *state.Hero, targetID int) UnitIntent {
	target := a.findEnemyHero(targetID)
	if target == nil || target.Position == nil {
		return UnitIntent{HeroID: h.ID, Kind: IntentHold, Reason: "target lost"}
	}

	r := a.distance.Distance(*h.Position, *target.Position)
	if r.Reachable && r.RealDistance <= a.cfg.AttackRange {
		return UnitIntent{
			HeroID:       h.ID,
			Kind:         IntentAttackHero,
			TargetHeroID: targetID,
			Reason:       "target in range",
		}
	}
	return a.moveToward(h, *target.Position, fmt.Sprintf("close on enemy %d", targetID))
}

// engageCity attacks the city when in range; units not recommended for the
// siege hold back.
func (a *Agent) engageCity(h *state.Hero, cityID int, decision blackboard.Decision) UnitIntent {
	if details, ok := decision.Details.(blackboard.AttackCityDetails); ok && len(details.RecommendedUnits) > 0 {
		recommended := false
		for _, id := range details.RecommendedUnits {
			if id == h.ID {
				recommended = true
				break
			}
		}
		if !recommended {
			return UnitIntent{HeroID: h.ID, Kind: IntentHold, Reason: "not fit for siege"}
		}
	}

	city := a.blackboard.Snapshot().City(cityID)
	if city == nil || city.Position == nil {
		return UnitIntent{HeroID: h.ID, Kind: IntentHold, Reason: "city lost"}
	}

	r := a.distance.Distance(*h.Position, *city.Position)
	if r.Reachable && r.RealDistance <= a.cfg.AttackRange {
		return UnitIntent{
			HeroID:       h.ID,
			Kind:         IntentAttackCity,
			TargetCityID: cityID,
			Reason:       "city in range",
		}
	}
	return a.moveToward(h, *city.Position, fmt.Sprintf("advance on city %d", cityID))
}

// moveToward steps one cell along the shortest path to the destination
func (a *Agent) moveToward(h *state.Hero, dest state.Position, reason string) UnitIntent {
	r := a.distance.Distance(*h.Position, dest)
	if !r.Reachable || len(r.Path) < 2 {
		return UnitIntent{HeroID: h.ID, Kind: IntentHold, Reason: "destination unreachable"}
	}
	next := r.Path[1]
	return UnitIntent{
		HeroID: h.ID,
		Kind:   IntentMove,
		MoveTo: &next,
		Reason: reason,
	}
}

func (a *Agent) findEnemyHero(id int) *state.Hero {
	for _, h := range a.blackboard.EnemyAliveHeroes() {
		if h.ID == id {
			return h
		}
	}
	return nil
}

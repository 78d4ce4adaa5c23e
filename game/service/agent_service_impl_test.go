package service

import (
	"strings"
	"testing"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/blackboard"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/config"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

func openConfig() *config.BotConfig {
	cfg := config.DefaultConfig()
	row := strings.Repeat(".", 12)
	layout := make([]string, 12)
	for i := range layout {
		layout[i] = row
	}
	cfg.Layout = layout
	return cfg
}

func createTestAgent(t *testing.T) *Agent {
	t.Helper()
	agent, err := NewAgent(openConfig(), 1)
	if err != nil {
		t.Fatalf("NewAgent failed: %v", err)
	}
	return agent
}

func testHero(id, x, y, life, maxLife, attack, owner int) state.Hero {
	return state.Hero{
		ID:       id,
		Position: &state.Position{X: x, Y: y},
		Life:     life,
		MaxLife:  maxLife,
		Attack:   attack,
		Alive:    true,
		Owner:    owner,
	}
}

func testSnapshot(round int, mine, enemies []state.Hero) *state.Snapshot {
	return &state.Snapshot{
		Round: round,
		Players: []state.Player{
			{ID: 1, Supplies: 200, Heroes: mine},
			{ID: 2, Supplies: 200, Heroes: enemies},
		},
	}
}

func intentByHero(t *testing.T, intents []UnitIntent, heroID int) UnitIntent {
	t.Helper()
	for _, intent := range intents {
		if intent.HeroID == heroID {
			return intent
		}
	}
	t.Fatalf("no intent for hero %d", heroID)
	return UnitIntent{}
}

func TestNewAgent_NilConfig(t *testing.T) {
	if _, err := NewAgent(nil, 1); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestNewAgent_InvalidLayout(t *testing.T) {
	cfg := openConfig()
	cfg.Layout = []string{"..X.."}
	if _, err := NewAgent(cfg, 1); err == nil {
		t.Fatal("expected error for layout with unknown cell")
	}
}

func TestProcessTurn_NilSnapshot(t *testing.T) {
	agent := createTestAgent(t)
	if _, err := agent.ProcessTurn(nil); err == nil {
		t.Fatal("expected error for nil snapshot")
	}
}

func TestProcessTurn_AllUnitsDown(t *testing.T) {
	agent := createTestAgent(t)
	dead := testHero(101, 2, 2, 0, 1000, 100, 1)
	dead.Alive = false
	dead.Position = nil

	result, err := agent.ProcessTurn(testSnapshot(5, []state.Hero{dead},
		[]state.Hero{testHero(201, 8, 8, 1000, 1000, 100, 2)}))
	if err != nil {
		t.Fatalf("ProcessTurn failed: %v", err)
	}
	if result.Decision.Kind != blackboard.Defensive {
		t.Errorf("expected defensive fallback, got %s", result.Decision.Kind)
	}
	if len(result.Intents) != 0 {
		t.Errorf("expected no intents with no living heroes, got %d", len(result.Intents))
	}
}

func TestProcessTurn_FocusFireAttacksInRange(t *testing.T) {
	agent := createTestAgent(t)
	mine := []state.Hero{
		testHero(101, 2, 2, 1000, 1000, 150, 1),
		testHero(102, 3, 2, 1000, 1000, 150, 1),
	}
	// Wounded enemy in range of both attackers; 300 combined attack covers
	// its 250 remaining life.
	enemies := []state.Hero{testHero(201, 4, 2, 250, 1000, 100, 2)}

	result, err := agent.ProcessTurn(testSnapshot(10, mine, enemies))
	if err != nil {
		t.Fatalf("ProcessTurn failed: %v", err)
	}
	if result.Decision.Kind != blackboard.FocusFire {
		t.Fatalf("expected focus fire, got %s", result.Decision.Kind)
	}
	if result.Round != 10 {
		t.Errorf("expected round 10, got %d", result.Round)
	}
	for _, id := range []int{101, 102} {
		intent := intentByHero(t, result.Intents, id)
		if intent.Kind != IntentAttackHero {
			t.Errorf("hero %d: expected attack_hero, got %s", id, intent.Kind)
		}
		if intent.TargetHeroID != 201 {
			t.Errorf("hero %d: expected target 201, got %d", id, intent.TargetHeroID)
		}
	}
}

func TestProcessTurn_MovesTowardDistantTarget(t *testing.T) {
	agent := createTestAgent(t)
	// One strong hero far from a weak enemy: general attack, close the gap.
	mine := []state.Hero{testHero(101, 0, 0, 1000, 1000, 300, 1)}
	enemies := []state.Hero{testHero(201, 10, 10, 500, 500, 100, 2)}

	result, err := agent.ProcessTurn(testSnapshot(10, mine, enemies))
	if err != nil {
		t.Fatalf("ProcessTurn failed: %v", err)
	}
	if result.Decision.Kind != blackboard.AttackEnemy {
		t.Fatalf("expected attack_enemy, got %s", result.Decision.Kind)
	}

	intent := intentByHero(t, result.Intents, 101)
	if intent.Kind != IntentMove {
		t.Fatalf("expected move intent, got %s", intent.Kind)
	}
	if intent.MoveTo == nil {
		t.Fatal("move intent has no destination")
	}
	// First step along the diagonal toward (10,10).
	if *intent.MoveTo != (state.Position{X: 1, Y: 1}) {
		t.Errorf("expected step to (1,1), got (%d,%d)", intent.MoveTo.X, intent.MoveTo.Y)
	}
}

func TestProcessTurn_CaptureFlagMovesToStronghold(t *testing.T) {
	agent := createTestAgent(t)
	mine := []state.Hero{testHero(101, 1, 1, 1000, 1000, 100, 1)}
	enemies := []state.Hero{testHero(201, 11, 11, 5000, 5000, 1000, 2)}

	snapshot := testSnapshot(120, mine, enemies)
	snapshot.Stronghold = &state.Stronghold{
		Position:  state.Position{X: 6, Y: 6},
		Owner:     2,
		Available: true,
	}

	result, err := agent.ProcessTurn(snapshot)
	if err != nil {
		t.Fatalf("ProcessTurn failed: %v", err)
	}
	if result.Decision.Kind != blackboard.CaptureFlag {
		t.Fatalf("expected capture_flag, got %s", result.Decision.Kind)
	}

	intent := intentByHero(t, result.Intents, 101)
	if intent.Kind != IntentMove {
		t.Fatalf("expected move intent, got %s", intent.Kind)
	}
	if intent.MoveTo == nil || *intent.MoveTo != (state.Position{X: 2, Y: 2}) {
		t.Errorf("expected step toward (6,6), got %+v", intent.MoveTo)
	}
}

func TestProcessTurn_SiegeHoldsUnfitUnits(t *testing.T) {
	agent := createTestAgent(t)
	mine := []state.Hero{
		testHero(101, 2, 2, 1000, 1000, 100, 1),
		testHero(102, 3, 3, 1000, 1000, 100, 1),
		testHero(103, 2, 3, 300, 1000, 100, 1), // too wounded for the siege
	}
	// Enemy too strong to attack, too far to focus: the wounded city is the
	// only viable objective.
	enemies := []state.Hero{testHero(201, 11, 11, 2000, 2000, 1000, 2)}

	snapshot := testSnapshot(10, mine, enemies)
	snapshot.Cities = []state.City{{
		ID:       301,
		Tier:     state.MediumCity,
		Position: &state.Position{X: 4, Y: 2},
		Life:     50,
		MaxLife:  100,
	}}

	result, err := agent.ProcessTurn(snapshot)
	if err != nil {
		t.Fatalf("ProcessTurn failed: %v", err)
	}
	if result.Decision.Kind != blackboard.AttackCity {
		t.Fatalf("expected attack_city, got %s", result.Decision.Kind)
	}

	for _, id := range []int{101, 102} {
		intent := intentByHero(t, result.Intents, id)
		if intent.Kind != IntentAttackCity {
			t.Errorf("hero %d: expected attack_city, got %s", id, intent.Kind)
		}
		if intent.TargetCityID != 301 {
			t.Errorf("hero %d: expected city 301, got %d", id, intent.TargetCityID)
		}
	}
	if intent := intentByHero(t, result.Intents, 103); intent.Kind != IntentHold {
		t.Errorf("wounded hero 103: expected hold, got %s", intent.Kind)
	}
}

func TestReportOutcome_AnnotatesLatestDecision(t *testing.T) {
	agent := createTestAgent(t)
	mine := []state.Hero{testHero(101, 2, 2, 1000, 1000, 150, 1)}
	enemies := []state.Hero{testHero(201, 4, 2, 250, 1000, 100, 2)}

	if _, err := agent.ProcessTurn(testSnapshot(3, mine, enemies)); err != nil {
		t.Fatalf("ProcessTurn failed: %v", err)
	}
	agent.ReportOutcome(blackboard.OutcomeSuccess)

	history := agent.Status().History
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	if history[0].Outcome != blackboard.OutcomeSuccess {
		t.Errorf("expected success outcome, got %q", history[0].Outcome)
	}
}

func TestStatus_ReflectsAgentState(t *testing.T) {
	agent := createTestAgent(t)

	status := agent.Status()
	if status.Round != 0 {
		t.Errorf("expected round 0 before first turn, got %d", status.Round)
	}
	if status.Strategy != blackboard.Defensive {
		t.Errorf("expected defensive before first turn, got %s", status.Strategy)
	}

	mine := []state.Hero{testHero(101, 2, 2, 1000, 1000, 150, 1)}
	enemies := []state.Hero{testHero(201, 4, 2, 250, 1000, 100, 2)}
	if _, err := agent.ProcessTurn(testSnapshot(7, mine, enemies)); err != nil {
		t.Fatalf("ProcessTurn failed: %v", err)
	}

	status = agent.Status()
	if status.Round != 7 {
		t.Errorf("expected round 7, got %d", status.Round)
	}
	if status.MyPlayerID != 1 {
		t.Errorf("expected player 1, got %d", status.MyPlayerID)
	}
	if status.Strategy != blackboard.FocusFire {
		t.Errorf("expected focus_fire, got %s", status.Strategy)
	}
	if status.Decision == nil {
		t.Error("expected a decision after a turn")
	}
	if status.GridWidth != 12 || status.GridHeight != 12 {
		t.Errorf("expected 12x12 grid, got %dx%d", status.GridWidth, status.GridHeight)
	}
}

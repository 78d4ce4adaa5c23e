package blackboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

func pos(x, y int) *state.Position {
	return &state.Position{X: x, Y: y}
}

func createTestSnapshot(round int) *state.Snapshot {
	return &state.Snapshot{
		Round: round,
		Players: []state.Player{
			{
				ID:       1,
				Supplies: 200,
				Morale:   100,
				Heroes: []state.Hero{
					{ID: 101, Position: pos(2, 2), Life: 800, MaxLife: 1000, Attack: 120, Alive: true, Owner: 1},
					{ID: 102, Position: pos(3, 2), Life: 500, MaxLife: 1000, Attack: 100, Alive: true, Owner: 1},
					{ID: 103, Life: 0, MaxLife: 1000, Alive: false, Reviving: true, Owner: 1},
				},
			},
			{
				ID:       2,
				Supplies: 150,
				Morale:   90,
				Heroes: []state.Hero{
					{ID: 201, Position: pos(8, 8), Life: 300, MaxLife: 1000, Attack: 110, Alive: true, Owner: 2},
					{ID: 202, Life: 0, MaxLife: 1000, Alive: false, Owner: 2},
				},
			},
		},
		Cities: []state.City{
			{ID: 301, Tier: state.MediumCity, Position: pos(5, 5), Life: 2000, MaxLife: 4000, Owner: state.NeutralSide},
		},
		Stronghold: &state.Stronghold{
			Position:  state.Position{X: 6, Y: 6},
			Owner:     state.NeutralSide,
			Available: true,
		},
		CapturedAt: time.Now(),
	}
}

func TestUpdate_DerivedViews(t *testing.T) {
	bb := New(0)
	bb.Update(createTestSnapshot(10), 1)

	if bb.Round() != 10 {
		t.Errorf("expected round 10, got %d", bb.Round())
	}
	if got := bb.MyPlayer(); got == nil || got.ID != 1 {
		t.Fatalf("expected my player 1, got %+v", got)
	}
	if got := bb.EnemyPlayer(); got == nil || got.ID != 2 {
		t.Fatalf("expected enemy player 2, got %+v", got)
	}
	if got := len(bb.MyAliveHeroes()); got != 2 {
		t.Errorf("expected 2 alive heroes, got %d", got)
	}
	if got := len(bb.EnemyAliveHeroes()); got != 1 {
		t.Errorf("expected 1 alive enemy hero, got %d", got)
	}
	if got := len(bb.Cities()); got != 1 {
		t.Errorf("expected 1 city, got %d", got)
	}
	if bb.Stronghold() == nil {
		t.Error("expected a stronghold")
	}
}

func TestUpdate_ReplacesSnapshotWholesale(t *testing.T) {
	bb := New(0)
	bb.Update(createTestSnapshot(1), 1)
	bb.SetScratch("combat_mode", true)

	next := createTestSnapshot(2)
	next.Players[1].Heroes[0].Alive = false
	bb.Update(next, 2)

	// Side identity switched: "my" heroes are now player 2's.
	if got := len(bb.MyAliveHeroes()); got != 0 {
		t.Errorf("expected 0 alive heroes for player 2, got %d", got)
	}
	if bb.Round() != 2 {
		t.Errorf("expected round 2, got %d", bb.Round())
	}
	if _, ok := bb.Scratch("combat_mode"); ok {
		t.Error("expected scratch cleared by update")
	}
}

func TestSetStrategy_ClearsStaleTargets(t *testing.T) {
	bb := New(0)
	bb.Update(createTestSnapshot(1), 1)

	bb.SetStrategy(Decision{Kind: AttackCity, Priority: 70, Confidence: 60, Reason: "siege"})
	bb.SetCityTarget(301)
	if id, ok := bb.CityTarget(); !ok || id != 301 {
		t.Fatalf("expected city target 301, got %d (ok=%v)", id, ok)
	}

	bb.SetStrategy(Decision{Kind: FocusFire, Priority: 95, Confidence: 90, Reason: "kill"})
	bb.SetFocusTarget(201)

	if _, ok := bb.CityTarget(); ok {
		t.Error("stale city target visible under focus-fire strategy")
	}
	if id, ok := bb.FocusTarget(); !ok || id != 201 {
		t.Errorf("expected focus target 201, got %d (ok=%v)", id, ok)
	}
}

func TestTargetGetters_KindChecked(t *testing.T) {
	bb := New(0)
	bb.Update(createTestSnapshot(1), 1)
	bb.SetStrategy(Decision{Kind: GatherForces, Priority: 50, Confidence: 50, Reason: "regroup"})
	bb.SetGatherPosition(state.Position{X: 4, Y: 4})

	if _, ok := bb.FocusTarget(); ok {
		t.Error("focus target should be absent")
	}
	if _, ok := bb.EnemyTarget(); ok {
		t.Error("enemy target should be absent")
	}
	if _, ok := bb.CityTarget(); ok {
		t.Error("city target should be absent")
	}
	if _, ok := bb.FlagTarget(); ok {
		t.Error("flag target should be absent")
	}
	if p, ok := bb.GatherPosition(); !ok || p != (state.Position{X: 4, Y: 4}) {
		t.Errorf("expected gather position (4,4), got %v (ok=%v)", p, ok)
	}
}

func TestRecordStrategyResult_OnlyLatestEntry(t *testing.T) {
	bb := New(0)
	bb.Update(createTestSnapshot(1), 1)
	bb.SetStrategy(Decision{Kind: AttackEnemy, Priority: 60, Confidence: 70, Reason: "first"})

	bb.Update(createTestSnapshot(2), 1)
	bb.SetStrategy(Decision{Kind: CaptureFlag, Priority: 85, Confidence: 80, Reason: "second"})
	bb.RecordStrategyResult(OutcomeSuccess)

	history := bb.RecentHistory(10)
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].Outcome != "" {
		t.Errorf("earlier entry mutated: %q", history[0].Outcome)
	}
	if history[1].Outcome != OutcomeSuccess {
		t.Errorf("expected latest entry annotated, got %q", history[1].Outcome)
	}
}

func TestRecordStrategyResult_EmptyHistoryNoop(t *testing.T) {
	bb := New(0)
	bb.RecordStrategyResult(OutcomeFailed) // must not panic
	if got := bb.RecentHistory(5); got != nil {
		t.Errorf("expected empty history, got %v", got)
	}
}

func TestHistoryRing_EvictsOldest(t *testing.T) {
	bb := New(3)
	for round := 1; round <= 5; round++ {
		bb.Update(createTestSnapshot(round), 1)
		bb.SetStrategy(Decision{Kind: Defensive, Priority: 10, Reason: fmt.Sprintf("turn %d", round)})
	}

	history := bb.RecentHistory(10)
	if len(history) != 3 {
		t.Fatalf("expected capacity-bounded history of 3, got %d", len(history))
	}
	for i, round := range []int{3, 4, 5} {
		if history[i].Round != round {
			t.Errorf("entry %d: expected round %d, got %d", i, round, history[i].Round)
		}
	}
}

func TestRecentHistory_ChronologicalWindow(t *testing.T) {
	bb := New(10)
	for round := 1; round <= 4; round++ {
		bb.Update(createTestSnapshot(round), 1)
		bb.SetStrategy(Decision{Kind: AttackEnemy, Priority: 50})
	}

	history := bb.RecentHistory(2)
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].Round != 3 || history[1].Round != 4 {
		t.Errorf("expected rounds [3 4], got [%d %d]", history[0].Round, history[1].Round)
	}
}

func TestCurrentStrategy_DefaultsToDefensive(t *testing.T) {
	bb := New(0)
	if got := bb.CurrentStrategy(); got != Defensive {
		t.Errorf("expected defensive default, got %s", got)
	}
	if bb.CurrentDecision() != nil {
		t.Error("expected nil decision before the first turn")
	}
}

func TestScratch(t *testing.T) {
	bb := New(0)
	bb.SetScratch("formation", "wedge")

	v, ok := bb.Scratch("formation")
	if !ok || v != "wedge" {
		t.Errorf("expected wedge, got %v (ok=%v)", v, ok)
	}
	if _, ok := bb.Scratch("missing"); ok {
		t.Error("expected absent key")
	}
}

func TestDetailsKinds(t *testing.T) {
	tests := []struct {
		details  Details
		expected StrategyKind
	}{
		{FocusFireDetails{}, FocusFire},
		{AttackEnemyDetails{}, AttackEnemy},
		{AttackCityDetails{}, AttackCity},
		{CaptureFlagDetails{}, CaptureFlag},
		{GatherForcesDetails{}, GatherForces},
		{DefensiveDetails{}, Defensive},
	}

	for _, test := range tests {
		if got := test.details.Kind(); got != test.expected {
			t.Errorf("%T.Kind(): expected %s, got %s", test.details, test.expected, got)
		}
	}
}

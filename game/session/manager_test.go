package session

import (
	"errors"
	"testing"
	"time"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/blackboard"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/service"
)

func testTurnResult(round int, kind blackboard.StrategyKind) *service.TurnResult {
	return &service.TurnResult{
		Round: round,
		Decision: blackboard.Decision{
			Kind:       kind,
			Priority:   70,
			Confidence: 80,
			Reason:     "test decision",
		},
		Intents: []service.UnitIntent{
			{HeroID: 101, Kind: service.IntentHold},
		},
		Elapsed: 3 * time.Millisecond,
	}
}

func TestBegin_GeneratesID(t *testing.T) {
	m := NewManager()

	record, err := m.Begin("", "contest", 1)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if len(record.ID) != 8 {
		t.Errorf("expected 8-character generated ID, got %q", record.ID)
	}
	if record.Result != ResultUnknown {
		t.Errorf("expected unknown result for open match, got %q", record.Result)
	}
	if record.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
}

func TestBegin_DuplicateID(t *testing.T) {
	m := NewManager()

	if _, err := m.Begin("m1", "contest", 1); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if _, err := m.Begin("m1", "contest", 1); !errors.Is(err, ErrMatchAlreadyExists) {
		t.Errorf("expected ErrMatchAlreadyExists, got %v", err)
	}
}

func TestRecordTurn_AppendsTrace(t *testing.T) {
	m := NewManager()
	if _, err := m.Begin("m1", "contest", 1); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	if err := m.RecordTurn("m1", testTurnResult(1, blackboard.FocusFire)); err != nil {
		t.Fatalf("RecordTurn failed: %v", err)
	}
	if err := m.RecordTurn("m1", testTurnResult(2, blackboard.AttackCity)); err != nil {
		t.Fatalf("RecordTurn failed: %v", err)
	}

	record, err := m.Get("m1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(record.Turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(record.Turns))
	}
	if record.Turns[0].Round != 1 || record.Turns[0].Strategy != blackboard.FocusFire {
		t.Errorf("unexpected first turn: %+v", record.Turns[0])
	}
	if record.Turns[1].Strategy != blackboard.AttackCity {
		t.Errorf("unexpected second turn: %+v", record.Turns[1])
	}
	if record.Turns[0].Intents != 1 {
		t.Errorf("expected 1 intent recorded, got %d", record.Turns[0].Intents)
	}
}

func TestRecordTurn_UnknownMatch(t *testing.T) {
	m := NewManager()
	err := m.RecordTurn("nope", testTurnResult(1, blackboard.Defensive))
	if !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestRecordOutcome_AnnotatesLatestTurn(t *testing.T) {
	m := NewManager()
	if _, err := m.Begin("m1", "contest", 1); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := m.RecordTurn("m1", testTurnResult(1, blackboard.FocusFire)); err != nil {
		t.Fatalf("RecordTurn failed: %v", err)
	}
	if err := m.RecordTurn("m1", testTurnResult(2, blackboard.FocusFire)); err != nil {
		t.Fatalf("RecordTurn failed: %v", err)
	}

	if err := m.RecordOutcome("m1", blackboard.OutcomeSuccess); err != nil {
		t.Fatalf("RecordOutcome failed: %v", err)
	}

	record, _ := m.Get("m1")
	if record.Turns[0].Outcome != "" {
		t.Errorf("first turn outcome should be untouched, got %q", record.Turns[0].Outcome)
	}
	if record.Turns[1].Outcome != blackboard.OutcomeSuccess {
		t.Errorf("expected success on latest turn, got %q", record.Turns[1].Outcome)
	}
}

func TestRecordOutcome_NoTurnsIsNoop(t *testing.T) {
	m := NewManager()
	if _, err := m.Begin("m1", "contest", 1); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := m.RecordOutcome("m1", blackboard.OutcomeFailed); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}

func TestFinish_ClosesMatch(t *testing.T) {
	m := NewManager()
	if _, err := m.Begin("m1", "contest", 1); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	if err := m.Finish("m1", ResultWin); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	record, _ := m.Get("m1")
	if record.Result != ResultWin {
		t.Errorf("expected win, got %q", record.Result)
	}
	if !record.Finished() {
		t.Error("expected Finished() to report true")
	}
	if record.FinishedAt.IsZero() {
		t.Error("expected FinishedAt to be set")
	}

	// Turns cannot be appended to a finished match.
	err := m.RecordTurn("m1", testTurnResult(99, blackboard.Defensive))
	if !errors.Is(err, ErrMatchFinished) {
		t.Errorf("expected ErrMatchFinished, got %v", err)
	}
}

func TestGet_UnknownMatch(t *testing.T) {
	m := NewManager()
	if _, err := m.Get("nope"); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestListAndCount(t *testing.T) {
	m := NewManager()
	for _, id := range []string{"m1", "m2", "m3"} {
		if _, err := m.Begin(id, "contest", 1); err != nil {
			t.Fatalf("Begin %s failed: %v", id, err)
		}
	}

	if m.Count() != 3 {
		t.Errorf("expected count 3, got %d", m.Count())
	}
	if len(m.List()) != 3 {
		t.Errorf("expected 3 records, got %d", len(m.List()))
	}
}

func TestDelete(t *testing.T) {
	m := NewManager()
	if _, err := m.Begin("m1", "contest", 1); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	if err := m.Delete("m1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := m.Get("m1"); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("expected ErrMatchNotFound after delete, got %v", err)
	}
	if err := m.Delete("m1"); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("expected ErrMatchNotFound for double delete, got %v", err)
	}
}

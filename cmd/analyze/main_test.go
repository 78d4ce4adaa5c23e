package main

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/blackboard"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/session"
)

func writeRecord(t *testing.T, dir, name string, record *session.MatchRecord) {
	t.Helper()
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func sampleRecords() []*session.MatchRecord {
	now := time.Now()
	return []*session.MatchRecord{
		{
			ID: "m1", ConfigName: "contest", MyPlayerID: 1,
			Result: session.ResultWin, StartedAt: now,
			Turns: []session.TurnRecord{
				{Round: 1, Strategy: blackboard.AttackEnemy, Priority: 70, ElapsedMS: 4},
				{Round: 2, Strategy: blackboard.FocusFire, Priority: 95, ElapsedMS: 6,
					Outcome: blackboard.OutcomeSuccess},
				{Round: 3, Strategy: blackboard.FocusFire, Priority: 95, ElapsedMS: 2,
					Outcome: blackboard.OutcomeFailed},
			},
		},
		{
			ID: "m2", ConfigName: "contest", MyPlayerID: 1,
			Result: session.ResultLoss, StartedAt: now,
			Turns: []session.TurnRecord{
				{Round: 1, Strategy: blackboard.Defensive, Priority: 20, ElapsedMS: 1},
			},
		},
		{
			ID: "m3", ConfigName: "contest", MyPlayerID: 2,
			Result: session.ResultUnknown, StartedAt: now,
		},
	}
}

func TestAnalyzeMatches(t *testing.T) {
	report := analyzeMatches(sampleRecords())

	if report.Matches != 3 {
		t.Errorf("expected 3 matches, got %d", report.Matches)
	}
	if report.Wins != 1 || report.Losses != 1 || report.Unfinished != 1 {
		t.Errorf("unexpected result tally: %+v", report)
	}
	if report.Turns != 4 {
		t.Errorf("expected 4 turns, got %d", report.Turns)
	}

	focus := report.Strategies[blackboard.FocusFire]
	if focus == nil || focus.Turns != 2 {
		t.Fatalf("expected 2 focus_fire turns, got %+v", focus)
	}
	if focus.Successes != 1 || focus.Failures != 1 {
		t.Errorf("unexpected focus_fire outcomes: %+v", focus)
	}
	if focus.SumPriority != 190 {
		t.Errorf("expected summed priority 190, got %v", focus.SumPriority)
	}
}

func TestWinRate(t *testing.T) {
	report := analyzeMatches(sampleRecords())
	// 1 win over 2 finished matches; the unfinished one does not count.
	if math.Abs(report.WinRate()-0.5) > 1e-9 {
		t.Errorf("expected win rate 0.5, got %v", report.WinRate())
	}

	empty := analyzeMatches(nil)
	if empty.WinRate() != 0 {
		t.Errorf("expected zero win rate for empty report, got %v", empty.WinRate())
	}
}

func TestLoadMatches(t *testing.T) {
	dir := t.TempDir()
	for _, record := range sampleRecords() {
		writeRecord(t, dir, record.ID+".json", record)
	}

	records, err := loadMatches(dir)
	if err != nil {
		t.Fatalf("loadMatches failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}
}

func TestLoadMatches_SkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "good.json", sampleRecords()[0])
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{nope"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records, err := loadMatches(dir)
	if err != nil {
		t.Fatalf("loadMatches failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "m1" {
		t.Errorf("expected only the good record, got %d records", len(records))
	}
}

func TestLoadMatches_EmptyDir(t *testing.T) {
	records, err := loadMatches(t.TempDir())
	if err != nil {
		t.Fatalf("loadMatches failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestPrintReport_NoPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("printReport panicked: %v", r)
		}
	}()
	printReport(analyzeMatches(sampleRecords()))
	printReport(analyzeMatches(nil))
}

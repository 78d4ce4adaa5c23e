// Command analyze prints quick, human-readable statistics about recorded
// match files in the project's matches directory. It summarizes win rates,
// strategy distribution, reported outcomes per strategy, and decision timing,
// which is the fastest way to sanity-check a tuning change across a batch of
// recorded matches.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/blackboard"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/session"
)

// StrategyStats aggregates every turn that picked a given strategy.
type StrategyStats struct {
	Turns       int
	Successes   int
	Failures    int
	Interrupted int
	SumPriority float64
	SumElapsed  int64
}

// Report is the aggregate view over a batch of match records.
type Report struct {
	Matches    int
	Wins       int
	Losses     int
	Draws      int
	Unfinished int
	Turns      int
	Strategies map[blackboard.StrategyKind]*StrategyStats
}

// WinRate is wins over finished matches, or 0 when nothing finished.
func (r *Report) WinRate() float64 {
	finished := r.Wins + r.Losses + r.Draws
	if finished == 0 {
		return 0
	}
	return float64(r.Wins) / float64(finished)
}

func main() {
	matchDir := "matches"
	if len(os.Args) > 1 {
		matchDir = os.Args[1]
	}

	records, err := loadMatches(matchDir)
	if err != nil {
		fmt.Printf("Error loading matches: %v\n", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		fmt.Printf("No match records found in %s\n", matchDir)
		os.Exit(1)
	}

	report := analyzeMatches(records)
	printReport(report)
}

// loadMatches reads every *.json match record in dir. Files that fail to
// parse are reported and skipped rather than aborting the whole batch.
func loadMatches(dir string) ([]*session.MatchRecord, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	var records []*session.MatchRecord
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Printf("⚠️  Skipping %s: %v\n", filepath.Base(file), err)
			continue
		}
		var record session.MatchRecord
		if err := json.Unmarshal(data, &record); err != nil {
			fmt.Printf("⚠️  Skipping %s: %v\n", filepath.Base(file), err)
			continue
		}
		records = append(records, &record)
	}
	return records, nil
}

// analyzeMatches folds a batch of records into one aggregate report.
func analyzeMatches(records []*session.MatchRecord) *Report {
	report := &Report{
		Strategies: make(map[blackboard.StrategyKind]*StrategyStats),
	}

	for _, record := range records {
		report.Matches++
		switch record.Result {
		case session.ResultWin:
			report.Wins++
		case session.ResultLoss:
			report.Losses++
		case session.ResultDraw:
			report.Draws++
		default:
			report.Unfinished++
		}

		for _, turn := range record.Turns {
			report.Turns++
			stats := report.Strategies[turn.Strategy]
			if stats == nil {
				stats = &StrategyStats{}
				report.Strategies[turn.Strategy] = stats
			}
			stats.Turns++
			stats.SumPriority += turn.Priority
			stats.SumElapsed += turn.ElapsedMS
			switch turn.Outcome {
			case blackboard.OutcomeSuccess:
				stats.Successes++
			case blackboard.OutcomeFailed:
				stats.Failures++
			case blackboard.OutcomeInterrupted:
				stats.Interrupted++
			}
		}
	}
	return report
}

func printReport(report *Report) {
	fmt.Printf("\n=== Match Summary ===\n")
	fmt.Printf("Matches: %d (%d win / %d loss / %d draw / %d unfinished)\n",
		report.Matches, report.Wins, report.Losses, report.Draws, report.Unfinished)
	fmt.Printf("Win rate: %.0f%%\n", report.WinRate()*100)
	fmt.Printf("Turns recorded: %d\n", report.Turns)

	if len(report.Strategies) == 0 {
		fmt.Println("No turns recorded")
		return
	}

	// Most-used strategies first so the headline number is on top.
	kinds := make([]blackboard.StrategyKind, 0, len(report.Strategies))
	for kind := range report.Strategies {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		a, b := report.Strategies[kinds[i]], report.Strategies[kinds[j]]
		if a.Turns != b.Turns {
			return a.Turns > b.Turns
		}
		return kinds[i] < kinds[j]
	})

	fmt.Printf("\n=== Strategy Distribution ===\n")
	for _, kind := range kinds {
		stats := report.Strategies[kind]
		share := float64(stats.Turns) / float64(report.Turns) * 100
		fmt.Printf("%-20s %4d turns (%5.1f%%)  avg priority %.1f  avg %.1fms\n",
			kind, stats.Turns, share,
			stats.SumPriority/float64(stats.Turns),
			float64(stats.SumElapsed)/float64(stats.Turns))

		reported := stats.Successes + stats.Failures + stats.Interrupted
		if reported > 0 {
			fmt.Printf("%-20s      outcomes: %d success / %d failed / %d interrupted\n",
				"", stats.Successes, stats.Failures, stats.Interrupted)
		}
	}
}

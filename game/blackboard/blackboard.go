package blackboard

import (
	"sync"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

// Blackboard is the single source of truth for the current turn: the latest
// snapshot, the chosen strategy and its target, past decisions, and scratch
// flags shared between the evaluator and the unit-consumer layer.
type Blackboard struct {
	mu sync.RWMutex

	snapshot *state.Snapshot
	myID     int

	decision       *Decision
	focusTargetID  int
	enemyTargetID  int
	cityTargetID   int
	flagTarget     state.Position
	gatherPosition state.Position

	history *historyRing
	scratch map[string]any
}

// New creates a blackboard with the given decision-history capacity.
// A non-positive capacity falls back to DefaultHistoryCapacity.
func New(historyCapacity int) *Blackboard {
	return &Blackboard{
		history: newHistoryRing(historyCapacity),
		scratch: make(map[string]any),
	}
}

// Update atomically replaces the current snapshot and the identity of "my
// side". Derived views reflect only the just-installed snapshot. The scratch
// area is cleared: it is per-turn state.
func (b *Blackboard) Update(snapshot *state.Snapshot, myID int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshot = snapshot
	b.myID = myID
	b.scratch = make(map[string]any)
}

// Snapshot returns the current turn's snapshot, or nil before the first update
func (b *Blackboard) Snapshot() *state.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot
}

// MyID returns the controlling side's player ID
func (b *Blackboard) MyID() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.myID
}

// Round returns the current turn number, 0 before the first update
func (b *Blackboard) Round() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.snapshot == nil {
		return 0
	}
	return b.snapshot.Round
}

// MyPlayer returns my side's player record from the current snapshot
func (b *Blackboard) MyPlayer() *state.Player {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot.Player(b.myID)
}

// EnemyPlayer returns the opposing player record from the current snapshot
func (b *Blackboard) EnemyPlayer() *state.Player {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot.Opponent(b.myID)
}

// MyAliveHeroes returns my living heroes this turn
func (b *Blackboard) MyAliveHeroes() []*state.Hero {
	return b.MyPlayer().AliveHeroes()
}

// EnemyAliveHeroes returns the enemy's living heroes this turn
func (b *Blackboard) EnemyAliveHeroes() []*state.Hero {
	return b.EnemyPlayer().AliveHeroes()
}

// Cities returns the current snapshot's city list
func (b *Blackboard) Cities() []state.City {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.snapshot == nil {
		return nil
	}
	return b.snapshot.Cities
}

// Stronghold returns the objective point, or nil when none exists yet
func (b *Blackboard) Stronghold() *state.Stronghold {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.snapshot == nil {
		return nil
	}
	return b.snapshot.Stronghold
}

// SetStrategy records the turn's chosen decision and appends a history
// entry. Target assignments from any previously active kind are cleared so a
// stale target never leaks into a different strategy's turn.
func (b *Blackboard) SetStrategy(decision Decision) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.decision = &decision
	b.focusTargetID = 0
	b.enemyTargetID = 0
	b.cityTargetID = 0
	b.flagTarget = state.Position{}
	b.gatherPosition = state.Position{}

	round := 0
	if b.snapshot != nil {
		round = b.snapshot.Round
	}
	b.history.append(HistoryEntry{
		Round:      round,
		Kind:       decision.Kind,
		Priority:   decision.Priority,
		Confidence: decision.Confidence,
		Reason:     decision.Reason,
	})
}

// CurrentStrategy returns the active strategy kind, or Defensive before any
// decision has been made
func (b *Blackboard) CurrentStrategy() StrategyKind {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.decision == nil {
		return Defensive
	}
	return b.decision.Kind
}

// CurrentDecision returns the active decision, or nil before the first turn
func (b *Blackboard) CurrentDecision() *Decision {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.decision
}

func (b *Blackboard) kindActive(kind StrategyKind) bool {
	return b.decision != nil && b.decision.Kind == kind
}

// SetFocusTarget assigns the focus-fire target. Meaningful only while
// FocusFire is the active strategy.
func (b *Blackboard) SetFocusTarget(heroID int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.focusTargetID = heroID
}

// FocusTarget returns the focus-fire target, absent unless FocusFire is active
func (b *Blackboard) FocusTarget() (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.kindActive(FocusFire) || b.focusTargetID == 0 {
		return 0, false
	}
	return b.focusTargetID, true
}

// SetEnemyTarget assigns the general-attack target hero
func (b *Blackboard) SetEnemyTarget(heroID int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enemyTargetID = heroID
}

// EnemyTarget returns the attack target, absent unless AttackEnemy is active
func (b *Blackboard) EnemyTarget() (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.kindActive(AttackEnemy) || b.enemyTargetID == 0 {
		return 0, false
	}
	return b.enemyTargetID, true
}

// SetCityTarget assigns the structure to siege
func (b *Blackboard) SetCityTarget(cityID int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cityTargetID = cityID
}

// CityTarget returns the siege target, absent unless AttackCity is active
func (b *Blackboard) CityTarget() (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.kindActive(AttackCity) || b.cityTargetID == 0 {
		return 0, false
	}
	return b.cityTargetID, true
}

// SetFlagTarget assigns the objective position to capture
func (b *Blackboard) SetFlagTarget(pos state.Position) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flagTarget = pos
}

// FlagTarget returns the capture position, absent unless CaptureFlag is active
func (b *Blackboard) FlagTarget() (state.Position, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.kindActive(CaptureFlag) {
		return state.Position{}, false
	}
	return b.flagTarget, true
}

// SetGatherPosition assigns the rally point
func (b *Blackboard) SetGatherPosition(pos state.Position) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gatherPosition = pos
}

// GatherPosition returns the rally point, absent unless GatherForces is active
func (b *Blackboard) GatherPosition() (state.Position, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.kindActive(GatherForces) {
		return state.Position{}, false
	}
	return b.gatherPosition, true
}

// RecordStrategyResult annotates the most recent history entry with how the
// turn's actions fared. Earlier entries are never touched; recording with no
// history is a no-op.
func (b *Blackboard) RecordStrategyResult(outcome Outcome) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if latest := b.history.latest(); latest != nil {
		latest.Outcome = outcome
	}
}

// RecentHistory returns the last n decisions in chronological order
func (b *Blackboard) RecentHistory(n int) []HistoryEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.recent(n)
}

// SetScratch stores an auxiliary per-turn value, such as a combat-mode flag
func (b *Blackboard) SetScratch(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scratch[key] = value
}

// Scratch returns an auxiliary per-turn value
func (b *Blackboard) Scratch(key string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.scratch[key]
	return v, ok
}

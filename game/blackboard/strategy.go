package blackboard

import "github.com/chenchaotao666/xian-game-2025-sub000/game/state"

// StrategyKind identifies a high-level turn intent
type StrategyKind string

const (
	FocusFire          StrategyKind = "focus_fire"
	AttackEnemy        StrategyKind = "attack_enemy"
	AttackCity         StrategyKind = "attack_city"
	CaptureFlag        StrategyKind = "capture_flag"
	GatherForces       StrategyKind = "gather_forces"
	Defensive          StrategyKind = "defensive"
	ResourceManagement StrategyKind = "resource_management"
)

// Outcome tags how a turn's strategy fared, reported after the fact by the
// unit-consumer layer
type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeFailed      Outcome = "failed"
	OutcomeInterrupted Outcome = "interrupted"
)

// Details is the per-kind payload of a decision. Each strategy kind has its
// own payload type; Kind ties the payload to the strategy it belongs to.
type Details interface {
	Kind() StrategyKind
}

// FocusFireDetails names the enemy every attacker should pile onto
type FocusFireDetails struct {
	TargetID     int   `json:"target_id"`
	AttackerIDs  []int `json:"attacker_ids"`
	TotalDamage  int   `json:"total_damage"`
	TargetLife   int   `json:"target_life"`
	CanEliminate bool  `json:"can_eliminate"`
}

func (FocusFireDetails) Kind() StrategyKind { return FocusFire }

// AttackEnemyDetails carries the power comparison behind a general attack
type AttackEnemyDetails struct {
	TargetID   int     `json:"target_id"`
	PowerRatio float64 `json:"power_ratio"`
}

func (AttackEnemyDetails) Kind() StrategyKind { return AttackEnemy }

// AttackCityDetails names the structure to siege and who should go
type AttackCityDetails struct {
	CityID           int     `json:"city_id"`
	SafetyScore      float64 `json:"safety_score"`
	RecommendedUnits []int   `json:"recommended_units,omitempty"`
}

func (AttackCityDetails) Kind() StrategyKind { return AttackCity }

// CaptureFlagDetails carries the objective position and the assessed risk
type CaptureFlagDetails struct {
	Position  state.Position `json:"position"`
	Risk      float64        `json:"risk"`
	Contested bool           `json:"contested"`
}

func (CaptureFlagDetails) Kind() StrategyKind { return CaptureFlag }

// GatherForcesDetails carries the rally point for regrouping
type GatherForcesDetails struct {
	RallyPoint state.Position `json:"rally_point"`
	Spread     float64        `json:"spread"`
}

func (GatherForcesDetails) Kind() StrategyKind { return GatherForces }

// DefensiveDetails is the payload of the hold/observe fallback
type DefensiveDetails struct {
	WaitingForRevive bool `json:"waiting_for_revive,omitempty"`
}

func (DefensiveDetails) Kind() StrategyKind { return Defensive }

// Decision is the evaluator's output for one turn
type Decision struct {
	Kind       StrategyKind `json:"kind"`
	Priority   float64      `json:"priority"`
	Confidence int          `json:"confidence"` // 0-100
	Reason     string       `json:"reason"`
	Steps      []string     `json:"steps,omitempty"`
	Details    Details      `json:"details,omitempty"`
}

package config

import (
	"fmt"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/pathfind"
)

// Weights are the strategy-scoring coefficients. They are documented where
// the evaluator applies them; defaults reproduce the reference behavior.
type Weights struct {
	FocusKillPriority  float64 `json:"focus_kill_priority"`
	FocusBasePriority  float64 `json:"focus_base_priority"`
	CityHealthWeight   float64 `json:"city_health_weight"`
	CityDistanceWeight float64 `json:"city_distance_weight"`
	CityRiskWeight     float64 `json:"city_risk_weight"`
	CityEarlyBonus     float64 `json:"city_early_bonus"`
}

// BotConfig is the agent's complete tunable configuration, loaded from JSON
type BotConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Map
	Layout []string          `json:"layout"`
	Legend map[string]string `json:"legend,omitempty"`

	// Combat
	AttackRange int `json:"attack_range"`

	// Objective capture
	SupplyHardFloor       int `json:"supply_hard_floor"`
	SupplySoftFloor       int `json:"supply_soft_floor"`
	StrongholdRound       int `json:"stronghold_round"`
	StrongholdGraceRounds int `json:"stronghold_grace_rounds"`

	// Advance / gather
	SpreadThreshold  float64 `json:"spread_threshold"`
	PowerRatioAttack float64 `json:"power_ratio_attack"`
	PowerRatioEven   float64 `json:"power_ratio_even"`
	LowHealthPercent float64 `json:"low_health_percent"`

	// City siege
	EarlyGameRound int `json:"early_game_round"`

	HistoryCapacity int     `json:"history_capacity"`
	Weights         Weights `json:"weights"`
}

// DefaultConfig returns the built-in configuration used when no config file
// is available
func DefaultConfig() *BotConfig {
	return &BotConfig{
		Name:        "default",
		Description: "Built-in default configuration",
		Layout: []string{
			"................",
			"................",
			"....M......M....",
			"....M......M....",
			"................",
			"......WWWW......",
			".......FF.......",
			"......WWWW......",
			"................",
			"....M......M....",
			"....M......M....",
			"................",
		},
		AttackRange:           3,
		SupplyHardFloor:       50,
		SupplySoftFloor:       150,
		StrongholdRound:       100,
		StrongholdGraceRounds: 10,
		SpreadThreshold:       6,
		PowerRatioAttack:      1.3,
		PowerRatioEven:        0.9,
		LowHealthPercent:      40,
		EarlyGameRound:        50,
		HistoryCapacity:       20,
		Weights: Weights{
			FocusKillPriority:  95,
			FocusBasePriority:  60,
			CityHealthWeight:   0.6,
			CityDistanceWeight: 0.4,
			CityRiskWeight:     1.0,
			CityEarlyBonus:     15,
		},
	}
}

// applyDefaults fills zero-valued tunables from the default configuration so
// hand-written config files only need to override what they change.
func applyDefaults(c *BotConfig) {
	d := DefaultConfig()
	if c.AttackRange == 0 {
		c.AttackRange = d.AttackRange
	}
	if c.SupplyHardFloor == 0 {
		c.SupplyHardFloor = d.SupplyHardFloor
	}
	if c.SupplySoftFloor == 0 {
		c.SupplySoftFloor = d.SupplySoftFloor
	}
	if c.StrongholdRound == 0 {
		c.StrongholdRound = d.StrongholdRound
	}
	if c.StrongholdGraceRounds == 0 {
		c.StrongholdGraceRounds = d.StrongholdGraceRounds
	}
	if c.SpreadThreshold == 0 {
		c.SpreadThreshold = d.SpreadThreshold
	}
	if c.PowerRatioAttack == 0 {
		c.PowerRatioAttack = d.PowerRatioAttack
	}
	if c.PowerRatioEven == 0 {
		c.PowerRatioEven = d.PowerRatioEven
	}
	if c.LowHealthPercent == 0 {
		c.LowHealthPercent = d.LowHealthPercent
	}
	if c.EarlyGameRound == 0 {
		c.EarlyGameRound = d.EarlyGameRound
	}
	if c.HistoryCapacity == 0 {
		c.HistoryCapacity = d.HistoryCapacity
	}
	if c.Weights == (Weights{}) {
		c.Weights = d.Weights
	}
}

// Validate checks a configuration for internal consistency
func Validate(c *BotConfig) error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if len(c.Layout) == 0 {
		return fmt.Errorf("layout is empty")
	}
	width := len(c.Layout[0])
	for i, row := range c.Layout {
		if len(row) != width {
			return fmt.Errorf("layout row %d has width %d, expected %d", i, len(row), width)
		}
	}
	if c.AttackRange < 0 {
		return fmt.Errorf("attack_range must not be negative")
	}
	if c.SupplyHardFloor > c.SupplySoftFloor {
		return fmt.Errorf("supply_hard_floor %d above supply_soft_floor %d", c.SupplyHardFloor, c.SupplySoftFloor)
	}
	if c.SpreadThreshold < 0 {
		return fmt.Errorf("spread_threshold must not be negative")
	}
	return nil
}

// CellLegend converts the config's string legend into pathfind cell types.
// A nil legend yields pathfind.DefaultLegend.
func (c *BotConfig) CellLegend() (map[string]pathfind.CellType, error) {
	if c.Legend == nil {
		return pathfind.DefaultLegend, nil
	}
	known := map[string]pathfind.CellType{
		string(pathfind.Plain): pathfind.Plain,
		string(pathfind.Mount): pathfind.Mount,
		string(pathfind.Water): pathfind.Water,
		string(pathfind.Flag):  pathfind.Flag,
		string(pathfind.Base):  pathfind.Base,
	}
	legend := make(map[string]pathfind.CellType, len(c.Legend))
	for ch, name := range c.Legend {
		cellType, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("legend maps %q to unknown cell type %q", ch, name)
		}
		legend[ch] = cellType
	}
	return legend, nil
}

// BuildGrid constructs the terrain grid described by the configuration
func (c *BotConfig) BuildGrid() (*pathfind.Grid, error) {
	legend, err := c.CellLegend()
	if err != nil {
		return nil, err
	}
	return pathfind.NewGrid(c.Layout, legend)
}

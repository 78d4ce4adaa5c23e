// Command sweep plays configuration variants against the baseline in the
// local match simulator and reports win rates. Each variant mutates one
// group of tunables; a sweep is the quickest way to see whether a weight
// change actually wins more matches before shipping it to a contest.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/config"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/engine"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/service"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

const (
	heroesPerSide = 3
	heroLife      = 1000
	heroAttack    = 120
)

var (
	configDir  = flag.String("config-dir", "configs", "Directory containing map configurations")
	configName = flag.String("config", "default", "Baseline map configuration")
	games      = flag.Int("games", 10, "Matches per variant (half on each side)")
	roundLimit = flag.Int("rounds", 200, "Round limit per match")
)

// Variant is one tunable mutation to test against the baseline.
type Variant struct {
	Name   string
	Mutate func(*config.BotConfig)
}

// variants returns the sweep grid. Each entry changes one behavior lever so
// a win-rate delta points at a single cause.
func variants() []Variant {
	return []Variant{
		{"aggressive-advance", func(c *config.BotConfig) { c.PowerRatioAttack = 1.1 }},
		{"cautious-advance", func(c *config.BotConfig) { c.PowerRatioAttack = 1.5 }},
		{"early-siege", func(c *config.BotConfig) {
			c.EarlyGameRound = 80
			c.Weights.CityEarlyBonus = 25
		}},
		{"tight-formation", func(c *config.BotConfig) { c.SpreadThreshold = 4 }},
		{"loose-formation", func(c *config.BotConfig) { c.SpreadThreshold = 9 }},
		{"reckless-at-low-health", func(c *config.BotConfig) { c.LowHealthPercent = 20 }},
	}
}

func main() {
	flag.Parse()

	configs, err := config.NewManager(*configDir)
	if err != nil {
		log.Fatalf("Failed to open config directory: %v", err)
	}
	base, err := configs.LoadConfig(*configName)
	if err != nil {
		log.Fatalf("Failed to load config %q: %v", *configName, err)
	}

	fmt.Printf("Sweeping %d variants on %q, %d games each, %d round limit\n\n",
		len(variants()), base.Name, *games, *roundLimit)

	exitCode := 0
	for _, variant := range variants() {
		candidate := cloneConfig(base)
		variant.Mutate(candidate)

		wins, draws, losses := 0, 0, 0
		for game := 0; game < *games; game++ {
			// Alternate sides so spawn asymmetry cancels out.
			variantSide := 1 + game%2
			winner, _, err := runMatch(base, candidate, variantSide, *roundLimit)
			if err != nil {
				log.Printf("Match failed for %s: %v", variant.Name, err)
				exitCode = 1
				continue
			}
			switch winner {
			case variantSide:
				wins++
			case state.NeutralSide:
				draws++
			default:
				losses++
			}
		}

		fmt.Printf("%-24s %d-%d-%d (win %.0f%%)\n",
			variant.Name, wins, draws, losses,
			float64(wins)/float64(*games)*100)
	}
	os.Exit(exitCode)
}

// cloneConfig deep-copies a configuration so a variant mutation cannot leak
// into the baseline.
func cloneConfig(base *config.BotConfig) *config.BotConfig {
	copied := *base
	copied.Layout = append([]string(nil), base.Layout...)
	if base.Legend != nil {
		copied.Legend = make(map[string]string, len(base.Legend))
		for k, v := range base.Legend {
			copied.Legend[k] = v
		}
	}
	return &copied
}

// runMatch plays one full self-play match. The variant config drives the
// agent on variantSide; the baseline drives the other. Both agents see the
// same battlefield; only their tunables differ.
func runMatch(base, candidate *config.BotConfig, variantSide, roundLimit int) (winner, rounds int, err error) {
	sim, err := engine.NewEngine(base, roundLimit)
	if err != nil {
		return 0, 0, err
	}

	agents := make(map[int]*service.Agent, 2)
	for _, side := range []int{1, 2} {
		cfg := base
		if side == variantSide {
			cfg = candidate
		}
		agent, err := service.NewAgent(cfg, side)
		if err != nil {
			return 0, 0, err
		}
		agents[side] = agent

		if err := sim.AddPlayer(side, 0); err != nil {
			return 0, 0, err
		}
		for i, pos := range spawnPositions(sim, side, heroesPerSide) {
			hero := state.Hero{
				ID:       side*100 + i + 1,
				Position: &pos,
				Life:     heroLife,
				MaxLife:  heroLife,
				Attack:   heroAttack,
			}
			if err := sim.AddHero(side, hero); err != nil {
				return 0, 0, err
			}
		}
	}

	for !sim.Over() {
		snapshot := sim.Snapshot()
		orders := make(map[int][]service.UnitIntent, 2)
		for side, agent := range agents {
			result, err := agent.ProcessTurn(snapshot)
			if err != nil {
				return 0, 0, err
			}
			orders[side] = result.Intents
		}
		if err := sim.Step(orders); err != nil {
			return 0, 0, err
		}
	}
	return sim.Winner(), sim.Round(), nil
}

// spawnPositions picks count walkable cells for a side: player 1 scans from
// the top-left corner, player 2 from the bottom-right, so sides start in
// opposite corners on any map.
func spawnPositions(sim *engine.Engine, side, count int) []state.Position {
	grid := sim.Grid()
	width, height := grid.Width(), grid.Height()

	var positions []state.Position
	for i := 0; i < width*height && len(positions) < count; i++ {
		x, y := i%width, i/width
		if side == 2 {
			x, y = width-1-x, height-1-y
		}
		p := state.Position{X: x, Y: y}
		if grid.Walkable(p) {
			positions = append(positions, p)
		}
	}
	return positions
}

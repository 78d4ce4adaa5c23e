package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/config"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/pathfind"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

const (
	// DefaultRoundLimit ends a match that neither side can close out.
	DefaultRoundLimit = 300

	// DefaultSupplies is the starting stock for a player added without an
	// explicit amount.
	DefaultSupplies = 200

	// attritionPercent is the share of max life every hero loses per round
	// once its side's supplies run dry.
	attritionPercent = 5
)

var (
	ErrMatchOver       = errors.New("match is over")
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrDuplicatePlayer = errors.New("player already exists")
)

// Engine holds the authoritative battlefield for one simulated match.
type Engine struct {
	cfg        *config.BotConfig
	grid       *pathfind.Grid
	roundLimit int

	round      int
	players    []state.Player
	cities     []state.City
	stronghold *state.Stronghold

	over   bool
	winner int
}

// NewEngine builds a simulator over the given map configuration. A
// non-positive roundLimit falls back to DefaultRoundLimit. The stronghold is
// placed on the map's first flag cell; maps without flags simply have no
// stronghold to contest.
func NewEngine(cfg *config.BotConfig, roundLimit int) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	grid, err := cfg.BuildGrid()
	if err != nil {
		return nil, fmt.Errorf("invalid map: %w", err)
	}
	if roundLimit <= 0 {
		roundLimit = DefaultRoundLimit
	}

	e := &Engine{
		cfg:        cfg,
		grid:       grid,
		roundLimit: roundLimit,
	}
	if flags := grid.FindCells(pathfind.Flag); len(flags) > 0 {
		e.stronghold = &state.Stronghold{
			Position:       flags[0],
			Owner:          state.NeutralSide,
			OccupiedRounds: make(map[int]int),
		}
	}
	return e, nil
}

// AddPlayer registers a side. A non-positive supplies amount falls back to
// DefaultSupplies.
func (e *Engine) AddPlayer(id, supplies int) error {
	if e.playerIndex(id) >= 0 {
		return fmt.Errorf("%w: %d", ErrDuplicatePlayer, id)
	}
	if supplies <= 0 {
		supplies = DefaultSupplies
	}
	e.players = append(e.players, state.Player{ID: id, Supplies: supplies})
	return nil
}

// AddHero places a hero for the given player. The spawn cell must be walkable.
func (e *Engine) AddHero(playerID int, hero state.Hero) error {
	idx := e.playerIndex(playerID)
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, playerID)
	}
	if hero.Position == nil {
		return fmt.Errorf("hero %d has no spawn position", hero.ID)
	}
	if !e.grid.Walkable(*hero.Position) {
		return fmt.Errorf("hero %d spawn (%d,%d) is not walkable",
			hero.ID, hero.Position.X, hero.Position.Y)
	}
	hero.Owner = playerID
	if hero.MaxLife <= 0 {
		hero.MaxLife = hero.Life
	}
	hero.Alive = hero.Life > 0
	pos := *hero.Position
	hero.Position = &pos
	e.players[idx].Heroes = append(e.players[idx].Heroes, hero)
	return nil
}

// AddCity places an attackable structure on the battlefield.
func (e *Engine) AddCity(city state.City) error {
	if city.Position == nil || !e.grid.InBounds(*city.Position) {
		return fmt.Errorf("city %d has no valid position", city.ID)
	}
	if city.MaxLife <= 0 {
		city.MaxLife = city.Life
	}
	pos := *city.Position
	city.Position = &pos
	e.cities = append(e.cities, city)
	return nil
}

// Round returns the number of completed rounds.
func (e *Engine) Round() int { return e.round }

// Over reports whether the match has ended.
func (e *Engine) Over() bool { return e.over }

// Winner returns the winning player ID, or state.NeutralSide for a draw.
// Meaningful only once Over reports true.
func (e *Engine) Winner() int { return e.winner }

// Grid exposes the battlefield terrain.
func (e *Engine) Grid() *pathfind.Grid { return e.grid }

// Snapshot renders the current battlefield as the per-turn view agents
// consume. Everything is deep-copied; callers may mutate the result freely.
func (e *Engine) Snapshot() *state.Snapshot {
	snapshot := &state.Snapshot{
		Round:      e.round,
		CapturedAt: time.Now(),
	}

	snapshot.Players = make([]state.Player, len(e.players))
	for i, player := range e.players {
		copied := player
		copied.Heroes = make([]state.Hero, len(player.Heroes))
		for j, hero := range player.Heroes {
			copied.Heroes[j] = hero
			if hero.Position != nil {
				pos := *hero.Position
				copied.Heroes[j].Position = &pos
			}
		}
		snapshot.Players[i] = copied
	}

	snapshot.Cities = make([]state.City, len(e.cities))
	for i, city := range e.cities {
		snapshot.Cities[i] = city
		if city.Position != nil {
			pos := *city.Position
			snapshot.Cities[i].Position = &pos
		}
	}

	if e.stronghold != nil {
		copied := *e.stronghold
		copied.OccupiedRounds = make(map[int]int, len(e.stronghold.OccupiedRounds))
		for id, rounds := range e.stronghold.OccupiedRounds {
			copied.OccupiedRounds[id] = rounds
		}
		snapshot.Stronghold = &copied
	}
	return snapshot
}

// playerIndex returns the index of the player with the given ID, or -1.
func (e *Engine) playerIndex(id int) int {
	for i := range e.players {
		if e.players[i].ID == id {
			return i
		}
	}
	return -1
}

// playerIDs returns all registered player IDs in ascending order. Resolution
// iterates this order so simulations are reproducible.
func (e *Engine) playerIDs() []int {
	ids := make([]int, 0, len(e.players))
	for i := range e.players {
		ids = append(ids, e.players[i].ID)
	}
	sort.Ints(ids)
	return ids
}

// heroByID finds a hero across all players, or nil.
func (e *Engine) heroByID(id int) *state.Hero {
	for i := range e.players {
		for j := range e.players[i].Heroes {
			if e.players[i].Heroes[j].ID == id {
				return &e.players[i].Heroes[j]
			}
		}
	}
	return nil
}

// cityByID finds a city, or nil.
func (e *Engine) cityByID(id int) *state.City {
	for i := range e.cities {
		if e.cities[i].ID == id {
			return &e.cities[i]
		}
	}
	return nil
}

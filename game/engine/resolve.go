package engine

import (
	"github.com/chenchaotao666/xian-game-2025-sub000/game/pathfind"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/service"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

// Step advances the match by one round. Orders are keyed by player ID; a
// missing entry means that side holds every unit. Resolution runs in fixed
// phases: movement, then simultaneous combat, then supply upkeep, then
// objective occupation, then end-of-match checks. Invalid orders are dropped
// silently, the same way a contest server ignores them.
func (e *Engine) Step(orders map[int][]service.UnitIntent) error {
	if e.over {
		return ErrMatchOver
	}
	e.round++

	if e.stronghold != nil && !e.stronghold.Available && e.round >= e.cfg.StrongholdRound {
		e.stronghold.Available = true
		e.stronghold.AvailableRound = e.round
	}

	ids := e.playerIDs()
	e.resolveMoves(ids, orders)
	e.resolveCombat(ids, orders)
	e.resolveUpkeep()
	e.resolveOccupation()
	e.checkEnd()
	return nil
}

// resolveMoves applies move orders in player-ID order. A move is valid when
// the destination is walkable, exactly one step away, and unoccupied at the
// moment the move resolves.
func (e *Engine) resolveMoves(ids []int, orders map[int][]service.UnitIntent) {
	for _, id := range ids {
		for _, intent := range orders[id] {
			if intent.Kind != service.IntentMove || intent.MoveTo == nil {
				continue
			}
			hero := e.heroByID(intent.HeroID)
			if hero == nil || !hero.Alive || hero.Position == nil || hero.Owner != id {
				continue
			}
			to := *intent.MoveTo
			if !e.grid.Walkable(to) {
				continue
			}
			if pathfind.Chebyshev(*hero.Position, to) != 1 {
				continue
			}
			if e.occupied(to) {
				continue
			}
			hero.Position = &to
		}
	}
}

// resolveCombat accumulates all attack orders against the life totals from
// the start of the phase, then applies them at once. Two heroes that trade
// killing blows both die.
func (e *Engine) resolveCombat(ids []int, orders map[int][]service.UnitIntent) {
	heroDamage := make(map[int]int)
	cityDamage := make(map[int]map[int]int) // cityID -> attacking side -> damage

	for _, id := range ids {
		for _, intent := range orders[id] {
			attacker := e.heroByID(intent.HeroID)
			if attacker == nil || !attacker.Alive || attacker.Position == nil || attacker.Owner != id {
				continue
			}

			switch intent.Kind {
			case service.IntentAttackHero:
				target := e.heroByID(intent.TargetHeroID)
				if target == nil || !target.Alive || target.Position == nil || target.Owner == id {
					continue
				}
				if !e.inAttackRange(*attacker.Position, *target.Position) {
					continue
				}
				heroDamage[target.ID] += attacker.Attack

			case service.IntentAttackCity:
				city := e.cityByID(intent.TargetCityID)
				if city == nil || city.Position == nil || city.Owner == id {
					continue
				}
				if !e.inAttackRange(*attacker.Position, *city.Position) {
					continue
				}
				if cityDamage[city.ID] == nil {
					cityDamage[city.ID] = make(map[int]int)
				}
				cityDamage[city.ID][id] += attacker.Attack
			}
		}
	}

	for heroID, damage := range heroDamage {
		hero := e.heroByID(heroID)
		hero.Life -= damage
		if hero.Life <= 0 {
			hero.Life = 0
			hero.Alive = false
			hero.Position = nil
		}
	}

	for cityID, bySide := range cityDamage {
		city := e.cityByID(cityID)
		total := 0
		for _, damage := range bySide {
			total += damage
		}
		city.Life -= total
		if city.Life <= 0 {
			// Captured by whichever side dealt the most damage; ties go to
			// the lower player ID for determinism.
			city.Owner = dominantSide(bySide)
			city.Life = city.MaxLife / 2
		}
	}
}

// resolveUpkeep charges one supply per living hero per round. A side that
// runs dry bleeds: every hero loses a fixed share of max life until supplies
// return or the hero falls.
func (e *Engine) resolveUpkeep() {
	for i := range e.players {
		player := &e.players[i]
		alive := player.AliveHeroes()

		player.Supplies -= len(alive)
		if player.Supplies > 0 {
			continue
		}
		player.Supplies = 0

		for _, hero := range alive {
			hero.Life -= hero.MaxLife * attritionPercent / 100
			if hero.Life <= 0 {
				hero.Life = 0
				hero.Alive = false
				hero.Position = nil
			}
		}
	}
}

// resolveOccupation advances stronghold ownership. Occupation only counts
// while exactly one side has living heroes on flag cells; a contested or
// empty stronghold makes no progress for anyone.
func (e *Engine) resolveOccupation() {
	if e.stronghold == nil || !e.stronghold.Available {
		return
	}

	occupant := state.NeutralSide
	contested := false
	for i := range e.players {
		for _, hero := range e.players[i].AliveHeroes() {
			if hero.Position == nil || e.grid.CellAt(*hero.Position) != pathfind.Flag {
				continue
			}
			if occupant != state.NeutralSide && occupant != hero.Owner {
				contested = true
			}
			occupant = hero.Owner
		}
	}
	if contested || occupant == state.NeutralSide {
		return
	}

	e.stronghold.OccupiedRounds[occupant]++
	if e.stronghold.Owner != occupant &&
		e.stronghold.OccupiedRounds[occupant] >= e.cfg.StrongholdGraceRounds {
		e.stronghold.Owner = occupant
	}
}

// checkEnd decides whether the match is over. Elimination ends it
// immediately; at the round limit the stronghold owner wins, falling back to
// total remaining life.
func (e *Engine) checkEnd() {
	var alive []int
	for i := range e.players {
		if len(e.players[i].AliveHeroes()) > 0 {
			alive = append(alive, e.players[i].ID)
		}
	}

	switch {
	case len(e.players) >= 2 && len(alive) == 1:
		e.over = true
		e.winner = alive[0]
		return
	case len(e.players) >= 2 && len(alive) == 0:
		e.over = true
		e.winner = state.NeutralSide
		return
	}

	if e.round < e.roundLimit {
		return
	}
	e.over = true

	if e.stronghold != nil && e.stronghold.Owner != state.NeutralSide {
		e.winner = e.stronghold.Owner
		return
	}
	e.winner = e.lifeLeader()
}

// lifeLeader returns the side with the most total remaining life, or
// state.NeutralSide on a tie.
func (e *Engine) lifeLeader() int {
	best, winner := -1, state.NeutralSide
	tied := false
	for i := range e.players {
		total := 0
		for _, hero := range e.players[i].Heroes {
			total += hero.Life
		}
		switch {
		case total > best:
			best, winner, tied = total, e.players[i].ID, false
		case total == best:
			tied = true
		}
	}
	if tied {
		return state.NeutralSide
	}
	return winner
}

// inAttackRange checks range and line of sight for one attack.
func (e *Engine) inAttackRange(from, to state.Position) bool {
	return pathfind.Chebyshev(from, to) <= e.cfg.AttackRange &&
		e.grid.LineOfSight(from, to)
}

// occupied reports whether any living hero stands on the given cell.
func (e *Engine) occupied(p state.Position) bool {
	for i := range e.players {
		for _, hero := range e.players[i].AliveHeroes() {
			if hero.Position != nil && *hero.Position == p {
				return true
			}
		}
	}
	return false
}

// dominantSide picks the side with the highest damage total, lower player ID
// winning ties.
func dominantSide(bySide map[int]int) int {
	best, winner := -1, state.NeutralSide
	for side, damage := range bySide {
		if damage > best || (damage == best && side < winner) {
			best, winner = damage, side
		}
	}
	return winner
}

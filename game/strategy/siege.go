package strategy

import (
	"fmt"
	"sort"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/blackboard"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

// evaluateSiege ranks every standing structure by a blend of three signals:
// low structure health raises priority, short average distance raises it,
// and nearby enemies lower it. Before the early-game round bound an extra
// bonus favors sieging. City attacks consume no supplies and are therefore
// never supply-gated.
func (e *Evaluator) evaluateSiege(bb *blackboard.Blackboard) *blackboard.Decision {
	mine := positioned(bb.MyAliveHeroes())
	if len(mine) == 0 {
		return nil
	}
	cities := bb.Cities()
	if len(cities) == 0 {
		return nil
	}

	enemies := positioned(bb.EnemyAliveHeroes())
	round := bb.Round()
	w := e.cfg.Weights

	type rankedCity struct {
		city     *state.City
		priority float64
		avgDist  float64
		nearby   int
	}

	var best *rankedCity
	for i := range cities {
		city := &cities[i]
		if city.Life <= 0 || city.Position == nil || city.Owner == bb.MyID() {
			continue
		}
		avgDist, reachable := e.averageRealDistance(mine, *city.Position)
		if !reachable {
			continue
		}
		nearby := enemiesNear(enemies, *city.Position, e.cfg.AttackRange+2)

		distScore := 50 - avgDist*2
		if distScore < 0 {
			distScore = 0
		}
		priority := w.CityHealthWeight*(100-city.HealthPercent()) +
			w.CityDistanceWeight*distScore -
			w.CityRiskWeight*float64(nearby)*10 +
			float64(city.Tier)*2
		if round < e.cfg.EarlyGameRound {
			priority += w.CityEarlyBonus
		}

		if best == nil || priority > best.priority {
			best = &rankedCity{city: city, priority: priority, avgDist: avgDist, nearby: nearby}
		}
	}
	if best == nil {
		return nil
	}

	safety := 80 - float64(best.nearby)*20 + (100-best.city.HealthPercent())/10
	confidence := clampConfidence(safety)
	if confidence < 20 {
		confidence = 20
	}

	return &blackboard.Decision{
		Kind:       blackboard.AttackCity,
		Priority:   best.priority,
		Confidence: confidence,
		Reason: fmt.Sprintf("city %d at %.0f%% health, avg distance %.1f, %d enemies nearby",
			best.city.ID, best.city.HealthPercent(), best.avgDist, best.nearby),
		Steps: []string{
			fmt.Sprintf("advance on city %d", best.city.ID),
			"siege with healthy units",
		},
		Details: blackboard.AttackCityDetails{
			CityID:           best.city.ID,
			SafetyScore:      safety,
			RecommendedUnits: e.recommendSiegeUnits(mine, *best.city.Position),
		},
	}
}

// recommendSiegeUnits picks the heroes fit to siege: adequate remaining
// health, ordered by distance to the city then by descending attack power.
func (e *Evaluator) recommendSiegeUnits(mine []*state.Hero, city state.Position) []int {
	type fit struct {
		hero *state.Hero
		dist int
	}
	var fits []fit
	for _, h := range mine {
		if h.HealthPercent() < 50 {
			continue
		}
		r := e.distance.Distance(*h.Position, city)
		if !r.Reachable {
			continue
		}
		fits = append(fits, fit{hero: h, dist: r.RealDistance})
	}
	sort.SliceStable(fits, func(i, j int) bool {
		if fits[i].dist != fits[j].dist {
			return fits[i].dist < fits[j].dist
		}
		return fits[i].hero.Attack > fits[j].hero.Attack
	})

	ids := make([]int, len(fits))
	for i, f := range fits {
		ids[i] = f.hero.ID
	}
	return ids
}

package protocol

import (
	"fmt"
	"strconv"
	"time"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/service"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

// ToSnapshot converts a turn payload into the engine's snapshot form
func ToSnapshot(payload *TurnPayload) (*state.Snapshot, error) {
	if payload == nil {
		return nil, fmt.Errorf("turn payload cannot be nil")
	}

	snapshot := &state.Snapshot{
		Round:      payload.Round,
		CapturedAt: time.Now(),
	}

	for _, wp := range payload.Players {
		player := state.Player{
			ID:       wp.ID,
			Supplies: wp.Supplies,
			Morale:   wp.Morale,
		}
		for _, wh := range wp.Heroes {
			player.Heroes = append(player.Heroes, toHero(wh, wp.ID))
		}
		snapshot.Players = append(snapshot.Players, player)
	}

	for _, wc := range payload.Cities {
		snapshot.Cities = append(snapshot.Cities, toCity(wc))
	}

	if payload.Stronghold != nil {
		snapshot.Stronghold = toStronghold(payload.Stronghold)
	}

	return snapshot, nil
}

func toHero(wh WireHero, owner int) state.Hero {
	hero := state.Hero{
		ID:           wh.ID,
		Name:         wh.Name,
		Life:         wh.Life,
		MaxLife:      wh.MaxLife,
		Attack:       wh.Attack,
		Alive:        wh.Alive,
		Reviving:     wh.Reviving,
		ReviveRounds: wh.ReviveRounds,
		Owner:        owner,
	}
	if wh.Position != nil {
		hero.Position = &state.Position{X: wh.Position.X, Y: wh.Position.Y}
	}
	return hero
}

func toCity(wc WireCity) state.City {
	city := state.City{
		ID:      wc.ID,
		Tier:    state.CityTier(wc.Tier),
		Life:    wc.Life,
		MaxLife: wc.MaxLife,
		Owner:   wc.Owner,
	}
	if wc.Position != nil {
		city.Position = &state.Position{X: wc.Position.X, Y: wc.Position.Y}
	}
	return city
}

func toStronghold(ws *WireStronghold) *state.Stronghold {
	sh := &state.Stronghold{
		Position:       state.Position{X: ws.Position.X, Y: ws.Position.Y},
		Owner:          ws.Owner,
		Available:      ws.Available,
		AvailableRound: ws.AvailableRound,
	}
	if len(ws.OccupiedRounds) > 0 {
		sh.OccupiedRounds = make(map[int]int, len(ws.OccupiedRounds))
		for key, rounds := range ws.OccupiedRounds {
			playerID, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			sh.OccupiedRounds[playerID] = rounds
		}
	}
	return sh
}

// ToActionPayload converts the service layer's unit intents into the wire
// action reply for the given round
func ToActionPayload(round int, intents []service.UnitIntent) *ActionPayload {
	payload := &ActionPayload{Round: round}
	for _, intent := range intents {
		payload.Actions = append(payload.Actions, toAction(intent))
	}
	return payload
}

func toAction(intent service.UnitIntent) WireAction {
	action := WireAction{HeroID: intent.HeroID}

	switch intent.Kind {
	case service.IntentAttackHero:
		action.Action = ActionAttack
		action.TargetID = intent.TargetHeroID
	case service.IntentAttackCity:
		action.Action = ActionSiege
		action.TargetID = intent.TargetCityID
	case service.IntentMove:
		action.Action = ActionMove
		if intent.MoveTo != nil {
			action.MoveTo = &WirePosition{X: intent.MoveTo.X, Y: intent.MoveTo.Y}
		}
	default:
		action.Action = ActionHold
	}
	return action
}

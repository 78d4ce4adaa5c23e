package state

import "time"

// Snapshot is the complete description of the battlefield for one turn. The
// protocol layer builds one per server message; it is replaced wholesale each
// turn and never patched field by field.
type Snapshot struct {
	Round      int         `json:"round"`
	Players    []Player    `json:"players"`
	Cities     []City      `json:"cities"`
	Stronghold *Stronghold `json:"stronghold,omitempty"`
	CapturedAt time.Time   `json:"captured_at"`
}

// Player returns the player record with the given ID, or nil if absent
func (s *Snapshot) Player(id int) *Player {
	if s == nil {
		return nil
	}
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// Opponent returns the first player record whose ID differs from the given
// one, or nil if absent
func (s *Snapshot) Opponent(id int) *Player {
	if s == nil {
		return nil
	}
	for i := range s.Players {
		if s.Players[i].ID != id {
			return &s.Players[i]
		}
	}
	return nil
}

// City returns the city with the given ID, or nil if absent
func (s *Snapshot) City(id int) *City {
	if s == nil {
		return nil
	}
	for i := range s.Cities {
		if s.Cities[i].ID == id {
			return &s.Cities[i]
		}
	}
	return nil
}

package state

// NeutralSide is the owner value for unowned objectives.
const NeutralSide = 0

// Position represents x,y grid coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CityTier classifies a city by size; larger tiers weigh heavier in targeting
type CityTier int

const (
	SmallCity CityTier = iota + 1
	MediumCity
	LargeCity
	Capital
)

// String returns a human-readable tier name
func (t CityTier) String() string {
	switch t {
	case SmallCity:
		return "small"
	case MediumCity:
		return "medium"
	case LargeCity:
		return "large"
	case Capital:
		return "capital"
	default:
		return "unknown"
	}
}

// Hero is the per-turn snapshot of a controllable unit. Position is nil when
// the hero is dead or its location is unknown.
type Hero struct {
	ID           int       `json:"id"`
	Name         string    `json:"name,omitempty"`
	Position     *Position `json:"position,omitempty"`
	Life         int       `json:"life"`
	MaxLife      int       `json:"max_life"`
	Attack       int       `json:"attack"`
	Alive        bool      `json:"alive"`
	Reviving     bool      `json:"reviving"`
	ReviveRounds int       `json:"revive_rounds,omitempty"`
	Owner        int       `json:"owner"`
}

// HealthPercent returns remaining life as a 0-100 percentage
func (h *Hero) HealthPercent() float64 {
	if h == nil || h.MaxLife <= 0 {
		return 0
	}
	return float64(h.Life) / float64(h.MaxLife) * 100
}

// City is the per-turn snapshot of an attackable structure
type City struct {
	ID       int       `json:"id"`
	Tier     CityTier  `json:"tier"`
	Position *Position `json:"position,omitempty"`
	Life     int       `json:"life"`
	MaxLife  int       `json:"max_life"`
	Owner    int       `json:"owner"`
}

// HealthPercent returns remaining life as a 0-100 percentage
func (c *City) HealthPercent() float64 {
	if c == nil || c.MaxLife <= 0 {
		return 0
	}
	return float64(c.Life) / float64(c.MaxLife) * 100
}

// Player is the per-turn snapshot of one side: resources plus its heroes
type Player struct {
	ID       int    `json:"id"`
	Supplies int    `json:"supplies"`
	Morale   int    `json:"morale"`
	Heroes   []Hero `json:"heroes"`
}

// AliveHeroes returns pointers to the player's living heroes
func (p *Player) AliveHeroes() []*Hero {
	if p == nil {
		return nil
	}
	var alive []*Hero
	for i := range p.Heroes {
		if p.Heroes[i].Alive {
			alive = append(alive, &p.Heroes[i])
		}
	}
	return alive
}

// Stronghold is the contestable objective point. OccupiedRounds tracks how
// long each side has held it, keyed by player ID.
type Stronghold struct {
	Position       Position    `json:"position"`
	Owner          int         `json:"owner"`
	Available      bool        `json:"available"`
	AvailableRound int         `json:"available_round,omitempty"`
	OccupiedRounds map[int]int `json:"occupied_rounds,omitempty"`
}

package seed

import (
	"fmt"
	"math/rand/v2"
)

var (
	firstNames = []string{"Kofi", "Luis", "Ana", "Mateo", "Yusuf", "Jonas", "Emeka", "Rui", "Sami", "Tomas", "Idris", "Leon", "Marco", "Niko", "Oscar", "Pavel"}
	lastNames  = []string{"Mensah", "Ortega", "Costa", "Silva", "Okafor", "Berg", "Novak", "Haddad", "Larsen", "Moreau", "Rossi", "Kovac", "Diallo", "Sato", "Weber", "Duarte"}
	clubs      = []string{"Hamburger SV", "Real Betis", "Ajax", "Benfica", "Lyon", "Celtic", "Dinamo Zagreb", "Red Bull Salzburg", "Club Brugge", "Sporting CP", "Genk", "Feyenoord"}
	positions  = []string{"GK", "CB", "LB", "RB", "DM", "CM", "AM", "LW", "RW", "ST"}
	priorities = []string{"high", "medium", "low", ""}
)

const (
	minAge   = 16
	ageRange = 18
)

// PlayerPlan is one synthetic player and what should happen to it.
type PlayerPlan struct {
	Name      string
	Club      string
	Positions []string
	Age       int
	// Scout is the index of the scout to assign, or -1 to leave the
	// player on the scouting list.
	Scout    int
	Priority string
	Report   bool
}

// ScoutPlan is one synthetic scout.
type ScoutPlan struct {
	FirstName string
	LastName  string
	Email     string
}

// Plan is a complete synthetic squad.
type Plan struct {
	Scouts  []ScoutPlan
	Players []PlayerPlan
}

// Expected returns the board column sizes the plan should add.
func (p Plan) Expected() (shortlisted, assigned, completed int) {
	for _, pl := range p.Players {
		switch {
		case pl.Scout < 0:
			shortlisted++
		case pl.Report:
			completed++
		default:
			assigned++
		}
	}
	return shortlisted, assigned, completed
}

// Generate builds a plan from cfg. It is deterministic in cfg.Seed.
func Generate(cfg Config) Plan {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	plan := Plan{
		Scouts:  make([]ScoutPlan, cfg.Scouts),
		Players: make([]PlayerPlan, cfg.Players),
	}
	for i := range plan.Scouts {
		first, last := pick(rng, firstNames), pick(rng, lastNames)
		plan.Scouts[i] = ScoutPlan{
			FirstName: first,
			LastName:  last,
			Email:     fmt.Sprintf("scout%d@scoutdesk.test", i),
		}
	}
	for i := range plan.Players {
		pl := PlayerPlan{
			Name:      fmt.Sprintf("%s %s", pick(rng, firstNames), pick(rng, lastNames)),
			Club:      pick(rng, clubs),
			Positions: []string{pick(rng, positions)},
			Age:       minAge + rng.IntN(ageRange),
			Scout:     -1,
		}
		if rng.IntN(3) == 0 {
			pl.Positions = append(pl.Positions, pick(rng, positions))
		}
		if cfg.Scouts > 0 && rng.Float64() < cfg.AssignRatio {
			pl.Scout = rng.IntN(cfg.Scouts)
			pl.Priority = pick(rng, priorities)
			pl.Report = rng.Float64() < cfg.ReportRatio
		}
		plan.Players[i] = pl
	}
	return plan
}

func pick[T any](rng *rand.Rand, from []T) T {
	return from[rng.IntN(len(from))]
}

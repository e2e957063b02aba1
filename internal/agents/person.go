// Package agents provides the person data model and the demographic and
// professional indices the event family reads and mutates every tick. It
// plays the role the teacher's internal/agents package plays for
// tobyjaguar-mini-world, generalized from a rich per-agent needs/wealth
// model (out of scope here — spec.md names individual economic accounts a
// Non-goal) down to the fields spec.md §3 actually specifies: sex,
// lifespan, aptitudes, and accumulated practice hours.
package agents

import "github.com/talgya/hearthbound/internal/graph"

// ID is a Person's unique, never-reused identifier. It is graph.ID under
// the hood so a Person can be used directly as a graph node reference
// without a conversion at every call site.
type ID = graph.ID

// Sex is the biological sex used for demographic bookkeeping.
type Sex uint8

const (
	Male Sex = iota
	Female
)

func (s Sex) String() string {
	if s == Female {
		return "female"
	}
	return "male"
}

// MinAptitude and MaxAptitude bound every skill aptitude, per spec.md §3.
const (
	MinAptitude = 0.5
	MaxAptitude = 1.5
)

// Person is a single simulated individual.
type Person struct {
	ID        ID
	Sex       Sex
	BirthTime float64
	DeathTime *float64 // nil while alive

	// Aptitude is a per-skill innate multiplier in [MinAptitude, MaxAptitude].
	Aptitude map[string]float64
	// PracticeHours is per-skill accumulated practice, non-negative.
	PracticeHours map[string]float64

	// Profession is the currently practiced profession name, empty if none.
	Profession string
}

// NewPerson creates a Person with empty skill maps, ready to be registered
// in a Store.
func NewPerson(id ID, sex Sex, birthTime float64) *Person {
	return &Person{
		ID:            id,
		Sex:           sex,
		BirthTime:     birthTime,
		Aptitude:      make(map[string]float64),
		PracticeHours: make(map[string]float64),
	}
}

// AliveAt reports whether the person is alive at time t: death time is
// absent, or strictly after t.
func (p *Person) AliveAt(t float64) bool {
	return p.DeathTime == nil || *p.DeathTime > t
}

// AgeAt returns the person's age in years at time t.
func (p *Person) AgeAt(t float64) float64 {
	return (t - p.BirthTime) / DaysPerYear
}

// DaysPerYear is the simulation's calendar constant: one year is exactly
// 365 days, per spec.md §3.
const DaysPerYear = 365.0

// AptitudeFor returns the person's aptitude for skill, defaulting to the
// midpoint of the valid range if the skill was never seeded (e.g. a farmer
// assigned the default vocation without an explicit aptitude draw).
func (p *Person) AptitudeFor(skill string) float64 {
	if v, ok := p.Aptitude[skill]; ok {
		return v
	}
	return (MinAptitude + MaxAptitude) / 2
}

// ClampAptitude clamps a raw aptitude value into [MinAptitude, MaxAptitude].
func ClampAptitude(v float64) float64 {
	if v < MinAptitude {
		return MinAptitude
	}
	if v > MaxAptitude {
		return MaxAptitude
	}
	return v
}

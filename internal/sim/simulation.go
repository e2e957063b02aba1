// Package sim wires the PRNG, relationship graph, agent store, economy, and
// event scheduler into the running simulation, and implements every event in
// spec.md §4.6. It plays the role the teacher's internal/engine.Simulation
// plays for tobyjaguar-mini-world — same event-loop ownership and
// Subscribe/EmitEvent pub-sub shape, generalized from a real-time
// tick-paced world to spec.md's discrete-event, logical-time core.
package sim

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/talgya/hearthbound/internal/agents"
	"github.com/talgya/hearthbound/internal/economy"
	"github.com/talgya/hearthbound/internal/graph"
	"github.com/talgya/hearthbound/internal/matchmaking"
	"github.com/talgya/hearthbound/internal/prng"
	"github.com/talgya/hearthbound/internal/schedule"
)

// ChronicleEntry is one observed event, emitted for any subscriber — log
// handlers, a future narrator, test assertions — without coupling event
// code to any particular sink. Adapted from the teacher's Simulation.Event/
// EmitEvent in internal/engine/simulation.go.
type ChronicleEntry struct {
	Time        float64
	Category    string
	Description string
}

// Simulation holds every piece of core state and the event queue that
// drives it. All mutation funnels through event Execute methods called
// from Run, per spec.md §5.
type Simulation struct {
	RunID uuid.UUID

	RNG     *prng.Source
	Graph   *graph.Graph
	Agents  *agents.Store
	Economy *economy.Economy
	Queue   *schedule.Queue

	Now float64

	Matchmaker matchmaking.Strategy

	eventMu   sync.Mutex
	nextSubID int
	subs      map[int]func(ChronicleEntry)
}

// New constructs an empty Simulation. Callers still need to seed the
// founding population and initial schedule — see Init in init.go.
func New(seed int64, professions map[string]economy.ProfessionRule, consumptionPerCapita map[string]float64) *Simulation {
	return &Simulation{
		RunID:      uuid.New(),
		RNG:        prng.New(seed),
		Graph:      graph.New(),
		Agents:     agents.NewStore(),
		Economy:    economy.New(professions, consumptionPerCapita),
		Queue:      schedule.NewQueue(),
		Matchmaker: matchmaking.FamilyPreferenceMatching{},
		subs:       make(map[int]func(ChronicleEntry)),
	}
}

// Schedule enqueues e to fire at time at.
func (s *Simulation) Schedule(e schedule.Event, at float64) {
	s.Queue.Push(e, at)
}

// ExecutionError reports EVENT_EXECUTION_FAILURE per spec.md §7: the
// simulation time, the failing event's name, and the underlying cause.
type ExecutionError struct {
	Time      float64
	EventName string
	Cause     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("event execution failed at t=%.4f (%s): %v", e.Time, e.EventName, e.Cause)
}

func (e *ExecutionError) Unwrap() error { return e.Cause }

// Run drains the event queue until it is empty or the next event's time is
// at or past maxTime, per spec.md §4.5. Events whose time is strictly less
// than the current simulation time are discarded as stale (defensive
// against stray reschedules); the current time advances only when an event
// is actually executed.
func (s *Simulation) Run(maxTime float64) error {
	for {
		ev, t, ok := s.Queue.Pop()
		if !ok {
			return nil
		}
		if t >= maxTime {
			return nil
		}
		if t < s.Now {
			continue
		}
		s.Now = t
		if err := ev.Execute(s); err != nil {
			return &ExecutionError{Time: t, EventName: ev.Name(), Cause: err}
		}
	}
}

// Subscribe registers fn to receive every ChronicleEntry emitted from here
// on, and returns an id for later Unsubscribe.
func (s *Simulation) Subscribe(fn func(ChronicleEntry)) int {
	s.eventMu.Lock()
	defer s.eventMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	return id
}

// Unsubscribe removes a subscription registered with Subscribe.
func (s *Simulation) Unsubscribe(id int) {
	s.eventMu.Lock()
	defer s.eventMu.Unlock()
	delete(s.subs, id)
}

// Chronicle emits an entry to every current subscriber. Called from event
// Execute methods to narrate what just happened; never affects simulation
// state itself.
func (s *Simulation) Chronicle(category, description string) {
	s.eventMu.Lock()
	entry := ChronicleEntry{Time: s.Now, Category: category, Description: description}
	subs := make([]func(ChronicleEntry), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.eventMu.Unlock()
	for _, fn := range subs {
		fn(entry)
	}
}

// --- matchmaking.SimHandle ---

// IsParentOf implements matchmaking.SimHandle.
func (s *Simulation) IsParentOf(parent, child agents.ID) bool {
	for _, p := range s.Graph.GetParents(child) {
		if p == parent {
			return true
		}
	}
	return false
}

// SharesParent implements matchmaking.SimHandle.
func (s *Simulation) SharesParent(a, b agents.ID) bool {
	return shareAnyParent(s.Graph, a, b)
}

// AptitudeFor implements matchmaking.SimHandle.
func (s *Simulation) AptitudeFor(id agents.ID, skill string) float64 {
	p := s.Agents.Get(id)
	if p == nil {
		return 0
	}
	return p.AptitudeFor(skill)
}

// PracticeHours implements matchmaking.SimHandle.
func (s *Simulation) PracticeHours(id agents.ID, skill string) float64 {
	p := s.Agents.Get(id)
	if p == nil {
		return 0
	}
	return p.PracticeHours[skill]
}

// Uniform01 implements matchmaking.SimHandle.
func (s *Simulation) Uniform01() float64 {
	return s.RNG.Uniform01()
}

package sim

import (
	"github.com/talgya/hearthbound/internal/agents"
	"github.com/talgya/hearthbound/internal/graph"
)

// InheritanceDelayDays is the fractional-day offset between a death and the
// resulting InheritanceEvent, per spec.md §4.6.
const InheritanceDelayDays = 0.1

// DeathEvent ends a person's life and closes every relationship it holds
// that the temporal graph tracks as bidirectional or capacity-bound, per
// spec.md §4.6.
type DeathEvent struct {
	PersonID agents.ID
}

func (e *DeathEvent) Name() string { return "DeathEvent" }

// Execute implements schedule.Event.
func (e *DeathEvent) Execute(simIface any) error {
	s := simIface.(*Simulation)
	p := s.Agents.Get(e.PersonID)
	if p == nil || !p.AliveAt(s.Now) {
		return nil
	}

	heir := eldestLivingChild(s, e.PersonID)
	s.Schedule(&InheritanceEvent{DeceasedID: e.PersonID, HeirID: heir}, s.Now+InheritanceDelayDays)

	spouseTyp := graph.Spouse
	for _, edge := range s.Graph.GetOutbound(e.PersonID, &spouseTyp, floatPtr(s.Now)) {
		s.Graph.EndRelationship(e.PersonID, edge.Target, graph.Spouse, s.Now)
		s.Graph.EndRelationship(edge.Target, e.PersonID, graph.Spouse, s.Now)
		s.Agents.OnWidow(edge.Target)
	}

	apprenticeTyp := graph.Apprentice
	for _, edge := range s.Graph.GetOutbound(e.PersonID, &apprenticeTyp, floatPtr(s.Now)) {
		s.Graph.EndRelationship(e.PersonID, edge.Target, graph.Apprentice, s.Now)
	}
	for _, edge := range s.Graph.GetInbound(e.PersonID, &apprenticeTyp, floatPtr(s.Now)) {
		s.Graph.EndRelationship(edge.Source, e.PersonID, graph.Apprentice, s.Now)
	}

	s.Agents.OnDeath(e.PersonID, s.Now)
	s.Chronicle("death", "a death occurred")
	return nil
}

func floatPtr(v float64) *float64 { return &v }

// eldestLivingChild returns the decedent's eldest living child by
// birth_time, or 0 (no valid id) if none survive.
func eldestLivingChild(s *Simulation, deceased agents.ID) (heir agents.ID) {
	var heirPtr *agents.Person
	for _, childID := range s.Graph.GetChildren(deceased) {
		child := s.Agents.Get(childID)
		if child == nil || !child.AliveAt(s.Now) {
			continue
		}
		if heirPtr == nil || child.BirthTime < heirPtr.BirthTime {
			heirPtr = child
			heir = childID
		}
	}
	if heirPtr == nil {
		return 0
	}
	return heir
}

// InheritanceEvent transfers every building the deceased owned to the
// chosen heir, or orphans it if no heir survives, per spec.md §4.6.
type InheritanceEvent struct {
	DeceasedID agents.ID
	HeirID     agents.ID // 0 if no heir
}

func (e *InheritanceEvent) Name() string { return "InheritanceEvent" }

// Execute implements schedule.Event.
func (e *InheritanceEvent) Execute(simIface any) error {
	s := simIface.(*Simulation)

	heirAlive := e.HeirID != 0
	if heirAlive {
		heir := s.Agents.Get(e.HeirID)
		heirAlive = heir != nil && heir.AliveAt(s.Now)
	}

	for _, bid := range append([]agents.BuildingID(nil), s.Agents.BuildingsOwnedBy(e.DeceasedID)...) {
		s.Agents.TransferBuildingOwnership(bid, e.DeceasedID, e.HeirID, heirAlive)
	}
	return nil
}

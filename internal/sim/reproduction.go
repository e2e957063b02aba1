package sim

import (
	"sort"

	"github.com/talgya/hearthbound/internal/agents"
	"github.com/talgya/hearthbound/internal/graph"
)

// Reproduction eligibility bounds and the base birth probability, per
// spec.md §4.6.
const (
	ReproductionMinAge      = 20.0
	ReproductionMaxAge      = 50.0
	ReproductionMaxChildren = 8
	BaseBirthProbability    = 0.32
)

// ReproductionCheckEvent rolls one birth chance per eligible married
// female, annually, per spec.md §4.6. It reschedules itself.
type ReproductionCheckEvent struct{}

func (e *ReproductionCheckEvent) Name() string { return "ReproductionCheckEvent" }

// Execute implements schedule.Event.
func (e *ReproductionCheckEvent) Execute(simIface any) error {
	s := simIface.(*Simulation)

	married := s.Agents.MarriedFemales()
	femaleIDs := make([]agents.ID, 0, len(married))
	for femaleID := range married {
		femaleIDs = append(femaleIDs, femaleID)
	}
	sort.Slice(femaleIDs, func(i, j int) bool { return femaleIDs[i] < femaleIDs[j] })

	for _, femaleID := range femaleIDs {
		female := s.Agents.Get(femaleID)
		if female == nil || !female.AliveAt(s.Now) {
			continue
		}
		age := female.AgeAt(s.Now)
		if age <= ReproductionMinAge || age >= ReproductionMaxAge {
			continue
		}

		spouseTyp := graph.Spouse
		now := s.Now
		outbound := s.Graph.GetOutbound(femaleID, &spouseTyp, &now)
		if len(outbound) == 0 {
			continue
		}
		husband := s.Agents.Get(outbound[0].Target)
		if husband == nil || !husband.AliveAt(s.Now) {
			continue
		}

		k := len(s.Graph.GetChildren(femaleID))
		if k >= ReproductionMaxChildren {
			continue
		}

		prob := BaseBirthProbability / (1 + 2*float64(k))
		if s.RNG.Bernoulli(prob) {
			s.Schedule(&BirthEvent{MotherID: femaleID, FatherID: outbound[0].Target}, s.Now)
		}
	}

	s.Schedule(e, s.Now+AnnualPeriodDays)
	return nil
}

package sim

import (
	"math"
	"sort"

	"github.com/talgya/hearthbound/internal/agents"
)

// ResourceStressShare is the fraction of shortfall-weighted population that
// the resource-stress check can claim in one year, per spec.md §4.6.
const ResourceStressShare = 0.2

// ResourceStressCheckEvent culls the population under severe market
// shortfall on critical goods, annually, per spec.md §4.6. It reschedules
// itself.
type ResourceStressCheckEvent struct {
	CriticalGoods []string
}

func (e *ResourceStressCheckEvent) Name() string { return "ResourceStressCheckEvent" }

// Execute implements schedule.Event.
func (e *ResourceStressCheckEvent) Execute(simIface any) error {
	s := simIface.(*Simulation)

	maxGap := 0.0
	for _, good := range e.CriticalGoods {
		if gap, ok := s.Economy.MarketGaps[good]; ok && gap > maxGap {
			maxGap = gap
		}
	}

	var shortfall float64
	switch {
	case math.IsInf(maxGap, 1):
		shortfall = 1
	case maxGap <= 1:
		shortfall = 0
	default:
		shortfall = 1 - 1/maxGap
	}

	n := int(math.Floor(float64(s.Agents.AliveCount()) * shortfall * ResourceStressShare))
	if n > 0 {
		victims := weightedVictims(s, n)
		for _, id := range victims {
			s.Schedule(&DeathEvent{PersonID: id}, s.Now+s.RNG.UniformRange(0, 0.1))
		}
	}

	s.Schedule(e, s.Now+AnnualPeriodDays)
	return nil
}

type weighted struct {
	id     agents.ID
	weight float64
}

// weightedVictims draws n victims from the live population via weighted
// sampling, per spec.md §4.6's formula.
func weightedVictims(s *Simulation, n int) []agents.ID {
	all := s.Agents.All()
	ids := make([]agents.ID, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	candidates := make([]weighted, 0, s.Agents.AliveCount())
	for _, id := range ids {
		p := all[id]
		if !p.AliveAt(s.Now) {
			continue
		}
		weight := 1.0
		age := p.AgeAt(s.Now)
		if age < 5 || age > 60 {
			weight *= 3.0
		}
		if p.Profession == "" {
			weight *= 2.0
		}
		weight *= s.RNG.Uniform01()
		candidates = append(candidates, weighted{id: id, weight: weight})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].weight != candidates[j].weight {
			return candidates[i].weight > candidates[j].weight
		}
		return candidates[i].id < candidates[j].id
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]agents.ID, n)
	for i := 0; i < n; i++ {
		out[i] = candidates[i].id
	}
	return out
}

package sim

import (
	"math"
	"sort"

	"github.com/talgya/hearthbound/internal/agents"
	"github.com/talgya/hearthbound/internal/graph"
	"github.com/talgya/hearthbound/internal/matchmaking"
)

// Career-market tuning constants, per spec.md §4.6.
const (
	SlotOpenGapFloor = 1.3
	YouthMinAge      = 16.0
	YouthMaxAge      = 20.0
	QuarterDays      = 91.25
	DefaultVocation  = "farmer"
)

// CareerMarketEvent opens apprenticeship slots from the latest market gaps
// and assigns eligible youths to masters via the matchmaking strategy,
// annually, per spec.md §4.6. It reschedules itself.
type CareerMarketEvent struct{}

func (e *CareerMarketEvent) Name() string { return "CareerMarketEvent" }

// Execute implements schedule.Event.
func (e *CareerMarketEvent) Execute(simIface any) error {
	s := simIface.(*Simulation)

	opened := openedProfessions(s)

	allPersons := s.Agents.All()
	allIDs := make([]agents.ID, 0, len(allPersons))
	for id := range allPersons {
		allIDs = append(allIDs, id)
	}
	sort.Slice(allIDs, func(i, j int) bool { return allIDs[i] < allIDs[j] })

	var youths []agents.ID
	for _, id := range allIDs {
		p := allPersons[id]
		if !p.AliveAt(s.Now) || p.Profession != "" {
			continue
		}
		age := p.AgeAt(s.Now)
		if age < YouthMinAge || age > YouthMaxAge {
			continue
		}
		youths = append(youths, id)
	}

	openedNames := make([]string, 0, len(opened))
	for name := range opened {
		openedNames = append(openedNames, name)
	}
	sort.Strings(openedNames)

	mastersByProfession := make(map[string][]matchmaking.MasterCandidate, len(opened))
	professionSkill := make(map[string]string, len(opened))
	apprenticeTyp := graph.Apprentice
	for _, profession := range openedNames {
		rule, ok := s.Economy.Professions[profession]
		if !ok {
			continue
		}
		professionSkill[profession] = rule.SkillName

		practitioners := s.Agents.PractitionersOf(profession)
		practitionerIDs := make([]agents.ID, 0, len(practitioners))
		for id := range practitioners {
			practitionerIDs = append(practitionerIDs, id)
		}
		sort.Slice(practitionerIDs, func(i, j int) bool { return practitionerIDs[i] < practitionerIDs[j] })

		var masters []matchmaking.MasterCandidate
		for _, id := range practitionerIDs {
			p := s.Agents.Get(id)
			if p == nil || !p.AliveAt(s.Now) {
				continue
			}
			active := len(s.Graph.GetOutbound(id, &apprenticeTyp, floatPtr(s.Now)))
			remaining := rule.MaxApprenticesPerMaster - active
			if remaining > 0 {
				masters = append(masters, matchmaking.MasterCandidate{ID: id, Remaining: remaining})
			}
		}
		if len(masters) > 0 {
			mastersByProfession[profession] = masters
		}
	}

	matches := s.Matchmaker.Match(youths, mastersByProfession, professionSkill, s)

	matched := make(map[agents.ID]bool, len(matches))
	for _, m := range matches {
		rule := s.Economy.Professions[m.Profession]
		duration := rule.ApprenticeshipDuration
		if _, err := s.Graph.AddRelationship(m.MasterID, m.YouthID, graph.Apprentice, s.Now, graph.AddOptions{DurationYrs: float64(duration)}); err != nil {
			return err
		}
		s.Schedule(&GraduateApprenticeshipEvent{ApprenticeID: m.YouthID, MasterID: m.MasterID, Profession: m.Profession}, s.Now+float64(duration)*agents.DaysPerYear)
		total := 4 * duration
		for q := 0; q < total; q++ {
			s.Schedule(&SkillTransferEvent{ApprenticeID: m.YouthID, MasterID: m.MasterID, Profession: m.Profession}, s.Now+float64(q)*QuarterDays)
		}
		matched[m.YouthID] = true
	}

	for _, id := range youths {
		if !matched[id] {
			s.Agents.SetProfession(id, DefaultVocation)
		}
	}

	s.Schedule(e, s.Now+AnnualPeriodDays)
	return nil
}

// openedProfessions draws one Bernoulli trial per good with a market gap,
// opening the profession that produces it to this round's matching when the
// trial succeeds, per spec.md §4.6's slot-opening formula. An opened
// profession is not limited to one apprentice; the matchmaker caps it only
// by its masters' remaining capacity.
func openedProfessions(s *Simulation) map[string]bool {
	goods := make([]string, 0, len(s.Economy.MarketGaps))
	for good := range s.Economy.MarketGaps {
		goods = append(goods, good)
	}
	sort.Strings(goods)

	opened := make(map[string]bool)
	for _, good := range goods {
		prob := slotOpenProbability(s.Economy.MarketGaps[good])
		if prob <= 0 {
			continue
		}
		if !s.RNG.Bernoulli(prob) {
			continue
		}
		prod, ok := s.Economy.Production[good]
		if !ok {
			continue
		}
		opened[prod.Profession] = true
	}
	return opened
}

func slotOpenProbability(gap float64) float64 {
	if math.IsInf(gap, 1) {
		return 1.0
	}
	if gap <= SlotOpenGapFloor {
		return 0
	}
	p := gap - SlotOpenGapFloor
	if p > 1.0 {
		p = 1.0
	}
	return p
}

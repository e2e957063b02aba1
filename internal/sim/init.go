package sim

import (
	"sort"

	"github.com/talgya/hearthbound/internal/agents"
	"github.com/talgya/hearthbound/internal/graph"
)

// FounderCount, founder age bounds, and founder aptitude bounds, per
// spec.md §6.
const (
	FounderCount  = 8
	FounderMinAge = 20.0
	FounderMaxAge = 30.0
	FounderAptMin = 0.7
	FounderAptMax = 1.3
)

// founderSexes assigns four males and four females among the eight
// founding ids, with the two starting marriages landing on ids 1-2 and
// 5-6, per spec.md §6.
var founderSexes = [FounderCount]agents.Sex{
	agents.Male, agents.Female,
	agents.Male, agents.Female,
	agents.Male, agents.Female,
	agents.Male, agents.Female,
}

// Init seeds the starting cohort, the two founding marriages, the
// blacksmith and carpenter's starting buildings, and the five initial
// annual events, per spec.md §6. It assumes the configured professions
// include entries named "blacksmith" and "carpenter" — the two trades the
// founding population is described as already practicing; a configuration
// without either is tolerated (that founder simply starts unemployed).
func Init(s *Simulation, criticalGoods []string) {
	professionNames := make([]string, 0, len(s.Economy.Professions))
	for name := range s.Economy.Professions {
		professionNames = append(professionNames, name)
	}
	sort.Strings(professionNames)

	founders := make([]agents.ID, FounderCount)
	for i := 0; i < FounderCount; i++ {
		age := s.RNG.UniformRange(FounderMinAge, FounderMaxAge)
		birthTime := -age * agents.DaysPerYear
		id := s.Agents.AllocateID()
		p := agents.NewPerson(id, founderSexes[i], birthTime)
		for _, name := range professionNames {
			p.Aptitude[s.Economy.Professions[name].SkillName] = s.RNG.UniformRange(FounderAptMin, FounderAptMax)
		}
		s.Agents.OnBirth(p)
		founders[i] = id

		lifespanDays := s.RNG.Gauss(65, 10) * agents.DaysPerYear
		s.Schedule(&DeathEvent{PersonID: id}, birthTime+lifespanDays)
	}

	marry(s, founders[0], founders[1])
	marry(s, founders[4], founders[5])

	installFounderTrade(s, founders[0], "blacksmith", "forge")
	installFounderTrade(s, founders[4], "carpenter", "workshop")

	s.Schedule(&UpdateCommunityEconomyEvent{}, 0.1)
	s.Schedule(&ResourceStressCheckEvent{CriticalGoods: criticalGoods}, 0.2)
	s.Schedule(&CareerMarketEvent{}, 0.5)
	s.Schedule(&ReproductionCheckEvent{}, 1.0)
	s.Schedule(&MarriageMarketEvent{}, 1.5)
}

func marry(s *Simulation, maleID, femaleID agents.ID) {
	_, _ = s.Graph.AddRelationship(maleID, femaleID, graph.Spouse, 0, graph.AddOptions{})
	_, _ = s.Graph.AddRelationship(femaleID, maleID, graph.Spouse, 0, graph.AddOptions{})
	s.Agents.OnMarriage(maleID, femaleID)
}

func installFounderTrade(s *Simulation, founderID agents.ID, profession, fallbackBuilding string) {
	rule, ok := s.Economy.Professions[profession]
	if !ok {
		return
	}
	s.Agents.SetProfession(founderID, profession)
	building := rule.BuildingRequired
	if building == "" {
		building = fallbackBuilding
	}
	s.Agents.NewBuilding(building, founderID, 0, 1)
}

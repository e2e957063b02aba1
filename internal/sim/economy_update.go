package sim

// PracticeHoursSaturation is the practice-hours denominator past which the
// average-skill multiplier stops improving, per spec.md §4.6.
const PracticeHoursSaturation = 20000.0

// UpdateCommunityEconomyEvent refreshes every consumption need, production
// capacity, and market gap from the current population, annually, per
// spec.md §4.6. It reschedules itself.
type UpdateCommunityEconomyEvent struct{}

func (e *UpdateCommunityEconomyEvent) Name() string { return "UpdateCommunityEconomyEvent" }

// Execute implements schedule.Event.
func (e *UpdateCommunityEconomyEvent) Execute(simIface any) error {
	s := simIface.(*Simulation)

	alive := s.Agents.AliveCount()
	for _, need := range s.Economy.Consumption {
		need.CurrentPopulation = alive
	}

	for _, prod := range s.Economy.Production {
		rule, ok := s.Economy.Professions[prod.Profession]
		if !ok {
			continue
		}
		practitioners := s.Agents.PractitionersOf(prod.Profession)
		count := 0
		hoursSum := 0.0
		for id := range practitioners {
			p := s.Agents.Get(id)
			if p == nil || !p.AliveAt(s.Now) {
				continue
			}
			if rule.BuildingRequired != "" && !s.Agents.OwnsBuildingType(id, rule.BuildingRequired) {
				continue
			}
			count++
			hoursSum += p.PracticeHours[rule.SkillName]
		}
		prod.CurrentPractitioners = count
		avgHours := 0.0
		if count > 0 {
			avgHours = hoursSum / float64(count)
		}
		prod.AvgSkillMultiplier = 1 + min1(avgHours/PracticeHoursSaturation)
	}

	s.Economy.RecomputeGaps()
	s.Schedule(e, s.Now+AnnualPeriodDays)
	return nil
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

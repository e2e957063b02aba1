package sim

import (
	"github.com/talgya/hearthbound/internal/agents"
	"github.com/talgya/hearthbound/internal/graph"
)

// Skill-transfer tuning constants, per spec.md §4.6.
const (
	SkillHoursPerSession  = 520.0
	MasterHoursSaturation = 10000.0
)

// SkillTransferEvent adds a quarterly dose of practice hours to an
// apprentice, scaled by their aptitude and their master's accumulated
// skill, per spec.md §4.6.
type SkillTransferEvent struct {
	ApprenticeID, MasterID agents.ID
	Profession             string
}

func (e *SkillTransferEvent) Name() string { return "SkillTransferEvent" }

// Execute implements schedule.Event.
func (e *SkillTransferEvent) Execute(simIface any) error {
	s := simIface.(*Simulation)
	apprentice := s.Agents.Get(e.ApprenticeID)
	master := s.Agents.Get(e.MasterID)
	if apprentice == nil || master == nil || !apprentice.AliveAt(s.Now) || !master.AliveAt(s.Now) {
		return nil
	}

	apprenticeTyp := graph.Apprentice
	active := false
	for _, edge := range s.Graph.GetOutbound(e.MasterID, &apprenticeTyp, floatPtr(s.Now)) {
		if edge.Target == e.ApprenticeID {
			active = true
			break
		}
	}
	if !active {
		return nil
	}

	rule, ok := s.Economy.Professions[e.Profession]
	if !ok {
		return nil
	}
	skill := rule.SkillName
	masterHours := master.PracticeHours[skill]
	hoursGained := SkillHoursPerSession * apprentice.AptitudeFor(skill) * (1 + min1(masterHours/MasterHoursSaturation))
	apprentice.PracticeHours[skill] += hoursGained
	return nil
}

// GraduateApprenticeshipEvent closes an apprenticeship and, if the
// apprentice survived it, installs them in their trained profession, per
// spec.md §4.6.
type GraduateApprenticeshipEvent struct {
	ApprenticeID, MasterID agents.ID
	Profession             string
}

func (e *GraduateApprenticeshipEvent) Name() string { return "GraduateApprenticeshipEvent" }

// Execute implements schedule.Event.
func (e *GraduateApprenticeshipEvent) Execute(simIface any) error {
	s := simIface.(*Simulation)

	s.Graph.EndRelationship(e.MasterID, e.ApprenticeID, graph.Apprentice, s.Now)

	apprentice := s.Agents.Get(e.ApprenticeID)
	if apprentice == nil || !apprentice.AliveAt(s.Now) {
		return nil
	}
	s.Agents.SetProfession(e.ApprenticeID, e.Profession)

	rule, ok := s.Economy.Professions[e.Profession]
	if !ok || rule.BuildingRequired == "" {
		return nil
	}
	if s.Agents.OwnsBuildingType(e.ApprenticeID, rule.BuildingRequired) {
		return nil
	}
	s.Agents.NewBuilding(rule.BuildingRequired, e.ApprenticeID, s.Now, 1)
	return nil
}

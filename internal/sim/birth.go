package sim

import (
	"sort"

	"github.com/talgya/hearthbound/internal/agents"
	"github.com/talgya/hearthbound/internal/graph"
)

// InfantMortalityDelayDays and InfantMortalityProbability are the fixed
// timing and probability the BirthEvent uses to schedule its infant-
// mortality check, per spec.md §4.6.
const (
	InfantMortalityDelayDays   = 365.0
	InfantMortalityProbability = 0.25
)

// BirthEvent creates a new agent from two married parents, per spec.md
// §4.6.
type BirthEvent struct {
	MotherID, FatherID agents.ID
}

func (e *BirthEvent) Name() string { return "BirthEvent" }

// Execute implements schedule.Event.
func (e *BirthEvent) Execute(simIface any) error {
	s := simIface.(*Simulation)
	mother := s.Agents.Get(e.MotherID)
	father := s.Agents.Get(e.FatherID)
	if mother == nil || father == nil || !mother.AliveAt(s.Now) || !father.AliveAt(s.Now) {
		return nil
	}
	spouseTyp := graph.Spouse
	now := s.Now
	married := false
	for _, edge := range s.Graph.GetOutbound(e.MotherID, &spouseTyp, &now) {
		if edge.Target == e.FatherID {
			married = true
			break
		}
	}
	if !married {
		return nil
	}

	maleRatio := 0.0
	if s.Agents.AliveCount() > 0 {
		maleRatio = float64(s.Agents.AliveMaleCount()) / float64(s.Agents.AliveCount())
	}
	probMale := 0.5 + (0.5-maleRatio)*0.2
	sex := agents.Female
	if s.RNG.Bernoulli(probMale) {
		sex = agents.Male
	}

	childID := s.Agents.AllocateID()
	child := agents.NewPerson(childID, sex, s.Now)
	motherSkills := make([]string, 0, len(mother.Aptitude))
	for skill := range mother.Aptitude {
		motherSkills = append(motherSkills, skill)
	}
	sort.Strings(motherSkills)
	for _, skill := range motherSkills {
		motherApt := mother.Aptitude[skill]
		mean := motherApt
		if fatherApt, ok := father.Aptitude[skill]; ok {
			mean = (motherApt + fatherApt) / 2
		}
		child.Aptitude[skill] = agents.ClampAptitude(s.RNG.Gauss(mean, 0.15))
	}
	fatherSkills := make([]string, 0, len(father.Aptitude))
	for skill := range father.Aptitude {
		fatherSkills = append(fatherSkills, skill)
	}
	sort.Strings(fatherSkills)
	for _, skill := range fatherSkills {
		fatherApt := father.Aptitude[skill]
		if _, ok := child.Aptitude[skill]; !ok {
			child.Aptitude[skill] = agents.ClampAptitude(s.RNG.Gauss(fatherApt, 0.15))
		}
	}

	s.Agents.OnBirth(child)
	if _, err := s.Graph.AddRelationship(e.MotherID, childID, graph.Parent, s.Now, graph.AddOptions{}); err != nil {
		return err
	}
	if _, err := s.Graph.AddRelationship(e.FatherID, childID, graph.Parent, s.Now, graph.AddOptions{}); err != nil {
		return err
	}

	s.Schedule(&InfantMortalityCheckEvent{ChildID: childID, Probability: InfantMortalityProbability}, s.Now+InfantMortalityDelayDays)
	lifespanDays := s.RNG.Gauss(65, 10) * agents.DaysPerYear
	s.Schedule(&DeathEvent{PersonID: childID}, s.Now+lifespanDays)

	s.Chronicle("birth", "a child was born")
	return nil
}

// InfantMortalityCheckEvent may kill a newborn one year after birth, per
// spec.md §4.6.
type InfantMortalityCheckEvent struct {
	ChildID     agents.ID
	Probability float64
}

func (e *InfantMortalityCheckEvent) Name() string { return "InfantMortalityCheckEvent" }

// Execute implements schedule.Event.
func (e *InfantMortalityCheckEvent) Execute(simIface any) error {
	s := simIface.(*Simulation)
	child := s.Agents.Get(e.ChildID)
	if child == nil || !child.AliveAt(s.Now) {
		return nil
	}
	if s.RNG.Bernoulli(e.Probability) {
		s.Schedule(&DeathEvent{PersonID: e.ChildID}, s.Now)
	}
	return nil
}

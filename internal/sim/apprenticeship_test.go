package sim

import (
	"testing"

	"github.com/talgya/hearthbound/internal/agents"
	"github.com/talgya/hearthbound/internal/graph"
)

// TestS5SkillTransferAfterMasterDeathIsNoOp covers scenario S5: a
// SkillTransferEvent scheduled before the master's death but executing
// after it must be a no-op and must not add hours.
func TestS5SkillTransferAfterMasterDeathIsNoOp(t *testing.T) {
	s := newTestSim(5)
	masterID := s.Agents.AllocateID()
	apprenticeID := s.Agents.AllocateID()
	master := agents.NewPerson(masterID, agents.Male, -40*agents.DaysPerYear)
	apprentice := agents.NewPerson(apprenticeID, agents.Male, -17*agents.DaysPerYear)
	s.Agents.OnBirth(master)
	s.Agents.OnBirth(apprentice)
	s.Agents.SetProfession(masterID, "blacksmith")
	s.Graph.AddRelationship(masterID, apprenticeID, graph.Apprentice, 0, graph.AddOptions{DurationYrs: 7})

	s.Now = 100
	(&DeathEvent{PersonID: masterID}).Execute(s)

	s.Now = 150
	before := apprentice.PracticeHours["smithing"]
	ev := &SkillTransferEvent{ApprenticeID: apprenticeID, MasterID: masterID, Profession: "blacksmith"}
	if err := ev.Execute(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if apprentice.PracticeHours["smithing"] != before {
		t.Error("skill transfer after the master's death must not add hours")
	}
}

func TestGraduateApprenticeshipIsIdempotent(t *testing.T) {
	s := newTestSim(6)
	masterID := s.Agents.AllocateID()
	apprenticeID := s.Agents.AllocateID()
	master := agents.NewPerson(masterID, agents.Male, -40*agents.DaysPerYear)
	apprentice := agents.NewPerson(apprenticeID, agents.Male, -17*agents.DaysPerYear)
	s.Agents.OnBirth(master)
	s.Agents.OnBirth(apprentice)
	s.Agents.SetProfession(masterID, "blacksmith")
	s.Graph.AddRelationship(masterID, apprenticeID, graph.Apprentice, 0, graph.AddOptions{DurationYrs: 7})

	s.Now = 7 * agents.DaysPerYear
	ev := &GraduateApprenticeshipEvent{ApprenticeID: apprenticeID, MasterID: masterID, Profession: "blacksmith"}
	if err := ev.Execute(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if apprentice.Profession != "blacksmith" {
		t.Fatalf("got profession %q, want blacksmith", apprentice.Profession)
	}
	if !s.Agents.OwnsBuildingType(apprenticeID, "forge") {
		t.Fatal("graduate should own a forge after graduating")
	}
	buildingsAfterFirst := len(s.Agents.BuildingsOwnedBy(apprenticeID))

	// Re-running must be a no-op: the APPRENTICE edge is already closed, and
	// a second forge must not be built.
	if err := ev.Execute(s); err != nil {
		t.Fatalf("unexpected error on re-run: %v", err)
	}
	if got := len(s.Agents.BuildingsOwnedBy(apprenticeID)); got != buildingsAfterFirst {
		t.Errorf("re-running graduation built %d buildings, want %d (idempotent)", got, buildingsAfterFirst)
	}
}

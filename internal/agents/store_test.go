package agents

import "testing"

func TestOnBirthRegistersInLiveIndices(t *testing.T) {
	s := NewStore()
	m := NewPerson(s.AllocateID(), Male, 0)
	f := NewPerson(s.AllocateID(), Female, 0)
	s.OnBirth(m)
	s.OnBirth(f)

	if s.AliveCount() != 2 || s.AliveMaleCount() != 1 || s.AliveFemaleCount() != 1 {
		t.Fatalf("got alive=%d male=%d female=%d, want 2/1/1", s.AliveCount(), s.AliveMaleCount(), s.AliveFemaleCount())
	}
	if _, ok := s.UnmarriedMales()[m.ID]; !ok {
		t.Error("newborn male should start unmarried")
	}
	if _, ok := s.UnmarriedFemales()[f.ID]; !ok {
		t.Error("newborn female should start unmarried")
	}
}

func TestMarriageAndWidowTransitions(t *testing.T) {
	s := NewStore()
	m := NewPerson(s.AllocateID(), Male, 0)
	f := NewPerson(s.AllocateID(), Female, 0)
	s.OnBirth(m)
	s.OnBirth(f)

	s.OnMarriage(m.ID, f.ID)
	if _, ok := s.UnmarriedMales()[m.ID]; ok {
		t.Error("married male must leave unmarried_males")
	}
	if _, ok := s.MarriedFemales()[f.ID]; !ok {
		t.Error("married female must enter married_females")
	}

	s.OnWidow(f.ID)
	if _, ok := s.MarriedFemales()[f.ID]; ok {
		t.Error("widowed female must leave married_females")
	}
	if _, ok := s.UnmarriedFemales()[f.ID]; !ok {
		t.Error("widowed female must return to unmarried_females")
	}
}

func TestOnDeathRemovesFromAllIndices(t *testing.T) {
	s := NewStore()
	p := NewPerson(s.AllocateID(), Male, 0)
	s.OnBirth(p)
	s.SetProfession(p.ID, "blacksmith")

	s.OnDeath(p.ID, 100)

	if s.AliveCount() != 0 {
		t.Fatalf("alive count should drop to 0, got %d", s.AliveCount())
	}
	if _, ok := s.UnmarriedMales()[p.ID]; ok {
		t.Error("dead agent must leave unmarried_males")
	}
	if _, ok := s.PractitionersOf("blacksmith")[p.ID]; ok {
		t.Error("dead agent must be dropped from their profession")
	}
	if s.Get(p.ID) == nil {
		t.Error("dead agent record must remain queryable")
	}
}

func TestSetProfessionMovesBetweenCohorts(t *testing.T) {
	s := NewStore()
	p := NewPerson(s.AllocateID(), Female, 0)
	s.OnBirth(p)

	s.SetProfession(p.ID, "weaver")
	s.SetProfession(p.ID, "carpenter")

	if _, ok := s.PractitionersOf("weaver")[p.ID]; ok {
		t.Error("agent must leave their old profession's set")
	}
	if _, ok := s.PractitionersOf("carpenter")[p.ID]; !ok {
		t.Error("agent must join their new profession's set")
	}
}

func TestBuildingOwnershipTransferAndOrphan(t *testing.T) {
	s := NewStore()
	owner := NewPerson(s.AllocateID(), Male, 0)
	heir := NewPerson(s.AllocateID(), Male, 0)
	s.OnBirth(owner)
	s.OnBirth(heir)

	b := s.NewBuilding("forge", owner.ID, 0, 1)
	if !s.OwnsBuildingType(owner.ID, "forge") {
		t.Fatal("owner should own a forge")
	}

	s.TransferBuildingOwnership(b.ID, owner.ID, heir.ID, true)
	if s.OwnsBuildingType(owner.ID, "forge") {
		t.Error("former owner should no longer own the forge")
	}
	if !s.OwnsBuildingType(heir.ID, "forge") {
		t.Error("heir should now own the forge")
	}
	if *b.OwnerID != heir.ID {
		t.Errorf("building.OwnerID = %v, want %v", *b.OwnerID, heir.ID)
	}

	s.TransferBuildingOwnership(b.ID, heir.ID, 0, false)
	if b.OwnerID != nil {
		t.Error("building should be orphaned when there is no heir")
	}
}

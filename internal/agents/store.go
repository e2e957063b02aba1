// Demographic and professional indices — kept incrementally consistent so
// the event family never needs an O(N) population scan. Adapted from the
// teacher's addAgent/SettlementAgents index-maintenance pattern in
// internal/engine/population.go, generalized from "one index per
// settlement" to "one index per demographic/professional cohort," per
// spec.md §4.3.
package agents

// Store holds every Person ever created (alive or dead, for historical
// queries) plus the derived cohort indices spec.md §4.3 names.
type Store struct {
	byID map[ID]*Person

	aliveCount      int
	aliveMaleCount  int
	aliveFemaleCount int

	unmarriedMales   map[ID]struct{}
	unmarriedFemales map[ID]struct{}
	marriedFemales   map[ID]struct{}

	practitionersByProfession map[string]map[ID]struct{}
	buildingsByOwner          map[ID][]BuildingID

	buildings  map[BuildingID]*Building
	nextBuildingID BuildingID
	nextPersonID   ID
}

// NewStore creates an empty agent store.
func NewStore() *Store {
	return &Store{
		byID:                      make(map[ID]*Person),
		unmarriedMales:            make(map[ID]struct{}),
		unmarriedFemales:          make(map[ID]struct{}),
		marriedFemales:            make(map[ID]struct{}),
		practitionersByProfession: make(map[string]map[ID]struct{}),
		buildingsByOwner:          make(map[ID][]BuildingID),
		buildings:                 make(map[BuildingID]*Building),
		nextBuildingID:            1,
		nextPersonID:              1,
	}
}

// AllocateID returns the next never-reused person id, per spec.md §3.
func (s *Store) AllocateID() ID {
	id := s.nextPersonID
	s.nextPersonID++
	return id
}

// Get returns the person with id, or nil if none exists.
func (s *Store) Get(id ID) *Person {
	return s.byID[id]
}

// All returns every person ever registered, alive or dead.
func (s *Store) All() map[ID]*Person {
	return s.byID
}

// AliveCount, AliveMaleCount, AliveFemaleCount return the live cohort sizes
// maintained incrementally by OnBirth/OnDeath.
func (s *Store) AliveCount() int       { return s.aliveCount }
func (s *Store) AliveMaleCount() int   { return s.aliveMaleCount }
func (s *Store) AliveFemaleCount() int { return s.aliveFemaleCount }

// OnBirth registers a newly created person and adds them to the live,
// unmarried index for their sex. Must be called exactly once per person, at
// creation.
func (s *Store) OnBirth(p *Person) {
	s.byID[p.ID] = p
	s.aliveCount++
	switch p.Sex {
	case Male:
		s.aliveMaleCount++
		s.unmarriedMales[p.ID] = struct{}{}
	case Female:
		s.aliveFemaleCount++
		s.unmarriedFemales[p.ID] = struct{}{}
	}
}

// OnDeath removes a person from every live index and drops their
// profession. The Person record itself remains in the store for historical
// queries, per spec.md §3's agent lifecycle.
func (s *Store) OnDeath(id ID, t float64) {
	p, ok := s.byID[id]
	if !ok || !p.AliveAt(t) {
		return
	}
	p.DeathTime = &t

	s.aliveCount--
	switch p.Sex {
	case Male:
		s.aliveMaleCount--
		delete(s.unmarriedMales, id)
	case Female:
		s.aliveFemaleCount--
		delete(s.unmarriedFemales, id)
		delete(s.marriedFemales, id)
	}
	s.dropProfession(id)
}

// OnMarriage moves both parties out of the unmarried sets and adds the
// female to married_females.
func (s *Store) OnMarriage(maleID, femaleID ID) {
	delete(s.unmarriedMales, maleID)
	delete(s.unmarriedFemales, femaleID)
	s.marriedFemales[femaleID] = struct{}{}
}

// OnWidow moves a surviving spouse back to the unmarried set (and, for a
// female, out of married_females).
func (s *Store) OnWidow(id ID) {
	p := s.byID[id]
	if p == nil {
		return
	}
	switch p.Sex {
	case Male:
		s.unmarriedMales[id] = struct{}{}
	case Female:
		s.unmarriedFemales[id] = struct{}{}
		delete(s.marriedFemales, id)
	}
}

// UnmarriedMales, UnmarriedFemales, and MarriedFemales expose the cached
// marital-status sets kept in lockstep by OnMarriage/OnWidow; the
// relationship graph's SPOUSE edges remain the source of truth.
func (s *Store) UnmarriedMales() map[ID]struct{}   { return s.unmarriedMales }
func (s *Store) UnmarriedFemales() map[ID]struct{} { return s.unmarriedFemales }
func (s *Store) MarriedFemales() map[ID]struct{}   { return s.marriedFemales }

// SetProfession moves id from its old practitioners set (if any) into the
// new profession's set and records the change on the Person.
func (s *Store) SetProfession(id ID, profession string) {
	s.dropProfession(id)
	p := s.byID[id]
	if p == nil {
		return
	}
	p.Profession = profession
	if s.practitionersByProfession[profession] == nil {
		s.practitionersByProfession[profession] = make(map[ID]struct{})
	}
	s.practitionersByProfession[profession][id] = struct{}{}
}

func (s *Store) dropProfession(id ID) {
	p := s.byID[id]
	if p == nil || p.Profession == "" {
		return
	}
	if set, ok := s.practitionersByProfession[p.Profession]; ok {
		delete(set, id)
	}
	p.Profession = ""
}

// PractitionersOf returns the live ids currently practicing profession.
func (s *Store) PractitionersOf(profession string) map[ID]struct{} {
	return s.practitionersByProfession[profession]
}

// BuildingID identifies a Building (defined in building.go).
type BuildingID int64

// NewBuilding creates and registers a building of the given type, owned by
// ownerID, built at builtTime.
func (s *Store) NewBuilding(typ string, ownerID ID, builtTime float64, capacity int) *Building {
	id := s.nextBuildingID
	s.nextBuildingID++
	b := &Building{ID: id, Type: typ, OwnerID: &ownerID, BuiltTime: builtTime, Capacity: capacity}
	s.buildings[id] = b
	s.buildingsByOwner[ownerID] = append(s.buildingsByOwner[ownerID], id)
	return b
}

// Building returns the building with id, or nil if none exists.
func (s *Store) Building(id BuildingID) *Building {
	return s.buildings[id]
}

// BuildingsOwnedBy returns the ids of buildings owned by id.
func (s *Store) BuildingsOwnedBy(id ID) []BuildingID {
	return s.buildingsByOwner[id]
}

// OwnsBuildingType reports whether id owns at least one building of typ.
func (s *Store) OwnsBuildingType(id ID, typ string) bool {
	for _, bid := range s.buildingsByOwner[id] {
		if b := s.buildings[bid]; b != nil && b.Type == typ {
			return true
		}
	}
	return false
}

// TransferBuildingOwnership moves building from its current owner to to. If
// toOK is false the building becomes orphaned (OwnerID cleared) instead.
func (s *Store) TransferBuildingOwnership(building BuildingID, from ID, to ID, toOK bool) {
	list := s.buildingsByOwner[from]
	for i, b := range list {
		if b == building {
			s.buildingsByOwner[from] = append(list[:i], list[i+1:]...)
			break
		}
	}
	b := s.buildings[building]
	if toOK {
		s.buildingsByOwner[to] = append(s.buildingsByOwner[to], building)
		if b != nil {
			owner := to
			b.OwnerID = &owner
		}
	} else if b != nil {
		b.OwnerID = nil
	}
}

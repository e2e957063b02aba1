package matchmaking

import (
	"testing"

	"github.com/talgya/hearthbound/internal/agents"
)

type fakeSim struct {
	parentOf     map[agents.ID]agents.ID
	sharesParent map[[2]agents.ID]bool
	aptitude     map[agents.ID]float64
	hours        map[agents.ID]float64
}

func (f *fakeSim) IsParentOf(parent, child agents.ID) bool { return f.parentOf[child] == parent }
func (f *fakeSim) SharesParent(a, b agents.ID) bool {
	return f.sharesParent[[2]agents.ID{a, b}] || f.sharesParent[[2]agents.ID{b, a}]
}
func (f *fakeSim) AptitudeFor(id agents.ID, skill string) float64    { return f.aptitude[id] }
func (f *fakeSim) PracticeHours(id agents.ID, skill string) float64 { return f.hours[id] }
func (f *fakeSim) Uniform01() float64                               { return 0 }

func newFakeSim() *fakeSim {
	return &fakeSim{
		parentOf:     make(map[agents.ID]agents.ID),
		sharesParent: make(map[[2]agents.ID]bool),
		aptitude:     make(map[agents.ID]float64),
		hours:        make(map[agents.ID]float64),
	}
}

func TestMatchPrefersKinOverStrangers(t *testing.T) {
	f := newFakeSim()
	f.parentOf[10] = 1 // master 1 is youth 10's parent
	f.aptitude[10] = 1
	f.aptitude[11] = 1

	youths := []agents.ID{10, 11}
	masters := map[string][]MasterCandidate{
		"blacksmith": {{ID: 1, Remaining: 1}, {ID: 2, Remaining: 1}},
	}
	skills := map[string]string{"blacksmith": "smithing"}

	matches := FamilyPreferenceMatching{}.Match(youths, masters, skills, f)

	found := false
	for _, m := range matches {
		if m.YouthID == 10 && m.MasterID == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected youth 10 to match their parent master 1, got %+v", matches)
	}
}

func TestMatchRespectsMasterCapacity(t *testing.T) {
	f := newFakeSim()
	youths := []agents.ID{10, 11, 12}
	masters := map[string][]MasterCandidate{
		"blacksmith": {{ID: 1, Remaining: 1}},
	}
	skills := map[string]string{"blacksmith": "smithing"}

	matches := FamilyPreferenceMatching{}.Match(youths, masters, skills, f)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1 (master capacity is 1)", len(matches))
	}
}

func TestMatchNeverAssignsAYouthTwice(t *testing.T) {
	f := newFakeSim()
	youths := []agents.ID{10}
	masters := map[string][]MasterCandidate{
		"blacksmith": {{ID: 1, Remaining: 2}},
		"carpenter":  {{ID: 2, Remaining: 2}},
	}
	skills := map[string]string{"blacksmith": "smithing", "carpenter": "woodworking"}

	matches := FamilyPreferenceMatching{}.Match(youths, masters, skills, f)
	if len(matches) != 1 {
		t.Fatalf("got %d matches for one youth, want exactly 1", len(matches))
	}
}

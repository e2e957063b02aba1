// Package matchmaking implements the pluggable career-market assignment
// strategy spec.md §4.7 describes. The interface shape — score candidates,
// sort, greedily assign while respecting per-bucket caps — is grounded on
// the teacher's internal/engine/population.go processWeeklyTier2Replenishment
// (scored/sorted/capped promotion loop) and internal/agents/behavior.go's
// Decide (evaluate candidates, pick best).
package matchmaking

import (
	"sort"

	"github.com/talgya/hearthbound/internal/agents"
)

// MasterCandidate is an available master for a profession, with the number
// of apprentice slots still open to them this career-market round.
type MasterCandidate struct {
	ID        agents.ID
	Remaining int
}

// Match is one accepted (youth, master, profession) assignment.
type Match struct {
	YouthID    agents.ID
	MasterID   agents.ID
	Profession string
}

// SimHandle exposes the read-only facts a Strategy needs about candidates,
// without giving it access to the full simulation (so a strategy cannot
// mutate state outside of the Match triples it returns).
type SimHandle interface {
	// IsParentOf reports whether parent has an (immutable) PARENT edge to
	// child.
	IsParentOf(parent, child agents.ID) bool
	// SharesParent reports whether a and b have at least one common parent.
	SharesParent(a, b agents.ID) bool
	// AptitudeFor returns id's aptitude for skill.
	AptitudeFor(id agents.ID, skill string) float64
	// PracticeHours returns id's accumulated practice hours for skill.
	PracticeHours(id agents.ID, skill string) float64
	// Uniform01 draws from the simulation's single PRNG, so jitter remains
	// reproducible under a fixed seed.
	Uniform01() float64
}

// Strategy assigns eligible youths to available masters across the
// professions that opened a slot this round.
type Strategy interface {
	// Match returns the accepted assignments. youths are eligible
	// candidates with no current profession; mastersByProfession lists
	// available masters (with remaining capacity) keyed by profession
	// name; professionSkill maps profession name to the skill it trains.
	Match(
		youths []agents.ID,
		mastersByProfession map[string][]MasterCandidate,
		professionSkill map[string]string,
		sim SimHandle,
	) []Match
}

// scoredTriple is one candidate (youth, master, profession) pairing awaiting
// a score, per spec.md §4.7.
type scoredTriple struct {
	youth      agents.ID
	master     agents.ID
	profession string
	score      float64
}

// FamilyPreferenceMatching is the default Strategy: it prefers kin and
// high-skill masters, then greedily assigns by descending score while
// respecting each master's remaining capacity. There is no per-profession
// cap: a profession can take as many apprentices in one round as its
// listed masters have capacity for. It is a greedy approximation of
// weighted bipartite matching, deterministic under a fixed PRNG seed.
type FamilyPreferenceMatching struct{}

// Match implements Strategy.
func (FamilyPreferenceMatching) Match(
	youths []agents.ID,
	mastersByProfession map[string][]MasterCandidate,
	professionSkill map[string]string,
	sim SimHandle,
) []Match {
	remaining := make(map[string]map[agents.ID]int, len(mastersByProfession))
	for prof, masters := range mastersByProfession {
		m := make(map[agents.ID]int, len(masters))
		for _, mc := range masters {
			if mc.Remaining > 0 {
				m[mc.ID] = mc.Remaining
			}
		}
		remaining[prof] = m
	}

	professions := make([]string, 0, len(mastersByProfession))
	for prof := range mastersByProfession {
		professions = append(professions, prof)
	}
	sort.Strings(professions)

	sortedMasters := make(map[string][]MasterCandidate, len(mastersByProfession))
	for _, prof := range professions {
		masters := append([]MasterCandidate(nil), mastersByProfession[prof]...)
		sort.Slice(masters, func(i, j int) bool { return masters[i].ID < masters[j].ID })
		sortedMasters[prof] = masters
	}

	var triples []scoredTriple
	for _, youth := range youths {
		for _, prof := range professions {
			skill := professionSkill[prof]
			for _, mc := range sortedMasters[prof] {
				if remaining[prof][mc.ID] <= 0 {
					continue
				}
				score := scoreTriple(youth, mc.ID, skill, sim)
				triples = append(triples, scoredTriple{youth: youth, master: mc.ID, profession: prof, score: score})
			}
		}
	}

	sort.SliceStable(triples, func(i, j int) bool {
		if triples[i].score != triples[j].score {
			return triples[i].score > triples[j].score
		}
		if triples[i].youth != triples[j].youth {
			return triples[i].youth < triples[j].youth
		}
		if triples[i].master != triples[j].master {
			return triples[i].master < triples[j].master
		}
		return triples[i].profession < triples[j].profession
	})

	matched := make(map[agents.ID]bool, len(youths))
	var out []Match
	for _, tr := range triples {
		if matched[tr.youth] {
			continue
		}
		if remaining[tr.profession][tr.master] <= 0 {
			continue
		}
		out = append(out, Match{YouthID: tr.youth, MasterID: tr.master, Profession: tr.profession})
		matched[tr.youth] = true
		remaining[tr.profession][tr.master]--
	}
	return out
}

// scoreTriple implements the scoring formula from spec.md §4.7.
func scoreTriple(youth, master agents.ID, skill string, sim SimHandle) float64 {
	var score float64
	if sim.IsParentOf(master, youth) {
		score += 100
	} else if sim.SharesParent(master, youth) {
		score += 50
	}
	score += sim.PracticeHours(master, skill) / 1000
	score += sim.AptitudeFor(youth, skill) * 10
	score += sim.Uniform01() * 0.1
	return score
}

package sim

import (
	"testing"

	"github.com/talgya/hearthbound/internal/agents"
	"github.com/talgya/hearthbound/internal/graph"
)

func TestRelatedForMarriageRejectsSiblings(t *testing.T) {
	g := graph.New()
	g.AddRelationship(100, 1, graph.Parent, 0, graph.AddOptions{})
	g.AddRelationship(100, 2, graph.Parent, 0, graph.AddOptions{})

	if !relatedForMarriage(g, 1, 2) {
		t.Error("siblings sharing a parent must be rejected")
	}
}

func TestRelatedForMarriageRejectsParentChild(t *testing.T) {
	g := graph.New()
	g.AddRelationship(1, 2, graph.Parent, 0, graph.AddOptions{})

	if !relatedForMarriage(g, 1, 2) || !relatedForMarriage(g, 2, 1) {
		t.Error("a parent and child must be rejected in either order")
	}
}

func TestRelatedForMarriageRejectsAuntUncleNieceNephew(t *testing.T) {
	g := graph.New()
	// 100 is a grandparent of 2, via parent 1; 3 is 100's other child,
	// making 3 the aunt/uncle of 2.
	g.AddRelationship(100, 1, graph.Parent, 0, graph.AddOptions{})
	g.AddRelationship(100, 3, graph.Parent, 0, graph.AddOptions{})
	g.AddRelationship(1, 2, graph.Parent, 0, graph.AddOptions{})

	if !relatedForMarriage(g, 3, 2) {
		t.Error("an aunt/uncle and niece/nephew pair must be rejected")
	}
}

func TestRelatedForMarriageAllowsUnrelatedPair(t *testing.T) {
	g := graph.New()
	g.AddRelationship(100, 1, graph.Parent, 0, graph.AddOptions{})
	g.AddRelationship(200, 2, graph.Parent, 0, graph.AddOptions{})

	if relatedForMarriage(g, 1, 2) {
		t.Error("unrelated agents must not be rejected")
	}
}

func TestMarriageEventGuardsAgainstDeadParty(t *testing.T) {
	s := newTestSim(1)
	s.Run(0)

	// Use an unmarried male and an unmarried female so that any SPOUSE edge
	// found afterwards can only have come from this MarriageEvent.
	var deadID, aliveID agents.ID
	for id := range s.Agents.UnmarriedMales() {
		deadID = id
		break
	}
	for id := range s.Agents.UnmarriedFemales() {
		aliveID = id
		break
	}
	s.Agents.OnDeath(deadID, s.Now)

	ev := &MarriageEvent{MaleID: deadID, FemaleID: aliveID}
	if err := ev.Execute(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	typ := graph.Spouse
	if out := s.Graph.GetOutbound(deadID, &typ, nil); len(out) != 0 {
		t.Error("a dead party must not acquire a SPOUSE edge")
	}
}

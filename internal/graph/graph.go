// Package graph implements the temporal relationship graph: a directed,
// typed, non-destructive edge store with active-at-time queries. Edges are
// never removed; closing a relationship sets an end time on the shared
// metadata record so downstream research can reconstruct the graph at any
// historical instant without replay.
//
// The adjacency model mirrors the edge-indexed traversal approach used by
// GEDCOM-style genealogy graphs (shared metadata reached from both the
// source and target side), adapted here into an explicit add/end/query API
// instead of node methods, per the active-at-time requirement.
package graph

import "fmt"

// ID identifies a node (an agent) in the graph.
type ID int64

// RelationType enumerates the edge kinds the core understands.
type RelationType uint8

const (
	Parent RelationType = iota
	Spouse
	Apprentice
)

func (t RelationType) String() string {
	switch t {
	case Parent:
		return "PARENT"
	case Spouse:
		return "SPOUSE"
	case Apprentice:
		return "APPRENTICE"
	default:
		return "UNKNOWN"
	}
}

// ErrMissingStartTime names the MISSING_START_TIME contract violation
// (CONFIG_INVALID's sibling for the graph layer), never a soft-skip
// condition. AddRelationship does not return it: its startTime parameter is
// a required float64 (see AddRelationship).
var ErrMissingStartTime = fmt.Errorf("graph: start_time is required to add a relationship")

// Edge is the metadata record for one relationship instance. The same
// pointer is reachable from both the forward and reverse adjacency maps, so
// a call to EndRelationship is visible from either direction without a
// second write.
type Edge struct {
	Source      ID
	Target      ID
	Type        RelationType
	StartTime   float64
	EndTime     *float64 // nil while active
	DurationYrs float64  // APPRENTICE only; zero otherwise
}

// ActiveAt reports whether the edge is active at time t: start <= t and
// (end absent or end > t).
func (e *Edge) ActiveAt(t float64) bool {
	if e.StartTime > t {
		return false
	}
	return e.EndTime == nil || *e.EndTime > t
}

// Graph is the non-destructive relationship store.
type Graph struct {
	forward map[ID]map[ID]map[RelationType]*Edge
	reverse map[ID]map[ID]map[RelationType]*Edge
}

// New creates an empty relationship graph.
func New() *Graph {
	return &Graph{
		forward: make(map[ID]map[ID]map[RelationType]*Edge),
		reverse: make(map[ID]map[ID]map[RelationType]*Edge),
	}
}

// AddOptions carries the optional fields a relationship can be created
// with, beyond the required start time.
type AddOptions struct {
	DurationYrs float64 // APPRENTICE duration, in years
}

// AddRelationship creates (or overwrites) a directed edge source->target of
// the given type, starting at startTime. Callers must guard against
// duplicate edges themselves; this call unconditionally overwrites any
// existing (source, target, type) entry.
//
// The dynamically-typed original raised MISSING_START_TIME at runtime
// because its start_time argument was optional; Go's type system makes
// startTime a required float64, so the same contract is enforced at
// compile time instead. ErrMissingStartTime is kept as the named sentinel
// spec.md's error taxonomy calls for, for any future caller that accepts
// an optional time from parsed input.
func (g *Graph) AddRelationship(source, target ID, typ RelationType, startTime float64, opts AddOptions) (*Edge, error) {
	e := &Edge{
		Source:      source,
		Target:      target,
		Type:        typ,
		StartTime:   startTime,
		DurationYrs: opts.DurationYrs,
	}
	g.index(source, target, typ, e)
	return e, nil
}

func (g *Graph) index(source, target ID, typ RelationType, e *Edge) {
	if g.forward[source] == nil {
		g.forward[source] = make(map[ID]map[RelationType]*Edge)
	}
	if g.forward[source][target] == nil {
		g.forward[source][target] = make(map[RelationType]*Edge)
	}
	g.forward[source][target][typ] = e

	if g.reverse[target] == nil {
		g.reverse[target] = make(map[ID]map[RelationType]*Edge)
	}
	if g.reverse[target][source] == nil {
		g.reverse[target][source] = make(map[RelationType]*Edge)
	}
	g.reverse[target][source][typ] = e
}

// EndRelationship sets end time on the source->target edge of type typ. It
// is a silent no-op if the edge is absent or already closed, tolerating
// duplicate-close calls (e.g. GraduateApprenticeshipEvent re-run on an
// already-graduated apprentice, or DeathEvent closing both parties'
// APPRENTICE edges independently).
func (g *Graph) EndRelationship(source, target ID, typ RelationType, endTime float64) {
	byTarget, ok := g.forward[source]
	if !ok {
		return
	}
	byType, ok := byTarget[target]
	if !ok {
		return
	}
	e, ok := byType[typ]
	if !ok || e.EndTime != nil {
		return
	}
	e.EndTime = &endTime
}

// GetOutbound returns edges from source. If typ is non-nil it filters by
// type; if activeAt is non-nil it filters by the active-at-time predicate.
func (g *Graph) GetOutbound(source ID, typ *RelationType, activeAt *float64) []*Edge {
	var out []*Edge
	for _, byType := range g.forward[source] {
		for t, e := range byType {
			if typ != nil && t != *typ {
				continue
			}
			if activeAt != nil && !e.ActiveAt(*activeAt) {
				continue
			}
			out = append(out, e)
		}
	}
	return out
}

// GetInbound is GetOutbound's symmetric counterpart over the reverse index.
func (g *Graph) GetInbound(target ID, typ *RelationType, activeAt *float64) []*Edge {
	var out []*Edge
	for _, byType := range g.reverse[target] {
		for t, e := range byType {
			if typ != nil && t != *typ {
				continue
			}
			if activeAt != nil && !e.ActiveAt(*activeAt) {
				continue
			}
			out = append(out, e)
		}
	}
	return out
}

// GetParents returns the ids of id's parents, derived from inbound PARENT
// edges. PARENT edges are immutable so this is a historical query with no
// active-at filter — a dead parent is still a parent.
func (g *Graph) GetParents(id ID) []ID {
	typ := Parent
	var out []ID
	for _, e := range g.GetInbound(id, &typ, nil) {
		out = append(out, e.Source)
	}
	return out
}

// GetChildren returns the ids of id's children, derived from outbound
// PARENT edges.
func (g *Graph) GetChildren(id ID) []ID {
	typ := Parent
	var out []ID
	for _, e := range g.GetOutbound(id, &typ, nil) {
		out = append(out, e.Target)
	}
	return out
}

// AllEdges returns every edge ever created, in no particular order.
// Callers that need a stable order (e.g. a determinism comparison across
// two independent runs) must sort the result themselves.
func (g *Graph) AllEdges() []*Edge {
	var out []*Edge
	for _, byTarget := range g.forward {
		for _, byType := range byTarget {
			for _, e := range byType {
				out = append(out, e)
			}
		}
	}
	return out
}

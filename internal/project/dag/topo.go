package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"fsargs/internal/diag"
	"fsargs/internal/project"
)

type Topo struct {
	Order   []ProjectID   // dependencies first, present projects only
	Batches [][]ProjectID // waves of mutually independent projects
	Cyclic  bool
	Cycles  []ProjectID // projects left in a cycle
}

func ToposortKahn(g Graph) *Topo {
	nodeCount := len(g.Edges)
	indeg := make([]int, len(g.Indeg))
	copy(indeg, g.Indeg)

	topo := &Topo{
		Order:   make([]ProjectID, 0, nodeCount),
		Batches: make([][]ProjectID, 0),
	}

	active := 0
	for i := range nodeCount {
		if g.Present[i] {
			active++
		}
	}

	current := make([]ProjectID, 0, nodeCount)
	for i := range nodeCount {
		if !g.Present[i] {
			continue
		}
		if indeg[i] == 0 {
			mID, err := safecast.Conv[ProjectID](i)
			if err != nil {
				panic(fmt.Errorf("project id overflow: %w", err))
			}
			current = append(current, mID)
		}
	}
	slices.Sort(current)

	visited := 0
	for len(current) > 0 {
		batch := make([]ProjectID, len(current))
		copy(batch, current)
		topo.Batches = append(topo.Batches, batch)

		next := make([]ProjectID, 0)
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			visited++
			for _, to := range g.Edges[int(id)] {
				if !g.Present[int(to)] {
					continue
				}
				indeg[int(to)]--
				if indeg[int(to)] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if visited != active {
		topo.Cyclic = true
		for i := range nodeCount {
			if !g.Present[i] {
				continue
			}
			if indeg[i] > 0 {
				mID, err := safecast.Conv[ProjectID](i)
				if err != nil {
					panic(fmt.Errorf("project id overflow: %w", err))
				}
				topo.Cycles = append(topo.Cycles, mID)
			}
		}
		slices.Sort(topo.Cycles)
	}

	return topo
}

// Plan is the ordered view of a workspace's project references.
type Plan struct {
	Index   ProjectIndex
	Graph   Graph
	Slots   []ProjectSlot
	Topo    *Topo
	Batches [][]*project.Project
}

// BuildPlan indexes the workspace, reports graph problems and groups
// projects into dependency-ordered batches. Projects caught in a cycle are
// appended as a final batch so callers still see every project.
func BuildPlan(ws *project.Workspace, reporter diag.Reporter) *Plan {
	idx := BuildIndex(ws)
	g, slots := BuildGraph(idx, ws, reporter)
	topo := ToposortKahn(g)
	ReportCycles(idx, slots, topo, reporter)

	plan := &Plan{Index: idx, Graph: g, Slots: slots, Topo: topo}
	for _, batch := range topo.Batches {
		plan.Batches = append(plan.Batches, plan.projects(batch))
	}
	if topo.Cyclic && len(topo.Cycles) > 0 {
		plan.Batches = append(plan.Batches, plan.projects(topo.Cycles))
	}
	return plan
}

func (p *Plan) projects(ids []ProjectID) []*project.Project {
	out := make([]*project.Project, 0, len(ids))
	for _, id := range ids {
		if slot := p.Slots[int(id)]; slot.Present {
			out = append(out, slot.Project)
		}
	}
	return out
}

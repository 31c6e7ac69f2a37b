package dag

import (
	"fmt"
	"slices"
	"strings"

	"fsargs/internal/diag"
	"fsargs/internal/project"
)

// Graph edges point from a referenced project to the projects that
// reference it, so a Kahn walk yields dependencies first.
type Graph struct {
	Edges   [][]ProjectID // Edges[dep] = []dependents
	Indeg   []int         // number of present dependencies
	Present []bool        // declared in the workspace, not only referenced
}

type ProjectSlot struct {
	Project *project.Project
	Present bool
}

// BuildGraph wires project references into a Graph. Duplicate names,
// self references and references to unknown projects are reported and
// left out of the graph.
func BuildGraph(idx ProjectIndex, ws *project.Workspace, reporter diag.Reporter) (Graph, []ProjectSlot) {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	nodeCount := len(idx.IDToName)
	g := Graph{
		Edges:   make([][]ProjectID, nodeCount),
		Indeg:   make([]int, nodeCount),
		Present: make([]bool, nodeCount),
	}
	slots := make([]ProjectSlot, nodeCount)
	if ws == nil {
		return g, slots
	}

	for _, p := range ws.Projects {
		if p == nil || p.Name == "" {
			continue
		}
		id, ok := idx.NameToID[p.Name]
		if !ok {
			continue
		}
		slot := &slots[int(id)]
		if slot.Present {
			diag.ReportError(reporter, diag.ProjDuplicateProject, p.ManifestPath,
				fmt.Sprintf("duplicate project %q", p.Name)).
				WithNote(slot.Project.ManifestPath, fmt.Sprintf("previous declaration of %q", p.Name)).
				Emit()
			continue
		}
		slot.Project = p
		slot.Present = true
		g.Present[int(id)] = true
	}

	for from := range slots {
		slot := &slots[from]
		if !slot.Present {
			continue
		}
		seen := make(map[ProjectID]struct{})
		for _, dep := range slot.Project.ProjectReferenceNames() {
			depID := idx.NameToID[ws.Canonical(dep)]
			if ProjectID(from) == depID {
				diag.ReportWarning(reporter, diag.ProjSelfReference, slot.Project.Name,
					fmt.Sprintf("project %q references itself", slot.Project.Name)).Emit()
				continue
			}
			if !g.Present[int(depID)] {
				diag.ReportWarning(reporter, diag.ProjUnknownReference, slot.Project.Name,
					fmt.Sprintf("project %q references unknown project %q", slot.Project.Name, dep)).Emit()
				continue
			}
			if _, dup := seen[depID]; dup {
				continue
			}
			seen[depID] = struct{}{}
			g.Edges[int(depID)] = append(g.Edges[int(depID)], ProjectID(from))
			g.Indeg[from]++
		}
	}
	for i := range g.Edges {
		if len(g.Edges[i]) > 1 {
			slices.Sort(g.Edges[i])
		}
	}

	return g, slots
}

// ReportCycles reports every project left in a reference cycle.
func ReportCycles(idx ProjectIndex, slots []ProjectSlot, topo *Topo, reporter diag.Reporter) {
	if topo == nil || !topo.Cyclic || len(topo.Cycles) == 0 || reporter == nil {
		return
	}
	summary := strings.Join(idx.Names(topo.Cycles), " -> ")
	for _, id := range topo.Cycles {
		slot := slots[int(id)]
		if !slot.Present {
			continue
		}
		msg := fmt.Sprintf("project %q participates in a reference cycle: %s", slot.Project.Name, summary)
		reporter.Report(diag.ProjReferenceCycle, diag.SevError, slot.Project.Name, msg, nil)
	}
}

// Names maps ids back to project names.
func (idx ProjectIndex) Names(ids []ProjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.IDToName[int(id)]
	}
	return out
}

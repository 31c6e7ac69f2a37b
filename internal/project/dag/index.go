package dag

import (
	"sort"

	"fsargs/internal/project"
)

type ProjectID uint32

type ProjectIndex struct {
	NameToID map[string]ProjectID
	IDToName []string
}

// BuildIndex collects project names and every referenced project name,
// sorts them and hands out IDs in order. References are keyed by the
// declared name they match, see Workspace.Canonical.
func BuildIndex(ws *project.Workspace) ProjectIndex {
	uniq := make(map[string]struct{})
	if ws != nil {
		for _, p := range ws.Projects {
			if p == nil || p.Name == "" {
				continue
			}
			uniq[p.Name] = struct{}{}
			for _, dep := range p.ProjectReferenceNames() {
				uniq[ws.Canonical(dep)] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(uniq))
	for name := range uniq {
		names = append(names, name)
	}
	sort.Strings(names)

	nameToID := make(map[string]ProjectID, len(names))
	for i, name := range names {
		nameToID[name] = ProjectID(i)
	}

	return ProjectIndex{
		NameToID: nameToID,
		IDToName: names,
	}
}

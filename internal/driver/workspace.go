package driver

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"fsargs/internal/diag"
	"fsargs/internal/project"
	"fsargs/internal/project/dag"
	"fsargs/internal/trace"
)

// WorkspaceResult holds per-project results in project-name order and the
// diagnostics of the project graph itself.
type WorkspaceResult struct {
	Results     []*Result
	Diagnostics *diag.Bag
}

// ComputeWorkspace computes every project of base.Workspace. Projects run
// batch by batch in reference order; projects of one batch run in parallel
// with at most jobs workers. Projects without the configuration are
// skipped with a warning; any other failure aborts the run.
func ComputeWorkspace(ctx context.Context, base Context, jobs int) (*WorkspaceResult, error) {
	if base.Workspace == nil {
		return nil, ErrNoProject
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "compute_workspace", 0).
		WithExtra("workspace", base.Workspace.Name)

	graphBag := diag.NewBag(base.maxDiagnostics())
	plan := dag.BuildPlan(base.Workspace, diag.BagReporter{Bag: graphBag})

	byName := make(map[string]*Result, len(base.Workspace.Projects))
	for _, batch := range plan.Batches {
		batch = runnable(batch, base.Configuration, graphBag)
		if len(batch) == 0 {
			continue
		}
		// indices are unique per goroutine, no mutex needed
		results := make([]*Result, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(batch)))
		for i, p := range batch {
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				res, err := Compute(gctx, base.ForProject(p))
				if err != nil {
					return err
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			span.End("failed")
			return nil, err
		}
		for i, p := range batch {
			res := results[i]
			res.Digest = combineDigest(res.Digest, dependencyDigests(base.Workspace, p, byName)...)
			byName[p.Name] = res
		}
	}

	out := &WorkspaceResult{Diagnostics: graphBag}
	for _, res := range byName {
		out.Results = append(out.Results, res)
	}
	sort.Slice(out.Results, func(i, j int) bool {
		return out.Results[i].Project < out.Results[j].Project
	})
	graphBag.Sort()
	span.End("")
	return out, nil
}

// runnable drops projects that do not declare the configuration.
func runnable(batch []*project.Project, configuration string, bag *diag.Bag) []*project.Project {
	out := make([]*project.Project, 0, len(batch))
	for _, p := range batch {
		if _, err := p.Configuration(configuration); err != nil {
			bag.Add(diag.NewWarning(diag.ProjUnknownConfig, p.Name, err.Error()))
			continue
		}
		out = append(out, p)
	}
	return out
}

// dependencyDigests returns the digests of already computed referenced
// projects in declaration order.
func dependencyDigests(ws *project.Workspace, p *project.Project, done map[string]*Result) []Digest {
	var out []Digest
	for _, dep := range ws.ReferencedProjects(p) {
		if res, ok := done[dep.Name]; ok {
			out = append(out, res.Digest)
		}
	}
	return out
}

package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"fsargs/internal/compileropts"
	"fsargs/internal/diag"
	"fsargs/internal/framework"
	"fsargs/internal/observ"
	"fsargs/internal/pathset"
	"fsargs/internal/portable"
	"fsargs/internal/project"
	"fsargs/internal/resolve"
	"fsargs/internal/trace"
)

var (
	ErrNoProject = errors.New("no project selected")
	ErrNoRuntime = errors.New("no runtime available")
)

// Compute resolves references and assembles the compiler arguments of
// c.Project. Resolution problems become diagnostics; only a missing
// project, configuration or framework is an error.
func Compute(ctx context.Context, c Context) (*Result, error) {
	if c.Project == nil {
		return nil, ErrNoProject
	}
	if c.Runtime == nil {
		return nil, ErrNoRuntime
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := c.Project

	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "compute", 0).WithExtra("project", p.Name)
	timer := observ.NewTimer()

	cfg, err := p.Configuration(c.Configuration)
	if err != nil {
		root.End("unknown configuration")
		return nil, err
	}
	fx, err := framework.Select(c.Runtime)
	if err != nil {
		root.End("no framework")
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}

	bag := diag.NewBag(c.maxDiagnostics())
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	if cfg.Kind != project.ConfigDotNet {
		reporter.Report(diag.ProjConfigNotCompiler, diag.SevInfo, p.Name,
			fmt.Sprintf("configuration %q has no compiler settings, using defaults", cfg.Name), nil)
	}

	res := &Result{
		Project:       p.Name,
		Configuration: cfg.Name,
		Framework:     fx.Moniker(),
		PortablePath:  portable.Project(p),
		Diagnostics:   bag,
	}
	referencedPortable := portable.AnyReferenced(c.Workspace, p)
	res.Portable = res.PortablePath || referencedPortable

	set := pathset.New()

	phase := timer.Begin("collect")
	span := trace.Begin(tracer, trace.ScopePass, "collect", root.ID())
	if res.PortablePath {
		profile := c.Runtime.FrameworkAssemblies(p.Framework)
		if len(profile) == 0 {
			diag.ReportWarning(reporter, diag.ResPortableFrameworkMissing, p.Name,
				fmt.Sprintf("no assemblies found for portable framework %s", p.Framework.Moniker())).Emit()
		}
		set.AddAll(profile...)
	}
	collector := resolve.NewCollector(c.Workspace, p, cfg.Name)
	collector.Reporter = reporter
	if c.Substitutions != nil {
		collector.Substitutions = c.Substitutions
	}
	collector.Observe = func(ref project.DeclaredReference, collect func() []string) []string {
		refSpan := trace.Begin(tracer, trace.ScopeReference, "reference", span.ID()).
			WithExtra("kind", ref.Kind.String()).
			WithExtra("identity", ref.Identity)
		paths := collect()
		refSpan.End(strconv.Itoa(len(paths)) + " path(s)")
		return paths
	}
	collector.CollectAll(set)
	span.End(strconv.Itoa(set.Len()) + " reference(s)")
	timer.End(phase, fmt.Sprintf("%d reference(s)", set.Len()))

	if !res.PortablePath {
		classifier := portable.Classifier{Inspector: c.inspector()}
		in := resolve.FacadeInput{
			Runtime:            c.Runtime,
			Framework:          p.Framework,
			ReferencedPortable: referencedPortable,
		}
		in.AssemblyPortable = func(path string) bool {
			outcome := classifier.Assembly(path)
			res.Classified = append(res.Classified, Classification{Path: path, Outcome: outcome})
			switch outcome {
			case portable.NotPortableUnreadable:
				reporter.Report(diag.MetaUnreadable, diag.SevInfo, path, "metadata unreadable, treated as not portable", nil)
			case portable.PortableUnreadableAttributes:
				reporter.Report(diag.MetaAttributeFailed, diag.SevInfo, path, "assembly attributes unreadable, treated as portable", nil)
			}
			trace.Point(tracer, trace.ScopeReference, "classify", filepath.Base(path)+": "+outcome.String(), root.ID())
			return outcome.Portable()
		}

		phase = timer.Begin("classify")
		span = trace.Begin(tracer, trace.ScopePass, "classify", root.ID())
		needed := resolve.NeedsFacades(in, set.Paths())
		span.End(strconv.FormatBool(needed))
		timer.End(phase, fmt.Sprintf("%d assembly(ies) classified", len(res.Classified)))

		phase = timer.Begin("facades")
		span = trace.Begin(tracer, trace.ScopePass, "facades", root.ID())
		if needed {
			res.Facades = resolve.AddFacades(c.Runtime, p.Framework, set)
			if len(res.Facades) > 0 {
				reporter.Report(diag.ResFacadesAdded, diag.SevInfo, p.Name,
					fmt.Sprintf("added %d facade assembly(ies) for %s", len(res.Facades), p.Framework.Moniker()), nil)
			}
		}
		span.End(strconv.Itoa(len(res.Facades)) + " facade(s)")
		timer.End(phase, fmt.Sprintf("%d facade(s)", len(res.Facades)))
	}

	phase = timer.Begin("reconcile")
	span = trace.Begin(tracer, trace.ScopePass, "reconcile", root.ID())
	reconciler := &resolve.Reconciler{
		Directory: resolve.DirectoryStrategy{Dirs: c.Runtime.ReferenceDirectories(fx)},
		Dependency: resolve.DependencyStrategy{
			Inspector: c.inspector(),
			Runtime:   c.Runtime,
			Reporter:  reporter,
		},
		Reporter: reporter,
	}
	res.Reconciled, res.Branch = reconciler.Reconcile(set)
	span.End(res.Branch.String())
	timer.End(phase, res.Branch.String())

	phase = timer.Begin("assemble")
	span = trace.Begin(tracer, trace.ScopePass, "assemble", root.ID())
	res.References = set.Paths()
	res.Options = compileropts.Assemble(compileropts.Input{
		OutputPath: outputPath(p, cfg),
		Portable:   res.Portable,
		Settings:   cfg.Settings(),
		OutputKind: p.Output,
		References: res.References,
		Files:      p.Files,
	})
	res.Args = compileropts.Render(res.Options, c.Wrap)
	res.Digest = argsDigest(res.Args)
	span.End(strconv.Itoa(len(res.Args)) + " arg(s)")
	timer.End(phase, fmt.Sprintf("%d arg(s)", len(res.Args)))

	res.Timing = timer.Report()
	root.End(fmt.Sprintf("%d arg(s), %d diagnostic(s)", len(res.Args), bag.Len()))
	return res, nil
}

// outputPath falls back to bin/<configuration>/<name>.<ext> under the
// project directory when the configuration names no output.
func outputPath(p *project.Project, cfg project.Configuration) string {
	if out, ok := p.OutputFile(cfg.Name); ok {
		return out
	}
	ext := ".exe"
	switch p.Output {
	case project.OutputLibrary:
		ext = ".dll"
	case project.OutputModule:
		ext = ".netmodule"
	}
	return filepath.Join(p.Dir, "bin", cfg.Name, p.Name+ext)
}

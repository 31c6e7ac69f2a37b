package framework

// Runtime is the read-only view of an installed managed runtime.
type Runtime interface {
	// Frameworks enumerates every framework the runtime knows about,
	// installed or not.
	Frameworks() []Descriptor
	// IsInstalled reports whether d is installed.
	IsInstalled(d Descriptor) bool
	// FrameworkAssemblies lists the reference assemblies of d
	// (for a portable framework, its profile assemblies).
	FrameworkAssemblies(d Descriptor) []string
	// Facades lists the facade assemblies shipped for d.
	Facades(d Descriptor) []string
	// ReferenceDirectories lists the default directories searched for
	// core assemblies when compiling against d.
	ReferenceDirectories(d Descriptor) []string
	// ToolDirectories lists directories holding tools for d.
	ToolDirectories(d Descriptor) []string
	// ResolveAssembly locates an assembly by simple name and version in
	// the runtime's default locations.
	ResolveAssembly(name string, version Version) (string, bool)
}

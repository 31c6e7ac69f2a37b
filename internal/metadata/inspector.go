package metadata

// Inspector answers metadata questions about assemblies on disk.
type Inspector interface {
	Identity(path string) (AssemblyName, error)
	AssemblyReferences(path string) ([]AssemblyName, error)
	// TargetFramework returns the TargetFrameworkAttribute moniker and
	// whether the attribute is present.
	TargetFramework(path string) (string, bool, error)
}

// FileInspector reads images from the file system on every call.
type FileInspector struct{}

func (FileInspector) Identity(path string) (AssemblyName, error) {
	md, err := Load(path)
	if err != nil {
		return AssemblyName{}, err
	}
	return md.Assembly()
}

func (FileInspector) AssemblyReferences(path string) ([]AssemblyName, error) {
	md, err := Load(path)
	if err != nil {
		return nil, err
	}
	return md.AssemblyReferences()
}

func (FileInspector) TargetFramework(path string) (string, bool, error) {
	md, err := Load(path)
	if err != nil {
		return "", false, err
	}
	return md.TargetFramework()
}

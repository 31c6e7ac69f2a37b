package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Reference resolution
	ResInfo                     Code = 2000
	ResDefaultReferenceFailed   Code = 2001
	ResHintPathMissing          Code = 2002
	ResPackageAssemblyMissing   Code = 2003
	ResProjectReferenceMissing  Code = 2004
	ResUnsupportedReferenceKind Code = 2005
	ResFacadesAdded             Code = 2006
	ResCoreDependencyUnreadable Code = 2007
	ResPortableFrameworkMissing Code = 2008

	// Metadata inspection
	MetaInfo            Code = 3000
	MetaUnreadable      Code = 3001
	MetaAttributeFailed Code = 3002

	// Project / workspace graph
	ProjInfo              Code = 5000
	ProjUnknownReference  Code = 5001
	ProjSelfReference     Code = 5002
	ProjReferenceCycle    Code = 5003
	ProjDuplicateProject  Code = 5004
	ProjUnknownConfig     Code = 5005
	ProjConfigNotCompiler Code = 5006
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	ResInfo:                     "Resolution information",
	ResDefaultReferenceFailed:   "Default reference not found",
	ResHintPathMissing:          "Hint path does not exist",
	ResPackageAssemblyMissing:   "Assembly not found in package",
	ResProjectReferenceMissing:  "Referenced project not found",
	ResUnsupportedReferenceKind: "Unsupported reference kind",
	ResFacadesAdded:             "Facade assemblies added",
	ResCoreDependencyUnreadable: "Core assembly dependency unreadable",
	ResPortableFrameworkMissing: "Portable framework assemblies missing",
	MetaInfo:                    "Metadata information",
	MetaUnreadable:              "Assembly metadata unreadable",
	MetaAttributeFailed:         "Assembly attributes unreadable",
	ProjInfo:                    "Project information",
	ProjUnknownReference:        "Unknown project reference",
	ProjSelfReference:           "Project references itself",
	ProjReferenceCycle:          "Project reference cycle",
	ProjDuplicateProject:        "Duplicate project name",
	ProjUnknownConfig:           "Unknown configuration",
	ProjConfigNotCompiler:       "Configuration has no compiler settings",
}

// ID returns the stable short identifier, e.g. RES2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("MET%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

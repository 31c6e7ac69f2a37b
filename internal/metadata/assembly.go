package metadata

import (
	"fmt"
	"strings"
)

// AssemblyName identifies an assembly by simple name, version and culture.
type AssemblyName struct {
	Name    string
	Version [4]uint16
	Culture string
}

// VersionString renders the four-part version.
func (n AssemblyName) VersionString() string {
	return fmt.Sprintf("%d.%d.%d.%d", n.Version[0], n.Version[1], n.Version[2], n.Version[3])
}

// FullName renders "Name, Version=a.b.c.d, Culture=neutral".
func (n AssemblyName) FullName() string {
	culture := n.Culture
	if culture == "" {
		culture = "neutral"
	}
	return fmt.Sprintf("%s, Version=%s, Culture=%s", n.Name, n.VersionString(), culture)
}

func (n AssemblyName) String() string { return n.FullName() }

// Assembly returns the identity from the Assembly table.
func (md *Metadata) Assembly() (AssemblyName, error) {
	t := md.tables.table(tAssembly)
	if t.rows == 0 {
		return AssemblyName{}, ErrNoAssembly
	}
	// HashAlgId, Major, Minor, Build, Revision, Flags, PublicKey, Name, Culture
	return md.assemblyName(t, 1, 1, 7, 8)
}

// AssemblyReferences returns every row of the AssemblyRef table in order.
func (md *Metadata) AssemblyReferences() ([]AssemblyName, error) {
	t := md.tables.table(tAssemblyRef)
	out := make([]AssemblyName, 0, t.rows)
	for r := uint32(1); r <= t.rows; r++ {
		// Major, Minor, Build, Revision, Flags, PublicKeyOrToken, Name, Culture, HashValue
		name, err := md.assemblyName(t, r, 0, 6, 7)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}

func (md *Metadata) assemblyName(t *table, row uint32, firstVersionCol, nameCol, cultureCol int) (AssemblyName, error) {
	var n AssemblyName
	for i := 0; i < 4; i++ {
		v, err := t.cell(row, firstVersionCol+i)
		if err != nil {
			return AssemblyName{}, err
		}
		n.Version[i] = uint16(v)
	}
	nameOff, err := t.cell(row, nameCol)
	if err != nil {
		return AssemblyName{}, err
	}
	if n.Name, err = md.strings.at(nameOff); err != nil {
		return AssemblyName{}, err
	}
	cultureOff, err := t.cell(row, cultureCol)
	if err != nil {
		return AssemblyName{}, err
	}
	if n.Culture, err = md.strings.at(cultureOff); err != nil {
		return AssemblyName{}, err
	}
	return n, nil
}

const (
	targetFrameworkNamespace = "System.Runtime.Versioning"
	targetFrameworkName      = "TargetFrameworkAttribute"
)

// TargetFramework returns the moniker of the assembly-level
// TargetFrameworkAttribute, if present.
func (md *Metadata) TargetFramework() (string, bool, error) {
	t := md.tables.table(tCustomAttribute)
	for r := uint32(1); r <= t.rows; r++ {
		parent, err := t.cell(r, 0)
		if err != nil {
			return "", false, err
		}
		if parent&(1<<ciHasCustomAttribute.bits-1) != hcaAssembly {
			continue
		}
		ctor, err := t.cell(r, 1)
		if err != nil {
			return "", false, err
		}
		ns, name, err := md.attributeType(ctor)
		if err != nil {
			return "", false, err
		}
		if ns != targetFrameworkNamespace || name != targetFrameworkName {
			continue
		}
		valueOff, err := t.cell(r, 2)
		if err != nil {
			return "", false, err
		}
		value, err := md.blobs.at(valueOff)
		if err != nil {
			return "", false, err
		}
		return attributeString(value)
	}
	return "", false, nil
}

// attributeType resolves a CustomAttributeType coded index to the
// namespace and name of the attribute class.
func (md *Metadata) attributeType(ctor uint32) (string, string, error) {
	tbl, row := decodeCoded(ciCustomAttributeType, ctor)
	switch tbl {
	case tMemberRef:
		parent, err := md.tables.table(tMemberRef).cell(row, 0)
		if err != nil {
			return "", "", err
		}
		ptbl, prow := decodeCoded(ciMemberRefParent, parent)
		switch ptbl {
		case tTypeRef:
			return md.typeName(tTypeRef, prow, 2, 1)
		case tTypeDef:
			return md.typeName(tTypeDef, prow, 2, 1)
		}
		return "", "", nil
	case tMethodDef:
		owner, err := md.methodOwner(row)
		if err != nil || owner == 0 {
			return "", "", err
		}
		return md.typeName(tTypeDef, owner, 2, 1)
	}
	return "", "", malformed("invalid custom attribute constructor tag")
}

func (md *Metadata) typeName(tbl int, row uint32, nsCol, nameCol int) (string, string, error) {
	t := md.tables.table(tbl)
	nsOff, err := t.cell(row, nsCol)
	if err != nil {
		return "", "", err
	}
	nameOff, err := t.cell(row, nameCol)
	if err != nil {
		return "", "", err
	}
	ns, err := md.strings.at(nsOff)
	if err != nil {
		return "", "", err
	}
	name, err := md.strings.at(nameOff)
	if err != nil {
		return "", "", err
	}
	return ns, name, nil
}

// methodOwner finds the TypeDef whose method list contains method row m.
func (md *Metadata) methodOwner(m uint32) (uint32, error) {
	t := md.tables.table(tTypeDef)
	var owner uint32
	for r := uint32(1); r <= t.rows; r++ {
		start, err := t.cell(r, 5)
		if err != nil {
			return 0, err
		}
		if start > m {
			break
		}
		owner = r
	}
	return owner, nil
}

// References reports whether refs contains an assembly with the given
// simple name (case-insensitive).
func References(refs []AssemblyName, name string) bool {
	for _, r := range refs {
		if strings.EqualFold(r.Name, name) {
			return true
		}
	}
	return false
}

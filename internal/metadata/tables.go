package metadata

import (
	"encoding/binary"

	"fortio.org/safecast"
)

// Table identifiers (ECMA-335 II.22).
const (
	tModule                 = 0x00
	tTypeRef                = 0x01
	tTypeDef                = 0x02
	tFieldPtr               = 0x03
	tField                  = 0x04
	tMethodPtr              = 0x05
	tMethodDef              = 0x06
	tParamPtr               = 0x07
	tParam                  = 0x08
	tInterfaceImpl          = 0x09
	tMemberRef              = 0x0A
	tConstant               = 0x0B
	tCustomAttribute        = 0x0C
	tFieldMarshal           = 0x0D
	tDeclSecurity           = 0x0E
	tClassLayout            = 0x0F
	tFieldLayout            = 0x10
	tStandAloneSig          = 0x11
	tEventMap               = 0x12
	tEventPtr               = 0x13
	tEvent                  = 0x14
	tPropertyMap            = 0x15
	tPropertyPtr            = 0x16
	tProperty               = 0x17
	tMethodSemantics        = 0x18
	tMethodImpl             = 0x19
	tModuleRef              = 0x1A
	tTypeSpec               = 0x1B
	tImplMap                = 0x1C
	tFieldRVA               = 0x1D
	tEncLog                 = 0x1E
	tEncMap                 = 0x1F
	tAssembly               = 0x20
	tAssemblyProcessor      = 0x21
	tAssemblyOS             = 0x22
	tAssemblyRef            = 0x23
	tAssemblyRefProcessor   = 0x24
	tAssemblyRefOS          = 0x25
	tFile                   = 0x26
	tExportedType           = 0x27
	tManifestResource       = 0x28
	tNestedClass            = 0x29
	tGenericParam           = 0x2A
	tMethodSpec             = 0x2B
	tGenericParamConstraint = 0x2C

	tableCount = tGenericParamConstraint + 1
	noTable    = -1
)

type codedIndex struct {
	bits   uint
	tables []int
}

var (
	ciTypeDefOrRef        = codedIndex{2, []int{tTypeDef, tTypeRef, tTypeSpec}}
	ciHasConstant         = codedIndex{2, []int{tField, tParam, tProperty}}
	ciHasCustomAttribute  = codedIndex{5, []int{tMethodDef, tField, tTypeRef, tTypeDef, tParam, tInterfaceImpl, tMemberRef, tModule, tDeclSecurity, tProperty, tEvent, tStandAloneSig, tModuleRef, tTypeSpec, tAssembly, tAssemblyRef, tFile, tExportedType, tManifestResource, tGenericParam, tGenericParamConstraint, tMethodSpec}}
	ciHasFieldMarshal     = codedIndex{1, []int{tField, tParam}}
	ciHasDeclSecurity     = codedIndex{2, []int{tTypeDef, tMethodDef, tAssembly}}
	ciMemberRefParent     = codedIndex{3, []int{tTypeDef, tTypeRef, tModuleRef, tMethodDef, tTypeSpec}}
	ciHasSemantics        = codedIndex{1, []int{tEvent, tProperty}}
	ciMethodDefOrRef      = codedIndex{1, []int{tMethodDef, tMemberRef}}
	ciMemberForwarded     = codedIndex{1, []int{tField, tMethodDef}}
	ciImplementation      = codedIndex{2, []int{tFile, tAssemblyRef, tExportedType}}
	ciCustomAttributeType = codedIndex{3, []int{noTable, noTable, tMethodDef, tMemberRef, noTable}}
	ciResolutionScope     = codedIndex{2, []int{tModule, tModuleRef, tAssemblyRef, tTypeRef}}
	ciTypeOrMethodDef     = codedIndex{1, []int{tTypeDef, tMethodDef}}
)

// Coded index tags used while decoding.
const (
	hcaAssembly  = 14
	catMethodDef = 2
	catMemberRef = 3
	mrpTypeDef   = 0
	mrpTypeRef   = 1
)

type colKind uint8

const (
	colFixed colKind = iota
	colString
	colGUID
	colBlob
	colIndex
	colCoded
)

type column struct {
	kind  colKind
	size  int // colFixed
	table int // colIndex
	coded codedIndex
}

func fixed(n int) column         { return column{kind: colFixed, size: n} }
func idx(table int) column       { return column{kind: colIndex, table: table} }
func coded(ci codedIndex) column { return column{kind: colCoded, coded: ci} }

var (
	str  = column{kind: colString}
	guid = column{kind: colGUID}
	blob = column{kind: colBlob}
)

var schema = [tableCount][]column{
	tModule:                 {fixed(2), str, guid, guid, guid},
	tTypeRef:                {coded(ciResolutionScope), str, str},
	tTypeDef:                {fixed(4), str, str, coded(ciTypeDefOrRef), idx(tField), idx(tMethodDef)},
	tFieldPtr:               {idx(tField)},
	tField:                  {fixed(2), str, blob},
	tMethodPtr:              {idx(tMethodDef)},
	tMethodDef:              {fixed(4), fixed(2), fixed(2), str, blob, idx(tParam)},
	tParamPtr:               {idx(tParam)},
	tParam:                  {fixed(2), fixed(2), str},
	tInterfaceImpl:          {idx(tTypeDef), coded(ciTypeDefOrRef)},
	tMemberRef:              {coded(ciMemberRefParent), str, blob},
	tConstant:               {fixed(2), coded(ciHasConstant), blob},
	tCustomAttribute:        {coded(ciHasCustomAttribute), coded(ciCustomAttributeType), blob},
	tFieldMarshal:           {coded(ciHasFieldMarshal), blob},
	tDeclSecurity:           {fixed(2), coded(ciHasDeclSecurity), blob},
	tClassLayout:            {fixed(2), fixed(4), idx(tTypeDef)},
	tFieldLayout:            {fixed(4), idx(tField)},
	tStandAloneSig:          {blob},
	tEventMap:               {idx(tTypeDef), idx(tEvent)},
	tEventPtr:               {idx(tEvent)},
	tEvent:                  {fixed(2), str, coded(ciTypeDefOrRef)},
	tPropertyMap:            {idx(tTypeDef), idx(tProperty)},
	tPropertyPtr:            {idx(tProperty)},
	tProperty:               {fixed(2), str, blob},
	tMethodSemantics:        {fixed(2), idx(tMethodDef), coded(ciHasSemantics)},
	tMethodImpl:             {idx(tTypeDef), coded(ciMethodDefOrRef), coded(ciMethodDefOrRef)},
	tModuleRef:              {str},
	tTypeSpec:               {blob},
	tImplMap:                {fixed(2), coded(ciMemberForwarded), str, idx(tModuleRef)},
	tFieldRVA:               {fixed(4), idx(tField)},
	tEncLog:                 {fixed(4), fixed(4)},
	tEncMap:                 {fixed(4)},
	tAssembly:               {fixed(4), fixed(2), fixed(2), fixed(2), fixed(2), fixed(4), blob, str, str},
	tAssemblyProcessor:      {fixed(4)},
	tAssemblyOS:             {fixed(4), fixed(4), fixed(4)},
	tAssemblyRef:            {fixed(2), fixed(2), fixed(2), fixed(2), fixed(4), blob, str, str, blob},
	tAssemblyRefProcessor:   {fixed(4), idx(tAssemblyRef)},
	tAssemblyRefOS:          {fixed(4), fixed(4), fixed(4), idx(tAssemblyRef)},
	tFile:                   {fixed(4), str, blob},
	tExportedType:           {fixed(4), fixed(4), str, str, coded(ciImplementation)},
	tManifestResource:       {fixed(4), fixed(4), str, coded(ciImplementation)},
	tNestedClass:            {idx(tTypeDef), idx(tTypeDef)},
	tGenericParam:           {fixed(2), fixed(2), coded(ciTypeOrMethodDef), str},
	tMethodSpec:             {coded(ciMethodDefOrRef), blob},
	tGenericParamConstraint: {idx(tGenericParam), coded(ciTypeDefOrRef)},
}

// table is a decoded view over one metadata table.
type table struct {
	rows   uint32
	widths []int
	offs   []int
	rowLen int
	data   []byte
}

// cell returns column c of 1-based row r.
func (t *table) cell(r uint32, c int) (uint32, error) {
	if r == 0 || r > t.rows {
		return 0, malformed("row %d out of range (rows=%d)", r, t.rows)
	}
	rowIdx, err := safecast.Conv[int](r - 1)
	if err != nil {
		return 0, malformed("row index overflow: %v", err)
	}
	start := rowIdx*t.rowLen + t.offs[c]
	switch t.widths[c] {
	case 1:
		return uint32(t.data[start]), nil
	case 2:
		return uint32(binary.LittleEndian.Uint16(t.data[start:])), nil
	case 4:
		return binary.LittleEndian.Uint32(t.data[start:]), nil
	}
	return 0, malformed("unsupported column width %d", t.widths[c])
}

type tablesStream struct {
	heapSizes byte
	rows      [tableCount]uint32
	tables    [tableCount]*table
}

func (ts *tablesStream) width(col column) int {
	switch col.kind {
	case colFixed:
		return col.size
	case colString:
		return heapWidth(ts.heapSizes, 0x01)
	case colGUID:
		return heapWidth(ts.heapSizes, 0x02)
	case colBlob:
		return heapWidth(ts.heapSizes, 0x04)
	case colIndex:
		if ts.rows[col.table] > 0xFFFF {
			return 4
		}
		return 2
	case colCoded:
		var maxRows uint32
		for _, t := range col.coded.tables {
			if t != noTable && ts.rows[t] > maxRows {
				maxRows = ts.rows[t]
			}
		}
		if maxRows < 1<<(16-col.coded.bits) {
			return 2
		}
		return 4
	}
	return 0
}

func heapWidth(heapSizes, flag byte) int {
	if heapSizes&flag != 0 {
		return 4
	}
	return 2
}

// parseTables decodes the #~ (or #-) stream header and lays out every
// table present in it.
func parseTables(data []byte) (*tablesStream, error) {
	if len(data) < 24 {
		return nil, malformed("tables stream too short")
	}
	ts := &tablesStream{heapSizes: data[6]}
	valid := binary.LittleEndian.Uint64(data[8:])
	pos := 24
	for id := 0; id < 64; id++ {
		if valid&(1<<uint(id)) == 0 {
			continue
		}
		if pos+4 > len(data) {
			return nil, malformed("truncated row counts")
		}
		n := binary.LittleEndian.Uint32(data[pos:])
		pos += 4
		// Tables past GenericParamConstraint are laid out last and never read.
		if id < tableCount {
			ts.rows[id] = n
		}
	}
	if ts.heapSizes&0x40 != 0 {
		pos += 4
	}

	for id := 0; id < tableCount; id++ {
		if ts.rows[id] == 0 {
			continue
		}
		cols := schema[id]
		t := &table{rows: ts.rows[id], widths: make([]int, len(cols)), offs: make([]int, len(cols))}
		for c, col := range cols {
			t.offs[c] = t.rowLen
			t.widths[c] = ts.width(col)
			t.rowLen += t.widths[c]
		}
		rows, err := safecast.Conv[int](t.rows)
		if err != nil {
			return nil, malformed("row count overflow: %v", err)
		}
		size := rows * t.rowLen
		if pos+size > len(data) {
			return nil, malformed("table 0x%02x overruns stream", id)
		}
		t.data = data[pos : pos+size]
		pos += size
		ts.tables[id] = t
	}
	return ts, nil
}

func (ts *tablesStream) table(id int) *table {
	if t := ts.tables[id]; t != nil {
		return t
	}
	return &table{}
}

// decodeCoded splits a coded index into table id and 1-based row.
func decodeCoded(ci codedIndex, v uint32) (int, uint32) {
	tag := v & (1<<ci.bits - 1)
	row := v >> ci.bits
	if int(tag) >= len(ci.tables) {
		return noTable, row
	}
	return ci.tables[tag], row
}

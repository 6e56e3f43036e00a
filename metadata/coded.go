package metadata

import (
	"fmt"

	"github.com/wippyai/clrmeta/errors"
)

// CodedTag maps one tag value of a coded index kind to its table.
type CodedTag struct {
	Tag   uint32
	Table TableID
}

// CodedIndexKind describes one coded index family (ECMA-335 II.24.2.6):
// the low Bits bits of the raw value select a table through Tags, the
// remaining bits hold the row number.
//
// Tag values are explicit and need not be dense; Bits must be wide enough
// to hold every tag.
type CodedIndexKind struct {
	Name string
	Tags []CodedTag
	Bits uint
}

// Coded index kinds used by the table schemas.
var (
	TypeDefOrRef = &CodedIndexKind{Name: "TypeDefOrRef", Bits: 2, Tags: []CodedTag{
		{0, TableTypeDef},
		{1, TableTypeRef},
		{2, TableTypeSpec},
	}}

	HasConstant = &CodedIndexKind{Name: "HasConstant", Bits: 2, Tags: []CodedTag{
		{0, TableField},
		{1, TableParam},
		{2, TableProperty},
	}}

	HasCustomAttribute = &CodedIndexKind{Name: "HasCustomAttribute", Bits: 5, Tags: []CodedTag{
		{0, TableMethodDef},
		{1, TableField},
		{2, TableTypeRef},
		{3, TableTypeDef},
		{4, TableParam},
		{5, TableInterfaceImpl},
		{6, TableMemberRef},
		{7, TableModule},
		{8, TableDeclSecurity},
		{9, TableProperty},
		{10, TableEvent},
		{11, TableStandAloneSig},
		{12, TableModuleRef},
		{13, TableTypeSpec},
		{14, TableAssembly},
		{15, TableAssemblyRef},
		{16, TableFile},
		{17, TableExportedType},
		{18, TableManifestResource},
		{19, TableGenericParam},
		{20, TableGenericParamConstraint},
		{21, TableMethodSpec},
	}}

	HasFieldMarshal = &CodedIndexKind{Name: "HasFieldMarshal", Bits: 1, Tags: []CodedTag{
		{0, TableField},
		{1, TableParam},
	}}

	HasDeclSecurity = &CodedIndexKind{Name: "HasDeclSecurity", Bits: 2, Tags: []CodedTag{
		{0, TableTypeDef},
		{1, TableMethodDef},
		{2, TableAssembly},
	}}

	MemberRefParent = &CodedIndexKind{Name: "MemberRefParent", Bits: 3, Tags: []CodedTag{
		{0, TableTypeDef},
		{1, TableTypeRef},
		{2, TableModuleRef},
		{3, TableMethodDef},
		{4, TableTypeSpec},
	}}

	HasSemantics = &CodedIndexKind{Name: "HasSemantics", Bits: 1, Tags: []CodedTag{
		{0, TableEvent},
		{1, TableProperty},
	}}

	MethodDefOrRef = &CodedIndexKind{Name: "MethodDefOrRef", Bits: 1, Tags: []CodedTag{
		{0, TableMethodDef},
		{1, TableMemberRef},
	}}

	MemberForwarded = &CodedIndexKind{Name: "MemberForwarded", Bits: 1, Tags: []CodedTag{
		{0, TableField},
		{1, TableMethodDef},
	}}

	Implementation = &CodedIndexKind{Name: "Implementation", Bits: 2, Tags: []CodedTag{
		{0, TableFile},
		{1, TableAssemblyRef},
		{2, TableExportedType},
	}}

	// Tags 0, 1 and 4 are unused.
	CustomAttributeType = &CodedIndexKind{Name: "CustomAttributeType", Bits: 3, Tags: []CodedTag{
		{2, TableMethodDef},
		{3, TableMemberRef},
	}}

	ResolutionScope = &CodedIndexKind{Name: "ResolutionScope", Bits: 2, Tags: []CodedTag{
		{0, TableModule},
		{1, TableModuleRef},
		{2, TableAssemblyRef},
		{3, TableTypeRef},
	}}

	TypeOrMethodDef = &CodedIndexKind{Name: "TypeOrMethodDef", Bits: 1, Tags: []CodedTag{
		{0, TableTypeDef},
		{1, TableMethodDef},
	}}
)

// AllCodedIndexKinds returns every coded index kind the decoder knows.
func AllCodedIndexKinds() []*CodedIndexKind {
	return []*CodedIndexKind{
		TypeDefOrRef,
		HasConstant,
		HasCustomAttribute,
		HasFieldMarshal,
		HasDeclSecurity,
		MemberRefParent,
		HasSemantics,
		MethodDefOrRef,
		MemberForwarded,
		Implementation,
		CustomAttributeType,
		ResolutionScope,
		TypeOrMethodDef,
	}
}

func (k *CodedIndexKind) String() string {
	return k.Name
}

// Tables returns the candidate tables in tag order.
func (k *CodedIndexKind) Tables() []TableID {
	ids := make([]TableID, len(k.Tags))
	for i, t := range k.Tags {
		ids[i] = t.Table
	}
	return ids
}

// TagOf returns the tag that selects table id, if id is a candidate.
func (k *CodedIndexKind) TagOf(id TableID) (uint32, bool) {
	for _, t := range k.Tags {
		if t.Table == id {
			return t.Tag, true
		}
	}
	return 0, false
}

// Decode splits raw into tag and row and resolves the tag.
// A tag with no mapping is a fatal decode error.
func (k *CodedIndexKind) Decode(raw uint32) (CodedIndex, error) {
	tag := raw & (1<<k.Bits - 1)
	for _, t := range k.Tags {
		if t.Tag == tag {
			return CodedIndex{Kind: k, Table: t.Table, Row: RID(raw >> k.Bits)}, nil
		}
	}
	return CodedIndex{}, errors.UnknownTag(nil, k.Name, tag, raw)
}

// CodedIndex is a decoded reference to a row in one of its kind's tables.
type CodedIndex struct {
	Kind  *CodedIndexKind
	Row   RID
	Table TableID
}

// IsNull reports whether the reference points at no row.
func (c CodedIndex) IsNull() bool {
	return c.Row.IsNull()
}

func (c CodedIndex) String() string {
	if c.Kind == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s[%d]", c.Table, c.Row)
}

// MarshalText renders the reference as Table[row] for JSON and YAML output.
func (c CodedIndex) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

package metadata

import (
	"strconv"

	"github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata/internal/binary"
)

// ColumnKind is the physical encoding of a table column.
type ColumnKind uint8

const (
	ColumnU8     ColumnKind = iota // 1-byte constant
	ColumnU16                      // 2-byte constant
	ColumnU32                      // 4-byte constant
	ColumnString                   // #Strings heap index
	ColumnGUID                     // #GUID heap index
	ColumnBlob                     // #Blob heap index
	ColumnTable                    // simple index into Table
	ColumnCoded                    // coded index of kind Coded
)

// Column describes one column of a table schema.
type Column struct {
	Coded    *CodedIndexKind
	Name     string
	Kind     ColumnKind
	Table    TableID
	Reserved bool // value must be zero
}

// Columns returns the column schema of table id, or nil when unknown.
func Columns(id TableID) []Column {
	s := schemaFor(id)
	if s == nil {
		return nil
	}
	return append([]Column(nil), s.columns...)
}

func u8(name string) Column   { return Column{Name: name, Kind: ColumnU8} }
func u16(name string) Column  { return Column{Name: name, Kind: ColumnU16} }
func u32(name string) Column  { return Column{Name: name, Kind: ColumnU32} }
func str(name string) Column  { return Column{Name: name, Kind: ColumnString} }
func guid(name string) Column { return Column{Name: name, Kind: ColumnGUID} }
func blob(name string) Column { return Column{Name: name, Kind: ColumnBlob} }
func index(name string, t TableID) Column {
	return Column{Name: name, Kind: ColumnTable, Table: t}
}
func coded(name string, k *CodedIndexKind) Column {
	return Column{Name: name, Kind: ColumnCoded, Coded: k}
}
func reserved(c Column) Column {
	c.Reserved = true
	return c
}

// cell holds one decoded column value; ci is set for coded columns.
type cell struct {
	ci CodedIndex
	v  uint32
}

type tableSchema struct {
	decode  func(d *rowDecoder, s *tableSchema, n uint32) (tableRows, error)
	empty   func() tableRows
	name    string
	columns []Column
	id      TableID
}

func table[T Row](id TableID, name string, build func(c []cell) T, columns ...Column) *tableSchema {
	return &tableSchema{
		id:      id,
		name:    name,
		columns: columns,
		decode: func(d *rowDecoder, s *tableSchema, n uint32) (tableRows, error) {
			return decodeTable(d, s, n, build)
		},
		empty: func() tableRows { return rowSlice[T]{} },
	}
}

// tableRows is the type-erased row array of one table.
type tableRows interface {
	Len() int
	At(i int) Row
}

type rowSlice[T Row] []T

func (s rowSlice[T]) Len() int     { return len(s) }
func (s rowSlice[T]) At(i int) Row { return s[i] }

type noRows struct{}

func (noRows) Len() int   { return 0 }
func (noRows) At(int) Row { panic("metadata: row index out of range") }

type rowDecoder struct {
	r *binary.Reader
	h *Header
}

func decodeTable[T Row](d *rowDecoder, s *tableSchema, n uint32, build func(c []cell) T) (tableRows, error) {
	widths := d.h.columnWidths(s)
	rowSize := 0
	for _, w := range widths {
		rowSize += w
	}

	// Cap the preallocation by what the buffer can hold so a corrupt row
	// count cannot force a huge allocation before the bounds check fires.
	hint := int(n)
	if rowSize > 0 && d.r.Len()/rowSize < hint {
		hint = d.r.Len() / rowSize
	}
	rows := make(rowSlice[T], 0, hint)
	cells := make([]cell, len(s.columns))

	for i := uint32(0); i < n; i++ {
		if err := d.readRow(s, widths, RID(i+1), cells); err != nil {
			return nil, err
		}
		rows = append(rows, build(cells))
	}
	return rows, nil
}

func (d *rowDecoder) readRow(s *tableSchema, widths []int, rid RID, cells []cell) error {
	for i, col := range s.columns {
		v, err := d.r.ReadUint(widths[i])
		if err != nil {
			return errors.WithPath(err, s.name, rowLabel(rid), col.Name)
		}
		if col.Reserved && v != 0 {
			return errors.ReservedField([]string{s.name, rowLabel(rid), col.Name}, v, 0)
		}
		cells[i] = cell{v: v}
		if col.Kind == ColumnCoded {
			ci, err := col.Coded.Decode(v)
			if err != nil {
				return errors.WithPath(err, s.name, rowLabel(rid), col.Name)
			}
			cells[i].ci = ci
		}
	}
	return nil
}

func rowLabel(rid RID) string {
	return "row " + strconv.FormatUint(uint64(rid), 10)
}

var schemas [MaxTables]*tableSchema

func init() {
	for _, s := range registry {
		schemas[s.id] = s
	}
}

func schemaFor(id TableID) *tableSchema {
	if id >= MaxTables {
		return nil
	}
	return schemas[id]
}

// registry lists every modeled table in ascending id order (ECMA-335 II.22).
var registry = []*tableSchema{
	table(TableModule, "Module", func(c []cell) Module {
		return Module{Name: StringIndex(c[1].v), Mvid: GUIDIndex(c[2].v)}
	},
		reserved(u16("Generation")),
		str("Name"),
		guid("Mvid"),
		reserved(u16("EncId")),
		reserved(u16("EncBaseId")),
	),
	table(TableTypeRef, "TypeRef", func(c []cell) TypeRef {
		return TypeRef{ResolutionScope: c[0].ci, Name: StringIndex(c[1].v), Namespace: StringIndex(c[2].v)}
	},
		coded("ResolutionScope", ResolutionScope),
		str("TypeName"),
		str("TypeNamespace"),
	),
	table(TableTypeDef, "TypeDef", func(c []cell) TypeDef {
		return TypeDef{
			Flags:      c[0].v,
			Name:       StringIndex(c[1].v),
			Namespace:  StringIndex(c[2].v),
			Extends:    c[3].ci,
			FieldList:  RID(c[4].v),
			MethodList: RID(c[5].v),
		}
	},
		u32("Flags"),
		str("TypeName"),
		str("TypeNamespace"),
		coded("Extends", TypeDefOrRef),
		index("FieldList", TableField),
		index("MethodList", TableMethodDef),
	),
	table(TableField, "Field", func(c []cell) Field {
		return Field{Flags: uint16(c[0].v), Name: StringIndex(c[1].v), Signature: BlobIndex(c[2].v)}
	},
		u16("Flags"),
		str("Name"),
		blob("Signature"),
	),
	table(TableMethodDef, "MethodDef", func(c []cell) MethodDef {
		return MethodDef{
			RVA:       c[0].v,
			ImplFlags: uint16(c[1].v),
			Flags:     uint16(c[2].v),
			Name:      StringIndex(c[3].v),
			Signature: BlobIndex(c[4].v),
			ParamList: RID(c[5].v),
		}
	},
		u32("RVA"),
		u16("ImplFlags"),
		u16("Flags"),
		str("Name"),
		blob("Signature"),
		index("ParamList", TableParam),
	),
	table(TableParam, "Param", func(c []cell) Param {
		return Param{Flags: uint16(c[0].v), Sequence: uint16(c[1].v), Name: StringIndex(c[2].v)}
	},
		u16("Flags"),
		u16("Sequence"),
		str("Name"),
	),
	table(TableInterfaceImpl, "InterfaceImpl", func(c []cell) InterfaceImpl {
		return InterfaceImpl{Class: RID(c[0].v), Interface: c[1].ci}
	},
		index("Class", TableTypeDef),
		coded("Interface", TypeDefOrRef),
	),
	table(TableMemberRef, "MemberRef", func(c []cell) MemberRef {
		return MemberRef{Class: c[0].ci, Name: StringIndex(c[1].v), Signature: BlobIndex(c[2].v)}
	},
		coded("Class", MemberRefParent),
		str("Name"),
		blob("Signature"),
	),
	table(TableConstant, "Constant", func(c []cell) Constant {
		return Constant{Type: uint8(c[0].v), Parent: c[2].ci, Value: BlobIndex(c[3].v)}
	},
		u8("Type"),
		reserved(u8("Padding")),
		coded("Parent", HasConstant),
		blob("Value"),
	),
	table(TableCustomAttribute, "CustomAttribute", func(c []cell) CustomAttribute {
		return CustomAttribute{Parent: c[0].ci, Type: c[1].ci, Value: BlobIndex(c[2].v)}
	},
		coded("Parent", HasCustomAttribute),
		coded("Type", CustomAttributeType),
		blob("Value"),
	),
	table(TableFieldMarshal, "FieldMarshal", func(c []cell) FieldMarshal {
		return FieldMarshal{Parent: c[0].ci, NativeType: BlobIndex(c[1].v)}
	},
		coded("Parent", HasFieldMarshal),
		blob("NativeType"),
	),
	table(TableDeclSecurity, "DeclSecurity", func(c []cell) DeclSecurity {
		return DeclSecurity{Action: uint16(c[0].v), Parent: c[1].ci, PermissionSet: BlobIndex(c[2].v)}
	},
		u16("Action"),
		coded("Parent", HasDeclSecurity),
		blob("PermissionSet"),
	),
	table(TableClassLayout, "ClassLayout", func(c []cell) ClassLayout {
		return ClassLayout{PackingSize: uint16(c[0].v), ClassSize: c[1].v, Parent: RID(c[2].v)}
	},
		u16("PackingSize"),
		u32("ClassSize"),
		index("Parent", TableTypeDef),
	),
	table(TableFieldLayout, "FieldLayout", func(c []cell) FieldLayout {
		return FieldLayout{Offset: c[0].v, Field: RID(c[1].v)}
	},
		u32("Offset"),
		index("Field", TableField),
	),
	table(TableStandAloneSig, "StandAloneSig", func(c []cell) StandAloneSig {
		return StandAloneSig{Signature: BlobIndex(c[0].v)}
	},
		blob("Signature"),
	),
	table(TableEventMap, "EventMap", func(c []cell) EventMap {
		return EventMap{Parent: RID(c[0].v), EventList: RID(c[1].v)}
	},
		index("Parent", TableTypeDef),
		index("EventList", TableEvent),
	),
	table(TableEvent, "Event", func(c []cell) Event {
		return Event{Flags: uint16(c[0].v), Name: StringIndex(c[1].v), EventType: c[2].ci}
	},
		u16("EventFlags"),
		str("Name"),
		coded("EventType", TypeDefOrRef),
	),
	table(TablePropertyMap, "PropertyMap", func(c []cell) PropertyMap {
		return PropertyMap{Parent: RID(c[0].v), PropertyList: RID(c[1].v)}
	},
		index("Parent", TableTypeDef),
		index("PropertyList", TableProperty),
	),
	table(TableProperty, "Property", func(c []cell) Property {
		return Property{Flags: uint16(c[0].v), Name: StringIndex(c[1].v), Type: BlobIndex(c[2].v)}
	},
		u16("Flags"),
		str("Name"),
		blob("Type"),
	),
	table(TableMethodSemantics, "MethodSemantics", func(c []cell) MethodSemantics {
		return MethodSemantics{Semantics: uint16(c[0].v), Method: RID(c[1].v), Association: c[2].ci}
	},
		u16("Semantics"),
		index("Method", TableMethodDef),
		coded("Association", HasSemantics),
	),
	table(TableMethodImpl, "MethodImpl", func(c []cell) MethodImpl {
		return MethodImpl{Class: RID(c[0].v), MethodBody: c[1].ci, MethodDeclaration: c[2].ci}
	},
		index("Class", TableTypeDef),
		coded("MethodBody", MethodDefOrRef),
		coded("MethodDeclaration", MethodDefOrRef),
	),
	table(TableModuleRef, "ModuleRef", func(c []cell) ModuleRef {
		return ModuleRef{Name: StringIndex(c[0].v)}
	},
		str("Name"),
	),
	table(TableTypeSpec, "TypeSpec", func(c []cell) TypeSpec {
		return TypeSpec{Signature: BlobIndex(c[0].v)}
	},
		blob("Signature"),
	),
	table(TableImplMap, "ImplMap", func(c []cell) ImplMap {
		return ImplMap{
			MappingFlags:    uint16(c[0].v),
			MemberForwarded: c[1].ci,
			ImportName:      StringIndex(c[2].v),
			ImportScope:     RID(c[3].v),
		}
	},
		u16("MappingFlags"),
		coded("MemberForwarded", MemberForwarded),
		str("ImportName"),
		index("ImportScope", TableModuleRef),
	),
	table(TableFieldRVA, "FieldRVA", func(c []cell) FieldRVA {
		return FieldRVA{RVA: c[0].v, Field: RID(c[1].v)}
	},
		u32("RVA"),
		index("Field", TableField),
	),
	table(TableAssembly, "Assembly", func(c []cell) Assembly {
		return Assembly{
			HashAlgID: c[0].v,
			Version:   versionOf(c[1:5]),
			Flags:     c[5].v,
			PublicKey: BlobIndex(c[6].v),
			Name:      StringIndex(c[7].v),
			Culture:   StringIndex(c[8].v),
		}
	},
		u32("HashAlgId"),
		u16("MajorVersion"),
		u16("MinorVersion"),
		u16("BuildNumber"),
		u16("RevisionNumber"),
		u32("Flags"),
		blob("PublicKey"),
		str("Name"),
		str("Culture"),
	),
	table(TableAssemblyProcessor, "AssemblyProcessor", func(c []cell) AssemblyProcessor {
		return AssemblyProcessor{Processor: c[0].v}
	},
		u32("Processor"),
	),
	table(TableAssemblyOS, "AssemblyOS", func(c []cell) AssemblyOS {
		return AssemblyOS{PlatformID: c[0].v, MajorVersion: c[1].v, MinorVersion: c[2].v}
	},
		u32("OSPlatformID"),
		u32("OSMajorVersion"),
		u32("OSMinorVersion"),
	),
	table(TableAssemblyRef, "AssemblyRef", func(c []cell) AssemblyRef {
		return AssemblyRef{
			Version:          versionOf(c[0:4]),
			Flags:            c[4].v,
			PublicKeyOrToken: BlobIndex(c[5].v),
			Name:             StringIndex(c[6].v),
			Culture:          StringIndex(c[7].v),
			HashValue:        BlobIndex(c[8].v),
		}
	},
		u16("MajorVersion"),
		u16("MinorVersion"),
		u16("BuildNumber"),
		u16("RevisionNumber"),
		u32("Flags"),
		blob("PublicKeyOrToken"),
		str("Name"),
		str("Culture"),
		blob("HashValue"),
	),
	table(TableAssemblyRefProcessor, "AssemblyRefProcessor", func(c []cell) AssemblyRefProcessor {
		return AssemblyRefProcessor{Processor: c[0].v, AssemblyRef: RID(c[1].v)}
	},
		u32("Processor"),
		index("AssemblyRef", TableAssemblyRef),
	),
	table(TableAssemblyRefOS, "AssemblyRefOS", func(c []cell) AssemblyRefOS {
		return AssemblyRefOS{
			PlatformID:   c[0].v,
			MajorVersion: c[1].v,
			MinorVersion: c[2].v,
			AssemblyRef:  RID(c[3].v),
		}
	},
		u32("OSPlatformId"),
		u32("OSMajorVersion"),
		u32("OSMinorVersion"),
		index("AssemblyRef", TableAssemblyRef),
	),
	table(TableFile, "File", func(c []cell) File {
		return File{Flags: c[0].v, Name: StringIndex(c[1].v), HashValue: BlobIndex(c[2].v)}
	},
		u32("Flags"),
		str("Name"),
		blob("HashValue"),
	),
	table(TableExportedType, "ExportedType", func(c []cell) ExportedType {
		return ExportedType{
			Flags:          c[0].v,
			TypeDefID:      c[1].v,
			Name:           StringIndex(c[2].v),
			Namespace:      StringIndex(c[3].v),
			Implementation: c[4].ci,
		}
	},
		u32("Flags"),
		u32("TypeDefId"),
		str("TypeName"),
		str("TypeNamespace"),
		coded("Implementation", Implementation),
	),
	table(TableManifestResource, "ManifestResource", func(c []cell) ManifestResource {
		return ManifestResource{
			Offset:         c[0].v,
			Flags:          c[1].v,
			Name:           StringIndex(c[2].v),
			Implementation: c[3].ci,
		}
	},
		u32("Offset"),
		u32("Flags"),
		str("Name"),
		coded("Implementation", Implementation),
	),
	table(TableNestedClass, "NestedClass", func(c []cell) NestedClass {
		return NestedClass{NestedClass: RID(c[0].v), EnclosingClass: RID(c[1].v)}
	},
		index("NestedClass", TableTypeDef),
		index("EnclosingClass", TableTypeDef),
	),
	table(TableGenericParam, "GenericParam", func(c []cell) GenericParam {
		return GenericParam{
			Number: uint16(c[0].v),
			Flags:  uint16(c[1].v),
			Owner:  c[2].ci,
			Name:   StringIndex(c[3].v),
		}
	},
		u16("Number"),
		u16("Flags"),
		coded("Owner", TypeOrMethodDef),
		str("Name"),
	),
	table(TableMethodSpec, "MethodSpec", func(c []cell) MethodSpec {
		return MethodSpec{Method: c[0].ci, Instantiation: BlobIndex(c[1].v)}
	},
		coded("Method", MethodDefOrRef),
		blob("Instantiation"),
	),
	table(TableGenericParamConstraint, "GenericParamConstraint", func(c []cell) GenericParamConstraint {
		return GenericParamConstraint{Owner: RID(c[0].v), Constraint: c[1].ci}
	},
		index("Owner", TableGenericParam),
		coded("Constraint", TypeDefOrRef),
	),
}

func versionOf(c []cell) Version {
	return Version{
		Major:    uint16(c[0].v),
		Minor:    uint16(c[1].v),
		Build:    uint16(c[2].v),
		Revision: uint16(c[3].v),
	}
}

package metadata

import "fmt"

// Row is a decoded row of one metadata table.
type Row interface {
	Table() TableID
}

// Version is the four-part version stored in Assembly and AssemblyRef rows.
type Version struct {
	Major    uint16
	Minor    uint16
	Build    uint16
	Revision uint16
}

// Module is a row of the Module table (0x00). Generation, EncId and
// EncBaseId are validated as zero and dropped.
type Module struct {
	Name StringIndex
	Mvid GUIDIndex
}

// TypeRef is a row of the TypeRef table (0x01).
type TypeRef struct {
	ResolutionScope CodedIndex
	Name            StringIndex
	Namespace       StringIndex
}

// TypeDef is a row of the TypeDef table (0x02). FieldList and MethodList
// mark the first row of a run that ends at the next TypeDef's list start.
type TypeDef struct {
	Extends    CodedIndex
	Flags      uint32
	Name       StringIndex
	Namespace  StringIndex
	FieldList  RID
	MethodList RID
}

type Field struct {
	Name      StringIndex
	Signature BlobIndex
	Flags     uint16
}

type MethodDef struct {
	RVA       uint32
	Name      StringIndex
	Signature BlobIndex
	ParamList RID
	ImplFlags uint16
	Flags     uint16
}

type Param struct {
	Name     StringIndex
	Flags    uint16
	Sequence uint16
}

type InterfaceImpl struct {
	Interface CodedIndex
	Class     RID
}

type MemberRef struct {
	Class     CodedIndex
	Name      StringIndex
	Signature BlobIndex
}

// Constant is a row of the Constant table (0x0B). The padding byte after
// Type is validated as zero and dropped.
type Constant struct {
	Parent CodedIndex
	Value  BlobIndex
	Type   uint8
}

type CustomAttribute struct {
	Parent CodedIndex
	Type   CodedIndex
	Value  BlobIndex
}

type FieldMarshal struct {
	Parent     CodedIndex
	NativeType BlobIndex
}

type DeclSecurity struct {
	Parent        CodedIndex
	PermissionSet BlobIndex
	Action        uint16
}

type ClassLayout struct {
	ClassSize   uint32
	Parent      RID
	PackingSize uint16
}

type FieldLayout struct {
	Offset uint32
	Field  RID
}

type StandAloneSig struct {
	Signature BlobIndex
}

type EventMap struct {
	Parent    RID
	EventList RID
}

type Event struct {
	EventType CodedIndex
	Name      StringIndex
	Flags     uint16
}

type PropertyMap struct {
	Parent       RID
	PropertyList RID
}

type Property struct {
	Name  StringIndex
	Type  BlobIndex
	Flags uint16
}

type MethodSemantics struct {
	Association CodedIndex
	Method      RID
	Semantics   uint16
}

type MethodImpl struct {
	MethodBody        CodedIndex
	MethodDeclaration CodedIndex
	Class             RID
}

type ModuleRef struct {
	Name StringIndex
}

type TypeSpec struct {
	Signature BlobIndex
}

type ImplMap struct {
	MemberForwarded CodedIndex
	ImportName      StringIndex
	ImportScope     RID
	MappingFlags    uint16
}

type FieldRVA struct {
	RVA   uint32
	Field RID
}

type Assembly struct {
	HashAlgID uint32
	Flags     uint32
	PublicKey BlobIndex
	Name      StringIndex
	Culture   StringIndex
	Version   Version
}

type AssemblyProcessor struct {
	Processor uint32
}

type AssemblyOS struct {
	PlatformID   uint32
	MajorVersion uint32
	MinorVersion uint32
}

type AssemblyRef struct {
	Flags            uint32
	PublicKeyOrToken BlobIndex
	Name             StringIndex
	Culture          StringIndex
	HashValue        BlobIndex
	Version          Version
}

type AssemblyRefProcessor struct {
	Processor   uint32
	AssemblyRef RID
}

type AssemblyRefOS struct {
	PlatformID   uint32
	MajorVersion uint32
	MinorVersion uint32
	AssemblyRef  RID
}

type File struct {
	Flags     uint32
	Name      StringIndex
	HashValue BlobIndex
}

type ExportedType struct {
	Implementation CodedIndex
	Flags          uint32
	TypeDefID      uint32
	Name           StringIndex
	Namespace      StringIndex
}

type ManifestResource struct {
	Implementation CodedIndex
	Offset         uint32
	Flags          uint32
	Name           StringIndex
}

type NestedClass struct {
	NestedClass    RID
	EnclosingClass RID
}

type GenericParam struct {
	Owner  CodedIndex
	Name   StringIndex
	Number uint16
	Flags  uint16
}

type MethodSpec struct {
	Method        CodedIndex
	Instantiation BlobIndex
}

type GenericParamConstraint struct {
	Constraint CodedIndex
	Owner      RID
}

func (Module) Table() TableID                 { return TableModule }
func (TypeRef) Table() TableID                { return TableTypeRef }
func (TypeDef) Table() TableID                { return TableTypeDef }
func (Field) Table() TableID                  { return TableField }
func (MethodDef) Table() TableID              { return TableMethodDef }
func (Param) Table() TableID                  { return TableParam }
func (InterfaceImpl) Table() TableID          { return TableInterfaceImpl }
func (MemberRef) Table() TableID              { return TableMemberRef }
func (Constant) Table() TableID               { return TableConstant }
func (CustomAttribute) Table() TableID        { return TableCustomAttribute }
func (FieldMarshal) Table() TableID           { return TableFieldMarshal }
func (DeclSecurity) Table() TableID           { return TableDeclSecurity }
func (ClassLayout) Table() TableID            { return TableClassLayout }
func (FieldLayout) Table() TableID            { return TableFieldLayout }
func (StandAloneSig) Table() TableID          { return TableStandAloneSig }
func (EventMap) Table() TableID               { return TableEventMap }
func (Event) Table() TableID                  { return TableEvent }
func (PropertyMap) Table() TableID            { return TablePropertyMap }
func (Property) Table() TableID               { return TableProperty }
func (MethodSemantics) Table() TableID        { return TableMethodSemantics }
func (MethodImpl) Table() TableID             { return TableMethodImpl }
func (ModuleRef) Table() TableID              { return TableModuleRef }
func (TypeSpec) Table() TableID               { return TableTypeSpec }
func (ImplMap) Table() TableID                { return TableImplMap }
func (FieldRVA) Table() TableID               { return TableFieldRVA }
func (Assembly) Table() TableID               { return TableAssembly }
func (AssemblyProcessor) Table() TableID      { return TableAssemblyProcessor }
func (AssemblyOS) Table() TableID             { return TableAssemblyOS }
func (AssemblyRef) Table() TableID            { return TableAssemblyRef }
func (AssemblyRefProcessor) Table() TableID   { return TableAssemblyRefProcessor }
func (AssemblyRefOS) Table() TableID          { return TableAssemblyRefOS }
func (File) Table() TableID                   { return TableFile }
func (ExportedType) Table() TableID           { return TableExportedType }
func (ManifestResource) Table() TableID       { return TableManifestResource }
func (NestedClass) Table() TableID            { return TableNestedClass }
func (GenericParam) Table() TableID           { return TableGenericParam }
func (MethodSpec) Table() TableID             { return TableMethodSpec }
func (GenericParamConstraint) Table() TableID { return TableGenericParamConstraint }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

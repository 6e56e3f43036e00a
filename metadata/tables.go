package metadata

import (
	"fmt"
	"strconv"
	"strings"
)

// TableID is the canonical number of a metadata table (ECMA-335 II.22).
// It is also the bit position of the table in Header.Valid.
type TableID uint8

// MaxTables is the number of table slots addressable by the 64-bit Valid mask.
const MaxTables = 64

// Canonical table ids. Ids 0x03, 0x05, 0x07, 0x13, 0x16, 0x1E and 0x1F
// only occur in uncompressed (#-) streams and are not modeled.
const (
	TableModule                 TableID = 0x00
	TableTypeRef                TableID = 0x01
	TableTypeDef                TableID = 0x02
	TableField                  TableID = 0x04
	TableMethodDef              TableID = 0x06
	TableParam                  TableID = 0x08
	TableInterfaceImpl          TableID = 0x09
	TableMemberRef              TableID = 0x0A
	TableConstant               TableID = 0x0B
	TableCustomAttribute        TableID = 0x0C
	TableFieldMarshal           TableID = 0x0D
	TableDeclSecurity           TableID = 0x0E
	TableClassLayout            TableID = 0x0F
	TableFieldLayout            TableID = 0x10
	TableStandAloneSig          TableID = 0x11
	TableEventMap               TableID = 0x12
	TableEvent                  TableID = 0x14
	TablePropertyMap            TableID = 0x15
	TableProperty               TableID = 0x17
	TableMethodSemantics        TableID = 0x18
	TableMethodImpl             TableID = 0x19
	TableModuleRef              TableID = 0x1A
	TableTypeSpec               TableID = 0x1B
	TableImplMap                TableID = 0x1C
	TableFieldRVA               TableID = 0x1D
	TableAssembly               TableID = 0x20
	TableAssemblyProcessor      TableID = 0x21
	TableAssemblyOS             TableID = 0x22
	TableAssemblyRef            TableID = 0x23
	TableAssemblyRefProcessor   TableID = 0x24
	TableAssemblyRefOS          TableID = 0x25
	TableFile                   TableID = 0x26
	TableExportedType           TableID = 0x27
	TableManifestResource       TableID = 0x28
	TableNestedClass            TableID = 0x29
	TableGenericParam           TableID = 0x2A
	TableMethodSpec             TableID = 0x2B
	TableGenericParamConstraint TableID = 0x2C
)

// String returns the canonical table name, or Table(0xNN) for ids without a schema.
func (id TableID) String() string {
	if s := schemaFor(id); s != nil {
		return s.name
	}
	return fmt.Sprintf("Table(0x%02x)", uint8(id))
}

// Known reports whether the decoder has a row schema for id.
func (id TableID) Known() bool {
	return schemaFor(id) != nil
}

// KnownTables returns every modeled table id in ascending order.
func KnownTables() []TableID {
	ids := make([]TableID, 0, len(registry))
	for _, s := range registry {
		ids = append(ids, s.id)
	}
	return ids
}

// ParseTableID resolves a table by canonical name (case-insensitive) or by
// numeric id in Go literal syntax ("0x02", "2").
func ParseTableID(s string) (TableID, bool) {
	for _, schema := range registry {
		if strings.EqualFold(schema.name, s) {
			return schema.id, true
		}
	}
	if n, err := strconv.ParseUint(s, 0, 8); err == nil && n < MaxTables {
		return TableID(n), true
	}
	return 0, false
}

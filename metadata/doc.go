// Package metadata decodes the ECMA-335 "#~" table stream of a managed
// module: the stream header, heap and table index widths, coded indices and
// the typed rows of every modeled table.
//
// The caller locates the stream inside the module image; this package only
// needs the stream bytes. Heap contents (#Strings, #GUID, #Blob) are not
// read: rows carry raw StringIndex, GUIDIndex and BlobIndex offsets.
//
// # Decoding
//
//	tables, err := metadata.Decode(stream)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, tr := range metadata.RowsOf[metadata.TypeRef](tables) {
//	    fmt.Println(tr.ResolutionScope, tr.Name, tr.Namespace)
//	}
//
// The header alone is available through ParseHeader, and DecodeRows decodes
// row data for a header parsed earlier.
//
// # Index widths
//
// Every index column is 2 or 4 bytes wide depending on the header:
//
//   - heap indices follow the HeapSizes flags
//   - a simple index into table t is 4 bytes once t has 2^16 rows
//   - a coded index of kind k is 4 bytes once any candidate table of k has
//     2^(16-k.Bits) rows
//
// Header.ColumnSize and Header.RowSize expose these decisions.
//
// # Coded indices
//
// Each coded index family is a *CodedIndexKind value (TypeDefOrRef,
// HasCustomAttribute, ResolutionScope, ...) holding its tag width and the
// explicit tag to table mapping. Decoded references are CodedIndex values
// naming the selected table and row.
//
// # Errors
//
// Decoding stops at the first failure and returns no partial result. Errors
// are *errors.Error values from github.com/wippyai/clrmeta/errors with one of
// these kinds:
//
//   - KindOutOfBounds: the stream ended inside a field
//   - KindReservedField: a must-be-zero field is not zero
//   - KindUnknownTag: a coded index tag selects no table
//   - KindUnsupported: a present table has no schema and cannot be skipped
//
// # Thread Safety
//
// Decoding has no shared mutable state; independent buffers may be decoded
// concurrently. A decoded *Tables is read-only and safe to share.
package metadata

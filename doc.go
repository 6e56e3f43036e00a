// Package clrmeta decodes the logical tables of ECMA-335 CLI metadata, the
// #~ stream found in .NET assemblies.
//
// The stream starts with a header that lists which of the 64 possible tables
// are present and how many rows each holds. Every column width that follows
// depends on those counts and on the heap-size flags, so rows can only be
// read after the header is fully parsed.
//
// # Architecture Overview
//
//	clrmeta/
//	├── metadata/        Header parsing, index widths, coded indexes, table rows
//	│   └── internal/binary/  Bounds-checked little-endian cursor
//	├── errors/          Structured error types with phase, kind and column path
//	└── cmd/tables/      CLI and TUI for inspecting a table stream
//
// # Quick Start
//
//	tables, err := metadata.Decode(stream)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, ref := range metadata.RowsOf[metadata.TypeRef](tables) {
//	    fmt.Println(ref.ResolutionScope, ref.Name)
//	}
//
// Heap contents (#Strings, #GUID, #Blob) are not resolved: string, GUID and
// blob columns carry raw heap indices.
//
// # Error Handling
//
// Decoding errors are *errors.Error values carrying the phase, a kind and the
// path to the failing column:
//
//	if errors.IsKind(err, errors.KindUnknownTag) {
//	    // a coded index used a tag outside its table set
//	}
//
// # Logging
//
// The metadata package logs through zap. Loggers default to no-op; use
// metadata.SetLogger or Config.Logger to enable output.
package clrmeta

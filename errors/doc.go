// Package errors provides structured error types for the clrmeta decoder.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries a location path (table, row, column), the offending
// value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindUnknownTag).
//		Path("CustomAttribute", "row 3", "Type").
//		Value(tag).
//		Detail("tag %d selects no table", tag).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseHeader, offset, 4, len(data))
//	err := errors.ReservedField(path, got, 0)
//
// All errors implement the standard error interface and support errors.Is/As.
// A target *Error with an empty Phase matches on Kind alone:
//
//	if errors.Is(err, &errors.Error{Kind: errors.KindReservedField}) { ... }
package errors

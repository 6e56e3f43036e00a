package metadata

import "fmt"

// IndexSize is the on-disk width of an index column in bytes: 2 or 4.
type IndexSize int

const (
	IndexSmall IndexSize = 2
	IndexLarge IndexSize = 4
)

// Heap identifies one of the heaps referenced by index columns.
type Heap uint8

const (
	HeapString Heap = iota // #Strings
	HeapGUID               // #GUID
	HeapBlob               // #Blob
)

func (h Heap) String() string {
	switch h {
	case HeapString:
		return "#Strings"
	case HeapGUID:
		return "#GUID"
	case HeapBlob:
		return "#Blob"
	default:
		return fmt.Sprintf("Heap(%d)", uint8(h))
	}
}

// HeapSizes flag bits in the stream header.
const (
	HeapSizeLargeString uint8 = 0x01
	HeapSizeLargeGUID   uint8 = 0x02
	HeapSizeLargeBlob   uint8 = 0x04
)

// StringIndex is an offset into the #Strings heap.
type StringIndex uint32

// GUIDIndex is a 1-based index into the #GUID heap; 0 means no GUID.
type GUIDIndex uint32

// BlobIndex is an offset into the #Blob heap.
type BlobIndex uint32

// RID is a 1-based row number within a single table.
// The decoder passes 0 through unchanged; it conventionally means "no row".
type RID uint32

// IsNull reports whether r is the "no row" value.
func (r RID) IsNull() bool {
	return r == 0
}

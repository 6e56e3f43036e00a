package metadata

import (
	"fmt"
	"math/bits"

	"go.uber.org/zap"

	"github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata/internal/binary"
)

// Header is the parsed prologue of the #~ table stream.
//
// RowCounts[i] is meaningful only when bit i of Valid is set and is zero
// otherwise. A Header is immutable once parsed.
type Header struct {
	RowCounts       [MaxTables]uint32
	Valid           uint64
	Sorted          uint64
	Size            int
	StringIndexSize IndexSize
	GUIDIndexSize   IndexSize
	BlobIndexSize   IndexSize
	MajorVersion    uint8
	MinorVersion    uint8
	HeapSizes       uint8
}

// ParseHeader parses the table stream header at the start of data.
// Header.Size reports how many bytes were consumed; row data begins there.
func ParseHeader(data []byte) (*Header, error) {
	return parseHeader(data, Logger())
}

func parseHeader(data []byte, log *zap.Logger) (*Header, error) {
	r := binary.NewReader(data, errors.PhaseHeader)
	h := &Header{}

	// Reserved, always 0.
	if err := r.Skip(4); err != nil {
		return nil, r.WrapError("Reserved", err)
	}
	var err error
	if h.MajorVersion, err = r.ReadU8(); err != nil {
		return nil, r.WrapError("MajorVersion", err)
	}
	if h.MinorVersion, err = r.ReadU8(); err != nil {
		return nil, r.WrapError("MinorVersion", err)
	}
	if h.HeapSizes, err = r.ReadU8(); err != nil {
		return nil, r.WrapError("HeapSizes", err)
	}
	h.StringIndexSize = heapIndexSize(h.HeapSizes, HeapSizeLargeString)
	h.GUIDIndexSize = heapIndexSize(h.HeapSizes, HeapSizeLargeGUID)
	h.BlobIndexSize = heapIndexSize(h.HeapSizes, HeapSizeLargeBlob)
	log.Debug("heap sizes",
		zap.String("flags", fmt.Sprintf("%#010b", h.HeapSizes)),
		zap.Int("string", int(h.StringIndexSize)),
		zap.Int("guid", int(h.GUIDIndexSize)),
		zap.Int("blob", int(h.BlobIndexSize)))

	// Reserved, always 1.
	if err := r.Skip(1); err != nil {
		return nil, r.WrapError("Reserved", err)
	}
	if h.Valid, err = r.ReadU64(); err != nil {
		return nil, r.WrapError("Valid", err)
	}
	log.Debug("valid mask",
		zap.String("mask", fmt.Sprintf("%#066b", h.Valid)),
		zap.Int("tables", bits.OnesCount64(h.Valid)))

	if h.Sorted, err = r.ReadU64(); err != nil {
		return nil, r.WrapError("Sorted", err)
	}

	for i := 0; i < MaxTables; i++ {
		if h.Valid&(1<<uint(i)) == 0 {
			continue
		}
		if h.RowCounts[i], err = r.ReadU32(); err != nil {
			return nil, r.WrapError("Rows", err)
		}
		log.Debug("table rows",
			zap.Stringer("table", TableID(i)),
			zap.Uint32("rows", h.RowCounts[i]))
	}

	h.Size = r.Position()
	return h, nil
}

func heapIndexSize(flags, bit uint8) IndexSize {
	if flags&bit != 0 {
		return IndexLarge
	}
	return IndexSmall
}

// Has reports whether table id is stored in the stream.
func (h *Header) Has(id TableID) bool {
	return id < MaxTables && h.Valid&(1<<uint(id)) != 0
}

// Rows returns the row count of table id, 0 when the table is absent.
func (h *Header) Rows(id TableID) uint32 {
	if !h.Has(id) {
		return 0
	}
	return h.RowCounts[id]
}

// Present returns the ids of all stored tables in ascending order,
// including ids the decoder has no schema for.
func (h *Header) Present() []TableID {
	ids := make([]TableID, 0, bits.OnesCount64(h.Valid))
	for v := h.Valid; v != 0; v &= v - 1 {
		ids = append(ids, TableID(bits.TrailingZeros64(v)))
	}
	return ids
}

// IsSorted reports whether the Sorted mask flags table id.
func (h *Header) IsSorted(id TableID) bool {
	return id < MaxTables && h.Sorted&(1<<uint(id)) != 0
}

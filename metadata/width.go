package metadata

// HeapIndexSize returns the width of index columns into heap.
func (h *Header) HeapIndexSize(heap Heap) IndexSize {
	switch heap {
	case HeapString:
		return h.StringIndexSize
	case HeapGUID:
		return h.GUIDIndexSize
	default:
		return h.BlobIndexSize
	}
}

// TableIndexSize returns the width of a simple index into table id:
// 2 bytes while the table has fewer than 2^16 rows.
func (h *Header) TableIndexSize(id TableID) IndexSize {
	if h.Rows(id) < 1<<16 {
		return IndexSmall
	}
	return IndexLarge
}

// CodedIndexSize returns the width of a coded index of kind k: 2 bytes while
// the largest candidate table fits in the 16-Bits bits left after the tag.
func (h *Header) CodedIndexSize(k *CodedIndexKind) IndexSize {
	var bound uint32
	for _, t := range k.Tags {
		bound = max(bound, h.Rows(t.Table))
	}
	if uint64(bound) < 1<<(16-k.Bits) {
		return IndexSmall
	}
	return IndexLarge
}

// ColumnSize returns the width in bytes of column c under this header.
func (h *Header) ColumnSize(c Column) int {
	switch c.Kind {
	case ColumnU8:
		return 1
	case ColumnU16:
		return 2
	case ColumnU32:
		return 4
	case ColumnString:
		return int(h.StringIndexSize)
	case ColumnGUID:
		return int(h.GUIDIndexSize)
	case ColumnBlob:
		return int(h.BlobIndexSize)
	case ColumnTable:
		return int(h.TableIndexSize(c.Table))
	case ColumnCoded:
		return int(h.CodedIndexSize(c.Coded))
	default:
		return 0
	}
}

// RowSize returns the width in bytes of one row of table id, or 0 when the
// decoder has no schema for it.
func (h *Header) RowSize(id TableID) int {
	s := schemaFor(id)
	if s == nil {
		return 0
	}
	n := 0
	for _, c := range s.columns {
		n += h.ColumnSize(c)
	}
	return n
}

func (h *Header) columnWidths(s *tableSchema) []int {
	widths := make([]int, len(s.columns))
	for i, c := range s.columns {
		widths[i] = h.ColumnSize(c)
	}
	return widths
}

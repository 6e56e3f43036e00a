package metadata

import (
	"encoding/binary"
	"testing"
)

// streamBuilder assembles a synthetic #~ stream for tests.
type streamBuilder struct {
	counts    [MaxTables]uint32
	valid     uint64
	body      []byte
	heapSizes uint8
}

func newStream(heapSizes uint8) *streamBuilder {
	return &streamBuilder{heapSizes: heapSizes}
}

// table marks id present with n rows.
func (b *streamBuilder) table(id TableID, n uint32) *streamBuilder {
	b.valid |= 1 << uint(id)
	b.counts[id] = n
	return b
}

func (b *streamBuilder) u8(v uint8) *streamBuilder {
	b.body = append(b.body, v)
	return b
}

func (b *streamBuilder) u16(v uint16) *streamBuilder {
	b.body = binary.LittleEndian.AppendUint16(b.body, v)
	return b
}

func (b *streamBuilder) u32(v uint32) *streamBuilder {
	b.body = binary.LittleEndian.AppendUint32(b.body, v)
	return b
}

// sized appends v using size bytes.
func (b *streamBuilder) sized(size int, v uint32) *streamBuilder {
	switch size {
	case 1:
		return b.u8(uint8(v))
	case 2:
		return b.u16(uint16(v))
	default:
		return b.u32(v)
	}
}

func (b *streamBuilder) header() []byte {
	out := make([]byte, 0, 24+4*MaxTables)
	out = binary.LittleEndian.AppendUint32(out, 0)
	out = append(out, 2, 0, b.heapSizes, 1)
	out = binary.LittleEndian.AppendUint64(out, b.valid)
	out = binary.LittleEndian.AppendUint64(out, 0)
	for i := 0; i < MaxTables; i++ {
		if b.valid&(1<<uint(i)) != 0 {
			out = binary.LittleEndian.AppendUint32(out, b.counts[i])
		}
	}
	return out
}

func (b *streamBuilder) bytes() []byte {
	return append(b.header(), b.body...)
}

// encodeCoded packs a reference the way the table stream stores it.
func encodeCoded(t testing.TB, k *CodedIndexKind, table TableID, row uint32) uint32 {
	t.Helper()
	tag, ok := k.TagOf(table)
	if !ok {
		t.Fatalf("%s has no tag for %s", k.Name, table)
	}
	return row<<k.Bits | tag
}

// parsedHeader returns the header the builder would produce.
func (b *streamBuilder) parsedHeader(t testing.TB) *Header {
	t.Helper()
	h, err := ParseHeader(b.header())
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	return h
}

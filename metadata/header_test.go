package metadata

import (
	"math/bits"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/wippyai/clrmeta/errors"
)

func TestParseHeaderHeapSizes(t *testing.T) {
	for flags := uint8(0); flags < 8; flags++ {
		h, err := ParseHeader(newStream(flags).header())
		if err != nil {
			t.Fatalf("flags %03b: %v", flags, err)
		}

		want := func(bit uint8) IndexSize {
			if flags&bit != 0 {
				return 4
			}
			return 2
		}
		if h.StringIndexSize != want(0x01) {
			t.Errorf("flags %03b: string size %d, want %d", flags, h.StringIndexSize, want(0x01))
		}
		if h.GUIDIndexSize != want(0x02) {
			t.Errorf("flags %03b: guid size %d, want %d", flags, h.GUIDIndexSize, want(0x02))
		}
		if h.BlobIndexSize != want(0x04) {
			t.Errorf("flags %03b: blob size %d, want %d", flags, h.BlobIndexSize, want(0x04))
		}
		if h.HeapIndexSize(HeapString) != h.StringIndexSize ||
			h.HeapIndexSize(HeapGUID) != h.GUIDIndexSize ||
			h.HeapIndexSize(HeapBlob) != h.BlobIndexSize {
			t.Errorf("flags %03b: HeapIndexSize disagrees with header fields", flags)
		}
	}
}

func TestParseHeaderFields(t *testing.T) {
	b := newStream(0).
		table(TableModule, 1).
		table(TableTypeRef, 7).
		table(TableTypeDef, 0x12345)
	data := b.header()
	data[4], data[5] = 2, 1 // version 2.1
	data[16] = 0x02         // Sorted: TypeRef

	h, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.MajorVersion != 2 || h.MinorVersion != 1 {
		t.Errorf("version %d.%d, want 2.1", h.MajorVersion, h.MinorVersion)
	}
	if h.Size != 24+3*4 {
		t.Errorf("Size = %d, want %d", h.Size, 24+3*4)
	}
	if h.Rows(TableModule) != 1 || h.Rows(TableTypeRef) != 7 || h.Rows(TableTypeDef) != 0x12345 {
		t.Errorf("row counts %d %d %d", h.Rows(TableModule), h.Rows(TableTypeRef), h.Rows(TableTypeDef))
	}
	if h.Rows(TableField) != 0 || h.Has(TableField) {
		t.Error("absent table reported as present")
	}
	if !h.IsSorted(TableTypeRef) || h.IsSorted(TableModule) {
		t.Errorf("Sorted = %#x", h.Sorted)
	}

	present := h.Present()
	want := []TableID{TableModule, TableTypeRef, TableTypeDef}
	if len(present) != len(want) {
		t.Fatalf("Present = %v, want %v", present, want)
	}
	for i := range want {
		if present[i] != want[i] {
			t.Errorf("Present[%d] = %s, want %s", i, present[i], want[i])
		}
	}
}

func TestParseHeaderTruncated(t *testing.T) {
	full := newStream(0).table(TableModule, 1).table(TableAssembly, 1).header()

	for n := 0; n < len(full); n++ {
		h, err := ParseHeader(full[:n])
		if h != nil {
			t.Errorf("len %d: got partial header", n)
		}
		if !errors.IsKind(err, errors.KindOutOfBounds) {
			t.Errorf("len %d: expected out_of_bounds, got %v", n, err)
		}
	}
}

func TestParseHeaderIgnoresTrailingBytes(t *testing.T) {
	data := append(newStream(0).table(TableModule, 1).header(), 0xAA, 0xBB)
	h, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Size != len(data)-2 {
		t.Errorf("Size = %d, want %d", h.Size, len(data)-2)
	}
}

func TestHeaderRowCountProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("k mask bits populate exactly k row counts", prop.ForAll(
		func(mask uint64, seed uint32) bool {
			b := newStream(0)
			for i := 0; i < MaxTables; i++ {
				if mask&(1<<uint(i)) != 0 {
					// Non-zero counts so populated entries are observable.
					b.table(TableID(i), seed%1000+uint32(i)+1)
				}
			}
			h, err := ParseHeader(b.header())
			if err != nil {
				return false
			}

			k := bits.OnesCount64(mask)
			populated := 0
			for i, n := range h.RowCounts {
				if n != 0 {
					populated++
					if mask&(1<<uint(i)) == 0 {
						return false
					}
				}
			}
			return populated == k && h.Size == 24+4*k && len(h.Present()) == k
		},
		gen.UInt64(),
		gen.UInt32(),
	))

	properties.TestingRun(t)
}

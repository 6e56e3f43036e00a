package metadata

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/wippyai/clrmeta/errors"
)

func TestCodedIndexKindsWellFormed(t *testing.T) {
	for _, k := range AllCodedIndexKinds() {
		seenTag := map[uint32]bool{}
		seenTable := map[TableID]bool{}
		for _, tag := range k.Tags {
			if tag.Tag >= 1<<k.Bits {
				t.Errorf("%s: tag %d does not fit in %d bits", k, tag.Tag, k.Bits)
			}
			if seenTag[tag.Tag] {
				t.Errorf("%s: duplicate tag %d", k, tag.Tag)
			}
			if seenTable[tag.Table] {
				t.Errorf("%s: duplicate table %s", k, tag.Table)
			}
			if !tag.Table.Known() {
				t.Errorf("%s: tag %d maps to unmodeled table %s", k, tag.Tag, tag.Table)
			}
			seenTag[tag.Tag] = true
			seenTable[tag.Table] = true
		}
	}

	if n := len(HasCustomAttribute.Tags); n != 22 {
		t.Errorf("HasCustomAttribute has %d tables, want 22", n)
	}
}

func TestCodedIndexDecode(t *testing.T) {
	tests := []struct {
		kind  *CodedIndexKind
		raw   uint32
		table TableID
		row   RID
	}{
		// 0x321 = row 0xC8, tag 1 (Param).
		{HasConstant, 0x321, TableParam, 0xC8},
		{TypeDefOrRef, 0x0A, TableTypeSpec, 2},
		{ResolutionScope, 0x07, TableTypeRef, 1},
		{HasCustomAttribute, 0x15 | 5<<5, TableMethodSpec, 5},
		{CustomAttributeType, 0x0A, TableMethodDef, 1},
		{CustomAttributeType, 0x0B, TableMemberRef, 1},
		{MemberRefParent, 0x04, TableTypeSpec, 0},
		{HasSemantics, 0x03, TableProperty, 1},
	}

	for _, tt := range tests {
		got, err := tt.kind.Decode(tt.raw)
		if err != nil {
			t.Errorf("%s.Decode(%#x): %v", tt.kind, tt.raw, err)
			continue
		}
		if got.Table != tt.table || got.Row != tt.row || got.Kind != tt.kind {
			t.Errorf("%s.Decode(%#x) = %v, want %s[%d]", tt.kind, tt.raw, got, tt.table, tt.row)
		}
	}
}

func TestCodedIndexUnknownTag(t *testing.T) {
	tests := []struct {
		kind *CodedIndexKind
		tags []uint32
	}{
		{TypeDefOrRef, []uint32{3}},
		{HasConstant, []uint32{3}},
		{HasCustomAttribute, []uint32{22, 23, 31}},
		{HasDeclSecurity, []uint32{3}},
		{MemberRefParent, []uint32{5, 6, 7}},
		{Implementation, []uint32{3}},
		{CustomAttributeType, []uint32{0, 1, 4, 5, 6, 7}},
	}

	for _, tt := range tests {
		for _, tag := range tt.tags {
			raw := uint32(9)<<tt.kind.Bits | tag
			got, err := tt.kind.Decode(raw)
			if !errors.IsKind(err, errors.KindUnknownTag) {
				t.Errorf("%s tag %d: expected unknown tag error, got %v (%v)", tt.kind, tag, err, got)
			}
			if got.Kind != nil {
				t.Errorf("%s tag %d: got a variant on error: %v", tt.kind, tag, got)
			}
		}
	}
}

func TestCodedIndexString(t *testing.T) {
	ci, err := ResolutionScope.Decode(3<<2 | 2)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s := ci.String(); s != "AssemblyRef[3]" {
		t.Errorf("String = %q, want AssemblyRef[3]", s)
	}
	text, _ := ci.MarshalText()
	if string(text) != "AssemblyRef[3]" {
		t.Errorf("MarshalText = %q", text)
	}
	if ci.IsNull() {
		t.Error("row 3 reported as null")
	}
	null, _ := ResolutionScope.Decode(0)
	if !null.IsNull() || null.Table != TableModule {
		t.Errorf("raw 0 decoded as %v", null)
	}
}

// maxRow returns the largest row number a coded index of kind k can carry
// at the given width.
func maxRow(k *CodedIndexKind, width IndexSize) uint32 {
	return uint32(1)<<(8*uint(width)-k.Bits) - 1
}

func TestCodedIndexRoundTripRepresentative(t *testing.T) {
	for _, k := range AllCodedIndexKinds() {
		for _, width := range []IndexSize{2, 4} {
			for _, tag := range k.Tags {
				for _, row := range []uint32{0, 1, maxRow(k, width)} {
					raw := row<<k.Bits | tag.Tag
					got, err := k.Decode(raw)
					if err != nil {
						t.Fatalf("%s %s[%d]: %v", k, tag.Table, row, err)
					}
					if got.Table != tag.Table || uint32(got.Row) != row {
						t.Errorf("%s: encoded %s[%d], decoded %v", k, tag.Table, row, got)
					}
				}
			}
		}
	}
}

func TestCodedIndexRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	kinds := AllCodedIndexKinds()

	properties.Property("decode inverts (row << bits) | tag", prop.ForAll(
		func(kindIdx, tagIdx int, row uint32) bool {
			k := kinds[kindIdx%len(kinds)]
			tag := k.Tags[tagIdx%len(k.Tags)]
			row &= maxRow(k, IndexLarge)

			got, err := k.Decode(row<<k.Bits | tag.Tag)
			return err == nil && got.Kind == k && got.Table == tag.Table && uint32(got.Row) == row
		},
		gen.IntRange(0, 1<<16),
		gen.IntRange(0, 1<<16),
		gen.UInt32(),
	))

	properties.TestingRun(t)
}

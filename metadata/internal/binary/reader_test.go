package binary

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/clrmeta/errors"
)

func TestReaderFixedWidth(t *testing.T) {
	data := []byte{
		0x01,
		0x02, 0x03,
		0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
	}
	r := NewReader(data, errors.PhaseDecode)

	u8, err := r.ReadU8()
	if err != nil || u8 != 0x01 {
		t.Fatalf("ReadU8: got 0x%02x, %v", u8, err)
	}
	u16, err := r.ReadU16()
	if err != nil || u16 != 0x0302 {
		t.Fatalf("ReadU16: got 0x%04x, %v", u16, err)
	}
	u32, err := r.ReadU32()
	if err != nil || u32 != 0x07060504 {
		t.Fatalf("ReadU32: got 0x%08x, %v", u32, err)
	}
	u64, err := r.ReadU64()
	if err != nil || u64 != 0x0f0e0d0c0b0a0908 {
		t.Fatalf("ReadU64: got 0x%016x, %v", u64, err)
	}

	if r.Position() != len(data) {
		t.Errorf("position: got %d, want %d", r.Position(), len(data))
	}
	if r.Len() != 0 {
		t.Errorf("Len: got %d, want 0", r.Len())
	}
}

func TestReaderOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(*Reader) error
	}{
		{"u8 empty", nil, func(r *Reader) error { _, err := r.ReadU8(); return err }},
		{"u16 short", []byte{1}, func(r *Reader) error { _, err := r.ReadU16(); return err }},
		{"u32 short", []byte{1, 2, 3}, func(r *Reader) error { _, err := r.ReadU32(); return err }},
		{"u64 short", []byte{1, 2, 3, 4, 5, 6, 7}, func(r *Reader) error { _, err := r.ReadU64(); return err }},
		{"skip past end", []byte{1, 2}, func(r *Reader) error { return r.Skip(3) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.data, errors.PhaseHeader)
			err := tt.read(r)
			if !errors.IsKind(err, errors.KindOutOfBounds) {
				t.Fatalf("expected out_of_bounds, got %v", err)
			}
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Phase != errors.PhaseHeader {
				t.Errorf("expected header phase, got %v", err)
			}
			if r.Position() != 0 {
				t.Errorf("failed read moved cursor to %d", r.Position())
			}
		})
	}
}

func TestReaderReadUint(t *testing.T) {
	data := []byte{0xaa, 0xbb, 0xcc, 0x01, 0x02, 0x03, 0x04}
	r := NewReader(data, errors.PhaseDecode)

	for _, tc := range []struct {
		size int
		want uint32
	}{
		{1, 0xaa},
		{2, 0xccbb},
		{4, 0x04030201},
	} {
		got, err := r.ReadUint(tc.size)
		if err != nil {
			t.Fatalf("ReadUint(%d): %v", tc.size, err)
		}
		if got != tc.want {
			t.Errorf("ReadUint(%d): got 0x%x, want 0x%x", tc.size, got, tc.want)
		}
	}

	if _, err := r.ReadUint(3); !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("ReadUint(3): expected invalid_input, got %v", err)
	}
}

func TestReaderWrapError(t *testing.T) {
	r := NewReader(nil, errors.PhaseHeader)
	_, err := r.ReadU32()
	err = r.WrapError("Valid", err)

	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if len(e.Path) != 1 || e.Path[0] != "Valid" {
		t.Errorf("Path = %v, want [Valid]", e.Path)
	}
}

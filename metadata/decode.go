package metadata

import (
	"go.uber.org/zap"

	"github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata/internal/binary"
)

// Config holds decoder options. A nil *Config means defaults.
type Config struct {
	// Logger overrides the package logger for one decode.
	Logger *zap.Logger

	// Strict rejects present tables the decoder has no schema for, even
	// when they follow every modeled table and could be left undecoded.
	Strict bool
}

// Tables is the result of decoding a table stream: one ordered row array
// per table id, empty for tables absent from the header.
type Tables struct {
	Header *Header

	// Undecoded lists present tables past the last modeled table whose rows
	// were left unread. Always empty in strict mode.
	Undecoded []TableID

	// Size is the number of row-data bytes consumed after the header.
	Size int

	rows [MaxTables]tableRows
}

// Decode parses the table stream header at the start of data and decodes
// every present table that follows it.
func Decode(data []byte) (*Tables, error) {
	return DecodeWithConfig(data, nil)
}

// DecodeWithConfig is Decode with explicit options.
func DecodeWithConfig(data []byte, cfg *Config) (*Tables, error) {
	log := cfg.logger()
	h, err := parseHeader(data, log)
	if err != nil {
		return nil, err
	}
	return decodeRows(h, data[h.Size:], cfg, log)
}

// DecodeRows decodes row data for an already parsed header. data must start
// at the first row byte, i.e. Header.Size bytes into the stream.
func DecodeRows(h *Header, data []byte) (*Tables, error) {
	return decodeRows(h, data, nil, Logger())
}

func (c *Config) logger() *zap.Logger {
	if c != nil && c.Logger != nil {
		return c.Logger
	}
	return Logger()
}

func decodeRows(h *Header, data []byte, cfg *Config, log *zap.Logger) (*Tables, error) {
	strict := cfg != nil && cfg.Strict

	// Rows of a table without a schema have unknown width, so any modeled
	// table stored after one cannot be located.
	lastKnown := -1
	for _, id := range h.Present() {
		if id.Known() {
			lastKnown = int(id)
		}
	}

	d := &rowDecoder{r: binary.NewReader(data, errors.PhaseDecode), h: h}
	t := &Tables{Header: h}

	for i := 0; i < MaxTables; i++ {
		id := TableID(i)
		s := schemaFor(id)

		if !h.Has(id) {
			if s != nil {
				t.rows[i] = s.empty()
			} else {
				t.rows[i] = noRows{}
			}
			continue
		}

		if s == nil {
			if strict || i < lastKnown {
				return nil, errors.New(errors.PhaseDecode, errors.KindUnsupported).
					Path(id.String()).
					Value(id).
					Detail("no schema for present table 0x%02x with %d rows", i, h.RowCounts[i]).
					Build()
			}
			log.Warn("table left undecoded",
				zap.Stringer("table", id),
				zap.Uint32("rows", h.RowCounts[i]))
			t.Undecoded = append(t.Undecoded, id)
			t.rows[i] = noRows{}
			continue
		}

		start := d.r.Position()
		rows, err := s.decode(d, s, h.RowCounts[i])
		if err != nil {
			return nil, err
		}
		t.rows[i] = rows
		log.Debug("decoded table",
			zap.Stringer("table", id),
			zap.Int("rows", rows.Len()),
			zap.Int("offset", start),
			zap.Int("bytes", d.r.Position()-start))
	}

	t.Size = d.r.Position()
	return t, nil
}

// Len returns the number of decoded rows of table id.
func (t *Tables) Len(id TableID) int {
	if id >= MaxTables || t.rows[id] == nil {
		return 0
	}
	return t.rows[id].Len()
}

// Row returns row rid (1-based) of table id.
func (t *Tables) Row(id TableID, rid RID) (Row, error) {
	n := t.Len(id)
	if rid.IsNull() || int(rid) > n {
		return nil, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path(id.String()).
			Value(rid).
			Detail("row %d out of range (table has %d rows)", rid, n).
			Build()
	}
	return t.rows[id].At(int(rid) - 1), nil
}

// Rows returns the rows of table id as a fresh slice of Row values.
func (t *Tables) Rows(id TableID) []Row {
	n := t.Len(id)
	out := make([]Row, n)
	for i := range out {
		out[i] = t.rows[id].At(i)
	}
	return out
}

// RowsOf returns the typed rows of T's table. The result shares storage
// with t and must not be modified.
func RowsOf[T Row](t *Tables) []T {
	var zero T
	s, _ := t.rows[zero.Table()].(rowSlice[T])
	if s == nil {
		return []T{}
	}
	return s
}

// Lookup returns the typed row rid (1-based) of T's table.
func Lookup[T Row](t *Tables, rid RID) (T, error) {
	var zero T
	r, err := t.Row(zero.Table(), rid)
	if err != nil {
		return zero, err
	}
	return r.(T), nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/clrmeta/metadata"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tableStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	sizeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// palette applies styles only when the output is a terminal.
type palette struct {
	enabled bool
}

func (p palette) render(st lipgloss.Style, s string) string {
	if !p.enabled {
		return s
	}
	return st.Render(s)
}

// selectTables returns the tables to print: the filter if given, otherwise
// every table with rows.
func selectTables(t *metadata.Tables, filter []metadata.TableID) []metadata.TableID {
	if len(filter) > 0 {
		return filter
	}
	var ids []metadata.TableID
	for _, id := range metadata.KnownTables() {
		if t.Len(id) > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func writeSummary(w io.Writer, t *metadata.Tables, p palette) {
	h := t.Header
	total := uint64(h.Size + t.Size)

	fmt.Fprintf(w, "%s %s (header %s, rows %s)\n",
		p.render(titleStyle, "Table stream"),
		humanize.Bytes(total),
		humanize.Bytes(uint64(h.Size)),
		humanize.Bytes(uint64(t.Size)))
	fmt.Fprintf(w, "Version %d.%d  heap index sizes: %s=%d %s=%d %s=%d\n",
		h.MajorVersion, h.MinorVersion,
		metadata.HeapString, h.StringIndexSize,
		metadata.HeapGUID, h.GUIDIndexSize,
		metadata.HeapBlob, h.BlobIndexSize)

	fmt.Fprintf(w, "\n%d table(s):\n", len(h.Present()))
	for _, id := range h.Present() {
		rows := h.Rows(id)
		size := h.RowSize(id)
		line := fmt.Sprintf("  0x%02x %-24s %8s rows", uint8(id), p.render(tableStyle, id.String()), humanize.Comma(int64(rows)))
		if size > 0 {
			line += p.render(sizeStyle, fmt.Sprintf(" x %d B = %s", size, humanize.Bytes(uint64(size)*uint64(rows))))
		}
		fmt.Fprintln(w, line)
	}

	for _, id := range t.Undecoded {
		fmt.Fprintln(w, p.render(warnStyle, fmt.Sprintf("warning: %s left undecoded", id)))
	}
}

func writeRows(w io.Writer, t *metadata.Tables, ids []metadata.TableID, p palette) {
	for _, id := range ids {
		fmt.Fprintf(w, "\n%s\n", p.render(tableStyle, fmt.Sprintf("%s (%d rows)", id, t.Len(id))))
		fmt.Fprintln(w, p.render(helpStyle, columnLine(id)))
		for i, row := range t.Rows(id) {
			fmt.Fprintf(w, "  %4d  %+v\n", i+1, row)
		}
	}
}

func columnLine(id metadata.TableID) string {
	cols := metadata.Columns(id)
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		if c.Reserved {
			continue
		}
		names = append(names, c.Name)
	}
	return "        " + strings.Join(names, " | ")
}

type dump struct {
	Header dumpHeader  `yaml:"header" json:"header"`
	Tables []dumpTable `yaml:"tables" json:"tables"`
}

type dumpHeader struct {
	Undecoded   []string `yaml:"undecoded,omitempty" json:"undecoded,omitempty"`
	Version     string   `yaml:"version" json:"version"`
	HeaderBytes int      `yaml:"header_bytes" json:"header_bytes"`
	RowBytes    int      `yaml:"row_bytes" json:"row_bytes"`
	StringIndex int      `yaml:"string_index_size" json:"string_index_size"`
	GUIDIndex   int      `yaml:"guid_index_size" json:"guid_index_size"`
	BlobIndex   int      `yaml:"blob_index_size" json:"blob_index_size"`
}

type dumpTable struct {
	Name    string         `yaml:"name" json:"name"`
	Rows    []metadata.Row `yaml:"rows" json:"rows"`
	ID      uint8          `yaml:"id" json:"id"`
	RowSize int            `yaml:"row_size" json:"row_size"`
}

func buildDump(t *metadata.Tables, ids []metadata.TableID) dump {
	h := t.Header
	d := dump{
		Header: dumpHeader{
			Version:     fmt.Sprintf("%d.%d", h.MajorVersion, h.MinorVersion),
			HeaderBytes: h.Size,
			RowBytes:    t.Size,
			StringIndex: int(h.StringIndexSize),
			GUIDIndex:   int(h.GUIDIndexSize),
			BlobIndex:   int(h.BlobIndexSize),
		},
	}
	for _, id := range t.Undecoded {
		d.Header.Undecoded = append(d.Header.Undecoded, id.String())
	}
	for _, id := range ids {
		d.Tables = append(d.Tables, dumpTable{
			Name:    id.String(),
			ID:      uint8(id),
			RowSize: h.RowSize(id),
			Rows:    t.Rows(id),
		})
	}
	return d
}

func writeYAML(w io.Writer, d dump) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

func writeJSON(w io.Writer, d dump) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

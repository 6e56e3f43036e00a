package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata"
)

type options struct {
	file        string
	format      string
	tables      []metadata.TableID
	offset      int64
	verbose     bool
	strict      bool
	interactive bool
}

func main() {
	var (
		file        = flag.String("file", "", "Path to a file containing a #~ table stream")
		offset      = flag.String("offset", "0", "Byte offset of the stream within the file (decimal or 0x hex)")
		format      = flag.String("format", "text", "Output format: text, yaml or json")
		table       = flag.String("table", "", "Only print these tables (comma-separated names or ids)")
		verbose     = flag.Bool("v", false, "Log decoding progress to stderr")
		strict      = flag.Bool("strict", false, "Fail on tables this tool cannot decode")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: tables -file <stream> [-offset N] [-format text|yaml|json] [-table Name,...]")
		fmt.Fprintln(os.Stderr, "       tables -file <stream> -i  (interactive mode)")
		os.Exit(1)
	}

	opts, err := parseOptions(*file, *offset, *format, *table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts.verbose = *verbose
	opts.strict = *strict
	opts.interactive = *interactive

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseOptions(file, offset, format, table string) (options, error) {
	opts := options{file: file, format: strings.ToLower(format)}

	off, err := strconv.ParseInt(offset, 0, 64)
	if err != nil || off < 0 {
		return opts, errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("bad offset %q", offset))
	}
	opts.offset = off

	switch opts.format {
	case "text", "yaml", "json":
	default:
		return opts, errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("unknown format %q", format))
	}

	if table != "" {
		for _, name := range strings.Split(table, ",") {
			name = strings.TrimSpace(name)
			id, ok := metadata.ParseTableID(name)
			if !ok || !id.Known() {
				return opts, errors.NotFound(errors.PhaseLoad, "table", name)
			}
			opts.tables = append(opts.tables, id)
		}
	}
	return opts, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func load(opts options, log *zap.Logger) (*metadata.Tables, error) {
	data, err := os.ReadFile(opts.file)
	if err != nil {
		return nil, errors.Load("read file", err)
	}
	if opts.offset > int64(len(data)) {
		return nil, errors.OutOfBounds(errors.PhaseLoad, int(opts.offset), 0, len(data))
	}
	return metadata.DecodeWithConfig(data[opts.offset:], &metadata.Config{
		Logger: log,
		Strict: opts.strict,
	})
}

func run(opts options, w io.Writer) error {
	log, err := newLogger(opts.verbose)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	tables, err := load(opts, log)
	if err != nil {
		return err
	}

	if opts.interactive {
		return runInteractive(opts.file, tables)
	}
	return render(w, tables, opts, isTerminal(w))
}

func render(w io.Writer, t *metadata.Tables, opts options, color bool) error {
	ids := selectTables(t, opts.tables)
	switch opts.format {
	case "yaml":
		return writeYAML(w, buildDump(t, ids))
	case "json":
		return writeJSON(w, buildDump(t, ids))
	}

	p := palette{enabled: color}
	writeSummary(w, t, p)
	writeRows(w, t, ids, p)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

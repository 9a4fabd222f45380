// Command parquet-to-text-stream streams a Parquet file's rows to stdout as
// CSV or JSON, optionally clipped to a row and/or column window.
package main

import (
	"bufio"
	"os"

	"github.com/flarco/g"
	"github.com/integrii/flaggy"

	"github.com/dataflowkit/parquet-tools/core/prange"
	"github.com/dataflowkit/parquet-tools/core/stream"
	"github.com/dataflowkit/parquet-tools/core/textenc"
)

var (
	format      = "csv"
	path        = ""
	columnRange = ""
	rowRange    = ""
	verbose     = false
)

func main() {
	flaggy.SetName("parquet-to-text-stream")
	flaggy.SetDescription("Streams a Parquet file's rows to stdout as CSV or JSON.")

	flaggy.String(&columnRange, "", "column-range", "Clip to columns [A,B), e.g. 0-4")
	flaggy.String(&rowRange, "", "row-range", "Clip to rows [A,B), e.g. 0-1000")
	flaggy.Bool(&verbose, "v", "verbose", "Emit debug logging to stderr")
	flaggy.AddPositionalValue(&path, "PATH", 1, true, "Path to the Parquet file")
	flaggy.AddPositionalValue(&format, "FORMAT", 2, true, "Output format: csv or json")
	flaggy.Parse()

	if verbose {
		os.Setenv("DEBUG", "DEBUG")
	}

	if err := run(); err != nil {
		g.LogFatal(err)
	}
}

func run() error {
	enc, err := textenc.New(textenc.Format(format))
	if err != nil {
		return g.Error(err, "unrecognized format %q, want csv or json", format)
	}

	opts := stream.Options{ColumnRange: prange.Unbounded, RowRange: prange.Unbounded}
	if columnRange != "" {
		r, err := prange.Parse(columnRange)
		if err != nil {
			return g.Error(err, "--column-range=%q", columnRange)
		}
		opts.ColumnRange = r
	}
	if rowRange != "" {
		r, err := prange.Parse(rowRange)
		if err != nil {
			return g.Error(err, "--row-range=%q", rowRange)
		}
		opts.RowRange = r
	}

	f, err := stream.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	g.Debug("streaming %s: %d columns, %d rows, format=%s", path, f.NumColumns(), f.NumRows(), format)

	out := bufio.NewWriter(os.Stdout)
	if err := stream.Run(out, f, enc, opts); err != nil {
		return err
	}
	return out.Flush()
}

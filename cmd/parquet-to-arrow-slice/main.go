// Command parquet-to-arrow-slice materializes a bounded rectangle of a
// Parquet file's rows and columns as a single Arrow IPC record batch.
package main

import (
	"os"

	"github.com/dustin/go-humanize"
	"github.com/flarco/g"
	"github.com/integrii/flaggy"

	"github.com/dataflowkit/parquet-tools/core/prange"
	"github.com/dataflowkit/parquet-tools/core/slicewriter"
	"github.com/dataflowkit/parquet-tools/core/stream"
)

var (
	path        = ""
	columnRange = ""
	rowRange    = ""
	outPath     = ""
	verbose     = false
)

func main() {
	flaggy.SetName("parquet-to-arrow-slice")
	flaggy.SetDescription("Materializes a bounded rectangle of a Parquet file as an Arrow IPC slice.")

	flaggy.Bool(&verbose, "v", "verbose", "Emit debug logging to stderr")
	flaggy.AddPositionalValue(&path, "PATH", 1, true, "Path to the source Parquet file")
	flaggy.AddPositionalValue(&columnRange, "COLUMN_RANGE", 2, true, "Column window, e.g. 0-4")
	flaggy.AddPositionalValue(&rowRange, "ROW_RANGE", 3, true, "Row window, e.g. 0-1000")
	flaggy.AddPositionalValue(&outPath, "OUT", 4, true, "Path to write the Arrow IPC file")
	flaggy.Parse()

	if verbose {
		os.Setenv("DEBUG", "DEBUG")
	}

	if err := run(); err != nil {
		g.LogFatal(err)
	}
}

func run() error {
	columns, err := prange.Parse(columnRange)
	if err != nil {
		return g.Error(err, "COLUMN_RANGE=%q", columnRange)
	}
	rows, err := prange.Parse(rowRange)
	if err != nil {
		return g.Error(err, "ROW_RANGE=%q", rowRange)
	}

	f, err := stream.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return g.Error(err, "creating %s", outPath)
	}
	defer out.Close()

	opts := slicewriter.Options{ColumnRange: columns, RowRange: rows}
	if err := slicewriter.Write(out, f, opts); err != nil {
		return err
	}

	info, err := out.Stat()
	if err == nil {
		g.Debug("wrote %s rows x %s cols to %s (%s)",
			humanize.Comma(int64(opts.RowRange.Clip(f.NumRows()).Size())),
			humanize.Comma(int64(opts.ColumnRange.Clip(uint64(f.NumColumns())).Size())),
			outPath, humanize.Bytes(uint64(info.Size())))
	}

	return nil
}

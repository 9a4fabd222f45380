package stream

import (
	"io"

	"github.com/flarco/g"
	"github.com/samber/lo"

	"github.com/dataflowkit/parquet-tools/core/prange"
	"github.com/dataflowkit/parquet-tools/core/pqcol"
	"github.com/dataflowkit/parquet-tools/core/textenc"
)

// Options configures one streaming-driver invocation.
type Options struct {
	ColumnRange prange.Range
	RowRange    prange.Range
}

// Source is the slice of an opened file the driver needs: row/column
// extents for clipping, plus pqcol.RowGroupSource for Transcriber
// construction. *File implements it; tests substitute a fake.
type Source interface {
	pqcol.RowGroupSource
	NumColumns() int
	NumRows() uint64
}

// Run implements spec §4.6 end to end: clip the requested windows, build one
// Transcriber per selected column, skip each to the row window's start, then
// emit file header, header row (CSV only), every selected row, and file
// footer, in that strict order.
func Run(w io.Writer, src Source, enc textenc.Writer, opts Options) error {
	columns := opts.ColumnRange.Clip(uint64(src.NumColumns()))
	rows := opts.RowRange.Clip(src.NumRows())

	colIndices := lo.RangeWithSteps(int(columns.Start), int(columns.Stop), 1)

	transcribers := make([]*pqcol.Transcriber, 0, len(colIndices))
	for _, ci := range colIndices {
		t, err := pqcol.NewTranscriber(enc, src, ci)
		if err != nil {
			return err
		}
		if err := t.SkipRows(int64(rows.Start)); err != nil {
			return g.Error(err, "skipping to row %d", rows.Start)
		}
		transcribers = append(transcribers, t)
	}

	if err := enc.FileHeader(w); err != nil {
		return g.Error(err, "writing file header")
	}

	if enc.NeedsHeaderRow() {
		for i, t := range transcribers {
			if err := t.PrintHeader(w, i); err != nil {
				return g.Error(err, "writing header field %d", i)
			}
		}
	}

	for r := rows.Start; r < rows.Stop; r++ {
		isFirst := r == rows.Start
		if err := enc.RecordStart(w, isFirst); err != nil {
			return g.Error(err, "writing record start for row %d", r)
		}
		for i, t := range transcribers {
			if err := t.PrintNext(w, i); err != nil {
				return g.Error(err, "writing row %d field %d", r, i)
			}
		}
		if err := enc.RecordEnd(w); err != nil {
			return g.Error(err, "writing record end for row %d", r)
		}
	}

	if err := enc.FileFooter(w); err != nil {
		return g.Error(err, "writing file footer")
	}

	return nil
}

package pqcol

import (
	arrowfile "github.com/apache/arrow/go/v16/parquet/file"
	"github.com/flarco/g"

	"github.com/dataflowkit/parquet-tools/core/textenc"
)

// RowGroupSource is the slice of an open Parquet file a FileColumnIterator
// needs: row group count, row count per row group, and access to one
// column's chunk reader within a row group. Implemented by *stream.File
// (see core/stream); kept as an interface here so pqcol has no dependency on
// the file-opening package.
type RowGroupSource interface {
	NumRowGroups() int
	RowGroupNumRows(rowGroup int) int64
	DescriptorAt(colIndex int) Descriptor
	ColumnChunkReader(rowGroup, colIndex int) (arrowfile.ColumnChunkReader, error)
}

// FileColumnIterator strings together one BufferedColumnReader per row
// group for a single column index, transparently crossing row group
// boundaries on Next/Skip (spec §4.4).
type FileColumnIterator struct {
	src        RowGroupSource
	colIndex   int
	kind       Kind
	unit       textenc.TimeUnit
	descriptor Descriptor

	rowGroup     int
	cursor       int64
	rowGroupSize int64
	reader       ValueReader
}

func newFileColumnIterator(src RowGroupSource, colIndex int, kind Kind, unit textenc.TimeUnit) (*FileColumnIterator, error) {
	it := &FileColumnIterator{
		src:        src,
		colIndex:   colIndex,
		kind:       kind,
		unit:       unit,
		descriptor: src.DescriptorAt(colIndex),
	}
	return it, nil
}

// advanceRowGroup opens the next row group's reader for this column,
// skipping row groups with zero rows. Returns false once the file is
// exhausted.
func (it *FileColumnIterator) advanceRowGroup() (bool, error) {
	for {
		if it.rowGroup >= it.src.NumRowGroups() {
			it.reader = nil
			return false, nil
		}

		size := it.src.RowGroupNumRows(it.rowGroup)
		if size == 0 {
			it.rowGroup++
			continue
		}

		ccr, err := it.src.ColumnChunkReader(it.rowGroup, it.colIndex)
		if err != nil {
			return false, g.Error(err, "opening column %q in row group %d", it.descriptor.Name, it.rowGroup)
		}

		reader, err := newValueReader(it.descriptor, it.kind, it.unit, ccr)
		if err != nil {
			return false, err
		}

		it.reader = reader
		it.cursor = 0
		it.rowGroupSize = size
		it.rowGroup++
		return true, nil
	}
}

// Next returns the next logical row across the whole file for this column.
func (it *FileColumnIterator) Next() (Value, bool, error) {
	for {
		if it.reader == nil {
			ok, err := it.advanceRowGroup()
			if err != nil {
				return Value{}, false, err
			}
			if !ok {
				return Value{}, false, nil
			}
		}

		v, ok, err := it.reader.Next()
		if err != nil {
			return Value{}, false, err
		}
		if !ok {
			it.reader = nil
			continue
		}
		it.cursor++
		return v, true, nil
	}
}

// Skip advances n rows across row group boundaries, bounding per-call work
// via the underlying reader's own SkipMaxBatchSize chunking.
func (it *FileColumnIterator) Skip(n int64) error {
	for n > 0 {
		if it.reader == nil {
			ok, err := it.advanceRowGroup()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}

		remaining := it.rowGroupSize - it.cursor
		step := n
		if step > remaining {
			step = remaining
		}

		if step > 0 {
			if err := it.reader.Skip(step); err != nil {
				return err
			}
			it.cursor += step
			n -= step
		}

		if it.cursor >= it.rowGroupSize {
			it.reader = nil
		}
	}
	return nil
}

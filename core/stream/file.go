// Package stream implements the streaming driver (spec §4.6): it opens a
// Parquet file, clips the requested row/column windows, binds one
// Transcriber per selected column, and interleaves them into row-major text
// output.
package stream

import (
	"os"

	arrowfile "github.com/apache/arrow/go/v16/parquet/file"
	"github.com/flarco/g"

	"github.com/dataflowkit/parquet-tools/core/pqcol"
)

// File opens a Parquet file once per invocation and exposes the slice of
// it pqcol.FileColumnIterator needs: row group navigation and per-column
// descriptors, satisfying pqcol.RowGroupSource.
type File struct {
	f       *os.File
	reader  *arrowfile.Reader
	columns []pqcol.Descriptor
}

// Open reads a Parquet file's footer metadata and builds the column
// descriptor table, rejecting any nested/repeated column up front.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, g.Error(err, "opening %s", path)
	}

	reader, err := arrowfile.NewParquetReader(f)
	if err != nil {
		f.Close()
		return nil, g.Error(err, "reading Parquet metadata from %s", path)
	}

	schema := reader.MetaData().Schema
	numCols := schema.NumColumns()
	columns := make([]pqcol.Descriptor, numCols)
	for i := 0; i < numCols; i++ {
		d, err := pqcol.DescriptorFromColumn(i, schema.Column(i))
		if err != nil {
			reader.Close()
			f.Close()
			return nil, err
		}
		columns[i] = d
	}

	return &File{f: f, reader: reader, columns: columns}, nil
}

// Close releases the underlying file handle.
func (s *File) Close() error {
	if err := s.reader.Close(); err != nil {
		s.f.Close()
		return g.Error(err, "closing Parquet reader")
	}
	return s.f.Close()
}

// NumColumns is the file's total column count, pre-clip.
func (s *File) NumColumns() int { return len(s.columns) }

// NumRows is the file's total row count, pre-clip.
func (s *File) NumRows() uint64 { return uint64(s.reader.MetaData().GetNumRows()) }

// NumRowGroups implements pqcol.RowGroupSource.
func (s *File) NumRowGroups() int { return s.reader.NumRowGroups() }

// RowGroupNumRows implements pqcol.RowGroupSource.
func (s *File) RowGroupNumRows(rowGroup int) int64 {
	return s.reader.RowGroup(rowGroup).NumRows()
}

// DescriptorAt implements pqcol.RowGroupSource.
func (s *File) DescriptorAt(colIndex int) pqcol.Descriptor { return s.columns[colIndex] }

// ColumnChunkReader implements pqcol.RowGroupSource.
func (s *File) ColumnChunkReader(rowGroup, colIndex int) (arrowfile.ColumnChunkReader, error) {
	return s.reader.RowGroup(rowGroup).Column(colIndex)
}

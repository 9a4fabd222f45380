package stream

import (
	"bytes"
	"testing"

	arrowfile "github.com/apache/arrow/go/v16/parquet/file"
	"github.com/apache/arrow/go/v16/parquet"
	"github.com/apache/arrow/go/v16/parquet/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowkit/parquet-tools/core/prange"
	"github.com/dataflowkit/parquet-tools/core/pqcol"
	"github.com/dataflowkit/parquet-tools/core/textenc"
)

// fakeSource backs a Source with descriptors only; ColumnChunkReader is
// never reached when classify already rejects every column, which is all
// these tests exercise. driver_endtoend_test.go drives real row output
// against a real codec-backed *File built in-process via pqarrow.
type fakeSource struct {
	descriptors []pqcol.Descriptor
	numRows     uint64
}

func (f *fakeSource) NumColumns() int                    { return len(f.descriptors) }
func (f *fakeSource) NumRows() uint64                     { return f.numRows }
func (f *fakeSource) NumRowGroups() int                   { return 1 }
func (f *fakeSource) RowGroupNumRows(int) int64           { return int64(f.numRows) }
func (f *fakeSource) DescriptorAt(i int) pqcol.Descriptor { return f.descriptors[i] }
func (f *fakeSource) ColumnChunkReader(_, _ int) (arrowfile.ColumnChunkReader, error) {
	panic("not reachable: every test column fails dispatch before a reader is opened")
}

func TestRun_AbortsOnUnsupportedColumnBeforeAnyOutput(t *testing.T) {
	src := &fakeSource{
		descriptors: []pqcol.Descriptor{
			{Name: "flag", Physical: parquet.Types.Boolean, Logical: schema.NoLogicalType{}},
		},
		numRows: 10,
	}
	enc, err := textenc.New(textenc.CSV)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Run(&buf, src, enc, Options{
		ColumnRange: prange.Unbounded,
		RowRange:    prange.Unbounded,
	})

	assert.ErrorIs(t, err, pqcol.ErrUnsupportedPhysicalType)
	assert.Empty(t, buf.String(), "no output bytes should be written before dispatch succeeds for every selected column")
}

func TestRun_ColumnRangeClipsSelection(t *testing.T) {
	src := &fakeSource{
		descriptors: []pqcol.Descriptor{
			{Name: "a", Physical: parquet.Types.Boolean, Logical: schema.NoLogicalType{}},
			{Name: "b", Physical: parquet.Types.Boolean, Logical: schema.NoLogicalType{}},
		},
		numRows: 10,
	}
	enc, err := textenc.New(textenc.CSV)
	require.NoError(t, err)

	colRange, err := prange.Parse("5-9") // clips to [2,2) -> empty selection
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Run(&buf, src, enc, Options{ColumnRange: colRange, RowRange: prange.Unbounded})
	require.NoError(t, err, "an empty column selection should never reach the unsupported boolean columns")
}

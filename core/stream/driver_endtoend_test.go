package stream

import (
	"bytes"
	"math"
	"os"
	"testing"

	"github.com/apache/arrow/go/v16/arrow"
	"github.com/apache/arrow/go/v16/arrow/array"
	"github.com/apache/arrow/go/v16/arrow/memory"
	"github.com/apache/arrow/go/v16/parquet"
	"github.com/apache/arrow/go/v16/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowkit/parquet-tools/core/prange"
	"github.com/dataflowkit/parquet-tools/core/textenc"
)

// writeTestParquetFile builds a small real Parquet file via pqarrow (an
// int32 column with a null, a string column needing CSV quoting, a
// microsecond timestamp column, and a float64 column hitting the non-finite
// boundary) and returns its path, so Run can be driven against an actual
// codec-backed *File rather than a fake.
func writeTestParquetFile(t *testing.T) string {
	t.Helper()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int32, Nullable: true},
		{Name: "label", Type: arrow.BinaryTypes.String, Nullable: false},
		{Name: "seen_at", Type: &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}, Nullable: false},
		{Name: "score", Type: arrow.PrimitiveTypes.Float64, Nullable: false},
	}, nil)

	mem := memory.NewGoAllocator()
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	idBuilder := b.Field(0).(*array.Int32Builder)
	idBuilder.Append(1)
	idBuilder.AppendNull()
	idBuilder.Append(3)

	labelBuilder := b.Field(1).(*array.StringBuilder)
	labelBuilder.Append("plain")
	labelBuilder.Append(`has,comma`)
	labelBuilder.Append("last")

	tsBuilder := b.Field(2).(*array.TimestampBuilder)
	tsBuilder.Append(arrow.Timestamp(0))
	tsBuilder.Append(arrow.Timestamp(1_000_000))
	tsBuilder.Append(arrow.Timestamp(1_500_000_000_000_000))

	scoreBuilder := b.Field(3).(*array.Float64Builder)
	scoreBuilder.Append(1.5)
	scoreBuilder.Append(math.NaN())
	scoreBuilder.Append(math.Inf(1))

	record := b.NewRecord()
	defer record.Release()

	f, err := os.CreateTemp(t.TempDir(), "stream-test-*.parquet")
	require.NoError(t, err)
	defer f.Close()

	writer, err := pqarrow.NewFileWriter(schema, f, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	require.NoError(t, err)

	require.NoError(t, writer.Write(record))
	require.NoError(t, writer.Close())

	return f.Name()
}

func TestRun_EndToEnd_CSVWithNullsAndTimestampsAndNonFiniteFloats(t *testing.T) {
	path := writeTestParquetFile(t)

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	enc, err := textenc.New(textenc.CSV)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Run(&buf, f, enc, Options{ColumnRange: prange.Unbounded, RowRange: prange.Unbounded})
	require.NoError(t, err)

	got := buf.String()
	// row 1: exact-midnight timestamp truncates to a bare date (spec §4.2).
	assert.Contains(t, got, "id,label,seen_at,score")
	assert.Contains(t, got, "1,plain,1970-01-01,1.5")
	// row 2: null id renders empty, comma-bearing string gets quoted, NaN score renders empty.
	assert.Contains(t, got, `,"has,comma",1970-01-01T00:00:01Z,`)
	// row 3: whole-minute timestamp truncates seconds, +Inf score renders empty.
	assert.Contains(t, got, "3,last,2017-07-14T02:40Z,")
}

func TestRun_EndToEnd_JSON(t *testing.T) {
	path := writeTestParquetFile(t)

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	enc, err := textenc.New(textenc.JSON)
	require.NoError(t, err)

	colRange, err := prange.Parse("0-1")
	require.NoError(t, err)
	rowRange, err := prange.Parse("0-1")
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Run(&buf, f, enc, Options{ColumnRange: colRange, RowRange: rowRange})
	require.NoError(t, err)

	assert.Equal(t, `[{"id":1}]`, buf.String())
}

package slicewriter

import (
	"testing"

	"github.com/apache/arrow/go/v16/arrow"
	"github.com/apache/arrow/go/v16/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowkit/parquet-tools/core/pqcol"
	"github.com/dataflowkit/parquet-tools/core/textenc"
)

func TestNewColumnBuilder_Int32AppendsValuesAndNulls(t *testing.T) {
	mem := memory.NewGoAllocator()
	dt, builder, appendFn := newColumnBuilder(mem, pqcol.KindI32, 0)
	assert.Equal(t, arrow.PrimitiveTypes.Int32, dt)

	require.NoError(t, appendFn(pqcol.Value{Kind: pqcol.KindI32, I32: 7}))
	require.NoError(t, appendFn(pqcol.Value{Kind: pqcol.KindNull}))

	arr := builder.NewArray()
	defer arr.Release()
	assert.Equal(t, 2, arr.Len())
	assert.Equal(t, 1, arr.NullN())
}

func TestNewColumnBuilder_TimestampUsesRequestedUnit(t *testing.T) {
	mem := memory.NewGoAllocator()
	dt, _, _ := newColumnBuilder(mem, pqcol.KindTimestamp, textenc.UnitMicros)
	ts, ok := dt.(*arrow.TimestampType)
	require.True(t, ok)
	assert.Equal(t, arrow.Microsecond, ts.Unit)
	assert.Equal(t, "UTC", ts.TimeZone)
}

func TestArrowUnit(t *testing.T) {
	assert.Equal(t, arrow.Millisecond, arrowUnit(textenc.UnitMillis))
	assert.Equal(t, arrow.Microsecond, arrowUnit(textenc.UnitMicros))
	assert.Equal(t, arrow.Nanosecond, arrowUnit(textenc.UnitNanos))
}

func TestNewColumnBuilder_StringBuilder(t *testing.T) {
	mem := memory.NewGoAllocator()
	dt, builder, appendFn := newColumnBuilder(mem, pqcol.KindStr, 0)
	assert.Equal(t, arrow.BinaryTypes.String, dt)

	require.NoError(t, appendFn(pqcol.Value{Kind: pqcol.KindStr, Str: []byte("hi")}))
	arr := builder.NewArray()
	defer arr.Release()
	assert.Equal(t, 1, arr.Len())
}

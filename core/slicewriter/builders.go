package slicewriter

import (
	"github.com/apache/arrow/go/v16/arrow"
	"github.com/apache/arrow/go/v16/arrow/array"
	"github.com/apache/arrow/go/v16/arrow/memory"
	"github.com/flarco/g"

	"github.com/dataflowkit/parquet-tools/core/pqcol"
	"github.com/dataflowkit/parquet-tools/core/textenc"
)

// newColumnBuilder picks the Arrow type and builder for one column's Kind,
// plus a closure that appends one pqcol.Value (or a null) to that builder.
func newColumnBuilder(mem memory.Allocator, kind pqcol.Kind, unit textenc.TimeUnit) (arrow.DataType, array.Builder, func(pqcol.Value) error) {
	switch kind {
	case pqcol.KindI32:
		b := array.NewInt32Builder(mem)
		return arrow.PrimitiveTypes.Int32, b, func(v pqcol.Value) error {
			appendOrNull(v, func() { b.Append(v.I32) }, b.AppendNull)
			return nil
		}

	case pqcol.KindU32:
		b := array.NewUint32Builder(mem)
		return arrow.PrimitiveTypes.Uint32, b, func(v pqcol.Value) error {
			appendOrNull(v, func() { b.Append(v.U32) }, b.AppendNull)
			return nil
		}

	case pqcol.KindI64:
		b := array.NewInt64Builder(mem)
		return arrow.PrimitiveTypes.Int64, b, func(v pqcol.Value) error {
			appendOrNull(v, func() { b.Append(v.I64) }, b.AppendNull)
			return nil
		}

	case pqcol.KindU64:
		b := array.NewUint64Builder(mem)
		return arrow.PrimitiveTypes.Uint64, b, func(v pqcol.Value) error {
			appendOrNull(v, func() { b.Append(v.U64) }, b.AppendNull)
			return nil
		}

	case pqcol.KindF32:
		b := array.NewFloat32Builder(mem)
		return arrow.PrimitiveTypes.Float32, b, func(v pqcol.Value) error {
			appendOrNull(v, func() { b.Append(v.F32) }, b.AppendNull)
			return nil
		}

	case pqcol.KindF64:
		b := array.NewFloat64Builder(mem)
		return arrow.PrimitiveTypes.Float64, b, func(v pqcol.Value) error {
			appendOrNull(v, func() { b.Append(v.F64) }, b.AppendNull)
			return nil
		}

	case pqcol.KindStr:
		b := array.NewStringBuilder(mem)
		return arrow.BinaryTypes.String, b, func(v pqcol.Value) error {
			appendOrNull(v, func() { b.Append(string(v.Str)) }, b.AppendNull)
			return nil
		}

	case pqcol.KindDate:
		b := array.NewDate32Builder(mem)
		return arrow.FixedWidthTypes.Date32, b, func(v pqcol.Value) error {
			appendOrNull(v, func() { b.Append(arrow.Date32(v.Date)) }, b.AppendNull)
			return nil
		}

	case pqcol.KindTimestamp:
		dt := &arrow.TimestampType{Unit: arrowUnit(unit), TimeZone: "UTC"}
		b := array.NewTimestampBuilder(mem, dt)
		return dt, b, func(v pqcol.Value) error {
			appendOrNull(v, func() { b.Append(arrow.Timestamp(v.TimestampValue)) }, b.AppendNull)
			return nil
		}

	default:
		panic(g.Error("slicewriter: unreachable printable kind %d", kind))
	}
}

func appendOrNull(v pqcol.Value, appendValue func(), appendNull func()) {
	if v.Kind == pqcol.KindNull {
		appendNull()
		return
	}
	appendValue()
}

func arrowUnit(u textenc.TimeUnit) arrow.TimeUnit {
	switch u {
	case textenc.UnitMicros:
		return arrow.Microsecond
	case textenc.UnitNanos:
		return arrow.Nanosecond
	default:
		return arrow.Millisecond
	}
}

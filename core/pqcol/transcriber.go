package pqcol

import (
	"io"

	arrowfile "github.com/apache/arrow/go/v16/parquet/file"
	"github.com/apache/arrow/go/v16/parquet"
	"github.com/apache/arrow/go/v16/parquet/schema"
	"github.com/flarco/g"

	"github.com/dataflowkit/parquet-tools/core/textenc"
)

// classify implements spec §4.3's PhysicalType -> LogicalType -> Printable
// table. Physical types other than Int32/Int64/Float/Double/ByteArray are
// rejected up front; logical-type combinations with no table entry are
// rejected as dispatch errors.
func classify(d Descriptor) (Kind, textenc.TimeUnit, error) {
	switch d.Physical {
	case parquet.Types.Int32:
		switch lt := d.Logical.(type) {
		case schema.NoLogicalType:
			return KindI32, 0, nil
		case *schema.IntLogicalType:
			if lt.IsSigned() {
				return KindI32, 0, nil
			}
			return KindU32, 0, nil
		case schema.DateLogicalType:
			return KindDate, 0, nil
		default:
			return 0, 0, g.Error(ErrUnsupportedLogicalType, "column %q: int32/%T", d.Name, lt)
		}

	case parquet.Types.Int64:
		switch lt := d.Logical.(type) {
		case schema.NoLogicalType:
			return KindI64, 0, nil
		case *schema.IntLogicalType:
			if lt.IsSigned() {
				return KindI64, 0, nil
			}
			return KindU64, 0, nil
		case *schema.TimestampLogicalType:
			switch lt.TimeUnit() {
			case schema.TimeUnitMillis:
				return KindTimestamp, textenc.UnitMillis, nil
			case schema.TimeUnitMicros:
				return KindTimestamp, textenc.UnitMicros, nil
			case schema.TimeUnitNanos:
				return KindTimestamp, textenc.UnitNanos, nil
			default:
				return 0, 0, g.Error(ErrUnsupportedLogicalType, "column %q: unrecognized timestamp unit", d.Name)
			}
		default:
			return 0, 0, g.Error(ErrUnsupportedLogicalType, "column %q: int64/%T", d.Name, lt)
		}

	case parquet.Types.Float:
		return KindF32, 0, nil

	case parquet.Types.Double:
		return KindF64, 0, nil

	case parquet.Types.ByteArray:
		switch d.Logical.(type) {
		// NoLogicalType is treated as string here, a deliberate widening of
		// the table's literal ByteArray|String-only entry: legacy
		// UTF8-converted-type columns surface with no logical type at all,
		// and rejecting them would make otherwise-ordinary string columns
		// unreadable.
		case schema.StringLogicalType, schema.NoLogicalType:
			return KindStr, 0, nil
		default:
			return 0, 0, g.Error(ErrUnsupportedLogicalType, "column %q: byte_array/%T", d.Name, d.Logical)
		}

	default:
		return 0, 0, g.Error(ErrUnsupportedPhysicalType, "column %q: %s", d.Name, d.Physical)
	}
}

// newValueReader builds the ValueReader for one row group's column chunk,
// binding the codec's concrete typed reader to the converter classify chose.
func newValueReader(d Descriptor, kind Kind, unit textenc.TimeUnit, ccr arrowfile.ColumnChunkReader) (ValueReader, error) {
	if ccr.Type() != d.Physical {
		return nil, g.Error(ErrTypeMismatch, "column %q: reader physical type %s does not match descriptor %s", d.Name, ccr.Type(), d.Physical)
	}
	switch r := ccr.(type) {
	case *arrowfile.Int32ColumnChunkReader:
		conv := int32Converter(kind)
		return newBufferedReader(rawBatchReader[int32]{
			readBatch: r.ReadBatch,
			skip:      r.Skip,
			hasNext:   r.HasNext,
		}, d.MaxDefLevel, conv), nil

	case *arrowfile.Int64ColumnChunkReader:
		conv := int64Converter(kind, unit)
		return newBufferedReader(rawBatchReader[int64]{
			readBatch: r.ReadBatch,
			skip:      r.Skip,
			hasNext:   r.HasNext,
		}, d.MaxDefLevel, conv), nil

	case *arrowfile.Float32ColumnChunkReader:
		return newBufferedReader(rawBatchReader[float32]{
			readBatch: r.ReadBatch,
			skip:      r.Skip,
			hasNext:   r.HasNext,
		}, d.MaxDefLevel, func(v float32) Value { return Value{Kind: KindF32, F32: v} }), nil

	case *arrowfile.Float64ColumnChunkReader:
		return newBufferedReader(rawBatchReader[float64]{
			readBatch: r.ReadBatch,
			skip:      r.Skip,
			hasNext:   r.HasNext,
		}, d.MaxDefLevel, func(v float64) Value { return Value{Kind: KindF64, F64: v} }), nil

	case *arrowfile.ByteArrayColumnChunkReader:
		return newBufferedReader(rawBatchReader[parquet.ByteArray]{
			readBatch: r.ReadBatch,
			skip:      r.Skip,
			hasNext:   r.HasNext,
		}, d.MaxDefLevel, func(v parquet.ByteArray) Value { return Value{Kind: KindStr, Str: []byte(v)} }), nil

	default:
		return nil, g.Error(ErrTypeMismatch, "column %q: reader type %T does not match descriptor", d.Name, ccr)
	}
}

func int32Converter(kind Kind) func(int32) Value {
	switch kind {
	case KindU32:
		return func(v int32) Value { return Value{Kind: KindU32, U32: uint32(v)} }
	case KindDate:
		return func(v int32) Value { return Value{Kind: KindDate, Date: v} }
	default:
		return func(v int32) Value { return Value{Kind: KindI32, I32: v} }
	}
}

func int64Converter(kind Kind, unit textenc.TimeUnit) func(int64) Value {
	switch kind {
	case KindU64:
		return func(v int64) Value { return Value{Kind: KindU64, U64: uint64(v)} }
	case KindTimestamp:
		return func(v int64) Value {
			return Value{Kind: KindTimestamp, TimestampValue: v, TimestampUnit: unit}
		}
	default:
		return func(v int64) Value { return Value{Kind: KindI64, I64: v} }
	}
}

// Transcriber is spec §4.5's per-column binding of a typed reader to an
// encoder: skip_rows, print_next, print_header, one instance per selected
// output column, all constructed before any output row is emitted.
type Transcriber struct {
	Descriptor Descriptor
	writer     textenc.Writer
	iter       *FileColumnIterator
}

// NewTranscriber inspects the column's physical/logical type, builds the
// FileColumnIterator across every row group, and binds it to enc.
func NewTranscriber(enc textenc.Writer, rg RowGroupSource, colIndex int) (*Transcriber, error) {
	kind, unit, err := classify(rg.DescriptorAt(colIndex))
	if err != nil {
		return nil, err
	}
	iter, err := newFileColumnIterator(rg, colIndex, kind, unit)
	if err != nil {
		return nil, err
	}
	return &Transcriber{Descriptor: iter.descriptor, writer: enc, iter: iter}, nil
}

// SkipRows advances the underlying column n logical rows without rendering.
func (t *Transcriber) SkipRows(n int64) error {
	return t.iter.Skip(n)
}

// PrintHeader writes this column's CSV header field at output index idx.
func (t *Transcriber) PrintHeader(w io.Writer, idx int) error {
	return t.writer.HeaderField(w, idx, t.Descriptor.Name)
}

// PrintNext writes the next row's value for this column at output index idx.
func (t *Transcriber) PrintNext(w io.Writer, idx int) error {
	v, ok, err := t.iter.Next()
	if err != nil {
		return g.Error(err, "column %q", t.Descriptor.Name)
	}
	if !ok {
		return g.Error("column %q: ran out of rows before the requested row range ended", t.Descriptor.Name)
	}

	if err := t.writer.FieldStart(w, idx, t.Descriptor.Name); err != nil {
		return err
	}

	switch v.Kind {
	case KindNull:
		return t.writer.WriteNull(w)
	case KindI32:
		return t.writer.WriteInt32(w, v.I32)
	case KindU32:
		return t.writer.WriteUint32(w, v.U32)
	case KindI64:
		return t.writer.WriteInt64(w, v.I64)
	case KindU64:
		return t.writer.WriteUint64(w, v.U64)
	case KindF32:
		return t.writer.WriteFloat32(w, v.F32)
	case KindF64:
		return t.writer.WriteFloat64(w, v.F64)
	case KindStr:
		return t.writer.WriteString(w, v.Str)
	case KindDate:
		return t.writer.WriteDate(w, v.Date)
	case KindTimestamp:
		return t.writer.WriteTimestamp(w, v.TimestampValue, v.TimestampUnit)
	default:
		return g.Error("column %q: unreachable value kind %d", t.Descriptor.Name, v.Kind)
	}
}

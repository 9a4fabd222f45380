// Package pqcol implements the column-level machinery shared by all three
// binaries: the typed dispatch from a Parquet column's physical/logical type
// to a printable value, the small-batch buffered column reader, and the
// iterator that strings a column's readers together across row groups.
package pqcol

import (
	"errors"
	"fmt"

	"github.com/apache/arrow/go/v16/parquet"
	"github.com/apache/arrow/go/v16/parquet/schema"
	"github.com/flarco/g"

	"github.com/dataflowkit/parquet-tools/core/textenc"
)

// BatchSize is the fixed number of logical rows a BufferedColumnReader asks
// the underlying codec for on each rebuffer. Chosen small deliberately: the
// design favors low memory and fast time-to-first-byte over throughput.
const BatchSize = 30

// SkipMaxBatchSize bounds how many rows the slice writer consumes per Skip
// call when fast-forwarding to a row window, so peak resident memory during
// the skip phase stays bounded regardless of how large the skip is.
const SkipMaxBatchSize = 4096

var (
	// ErrUnsupportedPhysicalType is returned for boolean, Int96, and
	// fixed-length byte array columns, none of which this core handles.
	ErrUnsupportedPhysicalType = errors.New("pqcol: unsupported physical type")
	// ErrUnsupportedLogicalType is returned when a physical/logical type
	// pairing has no entry in the PhysicalType -> PrintableType table.
	ErrUnsupportedLogicalType = errors.New("pqcol: unsupported logical type for physical type")
	// ErrNestedColumn is returned for columns with max_definition_level > 1
	// or max_repetition_level > 0 (nested/repeated columns).
	ErrNestedColumn = errors.New("pqcol: nested or repeated columns are not supported")
	// ErrTypeMismatch is returned when a FileColumnIterator crosses into a
	// row group whose column physical type disagrees with the one the
	// iterator was built for.
	ErrTypeMismatch = errors.New("pqcol: column physical type changed across row groups")
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindI32
	KindU32
	KindI64
	KindU64
	KindF32
	KindF64
	KindStr
	KindDate
	KindTimestamp
)

// Value is the tagged PrintableValue union (spec's PrintableValue set,
// re-expressed as one struct with a Kind tag instead of an interface, so no
// value needs heap boxing on the hot path).
type Value struct {
	Kind Kind

	I32 int32
	U32 uint32
	I64 int64
	U64 uint64
	F32 float32
	F64 float64
	Str []byte // borrowed; valid only until the next buffer refill

	Date int32 // days since epoch, Kind == KindDate

	TimestampValue int64           // epoch offset at TimestampUnit, Kind == KindTimestamp
	TimestampUnit  textenc.TimeUnit
}

// Descriptor is the core's view of one Parquet column: name, physical type,
// logical type, and the definition-level nullability test.
type Descriptor struct {
	Name         string
	Physical     parquet.Type
	Logical      schema.LogicalType
	MaxDefLevel  int16
	MaxRepLevel  int16
	ColumnIndex  int
}

// Nullable reports whether any value in the column can be absent.
func (d Descriptor) Nullable() bool { return d.MaxDefLevel > 0 }

// DescriptorFromColumn builds a Descriptor from a codec schema column,
// rejecting nested/repeated columns per spec's explicit non-goal.
func DescriptorFromColumn(colIndex int, col *schema.Column) (Descriptor, error) {
	if col.MaxDefinitionLevel() > 1 || col.MaxRepetitionLevel() > 0 {
		return Descriptor{}, g.Error(ErrNestedColumn, "column %q (def=%d rep=%d)",
			col.Name(), col.MaxDefinitionLevel(), col.MaxRepetitionLevel())
	}
	return Descriptor{
		Name:        col.Name(),
		Physical:    col.PhysicalType(),
		Logical:     col.LogicalType(),
		MaxDefLevel: col.MaxDefinitionLevel(),
		MaxRepLevel: col.MaxRepetitionLevel(),
		ColumnIndex: colIndex,
	}, nil
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s(%s/%s)", d.Name, d.Physical, d.Logical)
}

package pqcol

import "github.com/dataflowkit/parquet-tools/core/textenc"

// OpenColumn performs typed dispatch for one column (spec §4.5) and returns
// the FileColumnIterator walking its values across every row group. Used
// directly by core/diff, which needs raw decoded values rather than text
// output, and indirectly by NewTranscriber for the streaming driver and
// slice writer.
func OpenColumn(src RowGroupSource, colIndex int) (*FileColumnIterator, error) {
	d := src.DescriptorAt(colIndex)
	kind, unit, err := classify(d)
	if err != nil {
		return nil, err
	}
	return newFileColumnIterator(src, colIndex, kind, unit)
}

// Classify exposes the PhysicalType -> PrintableType dispatch (spec §4.3's
// table) to callers that need to know a column's target Kind before any
// value is read, such as the slice writer choosing an Arrow builder type.
func Classify(d Descriptor) (Kind, textenc.TimeUnit, error) {
	return classify(d)
}

// Dispatchable reports whether d's physical/logical type pairing has an
// entry in the PhysicalType -> PrintableType table, without constructing
// any reader. core/diff uses this to tell "this column's type is one the
// core does not support at all" (exit 2) apart from "both files use a
// supported type but it differs between them" (exit 1, an ordinary diff).
func Dispatchable(d Descriptor) error {
	_, _, err := classify(d)
	return err
}

package pqcol

import (
	"io"

	"github.com/flarco/g"
)

// ValueReader is the capability a FileColumnIterator needs from whatever
// concrete BufferedColumnReader backs the current row group: the physical
// type parameter is erased behind this interface so a column's successive
// per-row-group readers (and the iterator holding them) can be stored and
// swapped uniformly regardless of physical type.
type ValueReader interface {
	// Next returns the next logical row's value. ok is false only when the
	// underlying row group is exhausted.
	Next() (Value, bool, error)
	// Skip advances n logical rows without rendering them.
	Skip(n int64) error
}

// rawBatchReader is the subset of a codec's typed ColumnChunkReader that a
// bufferedReader needs: batch decode, skip, and an end-of-chunk test. The
// codec's concrete per-physical-type readers (Int32ColumnChunkReader, etc.)
// all expose this shape but share no common generic interface in the
// library itself, so each constructor below closes over the concrete type.
type rawBatchReader[T any] struct {
	readBatch func(batchSize int64, values []T, defLevels, repLevels []int16) (int64, int, error)
	skip      func(n int64) (int64, error)
	hasNext   func() bool
}

// bufferedReader implements spec's BufferedColumnReader for one physical
// type T: a fixed-size left-packed value buffer, a parallel validity slice
// over the logical batch, and the two cursors described in §3's BatchBuffer.
type bufferedReader[T any] struct {
	raw         rawBatchReader[T]
	maxDefLevel int16
	convert     func(T) Value

	values    []T
	defLevels []int16
	valid     []bool // length validLen, one entry per logical row in the current batch

	validCursor int // index into valid[0:validLen]
	valueCursor int // index into values[0:valuesLen], = popcount(valid[0:validCursor])
	validLen    int
	valuesLen   int
}

func newBufferedReader[T any](raw rawBatchReader[T], maxDefLevel int16, convert func(T) Value) *bufferedReader[T] {
	return &bufferedReader[T]{
		raw:         raw,
		maxDefLevel: maxDefLevel,
		convert:     convert,
		values:      make([]T, BatchSize),
		defLevels:   make([]int16, BatchSize),
		valid:       make([]bool, BatchSize),
	}
}

// Next implements spec §4.3: the row at validCursor is null if its
// definition level is 0, else the physical value at valueCursor converted
// via the column's pre-selected PrintableType mapping. Returns ok=false when
// the row group is fully exhausted (no further rebuffer possible).
func (b *bufferedReader[T]) Next() (Value, bool, error) {
	if b.validCursor >= b.validLen {
		if err := b.rebuffer(); err != nil {
			return Value{}, false, err
		}
		if b.validLen == 0 {
			return Value{}, false, nil
		}
	}

	present := b.valid[b.validCursor]
	b.validCursor++

	if !present {
		return Value{Kind: KindNull}, true, nil
	}

	v := b.convert(b.values[b.valueCursor])
	b.valueCursor++
	return v, true, nil
}

// Skip advances n logical rows. Rows already buffered advance both cursors
// directly; rows beyond the current buffer are forwarded to the underlying
// reader's Skip in SkipMaxBatchSize-sized steps, bounding peak memory.
func (b *bufferedReader[T]) Skip(n int64) error {
	for n > 0 {
		buffered := int64(b.validLen - b.validCursor)
		if buffered <= 0 {
			break
		}
		step := n
		if step > buffered {
			step = buffered
		}
		for i := int64(0); i < step; i++ {
			if b.valid[b.validCursor] {
				b.valueCursor++
			}
			b.validCursor++
		}
		n -= step
	}

	for n > 0 {
		step := n
		if step > SkipMaxBatchSize {
			step = SkipMaxBatchSize
		}
		skipped, err := b.raw.skip(step)
		if err != nil {
			return g.Error(err, "skipping rows")
		}
		n -= skipped
		if skipped == 0 {
			break
		}
	}
	return nil
}

// rebuffer reads up to BatchSize logical rows from the underlying codec
// reader, refilling values[] (non-null entries, left-packed) and valid[]
// (one entry per logical row). valueCursor and validCursor both reset to 0.
func (b *bufferedReader[T]) rebuffer() error {
	if !b.raw.hasNext() {
		b.validLen, b.valuesLen = 0, 0
		b.validCursor, b.valueCursor = 0, 0
		return nil
	}

	levelsRead, valuesRead, err := b.raw.readBatch(BatchSize, b.values, b.defLevels, nil)
	if err != nil && err != io.EOF {
		return g.Error(err, "reading column batch")
	}

	b.validCursor, b.valueCursor = 0, 0
	b.valuesLen = valuesRead

	if b.maxDefLevel == 0 {
		// Required column: the codec produced no definition levels because
		// every row in the batch is present.
		b.validLen = valuesRead
		for i := 0; i < b.validLen; i++ {
			b.valid[i] = true
		}
		return nil
	}

	b.validLen = int(levelsRead)
	for i := 0; i < b.validLen; i++ {
		b.valid[i] = b.defLevels[i] == b.maxDefLevel
	}
	return nil
}

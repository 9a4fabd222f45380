package textenc

import (
	"io"
	"strconv"
)

// jsonWriter renders records as a top-level JSON array of objects, one
// object per row, keyed by column name in declared order.
type jsonWriter struct{}

func (jsonWriter) FileHeader(w io.Writer) error {
	_, err := io.WriteString(w, "[")
	return err
}

func (jsonWriter) FileFooter(w io.Writer) error {
	_, err := io.WriteString(w, "]")
	return err
}

func (jsonWriter) NeedsHeaderRow() bool { return false }

func (jsonWriter) HeaderField(io.Writer, int, string) error { return nil }

func (jsonWriter) RecordStart(w io.Writer, isFirst bool) error {
	if !isFirst {
		if _, err := io.WriteString(w, ","); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "{")
	return err
}

func (jsonWriter) RecordEnd(w io.Writer) error {
	_, err := io.WriteString(w, "}")
	return err
}

func (j jsonWriter) FieldStart(w io.Writer, colIndex int, name string) error {
	if colIndex > 0 {
		if _, err := io.WriteString(w, ","); err != nil {
			return err
		}
	}
	if err := j.writeJSONString(w, []byte(name)); err != nil {
		return err
	}
	_, err := io.WriteString(w, ":")
	return err
}

func (jsonWriter) WriteNull(w io.Writer) error {
	_, err := io.WriteString(w, "null")
	return err
}

func (jsonWriter) WriteInt32(w io.Writer, v int32) error {
	_, err := io.WriteString(w, strconv.FormatInt(int64(v), 10))
	return err
}

func (jsonWriter) WriteUint32(w io.Writer, v uint32) error {
	_, err := io.WriteString(w, strconv.FormatUint(uint64(v), 10))
	return err
}

func (jsonWriter) WriteInt64(w io.Writer, v int64) error {
	_, err := io.WriteString(w, strconv.FormatInt(v, 10))
	return err
}

func (jsonWriter) WriteUint64(w io.Writer, v uint64) error {
	_, err := io.WriteString(w, strconv.FormatUint(v, 10))
	return err
}

// WriteFloat32/WriteFloat64 render non-finite values as JSON null. This is
// the wire boundary the non-finite-float testable property binds to; both
// encoders guard here rather than upstream in the transcriber.
func (j jsonWriter) WriteFloat32(w io.Writer, v float32) error {
	if isNonFinite32(v) {
		return j.WriteNull(w)
	}
	_, err := io.WriteString(w, FormatFloat32(v))
	return err
}

func (j jsonWriter) WriteFloat64(w io.Writer, v float64) error {
	if isNonFinite64(v) {
		return j.WriteNull(w)
	}
	_, err := io.WriteString(w, FormatFloat64(v))
	return err
}

func (j jsonWriter) WriteString(w io.Writer, s []byte) error {
	return j.writeJSONString(w, s)
}

func (jsonWriter) WriteDate(w io.Writer, daysSinceEpoch int32) error {
	if _, err := io.WriteString(w, `"`); err != nil {
		return err
	}
	if _, err := io.WriteString(w, FormatDate(daysSinceEpoch)); err != nil {
		return err
	}
	_, err := io.WriteString(w, `"`)
	return err
}

func (jsonWriter) WriteTimestamp(w io.Writer, value int64, unit TimeUnit) error {
	if _, err := io.WriteString(w, `"`); err != nil {
		return err
	}
	if _, err := io.WriteString(w, FormatTimestamp(value, unit)); err != nil {
		return err
	}
	_, err := io.WriteString(w, `"`)
	return err
}

var hexDigits = "0123456789abcdef"

// writeJSONString encodes s as a JSON string literal: the standard
// backslash escapes for quote/backslash/control characters with common
// names, \u00XX for other control bytes, everything else copied through
// verbatim (no Unicode normalization, per spec's explicit Non-goal).
func (jsonWriter) writeJSONString(w io.Writer, s []byte) error {
	if _, err := io.WriteString(w, `"`); err != nil {
		return err
	}

	start := 0
	flush := func(end int) error {
		if end > start {
			if _, err := w.Write(s[start:end]); err != nil {
				return err
			}
		}
		return nil
	}

	for i := 0; i < len(s); i++ {
		b := s[i]
		var esc string
		switch b {
		case '"':
			esc = `\"`
		case '\\':
			esc = `\\`
		case '\b':
			esc = `\b`
		case '\f':
			esc = `\f`
		case '\n':
			esc = `\n`
		case '\r':
			esc = `\r`
		case '\t':
			esc = `\t`
		default:
			if b < 0x20 {
				if err := flush(i); err != nil {
					return err
				}
				u := [6]byte{'\\', 'u', '0', '0', hexDigits[b>>4], hexDigits[b&0xf]}
				if _, err := w.Write(u[:]); err != nil {
					return err
				}
				start = i + 1
			}
			continue
		}

		if err := flush(i); err != nil {
			return err
		}
		if _, err := io.WriteString(w, esc); err != nil {
			return err
		}
		start = i + 1
	}

	if err := flush(len(s)); err != nil {
		return err
	}

	_, err := io.WriteString(w, `"`)
	return err
}

func isNonFinite32(v float32) bool {
	return v != v || v > maxFloat32 || v < -maxFloat32
}

func isNonFinite64(v float64) bool {
	return v != v || v > maxFloat64 || v < -maxFloat64
}

const (
	maxFloat32 = 3.40282346638528859811704183484516925440e+38
	maxFloat64 = 1.797693134862315708145274237317043567981e+308
)

package textenc

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFloat64_KnownValues(t *testing.T) {
	cases := map[float64]string{
		0:         "0",
		math.Copysign(0, -1): "0",
		1:         "1",
		100:       "100",
		123456:    "123456",
		0.1:       "0.1",
		1e308:     "1e+308",
		1e21:      "1e+21",
		1e-7:      "1e-7",
		123.456:   "123.456",
		-123.456:  "-123.456",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatFloat64(in), "input %v", in)
	}
}

func TestFormatFloat64_RoundTrip(t *testing.T) {
	inputs := []float64{0, 1, -1, 0.5, 3.14159265358979, 1e300, 1e-300, 42, -42, 9999999999}
	for _, v := range inputs {
		s := FormatFloat64(v)
		parsed, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err)
		assert.Equal(t, v, parsed, "round-trip of %v via %q", v, s)
	}
}

func TestFormatFloat32_RoundTrip(t *testing.T) {
	inputs := []float32{0, 1, -1, 0.5, 3.14159, 1e30, 1e-30, 42, -42}
	for _, v := range inputs {
		s := FormatFloat32(v)
		parsed, err := strconv.ParseFloat(s, 32)
		require.NoError(t, err)
		assert.Equal(t, v, float32(parsed), "round-trip of %v via %q", v, s)
	}
}

package prange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Range
		wantErr error
	}{
		{"simple", "1-3", Range{1, 3}, nil},
		{"zero width", "5-5", Range{5, 5}, nil},
		{"zero start", "0-10", Range{0, 10}, nil},
		{"missing dash", "123", Range{}, ErrInvalidArgument},
		{"trailing garbage", "1-3x", Range{}, ErrInvalidArgument},
		{"leading garbage", "x1-3", Range{}, ErrInvalidArgument},
		{"negative", "-1-3", Range{}, ErrInvalidArgument},
		{"start after stop", "5-3", Range{}, ErrOutOfRange},
		{"empty", "", Range{}, ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClipMonotoneAndIdempotent(t *testing.T) {
	r, err := Parse("2-100")
	require.NoError(t, err)

	assert.Equal(t, r.Clip(50), r.Clip(50).Clip(50))
	assert.Equal(t, r.Clip(30), r.Clip(80).Clip(30))
	assert.Equal(t, r.Clip(30), r.Clip(30).Clip(80))
}

func TestClipClampsBothEnds(t *testing.T) {
	r := Range{Start: 10, Stop: 20}
	assert.Equal(t, Range{Start: 5, Stop: 5}, r.Clip(5))
	assert.Equal(t, Range{Start: 10, Stop: 15}, r.Clip(15))
	assert.Equal(t, r, r.Clip(100))
}

func TestSizeAndContains(t *testing.T) {
	r := Range{Start: 3, Stop: 7}
	assert.Equal(t, uint64(4), r.Size())
	assert.False(t, r.Contains(2))
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(6))
	assert.False(t, r.Contains(7))
}

func TestEmpty(t *testing.T) {
	assert.True(t, Range{Start: 5, Stop: 5}.Empty())
	assert.False(t, Range{Start: 5, Stop: 6}.Empty())
}

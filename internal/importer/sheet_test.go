package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"27.02.2024", "2024-02-27"},
		{"7.3.2024", "2024-03-07"},
		{"2024-02-27", "2024-02-27"},
		{" 2024-2-7 ", "2024-02-07"},
		{"45349", "2024-02-27"},
		{"завтра", "завтра"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeDate(tt.in))
		})
	}
}

func TestToInt(t *testing.T) {
	for in, want := range map[string]int{"15": 15, "15.0": 15, "08": 8, "-2": -2, "0123": 123, "010": 10, "007.0": 7} {
		got, err := toInt(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "abc", "1.5", "0x1F", "0b11"} {
		_, err := toInt(in)
		assert.Error(t, err, in)
	}
}

func TestToFloat(t *testing.T) {
	v, err := toFloat("500,50")
	require.NoError(t, err)
	assert.InDelta(t, 500.5, v, 1e-9)

	_, err = toFloat("дорого")
	assert.Error(t, err)
}

func TestCellValue(t *testing.T) {
	row := []string{" a ", "b"}
	assert.Equal(t, "a", cellValue(row, 0))
	assert.Equal(t, "", cellValue(row, 5))
	assert.Equal(t, "", cellValue(row, -1))
}

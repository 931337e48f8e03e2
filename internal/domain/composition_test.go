package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseComposition(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []LineItem
	}{
		{"pairs", "A1, 2, B2, 3", []LineItem{{"A1", 2}, {"B2", 3}}},
		{"trailing token dropped", "A1, 2, B2", []LineItem{{"A1", 2}}},
		{"non integer quantity", "A1, x, B2, 3", []LineItem{{"B2", 3}}},
		{"empty tokens skipped", " A1 ,, 2 , ", []LineItem{{"A1", 2}}},
		{"cyrillic article", "А112Т4, 2, G843H5, 2", []LineItem{{"А112Т4", 2}, {"G843H5", 2}}},
		{"zero kept for caller", "A1, 0", []LineItem{{"A1", 0}}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseComposition(tt.in))
		})
	}
}

func TestFormatComposition(t *testing.T) {
	items := []LineItem{{"A1", 2}, {"B2", 3}}
	assert.Equal(t, "A1, 2, B2, 3", FormatComposition(items))
	assert.Equal(t, items, ParseComposition(FormatComposition(items)))
	assert.Equal(t, "", FormatComposition(nil))
}

func TestSplitFullName(t *testing.T) {
	s, n, p := SplitFullName("  Иванов   Иван Иванович ")
	assert.Equal(t, []string{"Иванов", "Иван", "Иванович"}, []string{s, n, p})

	s, n, p = SplitFullName("Петров")
	assert.Equal(t, []string{"Петров", "", ""}, []string{s, n, p})

	u := User{Surname: "Петров", Name: "Пётр"}
	assert.Equal(t, "Петров Пётр", u.FullName())
}

package roi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRatio(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, "0.00x"},
		{0.5, "0.50x"},
		{9.99, "9.99x"},
		{10, "10.0x"},
		{42.5, "42.5x"},
		{100, "100x"},
		{999, "999x"},
		{1500, "1.5kx"},
		{25000, "25.0kx"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRatio(tt.ratio))
	}
}

func TestFormatPayback(t *testing.T) {
	tests := []struct {
		days float64
		want string
	}{
		{math.Inf(1), "Never"},
		{0, "Immediate"},
		{0.9, "Immediate"},
		{7.5, "8 days"},
		{29, "29 days"},
		{45, "1.5 months"},
		{364, "12.1 months"},
		{730, "2.0 years"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPayback(tt.days))
	}
}

package utils

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumberOrZero(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
	}{
		{"float", 12.5, 12.5},
		{"int", 42, 42},
		{"numeric string", "350", 350},
		{"decimal string", "12.5", 12.5},
		{"negative stays", -3.0, -3},
		{"json number", json.Number("99"), 99},
		{"garbage string", "abc", 0},
		{"empty string", "", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
		{"NaN", math.NaN(), 0},
		{"Inf", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NumberOrZero(tt.in))
		})
	}
}

package cart_test

import (
	"math"
	"testing"

	"github.com/nikolayk812/storefront-demo/internal/cart"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  map[domain.ProductID]int
		wantError bool
	}{
		{
			name:     "valid cart",
			input:    `{"a": 2, "17": 1}`,
			expected: map[domain.ProductID]int{"a": 2, "17": 1},
		},
		{
			name:     "empty object",
			input:    `{}`,
			expected: map[domain.ProductID]int{},
		},
		{
			name:     "null document",
			input:    `null`,
			expected: map[domain.ProductID]int{},
		},
		{
			name:     "non-positive and fractional quantities are dropped",
			input:    `{"a": 0, "b": -2, "c": 1.5, "d": 3.0, "e": 4}`,
			expected: map[domain.ProductID]int{"d": 3, "e": 4},
		},
		{
			name:     "non-numeric quantities are dropped",
			input:    `{"a": "2", "b": null, "c": true, "d": {}, "e": 1}`,
			expected: map[domain.ProductID]int{"e": 1},
		},
		{
			name:     "oversized quantities are capped",
			input:    `{"a": 3000000000, "b": 1e12, "c": 2147483647}`,
			expected: map[domain.ProductID]int{"a": cart.MaxStoredQuantity, "b": cart.MaxStoredQuantity, "c": cart.MaxStoredQuantity},
		},
		{
			name:     "empty id is dropped",
			input:    `{"": 3, "a": 1}`,
			expected: map[domain.ProductID]int{"a": 1},
		},
		{
			name:      "truncated json",
			input:     `{"a": 2,`,
			wantError: true,
		},
		{
			name:      "array document",
			input:     `[1, 2]`,
			wantError: true,
		},
		{
			name:      "empty string",
			input:     ``,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := cart.Decode(tt.input)
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestEncode(t *testing.T) {
	data, err := cart.Encode(map[domain.ProductID]int{"b": 1, "a": 2})
	require.NoError(t, err)
	assert.Equal(t, `{"a":2,"b":1}`, data)

	empty, err := cart.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, `{}`, empty)

	capped, err := cart.Encode(map[domain.ProductID]int{"a": math.MaxInt})
	require.NoError(t, err)
	assert.Equal(t, `{"a":2147483647}`, capped)

	decoded, err := cart.Decode(capped)
	require.NoError(t, err)
	assert.Equal(t, map[domain.ProductID]int{"a": cart.MaxStoredQuantity}, decoded)
}

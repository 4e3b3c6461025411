package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("should trim fields", func(t *testing.T) {
		a := kernel.NewAddress(kernel.AddressFields{
			Line1:      "  Jane Doe ",
			Line2:      "12 Main St",
			City:       " Springfield",
			State:      "illinois ",
			PostalCode: "62701",
			Phone:      "(217) 555-0100",
		})

		require.NoError(t, a.Validate())
		assert.Equal(t, "Jane Doe", a.Line1())
		assert.Equal(t, "Springfield", a.City())
		assert.Equal(t, "illinois", a.State())
		assert.Equal(t, "(217) 555-0100", a.Phone())
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var a kernel.Address
		assert.Equal(t, kernel.ErrAddressIsNotConstructed, a.Validate())
	})
}

func TestAddress_StreetLines(t *testing.T) {
	tests := []struct {
		name     string
		fields   kernel.AddressFields
		expected []string
	}{
		{
			name:     "only line2",
			fields:   kernel.AddressFields{Line2: "12 Main St"},
			expected: []string{"12 Main St"},
		},
		{
			name:     "line3 present",
			fields:   kernel.AddressFields{Line2: "12 Main St", Line3: "Apt 4"},
			expected: []string{"12 Main St", "Apt 4"},
		},
		{
			name:     "line3 blank but line4 present",
			fields:   kernel.AddressFields{Line2: "12 Main St", Line3: "   ", Line4: "c/o Lab"},
			expected: []string{"12 Main St", "c/o Lab"},
		},
		{
			name:     "all lines",
			fields:   kernel.AddressFields{Line2: "a", Line3: "b", Line4: "c"},
			expected: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, kernel.NewAddress(tt.fields).StreetLines())
		})
	}
}

func TestAddress_Equals(t *testing.T) {
	f := kernel.AddressFields{Line1: "Jane", Line2: "12 Main St", City: "Austin", State: "TX"}

	assert.True(t, kernel.NewAddress(f).Equals(kernel.NewAddress(f)))

	f2 := f
	f2.City = "Dallas"
	assert.False(t, kernel.NewAddress(f).Equals(kernel.NewAddress(f2)))
}

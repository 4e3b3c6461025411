package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStateCode(t *testing.T) {
	valid := map[string]string{
		"NY":                   "NY",
		"ny":                   "NY",
		" Ca ":                 "CA",
		"New York":             "NY",
		"new   york":           "NY",
		"MASSACHUSETTS":        "MA",
		"District of Columbia": "DC",
		"Puerto Rico":          "PR",
	}
	for in, want := range valid {
		t.Run(in, func(t *testing.T) {
			got, err := kernel.NormalizeStateCode(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	t.Run("unknown state", func(t *testing.T) {
		_, err := kernel.NormalizeStateCode("Notarealstate")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "Notarealstate")
	})

	t.Run("unknown abbreviation", func(t *testing.T) {
		_, err := kernel.NormalizeStateCode("ZZ")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("blank", func(t *testing.T) {
		_, err := kernel.NormalizeStateCode("  ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "(212) 555-0199", want: "2125550199"},
		{in: "212.555.0199", want: "2125550199"},
		{in: "+1 212 555 0199", want: "2125550199"},
		{in: "12125550199", want: "2125550199"},
		{in: "555-0199", wantErr: errs.ErrValueIsInvalid},
		{in: "22125550199", wantErr: errs.ErrValueIsInvalid},
		{in: "n/a", wantErr: errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := kernel.NormalizePhone(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

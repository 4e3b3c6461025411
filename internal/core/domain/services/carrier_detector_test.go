package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestCarrierDetector_Detect(t *testing.T) {
	detector := services.NewCarrierDetector()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"ups", "1Z999AA10123456784", services.CarrierUPS},
		{"ups lower case with spaces", "1z 999 aa1 0123 456 784", services.CarrierUPS},
		{"fedex 12 digits", "123456789012", services.CarrierFedEx},
		{"fedex 15 digits", "123456789012345", services.CarrierFedEx},
		{"fedex 24 digits", "961234567890123456789012", services.CarrierFedEx},
		{"fedex 34 digits", "1234567890123456789012345678901234", services.CarrierFedEx},
		{"20 digits resolve to fedex", "12345678901234567890", services.CarrierFedEx},
		{"22 digits resolve to fedex", "9400111899223100000000", services.CarrierFedEx},
		{"usps 26 digits", "92001901234567890123456789", services.CarrierUSPS},
		{"usps 30 digits", "420221539101026837331000039521", services.CarrierUSPS},
		{"usps international", "EA123456789US", services.CarrierUSPS},
		{"hyphens are ignored", "1234-5678-9012", services.CarrierFedEx},
		{"unknown length", "12345", ""},
		{"letters in digits", "12345678901A", ""},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, detector.Detect(tt.input))
		})
	}
}

func TestCarrierDetector_Deterministic(t *testing.T) {
	detector := services.NewCarrierDetector()
	for range 10 {
		assert.Equal(t, services.CarrierUPS, detector.Detect("1Z999AA10123456784"))
	}
}

func TestTrackingURL(t *testing.T) {
	assert.Equal(t, "https://www.fedex.com/fedextrack/?trknbr=123456789012",
		services.TrackingURL(services.CarrierFedEx, "1234 5678 9012"))
	assert.Equal(t, "https://www.ups.com/track?tracknum=1Z999AA10123456784",
		services.TrackingURL(services.CarrierUPS, "1z999aa10123456784"))
	assert.Equal(t, "https://tools.usps.com/go/TrackConfirmAction?tLabels=EA123456789US",
		services.TrackingURL(services.CarrierUSPS, "EA123456789US"))
	assert.Equal(t, "https://www.fedex.com/fedextrack/?trknbr=123456789012",
		services.TrackingURL("fedex", "123456789012"))
	assert.Empty(t, services.TrackingURL("", "123"))
}

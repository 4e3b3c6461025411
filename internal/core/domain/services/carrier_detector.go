package services

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	CarrierFedEx = "FedEx"
	CarrierUPS   = "UPS"
	CarrierUSPS  = "USPS"
)

type carrierRule struct {
	carrier string
	match   func(string) bool
}

var (
	upsPattern           = regexp.MustCompile(`^1Z[0-9A-Z]{16}$`)
	uspsPattern          = regexp.MustCompile(`^[A-Z]{2}[0-9]{9}[A-Z]{2}$`)
	trackingNumberCutset = regexp.MustCompile(`[\s-]+`)
)

// CarrierDetector is an ordered classifier over normalized tracking numbers.
// The first rule that matches wins. FedEx and USPS both accept 20 and 22 digit
// numbers; FedEx is checked first and takes them.
type CarrierDetector struct {
	rules []carrierRule
}

func NewCarrierDetector() CarrierDetector {
	return CarrierDetector{
		rules: []carrierRule{
			{carrier: CarrierFedEx, match: digitsOfLength(12, 15, 20, 22, 24, 34)},
			{carrier: CarrierUPS, match: upsPattern.MatchString},
			{carrier: CarrierUSPS, match: func(s string) bool {
				return digitsOfLength(20, 22, 26, 30)(s) || uspsPattern.MatchString(s)
			}},
		},
	}
}

// Detect returns the carrier name, or "" when no rule matches.
func (d CarrierDetector) Detect(trackingNumber string) string {
	normalized := NormalizeTrackingNumber(trackingNumber)
	if normalized == "" {
		return ""
	}
	for _, rule := range d.rules {
		if rule.match(normalized) {
			return rule.carrier
		}
	}
	return ""
}

// NormalizeTrackingNumber strips whitespace and hyphens and upper-cases the rest.
func NormalizeTrackingNumber(s string) string {
	return strings.ToUpper(trackingNumberCutset.ReplaceAllString(s, ""))
}

// TrackingURL is the public tracking page for a number, or "" for an unknown
// carrier. Carrier names match case-insensitively.
func TrackingURL(carrier string, trackingNumber string) string {
	n := url.QueryEscape(NormalizeTrackingNumber(trackingNumber))
	switch strings.ToUpper(strings.TrimSpace(carrier)) {
	case strings.ToUpper(CarrierFedEx):
		return "https://www.fedex.com/fedextrack/?trknbr=" + n
	case CarrierUPS:
		return "https://www.ups.com/track?tracknum=" + n
	case CarrierUSPS:
		return "https://tools.usps.com/go/TrackConfirmAction?tLabels=" + n
	default:
		return ""
	}
}

func digitsOfLength(lengths ...int) func(string) bool {
	allowed := make(map[int]struct{}, len(lengths))
	for _, l := range lengths {
		allowed[l] = struct{}{}
	}
	return func(s string) bool {
		if _, ok := allowed[len(s)]; !ok {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
}

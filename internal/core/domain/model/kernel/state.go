package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

var stateCodesByName = map[string]string{
	"ALABAMA":                      "AL",
	"ALASKA":                       "AK",
	"ARIZONA":                      "AZ",
	"ARKANSAS":                     "AR",
	"CALIFORNIA":                   "CA",
	"COLORADO":                     "CO",
	"CONNECTICUT":                  "CT",
	"DELAWARE":                     "DE",
	"DISTRICT OF COLUMBIA":         "DC",
	"FLORIDA":                      "FL",
	"GEORGIA":                      "GA",
	"HAWAII":                       "HI",
	"IDAHO":                        "ID",
	"ILLINOIS":                     "IL",
	"INDIANA":                      "IN",
	"IOWA":                         "IA",
	"KANSAS":                       "KS",
	"KENTUCKY":                     "KY",
	"LOUISIANA":                    "LA",
	"MAINE":                        "ME",
	"MARYLAND":                     "MD",
	"MASSACHUSETTS":                "MA",
	"MICHIGAN":                     "MI",
	"MINNESOTA":                    "MN",
	"MISSISSIPPI":                  "MS",
	"MISSOURI":                     "MO",
	"MONTANA":                      "MT",
	"NEBRASKA":                     "NE",
	"NEVADA":                       "NV",
	"NEW HAMPSHIRE":                "NH",
	"NEW JERSEY":                   "NJ",
	"NEW MEXICO":                   "NM",
	"NEW YORK":                     "NY",
	"NORTH CAROLINA":               "NC",
	"NORTH DAKOTA":                 "ND",
	"OHIO":                         "OH",
	"OKLAHOMA":                     "OK",
	"OREGON":                       "OR",
	"PENNSYLVANIA":                 "PA",
	"RHODE ISLAND":                 "RI",
	"SOUTH CAROLINA":               "SC",
	"SOUTH DAKOTA":                 "SD",
	"TENNESSEE":                    "TN",
	"TEXAS":                        "TX",
	"UTAH":                         "UT",
	"VERMONT":                      "VT",
	"VIRGINIA":                     "VA",
	"WASHINGTON":                   "WA",
	"WEST VIRGINIA":                "WV",
	"WISCONSIN":                    "WI",
	"WYOMING":                      "WY",
	"AMERICAN SAMOA":               "AS",
	"GUAM":                         "GU",
	"NORTHERN MARIANA ISLANDS":     "MP",
	"PUERTO RICO":                  "PR",
	"UNITED STATES VIRGIN ISLANDS": "VI",
	"U.S. VIRGIN ISLANDS":          "VI",
	"ARMED FORCES AMERICAS":        "AA",
	"ARMED FORCES EUROPE":          "AE",
	"ARMED FORCES PACIFIC":         "AP",
	"WASHINGTON DC":                "DC",
	"WASHINGTON D.C.":              "DC",
}

var stateCodes = func() map[string]struct{} {
	codes := make(map[string]struct{}, len(stateCodesByName))
	for _, code := range stateCodesByName {
		codes[code] = struct{}{}
	}
	return codes
}()

// NormalizeStateCode maps a state name or abbreviation, in any case and with
// any inner spacing, to its 2-letter postal code.
func NormalizeStateCode(raw string) (string, error) {
	key := strings.ToUpper(strings.Join(strings.Fields(raw), " "))
	if key == "" {
		return "", errs.NewValueIsRequiredError("state")
	}
	if _, ok := stateCodes[key]; ok {
		return key, nil
	}
	if code, ok := stateCodesByName[key]; ok {
		return code, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a US state", raw))
}

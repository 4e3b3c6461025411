package fulfillment

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the operator-controlled state of a fulfillment. Any valid status may
// follow any other; the label pipeline never changes it.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	New
	Processing
	Complete
	Cancelled
	Error
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		New:        "NEW",
		Processing: "PROCESSING",
		Complete:   "COMPLETE",
		Cancelled:  "CANCELLED",
		Error:      "ERROR",
	}
}

// ParseStatus accepts the upper-case names returned by String, in any case.
func ParseStatus(s string) (Status, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == key {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Error {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

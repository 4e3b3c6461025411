package fulfillment

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Action is an operator command applied to a fulfillment. The set of
// implementations is closed: SetStatus, Archive, Unarchive and ClearTracking.
type Action interface {
	isAction()
	Name() string
}

// SetStatus moves the fulfillment to Status.
type SetStatus struct {
	Status Status
}

// Archive hides the fulfillment from the working list.
type Archive struct{}

// Unarchive returns an archived fulfillment to the working list.
type Unarchive struct{}

// ClearTracking drops the tracking record so a new label can be generated.
type ClearTracking struct{}

func (SetStatus) isAction()     {}
func (Archive) isAction()       {}
func (Unarchive) isAction()     {}
func (ClearTracking) isAction() {}

func (SetStatus) Name() string     { return "set_status" }
func (Archive) Name() string       { return "archive" }
func (Unarchive) Name() string     { return "unarchive" }
func (ClearTracking) Name() string { return "clear_tracking" }

// ParseAction turns the loosely typed action name received at the API edge into
// an Action. status is only read for set_status.
func ParseAction(name string, status string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "set_status":
		s, err := ParseStatus(status)
		if err != nil {
			return nil, err
		}
		return SetStatus{Status: s}, nil
	case "archive":
		return Archive{}, nil
	case "unarchive":
		return Unarchive{}, nil
	case "clear_tracking":
		return ClearTracking{}, nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("action is invalid", fmt.Errorf("%q is not a known action", name))
	}
}

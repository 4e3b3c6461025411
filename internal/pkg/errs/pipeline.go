package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrCarrierAuth    = errors.New("carrier authentication failed")
	ErrCarrierAPI     = errors.New("carrier api call failed")
	ErrStorageUpload  = errors.New("label upload failed")
	ErrPersistence    = errors.New("tracking persistence failed")
	ErrPlatformSync   = errors.New("platform tracking sync failed")
	errNoProblemsSent = errors.New("no problem details returned")
)

// ValidationError is raised before any network call when a fulfillment cannot
// be turned into a shipment request.
type ValidationError struct {
	ParamName string
	Cause     error
}

func NewValidationError(paramName string) *ValidationError {
	return &ValidationError{ParamName: paramName}
}

func NewValidationErrorWithCause(paramName string, cause error) *ValidationError {
	return &ValidationError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValidation, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, e.ParamName)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Problem is a single {code, message} entry returned by the carrier.
type Problem struct {
	Code    string
	Message string
}

func (p Problem) String() string {
	if p.Code == "" {
		return p.Message
	}
	return p.Code + ": " + p.Message
}

func joinProblems(problems []Problem) string {
	if len(problems) == 0 {
		return errNoProblemsSent.Error()
	}
	parts := make([]string, 0, len(problems))
	for _, p := range problems {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, "; ")
}

// CarrierAuthError wraps a failed token request.
type CarrierAuthError struct {
	StatusCode int
	Problems   []Problem
	Cause      error
}

func NewCarrierAuthError(statusCode int, problems []Problem) *CarrierAuthError {
	return &CarrierAuthError{
		StatusCode: statusCode,
		Problems:   problems,
	}
}

func NewCarrierAuthErrorWithCause(cause error) *CarrierAuthError {
	return &CarrierAuthError{Cause: cause}
}

func (e *CarrierAuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", ErrCarrierAuth, e.Cause)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrCarrierAuth, e.StatusCode, joinProblems(e.Problems))
}

func (e *CarrierAuthError) Unwrap() error {
	return ErrCarrierAuth
}

// CarrierAPIError describes either a failed carrier call or a successful call
// whose response is missing the piece named by Reason.
type CarrierAPIError struct {
	Operation  string
	Reason     string
	StatusCode int
	Problems   []Problem
	Cause      error
}

func NewCarrierAPIError(operation string, reason string) *CarrierAPIError {
	return &CarrierAPIError{
		Operation: operation,
		Reason:    reason,
	}
}

func NewCarrierAPIErrorWithStatus(operation string, statusCode int, problems []Problem) *CarrierAPIError {
	return &CarrierAPIError{
		Operation:  operation,
		Reason:     joinProblems(problems),
		StatusCode: statusCode,
		Problems:   problems,
	}
}

func NewCarrierAPIErrorWithCause(operation string, cause error) *CarrierAPIError {
	return &CarrierAPIError{
		Operation: operation,
		Reason:    "request failed",
		Cause:     cause,
	}
}

func (e *CarrierAPIError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", ErrCarrierAPI, e.Operation, e.Reason)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *CarrierAPIError) Unwrap() error {
	return ErrCarrierAPI
}

// StorageUploadError wraps a failed label upload.
type StorageUploadError struct {
	Filename string
	Cause    error
}

func NewStorageUploadError(filename string, cause error) *StorageUploadError {
	return &StorageUploadError{
		Filename: filename,
		Cause:    cause,
	}
}

func (e *StorageUploadError) Error() string {
	return fmt.Sprintf("%s: %s (cause: %v)", ErrStorageUpload, e.Filename, e.Cause)
}

func (e *StorageUploadError) Unwrap() error {
	return ErrStorageUpload
}

// PersistenceError is the one state where a label was bought from the carrier
// but the tracking record was not written. It carries what was purchased so an
// operator can reconcile by hand.
type PersistenceError struct {
	FulfillmentID  string
	TrackingNumber string
	LabelURL       string
	Cause          error
}

func NewPersistenceError(fulfillmentID string, trackingNumber string, labelURL string, cause error) *PersistenceError {
	return &PersistenceError{
		FulfillmentID:  fulfillmentID,
		TrackingNumber: trackingNumber,
		LabelURL:       labelURL,
		Cause:          cause,
	}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: fulfillment %s, purchased tracking number %s (cause: %v)",
		ErrPersistence, e.FulfillmentID, e.TrackingNumber, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return ErrPersistence
}

// PlatformSyncError is logged and swallowed by its callers.
type PlatformSyncError struct {
	FulfillmentOrderID string
	Cause              error
}

func NewPlatformSyncError(fulfillmentOrderID string, cause error) *PlatformSyncError {
	return &PlatformSyncError{
		FulfillmentOrderID: fulfillmentOrderID,
		Cause:              cause,
	}
}

func (e *PlatformSyncError) Error() string {
	return fmt.Sprintf("%s: %s (cause: %v)", ErrPlatformSync, e.FulfillmentOrderID, e.Cause)
}

func (e *PlatformSyncError) Unwrap() error {
	return ErrPlatformSync
}

// Package errs provides standardized error types for the fulfillment console.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two groups of error types:
//   - Value errors: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     ObjectNotFoundError
//   - Label pipeline errors: ValidationError, CarrierAuthError, CarrierAPIError,
//     StorageUploadError, PersistenceError, PlatformSyncError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs

// Package guard holds ConstructorGuard, a marker embedded in value objects,
// entities and commands so that a zero value can be told apart from one built
// through its constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil
// error and the guard was not constructed.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the owning struct was created by its
// constructor. The zero value reports "not constructed".
//
// Example:
//
//	var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress")
//
//	type Address struct {
//	    city  string
//	    guard guard.ConstructorGuard
//	}
//
//	func (a Address) Validate() error {
//	    return a.guard.Validate(ErrAddressIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. Otherwise it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

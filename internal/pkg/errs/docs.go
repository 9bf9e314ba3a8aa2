// Package errs provides the typed errors shared by the courier service.
//
// Every error type pairs a sentinel (for errors.Is) with a struct carrying the
// details:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: bad input
//   - ObjectNotFoundError, ObjectAlreadyExistsError: lookups and unique keys
//   - AuthError, ForbiddenError: missing credential or insufficient rights
//   - StateError: a transition the current state forbids
//   - StorageError: a database failure; matches both ErrStorage and its cause
//
// Constructors come in pairs, with and without a cause. The HTTP adapter maps
// sentinels to status codes, so callers should return these types unwrapped or
// wrapped with %w.
package errs

// Package errs provides the generic error types shared by the fulfillment
// domain and its adapters.
//
// The package includes:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is present but invalid
//   - ValueIsOutOfRangeError: a value lies outside an allowed range
//   - ObjectNotFoundError: an object cannot be found by its identifier
//
// Each type follows the same pattern: a sentinel error variable, a struct
// carrying details, constructors with and without a cause, Error for
// formatting and Unwrap returning the sentinel so errors.Is works.
package errs

package kernel

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when a zero-value Address is used.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// AddressParams carries the raw fields of a shipping destination.
type AddressParams struct {
	Name       string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	Email      string
}

// Address is the validated shipping destination of an order. It also carries
// the customer's e-mail, which keys the customer order history.
//
// Example:
//
//	addr, err := kernel.NewAddress(kernel.AddressParams{
//	    Street: "1 Market St", City: "San Francisco", State: "CA",
//	    PostalCode: "94105", Country: "US", Email: "ada@example.com",
//	})
//	fmt.Println(addr.Region()) // US-CA
type Address struct { //nolint:recvcheck //using for validation
	name       string
	street     string
	city       string
	state      string
	postalCode string
	country    string
	email      string

	guard guard.ConstructorGuard
}

// NewAddress validates and normalizes p. Street, city, postal code, country
// and e-mail are required; country and state are upper-cased, the e-mail is
// lower-cased. Every violation is reported at once.
func NewAddress(p AddressParams) (Address, error) {
	addr := Address{
		name:  strings.TrimSpace(p.Name),
		state: strings.ToUpper(strings.TrimSpace(p.State)),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireField(&addr.street, "street", p.Street),
		requireField(&addr.city, "city", p.City),
		requireField(&addr.postalCode, "postalCode", p.PostalCode),
		addr.setCountry(p.Country),
		addr.setEmail(p.Email),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate ensures the address was built through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Name() string       { return a.name }
func (a Address) Street() string     { return a.street }
func (a Address) City() string       { return a.city }
func (a Address) State() string      { return a.state }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Country() string    { return a.country }
func (a Address) Email() string      { return a.email }

// Region returns the carrier table region key: "COUNTRY-STATE" when a state is
// known, otherwise "COUNTRY".
func (a Address) Region() string {
	if a.state == "" {
		return a.country
	}
	return a.country + "-" + a.state
}

// String renders the address on one line.
func (a Address) String() string {
	parts := []string{a.street, a.city}
	if a.state != "" {
		parts = append(parts, a.state)
	}
	parts = append(parts, a.postalCode, a.country)
	return strings.Join(parts, ", ")
}

func (a *Address) setCountry(country string) error {
	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}
	if strings.ContainsAny(country, "-*") {
		return errs.NewValueIsInvalidErrorWithCause("country", fmt.Errorf("%q contains a reserved character", country))
	}
	a.country = country
	return nil
}

func (a *Address) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a bare e-mail address", email))
	}
	a.email = email
	return nil
}

func requireField(dst *string, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*dst = value
	return nil
}

package queries

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

var ErrListCustomerOrdersQueryIsNotConstructed = errors.New(
	"ListCustomerOrdersQuery must be created via NewListCustomerOrdersQuery constructor",
)

// ListCustomerOrdersQuery asks for a customer's most recent orders.
type ListCustomerOrdersQuery struct { //nolint:recvcheck //using for validation
	email string
	limit int

	guard guard.ConstructorGuard
}

// NewListCustomerOrdersQuery normalizes email to lower case. A zero limit
// selects DefaultHistoryLimit; anything outside 1..MaxHistoryLimit is rejected.
func NewListCustomerOrdersQuery(email string, limit int) (ListCustomerOrdersQuery, error) {
	q := ListCustomerOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(q.setEmail(email), q.setLimit(limit)); err != nil {
		return ListCustomerOrdersQuery{}, err
	}
	return q, nil
}

func (q ListCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerOrdersQueryIsNotConstructed)
}

func (q ListCustomerOrdersQuery) Email() string { return q.email }
func (q ListCustomerOrdersQuery) Limit() int    { return q.limit }

func (q *ListCustomerOrdersQuery) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q: %w", email, err))
	}
	q.email = email
	return nil
}

func (q *ListCustomerOrdersQuery) setLimit(limit int) error {
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	if limit < 1 || limit > MaxHistoryLimit {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxHistoryLimit)
	}
	q.limit = limit
	return nil
}

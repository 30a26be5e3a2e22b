package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// Kind is the stable, machine-readable class of an OrderError.
type Kind string

const (
	KindValidation           Kind = "validation_error"
	KindInventoryUnavailable Kind = "inventory_unavailable"
	KindNoCarrierAvailable   Kind = "no_carrier_available"
	KindPersistenceFailure   Kind = "persistence_failure"
	KindTimeout              Kind = "timeout"
	KindNotFound             Kind = "not_found"
	KindInvalidTransition    Kind = "invalid_transition"
)

// Sentinels matched by errors.Is against an *OrderError of the same Kind.
var (
	ErrValidation           = errors.New("validation error")
	ErrInventoryUnavailable = errors.New("inventory unavailable")
	ErrNoCarrierAvailable   = errors.New("no carrier available")
	ErrPersistenceFailure   = errors.New("persistence failure")
	ErrTimeout              = errors.New("timeout")
	ErrNotFound             = errors.New("not found")
	ErrInvalidTransition    = errors.New("invalid transition")
)

var kindSentinels = map[Kind]error{
	KindValidation:           ErrValidation,
	KindInventoryUnavailable: ErrInventoryUnavailable,
	KindNoCarrierAvailable:   ErrNoCarrierAvailable,
	KindPersistenceFailure:   ErrPersistenceFailure,
	KindTimeout:              ErrTimeout,
	KindNotFound:             ErrNotFound,
	KindInvalidTransition:    ErrInvalidTransition,
}

// OrderError is the typed failure returned by every command handler.
// Error() carries operator detail; PublicMessage() is safe for customers.
type OrderError struct {
	Kind       Kind
	ProductID  string
	LocationID string
	Cause      error
}

// NewOrderError wraps cause under kind.
func NewOrderError(kind Kind, cause error) *OrderError {
	return &OrderError{Kind: kind, Cause: cause}
}

func (e *OrderError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.ProductID != "" {
		fmt.Fprintf(&b, " product=%s", e.ProductID)
	}
	if e.LocationID != "" {
		fmt.Fprintf(&b, " location=%s", e.LocationID)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap exposes both the Kind sentinel and the cause.
func (e *OrderError) Unwrap() []error {
	out := make([]error, 0, 2)
	if s, ok := kindSentinels[e.Kind]; ok {
		out = append(out, s)
	}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

// PublicMessage collapses the error to what an end user may see.
func (e *OrderError) PublicMessage() string {
	switch e.Kind {
	case KindValidation:
		return "the request is invalid"
	case KindInventoryUnavailable:
		return "items unavailable"
	case KindNoCarrierAvailable:
		return "we cannot ship to this address right now"
	case KindNotFound:
		return "order not found"
	case KindInvalidTransition:
		return "the order cannot be changed in its current state"
	default:
		return "please try again"
	}
}

// Classify maps any error returned while handling an order onto the
// taxonomy. An *OrderError is returned unchanged.
func Classify(err error) *OrderError {
	if err == nil {
		return nil
	}

	var (
		orderErr      *OrderError
		infeasible    *services.InfeasibleError
		noCarrier     *services.NoCarrierAvailableError
		insufficient  *inventory.InsufficientStockError
		transitionErr *order.TransitionError
	)
	switch {
	case errors.As(err, &orderErr):
		return orderErr
	case errors.As(err, &infeasible):
		return &OrderError{Kind: KindInventoryUnavailable, ProductID: infeasible.ProductID, Cause: err}
	case errors.As(err, &insufficient):
		return &OrderError{
			Kind:       KindInventoryUnavailable,
			ProductID:  insufficient.ProductID,
			LocationID: insufficient.LocationID,
			Cause:      err,
		}
	case errors.As(err, &noCarrier):
		return &OrderError{Kind: KindNoCarrierAvailable, LocationID: noCarrier.LocationID, Cause: err}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return NewOrderError(KindTimeout, err)
	case errors.As(err, &transitionErr):
		return NewOrderError(KindInvalidTransition, err)
	case errors.Is(err, errs.ErrObjectNotFound):
		return NewOrderError(KindNotFound, err)
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return NewOrderError(KindValidation, err)
	}
	return NewOrderError(KindPersistenceFailure, err)
}
